package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/schoolrecords/core/batch"
	"github.com/trezcool/schoolrecords/core/records"
	"github.com/trezcool/schoolrecords/core/school"
	"github.com/trezcool/schoolrecords/core/stats"
)

type (
	AttendanceSheetResponse struct {
		Date    school.Date           `json:"date"`
		ClassID *int                  `json:"class_id"`
		Rows    []batch.AttendanceRow `json:"rows"`
		Counts  stats.StatusCounts    `json:"counts"`
	}

	GradeSheetResponse struct {
		Assignment school.Assignment `json:"assignment"`
		Rows       []batch.GradeRow  `json:"rows"`
	}
)

type sheetsApi struct {
	svc RecordsService
}

func registerSheetsAPI(g *echo.Group, svc RecordsService) {
	api := sheetsApi{svc: svc}

	g.GET("/attendance/sheet", api.attendanceSheet)
	g.POST("/attendance/sheet", api.saveAttendance)
	g.GET("/grades/sheet", api.gradeSheet)
	g.POST("/grades/sheet", api.saveGrades)
}

func (api *sheetsApi) attendanceSheet(ctx echo.Context) error {
	classID, err := queryInt(ctx, "class_id")
	if err != nil {
		return err
	}
	date, err := queryDate(ctx, "date")
	if err != nil {
		return err
	}

	rows, err := api.svc.AttendanceSheet(ctx.Request().Context(), classID, date)
	if err != nil {
		return errors.Wrap(err, "building attendance sheet")
	}
	resp := AttendanceSheetResponse{ClassID: classID, Rows: rows, Counts: batch.SheetCounts(rows)}
	if len(rows) > 0 {
		resp.Date = rows[0].Date
	} else {
		resp.Date = date
	}
	return ctx.JSON(http.StatusOK, resp)
}

func (api *sheetsApi) saveAttendance(ctx echo.Context) error {
	var data records.AttendanceInput
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to AttendanceInput")
	}
	res, err := api.svc.SaveAttendance(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "saving attendance")
	}
	return sendBatchResult(ctx, res)
}

func (api *sheetsApi) gradeSheet(ctx echo.Context) error {
	assignmentID, err := queryInt(ctx, "assignment_id")
	if err != nil {
		return err
	}
	if assignmentID == nil {
		return paramError("assignment_id", "this field is required")
	}

	assignment, rows, err := api.svc.GradeSheet(ctx.Request().Context(), *assignmentID)
	if err != nil {
		return errors.Wrap(err, "building grade sheet")
	}
	return ctx.JSON(http.StatusOK, GradeSheetResponse{Assignment: assignment, Rows: rows})
}

func (api *sheetsApi) saveGrades(ctx echo.Context) error {
	var data records.GradeInput
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to GradeInput")
	}
	res, err := api.svc.SaveGrades(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "saving grades")
	}
	return sendBatchResult(ctx, res)
}

// sendBatchResult reports a batch summary; a batch that stopped on a failed write is a server error.
func sendBatchResult(ctx echo.Context, res batch.Result) error {
	code := http.StatusOK
	if !res.OK() {
		code = http.StatusInternalServerError
	}
	return ctx.JSON(code, res.Summary())
}

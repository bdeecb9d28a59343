package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/schoolrecords/core/school"
	"github.com/trezcool/schoolrecords/core/search"
)

type recordsApi struct {
	svc RecordsService
}

func registerRecordsAPI(g *echo.Group, svc RecordsService) {
	api := recordsApi{svc: svc}

	sg := g.Group("/students")
	sg.GET("", api.queryStudents)
	sg.POST("", api.createStudent)
	sg.GET("/:id", api.retrieveStudent)
	sg.PUT("/:id", api.updateStudent)
	sg.DELETE("/:id", api.destroyStudent)

	cg := g.Group("/classes")
	cg.GET("", api.queryClasses)
	cg.POST("", api.createClass)
	cg.PUT("/:id", api.updateClass)
	cg.DELETE("/:id", api.destroyClass)

	ag := g.Group("/assignments")
	ag.GET("", api.queryAssignments)
	ag.POST("", api.createAssignment)
	ag.PUT("/:id", api.updateAssignment)
	ag.DELETE("/:id", api.destroyAssignment)

	tg := g.Group("/teachers")
	tg.GET("", api.queryTeachers)
	tg.POST("", api.createTeacher)
	tg.GET("/subjects", api.querySubjects)
	tg.PUT("/:id", api.updateTeacher)
	tg.DELETE("/:id", api.destroyTeacher)
}

// Students

func (api *recordsApi) queryStudents(ctx echo.Context) error {
	classID, err := queryInt(ctx, "class_id")
	if err != nil {
		return err
	}
	filter := search.StudentFilter{
		Search:  queryString(ctx, "search"),
		ClassID: classID,
		Status:  queryString(ctx, "status"),
	}
	students, err := api.svc.Students(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	return ctx.JSON(http.StatusOK, students)
}

func (api *recordsApi) retrieveStudent(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	s, err := api.svc.GetStudent(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "getting student")
	}
	return ctx.JSON(http.StatusOK, s)
}

func (api *recordsApi) createStudent(ctx echo.Context) error {
	var data school.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}
	s, err := api.svc.CreateStudent(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating student")
	}
	return ctx.JSON(http.StatusCreated, s)
}

func (api *recordsApi) updateStudent(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	var data school.NewStudent
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}
	s, err := api.svc.UpdateStudent(ctx.Request().Context(), id, data)
	if err != nil {
		return errors.Wrap(err, "updating student")
	}
	return ctx.JSON(http.StatusOK, s)
}

func (api *recordsApi) destroyStudent(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	if err = api.svc.DeleteStudent(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting student")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// Classes

func (api *recordsApi) queryClasses(ctx echo.Context) error {
	classes, err := api.svc.Classes(ctx.Request().Context(), queryString(ctx, "search"))
	if err != nil {
		return errors.Wrap(err, "querying classes")
	}
	return ctx.JSON(http.StatusOK, classes)
}

func (api *recordsApi) createClass(ctx echo.Context) error {
	var data school.NewClass
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewClass")
	}
	c, err := api.svc.CreateClass(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating class")
	}
	return ctx.JSON(http.StatusCreated, c)
}

func (api *recordsApi) updateClass(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	var data school.NewClass
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewClass")
	}
	c, err := api.svc.UpdateClass(ctx.Request().Context(), id, data)
	if err != nil {
		return errors.Wrap(err, "updating class")
	}
	return ctx.JSON(http.StatusOK, c)
}

func (api *recordsApi) destroyClass(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	if err = api.svc.DeleteClass(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting class")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// Assignments

func (api *recordsApi) queryAssignments(ctx echo.Context) error {
	classID, err := queryInt(ctx, "class_id")
	if err != nil {
		return err
	}
	filter := search.AssignmentFilter{Search: queryString(ctx, "search"), ClassID: classID}
	assignments, err := api.svc.Assignments(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "querying assignments")
	}
	return ctx.JSON(http.StatusOK, assignments)
}

func (api *recordsApi) createAssignment(ctx echo.Context) error {
	var data school.NewAssignment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAssignment")
	}
	a, err := api.svc.CreateAssignment(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating assignment")
	}
	return ctx.JSON(http.StatusCreated, a)
}

func (api *recordsApi) updateAssignment(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	var data school.NewAssignment
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAssignment")
	}
	a, err := api.svc.UpdateAssignment(ctx.Request().Context(), id, data)
	if err != nil {
		return errors.Wrap(err, "updating assignment")
	}
	return ctx.JSON(http.StatusOK, a)
}

func (api *recordsApi) destroyAssignment(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	if err = api.svc.DeleteAssignment(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting assignment")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// Teachers

func (api *recordsApi) queryTeachers(ctx echo.Context) error {
	filter := search.TeacherFilter{
		Search:  queryString(ctx, "search"),
		Subject: queryString(ctx, "subject"),
	}
	teachers, err := api.svc.Teachers(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "querying teachers")
	}
	return ctx.JSON(http.StatusOK, teachers)
}

func (api *recordsApi) querySubjects(ctx echo.Context) error {
	subjects, err := api.svc.Subjects(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying subjects")
	}
	return ctx.JSON(http.StatusOK, subjects)
}

func (api *recordsApi) createTeacher(ctx echo.Context) error {
	var data school.NewTeacher
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTeacher")
	}
	t, err := api.svc.CreateTeacher(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating teacher")
	}
	return ctx.JSON(http.StatusCreated, t)
}

func (api *recordsApi) updateTeacher(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	var data school.NewTeacher
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTeacher")
	}
	t, err := api.svc.UpdateTeacher(ctx.Request().Context(), id, data)
	if err != nil {
		return errors.Wrap(err, "updating teacher")
	}
	return ctx.JSON(http.StatusOK, t)
}

func (api *recordsApi) destroyTeacher(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	if err = api.svc.DeleteTeacher(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting teacher")
	}
	return ctx.NoContent(http.StatusNoContent)
}

package records

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/schoolrecords/core/batch"
	"github.com/trezcool/schoolrecords/core/school"
	"github.com/trezcool/schoolrecords/core/stats"
)

// roster returns the students of classID, or every student when classID is nil.
func (svc *Service) roster(ctx context.Context, classID *int) ([]school.Student, error) {
	students, err := svc.store.ListStudents(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "listing students")
	}
	if classID == nil {
		return students, nil
	}
	return stats.ClassRoster(students, *classID), nil
}

// checkRoster sets a rows[i].student_id error for every submitted id not on roster.
// Rows already failing on their student id are left alone.
func checkRoster(fields map[string]string, ids []int, roster []school.Student, msg string) {
	on := make(map[int]bool, len(roster))
	for _, s := range roster {
		on[s.ID] = true
	}
	for i, id := range ids {
		key := fmt.Sprintf("rows[%d].student_id", i)
		if _, failed := fields[key]; failed || on[id] {
			continue
		}
		fields[key] = msg
	}
}

// AttendanceSheet builds the attendance rows of classID (all students when nil) for date.
func (svc *Service) AttendanceSheet(ctx context.Context, classID *int, date school.Date) ([]batch.AttendanceRow, error) {
	if date.IsZero() {
		date = svc.Today()
	}
	students, err := svc.roster(ctx, classID)
	if err != nil {
		return nil, err
	}
	existing, err := svc.store.ListAttendance(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "listing attendance")
	}
	return batch.AttendanceSheet(students, existing, date, classID), nil
}

// AttendanceInput is a submitted attendance sheet.
// MarkAll, when set, overrides every row's status before saving.
type AttendanceInput struct {
	Date    school.Date          `json:"date"`
	ClassID *int                 `json:"class_id"`
	MarkAll string               `json:"mark_all"`
	Rows    []AttendanceRowInput `json:"rows"`
}

type AttendanceRowInput struct {
	StudentID int    `json:"student_id"`
	Status    string `json:"status"`
	Notes     string `json:"notes"`
}

// rows validates in and converts it into sheet rows dated in.Date.
func (in AttendanceInput) rows() ([]batch.AttendanceRow, map[string]string) {
	fields := make(map[string]string)
	if in.Date.IsZero() {
		fields["date"] = "this field is required"
	}

	var markAll school.AttendanceStatus
	if in.MarkAll != "" {
		st, err := school.ParseAttendanceStatus(in.MarkAll)
		if err != nil {
			fields["mark_all"] = "invalid attendance status"
		}
		markAll = st
	}

	rows := make([]batch.AttendanceRow, 0, len(in.Rows))
	for i, r := range in.Rows {
		if r.StudentID <= 0 {
			fields[fmt.Sprintf("rows[%d].student_id", i)] = "this field is required"
		}
		status := school.Present
		if r.Status != "" {
			st, err := school.ParseAttendanceStatus(r.Status)
			if err != nil {
				fields[fmt.Sprintf("rows[%d].status", i)] = "invalid attendance status"
			}
			status = st
		}
		rows = append(rows, batch.AttendanceRow{
			StudentID: r.StudentID,
			Date:      in.Date,
			Status:    status,
			Notes:     r.Notes,
			ClassID:   in.ClassID,
		})
	}
	if markAll != "" {
		rows = batch.MarkAll(rows, markAll)
	}
	return batch.DedupeAttendance(rows), fields
}

// SaveAttendance reconciles the submitted sheet against the stored records and
// applies it sequentially. The error is set for invalid input or when the store
// cannot be read; a failed write is reported through the Result.
func (svc *Service) SaveAttendance(ctx context.Context, in AttendanceInput) (batch.Result, error) {
	rows, fields := in.rows()
	roster, err := svc.roster(ctx, in.ClassID)
	if err != nil {
		return batch.Result{}, err
	}
	ids := make([]int, len(in.Rows))
	for i, r := range in.Rows {
		ids[i] = r.StudentID
	}
	msg := "student not in class"
	if in.ClassID == nil {
		msg = "student not found"
	}
	checkRoster(fields, ids, roster, msg)
	if err = invalid(fields); err != nil {
		return batch.Result{}, err
	}

	existing, err := svc.store.ListAttendance(ctx)
	if err != nil {
		return batch.Result{}, errors.Wrap(err, "listing attendance")
	}
	plan := batch.AttendancePlan(batch.ReconcileAttendance(rows, existing))
	return svc.apply(ctx, "attendance", plan), nil
}

// GradeSheet builds the grade rows of an assignment's class.
func (svc *Service) GradeSheet(ctx context.Context, assignmentID int) (school.Assignment, []batch.GradeRow, error) {
	assignment, err := svc.store.GetAssignment(ctx, assignmentID)
	if err != nil {
		return school.Assignment{}, nil, err
	}
	students, err := svc.roster(ctx, &assignment.ClassID)
	if err != nil {
		return school.Assignment{}, nil, err
	}
	grades, err := svc.store.ListGrades(ctx)
	if err != nil {
		return school.Assignment{}, nil, errors.Wrap(err, "listing grades")
	}
	return assignment, batch.GradeSheet(students, grades, assignment), nil
}

type GradeInput struct {
	AssignmentID int             `json:"assignment_id"`
	Rows         []GradeRowInput `json:"rows"`
}

type GradeRowInput struct {
	StudentID int    `json:"student_id"`
	Score     string `json:"score"`
}

// SaveGrades records the non-blank scores of in against its assignment.
// Every row must name a student of the assignment's class.
func (svc *Service) SaveGrades(ctx context.Context, in GradeInput) (batch.Result, error) {
	assignment, err := svc.store.GetAssignment(ctx, in.AssignmentID)
	if err != nil {
		if school.IsNotFound(err) {
			return batch.Result{}, invalid(map[string]string{"assignment_id": "assignment not found"})
		}
		return batch.Result{}, errors.Wrap(err, "getting assignment")
	}

	roster, err := svc.roster(ctx, &assignment.ClassID)
	if err != nil {
		return batch.Result{}, err
	}

	fields := make(map[string]string)
	ids := make([]int, len(in.Rows))
	rows := make([]batch.GradeRow, 0, len(in.Rows))
	for i, r := range in.Rows {
		if r.StudentID <= 0 {
			fields[fmt.Sprintf("rows[%d].student_id", i)] = "this field is required"
		}
		// scores are checked here, as dedupe below shifts row indices
		if _, _, msg := batch.ParseScore(r.Score); msg != "" {
			fields[fmt.Sprintf("rows[%d].score", i)] = msg
		}
		ids[i] = r.StudentID
		rows = append(rows, batch.GradeRow{StudentID: r.StudentID, AssignmentID: assignment.ID, Score: r.Score})
	}
	checkRoster(fields, ids, roster, "student not in class")
	if err = invalid(fields); err != nil {
		return batch.Result{}, err
	}

	grades, err := svc.store.ListGrades(ctx)
	if err != nil {
		return batch.Result{}, errors.Wrap(err, "listing grades")
	}
	rows = batch.ReconcileGrades(batch.DedupeGrades(rows), grades)
	plan, err := batch.GradePlan(rows, assignment, svc.now())
	if err != nil {
		return batch.Result{}, err
	}
	return svc.apply(ctx, "grades", plan), nil
}

func (svc *Service) apply(ctx context.Context, kind string, plan batch.Plan) batch.Result {
	batchID := uuid.New().String()
	creates, updates := plan.Counts()
	svc.log.Debug(fmt.Sprintf("applying %s batch %s", kind, batchID), map[string]interface{}{
		"batch_id": batchID,
		"policy":   plan.Policy,
		"creates":  creates,
		"updates":  updates,
	})

	res := batch.Apply(ctx, plan, svc.store)

	sum := res.Summary()
	extras := map[string]interface{}{
		"batch_id":    batchID,
		"applied":     sum.Applied,
		"not_applied": sum.NotApplied,
	}
	if res.Err != nil {
		svc.log.Error(fmt.Sprintf("%s batch %s failed: %v", kind, batchID, res.Err), res.Err, extras)
	} else {
		svc.log.Info(fmt.Sprintf("%s batch %s applied", kind, batchID), extras)
	}
	return res
}

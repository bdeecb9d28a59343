package batch

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/schoolrecords/core"
	"github.com/trezcool/schoolrecords/core/school"
)

var (
	day      = school.MustParseDate("2024-03-10")
	students = []school.Student{
		{ID: 1, FirstName: "Awe", LastName: "Kabamba"},
		{ID: 2, FirstName: "Mbuyi", LastName: "Ilunga"},
		{ID: 3, FirstName: "Kasongo", LastName: "Tshala"},
	}
)

// recordingWriter records every call and fails the calls listed in failOn (1-based).
type recordingWriter struct {
	calls  []string
	failOn map[int]error
	nextID int
}

func (w *recordingWriter) call(name string) error {
	w.calls = append(w.calls, name)
	return w.failOn[len(w.calls)]
}

func (w *recordingWriter) CreateAttendance(_ context.Context, a school.Attendance) (school.Attendance, error) {
	if err := w.call("create_attendance"); err != nil {
		return school.Attendance{}, err
	}
	w.nextID++
	a.ID = 100 + w.nextID
	return a, nil
}

func (w *recordingWriter) UpdateAttendance(_ context.Context, a school.Attendance) (school.Attendance, error) {
	return a, w.call("update_attendance")
}

func (w *recordingWriter) CreateGrade(_ context.Context, g school.Grade) (school.Grade, error) {
	if err := w.call("create_grade"); err != nil {
		return school.Grade{}, err
	}
	w.nextID++
	g.ID = 100 + w.nextID
	return g, nil
}

func (w *recordingWriter) UpdateGrade(_ context.Context, g school.Grade) (school.Grade, error) {
	return g, w.call("update_grade")
}

func TestAttendanceSheet(t *testing.T) {
	existing := []school.Attendance{
		{ID: 7, StudentID: 2, Date: day, Status: school.Absent, Notes: "sick"},
		{ID: 8, StudentID: 1, Date: school.MustParseDate("2024-03-09"), Status: school.Absent},
	}

	rows := AttendanceSheet(students, existing, day, school.IntPtr(4))
	require.Len(t, rows, 3)

	assert.Nil(t, rows[0].ID, "other day's record is not matched")
	assert.Equal(t, school.Present, rows[0].Status)
	assert.Equal(t, "Awe Kabamba", rows[0].StudentName)

	require.NotNil(t, rows[1].ID)
	assert.Equal(t, 7, *rows[1].ID)
	assert.Equal(t, school.Absent, rows[1].Status)
	assert.Equal(t, "sick", rows[1].Notes)

	for _, r := range rows {
		assert.Equal(t, day, r.Date)
		assert.Equal(t, 4, *r.ClassID)
	}
}

func TestMarkAll(t *testing.T) {
	rows := AttendanceSheet(students, []school.Attendance{
		{ID: 7, StudentID: 2, Date: day, Status: school.Tardy, Notes: "bus"},
	}, day, nil)

	marked := MarkAll(rows, school.Absent)
	for _, r := range marked {
		assert.Equal(t, school.Absent, r.Status)
	}
	assert.Equal(t, "bus", marked[1].Notes)
	assert.Equal(t, 7, *marked[1].ID)

	// pure
	assert.Equal(t, school.Present, rows[0].Status)
	assert.Equal(t, school.Tardy, rows[1].Status)
	assert.Equal(t, marked, MarkAll(marked, school.Absent))
}

func TestSetStatusAndNotes(t *testing.T) {
	rows := AttendanceSheet(students, nil, day, nil)
	edited := SetNotes(SetStatus(rows, 3, school.Excused), 3, "doctor")

	assert.Equal(t, school.Excused, edited[2].Status)
	assert.Equal(t, "doctor", edited[2].Notes)
	assert.Equal(t, school.Present, rows[2].Status)
	assert.Equal(t, school.Present, edited[0].Status)

	counts := SheetCounts(edited)
	assert.Equal(t, 2, counts.Present)
	assert.Equal(t, 1, counts.Excused)
	assert.Equal(t, 3, counts.Total)
}

func TestAttendancePlan(t *testing.T) {
	rows := AttendanceSheet(students, []school.Attendance{
		{ID: 7, StudentID: 2, Date: day, Status: school.Absent},
	}, day, nil)

	plan := AttendancePlan(rows)
	assert.Equal(t, Sequential, plan.Policy)
	require.Equal(t, 3, plan.Len())
	assert.Equal(t, Create, plan.Ops[0].Kind)
	assert.Equal(t, Update, plan.Ops[1].Kind)
	assert.Equal(t, 7, plan.Ops[1].Attendance.ID)
	assert.Equal(t, Create, plan.Ops[2].Kind)

	creates, updates := plan.Counts()
	assert.Equal(t, 2, creates)
	assert.Equal(t, 1, updates)

	t.Run("reconciling twice yields updates only", func(t *testing.T) {
		w := &recordingWriter{}
		res := Apply(context.Background(), plan, w)
		require.NoError(t, res.Err)

		var saved []school.Attendance
		for _, op := range res.Applied {
			saved = append(saved, *op.Attendance)
		}
		again := AttendancePlan(AttendanceSheet(students, saved, day, nil))
		creates, updates := again.Counts()
		assert.Equal(t, 0, creates)
		assert.Equal(t, 3, updates)
	})
}

func TestGradeSheetAndPlan(t *testing.T) {
	assignment := school.Assignment{ID: 5, Name: "Quiz 1", Points: 20}
	existing := []school.Grade{
		{ID: 9, StudentID: 1, AssignmentID: 5, Score: 18, MaxScore: 10},
		{ID: 10, StudentID: 2, AssignmentID: 6, Score: 3, MaxScore: 10},
	}
	rows := GradeSheet(students, existing, assignment)
	require.Len(t, rows, 3)
	assert.Equal(t, 9, *rows[0].ID)
	assert.Equal(t, "18", rows[0].Score)
	assert.Nil(t, rows[1].ID, "grade of another assignment is not matched")
	assert.Equal(t, "", rows[1].Score)

	rows = SetScore(rows, 3, " 12.5 ")
	now := time.Date(2024, 3, 10, 15, 0, 0, 0, time.FixedZone("CAT", 2*3600))

	plan, err := GradePlan(rows, assignment, now)
	require.NoError(t, err)
	require.Equal(t, 2, plan.Len(), "blank score is skipped")

	upd, crt := plan.Ops[0], plan.Ops[1]
	assert.Equal(t, Update, upd.Kind)
	assert.Equal(t, 9, upd.Grade.ID)
	assert.Equal(t, 20.0, upd.Grade.MaxScore, "max score follows the assignment")
	assert.Equal(t, Create, crt.Kind)
	assert.Equal(t, 3, crt.Grade.StudentID)
	assert.Equal(t, 12.5, crt.Grade.Score)
	assert.Equal(t, 20.0, crt.Grade.MaxScore)
	assert.Equal(t, now.UTC(), crt.Grade.DateRecorded)

	t.Run("scores are not clamped", func(t *testing.T) {
		plan, err := GradePlan(SetScore(rows, 1, "25"), assignment, now)
		require.NoError(t, err)
		assert.Equal(t, 25.0, plan.Ops[0].Grade.Score)
	})

	t.Run("unparsable score", func(t *testing.T) {
		plan, err := GradePlan(SetScore(rows, 2, "abc"), assignment, now)
		require.Error(t, err)
		var vErr *core.ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Equal(t, map[string]string{"rows[1].score": "must be a number"}, vErr.FieldMap())
		assert.Equal(t, 0, plan.Len())
	})

	t.Run("scores outside the number line", func(t *testing.T) {
		bad := SetScore(SetScore(SetScore(rows, 1, "NaN"), 2, "-5"), 3, "+Inf")
		plan, err := GradePlan(bad, assignment, now)
		var vErr *core.ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Equal(t, map[string]string{
			"rows[0].score": "must be a number",
			"rows[1].score": "must not be negative",
			"rows[2].score": "must be a number",
		}, vErr.FieldMap())
		assert.Equal(t, 0, plan.Len())
	})
}

func TestParseScore(t *testing.T) {
	tests := []struct {
		raw       string
		wantScore float64
		wantBlank bool
		wantMsg   string
	}{
		{raw: "  ", wantBlank: true},
		{raw: "0", wantScore: 0},
		{raw: " 17.5 ", wantScore: 17.5},
		{raw: "120", wantScore: 120},
		{raw: "abc", wantMsg: "must be a number"},
		{raw: "NaN", wantMsg: "must be a number"},
		{raw: "Inf", wantMsg: "must be a number"},
		{raw: "-Inf", wantMsg: "must be a number"},
		{raw: "-5", wantMsg: "must not be negative"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			score, blank, msg := ParseScore(tt.raw)
			assert.Equal(t, tt.wantScore, score)
			assert.Equal(t, tt.wantBlank, blank)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestApply(t *testing.T) {
	rows := AttendanceSheet(students, []school.Attendance{
		{ID: 7, StudentID: 1, Date: day, Status: school.Absent},
		{ID: 8, StudentID: 2, Date: day, Status: school.Absent},
	}, day, nil)
	plan := AttendancePlan(rows) // update, update, create

	t.Run("all applied", func(t *testing.T) {
		w := &recordingWriter{}
		res := Apply(context.Background(), plan, w)
		assert.True(t, res.OK())
		assert.Len(t, res.Applied, 3)
		assert.Nil(t, res.Failed)
		assert.Empty(t, res.NotApplied)
		assert.Equal(t, []string{"update_attendance", "update_attendance", "create_attendance"}, w.calls)
		assert.Equal(t, 101, res.Applied[2].Attendance.ID)
	})

	t.Run("stops at the first failure", func(t *testing.T) {
		boom := errors.New("store unavailable")
		w := &recordingWriter{failOn: map[int]error{2: boom}}
		res := Apply(context.Background(), plan, w)

		assert.False(t, res.OK())
		assert.Equal(t, boom, errors.Cause(res.Err))
		assert.Equal(t, []string{"update_attendance", "update_attendance"}, w.calls, "create is never attempted")
		require.Len(t, res.Applied, 1)
		assert.Equal(t, 1, res.Applied[0].StudentID())
		require.NotNil(t, res.Failed)
		assert.Equal(t, 2, res.Failed.StudentID())
		require.Len(t, res.NotApplied, 1)
		assert.Equal(t, Create, res.NotApplied[0].Kind)

		sum := res.Summary()
		assert.Equal(t, Summary{Applied: 1, NotApplied: 1, Failed: true, Error: res.Err.Error()}, sum)
	})

	t.Run("grades", func(t *testing.T) {
		assignment := school.Assignment{ID: 5, Points: 10}
		grows := SetScore(SetScore(GradeSheet(students, nil, assignment), 1, "7"), 2, "9")
		gplan, err := GradePlan(grows, assignment, time.Now())
		require.NoError(t, err)

		w := &recordingWriter{failOn: map[int]error{1: errors.New("nope")}}
		res := Apply(context.Background(), gplan, w)
		assert.Empty(t, res.Applied)
		assert.Len(t, res.NotApplied, 1)
		assert.Equal(t, []string{"create_grade"}, w.calls)
	})

	t.Run("empty plan", func(t *testing.T) {
		res := Apply(context.Background(), Plan{Policy: Sequential}, &recordingWriter{})
		assert.True(t, res.OK())
		assert.Empty(t, res.Applied)
	})

	t.Run("op without record", func(t *testing.T) {
		res := Apply(context.Background(), Plan{Ops: []Op{{Kind: Create}}}, &recordingWriter{})
		assert.Equal(t, errEmptyOp, errors.Cause(res.Err))
	})
}

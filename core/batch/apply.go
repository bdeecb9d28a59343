package batch

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/schoolrecords/core/school"
)

// Writer is the subset of the store Apply needs.
type Writer interface {
	school.AttendanceWriter
	school.GradeWriter
}

// Result reports how far a plan got.
// When Err is nil, Failed is nil and NotApplied is empty.
type Result struct {
	Applied    []Op  `json:"applied"`
	Failed     *Op   `json:"failed,omitempty"`
	NotApplied []Op  `json:"not_applied"`
	Err        error `json:"-"`
}

func (r Result) OK() bool { return r.Err == nil }

// Summary is a serializable digest of a Result.
type Summary struct {
	Applied    int    `json:"applied"`
	NotApplied int    `json:"not_applied"`
	Failed     bool   `json:"failed"`
	Error      string `json:"error,omitempty"`
}

func (r Result) Summary() Summary {
	s := Summary{Applied: len(r.Applied), NotApplied: len(r.NotApplied), Failed: r.Failed != nil}
	if r.Err != nil {
		s.Error = r.Err.Error()
	}
	return s
}

var errEmptyOp = errors.New("operation carries no record")

// Apply runs plan's operations in order against w and stops at the first failure.
// Each store call gets ctx; Apply itself never cancels between operations.
// Applied ops hold the records as returned by the store.
func Apply(ctx context.Context, plan Plan, w Writer) Result {
	res := Result{
		Applied:    make([]Op, 0, len(plan.Ops)),
		NotApplied: make([]Op, 0),
	}
	for i, op := range plan.Ops {
		done, err := applyOne(ctx, op, w)
		if err != nil {
			failed := op
			res.Failed = &failed
			res.NotApplied = append(res.NotApplied, plan.Ops[i+1:]...)
			res.Err = errors.Wrapf(err, "%s for student %d (op %d of %d)", op.Kind, op.StudentID(), i+1, len(plan.Ops))
			return res
		}
		res.Applied = append(res.Applied, done)
	}
	return res
}

func applyOne(ctx context.Context, op Op, w Writer) (Op, error) {
	switch {
	case op.Attendance != nil:
		var (
			rec school.Attendance
			err error
		)
		if op.Kind == Update {
			rec, err = w.UpdateAttendance(ctx, *op.Attendance)
		} else {
			rec, err = w.CreateAttendance(ctx, *op.Attendance)
		}
		if err != nil {
			return op, err
		}
		return Op{Kind: op.Kind, Attendance: &rec}, nil

	case op.Grade != nil:
		var (
			g   school.Grade
			err error
		)
		if op.Kind == Update {
			g, err = w.UpdateGrade(ctx, *op.Grade)
		} else {
			g, err = w.CreateGrade(ctx, *op.Grade)
		}
		if err != nil {
			return op, err
		}
		return Op{Kind: op.Kind, Grade: &g}, nil
	}
	return op, errEmptyOp
}

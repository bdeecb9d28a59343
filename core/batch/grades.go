package batch

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/trezcool/schoolrecords/core"
	"github.com/trezcool/schoolrecords/core/school"
)

// GradeRow is one student's editable score for an assignment.
// Score is the raw entry; blank means "not graded".
type GradeRow struct {
	ID           *int   `json:"id"`
	StudentID    int    `json:"student_id"`
	StudentName  string `json:"student_name"`
	AssignmentID int    `json:"assignment_id"`
	Score        string `json:"score"`
}

// GradeSheet builds one row per student for assignment, prefilled from the
// existing grade keyed by (StudentID, AssignmentID).
func GradeSheet(students []school.Student, existing []school.Grade, assignment school.Assignment) []GradeRow {
	byStudent := make(map[int]school.Grade)
	for _, g := range existing {
		if g.AssignmentID != assignment.ID {
			continue
		}
		if _, dup := byStudent[g.StudentID]; !dup {
			byStudent[g.StudentID] = g
		}
	}

	rows := make([]GradeRow, 0, len(students))
	for _, s := range students {
		row := GradeRow{
			StudentID:    s.ID,
			StudentName:  s.FullName(),
			AssignmentID: assignment.ID,
		}
		if g, ok := byStudent[s.ID]; ok {
			row.ID = school.IntPtr(g.ID)
			row.Score = strconv.FormatFloat(g.Score, 'f', -1, 64)
		}
		rows = append(rows, row)
	}
	return rows
}

// SetScore returns a copy of rows with studentID's score entry changed.
func SetScore(rows []GradeRow, studentID int, score string) []GradeRow {
	out := make([]GradeRow, len(rows))
	copy(out, rows)
	for i := range out {
		if out[i].StudentID == studentID {
			out[i].Score = score
		}
	}
	return out
}

const (
	notANumberText = "must be a number"
	negativeText   = "must not be negative"
)

// ParseScore reads a score entry. Blank entries report blank; msg is the field
// error for an entry that is not a finite number >= 0. Scores above the
// assignment's points are accepted as is.
func ParseScore(raw string) (score float64, blank bool, msg string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, true, ""
	}
	score, err := strconv.ParseFloat(raw, 64)
	switch {
	case err != nil, math.IsNaN(score), math.IsInf(score, 0):
		return 0, false, notANumberText
	case score < 0:
		return 0, false, negativeText
	}
	return score, false, ""
}

// GradePlan turns the graded rows into writes. Rows with a blank score are skipped.
// MaxScore is taken from assignment.Points and DateRecorded from now, for creates and updates alike.
// Invalid scores (see ParseScore) are reported as field errors keyed "rows[i].score" and nothing is planned.
func GradePlan(rows []GradeRow, assignment school.Assignment, now time.Time) (Plan, error) {
	plan := Plan{Policy: Sequential, Ops: make([]Op, 0, len(rows))}
	fieldErrs := make(map[string]string)
	recorded := now.UTC()

	for i, r := range rows {
		score, blank, msg := ParseScore(r.Score)
		if blank {
			continue
		}
		if msg != "" {
			fieldErrs[fmt.Sprintf("rows[%d].score", i)] = msg
			continue
		}
		g := school.Grade{
			StudentID:    r.StudentID,
			AssignmentID: assignment.ID,
			Score:        score,
			MaxScore:     assignment.Points,
			DateRecorded: recorded,
		}
		kind := Create
		if r.ID != nil {
			g.ID = *r.ID
			kind = Update
		}
		plan.Ops = append(plan.Ops, Op{Kind: kind, Grade: &g})
	}

	if len(fieldErrs) > 0 {
		return Plan{Policy: Sequential}, core.NewFieldsError(fieldErrs)
	}
	return plan, nil
}

package batch

import (
	"github.com/trezcool/schoolrecords/core/school"
)

// ReconcileAttendance re-keys submitted rows against existing records by (StudentID, Date):
// a row whose key already has a record targets that record's id, any other row has no id.
// Client-sent ids are never trusted, so saving the same sheet twice updates instead of
// duplicating. Returns a copy.
func ReconcileAttendance(rows []AttendanceRow, existing []school.Attendance) []AttendanceRow {
	type key struct {
		studentID int
		date      school.Date
	}
	ids := make(map[key]int, len(existing))
	for _, a := range existing {
		k := key{a.StudentID, a.Date}
		if _, dup := ids[k]; !dup {
			ids[k] = a.ID
		}
	}

	out := make([]AttendanceRow, len(rows))
	for i, r := range rows {
		r.ID = nil
		if id, ok := ids[key{r.StudentID, r.Date}]; ok {
			r.ID = school.IntPtr(id)
		}
		out[i] = r
	}
	return out
}

// ReconcileGrades re-keys rows by (StudentID, AssignmentID) the way ReconcileAttendance does.
func ReconcileGrades(rows []GradeRow, existing []school.Grade) []GradeRow {
	type key struct {
		studentID    int
		assignmentID int
	}
	ids := make(map[key]int, len(existing))
	for _, g := range existing {
		k := key{g.StudentID, g.AssignmentID}
		if _, dup := ids[k]; !dup {
			ids[k] = g.ID
		}
	}

	out := make([]GradeRow, len(rows))
	for i, r := range rows {
		r.ID = nil
		if id, ok := ids[key{r.StudentID, r.AssignmentID}]; ok {
			r.ID = school.IntPtr(id)
		}
		out[i] = r
	}
	return out
}

// DedupeAttendance keeps the last row per student; later edits win. Order of first appearance is kept.
func DedupeAttendance(rows []AttendanceRow) []AttendanceRow {
	pos := make(map[int]int, len(rows))
	out := make([]AttendanceRow, 0, len(rows))
	for _, r := range rows {
		if i, ok := pos[r.StudentID]; ok {
			out[i] = r
			continue
		}
		pos[r.StudentID] = len(out)
		out = append(out, r)
	}
	return out
}

// DedupeGrades keeps the last row per student.
func DedupeGrades(rows []GradeRow) []GradeRow {
	pos := make(map[int]int, len(rows))
	out := make([]GradeRow, 0, len(rows))
	for _, r := range rows {
		if i, ok := pos[r.StudentID]; ok {
			out[i] = r
			continue
		}
		pos[r.StudentID] = len(out)
		out = append(out, r)
	}
	return out
}

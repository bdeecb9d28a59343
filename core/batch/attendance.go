package batch

import (
	"github.com/trezcool/schoolrecords/core/school"
	"github.com/trezcool/schoolrecords/core/stats"
)

// AttendanceRow is one student's editable mark for the sheet's date.
// ID is set when a record already exists for (StudentID, Date).
type AttendanceRow struct {
	ID          *int                    `json:"id"`
	StudentID   int                     `json:"student_id"`
	StudentName string                  `json:"student_name"`
	Date        school.Date             `json:"date"`
	Status      school.AttendanceStatus `json:"status"`
	Notes       string                  `json:"notes"`
	ClassID     *int                    `json:"class_id"`
}

// AttendanceSheet builds one row per student for date.
// A student already marked that day gets the existing record's id, status and notes;
// any other student defaults to Present with no notes.
// classID, when set, is stamped on every row.
func AttendanceSheet(
	students []school.Student,
	existing []school.Attendance,
	date school.Date,
	classID *int,
) []AttendanceRow {
	byStudent := make(map[int]school.Attendance)
	for _, a := range existing {
		if a.Date != date {
			continue
		}
		if _, dup := byStudent[a.StudentID]; !dup {
			byStudent[a.StudentID] = a
		}
	}

	rows := make([]AttendanceRow, 0, len(students))
	for _, s := range students {
		row := AttendanceRow{
			StudentID:   s.ID,
			StudentName: s.FullName(),
			Date:        date,
			Status:      school.Present,
			ClassID:     classID,
		}
		if a, ok := byStudent[s.ID]; ok {
			row.ID = school.IntPtr(a.ID)
			row.Status = a.Status
			row.Notes = a.Notes
		}
		rows = append(rows, row)
	}
	return rows
}

// MarkAll returns a copy of rows with every status set to status. Notes are preserved.
func MarkAll(rows []AttendanceRow, status school.AttendanceStatus) []AttendanceRow {
	out := make([]AttendanceRow, len(rows))
	for i, r := range rows {
		r.Status = status
		out[i] = r
	}
	return out
}

// SetStatus returns a copy of rows with studentID's status changed.
func SetStatus(rows []AttendanceRow, studentID int, status school.AttendanceStatus) []AttendanceRow {
	return edit(rows, studentID, func(r *AttendanceRow) { r.Status = status })
}

// SetNotes returns a copy of rows with studentID's notes changed.
func SetNotes(rows []AttendanceRow, studentID int, notes string) []AttendanceRow {
	return edit(rows, studentID, func(r *AttendanceRow) { r.Notes = notes })
}

func edit(rows []AttendanceRow, studentID int, fn func(*AttendanceRow)) []AttendanceRow {
	out := make([]AttendanceRow, len(rows))
	copy(out, rows)
	for i := range out {
		if out[i].StudentID == studentID {
			fn(&out[i])
		}
	}
	return out
}

// SheetCounts tallies the rows' statuses.
func SheetCounts(rows []AttendanceRow) stats.StatusCounts {
	records := make([]school.Attendance, 0, len(rows))
	for _, r := range rows {
		records = append(records, school.Attendance{Status: r.Status})
	}
	return stats.CountStatuses(records)
}

// AttendancePlan turns every row into a write: Update when the row has an id, Create otherwise.
func AttendancePlan(rows []AttendanceRow) Plan {
	plan := Plan{Policy: Sequential, Ops: make([]Op, 0, len(rows))}
	for _, r := range rows {
		rec := school.Attendance{
			StudentID: r.StudentID,
			Date:      r.Date,
			Status:    r.Status,
			Notes:     r.Notes,
			ClassID:   r.ClassID,
		}
		kind := Create
		if r.ID != nil {
			rec.ID = *r.ID
			kind = Update
		}
		plan.Ops = append(plan.Ops, Op{Kind: kind, Attendance: &rec})
	}
	return plan
}

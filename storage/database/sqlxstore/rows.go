package sqlxstore

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/schoolrecords/core/school"
)

// timestamp is stored as RFC 3339 text, which postgres casts to timestamptz.
// It scans both native timestamps and text.
type timestamp time.Time

func (t timestamp) Value() (driver.Value, error) {
	return time.Time(t).UTC().Format(time.RFC3339Nano), nil
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

func (t *timestamp) Scan(src interface{}) error {
	var s string
	switch v := src.(type) {
	case time.Time:
		*t = timestamp(v.UTC())
		return nil
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("timestamp: cannot scan %T", src)
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			*t = timestamp(parsed.UTC())
			return nil
		}
	}
	return errors.Errorf("timestamp: cannot parse %q", s)
}

func nullInt(i *int) null.Int {
	return null.IntFromPtr(i)
}

// Students

var studentCols = []string{"first_name", "last_name", "email", "date_of_birth", "enrollment_date", "status", "class_id"}

type studentRow struct {
	ID             int         `db:"id"`
	FirstName      string      `db:"first_name"`
	LastName       string      `db:"last_name"`
	Email          string      `db:"email"`
	DateOfBirth    school.Date `db:"date_of_birth"`
	EnrollmentDate school.Date `db:"enrollment_date"`
	Status         string      `db:"status"`
	ClassID        null.Int    `db:"class_id"`
}

func studentArgs(s school.Student) []interface{} {
	return []interface{}{s.FirstName, s.LastName, s.Email, s.DateOfBirth, s.EnrollmentDate, s.Status, nullInt(s.ClassID)}
}

func (r studentRow) student() school.Student {
	return school.Student{
		ID:             r.ID,
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		Email:          r.Email,
		DateOfBirth:    r.DateOfBirth,
		EnrollmentDate: r.EnrollmentDate,
		Status:         r.Status,
		ClassID:        r.ClassID.Ptr(),
	}
}

// Classes

var classCols = []string{"name", "subject", "room", "schedule", "teacher_id"}

type classRow struct {
	ID        int      `db:"id"`
	Name      string   `db:"name"`
	Subject   string   `db:"subject"`
	Room      string   `db:"room"`
	Schedule  string   `db:"schedule"`
	TeacherID null.Int `db:"teacher_id"`
}

func classArgs(c school.Class) []interface{} {
	return []interface{}{c.Name, c.Subject, c.Room, c.Schedule, nullInt(c.TeacherID)}
}

func (r classRow) class() school.Class {
	return school.Class{
		ID:        r.ID,
		Name:      r.Name,
		Subject:   r.Subject,
		Room:      r.Room,
		Schedule:  r.Schedule,
		TeacherID: r.TeacherID.Ptr(),
	}
}

// Teachers

var teacherCols = []string{"name", "email", "subject", "tags"}

type teacherRow struct {
	ID      int    `db:"id"`
	Name    string `db:"name"`
	Email   string `db:"email"`
	Subject string `db:"subject"`
	Tags    string `db:"tags"` // JSON array
}

func teacherArgs(t school.Teacher) ([]interface{}, error) {
	tags := t.Tags
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return nil, errors.Wrap(err, "encoding tags")
	}
	return []interface{}{t.Name, t.Email, t.Subject, string(b)}, nil
}

func (r teacherRow) teacher() (school.Teacher, error) {
	t := school.Teacher{ID: r.ID, Name: r.Name, Email: r.Email, Subject: r.Subject}
	if r.Tags != "" {
		if err := json.Unmarshal([]byte(r.Tags), &t.Tags); err != nil {
			return school.Teacher{}, errors.Wrapf(err, "decoding tags of teacher %d", r.ID)
		}
	}
	return t, nil
}

// Assignments

var assignmentCols = []string{"name", "type", "due_date", "points", "class_id"}

type assignmentRow struct {
	ID      int         `db:"id"`
	Name    string      `db:"name"`
	Type    string      `db:"type"`
	DueDate school.Date `db:"due_date"`
	Points  float64     `db:"points"`
	ClassID int         `db:"class_id"`
}

func assignmentArgs(a school.Assignment) []interface{} {
	return []interface{}{a.Name, a.Type, a.DueDate, a.Points, a.ClassID}
}

func (r assignmentRow) assignment() school.Assignment {
	return school.Assignment(r)
}

// Grades

var gradeCols = []string{"student_id", "assignment_id", "score", "max_score", "date_recorded"}

type gradeRow struct {
	ID           int       `db:"id"`
	StudentID    int       `db:"student_id"`
	AssignmentID int       `db:"assignment_id"`
	Score        float64   `db:"score"`
	MaxScore     float64   `db:"max_score"`
	DateRecorded timestamp `db:"date_recorded"`
}

func gradeArgs(g school.Grade) []interface{} {
	return []interface{}{g.StudentID, g.AssignmentID, g.Score, g.MaxScore, timestamp(g.DateRecorded)}
}

func (r gradeRow) grade() school.Grade {
	return school.Grade{
		ID:           r.ID,
		StudentID:    r.StudentID,
		AssignmentID: r.AssignmentID,
		Score:        r.Score,
		MaxScore:     r.MaxScore,
		DateRecorded: time.Time(r.DateRecorded),
	}
}

// Attendance

var attendanceCols = []string{"student_id", "date", "status", "notes", "class_id"}

type attendanceRow struct {
	ID        int         `db:"id"`
	StudentID int         `db:"student_id"`
	Date      school.Date `db:"date"`
	Status    string      `db:"status"`
	Notes     string      `db:"notes"`
	ClassID   null.Int    `db:"class_id"`
}

func attendanceArgs(a school.Attendance) []interface{} {
	return []interface{}{a.StudentID, a.Date, string(a.Status), a.Notes, nullInt(a.ClassID)}
}

func (r attendanceRow) attendance() school.Attendance {
	return school.Attendance{
		ID:        r.ID,
		StudentID: r.StudentID,
		Date:      r.Date,
		Status:    school.AttendanceStatus(r.Status),
		Notes:     r.Notes,
		ClassID:   r.ClassID.Ptr(),
	}
}

func withID(cols []string) []string {
	return append([]string{"id"}, cols...)
}

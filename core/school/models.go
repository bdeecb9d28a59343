package school

import (
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Student statuses
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Assignment types
const (
	AssignmentHomework = "homework"
	AssignmentQuiz     = "quiz"
	AssignmentExam     = "exam"
	AssignmentProject  = "project"
)

// AttendanceStatus is the mark given to a student for a day.
type AttendanceStatus string

const (
	Present AttendanceStatus = "present"
	Absent  AttendanceStatus = "absent"
	Tardy   AttendanceStatus = "tardy"
	Excused AttendanceStatus = "excused"
)

var (
	StudentStatuses    = []string{StatusActive, StatusInactive}
	AssignmentTypes    = []string{AssignmentHomework, AssignmentQuiz, AssignmentExam, AssignmentProject}
	AttendanceStatuses = []AttendanceStatus{Present, Absent, Tardy, Excused}

	ErrInvalidStatus = errors.New("invalid attendance status")
)

// ParseAttendanceStatus normalizes s; "late" is accepted as Tardy.
func ParseAttendanceStatus(s string) (AttendanceStatus, error) {
	switch st := AttendanceStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case Present, Absent, Tardy, Excused:
		return st, nil
	case "late":
		return Tardy, nil
	default:
		return "", errors.Wrapf(ErrInvalidStatus, "%q", s)
	}
}

type Student struct {
	ID             int    `json:"id"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email"`
	DateOfBirth    Date   `json:"date_of_birth"`
	EnrollmentDate Date   `json:"enrollment_date"`
	Status         string `json:"status"`
	ClassID        *int   `json:"class_id"`
}

func (s Student) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

func (s Student) IsActive() bool { return s.Status == StatusActive }

// InClass reports whether s is enrolled in the class with the given id.
func (s Student) InClass(classID int) bool {
	return s.ClassID != nil && *s.ClassID == classID
}

type Class struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Subject   string `json:"subject"`
	Room      string `json:"room"`
	Schedule  string `json:"schedule"`
	TeacherID *int   `json:"teacher_id"`
}

type Teacher struct {
	ID      int      `json:"id"`
	Name    string   `json:"name"`
	Email   string   `json:"email"`
	Subject string   `json:"subject"`
	Tags    []string `json:"tags"`
}

type Assignment struct {
	ID      int     `json:"id"`
	Name    string  `json:"name"`
	Type    string  `json:"type"`
	DueDate Date    `json:"due_date"`
	Points  float64 `json:"points"`
	ClassID int     `json:"class_id"`
}

// Grade is one student's score on one assignment.
// MaxScore is copied from the assignment when the grade is recorded and stored independently.
type Grade struct {
	ID           int       `json:"id"`
	StudentID    int       `json:"student_id"`
	AssignmentID int       `json:"assignment_id"`
	Score        float64   `json:"score"`
	MaxScore     float64   `json:"max_score"`
	DateRecorded time.Time `json:"date_recorded"` // UTC
}

type Attendance struct {
	ID        int              `json:"id"`
	StudentID int              `json:"student_id"`
	Date      Date             `json:"date"`
	Status    AttendanceStatus `json:"status"`
	Notes     string           `json:"notes"`
	ClassID   *int             `json:"class_id"`
}

// IntPtr returns a pointer to a copy of i.
func IntPtr(i int) *int { return &i }

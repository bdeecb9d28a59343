package school

import (
	"context"

	"github.com/pkg/errors"
)

var (
	// errors
	ErrNotFound = errors.New("record not found")
)

type (
	StudentRepository interface {
		ListStudents(ctx context.Context) ([]Student, error)
		GetStudent(ctx context.Context, id int) (Student, error)
		CreateStudent(ctx context.Context, s Student) (Student, error)
		UpdateStudent(ctx context.Context, s Student) (Student, error)
		DeleteStudent(ctx context.Context, id int) error
	}

	ClassRepository interface {
		ListClasses(ctx context.Context) ([]Class, error)
		GetClass(ctx context.Context, id int) (Class, error)
		CreateClass(ctx context.Context, c Class) (Class, error)
		UpdateClass(ctx context.Context, c Class) (Class, error)
		DeleteClass(ctx context.Context, id int) error
	}

	TeacherRepository interface {
		ListTeachers(ctx context.Context) ([]Teacher, error)
		CreateTeacher(ctx context.Context, t Teacher) (Teacher, error)
		UpdateTeacher(ctx context.Context, t Teacher) (Teacher, error)
		DeleteTeacher(ctx context.Context, id int) error
	}

	AssignmentRepository interface {
		ListAssignments(ctx context.Context) ([]Assignment, error)
		GetAssignment(ctx context.Context, id int) (Assignment, error)
		CreateAssignment(ctx context.Context, a Assignment) (Assignment, error)
		UpdateAssignment(ctx context.Context, a Assignment) (Assignment, error)
		DeleteAssignment(ctx context.Context, id int) error
	}

	GradeWriter interface {
		CreateGrade(ctx context.Context, g Grade) (Grade, error)
		UpdateGrade(ctx context.Context, g Grade) (Grade, error)
	}

	GradeRepository interface {
		GradeWriter
		ListGrades(ctx context.Context) ([]Grade, error)
		DeleteGrade(ctx context.Context, id int) error
	}

	AttendanceWriter interface {
		CreateAttendance(ctx context.Context, a Attendance) (Attendance, error)
		UpdateAttendance(ctx context.Context, a Attendance) (Attendance, error)
	}

	AttendanceRepository interface {
		AttendanceWriter
		ListAttendance(ctx context.Context) ([]Attendance, error)
		DeleteAttendance(ctx context.Context, id int) error
	}

	// Store is the record service: CRUD per record kind, reachable by id.
	// Update replaces the whole record; a missing id yields ErrNotFound.
	// Stores serialize their own writes.
	Store interface {
		StudentRepository
		ClassRepository
		TeacherRepository
		AssignmentRepository
		GradeRepository
		AttendanceRepository
	}
)

// IsNotFound reports whether err was caused by ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Cause(err) == ErrNotFound
}

// Package stats derives read-only views and statistics from record snapshots.
// Everything here is a pure function of its inputs and safe for concurrent use;
// results must be recomputed whenever the snapshot changes.
package stats

import (
	"github.com/trezcool/schoolrecords/core/school"
)

// EnrichedStudent is a Student joined with its class and performance figures.
type EnrichedStudent struct {
	school.Student
	ClassName      *string `json:"class_name"`
	GradeAverage   int     `json:"grade_average"`   // 0-100, rounded
	AttendanceRate int     `json:"attendance_rate"` // 0-100, rounded
}

// ClassSummary is a Class with the students enrolled in it.
type ClassSummary struct {
	school.Class
	StudentCount int              `json:"student_count"`
	Students     []school.Student `json:"students"`
}

// EnrichStudents resolves every student's class name, grade average and attendance rate.
// No student is dropped: an unset or dangling class id yields a nil ClassName.
func EnrichStudents(
	students []school.Student,
	classes []school.Class,
	grades []school.Grade,
	attendance []school.Attendance,
) []EnrichedStudent {
	classNames := make(map[int]string, len(classes))
	for _, c := range classes {
		classNames[c.ID] = c.Name
	}
	gradesBy := GradesByStudent(grades)
	attendanceBy := AttendanceByStudent(attendance)

	out := make([]EnrichedStudent, 0, len(students))
	for _, s := range students {
		es := EnrichedStudent{
			Student:        s,
			GradeAverage:   Round(GradeAverage(gradesBy[s.ID])),
			AttendanceRate: Round(AttendanceRate(attendanceBy[s.ID])),
		}
		if s.ClassID != nil {
			if name, ok := classNames[*s.ClassID]; ok {
				es.ClassName = &name
			}
		}
		out = append(out, es)
	}
	return out
}

// EnrichClasses counts and lists each class's students from the same filtered slice.
func EnrichClasses(classes []school.Class, students []school.Student) []ClassSummary {
	out := make([]ClassSummary, 0, len(classes))
	for _, c := range classes {
		roster := ClassRoster(students, c.ID)
		out = append(out, ClassSummary{
			Class:        c,
			StudentCount: len(roster),
			Students:     roster,
		})
	}
	return out
}

// ClassRoster returns the students enrolled in classID, in input order.
func ClassRoster(students []school.Student, classID int) []school.Student {
	roster := make([]school.Student, 0)
	for _, s := range students {
		if s.InClass(classID) {
			roster = append(roster, s)
		}
	}
	return roster
}

func GradesByStudent(grades []school.Grade) map[int][]school.Grade {
	by := make(map[int][]school.Grade)
	for _, g := range grades {
		by[g.StudentID] = append(by[g.StudentID], g)
	}
	return by
}

func AttendanceByStudent(records []school.Attendance) map[int][]school.Attendance {
	by := make(map[int][]school.Attendance)
	for _, r := range records {
		by[r.StudentID] = append(by[r.StudentID], r)
	}
	return by
}

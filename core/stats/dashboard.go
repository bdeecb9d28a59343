package stats

import (
	"sort"
	"time"

	"github.com/trezcool/schoolrecords/core/school"
)

const (
	// UnknownStudent names grades whose student id does not resolve.
	UnknownStudent = "Unknown"

	DashboardListLimit = 5
)

// Snapshot is one consistent read of the record store.
type Snapshot struct {
	Students    []school.Student
	Classes     []school.Class
	Teachers    []school.Teacher
	Assignments []school.Assignment
	Grades      []school.Grade
	Attendance  []school.Attendance
}

// RecentGrade is a grade with its student's name and its percent and letter.
type RecentGrade struct {
	school.Grade
	StudentName string  `json:"student_name"`
	Percent     float64 `json:"percent"`
	Letter      Letter  `json:"letter"`
}

// Performer is a student with the average of their scorable grades.
type Performer struct {
	Student      school.Student `json:"student"`
	GradeAverage float64        `json:"grade_average"` // exact
	GradeCount   int            `json:"grade_count"`
}

// DashboardStats is the school-wide summary rendered on the dashboard.
type DashboardStats struct {
	TotalStudents       int           `json:"total_students"`
	ActiveStudents      int           `json:"active_students"`
	TotalClasses        int           `json:"total_classes"`
	OverallAverageGrade float64       `json:"overall_average_grade"`
	TodayAttendanceRate float64       `json:"today_attendance_rate"`
	TodayAttendance     StatusCounts  `json:"today_attendance"`
	RecentGrades        []RecentGrade `json:"recent_grades"`
	LowPerformers       []Performer   `json:"low_performers"`
}

// Dashboard computes the school-wide statistics for `today`.
func Dashboard(snap Snapshot, today school.Date) DashboardStats {
	var active int
	for _, s := range snap.Students {
		if s.IsActive() {
			active++
		}
	}
	todays := OnDate(snap.Attendance, today)

	return DashboardStats{
		TotalStudents:       len(snap.Students),
		ActiveStudents:      active,
		TotalClasses:        len(snap.Classes),
		OverallAverageGrade: OverallGradeAverage(snap.Grades),
		TodayAttendanceRate: AttendanceRate(todays),
		TodayAttendance:     CountStatuses(todays),
		RecentGrades:        RecentGrades(snap.Grades, snap.Students, DashboardListLimit),
		LowPerformers:       LowPerformers(snap.Students, snap.Grades, DashboardListLimit),
	}
}

// LowPerformers lists, in input order, the students with at least one scorable grade
// whose exact average is strictly below LowPerformerThreshold. limit <= 0 means no bound.
func LowPerformers(students []school.Student, grades []school.Grade, limit int) []Performer {
	gradesBy := GradesByStudent(grades)
	out := make([]Performer, 0)
	for _, s := range students {
		avg, n := gradeAverage(gradesBy[s.ID])
		if n == 0 || avg >= LowPerformerThreshold {
			continue
		}
		out = append(out, Performer{Student: s, GradeAverage: avg, GradeCount: n})
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// SortByAverage orders performers by ascending average, ties by student id.
func SortByAverage(performers []Performer) {
	sort.SliceStable(performers, func(i, j int) bool {
		if performers[i].GradeAverage != performers[j].GradeAverage {
			return performers[i].GradeAverage < performers[j].GradeAverage
		}
		return performers[i].Student.ID < performers[j].Student.ID
	})
}

// RecentGrades returns the latest grades first (ties by id, newest id first), bounded by limit.
// The input slice is not reordered.
func RecentGrades(grades []school.Grade, students []school.Student, limit int) []RecentGrade {
	sorted := make([]school.Grade, len(grades))
	copy(sorted, grades)
	sort.SliceStable(sorted, func(i, j int) bool {
		ti, tj := sorted[i].DateRecorded, sorted[j].DateRecorded
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return sorted[i].ID > sorted[j].ID
	})
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}

	names := make(map[int]string, len(students))
	for _, s := range students {
		names[s.ID] = s.FullName()
	}

	out := make([]RecentGrade, 0, len(sorted))
	for _, g := range sorted {
		name, ok := names[g.StudentID]
		if !ok {
			name = UnknownStudent
		}
		pct, _ := GradePercent(g)
		out = append(out, RecentGrade{Grade: g, StudentName: name, Percent: pct, Letter: LetterFor(pct)})
	}
	return out
}

// Today is the calendar date of now in now's location.
func Today(now time.Time) school.Date {
	return school.DateOf(now)
}

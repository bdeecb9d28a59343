package stats

import (
	"math"

	"github.com/trezcool/schoolrecords/core/school"
)

// LowPerformerThreshold is the exclusive upper bound of a low performer's grade average.
const LowPerformerThreshold = 70.0

// GradePercent returns score/maxScore*100.
// ok is false when the record cannot be scored (zero, negative or missing max score).
func GradePercent(g school.Grade) (pct float64, ok bool) {
	if !(g.MaxScore > 0) {
		return 0, false
	}
	pct = g.Score / g.MaxScore * 100
	if math.IsNaN(pct) || math.IsInf(pct, 0) {
		return 0, false
	}
	return pct, true
}

// GradeAverage is the unweighted mean of the per-record percentages.
// Unscorable records are skipped; the average of nothing is 0.
func GradeAverage(grades []school.Grade) float64 {
	avg, _ := gradeAverage(grades)
	return avg
}

// gradeAverage also returns how many records were scored.
func gradeAverage(grades []school.Grade) (float64, int) {
	var sum float64
	var n int
	for _, g := range grades {
		if pct, ok := GradePercent(g); ok {
			sum += pct
			n++
		}
	}
	if n == 0 {
		return 0, 0
	}
	return sum / float64(n), n
}

// AttendanceRate is the share of Present records, in percent.
// Tardy and Excused count toward the total only. No history means 100.
func AttendanceRate(records []school.Attendance) float64 {
	if len(records) == 0 {
		return 100
	}
	var present int
	for _, r := range records {
		if r.Status == school.Present {
			present++
		}
	}
	return float64(present) / float64(len(records)) * 100
}

// Round rounds v to the nearest integer, halves away from zero.
func Round(v float64) int {
	return int(math.Round(v))
}

// OverallGradeAverage averages every grade record system-wide.
func OverallGradeAverage(grades []school.Grade) float64 {
	return GradeAverage(grades)
}

// OnDate returns the records dated d.
func OnDate(records []school.Attendance, d school.Date) []school.Attendance {
	out := make([]school.Attendance, 0)
	for _, r := range records {
		if r.Date == d {
			out = append(out, r)
		}
	}
	return out
}

// TodayAttendanceRate applies AttendanceRate to the records dated today, across all classes.
// With nothing recorded for today the rate is 100, like a student with no history.
func TodayAttendanceRate(records []school.Attendance, today school.Date) float64 {
	return AttendanceRate(OnDate(records, today))
}

// StatusCounts tallies attendance marks.
type StatusCounts struct {
	Present int `json:"present"`
	Absent  int `json:"absent"`
	Tardy   int `json:"tardy"`
	Excused int `json:"excused"`
	Total   int `json:"total"`
}

// CountStatuses tallies records by status; Total counts every record.
func CountStatuses(records []school.Attendance) StatusCounts {
	var c StatusCounts
	for _, r := range records {
		switch r.Status {
		case school.Present:
			c.Present++
		case school.Absent:
			c.Absent++
		case school.Tardy:
			c.Tardy++
		case school.Excused:
			c.Excused++
		}
		c.Total++
	}
	return c
}

// Letter is a letter grade.
type Letter string

const (
	LetterA Letter = "A"
	LetterB Letter = "B"
	LetterC Letter = "C"
	LetterD Letter = "D"
	LetterF Letter = "F"
)

// LetterFor maps a percentage to its letter grade.
func LetterFor(pct float64) Letter {
	switch {
	case pct >= 90:
		return LetterA
	case pct >= 80:
		return LetterB
	case pct >= 70:
		return LetterC
	case pct >= 60:
		return LetterD
	default:
		return LetterF
	}
}

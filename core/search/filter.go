// Package search narrows record lists by free-text and exact-match predicates.
package search

import (
	"strings"

	"github.com/trezcool/schoolrecords/core/school"
	"github.com/trezcool/schoolrecords/core/stats"
)

// Predicate reports whether an item is kept.
type Predicate[T any] func(T) bool

// Filter keeps, in input order, the items satisfying every predicate.
// Nil predicates are ignored; with none the result is a copy of items.
func Filter[T any](items []T, preds ...Predicate[T]) []T {
	out := make([]T, 0, len(items))
next:
	for _, it := range items {
		for _, p := range preds {
			if p != nil && !p(it) {
				continue next
			}
		}
		out = append(out, it)
	}
	return out
}

// Contains reports whether the trimmed term is a case-insensitive substring of any field.
// A blank term matches everything.
func Contains(term string, fields ...string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

// StudentFilter holds the optional student criteria; zero values are inactive.
type StudentFilter struct {
	Search  string
	ClassID *int
	Status  string
}

func (f StudentFilter) predicate() Predicate[school.Student] {
	return func(s school.Student) bool {
		if !Contains(f.Search, s.FirstName, s.LastName, s.Email) {
			return false
		}
		if f.ClassID != nil && !s.InClass(*f.ClassID) {
			return false
		}
		if f.Status != "" && s.Status != f.Status {
			return false
		}
		return true
	}
}

// FilterStudents applies f to students.
func FilterStudents(students []school.Student, f StudentFilter) []school.Student {
	return Filter(students, f.predicate())
}

// EnrichedStudents applies f to enriched views, matching on the embedded student.
func EnrichedStudents(views []stats.EnrichedStudent, f StudentFilter) []stats.EnrichedStudent {
	p := f.predicate()
	return Filter(views, func(v stats.EnrichedStudent) bool { return p(v.Student) })
}

// FilterClasses matches term against name, subject and room.
func FilterClasses(classes []school.Class, term string) []school.Class {
	return Filter(classes, func(c school.Class) bool {
		return Contains(term, c.Name, c.Subject, c.Room)
	})
}

type AssignmentFilter struct {
	Search  string
	ClassID *int
}

// FilterAssignments matches Search against name and type.
func FilterAssignments(assignments []school.Assignment, f AssignmentFilter) []school.Assignment {
	return Filter(assignments,
		func(a school.Assignment) bool { return Contains(f.Search, a.Name, a.Type) },
		func(a school.Assignment) bool { return f.ClassID == nil || a.ClassID == *f.ClassID },
	)
}

type TeacherFilter struct {
	Search  string
	Subject string
}

// FilterTeachers matches Search against name, email and subject; Subject is a substring test too.
func FilterTeachers(teachers []school.Teacher, f TeacherFilter) []school.Teacher {
	return Filter(teachers,
		func(t school.Teacher) bool { return Contains(f.Search, t.Name, t.Email, t.Subject) },
		func(t school.Teacher) bool { return Contains(f.Subject, t.Subject) },
	)
}

// Subjects lists the distinct non-blank teacher subjects in first-seen order.
func Subjects(teachers []school.Teacher) []string {
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, t := range teachers {
		subj := strings.TrimSpace(t.Subject)
		if subj == "" || seen[subj] {
			continue
		}
		seen[subj] = true
		out = append(out, subj)
	}
	return out
}

package inmemdb

import (
	"context"

	"github.com/trezcool/schoolrecords/core/school"
)

func same[T any](row T) T { return row }

func cloneIntPtr(p *int) *int {
	if p == nil {
		return nil
	}
	return school.IntPtr(*p)
}

func cloneTags(tags []string) []string {
	if tags == nil {
		return nil
	}
	return append(make([]string, 0, len(tags)), tags...)
}

func cloneStudent(s school.Student) school.Student {
	s.ClassID = cloneIntPtr(s.ClassID)
	return s
}

func cloneClass(c school.Class) school.Class {
	c.TeacherID = cloneIntPtr(c.TeacherID)
	return c
}

func cloneTeacher(t school.Teacher) school.Teacher {
	t.Tags = cloneTags(t.Tags)
	return t
}

func cloneAttendance(a school.Attendance) school.Attendance {
	a.ClassID = cloneIntPtr(a.ClassID)
	return a
}

// Students

func (db *DB) ListStudents(_ context.Context) ([]school.Student, error) {
	return db.students.list(), nil
}

func (db *DB) GetStudent(_ context.Context, id int) (school.Student, error) {
	return db.students.get(id)
}

func (db *DB) CreateStudent(_ context.Context, s school.Student) (school.Student, error) {
	return db.students.insert(s, func(s *school.Student, id int) { s.ID = id }), nil
}

func (db *DB) UpdateStudent(_ context.Context, s school.Student) (school.Student, error) {
	return db.students.replace(s.ID, s)
}

func (db *DB) DeleteStudent(_ context.Context, id int) error {
	return db.students.remove(id)
}

// Classes

func (db *DB) ListClasses(_ context.Context) ([]school.Class, error) {
	return db.classes.list(), nil
}

func (db *DB) GetClass(_ context.Context, id int) (school.Class, error) {
	return db.classes.get(id)
}

func (db *DB) CreateClass(_ context.Context, c school.Class) (school.Class, error) {
	return db.classes.insert(c, func(c *school.Class, id int) { c.ID = id }), nil
}

func (db *DB) UpdateClass(_ context.Context, c school.Class) (school.Class, error) {
	return db.classes.replace(c.ID, c)
}

func (db *DB) DeleteClass(_ context.Context, id int) error {
	return db.classes.remove(id)
}

// Teachers

func (db *DB) ListTeachers(_ context.Context) ([]school.Teacher, error) {
	return db.teachers.list(), nil
}

func (db *DB) CreateTeacher(_ context.Context, t school.Teacher) (school.Teacher, error) {
	return db.teachers.insert(t, func(t *school.Teacher, id int) { t.ID = id }), nil
}

func (db *DB) UpdateTeacher(_ context.Context, t school.Teacher) (school.Teacher, error) {
	return db.teachers.replace(t.ID, t)
}

func (db *DB) DeleteTeacher(_ context.Context, id int) error {
	return db.teachers.remove(id)
}

// Assignments

func (db *DB) ListAssignments(_ context.Context) ([]school.Assignment, error) {
	return db.assignments.list(), nil
}

func (db *DB) GetAssignment(_ context.Context, id int) (school.Assignment, error) {
	return db.assignments.get(id)
}

func (db *DB) CreateAssignment(_ context.Context, a school.Assignment) (school.Assignment, error) {
	return db.assignments.insert(a, func(a *school.Assignment, id int) { a.ID = id }), nil
}

func (db *DB) UpdateAssignment(_ context.Context, a school.Assignment) (school.Assignment, error) {
	return db.assignments.replace(a.ID, a)
}

func (db *DB) DeleteAssignment(_ context.Context, id int) error {
	return db.assignments.remove(id)
}

// Grades

func (db *DB) ListGrades(_ context.Context) ([]school.Grade, error) {
	return db.grades.list(), nil
}

func (db *DB) CreateGrade(_ context.Context, g school.Grade) (school.Grade, error) {
	return db.grades.insert(g, func(g *school.Grade, id int) { g.ID = id }), nil
}

func (db *DB) UpdateGrade(_ context.Context, g school.Grade) (school.Grade, error) {
	return db.grades.replace(g.ID, g)
}

func (db *DB) DeleteGrade(_ context.Context, id int) error {
	return db.grades.remove(id)
}

// Attendance

func (db *DB) ListAttendance(_ context.Context) ([]school.Attendance, error) {
	return db.attendance.list(), nil
}

func (db *DB) CreateAttendance(_ context.Context, a school.Attendance) (school.Attendance, error) {
	return db.attendance.insert(a, func(a *school.Attendance, id int) { a.ID = id }), nil
}

func (db *DB) UpdateAttendance(_ context.Context, a school.Attendance) (school.Attendance, error) {
	return db.attendance.replace(a.ID, a)
}

func (db *DB) DeleteAttendance(_ context.Context, id int) error {
	return db.attendance.remove(id)
}

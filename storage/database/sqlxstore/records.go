package sqlxstore

import (
	"context"

	"github.com/trezcool/schoolrecords/core/school"
)

const (
	studentsTable    = "students"
	classesTable     = "classes"
	teachersTable    = "teachers"
	assignmentsTable = "assignments"
	gradesTable      = "grades"
	attendanceTable  = "attendance"
)

// Students

func (s *Store) ListStudents(ctx context.Context) ([]school.Student, error) {
	var rows []studentRow
	if err := s.list(ctx, &rows, studentsTable, withID(studentCols)); err != nil {
		return nil, err
	}
	out := make([]school.Student, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.student())
	}
	return out, nil
}

func (s *Store) GetStudent(ctx context.Context, id int) (school.Student, error) {
	var r studentRow
	if err := s.get(ctx, &r, studentsTable, withID(studentCols), id); err != nil {
		return school.Student{}, err
	}
	return r.student(), nil
}

func (s *Store) CreateStudent(ctx context.Context, st school.Student) (school.Student, error) {
	id, err := s.insert(ctx, studentsTable, studentCols, studentArgs(st)...)
	if err != nil {
		return school.Student{}, err
	}
	st.ID = id
	return st, nil
}

func (s *Store) UpdateStudent(ctx context.Context, st school.Student) (school.Student, error) {
	if err := s.update(ctx, studentsTable, studentCols, st.ID, studentArgs(st)...); err != nil {
		return school.Student{}, err
	}
	return st, nil
}

func (s *Store) DeleteStudent(ctx context.Context, id int) error {
	return s.delete(ctx, studentsTable, id)
}

// Classes

func (s *Store) ListClasses(ctx context.Context) ([]school.Class, error) {
	var rows []classRow
	if err := s.list(ctx, &rows, classesTable, withID(classCols)); err != nil {
		return nil, err
	}
	out := make([]school.Class, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.class())
	}
	return out, nil
}

func (s *Store) GetClass(ctx context.Context, id int) (school.Class, error) {
	var r classRow
	if err := s.get(ctx, &r, classesTable, withID(classCols), id); err != nil {
		return school.Class{}, err
	}
	return r.class(), nil
}

func (s *Store) CreateClass(ctx context.Context, c school.Class) (school.Class, error) {
	id, err := s.insert(ctx, classesTable, classCols, classArgs(c)...)
	if err != nil {
		return school.Class{}, err
	}
	c.ID = id
	return c, nil
}

func (s *Store) UpdateClass(ctx context.Context, c school.Class) (school.Class, error) {
	if err := s.update(ctx, classesTable, classCols, c.ID, classArgs(c)...); err != nil {
		return school.Class{}, err
	}
	return c, nil
}

func (s *Store) DeleteClass(ctx context.Context, id int) error {
	return s.delete(ctx, classesTable, id)
}

// Teachers

func (s *Store) ListTeachers(ctx context.Context) ([]school.Teacher, error) {
	var rows []teacherRow
	if err := s.list(ctx, &rows, teachersTable, withID(teacherCols)); err != nil {
		return nil, err
	}
	out := make([]school.Teacher, 0, len(rows))
	for _, r := range rows {
		t, err := r.teacher()
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func (s *Store) CreateTeacher(ctx context.Context, t school.Teacher) (school.Teacher, error) {
	args, err := teacherArgs(t)
	if err != nil {
		return school.Teacher{}, err
	}
	id, err := s.insert(ctx, teachersTable, teacherCols, args...)
	if err != nil {
		return school.Teacher{}, err
	}
	t.ID = id
	return t, nil
}

func (s *Store) UpdateTeacher(ctx context.Context, t school.Teacher) (school.Teacher, error) {
	args, err := teacherArgs(t)
	if err != nil {
		return school.Teacher{}, err
	}
	if err = s.update(ctx, teachersTable, teacherCols, t.ID, args...); err != nil {
		return school.Teacher{}, err
	}
	return t, nil
}

func (s *Store) DeleteTeacher(ctx context.Context, id int) error {
	return s.delete(ctx, teachersTable, id)
}

// Assignments

func (s *Store) ListAssignments(ctx context.Context) ([]school.Assignment, error) {
	var rows []assignmentRow
	if err := s.list(ctx, &rows, assignmentsTable, withID(assignmentCols)); err != nil {
		return nil, err
	}
	out := make([]school.Assignment, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.assignment())
	}
	return out, nil
}

func (s *Store) GetAssignment(ctx context.Context, id int) (school.Assignment, error) {
	var r assignmentRow
	if err := s.get(ctx, &r, assignmentsTable, withID(assignmentCols), id); err != nil {
		return school.Assignment{}, err
	}
	return r.assignment(), nil
}

func (s *Store) CreateAssignment(ctx context.Context, a school.Assignment) (school.Assignment, error) {
	id, err := s.insert(ctx, assignmentsTable, assignmentCols, assignmentArgs(a)...)
	if err != nil {
		return school.Assignment{}, err
	}
	a.ID = id
	return a, nil
}

func (s *Store) UpdateAssignment(ctx context.Context, a school.Assignment) (school.Assignment, error) {
	if err := s.update(ctx, assignmentsTable, assignmentCols, a.ID, assignmentArgs(a)...); err != nil {
		return school.Assignment{}, err
	}
	return a, nil
}

func (s *Store) DeleteAssignment(ctx context.Context, id int) error {
	return s.delete(ctx, assignmentsTable, id)
}

// Grades

func (s *Store) ListGrades(ctx context.Context) ([]school.Grade, error) {
	var rows []gradeRow
	if err := s.list(ctx, &rows, gradesTable, withID(gradeCols)); err != nil {
		return nil, err
	}
	out := make([]school.Grade, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.grade())
	}
	return out, nil
}

func (s *Store) CreateGrade(ctx context.Context, g school.Grade) (school.Grade, error) {
	g.DateRecorded = g.DateRecorded.UTC()
	id, err := s.insert(ctx, gradesTable, gradeCols, gradeArgs(g)...)
	if err != nil {
		return school.Grade{}, err
	}
	g.ID = id
	return g, nil
}

func (s *Store) UpdateGrade(ctx context.Context, g school.Grade) (school.Grade, error) {
	g.DateRecorded = g.DateRecorded.UTC()
	if err := s.update(ctx, gradesTable, gradeCols, g.ID, gradeArgs(g)...); err != nil {
		return school.Grade{}, err
	}
	return g, nil
}

func (s *Store) DeleteGrade(ctx context.Context, id int) error {
	return s.delete(ctx, gradesTable, id)
}

// Attendance

func (s *Store) ListAttendance(ctx context.Context) ([]school.Attendance, error) {
	var rows []attendanceRow
	if err := s.list(ctx, &rows, attendanceTable, withID(attendanceCols)); err != nil {
		return nil, err
	}
	out := make([]school.Attendance, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.attendance())
	}
	return out, nil
}

func (s *Store) CreateAttendance(ctx context.Context, a school.Attendance) (school.Attendance, error) {
	id, err := s.insert(ctx, attendanceTable, attendanceCols, attendanceArgs(a)...)
	if err != nil {
		return school.Attendance{}, err
	}
	a.ID = id
	return a, nil
}

func (s *Store) UpdateAttendance(ctx context.Context, a school.Attendance) (school.Attendance, error) {
	if err := s.update(ctx, attendanceTable, attendanceCols, a.ID, attendanceArgs(a)...); err != nil {
		return school.Attendance{}, err
	}
	return a, nil
}

func (s *Store) DeleteAttendance(ctx context.Context, id int) error {
	return s.delete(ctx, attendanceTable, id)
}

package database

import (
	"context"
	"encoding/json"
	"io/fs"

	"github.com/pkg/errors"

	"github.com/trezcool/schoolrecords/core/school"
)

// SeedCounts is how many records of each kind Seed created.
type SeedCounts struct {
	Teachers    int `json:"teachers"`
	Classes     int `json:"classes"`
	Students    int `json:"students"`
	Assignments int `json:"assignments"`
	Grades      int `json:"grades"`
	Attendance  int `json:"attendance"`
}

type fixtures struct {
	teachers    []school.Teacher
	classes     []school.Class
	students    []school.Student
	assignments []school.Assignment
	grades      []school.Grade
	attendance  []school.Attendance
}

func readFixture(fsys fs.FS, name string, dest interface{}) error {
	data, err := fs.ReadFile(fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, "reading %s", name)
	}
	if err = json.Unmarshal(data, dest); err != nil {
		return errors.Wrapf(err, "decoding %s", name)
	}
	return nil
}

func loadFixtures(fsys fs.FS) (fixtures, error) {
	var fx fixtures
	files := []struct {
		name string
		dest interface{}
	}{
		{"teachers.json", &fx.teachers},
		{"classes.json", &fx.classes},
		{"students.json", &fx.students},
		{"assignments.json", &fx.assignments},
		{"grades.json", &fx.grades},
		{"attendance.json", &fx.attendance},
	}
	for _, f := range files {
		if err := readFixture(fsys, f.name, f.dest); err != nil {
			return fixtures{}, err
		}
	}
	return fx, nil
}

// idMap translates fixture ids into store ids. Unknown ids are kept as is.
type idMap map[int]int

func (m idMap) get(id int) int {
	if newID, ok := m[id]; ok {
		return newID
	}
	return id
}

func (m idMap) ptr(id *int) *int {
	if id == nil {
		return nil
	}
	return school.IntPtr(m.get(*id))
}

// Seed creates every record found in the JSON files of fsys (teachers.json, classes.json, ...).
// Ids are assigned by the store and references are rewritten to match; missing files are skipped.
func Seed(ctx context.Context, store school.Store, fsys fs.FS) (SeedCounts, error) {
	var counts SeedCounts
	fx, err := loadFixtures(fsys)
	if err != nil {
		return counts, err
	}

	teacherIDs := make(idMap)
	for _, t := range fx.teachers {
		created, err := store.CreateTeacher(ctx, t)
		if err != nil {
			return counts, errors.Wrap(err, "seeding teachers")
		}
		teacherIDs[t.ID] = created.ID
		counts.Teachers++
	}

	classIDs := make(idMap)
	for _, c := range fx.classes {
		c.TeacherID = teacherIDs.ptr(c.TeacherID)
		created, err := store.CreateClass(ctx, c)
		if err != nil {
			return counts, errors.Wrap(err, "seeding classes")
		}
		classIDs[c.ID] = created.ID
		counts.Classes++
	}

	studentIDs := make(idMap)
	for _, s := range fx.students {
		s.ClassID = classIDs.ptr(s.ClassID)
		created, err := store.CreateStudent(ctx, s)
		if err != nil {
			return counts, errors.Wrap(err, "seeding students")
		}
		studentIDs[s.ID] = created.ID
		counts.Students++
	}

	assignmentIDs := make(idMap)
	for _, a := range fx.assignments {
		a.ClassID = classIDs.get(a.ClassID)
		created, err := store.CreateAssignment(ctx, a)
		if err != nil {
			return counts, errors.Wrap(err, "seeding assignments")
		}
		assignmentIDs[a.ID] = created.ID
		counts.Assignments++
	}

	for _, g := range fx.grades {
		g.StudentID = studentIDs.get(g.StudentID)
		g.AssignmentID = assignmentIDs.get(g.AssignmentID)
		if _, err := store.CreateGrade(ctx, g); err != nil {
			return counts, errors.Wrap(err, "seeding grades")
		}
		counts.Grades++
	}

	for _, a := range fx.attendance {
		a.StudentID = studentIDs.get(a.StudentID)
		a.ClassID = classIDs.ptr(a.ClassID)
		if _, err := store.CreateAttendance(ctx, a); err != nil {
			return counts, errors.Wrap(err, "seeding attendance")
		}
		counts.Attendance++
	}
	return counts, nil
}

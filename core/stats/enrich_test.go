package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/schoolrecords/core/school"
)

func TestEnrichStudents(t *testing.T) {
	students := []school.Student{
		student(1, "Awe", "A", school.IntPtr(1)),
		student(2, "Bob", "B", school.IntPtr(42)), // dangling class
		student(3, "Cid", "C", nil),
	}
	classes := []school.Class{{ID: 1, Name: "Math 101"}}
	grades := []school.Grade{grade(1, 45, 50), grade(1, 35, 50), grade(2, 1, 0)}
	attendance := []school.Attendance{
		mark(1, "2024-01-01", school.Present),
		mark(1, "2024-01-02", school.Present),
		mark(1, "2024-01-03", school.Absent),
	}

	got := EnrichStudents(students, classes, grades, attendance)
	require.Len(t, got, 3)

	require.NotNil(t, got[0].ClassName)
	assert.Equal(t, "Math 101", *got[0].ClassName)
	assert.Equal(t, 80, got[0].GradeAverage)
	assert.Equal(t, 67, got[0].AttendanceRate)

	assert.Nil(t, got[1].ClassName)
	assert.Equal(t, 0, got[1].GradeAverage)
	assert.Equal(t, 100, got[1].AttendanceRate)

	assert.Nil(t, got[2].ClassName)
	assert.Equal(t, students[2], got[2].Student)
}

func TestEnrichClasses(t *testing.T) {
	students := []school.Student{
		student(1, "Awe", "A", school.IntPtr(1)),
		student(2, "Bob", "B", school.IntPtr(2)),
		student(3, "Cid", "C", school.IntPtr(1)),
		student(4, "Dan", "D", nil),
	}
	classes := []school.Class{{ID: 1, Name: "Math"}, {ID: 2, Name: "Art"}, {ID: 3, Name: "Empty"}}

	got := EnrichClasses(classes, students)
	require.Len(t, got, 3)
	for _, c := range got {
		assert.Equal(t, c.StudentCount, len(c.Students), c.Name)
	}
	assert.Equal(t, 2, got[0].StudentCount)
	assert.Equal(t, 1, got[0].Students[0].ID)
	assert.Equal(t, 3, got[0].Students[1].ID)
	assert.Equal(t, 1, got[1].StudentCount)
	assert.Equal(t, 0, got[2].StudentCount)
	assert.NotNil(t, got[2].Students)
}

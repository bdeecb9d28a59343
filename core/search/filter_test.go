package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/schoolrecords/core/school"
	"github.com/trezcool/schoolrecords/core/stats"
)

var students = []school.Student{
	{ID: 1, FirstName: "Awe", LastName: "Kabamba", Email: "awe@test.cd", Status: school.StatusActive, ClassID: school.IntPtr(1)},
	{ID: 2, FirstName: "Mbuyi", LastName: "Awenda", Email: "mbuyi@test.cd", Status: school.StatusInactive, ClassID: school.IntPtr(1)},
	{ID: 3, FirstName: "Ilunga", LastName: "Tshala", Email: "ilunga@school.cd", Status: school.StatusActive, ClassID: school.IntPtr(2)},
	{ID: 4, FirstName: "Kasongo", LastName: "Mwamba", Email: "kas@test.cd", Status: school.StatusActive},
}

func ids(ss []school.Student) []int {
	out := make([]int, 0, len(ss))
	for _, s := range ss {
		out = append(out, s.ID)
	}
	return out
}

func TestFilterStudents(t *testing.T) {
	tests := []struct {
		name   string
		filter StudentFilter
		want   []int
	}{
		{name: "no filter", want: []int{1, 2, 3, 4}},
		{name: "search first or last name", filter: StudentFilter{Search: "AWE"}, want: []int{1, 2}},
		{name: "search email", filter: StudentFilter{Search: "@school"}, want: []int{3}},
		{name: "search is trimmed", filter: StudentFilter{Search: "  tshala "}, want: []int{3}},
		{name: "blank search", filter: StudentFilter{Search: "   "}, want: []int{1, 2, 3, 4}},
		{name: "class", filter: StudentFilter{ClassID: school.IntPtr(1)}, want: []int{1, 2}},
		{name: "status", filter: StudentFilter{Status: school.StatusActive}, want: []int{1, 3, 4}},
		{
			name:   "predicates are conjunctive",
			filter: StudentFilter{Search: "awe", ClassID: school.IntPtr(1), Status: school.StatusActive},
			want:   []int{1},
		},
		{name: "unknown class", filter: StudentFilter{ClassID: school.IntPtr(9)}, want: []int{}},
		{name: "no match", filter: StudentFilter{Search: "zzz"}, want: []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(FilterStudents(students, tt.filter)))
		})
	}
}

func TestFilterStudents_properties(t *testing.T) {
	f := StudentFilter{Search: "a", Status: school.StatusActive}
	once := FilterStudents(students, f)

	t.Run("idempotent", func(t *testing.T) {
		assert.Equal(t, once, FilterStudents(once, f))
	})

	t.Run("order of predicates is irrelevant", func(t *testing.T) {
		bySearch := FilterStudents(students, StudentFilter{Search: f.Search})
		byStatus := FilterStudents(students, StudentFilter{Status: f.Status})
		assert.Equal(t, once, FilterStudents(bySearch, StudentFilter{Status: f.Status}))
		assert.Equal(t, once, FilterStudents(byStatus, StudentFilter{Search: f.Search}))
	})

	t.Run("input untouched", func(t *testing.T) {
		assert.Len(t, students, 4)
		assert.Equal(t, 1, students[0].ID)
	})
}

func TestEnrichedStudents(t *testing.T) {
	views := stats.EnrichStudents(students, nil, nil, nil)
	got := EnrichedStudents(views, StudentFilter{ClassID: school.IntPtr(2)})
	if assert.Len(t, got, 1) {
		assert.Equal(t, 3, got[0].ID)
		assert.Equal(t, 100, got[0].AttendanceRate)
	}
}

func TestContains(t *testing.T) {
	assert.True(t, Contains("", "anything"))
	assert.True(t, Contains("MAT", "Room 4", "Mathematics"))
	assert.False(t, Contains("bio", "Math", "Room 4"))
	assert.False(t, Contains("x"))
}

func TestFilter(t *testing.T) {
	even := func(i int) bool { return i%2 == 0 }
	big := func(i int) bool { return i > 2 }
	in := []int{1, 2, 3, 4, 5, 6}

	assert.Equal(t, []int{4, 6}, Filter(in, even, big))
	assert.Equal(t, []int{4, 6}, Filter(in, big, even))
	assert.Equal(t, in, Filter[int](in, nil))
	assert.Empty(t, Filter[int](nil, even))
}

func TestFilterClasses(t *testing.T) {
	classes := []school.Class{
		{ID: 1, Name: "Math 101", Subject: "Mathematics", Room: "A1"},
		{ID: 2, Name: "History", Subject: "History", Room: "B2"},
		{ID: 3, Name: "Algebra", Subject: "Mathematics", Room: "b7"},
	}
	got := FilterClasses(classes, "math")
	assert.Len(t, got, 2)
	got = FilterClasses(classes, "B")
	assert.Len(t, got, 2) // History's room, Algebra's name
	assert.Len(t, FilterClasses(classes, ""), 3)
}

func TestFilterAssignments(t *testing.T) {
	assignments := []school.Assignment{
		{ID: 1, Name: "Chapter 1", Type: school.AssignmentHomework, ClassID: 1},
		{ID: 2, Name: "Midterm", Type: school.AssignmentExam, ClassID: 1},
		{ID: 3, Name: "Pop quiz", Type: school.AssignmentQuiz, ClassID: 2},
	}
	tests := []struct {
		name   string
		filter AssignmentFilter
		want   int
	}{
		{name: "all", want: 3},
		{name: "by type", filter: AssignmentFilter{Search: "exam"}, want: 1},
		{name: "by name", filter: AssignmentFilter{Search: "quiz"}, want: 1},
		{name: "by class", filter: AssignmentFilter{ClassID: school.IntPtr(1)}, want: 2},
		{name: "both", filter: AssignmentFilter{Search: "quiz", ClassID: school.IntPtr(1)}, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, FilterAssignments(assignments, tt.filter), tt.want)
		})
	}
}

func TestFilterTeachers(t *testing.T) {
	teachers := []school.Teacher{
		{ID: 1, Name: "Mme Ngalula", Email: "ngalula@test.cd", Subject: "Mathematics"},
		{ID: 2, Name: "M. Kalala", Email: "kalala@test.cd", Subject: "History"},
		{ID: 3, Name: "M. Tshibangu", Email: "tshi@test.cd", Subject: "Applied Mathematics"},
		{ID: 4, Name: "Mme Mujinga", Email: "mujinga@test.cd"},
	}

	assert.Len(t, FilterTeachers(teachers, TeacherFilter{Subject: "Mathematics"}), 2)
	assert.Len(t, FilterTeachers(teachers, TeacherFilter{Search: "mme"}), 2)
	assert.Len(t, FilterTeachers(teachers, TeacherFilter{Search: "kalala", Subject: "math"}), 0)

	assert.Equal(t, []string{"Mathematics", "History", "Applied Mathematics"}, Subjects(teachers))
	assert.Empty(t, Subjects(nil))
}

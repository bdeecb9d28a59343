package echoapi_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/schoolrecords/core/school"
	"github.com/trezcool/schoolrecords/tests"
)

func TestStudentsAPI(t *testing.T) {
	ctx := context.Background()
	fx := setup(t)
	class, err := fx.db.CreateClass(ctx, school.Class{Name: "Math 101", Subject: "Math", Room: "A1", Schedule: "Mon"})
	require.NoError(t, err)

	var created school.Student
	t.Run("create", func(t *testing.T) {
		body := marshalObj(t, map[string]interface{}{
			"first_name":    "  Emma ",
			"last_name":     "Johnson",
			"email":         "Emma.Johnson@School.cd",
			"date_of_birth": "2008-03-15",
			"class_id":      class.ID,
		})
		rec := fx.do(http.MethodPost, "/v1/students", body)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		decode(t, rec, &created)
		assert.Equal(t, "Emma", created.FirstName)
		assert.Equal(t, "emma.johnson@school.cd", created.Email)
		assert.Equal(t, school.StatusActive, created.Status)
		assert.False(t, created.EnrollmentDate.IsZero())
	})

	t.Run("create invalid", func(t *testing.T) {
		rec := fx.do(http.MethodPost, "/v1/students", marshalObj(t, map[string]interface{}{"email": "nope"}))
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var fields map[string]string
		decode(t, rec, &fields)
		for _, name := range []string{"first_name", "last_name", "email", "date_of_birth", "class_id"} {
			assert.Contains(t, fields, name)
		}
	})

	t.Run("query", func(t *testing.T) {
		testutil.CreateStudent(t, fx.db, "Liam", "Smith", nil)

		tests := []struct {
			name  string
			query string
			want  []string
		}{
			{"all", "", []string{"Emma", "Liam"}},
			{"class", fmt.Sprintf("?class_id=%d", class.ID), []string{"Emma"}},
			{"any class", "?class_id=all", []string{"Emma", "Liam"}},
			{"search", "?search=SMI", []string{"Liam"}},
			{"status", "?status=inactive", []string{}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				rec := fx.do(http.MethodGet, "/v1/students"+tt.query)
				require.Equal(t, http.StatusOK, rec.Code)

				var got []map[string]interface{}
				decode(t, rec, &got)
				names := make([]string, 0, len(got))
				for _, s := range got {
					names = append(names, s["first_name"].(string))
				}
				assert.Equal(t, tt.want, names)
			})
		}
	})

	t.Run("query enriches", func(t *testing.T) {
		rec := fx.do(http.MethodGet, fmt.Sprintf("/v1/students?class_id=%d", class.ID))
		var got []map[string]interface{}
		decode(t, rec, &got)
		require.Len(t, got, 1)
		assert.Equal(t, "Math 101", got[0]["class_name"])
		assert.EqualValues(t, 0, got[0]["grade_average"])
	})

	t.Run("query bad class id", func(t *testing.T) {
		rec := fx.do(http.MethodGet, "/v1/students?class_id=abc")
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var fields map[string]string
		decode(t, rec, &fields)
		assert.Equal(t, map[string]string{"class_id": "must be an integer"}, fields)
	})

	t.Run("retrieve", func(t *testing.T) {
		rec := fx.do(http.MethodGet, fmt.Sprintf("/v1/students/%d", created.ID))
		require.Equal(t, http.StatusOK, rec.Code)
		var got school.Student
		decode(t, rec, &got)
		assert.Equal(t, created, got)
	})

	t.Run("update", func(t *testing.T) {
		body := marshalObj(t, map[string]interface{}{
			"first_name":    "Emma",
			"last_name":     "Johnson",
			"email":         "emma@school.cd",
			"date_of_birth": "2008-03-15",
			"status":        "inactive",
			"class_id":      class.ID,
		})
		rec := fx.do(http.MethodPut, fmt.Sprintf("/v1/students/%d", created.ID), body)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var got school.Student
		decode(t, rec, &got)
		assert.Equal(t, school.StatusInactive, got.Status)
		assert.Equal(t, created.EnrollmentDate, got.EnrollmentDate)
	})

	t.Run("missing records", func(t *testing.T) {
		tests := []struct {
			name   string
			method string
			path   string
		}{
			{"retrieve", http.MethodGet, "/v1/students/999"},
			{"delete", http.MethodDelete, "/v1/students/999"},
			{"malformed id", http.MethodDelete, "/v1/students/abc"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				rec := fx.do(tt.method, tt.path)
				assert.Equal(t, http.StatusNotFound, rec.Code)
				var got httpErr
				decode(t, rec, &got)
				assert.Equal(t, "not found", got.Error)
			})
		}
	})

	t.Run("delete", func(t *testing.T) {
		rec := fx.do(http.MethodDelete, fmt.Sprintf("/v1/students/%d", created.ID))
		assert.Equal(t, http.StatusNoContent, rec.Code)

		_, err := fx.db.GetStudent(ctx, created.ID)
		assert.True(t, school.IsNotFound(err))
	})
}

func TestClassesAPI(t *testing.T) {
	ctx := context.Background()
	fx := setup(t)

	rec := fx.do(http.MethodPost, "/v1/classes", marshalObj(t, school.NewClass{
		Name: "History", Subject: "History", Room: "B2", Schedule: "Tue 10:00",
	}))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var class school.Class
	decode(t, rec, &class)
	testutil.CreateStudent(t, fx.db, "Emma", "Johnson", school.IntPtr(class.ID))

	rec = fx.do(http.MethodGet, "/v1/classes?search=b2")
	require.Equal(t, http.StatusOK, rec.Code)
	var got []map[string]interface{}
	decode(t, rec, &got)
	require.Len(t, got, 1)
	assert.EqualValues(t, 1, got[0]["student_count"])

	rec = fx.do(http.MethodPost, "/v1/classes", marshalObj(t, school.NewClass{Name: "Art"}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = fx.do(http.MethodDelete, fmt.Sprintf("/v1/classes/%d", class.ID))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	classes, _ := fx.db.ListClasses(ctx)
	assert.Empty(t, classes)
}

func TestAssignmentsAPI(t *testing.T) {
	ctx := context.Background()
	fx := setup(t)
	class, err := fx.db.CreateClass(ctx, school.Class{Name: "Math 101", Subject: "Math", Room: "A1", Schedule: "Mon"})
	require.NoError(t, err)

	t.Run("unknown class", func(t *testing.T) {
		rec := fx.do(http.MethodPost, "/v1/assignments", marshalObj(t, map[string]interface{}{
			"name": "Quiz 1", "type": "quiz", "due_date": "2024-03-20", "points": 20, "class_id": 99,
		}))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		var fields map[string]string
		decode(t, rec, &fields)
		assert.Equal(t, "class not found", fields["class_id"])
	})

	rec := fx.do(http.MethodPost, "/v1/assignments", marshalObj(t, map[string]interface{}{
		"name": "Quiz 1", "type": "quiz", "due_date": "2024-03-20", "points": 20, "class_id": class.ID,
	}))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = fx.do(http.MethodGet, fmt.Sprintf("/v1/assignments?class_id=%d&search=QUIZ", class.ID))
	require.Equal(t, http.StatusOK, rec.Code)
	var got []school.Assignment
	decode(t, rec, &got)
	require.Len(t, got, 1)
	assert.Equal(t, school.MustParseDate("2024-03-20"), got[0].DueDate)
	assert.Equal(t, 20.0, got[0].Points)
}

func TestTeachersAPI(t *testing.T) {
	fx := setup(t)

	for _, nt := range []school.NewTeacher{
		{Name: "Mr. Smith", Email: "smith@school.cd", Subject: "Mathematics", Tags: []string{"head", " "}},
		{Name: "Ms. Davis", Email: "davis@school.cd", Subject: "History"},
	} {
		rec := fx.do(http.MethodPost, "/v1/teachers", marshalObj(t, nt))
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec := fx.do(http.MethodGet, "/v1/teachers?subject=math")
	require.Equal(t, http.StatusOK, rec.Code)
	var got []school.Teacher
	decode(t, rec, &got)
	require.Len(t, got, 1)
	assert.Equal(t, "Mr. Smith", got[0].Name)
	assert.Equal(t, []string{"head"}, got[0].Tags)

	rec = fx.do(http.MethodGet, "/v1/teachers/subjects")
	require.Equal(t, http.StatusOK, rec.Code)
	var subjects []string
	decode(t, rec, &subjects)
	assert.ElementsMatch(t, []string{"History", "Mathematics"}, subjects)

	rec = fx.do(http.MethodPut, "/v1/teachers/999", marshalObj(t, school.NewTeacher{Name: "X", Email: "x@school.cd"}))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

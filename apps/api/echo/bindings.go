package echoapi

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/schoolrecords/core"
	"github.com/trezcool/schoolrecords/core/school"
)

// anyValue is the query value list views send for "no filter".
const anyValue = "all"

func paramError(name, msg string) error {
	return core.NewValidationError(core.ErrInvalidInput, core.FieldError{Field: name, Error: msg})
}

// pathID reads the ":id" path param; a malformed id cannot name a record.
func pathID(ctx echo.Context) (int, error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || id <= 0 {
		return 0, errHTTPNotFound
	}
	return id, nil
}

// queryInt reads an optional integer query param. Blank and "all" yield nil.
func queryInt(ctx echo.Context, name string) (*int, error) {
	raw := strings.TrimSpace(ctx.QueryParam(name))
	if raw == "" || strings.EqualFold(raw, anyValue) {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, paramError(name, "must be an integer")
	}
	return &v, nil
}

// queryString reads an optional query param; "all" is treated as blank.
func queryString(ctx echo.Context, name string) string {
	raw := strings.TrimSpace(ctx.QueryParam(name))
	if strings.EqualFold(raw, anyValue) {
		return ""
	}
	return raw
}

// queryDate reads an optional "YYYY-MM-DD" query param; blank yields the zero Date.
func queryDate(ctx echo.Context, name string) (school.Date, error) {
	raw := strings.TrimSpace(ctx.QueryParam(name))
	if raw == "" {
		return school.Date{}, nil
	}
	d, err := school.ParseDate(raw)
	if err != nil {
		return school.Date{}, paramError(name, "must be a date (YYYY-MM-DD)")
	}
	return d, nil
}

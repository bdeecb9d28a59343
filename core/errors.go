package core

import (
	"sort"

	"github.com/pkg/errors"
)

// ErrInvalidInput is the default cause of a ValidationError built from field errors.
var ErrInvalidInput = errors.New("invalid input")

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

// NewFieldsError turns a field -> message map into a *ValidationError.
// Fields are sorted by name so error payloads are stable.
func NewFieldsError(fields map[string]string) error {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	flds := make([]FieldError, 0, len(names))
	for _, name := range names {
		flds = append(flds, FieldError{Field: name, Error: fields[name]})
	}
	return &ValidationError{Err: ErrInvalidInput, Fields: flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// FieldMap returns the field errors keyed by field name.
func (err ValidationError) FieldMap() map[string]string {
	m := make(map[string]string, len(err.Fields))
	for _, f := range err.Fields {
		m[f.Field] = f.Error
	}
	return m
}

type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}

package school

import (
	"reflect"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/schoolrecords/core"
)

// InitValidators registers the record types with the validator.
// core.InitValidators must run first.
func InitValidators(validate *validator.Validate, _ ut.Translator) {
	// validate a Date as its text form so "required" sees the zero Date as empty
	validate.RegisterCustomTypeFunc(func(v reflect.Value) interface{} {
		if d, ok := v.Interface().(Date); ok {
			return d.String()
		}
		return nil
	}, Date{})
}

// NewStudent contains the information needed to create or replace a Student.
type NewStudent struct {
	FirstName      string `json:"first_name" validate:"notblank"`
	LastName       string `json:"last_name" validate:"notblank"`
	Email          string `json:"email" validate:"required,emailshape"`
	DateOfBirth    Date   `json:"date_of_birth" validate:"required"`
	EnrollmentDate Date   `json:"enrollment_date"`
	Status         string `json:"status" validate:"omitempty,oneof=active inactive"`
	ClassID        *int   `json:"class_id" validate:"required"`
}

// Validate cleans ns and returns its field errors; the map is empty when ns is valid.
func (ns *NewStudent) Validate(validate *validator.Validate, translator ut.Translator) map[string]string {
	ns.FirstName = core.CleanString(ns.FirstName)
	ns.LastName = core.CleanString(ns.LastName)
	ns.Email = core.CleanString(ns.Email, true /* lower */)
	ns.Status = core.CleanString(ns.Status, true /* lower */)
	if ns.Status == "" {
		ns.Status = StatusActive
	}
	return core.FieldErrors(validate, translator, ns)
}

func (ns NewStudent) Student(id int) Student {
	return Student{
		ID:             id,
		FirstName:      ns.FirstName,
		LastName:       ns.LastName,
		Email:          ns.Email,
		DateOfBirth:    ns.DateOfBirth,
		EnrollmentDate: ns.EnrollmentDate,
		Status:         ns.Status,
		ClassID:        ns.ClassID,
	}
}

type NewClass struct {
	Name      string `json:"name" validate:"notblank"`
	Subject   string `json:"subject" validate:"notblank"`
	Room      string `json:"room" validate:"notblank"`
	Schedule  string `json:"schedule" validate:"notblank"`
	TeacherID *int   `json:"teacher_id"`
}

func (nc *NewClass) Validate(validate *validator.Validate, translator ut.Translator) map[string]string {
	nc.Name = core.CleanString(nc.Name)
	nc.Subject = core.CleanString(nc.Subject)
	nc.Room = core.CleanString(nc.Room)
	nc.Schedule = core.CleanString(nc.Schedule)
	return core.FieldErrors(validate, translator, nc)
}

func (nc NewClass) Class(id int) Class {
	return Class{
		ID:        id,
		Name:      nc.Name,
		Subject:   nc.Subject,
		Room:      nc.Room,
		Schedule:  nc.Schedule,
		TeacherID: nc.TeacherID,
	}
}

type NewAssignment struct {
	Name    string  `json:"name" validate:"notblank"`
	Type    string  `json:"type" validate:"omitempty,oneof=homework quiz exam project"`
	DueDate Date    `json:"due_date" validate:"required"`
	Points  float64 `json:"points" validate:"gt=0"`
	ClassID int     `json:"class_id"`
}

func (na *NewAssignment) Validate(validate *validator.Validate, translator ut.Translator) map[string]string {
	na.Name = core.CleanString(na.Name)
	na.Type = core.CleanString(na.Type, true /* lower */)
	if na.Type == "" {
		na.Type = AssignmentHomework
	}
	return core.FieldErrors(validate, translator, na)
}

func (na NewAssignment) Assignment(id int) Assignment {
	return Assignment{
		ID:      id,
		Name:    na.Name,
		Type:    na.Type,
		DueDate: na.DueDate,
		Points:  na.Points,
		ClassID: na.ClassID,
	}
}

type NewTeacher struct {
	Name    string   `json:"name" validate:"notblank"`
	Email   string   `json:"email" validate:"required,emailshape"`
	Subject string   `json:"subject"`
	Tags    []string `json:"tags"`
}

func (nt *NewTeacher) Validate(validate *validator.Validate, translator ut.Translator) map[string]string {
	nt.Name = core.CleanString(nt.Name)
	nt.Email = core.CleanString(nt.Email, true /* lower */)
	nt.Subject = core.CleanString(nt.Subject)
	tags := make([]string, 0, len(nt.Tags))
	for _, tag := range nt.Tags {
		if tag = core.CleanString(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	nt.Tags = tags
	return core.FieldErrors(validate, translator, nt)
}

func (nt NewTeacher) Teacher(id int) Teacher {
	return Teacher{
		ID:      id,
		Name:    nt.Name,
		Email:   nt.Email,
		Subject: nt.Subject,
		Tags:    nt.Tags,
	}
}

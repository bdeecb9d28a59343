package records

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/schoolrecords/core/school"
)

func (svc *Service) GetStudent(ctx context.Context, id int) (school.Student, error) {
	return svc.store.GetStudent(ctx, id)
}

func (svc *Service) CreateStudent(ctx context.Context, ns school.NewStudent) (school.Student, error) {
	if err := invalid(ns.Validate(svc.validate, svc.translator)); err != nil {
		return school.Student{}, err
	}
	s := ns.Student(0)
	if s.EnrollmentDate.IsZero() {
		s.EnrollmentDate = svc.Today()
	}
	return svc.store.CreateStudent(ctx, s)
}

// UpdateStudent replaces the student with id.
func (svc *Service) UpdateStudent(ctx context.Context, id int, ns school.NewStudent) (school.Student, error) {
	if err := invalid(ns.Validate(svc.validate, svc.translator)); err != nil {
		return school.Student{}, err
	}
	s := ns.Student(id)
	if s.EnrollmentDate.IsZero() {
		current, err := svc.store.GetStudent(ctx, id)
		if err != nil {
			return school.Student{}, err
		}
		s.EnrollmentDate = current.EnrollmentDate
	}
	return svc.store.UpdateStudent(ctx, s)
}

func (svc *Service) DeleteStudent(ctx context.Context, id int) error {
	return svc.store.DeleteStudent(ctx, id)
}

func (svc *Service) CreateClass(ctx context.Context, nc school.NewClass) (school.Class, error) {
	if err := invalid(nc.Validate(svc.validate, svc.translator)); err != nil {
		return school.Class{}, err
	}
	return svc.store.CreateClass(ctx, nc.Class(0))
}

func (svc *Service) UpdateClass(ctx context.Context, id int, nc school.NewClass) (school.Class, error) {
	if err := invalid(nc.Validate(svc.validate, svc.translator)); err != nil {
		return school.Class{}, err
	}
	return svc.store.UpdateClass(ctx, nc.Class(id))
}

func (svc *Service) DeleteClass(ctx context.Context, id int) error {
	return svc.store.DeleteClass(ctx, id)
}

// checkClass reports an unknown class as a class_id field error.
func (svc *Service) checkClass(ctx context.Context, classID int, fields map[string]string) error {
	if _, seen := fields["class_id"]; seen {
		return nil
	}
	_, err := svc.store.GetClass(ctx, classID)
	switch {
	case err == nil:
		return nil
	case school.IsNotFound(err):
		fields["class_id"] = "class not found"
		return nil
	default:
		return errors.Wrap(err, "getting class")
	}
}

func (svc *Service) CreateAssignment(ctx context.Context, na school.NewAssignment) (school.Assignment, error) {
	fields := na.Validate(svc.validate, svc.translator)
	if err := svc.checkClass(ctx, na.ClassID, fields); err != nil {
		return school.Assignment{}, err
	}
	if err := invalid(fields); err != nil {
		return school.Assignment{}, err
	}
	return svc.store.CreateAssignment(ctx, na.Assignment(0))
}

// UpdateAssignment replaces the assignment. Grades already recorded keep their MaxScore.
func (svc *Service) UpdateAssignment(ctx context.Context, id int, na school.NewAssignment) (school.Assignment, error) {
	fields := na.Validate(svc.validate, svc.translator)
	if err := svc.checkClass(ctx, na.ClassID, fields); err != nil {
		return school.Assignment{}, err
	}
	if err := invalid(fields); err != nil {
		return school.Assignment{}, err
	}
	return svc.store.UpdateAssignment(ctx, na.Assignment(id))
}

func (svc *Service) DeleteAssignment(ctx context.Context, id int) error {
	return svc.store.DeleteAssignment(ctx, id)
}

func (svc *Service) CreateTeacher(ctx context.Context, nt school.NewTeacher) (school.Teacher, error) {
	if err := invalid(nt.Validate(svc.validate, svc.translator)); err != nil {
		return school.Teacher{}, err
	}
	return svc.store.CreateTeacher(ctx, nt.Teacher(0))
}

func (svc *Service) UpdateTeacher(ctx context.Context, id int, nt school.NewTeacher) (school.Teacher, error) {
	if err := invalid(nt.Validate(svc.validate, svc.translator)); err != nil {
		return school.Teacher{}, err
	}
	return svc.store.UpdateTeacher(ctx, nt.Teacher(id))
}

func (svc *Service) DeleteTeacher(ctx context.Context, id int) error {
	return svc.store.DeleteTeacher(ctx, id)
}

// Package records is the application service over a school.Store: it loads
// snapshots, runs them through the engine and applies reconciled batches.
package records

import (
	"context"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/schoolrecords/core"
	"github.com/trezcool/schoolrecords/core/school"
	"github.com/trezcool/schoolrecords/core/search"
	"github.com/trezcool/schoolrecords/core/stats"
)

type Deps struct {
	Store      school.Store
	Validate   *validator.Validate
	Translator ut.Translator
	Logger     core.Logger
	Mailer     core.EmailService
}

type Service struct {
	store      school.Store
	validate   *validator.Validate
	translator ut.Translator
	log        core.Logger
	mail       core.EmailService
	now        func() time.Time
}

func NewService(deps Deps) *Service {
	return &Service{
		store:      deps.Store,
		validate:   deps.Validate,
		translator: deps.Translator,
		log:        deps.Logger,
		mail:       deps.Mailer,
		now:        time.Now,
	}
}

// Today is the current calendar date in the server's location.
func (svc *Service) Today() school.Date {
	return school.DateOf(svc.now())
}

// Snapshot reads every record kind from the store.
func (svc *Service) Snapshot(ctx context.Context) (stats.Snapshot, error) {
	var (
		snap stats.Snapshot
		err  error
	)
	if snap.Students, err = svc.store.ListStudents(ctx); err != nil {
		return stats.Snapshot{}, errors.Wrap(err, "listing students")
	}
	if snap.Classes, err = svc.store.ListClasses(ctx); err != nil {
		return stats.Snapshot{}, errors.Wrap(err, "listing classes")
	}
	if snap.Teachers, err = svc.store.ListTeachers(ctx); err != nil {
		return stats.Snapshot{}, errors.Wrap(err, "listing teachers")
	}
	if snap.Assignments, err = svc.store.ListAssignments(ctx); err != nil {
		return stats.Snapshot{}, errors.Wrap(err, "listing assignments")
	}
	if snap.Grades, err = svc.store.ListGrades(ctx); err != nil {
		return stats.Snapshot{}, errors.Wrap(err, "listing grades")
	}
	if snap.Attendance, err = svc.store.ListAttendance(ctx); err != nil {
		return stats.Snapshot{}, errors.Wrap(err, "listing attendance")
	}
	return snap, nil
}

func (svc *Service) Dashboard(ctx context.Context) (stats.DashboardStats, error) {
	snap, err := svc.Snapshot(ctx)
	if err != nil {
		return stats.DashboardStats{}, err
	}
	return stats.Dashboard(snap, svc.Today()), nil
}

// Students returns the enriched students matching filter.
func (svc *Service) Students(ctx context.Context, filter search.StudentFilter) ([]stats.EnrichedStudent, error) {
	snap, err := svc.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	students := search.FilterStudents(snap.Students, filter)
	return stats.EnrichStudents(students, snap.Classes, snap.Grades, snap.Attendance), nil
}

// Classes returns the summaries of the classes matching term.
func (svc *Service) Classes(ctx context.Context, term string) ([]stats.ClassSummary, error) {
	classes, err := svc.store.ListClasses(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "listing classes")
	}
	students, err := svc.store.ListStudents(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "listing students")
	}
	return stats.EnrichClasses(search.FilterClasses(classes, term), students), nil
}

func (svc *Service) Assignments(ctx context.Context, filter search.AssignmentFilter) ([]school.Assignment, error) {
	assignments, err := svc.store.ListAssignments(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "listing assignments")
	}
	return search.FilterAssignments(assignments, filter), nil
}

func (svc *Service) Teachers(ctx context.Context, filter search.TeacherFilter) ([]school.Teacher, error) {
	teachers, err := svc.store.ListTeachers(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "listing teachers")
	}
	return search.FilterTeachers(teachers, filter), nil
}

func (svc *Service) Subjects(ctx context.Context) ([]string, error) {
	teachers, err := svc.store.ListTeachers(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "listing teachers")
	}
	return search.Subjects(teachers), nil
}

// invalid turns a non-empty field map into a *core.ValidationError.
func invalid(fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	return core.NewFieldsError(fields)
}

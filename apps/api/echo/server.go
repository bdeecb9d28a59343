package echoapi

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/pkg/errors"

	"github.com/trezcool/schoolrecords/core"
	"github.com/trezcool/schoolrecords/core/batch"
	"github.com/trezcool/schoolrecords/core/records"
	"github.com/trezcool/schoolrecords/core/school"
	"github.com/trezcool/schoolrecords/core/search"
	"github.com/trezcool/schoolrecords/core/stats"
)

// RecordsService is what the API needs from records.Service.
type RecordsService interface {
	Dashboard(ctx context.Context) (stats.DashboardStats, error)

	Students(ctx context.Context, filter search.StudentFilter) ([]stats.EnrichedStudent, error)
	GetStudent(ctx context.Context, id int) (school.Student, error)
	CreateStudent(ctx context.Context, ns school.NewStudent) (school.Student, error)
	UpdateStudent(ctx context.Context, id int, ns school.NewStudent) (school.Student, error)
	DeleteStudent(ctx context.Context, id int) error

	Classes(ctx context.Context, term string) ([]stats.ClassSummary, error)
	CreateClass(ctx context.Context, nc school.NewClass) (school.Class, error)
	UpdateClass(ctx context.Context, id int, nc school.NewClass) (school.Class, error)
	DeleteClass(ctx context.Context, id int) error

	Assignments(ctx context.Context, filter search.AssignmentFilter) ([]school.Assignment, error)
	CreateAssignment(ctx context.Context, na school.NewAssignment) (school.Assignment, error)
	UpdateAssignment(ctx context.Context, id int, na school.NewAssignment) (school.Assignment, error)
	DeleteAssignment(ctx context.Context, id int) error

	Teachers(ctx context.Context, filter search.TeacherFilter) ([]school.Teacher, error)
	Subjects(ctx context.Context) ([]string, error)
	CreateTeacher(ctx context.Context, nt school.NewTeacher) (school.Teacher, error)
	UpdateTeacher(ctx context.Context, id int, nt school.NewTeacher) (school.Teacher, error)
	DeleteTeacher(ctx context.Context, id int) error

	AttendanceSheet(ctx context.Context, classID *int, date school.Date) ([]batch.AttendanceRow, error)
	SaveAttendance(ctx context.Context, in records.AttendanceInput) (batch.Result, error)
	GradeSheet(ctx context.Context, assignmentID int) (school.Assignment, []batch.GradeRow, error)
	SaveGrades(ctx context.Context, in records.GradeInput) (batch.Result, error)
}

var _ RecordsService = (*records.Service)(nil)

type (
	ServerDeps struct {
		Conf    *core.Config
		Logger  core.Logger
		Records RecordsService
	}

	Server struct {
		*http.Server
		app      *echo.Echo
		logger   core.Logger
		errors   chan error
		shutdown chan os.Signal
	}
)

func NewServer(deps ServerDeps) *Server {
	app := echo.New()
	app.HideBanner = true

	srv := &Server{
		Server: &http.Server{
			Addr:         deps.Conf.Server.Address,
			Handler:      app,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		app:      app,
		logger:   deps.Logger,
		errors:   make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	signal.Notify(srv.shutdown, os.Interrupt, syscall.SIGTERM)

	srv.setup(deps)
	return srv
}

func (s *Server) setup(deps ServerDeps) {
	conf := deps.Conf

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !conf.Server.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.logger, s.signalShutdown)
	s.app.Debug = conf.Debug

	s.app.GET("/", home(conf.AppName))

	v1 := s.app.Group("/v1")
	registerRecordsAPI(v1, deps.Records)
	registerDashboardAPI(v1, deps.Records)
	registerSheetsAPI(v1, deps.Records)
}

// Start listens until the server is shut down; other listen errors go to Errors.
func (s *Server) Start() {
	s.logger.Info(fmt.Sprintf("API listening on %s", s.Addr))
	if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.errors <- err
	}
}

func (s *Server) Errors() <-chan error { return s.errors }

func (s *Server) ShutdownSignal() <-chan os.Signal { return s.shutdown }

func (s *Server) signalShutdown() {
	select {
	case s.shutdown <- syscall.SIGTERM:
	default:
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(appName string) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		return ctx.String(http.StatusOK, fmt.Sprintf("Welcome to %s API!", appName))
	}
}

// Package testutil holds helpers shared by package tests.
package testutil

import (
	"context"
	"fmt"
	"net/mail"
	"sync"
	"testing"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"

	"github.com/trezcool/schoolrecords/core"
	"github.com/trezcool/schoolrecords/core/school"
	"github.com/trezcool/schoolrecords/storage/database"
)

// Config returns a test configuration backed by an in-memory sqlite database.
func Config() *core.Config {
	return &core.Config{
		Env:              "TEST",
		AppName:          "School Records",
		Debug:            true,
		TestMode:         true,
		DefaultFromEmail: mail.Address{Name: "School Records", Address: "noreply@test.cd"},
		Server:           core.ServerConfig{DisableReqLogs: true},
		Store:            core.StoreConfig{Backend: core.StoreDatabase},
		Database:         core.DatabaseConfig{Engine: database.EngineSQLite, Path: ":memory:"},
	}
}

// OpenDB opens a migrated in-memory sqlite database, closed when the test ends.
func OpenDB(t *testing.T) *sqlx.DB {
	t.Helper()
	conf := Config()
	db, err := database.Open(conf)
	if err != nil {
		t.Fatalf("OpenDB() failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err = database.Migrate(context.Background(), db, conf.Database.Engine); err != nil {
		t.Fatalf("OpenDB() failed: %v", err)
	}
	return db
}

// Validator returns a validator set up the way the apps set it up.
func Validator() (*validator.Validate, ut.Translator) {
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	school.InitValidators(validate, translator)
	return validate, translator
}

type Entry struct {
	Level string
	Msg   string
	Args  []interface{}
}

// Logger records every entry instead of printing it.
type Logger struct {
	mu      sync.Mutex
	Entries []Entry
}

var _ core.Logger = (*Logger)(nil)

func (l *Logger) log(level, msg string, args []interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Entries = append(l.Entries, Entry{Level: level, Msg: msg, Args: args})
}

func (l *Logger) Debug(msg string, args ...interface{}) { l.log("debug", msg, args) }
func (l *Logger) Info(msg string, args ...interface{})  { l.log("info", msg, args) }
func (l *Logger) Warn(msg string, args ...interface{})  { l.log("warn", msg, args) }
func (l *Logger) Error(msg string, args ...interface{}) { l.log("error", msg, args) }
func (l *Logger) Fatal(msg string, args ...interface{}) { l.log("fatal", msg, args) }

// Levels returns the entries' levels in order.
func (l *Logger) Levels() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	levels := make([]string, 0, len(l.Entries))
	for _, e := range l.Entries {
		levels = append(levels, e.Level)
	}
	return levels
}

// Mailer collects messages synchronously.
type Mailer struct {
	mu   sync.Mutex
	Sent []core.EmailMessage
}

var _ core.EmailService = (*Mailer)(nil)

func (m *Mailer) SendMessages(messages ...*core.EmailMessage) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, msg := range messages {
		m.Sent = append(m.Sent, *msg)
	}
}

// CreateStudent stores a student or fails the test.
func CreateStudent(t *testing.T, store school.StudentRepository, first, last string, classID *int) school.Student {
	t.Helper()
	s, err := store.CreateStudent(context.Background(), school.Student{
		FirstName:   first,
		LastName:    last,
		Email:       fmt.Sprintf("%s.%s@test.cd", first, last),
		DateOfBirth: school.MustParseDate("2008-01-01"),
		Status:      school.StatusActive,
		ClassID:     classID,
	})
	if err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	return s
}

// Package database opens, creates, migrates and seeds the SQL record store.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/trezcool/schoolrecords/core"
	"github.com/trezcool/schoolrecords/fs"
)

const (
	EnginePostgres = "postgres"
	EngineSQLite   = "sqlite"
)

var ErrUnknownEngine = errors.New("unknown database engine")

func init() {
	sqlx.BindDriver(EngineSQLite, sqlx.QUESTION)
}

func postgresURL(dbName string, admin bool, conf *core.Config) string {
	user := url.UserPassword(conf.Database.User, conf.Database.Password)
	if admin && conf.Database.AdminUser != "" {
		user = url.UserPassword(conf.Database.AdminUser, conf.Database.AdminPassword)
	}

	sslMode := "require"
	if conf.Database.DisableTLS {
		sslMode = "disable"
	}
	q := make(url.Values)
	q.Set("sslmode", sslMode)
	q.Set("timezone", "utc")

	u := url.URL{
		Scheme:   EnginePostgres,
		User:     user,
		Host:     conf.Database.Address(),
		Path:     dbName,
		RawQuery: q.Encode(),
	}
	return u.String()
}

func sqliteDSN(path string) string {
	if path == "" || path == ":memory:" {
		return ":memory:"
	}
	return "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
}

func open(dbName string, admin bool, conf *core.Config) (*sqlx.DB, error) {
	switch conf.Database.Engine {
	case EnginePostgres:
		return sqlx.Open(EnginePostgres, postgresURL(dbName, admin, conf))
	case EngineSQLite:
		db, err := sqlx.Open(EngineSQLite, sqliteDSN(conf.Database.Path))
		if err != nil {
			return nil, err
		}
		// one connection: every :memory: connection is a separate database, and sqlite has a single writer anyway
		db.SetMaxOpenConns(1)
		return db, nil
	default:
		return nil, errors.Wrapf(ErrUnknownEngine, "%q", conf.Database.Engine)
	}
}

// Open connects to the configured database and waits for it to answer.
func Open(conf *core.Config) (*sqlx.DB, error) {
	db, err := open(conf.Database.Name, false, conf)
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}
	if err = ping(db.DB); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// ping waits for the database to be ready. Waits 100ms longer between each attempt.
func ping(db *sql.DB) error {
	var err error
	maxAttempts := 30
	for attempts := 1; attempts <= maxAttempts; attempts++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(time.Duration(attempts) * 100 * time.Millisecond)
	}

	if err != nil {
		return errors.Wrap(err, "DB ping timeout")
	}
	return nil
}

func exists(db *sqlx.DB, query, name string) (bool, error) {
	var found bool
	err := db.Get(&found, query, name)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return found, err
}

func createAppUser(db *sqlx.DB, conf *core.Config) error {
	if conf.Database.User == "" {
		return nil
	}

	found, err := exists(db, "SELECT true FROM pg_roles WHERE rolname=$1", conf.Database.User)
	if err != nil {
		return errors.Wrap(err, "checking app user")
	}
	if !found {
		q := fmt.Sprintf("CREATE USER %s CREATEDB ENCRYPTED PASSWORD '%s'", conf.Database.User, conf.Database.Password)
		if _, err = db.Exec(q); err != nil {
			return errors.Wrap(err, "creating app user")
		}
	}
	return nil
}

func createDB(db *sqlx.DB, conf *core.Config) error {
	found, err := exists(db, "SELECT true FROM pg_database WHERE datname=$1", conf.Database.Name)
	if err != nil {
		return errors.Wrap(err, "checking DB")
	}
	if !found {
		if _, err = db.Exec(fmt.Sprintf("CREATE DATABASE %s", conf.Database.Name)); err != nil {
			return errors.Wrap(err, "creating database")
		}
	}
	return nil
}

// CreateIfNotExist creates the postgres app user and database. Nothing to do for sqlite.
func CreateIfNotExist(conf *core.Config) error {
	if conf.Database.Engine != EnginePostgres {
		return nil
	}

	// connect as admin
	admin, err := open("postgres", true, conf)
	if err != nil {
		return errors.Wrap(err, "opening database")
	}
	defer func() { _ = admin.Close() }()

	if err = ping(admin.DB); err != nil {
		return errors.Wrap(err, "pinging database")
	}
	if err = createAppUser(admin, conf); err != nil {
		return err
	}

	// create DB as app user
	db, err := open("postgres", false, conf)
	if err != nil {
		return errors.Wrap(err, "opening database")
	}
	defer func() { _ = db.Close() }()
	return createDB(db, conf)
}

func gooseDialect(engine string) string {
	if engine == EngineSQLite {
		return "sqlite3"
	}
	return engine
}

// RunMigrations runs a goose command ("up", "down", "status", "redo", ...) with the embedded migrations of engine.
func RunMigrations(ctx context.Context, db *sqlx.DB, engine, command string, args ...string) error {
	migrations, err := appfs.Migrations(engine)
	if err != nil {
		return errors.Wrap(err, "loading migrations")
	}
	goose.SetBaseFS(migrations)
	defer goose.SetBaseFS(nil)

	if err = goose.SetDialect(gooseDialect(engine)); err != nil {
		return errors.Wrap(err, "setting goose dialect")
	}
	if err = goose.RunContext(ctx, command, db.DB, ".", args...); err != nil {
		return errors.Wrapf(err, "goose %s", command)
	}
	return nil
}

// Migrate brings the schema up to date.
func Migrate(ctx context.Context, db *sqlx.DB, engine string) error {
	if err := RunMigrations(ctx, db, engine, "up"); err != nil {
		return errors.Wrap(err, "migrating database")
	}
	return nil
}

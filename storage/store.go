// Package storage opens the school.Store selected by configuration.
package storage

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/pkg/errors"

	"github.com/trezcool/schoolrecords/core"
	"github.com/trezcool/schoolrecords/core/school"
	appfs "github.com/trezcool/schoolrecords/fs"
	"github.com/trezcool/schoolrecords/storage/database"
	inmemdb "github.com/trezcool/schoolrecords/storage/database/inmem"
	"github.com/trezcool/schoolrecords/storage/database/sqlxstore"
)

var ErrUnknownBackend = errors.New("unknown store backend")

// Closer releases a store.
type Closer func() error

// FixturesFS returns the seed data in dir, or the embedded fixtures when dir is blank.
func FixturesFS(dir string) fs.FS {
	if dir == "" {
		return appfs.Fixtures()
	}
	return os.DirFS(dir)
}

// Open returns the store selected by conf.Store.Backend.
// The memory store is seeded from conf.Store.FixturesDir (the embedded fixtures when unset).
// The database store is created when missing (postgres) and migrated.
func Open(ctx context.Context, conf *core.Config, logger core.Logger) (school.Store, Closer, error) {
	switch conf.Store.Backend {
	case core.StoreMemory, "":
		db, err := inmemdb.Open()
		if err != nil {
			return nil, nil, errors.Wrap(err, "opening memory store")
		}
		counts, err := database.Seed(ctx, db, FixturesFS(conf.Store.FixturesDir))
		if err != nil {
			return nil, nil, errors.Wrap(err, "seeding memory store")
		}
		logger.Info(fmt.Sprintf("memory store seeded: %+v", counts))
		return db, db.Close, nil

	case core.StoreDatabase:
		db, err := openDatabase(ctx, conf)
		if err != nil {
			return nil, nil, err
		}
		logger.Info(fmt.Sprintf("%s store ready", conf.Database.Engine))
		return sqlxstore.NewStore(db), db.Close, nil

	default:
		return nil, nil, errors.Wrapf(ErrUnknownBackend, "%q", conf.Store.Backend)
	}
}

func openDatabase(ctx context.Context, conf *core.Config) (core.DB, error) {
	if err := database.CreateIfNotExist(conf); err != nil {
		return nil, errors.Wrap(err, "creating database")
	}
	db, err := database.Open(conf)
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}
	if err = database.Migrate(ctx, db, conf.Database.Engine); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "migrating database")
	}
	return db, nil
}

package main

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/schoolrecords/core"
	"github.com/trezcool/schoolrecords/storage/database"
)

var runMigrationsFunc = database.RunMigrations // mockable

func (cli *commandLine) migrate(ctx context.Context, args []string) error {
	if cli.conf.Store.Backend != core.StoreDatabase {
		return errNeedsDatabase
	}
	if err := database.CreateIfNotExist(cli.conf); err != nil {
		return err
	}
	db, err := database.Open(cli.conf)
	if err != nil {
		return errors.Wrap(err, "opening database")
	}
	defer func() { _ = db.Close() }()

	return runMigrationsFunc(ctx, db, cli.conf.Database.Engine, args[0], args[1:]...)
}

package main

import (
	"context"
	"fmt"

	"github.com/trezcool/schoolrecords/core"
	"github.com/trezcool/schoolrecords/storage"
	"github.com/trezcool/schoolrecords/storage/database"
)

// seed loads fixtures into the database store, migrating it first.
func (cli *commandLine) seed(ctx context.Context, dir string) error {
	if cli.conf.Store.Backend != core.StoreDatabase {
		return errNeedsDatabase
	}
	store, closeStore, err := storage.Open(ctx, cli.conf, cli.logger)
	if err != nil {
		return err
	}
	defer func() { _ = closeStore() }()

	counts, err := database.Seed(ctx, store, storage.FixturesFS(dir))
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "seeded %d teachers, %d classes, %d students, %d assignments, %d grades, %d attendance records\n",
		counts.Teachers, counts.Classes, counts.Students, counts.Assignments, counts.Grades, counts.Attendance)
	return nil
}

package storage

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/schoolrecords/core"
	"github.com/trezcool/schoolrecords/core/school"
	"github.com/trezcool/schoolrecords/storage/database/sqlxstore"
	"github.com/trezcool/schoolrecords/tests"
)

func TestOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("memory seeded with embedded fixtures", func(t *testing.T) {
		conf := testutil.Config()
		conf.Store.Backend = core.StoreMemory
		store, closeStore, err := Open(ctx, conf, &testutil.Logger{})
		require.NoError(t, err)
		defer func() { _ = closeStore() }()

		students, err := store.ListStudents(ctx)
		require.NoError(t, err)
		assert.Len(t, students, 6)
		assert.Equal(t, "Emma Johnson", students[0].FullName())
	})

	t.Run("database", func(t *testing.T) {
		store, closeStore, err := Open(ctx, testutil.Config(), &testutil.Logger{})
		require.NoError(t, err)
		defer func() { _ = closeStore() }()
		assert.IsType(t, &sqlxstore.Store{}, store)

		created, err := store.CreateClass(ctx, school.Class{Name: "Math 101", Subject: "Math", Room: "A1", Schedule: "Mon"})
		require.NoError(t, err)
		got, err := store.GetClass(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created, got)
	})

	t.Run("unknown backend", func(t *testing.T) {
		conf := testutil.Config()
		conf.Store.Backend = "redis"
		_, _, err := Open(ctx, conf, &testutil.Logger{})
		assert.Equal(t, ErrUnknownBackend, errors.Cause(err))
	})
}

func TestFixturesFS(t *testing.T) {
	fsys := FixturesFS("")
	_, err := fsys.Open("students.json")
	assert.NoError(t, err)

	fsys = FixturesFS(t.TempDir())
	_, err = fsys.Open("students.json")
	assert.Error(t, err)
}

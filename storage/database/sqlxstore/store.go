// Package sqlxstore is a school.Store on top of sqlx, for postgres and sqlite.
package sqlxstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/schoolrecords/core"
	"github.com/trezcool/schoolrecords/core/school"
)

type Store struct {
	db core.DB
}

var _ school.Store = (*Store)(nil) // interface compliance check

func NewStore(db core.DB) *Store {
	return &Store{db: db}
}

var byID = core.DBOrdering{Field: "id", Ascending: true}

// trapNoRowsErr maps "no rows" to school.ErrNotFound
func trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return school.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (s *Store) list(ctx context.Context, dest interface{}, table string, cols []string) error {
	q := fmt.Sprintf("SELECT %s FROM %s ORDER BY %s", strings.Join(cols, ", "), table, byID)
	if err := s.db.SelectContext(ctx, dest, q); err != nil {
		return errors.Wrapf(err, "listing %s", table)
	}
	return nil
}

func (s *Store) get(ctx context.Context, dest interface{}, table string, cols []string, id int) error {
	q := s.db.Rebind(fmt.Sprintf("SELECT %s FROM %s WHERE id = ?", strings.Join(cols, ", "), table))
	if err := s.db.GetContext(ctx, dest, q, id); err != nil {
		return trapNoRowsErr(err, "getting from "+table)
	}
	return nil
}

// insert writes one row and returns its id. cols excludes "id".
func (s *Store) insert(ctx context.Context, table string, cols []string, args ...interface{}) (int, error) {
	marks := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	q := s.db.Rebind(fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) RETURNING id", table, strings.Join(cols, ", "), marks))

	var id int
	if err := s.db.QueryRowxContext(ctx, q, args...).Scan(&id); err != nil {
		return 0, errors.Wrapf(err, "inserting into %s", table)
	}
	return id, nil
}

// update replaces the cols of row id. cols excludes "id".
func (s *Store) update(ctx context.Context, table string, cols []string, id int, args ...interface{}) error {
	sets := make([]string, 0, len(cols))
	for _, c := range cols {
		sets = append(sets, c+" = ?")
	}
	q := s.db.Rebind(fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", table, strings.Join(sets, ", ")))

	res, err := s.db.ExecContext(ctx, q, append(args, id)...)
	if err != nil {
		return errors.Wrapf(err, "updating %s", table)
	}
	return checkAffected(res, table)
}

func (s *Store) delete(ctx context.Context, table string, id int) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(fmt.Sprintf("DELETE FROM %s WHERE id = ?", table)), id)
	if err != nil {
		return errors.Wrapf(err, "deleting from %s", table)
	}
	return checkAffected(res, table)
}

func checkAffected(res sql.Result, table string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrapf(err, "counting %s rows", table)
	}
	if n == 0 {
		return school.ErrNotFound
	}
	return nil
}

// Package inmemdb is a school.Store kept in process memory.
// Each record kind has its own table guarded by a sync.RWMutex.
package inmemdb

import (
	"sync"

	"github.com/trezcool/schoolrecords/core/school"
)

type (
	DB struct {
		students    *table[school.Student]
		classes     *table[school.Class]
		teachers    *table[school.Teacher]
		assignments *table[school.Assignment]
		grades      *table[school.Grade]
		attendance  *table[school.Attendance]
	}

	// table keeps rows in insertion order; ids are never reused.
	// Rows go through clone on the way in and out, so callers never share
	// pointers or slices with the stored copy.
	table[T any] struct {
		rows  map[int]T
		order []int
		pk    int
		clone func(T) T
		mutex sync.RWMutex
	}
)

var _ school.Store = (*DB)(nil)

func Open() (*DB, error) {
	db := &DB{
		students:    newTable(cloneStudent),
		classes:     newTable(cloneClass),
		teachers:    newTable(cloneTeacher),
		assignments: newTable(same[school.Assignment]),
		grades:      newTable(same[school.Grade]),
		attendance:  newTable(cloneAttendance),
	}
	return db, nil
}

func newTable[T any](clone func(T) T) *table[T] {
	return &table[T]{rows: make(map[int]T), clone: clone}
}

func (t *table[T]) list() []T {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	out := make([]T, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.clone(t.rows[id]))
	}
	return out
}

func (t *table[T]) get(id int) (T, error) {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	if row, ok := t.rows[id]; ok {
		return t.clone(row), nil
	}
	var zero T
	return zero, school.ErrNotFound
}

// insert stores row under the next pk, which setID writes into it.
func (t *table[T]) insert(row T, setID func(*T, int)) T {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	t.pk++
	setID(&row, t.pk)
	t.rows[t.pk] = t.clone(row)
	t.order = append(t.order, t.pk)
	return t.clone(row)
}

func (t *table[T]) replace(id int, row T) (T, error) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if _, ok := t.rows[id]; !ok {
		var zero T
		return zero, school.ErrNotFound
	}
	t.rows[id] = t.clone(row)
	return t.clone(row), nil
}

func (t *table[T]) remove(id int) error {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if _, ok := t.rows[id]; !ok {
		return school.ErrNotFound
	}
	delete(t.rows, id)
	for i, pk := range t.order {
		if pk == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return nil
}

func (t *table[T]) len() int {
	t.mutex.RLock()
	defer t.mutex.RUnlock()
	return len(t.rows)
}

// Close is a no-op; it lets DB stand in wherever a closable store is expected.
func (db *DB) Close() error { return nil }

// Empty reports whether no record of any kind is stored.
func (db *DB) Empty() bool {
	return db.students.len()+db.classes.len()+db.teachers.len()+
		db.assignments.len()+db.grades.len()+db.attendance.len() == 0
}

// Package storage provides the in-memory tables backing every store in the
// system, plus the CSV load/flush used at session boundaries. Each table is an
// index-by-ID map; persistence is whole-file read at startup and whole-file
// write at shutdown.
package storage

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	ErrDuplicateID = errors.New("record with this id already exists")
	ErrNotFound    = errors.New("record not found")
)

// Keyed is implemented by every record kept in a Table.
type Keyed interface {
	Key() string
}

// Table is a mutex-guarded map of records keyed by ID. The process is
// single-operator, but the HTTP facade can see concurrent requests, so reads
// and writes are guarded.
type Table[T Keyed] struct {
	mu   sync.RWMutex
	rows map[string]T
}

func NewTable[T Keyed]() *Table[T] {
	return &Table[T]{rows: make(map[string]T)}
}

// Add inserts a record, failing if its ID is already present.
func (t *Table[T]) Add(rec T) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := rec.Key()
	if _, ok := t.rows[id]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateID, id)
	}
	t.rows[id] = rec
	return nil
}

// Get returns a copy of the record with the given ID.
func (t *Table[T]) Get(id string) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	rec, ok := t.rows[id]
	return rec, ok
}

// Update replaces the stored record whole, failing if the ID is unknown.
func (t *Table[T]) Update(rec T) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := rec.Key()
	if _, ok := t.rows[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	t.rows[id] = rec
	return nil
}

// Remove deletes the record with the given ID, failing if it is unknown.
func (t *Table[T]) Remove(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.rows[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(t.rows, id)
	return nil
}

// List returns all records ordered by ID.
func (t *Table[T]) List() []T {
	t.mu.RLock()
	defer t.mu.RUnlock()

	ids := make([]string, 0, len(t.rows))
	for id := range t.rows {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, t.rows[id])
	}
	return out
}

// Filter returns all records matching pred, ordered by ID.
func (t *Table[T]) Filter(pred func(T) bool) []T {
	all := t.List()
	out := all[:0]
	for _, rec := range all {
		if pred(rec) {
			out = append(out, rec)
		}
	}
	return out
}

// Replace swaps the table contents for the given records. Used by the CSV
// loader; duplicate IDs in the input are an error and leave the table intact.
func (t *Table[T]) Replace(recs []T) error {
	rows := make(map[string]T, len(recs))
	for _, rec := range recs {
		id := rec.Key()
		if _, ok := rows[id]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateID, id)
		}
		rows[id] = rec
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows = rows
	return nil
}

// Len reports the number of stored records.
func (t *Table[T]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rows)
}

package database

import (
	"slices"
	"sync"

	"github.com/pkg/errors"
)

var (
	// ErrNotFound is returned when no record has the requested id.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateID is returned when inserting an id that already exists.
	ErrDuplicateID = errors.New("duplicate record id")
)

// Collection is an ordered, mutex-guarded set of records keyed by id.
//
// Records keep insertion order. Lookups are linear scans. Every method
// returns copies, so callers never share memory with stored records.
type Collection[T any] struct {
	mu      sync.RWMutex
	records []T
	key     func(T) string
	clone   func(T) T
}

// NewCollection creates an empty collection.
//
// key extracts a record's id. clone deep-copies a record; pass nil for
// records without reference-typed fields.
func NewCollection[T any](key func(T) string, clone func(T) T) *Collection[T] {
	if clone == nil {
		clone = func(v T) T { return v }
	}
	return &Collection[T]{key: key, clone: clone}
}

func (c *Collection[T]) indexOf(id string) int {
	return slices.IndexFunc(c.records, func(v T) bool { return c.key(v) == id })
}

// Len returns the number of records.
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}

// List returns all records in insertion order. It never returns nil.
func (c *Collection[T]) List() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]T, len(c.records))
	for i, v := range c.records {
		out[i] = c.clone(v)
	}
	return out
}

// Find returns the record with the given id or ErrNotFound.
func (c *Collection[T]) Find(id string) (T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i := c.indexOf(id)
	if i < 0 {
		var zero T
		return zero, ErrNotFound
	}
	return c.clone(c.records[i]), nil
}

// Insert appends v. Its id must not be in use.
func (c *Collection[T]) Insert(v T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.indexOf(c.key(v)) >= 0 {
		return errors.Wrapf(ErrDuplicateID, "id %q", c.key(v))
	}
	c.records = append(c.records, c.clone(v))
	return nil
}

// Update applies fn to a copy of the record with the given id and stores
// the result. If fn returns an error nothing is stored.
//
// fn runs under the write lock, so checks it makes against the current
// record cannot race with other writers. fn must not change the id.
func (c *Collection[T]) Update(id string, fn func(*T) error) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	i := c.indexOf(id)
	if i < 0 {
		return zero, ErrNotFound
	}

	next := c.clone(c.records[i])
	if err := fn(&next); err != nil {
		return zero, err
	}
	if c.key(next) != id {
		return zero, errors.Errorf("update changed record id from %q to %q", id, c.key(next))
	}

	c.records[i] = next
	return c.clone(next), nil
}

// RemoveIf deletes the record with the given id when allow accepts it.
// The error from allow is returned unchanged and nothing is removed.
func (c *Collection[T]) RemoveIf(id string, allow func(T) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	if allow != nil {
		if err := allow(c.clone(c.records[i])); err != nil {
			return err
		}
	}

	c.records = slices.Delete(c.records, i, i+1)
	return nil
}

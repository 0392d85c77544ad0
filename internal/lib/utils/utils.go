// Package utils contains small helper functions used across the project.
//
// These are generic helpers that don't belong to a specific domain.
package utils

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator produces a new unique record id on each call.
type IDGenerator func() string

// NewID is the default generator: a random (v4) UUID string.
func NewID() string {
	return uuid.NewString()
}

// SequentialIDs returns a generator yielding "1", "2", ... in order.
// It is safe for concurrent use and handy for predictable ids in tests and demos.
func SequentialIDs() IDGenerator {
	var next atomic.Int64
	return func() string {
		return strconv.FormatInt(next.Add(1), 10)
	}
}

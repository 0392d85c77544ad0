package utils

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewID(t *testing.T) {
	a, b := NewID(), NewID()
	assert.NotEqual(t, a, b)

	_, err := uuid.Parse(a)
	require.NoError(t, err)
}

func TestSequentialIDs(t *testing.T) {
	next := SequentialIDs()
	assert.Equal(t, "1", next())
	assert.Equal(t, "2", next())

	other := SequentialIDs()
	assert.Equal(t, "1", other())
}

func TestSequentialIDs_Concurrent(t *testing.T) {
	next := SequentialIDs()

	var mu sync.Mutex
	seen := make(map[string]bool)
	var wg sync.WaitGroup
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := next()
			mu.Lock()
			seen[id] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, seen, 100)
}

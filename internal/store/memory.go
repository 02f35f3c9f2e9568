package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/locbadge/locbadge/internal/stats"
)

// Memory is an in-process Store for tests and single-node development.
type Memory struct {
	mu      sync.RWMutex
	entries map[stats.Revision]*stats.CacheEntry
}

// NewMemory creates an empty in-process store.
func NewMemory() *Memory {
	return &Memory{entries: make(map[stats.Revision]*stats.CacheEntry)}
}

// Get implements Store.
func (m *Memory) Get(_ context.Context, rev stats.Revision) (*stats.CacheEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.entries[rev]
	if !ok {
		return nil, fmt.Errorf("%w: revision %s", ErrNotFound, rev)
	}

	return entry, nil
}

// Put implements Store. The first write for a revision wins; repeats are
// no-ops.
func (m *Memory) Put(_ context.Context, rev stats.Revision, entry *stats.CacheEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.entries[rev]; !ok {
		m.entries[rev] = entry
	}

	return nil
}

// Purge implements Store.
func (m *Memory) Purge(_ context.Context, rev stats.Revision) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, rev)

	return nil
}

// Ping implements Store.
func (m *Memory) Ping(context.Context) error {
	return nil
}

// Len reports the number of stored revisions.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.entries)
}

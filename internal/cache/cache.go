// Package cache puts a bounded in-process LRU in front of the statistics
// store. Entries are keyed by revision and immutable, so a cached value
// can never go stale and negative caching is unnecessary.
package cache

import (
	"context"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/locbadge/locbadge/internal/stats"
	"github.com/locbadge/locbadge/internal/store"
)

// DefaultSize is the default maximum number of cached revisions.
const DefaultSize = 1024

// Cached is a read-through Store decorator. Reads check the LRU first;
// writes and purges go to the backing store and keep the LRU coherent.
type Cached struct {
	inner store.Store
	lru   *lru.Cache[stats.Revision, *stats.CacheEntry]

	hits   atomic.Int64
	misses atomic.Int64
}

// NewCached wraps inner with an LRU of at most size revisions.
// Non-positive size uses DefaultSize.
func NewCached(inner store.Store, size int) *Cached {
	if size <= 0 {
		size = DefaultSize
	}

	// Error is structurally impossible: size > 0.
	l, err := lru.New[stats.Revision, *stats.CacheEntry](size)
	if err != nil {
		panic("cache: lru initialization failed: " + err.Error())
	}

	return &Cached{inner: inner, lru: l}
}

// Get implements store.Store. Backing-store hits populate the LRU;
// ErrNotFound is never cached.
func (c *Cached) Get(ctx context.Context, rev stats.Revision) (*stats.CacheEntry, error) {
	if entry, ok := c.lru.Get(rev); ok {
		c.hits.Add(1)

		return entry, nil
	}

	c.misses.Add(1)

	entry, err := c.inner.Get(ctx, rev)
	if err != nil {
		return nil, err
	}

	c.lru.Add(rev, entry)

	return entry, nil
}

// Put implements store.Store.
func (c *Cached) Put(ctx context.Context, rev stats.Revision, entry *stats.CacheEntry) error {
	if err := c.inner.Put(ctx, rev, entry); err != nil {
		return err
	}

	c.lru.Add(rev, entry)

	return nil
}

// Purge implements store.Store.
func (c *Cached) Purge(ctx context.Context, rev stats.Revision) error {
	if err := c.inner.Purge(ctx, rev); err != nil {
		return err
	}

	c.lru.Remove(rev)

	return nil
}

// Ping implements store.Store.
func (c *Cached) Ping(ctx context.Context) error {
	return c.inner.Ping(ctx)
}

// Stats returns cache performance counters.
func (c *Cached) Stats() Stats {
	return Stats{
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
		Entries: c.lru.Len(),
	}
}

// Stats holds cache performance counters.
type Stats struct {
	Hits    int64
	Misses  int64
	Entries int
}

// HitRate returns the cache hit rate (0.0 to 1.0).
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0.0
	}

	return float64(s.Hits) / float64(total)
}

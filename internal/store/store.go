// Package store persists computed line-count statistics keyed by revision.
// Entries are immutable once written; revisions content-address their
// source tree, so a stored entry never goes stale.
package store

import (
	"context"
	"errors"

	"github.com/locbadge/locbadge/internal/stats"
)

// ErrNotFound indicates no statistics exist for the revision.
var ErrNotFound = errors.New("statistics not found")

// ErrStoreUnavailable indicates the backing store could not be reached or
// rejected the operation for reasons other than a missing entry.
var ErrStoreUnavailable = errors.New("statistics store unavailable")

// Store is the persistence contract for revision statistics.
//
// Put is idempotent: writing an entry for a revision that already has one
// is a no-op and never an error. Get returns ErrNotFound for missing
// revisions and ErrStoreUnavailable for everything else.
type Store interface {
	Get(ctx context.Context, rev stats.Revision) (*stats.CacheEntry, error)
	Put(ctx context.Context, rev stats.Revision, entry *stats.CacheEntry) error
	Purge(ctx context.Context, rev stats.Revision) error
	Ping(ctx context.Context) error
}

package counter

import (
	"context"
	"fmt"

	"golang.org/x/sync/semaphore"

	"github.com/locbadge/locbadge/internal/stats"
)

// DefaultPoolSize bounds concurrent engine processes.
const DefaultPoolSize = 4

// Pool wraps an Invoker with a weighted semaphore so at most size engine
// processes run at once. Waiting respects the caller's context.
type Pool struct {
	inner Invoker
	sem   *semaphore.Weighted
}

// NewPool creates a bounded pool around inner. Non-positive size uses
// DefaultPoolSize.
func NewPool(inner Invoker, size int) *Pool {
	if size <= 0 {
		size = DefaultPoolSize
	}

	return &Pool{
		inner: inner,
		sem:   semaphore.NewWeighted(int64(size)),
	}
}

// Count implements Invoker.
func (p *Pool) Count(ctx context.Context, dir string) (*stats.CacheEntry, error) {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCountingFailed, err)
	}
	defer p.sem.Release(1)

	return p.inner.Count(ctx, dir)
}

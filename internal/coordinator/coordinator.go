// Package coordinator ties resolution, fetching, counting, and storage
// into a single cache-or-compute pipeline. Concurrent requests for the
// same revision share one computation; distinct revisions proceed
// independently.
package coordinator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/locbadge/locbadge/internal/counter"
	"github.com/locbadge/locbadge/internal/fetcher"
	"github.com/locbadge/locbadge/internal/identity"
	"github.com/locbadge/locbadge/internal/resolver"
	"github.com/locbadge/locbadge/internal/stats"
	"github.com/locbadge/locbadge/internal/store"
)

// ErrComputeTimeout indicates a computation exceeded its budget. Every
// caller waiting on that computation receives it; the next request starts
// over.
var ErrComputeTimeout = errors.New("computation timed out")

// ErrOverloaded indicates the in-flight computation limit is reached.
// Only brand-new computations are rejected; joining an existing one is
// always allowed.
var ErrOverloaded = errors.New("too many computations in flight")

// DefaultComputeTimeout bounds one fetch-and-count computation.
const DefaultComputeTimeout = 5 * time.Minute

// DefaultMaxInFlight bounds concurrent computations.
const DefaultMaxInFlight = 32

// Observer receives pipeline events. Implementations must be safe for
// concurrent use.
type Observer interface {
	CacheHit()
	CacheMiss()
	Coalesced()
	OverloadRejected()
	ComputeDone(d time.Duration, err error)
}

// nopObserver discards all events.
type nopObserver struct{}

func (nopObserver) CacheHit()                        {}
func (nopObserver) CacheMiss()                       {}
func (nopObserver) Coalesced()                       {}
func (nopObserver) OverloadRejected()                {}
func (nopObserver) ComputeDone(time.Duration, error) {}

// flight is one in-progress computation. The owner fills entry and err,
// then closes done exactly once. Joiners read the fields only after done
// is closed.
type flight struct {
	done  chan struct{}
	entry *stats.CacheEntry
	err   error
}

// Options configures a Coordinator. Zero values select defaults.
type Options struct {
	ComputeTimeout time.Duration
	MaxInFlight    int
	Logger         *slog.Logger
	Observer       Observer
}

// Coordinator implements the cache-or-compute pipeline.
type Coordinator struct {
	resolver resolver.Resolver
	fetcher  fetcher.Fetcher
	counter  counter.Invoker
	store    store.Store

	timeout  time.Duration
	capacity int
	log      *slog.Logger
	obs      Observer

	mu      sync.Mutex
	flights map[stats.Revision]*flight
}

// New creates a Coordinator over the given pipeline stages.
func New(res resolver.Resolver, fet fetcher.Fetcher, cnt counter.Invoker, st store.Store, opts Options) *Coordinator {
	if opts.ComputeTimeout <= 0 {
		opts.ComputeTimeout = DefaultComputeTimeout
	}

	if opts.MaxInFlight <= 0 {
		opts.MaxInFlight = DefaultMaxInFlight
	}

	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	if opts.Observer == nil {
		opts.Observer = nopObserver{}
	}

	return &Coordinator{
		resolver: res,
		fetcher:  fet,
		counter:  cnt,
		store:    st,
		timeout:  opts.ComputeTimeout,
		capacity: opts.MaxInFlight,
		log:      opts.Logger,
		obs:      opts.Observer,
		flights:  make(map[stats.Revision]*flight),
	}
}

// Stats returns the statistics for the repository's current revision,
// computing and persisting them on a cache miss. Concurrent calls that
// land on the same revision share one computation and all receive the
// same result or the same error.
func (c *Coordinator) Stats(ctx context.Context, id identity.Identity) (stats.Revision, *stats.CacheEntry, error) {
	rev, err := c.resolver.Resolve(ctx, id)
	if err != nil {
		return "", nil, err
	}

	entry, err := c.store.Get(ctx, rev)
	if err == nil {
		c.obs.CacheHit()

		return rev, entry, nil
	}

	if !errors.Is(err, store.ErrNotFound) {
		// A degraded store downgrades to a miss so the badge still renders.
		c.log.Warn("store read failed, recomputing", "revision", rev, "error", err)
	}

	c.obs.CacheMiss()

	entry, err = c.joinOrCompute(ctx, id, rev)
	if err != nil {
		return "", nil, err
	}

	return rev, entry, nil
}

// joinOrCompute either joins an in-flight computation for rev or starts
// one. The computation runs detached from any single caller's context so
// one caller disconnecting never strands the rest.
func (c *Coordinator) joinOrCompute(ctx context.Context, id identity.Identity, rev stats.Revision) (*stats.CacheEntry, error) {
	c.mu.Lock()

	f, ok := c.flights[rev]
	if ok {
		c.mu.Unlock()
		c.obs.Coalesced()

		return c.await(ctx, f)
	}

	if len(c.flights) >= c.capacity {
		c.mu.Unlock()
		c.obs.OverloadRejected()

		return nil, fmt.Errorf("%w: %d in flight", ErrOverloaded, c.capacity)
	}

	f = &flight{done: make(chan struct{})}
	c.flights[rev] = f
	c.mu.Unlock()

	go c.compute(id, rev, f)

	return c.await(ctx, f)
}

// await blocks until the flight finishes or the caller's context ends.
// Cancellation abandons the wait without disturbing the computation.
func (c *Coordinator) await(ctx context.Context, f *flight) (*stats.CacheEntry, error) {
	select {
	case <-f.done:
		return f.entry, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// compute runs one fetch-and-count under the compute budget, persists the
// result, and publishes it to every waiter. The slot is released before
// done is closed so late arrivals start a fresh computation instead of
// joining a finished one.
func (c *Coordinator) compute(id identity.Identity, rev stats.Revision, f *flight) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	entry, err := c.run(ctx, id, rev)

	f.entry = entry
	f.err = err

	c.mu.Lock()
	delete(c.flights, rev)
	c.mu.Unlock()

	close(f.done)

	c.obs.ComputeDone(time.Since(start), err)
}

// run performs the fetch, count, and persist stages.
func (c *Coordinator) run(ctx context.Context, id identity.Identity, rev stats.Revision) (*stats.CacheEntry, error) {
	snap, err := c.fetcher.Fetch(ctx, id, rev)
	if err != nil {
		return nil, c.classify(ctx, err)
	}

	defer func() {
		if cerr := snap.Close(); cerr != nil {
			c.log.Warn("snapshot cleanup failed", "revision", rev, "error", cerr)
		}
	}()

	entry, err := c.counter.Count(ctx, snap.Dir)
	if err != nil {
		return nil, c.classify(ctx, err)
	}

	// A failed persist is not fatal: this caller still gets the result and
	// the next miss recomputes.
	if perr := c.store.Put(ctx, rev, entry); perr != nil {
		c.log.Warn("store write failed", "revision", rev, "error", perr)
	}

	return entry, nil
}

// classify maps budget expiry onto ErrComputeTimeout and passes every
// other failure through.
func (c *Coordinator) classify(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w after %s: %v", ErrComputeTimeout, c.timeout, err)
	}

	return err
}

package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricCacheHitsTotal    = "locbadge.cache.hits.total"
	metricCacheMissesTotal  = "locbadge.cache.misses.total"
	metricCoalescedTotal    = "locbadge.compute.coalesced.total"
	metricOverloadTotal     = "locbadge.compute.overload.total"
	metricComputeDuration   = "locbadge.compute.duration.seconds"
	metricComputationsTotal = "locbadge.computations.total"
)

// BadgeMetrics holds OTel instruments for the cache-or-compute pipeline.
// It satisfies the coordinator's Observer contract.
type BadgeMetrics struct {
	cacheHits       metric.Int64Counter
	cacheMisses     metric.Int64Counter
	coalescedJoins  metric.Int64Counter
	overloadRejects metric.Int64Counter
	computeDuration metric.Float64Histogram
	computations    metric.Int64Counter
}

// NewBadgeMetrics creates pipeline metric instruments from the given meter.
func NewBadgeMetrics(mt metric.Meter) (*BadgeMetrics, error) {
	b := newMetricBuilder(mt)

	bm := &BadgeMetrics{
		cacheHits:       b.counter(metricCacheHitsTotal, "Statistics served from the store", "{hit}"),
		cacheMisses:     b.counter(metricCacheMissesTotal, "Statistics requiring computation", "{miss}"),
		coalescedJoins:  b.counter(metricCoalescedTotal, "Requests that joined an in-flight computation", "{join}"),
		overloadRejects: b.counter(metricOverloadTotal, "Computations rejected at capacity", "{rejection}"),
		computeDuration: b.histogram(metricComputeDuration, "Fetch-and-count duration in seconds", "s", durationBucketBoundaries...),
		computations:    b.counter(metricComputationsTotal, "Completed computations by status", "{computation}"),
	}

	if b.err != nil {
		return nil, b.err
	}

	return bm, nil
}

// CacheHit records a store hit. Safe on a nil receiver.
func (bm *BadgeMetrics) CacheHit() {
	if bm != nil {
		bm.cacheHits.Add(context.Background(), 1)
	}
}

// CacheMiss records a store miss.
func (bm *BadgeMetrics) CacheMiss() {
	if bm != nil {
		bm.cacheMisses.Add(context.Background(), 1)
	}
}

// Coalesced records a request joining an existing computation.
func (bm *BadgeMetrics) Coalesced() {
	if bm != nil {
		bm.coalescedJoins.Add(context.Background(), 1)
	}
}

// OverloadRejected records a computation rejected at capacity.
func (bm *BadgeMetrics) OverloadRejected() {
	if bm != nil {
		bm.overloadRejects.Add(context.Background(), 1)
	}
}

// ComputeDone records one finished computation.
func (bm *BadgeMetrics) ComputeDone(d time.Duration, err error) {
	if bm == nil {
		return
	}

	status := StatusOK
	if err != nil {
		status = StatusError
	}

	attrs := metric.WithAttributes(attribute.String(attrStatus, status))

	ctx := context.Background()
	bm.computations.Add(ctx, 1, attrs)
	bm.computeDuration.Record(ctx, d.Seconds(), attrs)
}

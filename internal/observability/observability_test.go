package observability_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/locbadge/locbadge/internal/observability"
)

func setupTestMeter(t *testing.T) (metric.Meter, *sdkmetric.ManualReader) {
	t.Helper()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	return mp.Meter("test"), reader
}

func collectMetrics(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()

	var rm metricdata.ResourceMetrics

	err := reader.Collect(context.Background(), &rm)
	require.NoError(t, err)

	return rm
}

func findMetric(rm metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for idx := range rm.ScopeMetrics {
		for midx := range rm.ScopeMetrics[idx].Metrics {
			if rm.ScopeMetrics[idx].Metrics[midx].Name == name {
				return &rm.ScopeMetrics[idx].Metrics[midx]
			}
		}
	}

	return nil
}

func TestREDMetrics_RecordRequest(t *testing.T) {
	t.Parallel()

	meter, reader := setupTestMeter(t)

	red, err := observability.NewREDMetrics(meter)
	require.NoError(t, err)

	red.RecordRequest(context.Background(), "badge", observability.StatusOK, 100*time.Millisecond)

	rm := collectMetrics(t, reader)

	require.NotNil(t, findMetric(rm, "locbadge.requests.total"))
	require.NotNil(t, findMetric(rm, "locbadge.request.duration.seconds"))
	assert.Nil(t, findMetric(rm, "locbadge.errors.total"), "ok requests record no error")
}

func TestREDMetrics_RecordRequestError(t *testing.T) {
	t.Parallel()

	meter, reader := setupTestMeter(t)

	red, err := observability.NewREDMetrics(meter)
	require.NoError(t, err)

	red.RecordRequest(context.Background(), "badge", observability.StatusError, time.Second)

	rm := collectMetrics(t, reader)
	require.NotNil(t, findMetric(rm, "locbadge.errors.total"))
}

func TestREDMetrics_NilReceiver(t *testing.T) {
	t.Parallel()

	var red *observability.REDMetrics

	red.RecordRequest(context.Background(), "badge", observability.StatusOK, time.Second)
	red.TrackInflight(context.Background(), "badge")()
}

func TestBadgeMetrics_PipelineEvents(t *testing.T) {
	t.Parallel()

	meter, reader := setupTestMeter(t)

	bm, err := observability.NewBadgeMetrics(meter)
	require.NoError(t, err)

	bm.CacheHit()
	bm.CacheMiss()
	bm.Coalesced()
	bm.OverloadRejected()
	bm.ComputeDone(2*time.Second, nil)
	bm.ComputeDone(time.Second, errors.New("boom"))

	rm := collectMetrics(t, reader)

	for _, name := range []string{
		"locbadge.cache.hits.total",
		"locbadge.cache.misses.total",
		"locbadge.compute.coalesced.total",
		"locbadge.compute.overload.total",
		"locbadge.compute.duration.seconds",
		"locbadge.computations.total",
	} {
		require.NotNil(t, findMetric(rm, name), "%s metric not found", name)
	}
}

func TestInitProvidesWorkingStack(t *testing.T) {
	t.Parallel()

	cfg := observability.DefaultConfig()
	cfg.LogJSON = true
	cfg.Mode = observability.ModeServe

	providers, err := observability.Init(cfg)
	require.NoError(t, err)

	t.Cleanup(func() {
		assert.NoError(t, providers.Shutdown(context.Background()))
	})

	require.NotNil(t, providers.Logger)
	require.NotNil(t, providers.Meter)

	rec := httptest.NewRecorder()
	providers.MetricsHandler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHealthHandler(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	observability.HealthHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestReadyHandler(t *testing.T) {
	t.Parallel()

	pass := func(context.Context) error { return nil }
	fail := func(context.Context) error { return errors.New("db down") }

	rec := httptest.NewRecorder()
	observability.ReadyHandler(pass).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	observability.ReadyHandler(pass, fail).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"status":"unavailable"}`, rec.Body.String())
}

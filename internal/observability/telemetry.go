package observability

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// Providers bundles the initialized observability components.
type Providers struct {
	Logger *slog.Logger
	Meter  metric.Meter

	// MetricsHandler serves the Prometheus scrape endpoint.
	MetricsHandler http.Handler

	shutdown func(ctx context.Context) error
}

// Shutdown flushes pending telemetry. Safe to call more than once.
func (p *Providers) Shutdown(ctx context.Context) error {
	if p.shutdown == nil {
		return nil
	}

	fn := p.shutdown
	p.shutdown = nil

	return fn(ctx)
}

// Init builds the logger and a Prometheus-backed meter provider from cfg.
// Logs go to stderr so badge and report output on stdout stays clean.
func Init(cfg Config) (*Providers, error) {
	return initWithWriter(cfg, os.Stderr)
}

func initWithWriter(cfg Config, w io.Writer) (*Providers, error) {
	if cfg.ServiceName == "" {
		cfg.ServiceName = defaultServiceName
	}

	opts := &slog.HandlerOptions{Level: cfg.LogLevel}

	var handler slog.Handler
	if cfg.LogJSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler).With(
		"service", cfg.ServiceName,
		"mode", string(cfg.Mode),
	)

	registry := prometheus.NewRegistry()

	exporter, err := promexporter.New(promexporter.WithRegisterer(registry))
	if err != nil {
		return nil, fmt.Errorf("create prometheus exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))

	return &Providers{
		Logger:         logger,
		Meter:          provider.Meter(cfg.ServiceName),
		MetricsHandler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		shutdown:       provider.Shutdown,
	}, nil
}

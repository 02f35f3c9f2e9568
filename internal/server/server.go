// Package server exposes the badge pipeline over HTTP. Every failure on
// the badge route still renders as an SVG error badge so embedded images
// never break.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/locbadge/locbadge/internal/identity"
	"github.com/locbadge/locbadge/internal/observability"
	"github.com/locbadge/locbadge/internal/stats"
	"github.com/locbadge/locbadge/internal/store"
)

// projectURL is the redirect target for the index route.
const projectURL = "https://github.com/XAMPPRocky/tokei"

// readTimeout bounds request header reads.
const readTimeout = 10 * time.Second

// StatsProvider produces statistics for a repository's current revision.
// The coordinator is the production implementation.
type StatsProvider interface {
	Stats(ctx context.Context, id identity.Identity) (stats.Revision, *stats.CacheEntry, error)
}

// Options configures a Server.
type Options struct {
	Addr            string
	ShutdownTimeout time.Duration
	Logger          *slog.Logger
	Metrics         *observability.REDMetrics
	MetricsHandler  http.Handler
	ReadyChecks     []observability.ReadyCheck
}

// Server is the HTTP façade over the badge pipeline.
type Server struct {
	provider StatsProvider
	log      *slog.Logger
	red      *observability.REDMetrics

	httpServer      *http.Server
	shutdownTimeout time.Duration
}

// New creates a Server routing badge, health, and metrics endpoints.
func New(provider StatsProvider, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 10 * time.Second
	}

	s := &Server{
		provider:        provider,
		log:             opts.Logger,
		red:             opts.Metrics,
		shutdownTimeout: opts.ShutdownTimeout,
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)

	router.Get("/", s.handleIndex)
	router.Get("/b1/{host}/{user}/{repo}", s.handleBadge)

	router.Method(http.MethodGet, "/healthz", observability.HealthHandler())
	router.Method(http.MethodGet, "/readyz", observability.ReadyHandler(opts.ReadyChecks...))

	if opts.MetricsHandler != nil {
		router.Method(http.MethodGet, "/metrics", opts.MetricsHandler)
	}

	s.httpServer = &http.Server{
		Addr:              opts.Addr,
		Handler:           router,
		ReadHeaderTimeout: readTimeout,
	}

	return s
}

// Handler returns the root handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		serveErr := s.httpServer.ListenAndServe()
		if serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			errCh <- serveErr
		}

		close(errCh)
	}()

	s.log.Info("http server listening", "addr", s.httpServer.Addr)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}

		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	s.log.Info("http server stopped")

	return nil
}

// handleIndex redirects to the counting engine's project page, as the
// badge host has no page of its own.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, projectURL, http.StatusMovedPermanently)
}

// StorePingCheck adapts a store into a readiness check.
func StorePingCheck(st store.Store) observability.ReadyCheck {
	return func(ctx context.Context) error {
		return st.Ping(ctx)
	}
}

// Package commands implements CLI command handlers for locbadge.
package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/locbadge/locbadge/internal/cache"
	"github.com/locbadge/locbadge/internal/config"
	"github.com/locbadge/locbadge/internal/coordinator"
	"github.com/locbadge/locbadge/internal/counter"
	"github.com/locbadge/locbadge/internal/fetcher"
	"github.com/locbadge/locbadge/internal/observability"
	"github.com/locbadge/locbadge/internal/resolver"
	"github.com/locbadge/locbadge/internal/store"
)

// initObservability builds the logger and meter from the loaded config.
func initObservability(cfg *config.Config, mode observability.AppMode) (*observability.Providers, error) {
	obsCfg := observability.DefaultConfig()
	obsCfg.Mode = mode
	obsCfg.LogLevel = cfg.LogLevel()
	obsCfg.LogJSON = cfg.Log.JSON

	providers, err := observability.Init(obsCfg)
	if err != nil {
		return nil, fmt.Errorf("init observability: %w", err)
	}

	return providers, nil
}

// buildStore opens the configured statistics store. An empty DSN selects
// the in-process store. The returned closer is nil for stores without
// connections to release.
func buildStore(ctx context.Context, cfg *config.Config) (store.Store, func() error, error) {
	if cfg.Store.DSN == "" {
		return store.NewMemory(), nil, nil
	}

	pg, err := store.NewPostgres(ctx, cfg.Store.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}

	if err := pg.Migrate(ctx); err != nil {
		_ = pg.Close()

		return nil, nil, fmt.Errorf("migrate store: %w", err)
	}

	return pg, pg.Close, nil
}

// buildCoordinator wires the full cache-or-compute pipeline.
func buildCoordinator(cfg *config.Config, st store.Store, providers *observability.Providers) (*coordinator.Coordinator, error) {
	resolveTimeout := time.Duration(cfg.Resolver.TimeoutSec) * time.Second

	githubResolver, err := resolver.NewGitHub(cfg.Resolver.GitHubToken, resolveTimeout)
	if err != nil {
		return nil, fmt.Errorf("create github resolver: %w", err)
	}

	res := resolver.NewComposite(githubResolver, resolver.NewGit(resolveTimeout))

	pool := counter.NewPool(counter.NewTokei(cfg.Compute.Engine), cfg.Compute.PoolSize)

	badgeMetrics, err := observability.NewBadgeMetrics(providers.Meter)
	if err != nil {
		return nil, fmt.Errorf("create pipeline metrics: %w", err)
	}

	cached := cache.NewCached(st, cfg.Store.CacheSize)

	return coordinator.New(res, fetcher.NewGit(), pool, cached, coordinator.Options{
		ComputeTimeout: time.Duration(cfg.Compute.TimeoutSec) * time.Second,
		MaxInFlight:    cfg.Compute.MaxInFlight,
		Logger:         providers.Logger,
		Observer:       badgeMetrics,
	}), nil
}

package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locbadge/locbadge/internal/config"
)

func TestLoadConfigDefaults(t *testing.T) {
	_, err := config.LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err, "an explicit path must exist")

	cfg, err := config.LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, config.DefaultServerAddr, cfg.Server.Addr)
	assert.Equal(t, config.DefaultComputeMaxInFlight, cfg.Compute.MaxInFlight)
	assert.Equal(t, config.DefaultComputeEngine, cfg.Compute.Engine)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Store.DSN)
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "locbadge.yaml")
	content := `
server:
  addr: ":9000"
compute:
  max_in_flight: 8
  engine: scc
log:
  level: debug
  json: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, 8, cfg.Compute.MaxInFlight)
	assert.Equal(t, "scc", cfg.Compute.Engine)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel())
	assert.True(t, cfg.Log.JSON)

	assert.Equal(t, config.DefaultComputePoolSize, cfg.Compute.PoolSize, "unset keys keep defaults")
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("LOCBADGE_SERVER_ADDR", ":7777")
	t.Setenv("LOCBADGE_RESOLVER_GITHUB_TOKEN", "ghp_test")

	cfg, err := config.LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, ":7777", cfg.Server.Addr)
	assert.Equal(t, "ghp_test", cfg.Resolver.GitHubToken)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := func() config.Config {
		return config.Config{
			Server:   config.ServerConfig{Addr: ":8000"},
			Store:    config.StoreConfig{CacheSize: 16},
			Compute:  config.ComputeConfig{TimeoutSec: 60, MaxInFlight: 4, PoolSize: 2, Engine: "tokei"},
			Resolver: config.ResolverConfig{TimeoutSec: 10},
			Log:      config.LogConfig{Level: "info"},
		}
	}

	cfg := valid()
	require.NoError(t, cfg.Validate())

	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr error
	}{
		{"empty addr", func(c *config.Config) { c.Server.Addr = "" }, config.ErrInvalidServerAddr},
		{"negative shutdown", func(c *config.Config) { c.Server.ShutdownSec = -1 }, config.ErrInvalidShutdownSec},
		{"negative cache size", func(c *config.Config) { c.Store.CacheSize = -1 }, config.ErrInvalidCacheSize},
		{"zero compute timeout", func(c *config.Config) { c.Compute.TimeoutSec = 0 }, config.ErrInvalidComputeTimeout},
		{"zero max in flight", func(c *config.Config) { c.Compute.MaxInFlight = 0 }, config.ErrInvalidMaxInFlight},
		{"zero pool size", func(c *config.Config) { c.Compute.PoolSize = 0 }, config.ErrInvalidPoolSize},
		{"empty engine", func(c *config.Config) { c.Compute.Engine = "" }, config.ErrInvalidEngine},
		{"zero resolve timeout", func(c *config.Config) { c.Resolver.TimeoutSec = 0 }, config.ErrInvalidResolveTimeout},
		{"bad log level", func(c *config.Config) { c.Log.Level = "verbose" }, config.ErrInvalidLogLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := valid()
			tt.mutate(&cfg)

			require.ErrorIs(t, cfg.Validate(), tt.wantErr)
		})
	}
}

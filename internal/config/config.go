// Package config loads and validates locbadge configuration from file,
// environment variables, and defaults.
package config

import "errors"

// Server defaults.
const (
	// DefaultServerAddr is the default HTTP listen address.
	DefaultServerAddr = ":8000"
	// DefaultServerShutdownSec is the graceful shutdown budget in seconds.
	DefaultServerShutdownSec = 10
)

// Store defaults.
const (
	// DefaultStoreCacheSize is the default in-process LRU entry count.
	DefaultStoreCacheSize = 1024
)

// Compute defaults.
const (
	// DefaultComputeTimeoutSec is the per-computation budget in seconds.
	DefaultComputeTimeoutSec = 300
	// DefaultComputeMaxInFlight bounds concurrent computations.
	DefaultComputeMaxInFlight = 32
	// DefaultComputePoolSize bounds concurrent counting engine processes.
	DefaultComputePoolSize = 4
	// DefaultComputeEngine is the counting engine binary name.
	DefaultComputeEngine = "tokei"
)

// Resolver defaults.
const (
	// DefaultResolveTimeoutSec is the revision resolution budget in seconds.
	DefaultResolveTimeoutSec = 10
)

// Config is the top-level configuration struct for locbadge.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Store    StoreConfig    `mapstructure:"store"`
	Compute  ComputeConfig  `mapstructure:"compute"`
	Resolver ResolverConfig `mapstructure:"resolver"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr        string `mapstructure:"addr"`
	ShutdownSec int    `mapstructure:"shutdown_sec"`
}

// StoreConfig holds persistence settings. An empty DSN selects the
// in-process store.
type StoreConfig struct {
	DSN       string `mapstructure:"dsn"`
	CacheSize int    `mapstructure:"cache_size"`
}

// ComputeConfig holds fetch-and-count pipeline settings.
type ComputeConfig struct {
	TimeoutSec  int    `mapstructure:"timeout_sec"`
	MaxInFlight int    `mapstructure:"max_in_flight"`
	PoolSize    int    `mapstructure:"pool_size"`
	Engine      string `mapstructure:"engine"`
}

// ResolverConfig holds revision resolution settings.
type ResolverConfig struct {
	TimeoutSec  int    `mapstructure:"timeout_sec"`
	GitHubToken string `mapstructure:"github_token"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

// Sentinel errors for configuration validation.
var (
	// ErrInvalidServerAddr indicates the listen address is empty.
	ErrInvalidServerAddr = errors.New("server.addr must not be empty")
	// ErrInvalidShutdownSec indicates the shutdown budget is negative.
	ErrInvalidShutdownSec = errors.New("server.shutdown_sec must be non-negative")
	// ErrInvalidCacheSize indicates the cache size is negative.
	ErrInvalidCacheSize = errors.New("store.cache_size must be non-negative")
	// ErrInvalidComputeTimeout indicates the compute budget is not positive.
	ErrInvalidComputeTimeout = errors.New("compute.timeout_sec must be positive")
	// ErrInvalidMaxInFlight indicates the in-flight bound is not positive.
	ErrInvalidMaxInFlight = errors.New("compute.max_in_flight must be positive")
	// ErrInvalidPoolSize indicates the engine pool size is not positive.
	ErrInvalidPoolSize = errors.New("compute.pool_size must be positive")
	// ErrInvalidEngine indicates the engine binary name is empty.
	ErrInvalidEngine = errors.New("compute.engine must not be empty")
	// ErrInvalidResolveTimeout indicates the resolve budget is not positive.
	ErrInvalidResolveTimeout = errors.New("resolver.timeout_sec must be positive")
	// ErrInvalidLogLevel indicates the log level is not recognized.
	ErrInvalidLogLevel = errors.New("log.level must be one of debug, info, warn, error")
)

// Validate checks all configuration values.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return ErrInvalidServerAddr
	}

	if c.Server.ShutdownSec < 0 {
		return ErrInvalidShutdownSec
	}

	if c.Store.CacheSize < 0 {
		return ErrInvalidCacheSize
	}

	if c.Compute.TimeoutSec <= 0 {
		return ErrInvalidComputeTimeout
	}

	if c.Compute.MaxInFlight <= 0 {
		return ErrInvalidMaxInFlight
	}

	if c.Compute.PoolSize <= 0 {
		return ErrInvalidPoolSize
	}

	if c.Compute.Engine == "" {
		return ErrInvalidEngine
	}

	if c.Resolver.TimeoutSec <= 0 {
		return ErrInvalidResolveTimeout
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return ErrInvalidLogLevel
	}

	return nil
}

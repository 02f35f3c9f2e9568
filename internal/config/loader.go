package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// configName is the config file name without extension.
const configName = ".locbadge"

// configType is the config file format.
const configType = "yaml"

// envPrefix is the environment variable prefix for locbadge settings.
const envPrefix = "LOCBADGE"

// envKeySeparator is the nested key separator in environment variable names.
const envKeySeparator = "_"

// LoadConfig loads configuration from file, env vars, and defaults.
// A .env file in the working directory is loaded first, if present.
// If configPath is non-empty, it is used as the explicit config file path.
// Otherwise, the config file is searched in CWD and $HOME.
// Missing config file is not an error; defaults are used.
func LoadConfig(configPath string) (*Config, error) {
	_ = godotenv.Load()

	viperCfg := viper.New()

	applyDefaults(viperCfg)

	viperCfg.SetConfigType(configType)
	viperCfg.SetEnvPrefix(envPrefix)
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", envKeySeparator))
	viperCfg.AutomaticEnv()

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(configName)
		viperCfg.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viperCfg.AddConfigPath(home)
		}
	}

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFound) {
			return nil, fmt.Errorf("read config: %w", readErr)
		}
	}

	var cfg Config

	unmarshalErr := viperCfg.Unmarshal(&cfg)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("unmarshal config: %w", unmarshalErr)
	}

	validateErr := cfg.Validate()
	if validateErr != nil {
		return nil, fmt.Errorf("validate config: %w", validateErr)
	}

	return &cfg, nil
}

func applyDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("server.addr", DefaultServerAddr)
	viperCfg.SetDefault("server.shutdown_sec", DefaultServerShutdownSec)

	viperCfg.SetDefault("store.dsn", "")
	viperCfg.SetDefault("store.cache_size", DefaultStoreCacheSize)

	viperCfg.SetDefault("compute.timeout_sec", DefaultComputeTimeoutSec)
	viperCfg.SetDefault("compute.max_in_flight", DefaultComputeMaxInFlight)
	viperCfg.SetDefault("compute.pool_size", DefaultComputePoolSize)
	viperCfg.SetDefault("compute.engine", DefaultComputeEngine)

	viperCfg.SetDefault("resolver.timeout_sec", DefaultResolveTimeoutSec)
	viperCfg.SetDefault("resolver.github_token", "")

	viperCfg.SetDefault("log.level", "info")
	viperCfg.SetDefault("log.json", false)
}

// LogLevel maps the configured level name onto a slog level. Validate
// guarantees the name is recognized.
func (c *Config) LogLevel() slog.Level {
	switch c.Log.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Package observability provides structured logging, OpenTelemetry metrics
// with a Prometheus scrape endpoint, and health handlers for all locbadge
// application modes (CLI, MCP, server).
package observability

import "log/slog"

// AppMode identifies the application execution mode.
type AppMode string

const (
	// ModeCLI is the CLI command execution mode.
	ModeCLI AppMode = "cli"
	// ModeMCP is the MCP stdio server mode.
	ModeMCP AppMode = "mcp"
	// ModeServe is the HTTP server mode.
	ModeServe AppMode = "serve"
)

// defaultServiceName is the default service name on log and metric output.
const defaultServiceName = "locbadge"

// Config holds all observability configuration.
type Config struct {
	// ServiceName labels log records and the metrics resource.
	ServiceName string

	// ServiceVersion is the semantic version of the running binary.
	ServiceVersion string

	// Mode identifies how the binary was launched.
	Mode AppMode

	// LogLevel controls the minimum slog severity.
	LogLevel slog.Level

	// LogJSON enables JSON-formatted log output.
	LogJSON bool
}

// DefaultConfig returns a Config with sensible defaults for zero-config
// startup.
func DefaultConfig() Config {
	return Config{
		ServiceName: defaultServiceName,
		Mode:        ModeCLI,
		LogLevel:    slog.LevelInfo,
	}
}

package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locbadge/locbadge/internal/config"
	"github.com/locbadge/locbadge/internal/observability"
	"github.com/locbadge/locbadge/internal/stats"
	"github.com/locbadge/locbadge/internal/store"
)

func testConfig() *config.Config {
	return &config.Config{
		Server:   config.ServerConfig{Addr: ":0"},
		Store:    config.StoreConfig{CacheSize: 16},
		Compute:  config.ComputeConfig{TimeoutSec: 60, MaxInFlight: 4, PoolSize: 2, Engine: "tokei"},
		Resolver: config.ResolverConfig{TimeoutSec: 10},
		Log:      config.LogConfig{Level: "error"},
	}
}

func TestBuildStoreMemory(t *testing.T) {
	t.Parallel()

	st, closeStore, err := buildStore(context.Background(), testConfig())
	require.NoError(t, err)
	require.IsType(t, &store.Memory{}, st)
	assert.Nil(t, closeStore)
}

func TestBuildCoordinator(t *testing.T) {
	t.Parallel()

	cfg := testConfig()

	providers, err := initObservability(cfg, observability.ModeCLI)
	require.NoError(t, err)

	t.Cleanup(func() { _ = providers.Shutdown(context.Background()) })

	coord, err := buildCoordinator(cfg, store.NewMemory(), providers)
	require.NoError(t, err)
	require.NotNil(t, coord)
}

func TestRenderCountReport(t *testing.T) {
	color.NoColor = true

	entry := &stats.CacheEntry{
		Aggregate: stats.AggregateStats{Lines: 1500, Code: 1200, Comments: 200, Blanks: 100, Files: 12},
		Languages: []stats.LanguageStats{
			{Name: "Rust", Lines: 500, Code: 400, Comments: 60, Blanks: 40},
			{Name: "Go", Lines: 1000, Code: 800, Comments: 140, Blanks: 60},
		},
	}

	var buf bytes.Buffer

	renderCountReport(&buf, "/tmp/repo", entry)

	out := buf.String()
	assert.Contains(t, out, "1,200 lines of code")
	assert.Contains(t, out, "Go")
	assert.Contains(t, out, "Rust")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("Go")), bytes.Index(buf.Bytes(), []byte("Rust")),
		"languages rank by code count")
	assert.Contains(t, out, "Total")
}

func TestCountCommand(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake engine script requires a POSIX shell")
	}

	report := `{"Go": {"blanks": 1, "code": 10, "comments": 2, "reports": [{"name": "main.go"}]}}`
	script := "#!/bin/sh\ncat <<'EOF'\n" + report + "\nEOF\n"
	binary := filepath.Join(t.TempDir(), "fake-tokei")
	require.NoError(t, os.WriteFile(binary, []byte(script), 0o755))

	cmd := NewCountCommand()

	var buf bytes.Buffer

	cmd.SetOut(&buf)
	cmd.SetArgs([]string{t.TempDir(), "--engine", binary, "--no-color"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "10 lines of code")
	assert.Contains(t, buf.String(), "Go")
}

func TestPurgeCommandMemoryStore(t *testing.T) {
	cmd := NewPurgeCommand()

	var buf bytes.Buffer

	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"deadbeef"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "purged deadbeef")
}

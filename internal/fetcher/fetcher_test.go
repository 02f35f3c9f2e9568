package fetcher_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locbadge/locbadge/internal/fetcher"
)

func TestSnapshot_CloseRemovesTree(t *testing.T) {
	t.Parallel()

	dir, err := os.MkdirTemp("", "locbadge-test-*")
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.go"), []byte("package main\n"), 0o600))

	snap := &fetcher.Snapshot{Dir: dir, Revision: "abc123"}
	require.NoError(t, snap.Close())

	_, statErr := os.Stat(dir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestSnapshot_CloseNilSafe(t *testing.T) {
	t.Parallel()

	var snap *fetcher.Snapshot

	assert.NoError(t, snap.Close())
	assert.NoError(t, (&fetcher.Snapshot{}).Close())
}

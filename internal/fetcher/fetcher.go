// Package fetcher materializes a repository snapshot on the local
// filesystem so the counting engine can walk it.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"os"

	git "github.com/go-git/go-git/v5"

	"github.com/locbadge/locbadge/internal/identity"
	"github.com/locbadge/locbadge/internal/stats"
)

// ErrFetch indicates the repository snapshot could not be materialized.
var ErrFetch = errors.New("snapshot fetch failed")

// tempDirPattern names the temporary clone directories.
const tempDirPattern = "locbadge-snapshot-*"

// Snapshot is a checked-out source tree for one revision. Close removes it.
type Snapshot struct {
	Dir      string
	Revision stats.Revision
}

// Close deletes the snapshot's working tree.
func (s *Snapshot) Close() error {
	if s == nil || s.Dir == "" {
		return nil
	}

	if err := os.RemoveAll(s.Dir); err != nil {
		return fmt.Errorf("remove snapshot dir: %w", err)
	}

	return nil
}

// Fetcher materializes snapshots.
type Fetcher interface {
	Fetch(ctx context.Context, id identity.Identity, rev stats.Revision) (*Snapshot, error)
}

// Git fetches snapshots with a shallow single-branch clone: the revision
// being counted is always the remote's current HEAD, so depth 1 suffices
// and keeps transfer cost proportional to tree size, not history size.
type Git struct{}

// NewGit creates the production fetcher.
func NewGit() *Git {
	return &Git{}
}

// Fetch implements Fetcher. The returned snapshot must be closed by the
// caller; on error nothing is left behind.
func (g *Git) Fetch(ctx context.Context, id identity.Identity, rev stats.Revision) (*Snapshot, error) {
	dir, err := os.MkdirTemp("", tempDirPattern)
	if err != nil {
		return nil, fmt.Errorf("%w: create temp dir: %v", ErrFetch, err)
	}

	_, err = git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
		URL:          id.CloneURL(),
		Depth:        1,
		SingleBranch: true,
		Tags:         git.NoTags,
	})
	if err != nil {
		removeErr := os.RemoveAll(dir)

		return nil, errors.Join(fmt.Errorf("%w: clone %s: %v", ErrFetch, id, err), removeErr)
	}

	return &Snapshot{Dir: dir, Revision: rev}, nil
}

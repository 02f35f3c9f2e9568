package resolver

import (
	"context"
	"fmt"
	"time"

	git "github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/storage/memory"

	"github.com/locbadge/locbadge/internal/identity"
	"github.com/locbadge/locbadge/internal/stats"
)

// Branch names probed when the advertised refs carry no usable HEAD.
var fallbackBranches = []plumbing.ReferenceName{
	plumbing.NewBranchReferenceName("main"),
	plumbing.NewBranchReferenceName("master"),
}

// Git resolves revisions by listing a remote's advertised references, the
// equivalent of git ls-remote.
type Git struct {
	timeout time.Duration
}

// NewGit creates a generic git resolver with the given per-attempt timeout.
// A non-positive timeout uses DefaultTimeout.
func NewGit(timeout time.Duration) *Git {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Git{timeout: timeout}
}

// Resolve implements Resolver by following the remote's HEAD.
func (g *Git) Resolve(ctx context.Context, id identity.Identity) (stats.Revision, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	remote := git.NewRemote(memory.NewStorage(), &gitconfig.RemoteConfig{
		Name: "origin",
		URLs: []string{id.CloneURL()},
	})

	refs, err := remote.ListContext(ctx, &git.ListOptions{})
	if err != nil {
		return "", classify(fmt.Errorf("list %s: %w", id, err))
	}

	rev, ok := headRevision(refs)
	if !ok {
		return "", fmt.Errorf("%w: %s advertises no usable HEAD", ErrResolution, id)
	}

	return rev, nil
}

// headRevision picks the revision the remote's HEAD points at. ls-remote
// output advertises HEAD either as a direct hash or as a symbolic reference
// whose target appears among the branch refs.
func headRevision(refs []*plumbing.Reference) (stats.Revision, bool) {
	byName := make(map[plumbing.ReferenceName]*plumbing.Reference, len(refs))
	for _, ref := range refs {
		byName[ref.Name()] = ref
	}

	if head, ok := byName[plumbing.HEAD]; ok {
		if head.Type() == plumbing.HashReference {
			return stats.Revision(head.Hash().String()), true
		}

		if target, ok := byName[head.Target()]; ok && target.Type() == plumbing.HashReference {
			return stats.Revision(target.Hash().String()), true
		}
	}

	for _, name := range fallbackBranches {
		if ref, ok := byName[name]; ok && ref.Type() == plumbing.HashReference {
			return stats.Revision(ref.Hash().String()), true
		}
	}

	return "", false
}

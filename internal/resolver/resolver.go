// Package resolver maps a repository identity to its current content
// revision. GitHub identities resolve through the REST API; everything else
// falls back to a generic git ls-remote over HTTPS.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/locbadge/locbadge/internal/identity"
	"github.com/locbadge/locbadge/internal/stats"
)

// Sentinel errors for revision resolution.
var (
	// ErrResolution indicates the repository does not exist, the host is
	// unreachable, or the identity is malformed.
	ErrResolution = errors.New("repository resolution failed")

	// ErrResolutionTimeout indicates the bounded resolution window elapsed.
	// Kept distinct from ErrResolution so callers can degrade differently.
	ErrResolutionTimeout = errors.New("repository resolution timed out")
)

// DefaultTimeout bounds a single resolution attempt.
const DefaultTimeout = 10 * time.Second

// Resolver maps a repository identity to a revision.
type Resolver interface {
	Resolve(ctx context.Context, id identity.Identity) (stats.Revision, error)
}

// Composite routes github.com identities to the API resolver and everything
// else to the generic git resolver.
type Composite struct {
	github Resolver
	git    Resolver
}

// NewComposite builds the production resolver. A nil github resolver sends
// all identities through the generic git path.
func NewComposite(github, git Resolver) *Composite {
	return &Composite{github: github, git: git}
}

// Resolve implements Resolver.
func (c *Composite) Resolve(ctx context.Context, id identity.Identity) (stats.Revision, error) {
	if id.IsGitHub() && c.github != nil {
		return c.github.Resolve(ctx, id)
	}

	return c.git.Resolve(ctx, id)
}

// classify wraps a resolution failure as a timeout when the bounded window
// elapsed, and as a plain resolution error otherwise.
func classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrResolutionTimeout, err)
	}

	return fmt.Errorf("%w: %v", ErrResolution, err)
}

package resolver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"
	"github.com/google/go-github/v62/github"

	"github.com/locbadge/locbadge/internal/identity"
	"github.com/locbadge/locbadge/internal/stats"
)

// GitHub resolves revisions for github.com repositories through the commits
// API: the newest commit on the default branch is the current revision.
// Requests go through a rate-limit-aware transport and an ETag cache so
// repeat resolutions of unchanged repositories cost no API quota.
type GitHub struct {
	client  *github.Client
	timeout time.Duration
}

// NewGitHub creates the API-backed resolver. The token is optional;
// unauthenticated requests work with GitHub's lower anonymous quota.
func NewGitHub(token string, timeout time.Duration) (*GitHub, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	httpClient, err := github_ratelimit.NewRateLimitWaiterClient(newETagTransport(http.DefaultTransport))
	if err != nil {
		return nil, fmt.Errorf("create rate limit transport: %w", err)
	}

	client := github.NewClient(httpClient)
	if token != "" {
		client = client.WithAuthToken(token)
	}

	return &GitHub{client: client, timeout: timeout}, nil
}

// NewGitHubWithClient creates a resolver around an existing API client.
// Tests use it to point at a stub server.
func NewGitHubWithClient(client *github.Client, timeout time.Duration) *GitHub {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &GitHub{client: client, timeout: timeout}
}

// Resolve implements Resolver.
func (g *GitHub) Resolve(ctx context.Context, id identity.Identity) (stats.Revision, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	commits, resp, err := g.client.Repositories.ListCommits(ctx, id.Namespace, id.Name, &github.CommitsListOptions{
		ListOptions: github.ListOptions{PerPage: 1},
	})
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return "", fmt.Errorf("%w: %s not found", ErrResolution, id)
		}

		return "", classify(fmt.Errorf("list commits for %s: %w", id, err))
	}

	if len(commits) == 0 || commits[0].GetSHA() == "" {
		return "", fmt.Errorf("%w: %s has no commits", ErrResolution, id)
	}

	return stats.Revision(commits[0].GetSHA()), nil
}

package resolver_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locbadge/locbadge/internal/identity"
	"github.com/locbadge/locbadge/internal/resolver"
	"github.com/locbadge/locbadge/internal/stats"
)

const testRevision = "abc123"

func mustIdentity(t *testing.T, host, namespace, name string) identity.Identity {
	t.Helper()

	id, err := identity.Parse(host, namespace, name)
	require.NoError(t, err)

	return id
}

// stubResolver records calls and returns a fixed result.
type stubResolver struct {
	revision stats.Revision
	err      error
	calls    int
}

func (s *stubResolver) Resolve(_ context.Context, _ identity.Identity) (stats.Revision, error) {
	s.calls++

	return s.revision, s.err
}

func TestComposite_RoutesGitHubToAPI(t *testing.T) {
	t.Parallel()

	githubStub := &stubResolver{revision: testRevision}
	gitStub := &stubResolver{revision: "other"}
	comp := resolver.NewComposite(githubStub, gitStub)

	rev, err := comp.Resolve(context.Background(), mustIdentity(t, "github", "octocat", "hello-world"))
	require.NoError(t, err)

	assert.Equal(t, stats.Revision(testRevision), rev)
	assert.Equal(t, 1, githubStub.calls)
	assert.Equal(t, 0, gitStub.calls)
}

func TestComposite_RoutesOthersToGit(t *testing.T) {
	t.Parallel()

	githubStub := &stubResolver{revision: "unused"}
	gitStub := &stubResolver{revision: testRevision}
	comp := resolver.NewComposite(githubStub, gitStub)

	rev, err := comp.Resolve(context.Background(), mustIdentity(t, "gitlab", "group", "project"))
	require.NoError(t, err)

	assert.Equal(t, stats.Revision(testRevision), rev)
	assert.Equal(t, 0, githubStub.calls)
	assert.Equal(t, 1, gitStub.calls)
}

func TestComposite_NilGitHubFallsBack(t *testing.T) {
	t.Parallel()

	gitStub := &stubResolver{revision: testRevision}
	comp := resolver.NewComposite(nil, gitStub)

	_, err := comp.Resolve(context.Background(), mustIdentity(t, "github", "octocat", "hello-world"))
	require.NoError(t, err)

	assert.Equal(t, 1, gitStub.calls)
}

func githubTestClient(t *testing.T, handler http.Handler) *github.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := github.NewClient(nil)

	base, err := url.Parse(server.URL + "/")
	require.NoError(t, err)

	client.BaseURL = base
	client.UploadURL = base

	return client
}

func TestGitHub_Resolve(t *testing.T) {
	t.Parallel()

	client := githubTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/octocat/hello-world/commits", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("per_page"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"sha":"abc123"}]`))
	}))

	gh := resolver.NewGitHubWithClient(client, time.Second)

	rev, err := gh.Resolve(context.Background(), mustIdentity(t, "github", "octocat", "hello-world"))
	require.NoError(t, err)
	assert.Equal(t, stats.Revision(testRevision), rev)
}

func TestGitHub_ResolveNotFound(t *testing.T) {
	t.Parallel()

	client := githubTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"message":"Not Found"}`, http.StatusNotFound)
	}))

	gh := resolver.NewGitHubWithClient(client, time.Second)

	_, err := gh.Resolve(context.Background(), mustIdentity(t, "github", "nobody", "missing"))
	require.ErrorIs(t, err, resolver.ErrResolution)
	assert.NotErrorIs(t, err, resolver.ErrResolutionTimeout)
}

func TestGitHub_ResolveTimeout(t *testing.T) {
	t.Parallel()

	client := githubTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}

		w.WriteHeader(http.StatusOK)
	}))

	gh := resolver.NewGitHubWithClient(client, 25*time.Millisecond)

	_, err := gh.Resolve(context.Background(), mustIdentity(t, "github", "octocat", "hello-world"))
	require.ErrorIs(t, err, resolver.ErrResolutionTimeout)
}

func TestGitHub_ResolveEmptyRepository(t *testing.T) {
	t.Parallel()

	client := githubTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))

	gh := resolver.NewGitHubWithClient(client, time.Second)

	_, err := gh.Resolve(context.Background(), mustIdentity(t, "github", "octocat", "empty"))
	require.ErrorIs(t, err, resolver.ErrResolution)
}

package identity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locbadge/locbadge/internal/identity"
)

func TestParse(t *testing.T) {
	t.Parallel()

	id, err := identity.Parse("github", "octocat", "hello-world")
	require.NoError(t, err)

	assert.Equal(t, "github/octocat/hello-world", id.String())
	assert.Equal(t, "github.com", id.Domain())
	assert.Equal(t, "https://github.com/octocat/hello-world", id.CloneURL())
	assert.True(t, id.IsGitHub())
}

func TestParse_FullDomainHost(t *testing.T) {
	t.Parallel()

	id, err := identity.Parse("git.sr.ht", "~user", "project")
	require.NoError(t, err)

	assert.Equal(t, "git.sr.ht", id.Domain())
	assert.Equal(t, "https://git.sr.ht/~user/project", id.CloneURL())
	assert.False(t, id.IsGitHub())
}

func TestParse_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		host      string
		namespace string
		repo      string
	}{
		{name: "empty host", host: "", namespace: "octocat", repo: "hello"},
		{name: "empty namespace", host: "github", namespace: "", repo: "hello"},
		{name: "empty name", host: "github", namespace: "octocat", repo: ""},
		{name: "slash in namespace", host: "github", namespace: "a/b", repo: "hello"},
		{name: "space in name", host: "github", namespace: "octocat", repo: "hello world"},
		{name: "query metachar", host: "github", namespace: "octocat", repo: "x?y"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := identity.Parse(tc.host, tc.namespace, tc.repo)
			require.ErrorIs(t, err, identity.ErrInvalidIdentity)
		})
	}
}

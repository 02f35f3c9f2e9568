// Package identity models the repository coordinates carried by a badge
// request: hosting provider, namespace (user or organization), and name.
package identity

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidIdentity indicates a repository identity with missing or
// malformed segments.
var ErrInvalidIdentity = errors.New("invalid repository identity")

// invalidSegmentChars are characters that never appear in host, namespace,
// or repository name path segments.
const invalidSegmentChars = " /\\?#%"

// Identity names one repository on one hosting provider. It is derived
// entirely from the inbound request and never persisted.
type Identity struct {
	Host      string
	Namespace string
	Name      string
}

// Parse validates the three identity segments. All must be non-empty and
// free of path metacharacters.
func Parse(host, namespace, name string) (Identity, error) {
	for _, seg := range []struct {
		label string
		value string
	}{
		{label: "host", value: host},
		{label: "namespace", value: namespace},
		{label: "name", value: name},
	} {
		if seg.value == "" {
			return Identity{}, fmt.Errorf("%w: empty %s", ErrInvalidIdentity, seg.label)
		}

		if strings.ContainsAny(seg.value, invalidSegmentChars) {
			return Identity{}, fmt.Errorf("%w: %s %q contains invalid characters", ErrInvalidIdentity, seg.label, seg.value)
		}
	}

	return Identity{Host: host, Namespace: namespace, Name: name}, nil
}

// String renders the identity as host/namespace/name, the form used in logs.
func (id Identity) String() string {
	return id.Host + "/" + id.Namespace + "/" + id.Name
}

// Domain returns the hosting provider's domain. Short host forms
// ("github", "gitlab", "bitbucket") expand to their .com domain, matching
// the badge URL scheme; anything containing a dot is taken verbatim.
func (id Identity) Domain() string {
	if strings.Contains(id.Host, ".") {
		return id.Host
	}

	return id.Host + ".com"
}

// CloneURL returns the HTTPS URL of the repository's git remote.
func (id Identity) CloneURL() string {
	return "https://" + id.Domain() + "/" + id.Namespace + "/" + id.Name
}

// IsGitHub reports whether the identity lives on github.com, which enables
// API-based revision resolution instead of a generic ls-remote.
func (id Identity) IsGitHub() bool {
	return id.Domain() == "github.com"
}

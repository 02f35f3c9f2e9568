package resolver

// Internal hooks for white-box tests.
var (
	HeadRevision     = headRevision
	NewETagTransport = newETagTransport
)

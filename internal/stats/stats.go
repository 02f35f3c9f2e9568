// Package stats defines the line-count statistics model shared by the
// counting, storage, coordination, and rendering layers.
package stats

// Revision is an opaque identifier for an immutable content snapshot of a
// repository, typically a commit hash. Identical revisions always denote
// byte-identical source trees, so statistics keyed by revision never expire.
type Revision string

// AggregateStats holds repository-wide line counts.
type AggregateStats struct {
	Lines    int64
	Code     int64
	Comments int64
	Blanks   int64
	Files    int64
}

// Consistent reports whether the additive invariant
// lines = code + comments + blanks holds.
func (a AggregateStats) Consistent() bool {
	return a.Lines == a.Code+a.Comments+a.Blanks
}

// Value returns the count for the given category.
func (a AggregateStats) Value(c Category) int64 {
	switch c {
	case CategoryCode:
		return a.Code
	case CategoryBlanks:
		return a.Blanks
	case CategoryFiles:
		return a.Files
	case CategoryLines:
		return a.Lines
	case CategoryComments:
		return a.Comments
	}

	return 0
}

// LanguageStats holds line counts for a single detected language.
// Per-language file counts are not persisted, so there is no Files field.
type LanguageStats struct {
	Name     string
	Lines    int64
	Code     int64
	Comments int64
	Blanks   int64
}

// Consistent reports whether the additive invariant holds for this row.
func (l LanguageStats) Consistent() bool {
	return l.Lines == l.Code+l.Comments+l.Blanks
}

// Value returns the count for the given category. CategoryFiles is not
// tracked per language and returns 0; callers reject it up front.
func (l LanguageStats) Value(c Category) int64 {
	switch c {
	case CategoryCode:
		return l.Code
	case CategoryBlanks:
		return l.Blanks
	case CategoryLines:
		return l.Lines
	case CategoryComments:
		return l.Comments
	case CategoryFiles:
		return 0
	}

	return 0
}

// CacheEntry is the persisted statistics for one revision: one aggregate
// record plus zero or more per-language rows. Entries are created once and
// never mutated; deletion happens only through an explicit purge.
type CacheEntry struct {
	Aggregate AggregateStats
	Languages []LanguageStats
}

// Consistent reports whether the aggregate and every language row satisfy
// the additive invariant.
func (e *CacheEntry) Consistent() bool {
	if !e.Aggregate.Consistent() {
		return false
	}

	for _, l := range e.Languages {
		if !l.Consistent() {
			return false
		}
	}

	return true
}

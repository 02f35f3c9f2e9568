package stats

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrRankingOutOfRange indicates a ranking position beyond the number of
// distinct languages present for a revision.
var ErrRankingOutOfRange = errors.New("ranking exceeds number of detected languages")

// RankLanguages returns the language rows ordered descending by the given
// category's count. Ties are broken by ascending language name so that
// rankings are deterministic even when counts collide.
func RankLanguages(languages []LanguageStats, c Category) []LanguageStats {
	ranked := slices.Clone(languages)

	slices.SortStableFunc(ranked, func(a, b LanguageStats) int {
		if d := b.Value(c) - a.Value(c); d != 0 {
			if d < 0 {
				return -1
			}

			return 1
		}

		return strings.Compare(a.Name, b.Name)
	})

	return ranked
}

// NthLanguage returns the n-th most-used language (1-based) by the given
// category. It fails with ErrRankingOutOfRange when n exceeds the number of
// distinct languages.
func NthLanguage(languages []LanguageStats, c Category, n int) (LanguageStats, error) {
	ranked := RankLanguages(languages, c)

	if n < 1 || n > len(ranked) {
		return LanguageStats{}, fmt.Errorf("%w: rank %d of %d", ErrRankingOutOfRange, n, len(ranked))
	}

	return ranked[n-1], nil
}

// FilterLanguages returns only the rows whose name matches one of the given
// canonical language names. Matching is case-insensitive; order is preserved.
func FilterLanguages(languages []LanguageStats, names []string) []LanguageStats {
	if len(names) == 0 {
		return slices.Clone(languages)
	}

	wanted := make(map[string]struct{}, len(names))
	for _, n := range names {
		wanted[strings.ToLower(n)] = struct{}{}
	}

	var out []LanguageStats

	for _, l := range languages {
		if _, ok := wanted[strings.ToLower(l.Name)]; ok {
			out = append(out, l)
		}
	}

	return out
}

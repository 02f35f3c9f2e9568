package badge

import "fmt"

// Style is the closed set of badge layouts.
type Style string

// Recognized badge styles.
const (
	StyleFlat        Style = "flat"
	StyleFlatSquare  Style = "flat-square"
	StylePlastic     Style = "plastic"
	StyleForTheBadge Style = "for-the-badge"
	StyleSocial      Style = "social"
)

// DefaultStyle is used when a badge request names no style.
const DefaultStyle = StyleFlat

// ParseStyle validates a style string. Empty input selects the default
// style; anything outside the closed set fails with ErrInvalidConfiguration.
func ParseStyle(s string) (Style, error) {
	if s == "" {
		return DefaultStyle, nil
	}

	switch st := Style(s); st {
	case StyleFlat, StyleFlatSquare, StylePlastic, StyleForTheBadge, StyleSocial:
		return st, nil
	}

	return "", fmt.Errorf("%w: style %q", ErrInvalidConfiguration, s)
}

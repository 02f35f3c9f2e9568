// Package badge renders SVG badges for line-count statistics. The data
// selection (which statistic, which label) happens upstream; this package
// turns a value plus styling configuration into image bytes.
package badge

import (
	"bytes"
	"errors"
	"fmt"
)

// Sentinel errors for badge configuration and rendering.
var (
	// ErrInvalidConfiguration indicates an unrecognized style, category, or
	// ranking argument. The façade maps it to a default error badge so that
	// embedded images never break.
	ErrInvalidConfiguration = errors.New("invalid badge configuration")
)

// Default colors, matching the original badge scheme.
const (
	// DefaultColor is the right-hand background for ordinary badges.
	DefaultColor = "#007ec6"

	// ErrorColor is the right-hand background for error badges.
	ErrorColor = "#e05d44"
)

// errorLabel is the left-hand text of an error badge.
const errorLabel = "Error"

// Config holds the recognized badge styling options.
type Config struct {
	// Label overrides the default left-hand text. Empty keeps the default
	// chosen by the caller.
	Label string

	// Style selects the badge layout. The zero value is StyleFlat.
	Style Style

	// Color is the right-hand background, named or hex. Unrecognized values
	// fall back to DefaultColor: a badge must render even when its color
	// hint is garbage.
	Color string

	// Logo is an optional external image URL embedded left of the label.
	Logo string
}

// Render produces an SVG badge displaying the given value under cfg.Label.
func Render(label string, value int64, cfg Config) ([]byte, error) {
	if cfg.Label != "" {
		label = cfg.Label
	}

	return draw(drawing{
		Label:   label,
		Message: FormatValue(value),
		Color:   normalizeColor(cfg.Color),
		Style:   cfg.Style,
		Logo:    cfg.Logo,
	})
}

// ErrorBadge renders the red failure badge shown when a request cannot be
// served. It never fails: the fallback badge is the last line of defense
// against broken image embeds.
func ErrorBadge(message string) []byte {
	svg, err := draw(drawing{
		Label:   errorLabel,
		Message: message,
		Color:   ErrorColor,
		Style:   StyleFlat,
	})
	if err != nil {
		// Structurally unreachable: StyleFlat is always renderable.
		return []byte(`<svg xmlns="http://www.w3.org/2000/svg"/>`)
	}

	return svg
}

// drawing carries the resolved inputs for a single badge rendering.
type drawing struct {
	Label   string
	Message string
	Color   string
	Style   Style
	Logo    string
}

// draw dispatches on the style variant. This is the single dispatch point
// for the closed style set.
func draw(d drawing) ([]byte, error) {
	var buf bytes.Buffer

	var err error

	switch d.Style {
	case StyleFlat, "":
		err = flatTemplate.Execute(&buf, newFlatGeometry(d))
	case StyleFlatSquare:
		err = flatSquareTemplate.Execute(&buf, newFlatGeometry(d))
	case StylePlastic:
		err = plasticTemplate.Execute(&buf, newPlasticGeometry(d))
	case StyleForTheBadge:
		err = forTheBadgeTemplate.Execute(&buf, newForTheBadgeGeometry(d))
	case StyleSocial:
		err = socialTemplate.Execute(&buf, newSocialGeometry(d))
	default:
		return nil, fmt.Errorf("%w: style %q", ErrInvalidConfiguration, d.Style)
	}

	if err != nil {
		return nil, fmt.Errorf("render badge: %w", err)
	}

	return buf.Bytes(), nil
}

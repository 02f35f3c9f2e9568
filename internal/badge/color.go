package badge

import "strings"

// namedColors is the recognized color palette, the same names the shields
// ecosystem established. Values are the rendered hex colors.
var namedColors = map[string]string{
	"brightgreen":   "#4c1",
	"green":         "#97ca00",
	"yellowgreen":   "#a4a61d",
	"yellow":        "#dfb317",
	"orange":        "#fe7d37",
	"red":           "#e05d44",
	"blue":          "#007ec6",
	"lightgrey":     "#9f9f9f",
	"lightgray":     "#9f9f9f",
	"grey":          "#555",
	"gray":          "#555",
	"blueviolet":    "#8a2be2",
	"success":       "#4c1",
	"important":     "#fe7d37",
	"critical":      "#e05d44",
	"informational": "#007ec6",
	"inactive":      "#9f9f9f",
}

// hexDigits tests membership for bare hex color strings.
const hexDigits = "0123456789abcdefABCDEF"

// normalizeColor maps a user-supplied color to a rendered value. Named
// palette entries and 3- or 6-digit hex (with or without '#') are accepted;
// anything else falls back to DefaultColor rather than failing, because a
// badge embedded in a third-party document must always render.
func normalizeColor(c string) string {
	if c == "" {
		return DefaultColor
	}

	lower := strings.ToLower(strings.TrimSpace(c))

	if hex, ok := namedColors[lower]; ok {
		return hex
	}

	bare := strings.TrimPrefix(lower, "#")
	if isHexColor(bare) {
		return "#" + bare
	}

	return DefaultColor
}

func isHexColor(s string) bool {
	if len(s) != 3 && len(s) != 6 {
		return false
	}

	for _, r := range s {
		if !strings.ContainsRune(hexDigits, r) {
			return false
		}
	}

	return true
}

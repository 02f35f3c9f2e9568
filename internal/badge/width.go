package badge

// Approximate character advance widths for 11px Verdana, the font stack
// badges render with. Exact metrics would need font tables; for badge
// sizing a class-based estimate is enough because the rendered text also
// carries an explicit textLength that browsers scale to.
const (
	narrowCharWidth  = 3.8
	regularCharWidth = 7.0
	upperCharWidth   = 8.2
	wideCharWidth    = 10.8
	digitCharWidth   = 7.0
	fallbackWidth    = 9.0
)

// horizontalPadding is the space between a text zone's edge and its text.
const horizontalPadding = 5.0

// narrowChars and wideChars classify the extremes of the Verdana advance
// table; everything else lands in the regular, upper, or digit class.
const (
	narrowChars = "iIljft.,:;'|!()[]{} \"-"
	wideChars   = "mwMW@%"
)

func charWidth(r rune) float64 {
	switch {
	case containsRune(narrowChars, r):
		return narrowCharWidth
	case containsRune(wideChars, r):
		return wideCharWidth
	case r >= '0' && r <= '9':
		return digitCharWidth
	case r >= 'A' && r <= 'Z':
		return upperCharWidth
	case r >= 'a' && r <= 'z':
		return regularCharWidth
	case r < 0x80:
		return regularCharWidth
	default:
		return fallbackWidth
	}
}

func containsRune(s string, r rune) bool {
	for _, c := range s {
		if c == r {
			return true
		}
	}

	return false
}

// textWidth estimates the rendered width in pixels of s at 11px Verdana.
func textWidth(s string) float64 {
	var w float64

	for _, r := range s {
		w += charWidth(r)
	}

	return w
}

package badge

import "strconv"

// Magnitude breakpoints for badge value trimming.
const (
	thousand = 1_000
	million  = 1_000_000
	billion  = 1_000_000_000
)

// FormatValue trims a count to at most four significant characters with a
// magnitude suffix: 1234 renders as "1.2K", 56789012 as "56.8M". Values
// under a thousand render verbatim.
func FormatValue(v int64) string {
	switch {
	case v >= billion:
		return trim(v, billion) + "B"
	case v >= million:
		return trim(v, million) + "M"
	case v >= thousand:
		return trim(v, thousand) + "K"
	default:
		return strconv.FormatInt(v, 10)
	}
}

func trim(v, unit int64) string {
	return strconv.FormatFloat(float64(v)/float64(unit), 'f', 1, 64)
}

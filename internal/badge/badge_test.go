package badge_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locbadge/locbadge/internal/badge"
)

func TestParseStyle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  badge.Style
	}{
		{input: "", want: badge.StyleFlat},
		{input: "flat", want: badge.StyleFlat},
		{input: "flat-square", want: badge.StyleFlatSquare},
		{input: "plastic", want: badge.StylePlastic},
		{input: "for-the-badge", want: badge.StyleForTheBadge},
		{input: "social", want: badge.StyleSocial},
	}

	for _, tc := range tests {
		got, err := badge.ParseStyle(tc.input)
		require.NoError(t, err, "input %q", tc.input)
		assert.Equal(t, tc.want, got)
	}
}

func TestParseStyle_Invalid(t *testing.T) {
	t.Parallel()

	_, err := badge.ParseStyle("shiny")
	require.ErrorIs(t, err, badge.ErrInvalidConfiguration)
}

func TestFormatValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value int64
		want  string
	}{
		{value: 0, want: "0"},
		{value: 999, want: "999"},
		{value: 1234, want: "1.2K"},
		{value: 999_949, want: "999.9K"},
		{value: 1_000_000, want: "1.0M"},
		{value: 56_789_012, want: "56.8M"},
		{value: 2_500_000_000, want: "2.5B"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, badge.FormatValue(tc.value), "value %d", tc.value)
	}
}

func TestRender_Flat(t *testing.T) {
	t.Parallel()

	svg, err := badge.Render("LoC", 1234, badge.Config{})
	require.NoError(t, err)

	s := string(svg)
	assert.True(t, strings.HasPrefix(s, "<svg"))
	assert.Contains(t, s, ">1.2K</text>")
	assert.Contains(t, s, ">LoC</text>")
	assert.Contains(t, s, badge.DefaultColor)
	assert.Contains(t, s, `height="20"`)
}

func TestRender_ForTheBadge(t *testing.T) {
	t.Parallel()

	svg, err := badge.Render("code", 1234, badge.Config{
		Style: badge.StyleForTheBadge,
		Color: "ff0000",
	})
	require.NoError(t, err)

	s := string(svg)
	assert.Contains(t, s, `height="28"`)
	assert.Contains(t, s, "#ff0000")
	// for-the-badge uppercases its text.
	assert.Contains(t, s, ">CODE</text>")
	assert.Contains(t, s, ">1.2K</text>")
}

func TestRender_LabelOverride(t *testing.T) {
	t.Parallel()

	svg, err := badge.Render("LoC", 42, badge.Config{Label: "my lines"})
	require.NoError(t, err)

	assert.Contains(t, string(svg), ">my lines</text>")
	assert.NotContains(t, string(svg), ">LoC</text>")
}

func TestRender_Logo(t *testing.T) {
	t.Parallel()

	svg, err := badge.Render("LoC", 42, badge.Config{Logo: "https://example.com/logo.svg"})
	require.NoError(t, err)

	assert.Contains(t, string(svg), `xlink:href="https://example.com/logo.svg"`)
}

func TestRender_NamedColor(t *testing.T) {
	t.Parallel()

	svg, err := badge.Render("LoC", 42, badge.Config{Color: "brightgreen"})
	require.NoError(t, err)

	assert.Contains(t, string(svg), "#4c1")
}

func TestRender_BadColorFallsBack(t *testing.T) {
	t.Parallel()

	svg, err := badge.Render("LoC", 42, badge.Config{Color: "not-a-color"})
	require.NoError(t, err)

	assert.Contains(t, string(svg), badge.DefaultColor)
}

func TestRender_UnknownStyleFails(t *testing.T) {
	t.Parallel()

	_, err := badge.Render("LoC", 42, badge.Config{Style: badge.Style("shiny")})
	require.ErrorIs(t, err, badge.ErrInvalidConfiguration)
}

func TestRender_EscapesMarkup(t *testing.T) {
	t.Parallel()

	svg, err := badge.Render("LoC", 42, badge.Config{Label: `<script>"x"</script>`})
	require.NoError(t, err)

	assert.NotContains(t, string(svg), "<script>")
}

func TestErrorBadge(t *testing.T) {
	t.Parallel()

	svg := badge.ErrorBadge("Url incorrect")

	s := string(svg)
	assert.Contains(t, s, ">Error</text>")
	assert.Contains(t, s, ">Url incorrect</text>")
	assert.Contains(t, s, badge.ErrorColor)
}

func TestRender_AllStyles(t *testing.T) {
	t.Parallel()

	styles := []badge.Style{
		badge.StyleFlat,
		badge.StyleFlatSquare,
		badge.StylePlastic,
		badge.StyleForTheBadge,
		badge.StyleSocial,
	}

	for _, style := range styles {
		svg, err := badge.Render("LoC", 1234, badge.Config{Style: style})
		require.NoError(t, err, "style %q", style)
		assert.True(t, strings.HasPrefix(string(svg), "<svg"), "style %q", style)
		assert.Contains(t, string(svg), "1.2K", "style %q", style)
	}
}

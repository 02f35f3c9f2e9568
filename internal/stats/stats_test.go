package stats_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locbadge/locbadge/internal/stats"
)

func TestAggregateStats_Consistent(t *testing.T) {
	t.Parallel()

	ok := stats.AggregateStats{Lines: 100, Code: 80, Comments: 10, Blanks: 10, Files: 3}
	assert.True(t, ok.Consistent())

	bad := stats.AggregateStats{Lines: 99, Code: 80, Comments: 10, Blanks: 10}
	assert.False(t, bad.Consistent())
}

func TestAggregateStats_Value(t *testing.T) {
	t.Parallel()

	a := stats.AggregateStats{Lines: 100, Code: 80, Comments: 10, Blanks: 10, Files: 3}

	assert.Equal(t, int64(80), a.Value(stats.CategoryCode))
	assert.Equal(t, int64(10), a.Value(stats.CategoryBlanks))
	assert.Equal(t, int64(3), a.Value(stats.CategoryFiles))
	assert.Equal(t, int64(100), a.Value(stats.CategoryLines))
	assert.Equal(t, int64(10), a.Value(stats.CategoryComments))
}

func TestCacheEntry_Consistent(t *testing.T) {
	t.Parallel()

	entry := &stats.CacheEntry{
		Aggregate: stats.AggregateStats{Lines: 30, Code: 20, Comments: 5, Blanks: 5, Files: 2},
		Languages: []stats.LanguageStats{
			{Name: "Go", Lines: 20, Code: 15, Comments: 3, Blanks: 2},
			{Name: "Rust", Lines: 10, Code: 5, Comments: 2, Blanks: 3},
		},
	}
	assert.True(t, entry.Consistent())

	entry.Languages[1].Lines = 11
	assert.False(t, entry.Consistent())
}

func TestParseCategory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  stats.Category
	}{
		{input: "", want: stats.CategoryCode},
		{input: "code", want: stats.CategoryCode},
		{input: "blanks", want: stats.CategoryBlanks},
		{input: "files", want: stats.CategoryFiles},
		{input: "lines", want: stats.CategoryLines},
		{input: "comments", want: stats.CategoryComments},
	}

	for _, tc := range tests {
		got, err := stats.ParseCategory(tc.input)
		require.NoError(t, err, "input %q", tc.input)
		assert.Equal(t, tc.want, got)
	}
}

func TestParseCategory_Unknown(t *testing.T) {
	t.Parallel()

	_, err := stats.ParseCategory("loc")
	require.ErrorIs(t, err, stats.ErrUnknownCategory)
}

func TestCategory_Label(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "LoC", stats.CategoryCode.Label())
	assert.Equal(t, "Blank lines", stats.CategoryBlanks.Label())
	assert.Equal(t, "Files", stats.CategoryFiles.Label())
	assert.Equal(t, "Total lines", stats.CategoryLines.Label())
	assert.Equal(t, "Comments", stats.CategoryComments.Label())
}

package stats

import (
	"errors"
	"fmt"
)

// Category selects which line-count statistic a badge displays.
type Category string

// The closed set of badge categories.
const (
	CategoryCode     Category = "code"
	CategoryBlanks   Category = "blanks"
	CategoryFiles    Category = "files"
	CategoryLines    Category = "lines"
	CategoryComments Category = "comments"
)

// DefaultCategory is used when a badge request names no category.
const DefaultCategory = CategoryCode

// ErrUnknownCategory indicates a category string outside the closed set.
var ErrUnknownCategory = errors.New("unknown category")

// ParseCategory validates a category string. Empty input selects the
// default category.
func ParseCategory(s string) (Category, error) {
	if s == "" {
		return DefaultCategory, nil
	}

	switch c := Category(s); c {
	case CategoryCode, CategoryBlanks, CategoryFiles, CategoryLines, CategoryComments:
		return c, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// Label returns the default left-hand badge text for the category.
func (c Category) Label() string {
	switch c {
	case CategoryCode:
		return "LoC"
	case CategoryBlanks:
		return "Blank lines"
	case CategoryFiles:
		return "Files"
	case CategoryLines:
		return "Total lines"
	case CategoryComments:
		return "Comments"
	}

	return string(c)
}

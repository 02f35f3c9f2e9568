package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	enry "github.com/go-enry/go-enry/v2"

	"github.com/locbadge/locbadge/internal/badge"
	"github.com/locbadge/locbadge/internal/identity"
	"github.com/locbadge/locbadge/internal/stats"
)

// errBadRequest wraps every query parsing failure.
var errBadRequest = errors.New("bad badge request")

// badgeRequest is one parsed badge URL.
type badgeRequest struct {
	id       identity.Identity
	category stats.Category

	// languages filters the per-language rows; empty means aggregate.
	languages []string

	// ranking selects the n-th language by the category value; 0 disables.
	ranking int

	cfg badge.Config
}

// parseBadgeRequest validates path segments and query parameters.
func parseBadgeRequest(r *http.Request) (badgeRequest, error) {
	var req badgeRequest

	id, err := identity.Parse(
		chi.URLParam(r, "host"),
		chi.URLParam(r, "user"),
		chi.URLParam(r, "repo"),
	)
	if err != nil {
		return req, fmt.Errorf("%w: %w", errBadRequest, err)
	}

	req.id = id

	q := r.URL.Query()

	req.category, err = stats.ParseCategory(q.Get("category"))
	if err != nil {
		return req, fmt.Errorf("%w: %w", errBadRequest, err)
	}

	req.languages = parseLanguages(q.Get("type"))

	if raw := q.Get("ranking"); raw != "" {
		n, convErr := strconv.Atoi(raw)
		if convErr != nil || n < 1 {
			return req, fmt.Errorf("%w: ranking %q", errBadRequest, raw)
		}

		req.ranking = n
	}

	// File counts exist only repository-wide, so they cannot be combined
	// with per-language selection.
	if req.category == stats.CategoryFiles && (req.ranking > 0 || len(req.languages) > 0) {
		return req, fmt.Errorf("%w: files category has no per-language breakdown", errBadRequest)
	}

	style, err := badge.ParseStyle(q.Get("style"))
	if err != nil {
		return req, fmt.Errorf("%w: %w", errBadRequest, err)
	}

	req.cfg = badge.Config{
		Label: q.Get("label"),
		Style: style,
		Color: q.Get("color"),
		Logo:  q.Get("logo"),
	}

	return req, nil
}

// parseLanguages splits a comma-separated language list and canonicalizes
// each name through the linguist alias table. Unknown aliases pass through
// verbatim; they simply match nothing.
func parseLanguages(raw string) []string {
	if raw == "" {
		return nil
	}

	var names []string

	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		if canonical, ok := enry.GetLanguageByAlias(part); ok {
			part = canonical
		}

		names = append(names, part)
	}

	return names
}

// selectValue picks the rendered value and default label for req from entry.
func selectValue(req badgeRequest, entry *stats.CacheEntry) (int64, string, error) {
	languages := entry.Languages
	if len(req.languages) > 0 {
		languages = stats.FilterLanguages(languages, req.languages)
	}

	if req.ranking > 0 {
		lang, err := stats.NthLanguage(languages, req.category, req.ranking)
		if err != nil {
			return 0, "", err
		}

		return lang.Value(req.category), lang.Name, nil
	}

	if len(req.languages) > 0 {
		var total int64
		for _, l := range languages {
			total += l.Value(req.category)
		}

		return total, req.category.Label(), nil
	}

	return entry.Aggregate.Value(req.category), req.category.Label(), nil
}

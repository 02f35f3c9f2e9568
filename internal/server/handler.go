package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/locbadge/locbadge/internal/badge"
	"github.com/locbadge/locbadge/internal/coordinator"
	"github.com/locbadge/locbadge/internal/observability"
	"github.com/locbadge/locbadge/internal/resolver"
)

const (
	contentTypeSVG = "image/svg+xml"

	// badgeOp labels badge requests on RED metrics.
	badgeOp = "badge"

	// overloadRetryAfterSec is the Retry-After hint on 503 responses.
	overloadRetryAfterSec = 30
)

// Error badge messages. The 400-class text matches the original service.
const (
	msgURLIncorrect = "Url incorrect"
	msgTimedOut     = "timed out"
	msgBusy         = "busy"
	msgInternal     = "internal error"
)

// handleBadge serves GET /b1/{host}/{user}/{repo}.
func (s *Server) handleBadge(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	status := observability.StatusOK

	release := s.red.TrackInflight(r.Context(), badgeOp)
	defer func() {
		release()
		s.red.RecordRequest(r.Context(), badgeOp, status, time.Since(start))
	}()

	req, err := parseBadgeRequest(r)
	if err != nil {
		status = observability.StatusError

		s.writeErrorBadge(w, http.StatusBadRequest, msgURLIncorrect, err)

		return
	}

	rev, entry, err := s.provider.Stats(r.Context(), req.id)
	if err != nil {
		status = observability.StatusError

		code, msg := classifyPipelineError(err)
		if code == http.StatusServiceUnavailable {
			w.Header().Set("Retry-After", strconv.Itoa(overloadRetryAfterSec))
		}

		s.writeErrorBadge(w, code, msg, err)

		return
	}

	etag := `"` + string(rev) + `"`

	w.Header().Set("Content-Type", contentTypeSVG)
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("ETag", etag)

	// The revision is re-resolved above, so a matching tag proves the
	// cached image is still current. Only the render is skipped.
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)

		return
	}

	value, label, err := selectValue(req, entry)
	if err != nil {
		status = observability.StatusError

		s.writeErrorBadge(w, http.StatusBadRequest, msgURLIncorrect, err)

		return
	}

	if req.cfg.Label == "" {
		req.cfg.Label = label
	}

	svg, err := badge.Render(req.cfg.Label, value, req.cfg)
	if err != nil {
		status = observability.StatusError

		s.writeErrorBadge(w, http.StatusBadRequest, msgURLIncorrect, err)

		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(svg)
}

// classifyPipelineError maps pipeline failures onto status codes and
// badge messages.
func classifyPipelineError(err error) (int, string) {
	switch {
	case errors.Is(err, resolver.ErrResolutionTimeout),
		errors.Is(err, coordinator.ErrComputeTimeout):
		return http.StatusGatewayTimeout, msgTimedOut
	case errors.Is(err, resolver.ErrResolution):
		return http.StatusNotFound, msgURLIncorrect
	case errors.Is(err, coordinator.ErrOverloaded):
		return http.StatusServiceUnavailable, msgBusy
	default:
		return http.StatusInternalServerError, msgInternal
	}
}

// writeErrorBadge responds with an SVG error badge so embedded images
// keep rendering on failure.
func (s *Server) writeErrorBadge(w http.ResponseWriter, code int, msg string, err error) {
	s.log.Warn("badge request failed", "status", code, "error", err)

	w.Header().Set("Content-Type", contentTypeSVG)
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(code)
	_, _ = w.Write(badge.ErrorBadge(msg))
}

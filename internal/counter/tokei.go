// Package counter invokes the external line-counting engine over a
// filesystem snapshot and maps its report into the statistics model.
package counter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"slices"
	"strings"

	"github.com/locbadge/locbadge/internal/stats"
)

// ErrCountingFailed indicates the counting engine could not produce a
// report: missing binary, inaccessible snapshot, non-zero exit, or
// malformed output.
var ErrCountingFailed = errors.New("line counting failed")

// DefaultBinary is the counting engine executable looked up on PATH.
const DefaultBinary = "tokei"

// totalKey is the engine's synthetic cross-language entry. It feeds the
// aggregate record and is excluded from per-language rows.
const totalKey = "Total"

// Invoker produces statistics from a source tree.
type Invoker interface {
	Count(ctx context.Context, dir string) (*stats.CacheEntry, error)
}

// Tokei shells out to the tokei binary with JSON output. The process runs
// under the caller's context and is killed when it is canceled, so a
// timed-out computation never leaks an engine process.
type Tokei struct {
	binary string
}

// NewTokei creates an invoker for the given engine binary. Empty uses
// DefaultBinary.
func NewTokei(binary string) *Tokei {
	if binary == "" {
		binary = DefaultBinary
	}

	return &Tokei{binary: binary}
}

// Count implements Invoker.
func (t *Tokei) Count(ctx context.Context, dir string) (*stats.CacheEntry, error) {
	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, t.binary, "--output", "json", dir)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrCountingFailed, ctxErr)
		}

		return nil, fmt.Errorf("%w: run %s: %v: %s", ErrCountingFailed, t.binary, err, strings.TrimSpace(stderr.String()))
	}

	entry, err := parseReport(stdout.Bytes())
	if err != nil {
		return nil, err
	}

	return entry, nil
}

// tokeiLanguage mirrors one language object in the engine's JSON report.
type tokeiLanguage struct {
	Blanks   int64         `json:"blanks"`
	Code     int64         `json:"code"`
	Comments int64         `json:"comments"`
	Reports  []tokeiReport `json:"reports"`
}

// tokeiReport is one counted file within a language.
type tokeiReport struct {
	Name string `json:"name"`
}

// parseReport maps the engine's JSON report into a cache entry. Line totals
// are derived (the engine emits only code/comments/blanks), so the additive
// invariant holds by construction.
func parseReport(data []byte) (*stats.CacheEntry, error) {
	var report map[string]tokeiLanguage

	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("%w: decode report: %v", ErrCountingFailed, err)
	}

	entry := &stats.CacheEntry{}

	for name, lang := range report {
		if name == totalKey {
			continue
		}

		lines := lang.Code + lang.Comments + lang.Blanks
		if lines == 0 && len(lang.Reports) == 0 {
			continue
		}

		entry.Languages = append(entry.Languages, stats.LanguageStats{
			Name:     name,
			Lines:    lines,
			Code:     lang.Code,
			Comments: lang.Comments,
			Blanks:   lang.Blanks,
		})

		entry.Aggregate.Code += lang.Code
		entry.Aggregate.Comments += lang.Comments
		entry.Aggregate.Blanks += lang.Blanks
		entry.Aggregate.Files += int64(len(lang.Reports))
	}

	entry.Aggregate.Lines = entry.Aggregate.Code + entry.Aggregate.Comments + entry.Aggregate.Blanks

	slices.SortFunc(entry.Languages, func(a, b stats.LanguageStats) int {
		return strings.Compare(a.Name, b.Name)
	})

	return entry, nil
}

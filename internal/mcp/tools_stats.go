package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/locbadge/locbadge/internal/identity"
	"github.com/locbadge/locbadge/internal/server"
	"github.com/locbadge/locbadge/internal/stats"
)

// statsToolName is the tool identifier for repository statistics.
const statsToolName = "repo_stats"

// StatsInput is the repo_stats tool input.
type StatsInput struct {
	Host      string `json:"host" jsonschema:"repository host, e.g. github or gitlab.com"`
	Namespace string `json:"namespace" jsonschema:"user or organization owning the repository"`
	Name      string `json:"name" jsonschema:"repository name"`
	Category  string `json:"category,omitempty" jsonschema:"one of code, lines, blanks, comments, files; defaults to code"`
}

// StatsOutput is the repo_stats tool output.
type StatsOutput struct {
	Revision  string                `json:"revision"`
	Category  string                `json:"category"`
	Value     int64                 `json:"value"`
	Aggregate stats.AggregateStats  `json:"aggregate"`
	Languages []stats.LanguageStats `json:"languages,omitempty"`
}

// registerStatsTool wires the repo_stats tool onto the SDK server.
func registerStatsTool(impl *mcpsdk.Server, provider server.StatsProvider) {
	handler := func(ctx context.Context, _ *mcpsdk.CallToolRequest, input StatsInput) (*mcpsdk.CallToolResult, StatsOutput, error) {
		return handleStats(ctx, provider, input)
	}

	mcpsdk.AddTool(impl, &mcpsdk.Tool{
		Name:        statsToolName,
		Description: "Count lines of code in a git repository at its current revision. Results are cached by revision.",
	}, handler)
}

// handleStats processes repo_stats tool calls.
func handleStats(ctx context.Context, provider server.StatsProvider, input StatsInput) (*mcpsdk.CallToolResult, StatsOutput, error) {
	var out StatsOutput

	category, err := stats.ParseCategory(input.Category)
	if err != nil {
		return nil, out, fmt.Errorf("parse category: %w", err)
	}

	id, err := identity.Parse(input.Host, input.Namespace, input.Name)
	if err != nil {
		return nil, out, fmt.Errorf("parse identity: %w", err)
	}

	rev, entry, err := provider.Stats(ctx, id)
	if err != nil {
		return nil, out, fmt.Errorf("compute statistics: %w", err)
	}

	out = StatsOutput{
		Revision:  string(rev),
		Category:  string(category),
		Value:     entry.Aggregate.Value(category),
		Aggregate: entry.Aggregate,
		Languages: entry.Languages,
	}

	return nil, out, nil
}

package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/locbadge/locbadge/internal/config"
	"github.com/locbadge/locbadge/internal/mcp"
	"github.com/locbadge/locbadge/internal/observability"
	"github.com/locbadge/locbadge/pkg/version"
)

// NewMCPCommand creates the MCP server command.
func NewMCPCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for AI agent integration",
		Long: `Start a Model Context Protocol (MCP) server on stdio transport.

The MCP server exposes repository line counting as a tool that AI agents
can discover and invoke:
  - repo_stats: Count lines of code in a git repository, cached by revision`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cobraCmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}

			providers, err := initObservability(cfg, observability.ModeMCP)
			if err != nil {
				return err
			}

			defer func() {
				shutdownErr := providers.Shutdown(context.Background())
				if shutdownErr != nil {
					providers.Logger.Warn("observability shutdown failed", "error", shutdownErr)
				}
			}()

			ctx := cobraCmd.Context()

			st, closeStore, err := buildStore(ctx, cfg)
			if err != nil {
				return err
			}

			if closeStore != nil {
				defer func() { _ = closeStore() }()
			}

			coord, err := buildCoordinator(cfg, st, providers)
			if err != nil {
				return err
			}

			srv := mcp.NewServer(mcp.ServerDeps{
				Provider: coord,
				Version:  version.Version,
			})

			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "config file path")

	return cmd
}

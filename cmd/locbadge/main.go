// Package main provides the entry point for the locbadge service and CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/locbadge/locbadge/cmd/locbadge/commands"
	"github.com/locbadge/locbadge/pkg/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "locbadge",
		Short: "Line-count badges for git repositories",
		Long: `Locbadge serves SVG badges with line-count statistics for any
public git repository. Statistics are computed once per revision and
cached forever.

Commands:
  serve     Start the HTTP badge server
  count     Count lines in a local directory
  purge     Drop cached statistics for a revision
  mcp       Start the MCP stdio server`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewCountCommand())
	rootCmd.AddCommand(commands.NewPurgeCommand())
	rootCmd.AddCommand(commands.NewMCPCommand())
	rootCmd.AddCommand(versionCmd())

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "locbadge %s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}

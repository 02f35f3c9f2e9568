package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/locbadge/locbadge/internal/config"
	"github.com/locbadge/locbadge/internal/stats"
)

// NewPurgeCommand creates the administrative cache purge command.
// Explicit purge is the only way cached statistics are ever dropped.
func NewPurgeCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "purge <revision>",
		Short:         "Drop cached statistics for a revision",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}

			ctx := cobraCmd.Context()

			st, closeStore, err := buildStore(ctx, cfg)
			if err != nil {
				return err
			}

			if closeStore != nil {
				defer func() { _ = closeStore() }()
			}

			rev := stats.Revision(args[0])

			if err := st.Purge(ctx, rev); err != nil {
				return fmt.Errorf("purge %s: %w", rev, err)
			}

			fmt.Fprintf(cobraCmd.OutOrStdout(), "purged %s\n", rev)

			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "config file path")

	return cmd
}

package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/locbadge/locbadge/internal/config"
	"github.com/locbadge/locbadge/internal/observability"
	"github.com/locbadge/locbadge/internal/server"
)

// NewServeCommand creates the HTTP badge server command.
func NewServeCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "serve",
		Short:         "Start the HTTP badge server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cobraCmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}

			return runServe(cobraCmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "config file path")

	return cmd
}

func runServe(ctx context.Context, cfg *config.Config) error {
	providers, err := initObservability(cfg, observability.ModeServe)
	if err != nil {
		return err
	}

	defer func() {
		shutdownErr := providers.Shutdown(context.Background())
		if shutdownErr != nil {
			providers.Logger.Warn("observability shutdown failed", "error", shutdownErr)
		}
	}()

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

	red, err := observability.NewREDMetrics(providers.Meter)
	if err != nil {
		return fmt.Errorf("create request metrics: %w", err)
	}

	srv := server.New(coord, server.Options{
		Addr:            cfg.Server.Addr,
		ShutdownTimeout: time.Duration(cfg.Server.ShutdownSec) * time.Second,
		Logger:          providers.Logger,
		Metrics:         red,
		MetricsHandler:  providers.MetricsHandler,
		ReadyChecks:     []observability.ReadyCheck{server.StorePingCheck(st)},
	})

	runCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return srv.Run(runCtx)
}

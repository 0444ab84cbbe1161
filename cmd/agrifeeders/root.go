package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/FrancyJGLisboa/agri-feeders/internal/config"
	"github.com/FrancyJGLisboa/agri-feeders/internal/observability"
)

var (
	cfg     *config.Config
	logger  *slog.Logger
	metrics *observability.Metrics
)

var rootCmd = &cobra.Command{
	Use:   "agrifeeders",
	Short: "Extraction jobs for agricultural and commodity-positioning datasets",
	Long: `agrifeeders bundles the project's data extraction jobs: Brazilian
municipal crop statistics (IBGE SIDRA), US county crop statistics (USDA
NASS QuickStats), CFTC hedge-fund flow figures, and the reformatting steps
that feed the mapping app. Every job is a one-shot run that writes files
and exits.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		logger = observability.NewLogger(cfg)
		metrics = observability.NewMetrics()
		return nil
	},
}

// Execute runs the CLI and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// runJob executes fn under a signal-aware context and, when configured,
// pushes the run's metrics to the Pushgateway.
func runJob(job string, fn func(ctx context.Context) error) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runErr := fn(ctx)

	if cfg.PushgatewayURL != "" {
		pushCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := metrics.Push(pushCtx, cfg.PushgatewayURL, "agrifeeders_"+job); err != nil {
			logger.Warn("metrics push failed", "error", err)
		}
	}

	return runErr
}

package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/FrancyJGLisboa/agri-feeders/internal/adapter/cftc"
	"github.com/FrancyJGLisboa/agri-feeders/internal/pipeline"
)

var flowsCmd = &cobra.Command{
	Use:   "flows",
	Short: "Extract hedge-fund commodity flows from CFTC COT reports",
	Long: `Download the current and previous year of disaggregated futures-only
Commitments of Traders reports, compute weekly managed-money net position
changes per sector, and write the trailing twenty weeks as CSV and JSON.`,
	Example: `  agrifeeders flows`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		client := cftc.NewClient(cftc.DefaultBaseURL, cfg.HTTPTimeout, logger)
		job := pipeline.NewFlowsJob(client, logger, metrics, cfg.OutputDir)
		return runJob("flows", func(ctx context.Context) error {
			return job.Run(ctx)
		})
	},
}

func init() {
	rootCmd.AddCommand(flowsCmd)
}

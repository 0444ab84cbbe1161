package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/FrancyJGLisboa/agri-feeders/internal/pipeline"
)

var describeIn string

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Log a profile of a dataset CSV",
	Long: `Read a dataset CSV and log its shape, year range, state coverage,
distinct regions, geographic extents, and per-column totals and means.
Useful as a quick sanity check after an extraction run.`,
	Example: `  agrifeeders describe --in data/dataset_soja_2020_2023.csv`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		job := pipeline.NewDescribeJob(logger, metrics)
		return runJob("describe", func(ctx context.Context) error {
			return job.Run(ctx, describeIn)
		})
	},
}

func init() {
	describeCmd.Flags().StringVarP(&describeIn, "in", "i", "", "dataset CSV path")
	_ = describeCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(describeCmd)
}

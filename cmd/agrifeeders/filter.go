package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/FrancyJGLisboa/agri-feeders/internal/pipeline"
)

var (
	filterIn     string
	filterOut    string
	filterColumn string
)

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Drop zero-valued rows from a dataset CSV",
	Long: `Read a dataset CSV, drop every row whose value in the given column
parses to zero, and write the kept rows back. Without --out the input
file is rewritten in place.`,
	Example: `  agrifeeders filter --in data/dataset_soja_2020_2023.csv
  agrifeeders filter --in data/dataset_us_corn_2020_2023.csv --column yield_bu_acre --out data/clean.csv`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		out := filterOut
		if out == "" {
			out = filterIn
		}

		job := pipeline.NewFilterJob(logger, metrics)
		return runJob("filter", func(ctx context.Context) error {
			return job.Run(ctx, filterIn, out, filterColumn)
		})
	},
}

func init() {
	filterCmd.Flags().StringVarP(&filterIn, "in", "i", "", "input dataset CSV path")
	filterCmd.Flags().StringVarP(&filterOut, "out", "o", "", "output CSV path (default: rewrite input)")
	filterCmd.Flags().StringVar(&filterColumn, "column", "yield_kg_ha", "column whose zero rows are dropped")
	_ = filterCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(filterCmd)
}

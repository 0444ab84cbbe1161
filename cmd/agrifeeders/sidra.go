package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/FrancyJGLisboa/agri-feeders/internal/adapter/geobr"
	"github.com/FrancyJGLisboa/agri-feeders/internal/adapter/sidra"
	"github.com/FrancyJGLisboa/agri-feeders/internal/domain"
	"github.com/FrancyJGLisboa/agri-feeders/internal/georef"
	"github.com/FrancyJGLisboa/agri-feeders/internal/pipeline"
)

var (
	sidraCrop  string
	sidraStart int
	sidraEnd   int
)

var sidraCmd = &cobra.Command{
	Use:   "sidra",
	Short: "Extract Brazilian municipal crop history from IBGE SIDRA",
	Long: fmt.Sprintf(`Extract a municipal crop history dataset from the IBGE SIDRA
aggregates API and write it as CSV, Parquet, and JSON.

Supported crops: %s.

Target states come from the config profile (default MG, SP, BA, ES).`,
		strings.Join(sidra.SupportedCrops(), ", ")),
	Example: `  agrifeeders sidra --crop soja --start 2020 --end 2023
  agrifeeders sidra --crop milho --start 2022 --end 2022`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := validateYears(sidraStart, sidraEnd); err != nil {
			return err
		}

		client := sidra.NewClient(sidra.DefaultBaseURL, cfg.HTTPTimeout, logger)
		coords := geobr.NewClient(geobr.DefaultURL, cfg.HTTPTimeout, logger)
		store := georef.NewStore(cfg.CacheDir, domain.Clock(), logger, metrics)

		job := pipeline.NewSIDRAJob(client, coords, store, logger, metrics,
			cfg.OutputDir, cfg.RequestDelay, cfg.TargetStates)
		return runJob("sidra", func(ctx context.Context) error {
			return job.Run(ctx, sidraCrop, sidraStart, sidraEnd)
		})
	},
}

func init() {
	sidraCmd.Flags().StringVarP(&sidraCrop, "crop", "c", "", "crop name (e.g. soja, milho)")
	sidraCmd.Flags().IntVarP(&sidraStart, "start", "s", 0, "start year")
	sidraCmd.Flags().IntVarP(&sidraEnd, "end", "e", 0, "end year")
	_ = sidraCmd.MarkFlagRequired("crop")
	_ = sidraCmd.MarkFlagRequired("start")
	_ = sidraCmd.MarkFlagRequired("end")

	rootCmd.AddCommand(sidraCmd)
}

func validateYears(start, end int) error {
	if start <= 0 || end <= 0 {
		return fmt.Errorf("start and end years are required")
	}
	if end < start {
		return fmt.Errorf("end year %d precedes start year %d", end, start)
	}
	return nil
}

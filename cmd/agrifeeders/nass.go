package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/FrancyJGLisboa/agri-feeders/internal/adapter/census"
	"github.com/FrancyJGLisboa/agri-feeders/internal/adapter/nass"
	"github.com/FrancyJGLisboa/agri-feeders/internal/domain"
	"github.com/FrancyJGLisboa/agri-feeders/internal/georef"
	"github.com/FrancyJGLisboa/agri-feeders/internal/pipeline"
)

var (
	nassCrop  string
	nassStart int
	nassEnd   int
)

var nassCmd = &cobra.Command{
	Use:   "nass",
	Short: "Extract US county crop history from USDA NASS QuickStats",
	Long: `Extract a county-level crop history dataset from the USDA NASS
QuickStats API and write it as CSV, Parquet, and JSON.

Supported crops: corn, soybeans, wheat, cotton. Target states come from
the config profile (default is the twelve Corn Belt states).

Requires NASS_API_KEY in the environment or .env file.`,
	Example: `  agrifeeders nass --crop corn --start 2020 --end 2023
  agrifeeders nass --crop soybeans --start 2022 --end 2022`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := validateYears(nassStart, nassEnd); err != nil {
			return err
		}
		if cfg.NASSAPIKey == "" {
			return fmt.Errorf("NASS_API_KEY is not set; request one at https://quickstats.nass.usda.gov/api")
		}

		client := nass.NewClient(nass.DefaultBaseURL, cfg.NASSAPIKey, cfg.HTTPTimeout, logger)
		gaz := census.NewClient(census.DefaultURL, cfg.HTTPTimeout, logger)
		store := georef.NewStore(cfg.CacheDir, domain.Clock(), logger, metrics)

		job := pipeline.NewNASSJob(client, gaz, store, logger, metrics,
			cfg.OutputDir, cfg.RequestDelay, cfg.CornBeltStates)
		return runJob("nass", func(ctx context.Context) error {
			return job.Run(ctx, nassCrop, nassStart, nassEnd)
		})
	},
}

func init() {
	nassCmd.Flags().StringVarP(&nassCrop, "crop", "c", "", "crop name (e.g. corn, soybeans)")
	nassCmd.Flags().IntVarP(&nassStart, "start", "s", 0, "start year")
	nassCmd.Flags().IntVarP(&nassEnd, "end", "e", 0, "end year")
	_ = nassCmd.MarkFlagRequired("crop")
	_ = nassCmd.MarkFlagRequired("start")
	_ = nassCmd.MarkFlagRequired("end")

	rootCmd.AddCommand(nassCmd)
}

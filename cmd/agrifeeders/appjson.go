package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/FrancyJGLisboa/agri-feeders/internal/pipeline"
)

var (
	appjsonSource string
	appjsonCrop   string
	appjsonIn     string
	appjsonOut    string
)

var appjsonCmd = &cobra.Command{
	Use:   "appjson",
	Short: "Convert a wide crop dataset into the nested app JSON layout",
	Long: `Read a wide per-region dataset (the JSON output of the sidra or nass
jobs) and reshape it into the nested region → year → value structure the
front-end consumes, keyed by slugified region names.`,
	Example: `  agrifeeders appjson --source ibge --crop soja --in data/dataset_soja_2020_2023.json --out data/app_soja.json
  agrifeeders appjson --source nass --crop corn --in data/dataset_us_corn_2020_2023.json --out data/app_corn.json`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if appjsonSource != pipeline.SourceIBGE && appjsonSource != pipeline.SourceNASS {
			return fmt.Errorf("unknown source %q (want %s or %s)",
				appjsonSource, pipeline.SourceIBGE, pipeline.SourceNASS)
		}

		job := pipeline.NewAppJSONJob(logger, metrics)
		return runJob("appjson", func(ctx context.Context) error {
			return job.Run(ctx, appjsonSource, appjsonCrop, appjsonIn, appjsonOut)
		})
	},
}

func init() {
	appjsonCmd.Flags().StringVar(&appjsonSource, "source", "", "dataset source (ibge or nass)")
	appjsonCmd.Flags().StringVarP(&appjsonCrop, "crop", "c", "", "crop name used in the output keys")
	appjsonCmd.Flags().StringVarP(&appjsonIn, "in", "i", "", "input dataset JSON path")
	appjsonCmd.Flags().StringVarP(&appjsonOut, "out", "o", "", "output app JSON path")
	_ = appjsonCmd.MarkFlagRequired("source")
	_ = appjsonCmd.MarkFlagRequired("crop")
	_ = appjsonCmd.MarkFlagRequired("in")
	_ = appjsonCmd.MarkFlagRequired("out")

	rootCmd.AddCommand(appjsonCmd)
}

package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/FrancyJGLisboa/agri-feeders/internal/pipeline"
)

var calendarWorkbook string

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Convert the US planting calendar workbook into per-crop JSON",
	Long: `Read the corn and soybean sheets from the planting calendar workbook
and write per-crop and combined JSON files keyed by planted year and
state, with month-day planting dates.`,
	Example: `  agrifeeders calendar --workbook refs/us_planting_calendar.xlsx`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		job := pipeline.NewCalendarJob(logger, metrics, cfg.OutputDir)
		return runJob("calendar", func(ctx context.Context) error {
			return job.Run(ctx, calendarWorkbook)
		})
	},
}

func init() {
	calendarCmd.Flags().StringVarP(&calendarWorkbook, "workbook", "w", "", "planting calendar .xlsx path")
	_ = calendarCmd.MarkFlagRequired("workbook")

	rootCmd.AddCommand(calendarCmd)
}

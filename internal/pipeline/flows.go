package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/FrancyJGLisboa/agri-feeders/internal/adapter/cftc"
	"github.com/FrancyJGLisboa/agri-feeders/internal/dataset"
	"github.com/FrancyJGLisboa/agri-feeders/internal/domain"
	"github.com/FrancyJGLisboa/agri-feeders/internal/observability"
)

// keepWeeks is the trailing window of weekly flows the output retains.
const keepWeeks = 20

// FlowsJob computes weekly hedge-fund net flows by commodity sector from
// CFTC disaggregated COT archives.
type FlowsJob struct {
	client  *cftc.Client
	logger  *slog.Logger
	metrics *observability.Metrics

	outputDir string
}

// NewFlowsJob wires a flows run.
func NewFlowsJob(client *cftc.Client, logger *slog.Logger, metrics *observability.Metrics, outputDir string) *FlowsJob {
	return &FlowsJob{client: client, logger: logger, metrics: metrics, outputDir: outputDir}
}

// flowsEnvelope is the JSON output shape: the rows plus provenance
// metadata for the consuming dashboard.
type flowsEnvelope struct {
	Metadata flowsMetadata    `json:"metadata"`
	Data     []domain.FlowRow `json:"data"`
}

type flowsMetadata struct {
	GeneratedAt string `json:"generated_at"`
	Source      string `json:"source"`
	Unit        string `json:"unit"`
}

// Run downloads the current and previous year's archives (both are needed
// to guarantee a full 20-week window early in the year), computes weekly
// sector flows, and writes flows_raw.csv and flows_raw.json. A single
// missing year is tolerated; the run fails when no archive loads.
func (j *FlowsJob) Run(ctx context.Context) error {
	defer j.observeDuration(time.Now())

	currentYear := domain.Now().Year()

	var records []domain.COTRecord
	loaded := 0
	for _, year := range []int{currentYear - 1, currentYear} {
		recs, err := j.client.FetchYear(ctx, year)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			j.metrics.APIRequests.WithLabelValues("cftc", "error").Inc()
			j.logger.Warn("could not load COT archive", "year", year, "error", err)
			continue
		}
		j.metrics.APIRequests.WithLabelValues("cftc", "success").Inc()
		j.logger.Info("COT archive loaded", "year", year, "records", len(recs))
		records = append(records, recs...)
		loaded++
	}
	if loaded == 0 {
		return fmt.Errorf("no COT data loaded for %d-%d", currentYear-1, currentYear)
	}

	rows := domain.ComputeWeeklyFlows(records, keepWeeks)
	if len(rows) == 0 {
		return fmt.Errorf("no sector flows within the last %d weeks", keepWeeks)
	}
	j.logger.Info("weekly flows computed", "weeks", len(rows))

	if err := ensureDir(j.outputDir); err != nil {
		return err
	}

	csvPath := filepath.Join(j.outputDir, "flows_raw.csv")
	if err := dataset.WriteCSV(csvPath, rows); err != nil {
		return err
	}
	j.metrics.RowsWritten.WithLabelValues("csv").Add(float64(len(rows)))

	envelope := flowsEnvelope{
		Metadata: flowsMetadata{
			GeneratedAt: domain.Now().Format(time.RFC3339),
			Source:      "CFTC",
			Unit:        "thousand_contracts",
		},
		Data: rows,
	}
	jsonPath := filepath.Join(j.outputDir, "flows_raw.json")
	if err := dataset.WriteJSON(jsonPath, envelope); err != nil {
		return err
	}
	j.metrics.RowsWritten.WithLabelValues("json").Add(float64(len(rows)))

	j.logger.Info("flows pipeline complete", "csv", csvPath, "json", jsonPath)
	return nil
}

func (j *FlowsJob) observeDuration(start time.Time) {
	j.metrics.JobDuration.WithLabelValues("flows").Observe(time.Since(start).Seconds())
}

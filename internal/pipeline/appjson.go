package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/FrancyJGLisboa/agri-feeders/internal/dataset"
	"github.com/FrancyJGLisboa/agri-feeders/internal/domain"
	"github.com/FrancyJGLisboa/agri-feeders/internal/observability"
)

// Dataset source kinds accepted by the appjson job.
const (
	SourceIBGE = "ibge"
	SourceNASS = "nass"
)

// AppJSONJob converts a flat dataset JSON (sidra or nass output) into the
// hierarchical structure the mapping app consumes.
type AppJSONJob struct {
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewAppJSONJob wires an appjson run.
func NewAppJSONJob(logger *slog.Logger, metrics *observability.Metrics) *AppJSONJob {
	return &AppJSONJob{logger: logger, metrics: metrics}
}

// Run reads the flat rows, folds them into the app structure, and writes
// compact JSON. Rows without coordinates are dropped; IBGE values convert
// back to base units while NASS values stay imperial.
func (j *AppJSONJob) Run(_ context.Context, source, crop, inPath, outPath string) error {
	defer j.observeDuration(time.Now())

	out := domain.NewAppDataset(crop)

	var used, total int
	switch source {
	case SourceIBGE:
		rows, err := readRows[domain.MunicipalityRow](inPath)
		if err != nil {
			return err
		}
		total = len(rows)
		for _, row := range rows {
			if out.AddMunicipalityRow(crop, row) {
				used++
			}
		}
	case SourceNASS:
		rows, err := readRows[domain.CountyRow](inPath)
		if err != nil {
			return err
		}
		total = len(rows)
		for _, row := range rows {
			if out.AddCountyRow(crop, row) {
				used++
			}
		}
	default:
		return fmt.Errorf("unknown source %q (want %s or %s)", source, SourceIBGE, SourceNASS)
	}

	if err := dataset.WriteJSONCompact(outPath, out); err != nil {
		return err
	}
	j.metrics.RowsWritten.WithLabelValues("json").Add(float64(used))

	j.logger.Info("app JSON written",
		"output", outPath,
		"rows_processed", used,
		"rows_skipped", total-used,
		"regions", len(out.Municipios),
		"years", len(out.Years(crop)),
	)
	return nil
}

func (j *AppJSONJob) observeDuration(start time.Time) {
	j.metrics.JobDuration.WithLabelValues("appjson").Observe(time.Since(start).Seconds())
}

func readRows[T any](path string) ([]T, error) {
	var rows []T
	if err := dataset.ReadJSON(path, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

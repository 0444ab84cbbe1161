package pipeline

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/FrancyJGLisboa/agri-feeders/internal/observability"
)

// FilterJob drops zero-value rows from a dataset CSV. It works on the raw
// CSV rather than typed rows so it applies to any dataset that carries the
// named column.
type FilterJob struct {
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewFilterJob wires a filter run.
func NewFilterJob(logger *slog.Logger, metrics *observability.Metrics) *FilterJob {
	return &FilterJob{logger: logger, metrics: metrics}
}

// Run reads inPath, drops rows whose column value is zero, and writes the
// remainder to outPath. Pass inPath as outPath to filter in place.
func (j *FilterJob) Run(_ context.Context, inPath, outPath, column string) error {
	defer j.observeDuration(time.Now())

	data, err := os.ReadFile(inPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", inPath, err)
	}

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		return fmt.Errorf("parse %s: %w", inPath, err)
	}
	if len(records) == 0 {
		return fmt.Errorf("%s is empty", inPath)
	}

	col := -1
	for i, name := range records[0] {
		if name == column {
			col = i
			break
		}
	}
	if col < 0 {
		return fmt.Errorf("%s has no column %q", inPath, column)
	}

	kept := records[:1]
	removed := 0
	for _, row := range records[1:] {
		if col < len(row) {
			if v, err := strconv.ParseFloat(row[col], 64); err == nil && v == 0 {
				removed++
				continue
			}
		}
		kept = append(kept, row)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", outPath, err)
	}
	defer out.Close()

	w := csv.NewWriter(out)
	if err := w.WriteAll(kept); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	j.metrics.RowsWritten.WithLabelValues("csv").Add(float64(len(kept) - 1))

	j.logger.Info("dataset filtered",
		"input", inPath,
		"output", outPath,
		"column", column,
		"rows_before", len(records)-1,
		"rows_removed", removed,
		"rows_after", len(kept)-1,
	)
	return nil
}

func (j *FilterJob) observeDuration(start time.Time) {
	j.metrics.JobDuration.WithLabelValues("filter").Observe(time.Since(start).Seconds())
}

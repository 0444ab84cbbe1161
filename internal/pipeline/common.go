// Package pipeline orchestrates the extraction jobs: each job is a bounded
// extract → reshape → write run over one upstream source.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/FrancyJGLisboa/agri-feeders/internal/dataset"
	"github.com/FrancyJGLisboa/agri-feeders/internal/observability"
)

// sleepWithContext sleeps for d unless the context is cancelled first.
// Returns false on cancellation so sweep loops can bail out mid-state.
func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// writeDataset writes rows as CSV, Parquet, and JSON next to each other
// under base (without extension), recording per-format row counts.
func writeDataset[T any](base string, rows []T, metrics *observability.Metrics) error {
	if err := dataset.WriteCSV(base+".csv", rows); err != nil {
		return err
	}
	metrics.RowsWritten.WithLabelValues("csv").Add(float64(len(rows)))

	if err := dataset.WriteParquet(base+".parquet", rows); err != nil {
		return err
	}
	metrics.RowsWritten.WithLabelValues("parquet").Add(float64(len(rows)))

	if err := dataset.WriteJSON(base+".json", rows); err != nil {
		return err
	}
	metrics.RowsWritten.WithLabelValues("json").Add(float64(len(rows)))

	return nil
}

// ensureDir creates the job's output directory.
func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir %s: %w", dir, err)
	}
	return nil
}

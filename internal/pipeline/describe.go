package pipeline

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"math"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/FrancyJGLisboa/agri-feeders/internal/observability"
)

// DescribeJob summarizes a dataset CSV: shape, year and state coverage,
// geographic extents, and totals for the numeric columns. Output is log
// lines; the job writes no file.
type DescribeJob struct {
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewDescribeJob wires a describe run.
func NewDescribeJob(logger *slog.Logger, metrics *observability.Metrics) *DescribeJob {
	return &DescribeJob{logger: logger, metrics: metrics}
}

// Run reads the CSV and logs a summary. Columns it knows about (year,
// state, region, latitude/longitude, numeric measures) are summarized when
// present; everything else only counts toward the column total.
func (j *DescribeJob) Run(_ context.Context, path string) error {
	defer j.observeDuration(time.Now())

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	if len(records) < 1 {
		return fmt.Errorf("%s is empty", path)
	}

	header := records[0]
	rows := records[1:]
	col := columnIndex(header)

	j.logger.Info("dataset overview", "path", path, "rows", len(rows), "columns", len(header))

	if i, ok := col["year"]; ok {
		minYear, maxYear := textRange(rows, i)
		j.logger.Info("year coverage", "from", minYear, "to", maxYear)
	}

	if i, ok := firstOf(col, "state_name", "state_alpha"); ok {
		counts := valueCounts(rows, i)
		states := make([]string, 0, len(counts))
		for s := range counts {
			states = append(states, s)
		}
		sort.Strings(states)
		for _, s := range states {
			j.logger.Info("state coverage", "state", s, "rows", counts[s])
		}
	}

	if i, ok := firstOf(col, "region_name", "county_name"); ok {
		j.logger.Info("region coverage", "distinct_regions", len(valueCounts(rows, i)))
	}

	if latIdx, ok := col["latitude"]; ok {
		if lonIdx, ok := col["longitude"]; ok {
			latMin, latMax, latN := numericRange(rows, latIdx)
			lonMin, lonMax, _ := numericRange(rows, lonIdx)
			j.logger.Info("geographic coverage",
				"rows_with_coordinates", latN,
				"lat_min", round4(latMin), "lat_max", round4(latMax),
				"lon_min", round4(lonMin), "lon_max", round4(lonMax),
			)
		}
	}

	for _, name := range []string{
		"production_1000t", "production_1000bu",
		"area_planted_1000ha", "area_planted_1000acres",
	} {
		if i, ok := col[name]; ok {
			j.logger.Info("column total", "column", name, "sum", round2(columnSum(rows, i)))
		}
	}
	for _, name := range []string{"yield_kg_ha", "yield_bu_acre"} {
		if i, ok := col[name]; ok {
			j.logger.Info("column mean", "column", name, "mean", round2(columnMean(rows, i)))
		}
	}

	return nil
}

func (j *DescribeJob) observeDuration(start time.Time) {
	j.metrics.JobDuration.WithLabelValues("describe").Observe(time.Since(start).Seconds())
}

func columnIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[name] = i
	}
	return idx
}

func firstOf(col map[string]int, names ...string) (int, bool) {
	for _, n := range names {
		if i, ok := col[n]; ok {
			return i, true
		}
	}
	return 0, false
}

func valueCounts(rows [][]string, i int) map[string]int {
	counts := make(map[string]int)
	for _, row := range rows {
		if i < len(row) && row[i] != "" {
			counts[row[i]]++
		}
	}
	return counts
}

func textRange(rows [][]string, i int) (string, string) {
	var lo, hi string
	for _, row := range rows {
		if i >= len(row) || row[i] == "" {
			continue
		}
		if lo == "" || row[i] < lo {
			lo = row[i]
		}
		if row[i] > hi {
			hi = row[i]
		}
	}
	return lo, hi
}

func numericRange(rows [][]string, i int) (lo, hi float64, n int) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, row := range rows {
		if i >= len(row) {
			continue
		}
		v, err := strconv.ParseFloat(row[i], 64)
		if err != nil {
			continue
		}
		n++
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if n == 0 {
		return 0, 0, 0
	}
	return lo, hi, n
}

func columnSum(rows [][]string, i int) float64 {
	var sum float64
	for _, row := range rows {
		if i >= len(row) {
			continue
		}
		if v, err := strconv.ParseFloat(row[i], 64); err == nil {
			sum += v
		}
	}
	return sum
}

func columnMean(rows [][]string, i int) float64 {
	var sum float64
	n := 0
	for _, row := range rows {
		if i >= len(row) {
			continue
		}
		if v, err := strconv.ParseFloat(row[i], 64); err == nil {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func round4(v float64) float64 { return math.Round(v*10000) / 10000 }

package pipeline

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FrancyJGLisboa/agri-feeders/internal/observability"
)

func newTestMetrics() *observability.Metrics {
	return observability.NewMetrics()
}

func TestDescribeJob_Run(t *testing.T) {
	body := "year,region_name,state_name,latitude,longitude,yield_kg_ha,production_1000t\n" +
		"2022,Abaré,BA,-8.72,-39.11,3200,5.0\n" +
		"2023,Acajutiba,BA,,,2900,1.2\n"
	path := filepath.Join(t.TempDir(), "dataset.csv")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	job := NewDescribeJob(logger, newTestMetrics())
	require.NoError(t, job.Run(context.Background(), path))
}

func TestDescribeJob_MissingFile(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	job := NewDescribeJob(logger, newTestMetrics())
	require.Error(t, job.Run(context.Background(), filepath.Join(t.TempDir(), "missing.csv")))
}

func TestTextRange(t *testing.T) {
	rows := [][]string{{"2022"}, {"2020"}, {"2023"}, {""}}
	lo, hi := textRange(rows, 0)
	assert.Equal(t, "2020", lo)
	assert.Equal(t, "2023", hi)
}

func TestNumericRange(t *testing.T) {
	rows := [][]string{{"-8.72"}, {"1.5"}, {"not a number"}, {""}}
	lo, hi, n := numericRange(rows, 0)
	assert.Equal(t, -8.72, lo)
	assert.Equal(t, 1.5, hi)
	assert.Equal(t, 2, n)

	lo, hi, n = numericRange([][]string{{"x"}}, 0)
	assert.Zero(t, lo)
	assert.Zero(t, hi)
	assert.Zero(t, n)
}

func TestColumnSumAndMean(t *testing.T) {
	rows := [][]string{{"2"}, {"4"}, {"bad"}}
	assert.Equal(t, 6.0, columnSum(rows, 0))
	assert.Equal(t, 3.0, columnMean(rows, 0))
	assert.Zero(t, columnMean(nil, 0))
}

func TestValueCounts(t *testing.T) {
	rows := [][]string{{"BA"}, {"BA"}, {"SP"}, {""}}
	counts := valueCounts(rows, 0)
	assert.Equal(t, map[string]int{"BA": 2, "SP": 1}, counts)
}

package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/FrancyJGLisboa/agri-feeders/internal/adapter/geobr"
	"github.com/FrancyJGLisboa/agri-feeders/internal/adapter/sidra"
	"github.com/FrancyJGLisboa/agri-feeders/internal/domain"
	"github.com/FrancyJGLisboa/agri-feeders/internal/georef"
	"github.com/FrancyJGLisboa/agri-feeders/internal/observability"
)

// municipioGeoMaxAge is the freshness window for the municipality
// coordinate reference; municipality coordinates rarely change.
const municipioGeoMaxAge = 90 * 24 * time.Hour

// SIDRAJob extracts a municipal crop history dataset from IBGE SIDRA.
type SIDRAJob struct {
	client  *sidra.Client
	coords  *geobr.Client
	geo     *georef.Store
	logger  *slog.Logger
	metrics *observability.Metrics

	outputDir string
	delay     time.Duration
	states    []string
}

// NewSIDRAJob wires a sidra extraction run.
func NewSIDRAJob(client *sidra.Client, coords *geobr.Client, geo *georef.Store,
	logger *slog.Logger, metrics *observability.Metrics,
	outputDir string, delay time.Duration, states []string) *SIDRAJob {
	return &SIDRAJob{
		client:    client,
		coords:    coords,
		geo:       geo,
		logger:    logger,
		metrics:   metrics,
		outputDir: outputDir,
		delay:     delay,
		states:    states,
	}
}

// Run sweeps every year × state, pivots the observations into wide rows,
// merges municipality coordinates, and writes the dataset in all three
// formats. Failing states are logged and skipped; the run fails only when
// nothing at all was collected.
func (j *SIDRAJob) Run(ctx context.Context, crop string, start, end int) error {
	defer j.observeDuration(time.Now())

	query, err := sidra.QueryForCrop(crop)
	if err != nil {
		return err
	}

	geoIndex := j.loadGeoReference(ctx)

	j.logger.Info("sidra extraction starting",
		"crop", crop, "start", start, "end", end, "states", j.states)

	var all []domain.CropObservation
	for year := start; year <= end; year++ {
		j.logger.Info("processing year", "year", year)

		for _, uf := range j.states {
			obs, err := j.client.FetchStateYear(ctx, query, year, uf)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				j.metrics.APIRequests.WithLabelValues("sidra", "error").Inc()
				j.logger.Warn("state fetch failed, skipping", "state", uf, "year", year, "error", err)
				continue
			}
			if len(obs) == 0 {
				j.metrics.APIRequests.WithLabelValues("sidra", "empty").Inc()
				j.logger.Warn("no data for state", "state", uf, "year", year)
			} else {
				j.metrics.APIRequests.WithLabelValues("sidra", "success").Inc()
				j.logger.Info("state downloaded", "state", uf, "year", year, "observations", len(obs))
				all = append(all, obs...)
			}

			if !sleepWithContext(ctx, j.delay) {
				return ctx.Err()
			}
		}
	}

	if len(all) == 0 {
		return fmt.Errorf("no data collected for %s %d-%d", crop, start, end)
	}

	rows := domain.BuildMunicipalityRows(all, geoIndex)

	if err := ensureDir(j.outputDir); err != nil {
		return err
	}
	base := filepath.Join(j.outputDir, fmt.Sprintf("dataset_%s_%d_%d", crop, start, end))
	if err := writeDataset(base, rows, j.metrics); err != nil {
		return err
	}

	j.logger.Info("sidra extraction complete",
		"rows", len(rows), "with_coordinates", countMunicipalityCoords(rows), "output", base)
	return nil
}

// loadGeoReference loads municipality coordinates through the disk cache.
// A failed refresh degrades to a dataset without coordinates rather than
// aborting the extraction.
func (j *SIDRAJob) loadGeoReference(ctx context.Context) map[string]domain.GeoRef {
	refs, err := j.geo.Load(ctx, "municipios_geo", municipioGeoMaxAge, j.coords.Fetch)
	if err != nil {
		j.metrics.APIRequests.WithLabelValues("geobr", "error").Inc()
		j.logger.Warn("could not load municipality coordinates, output will lack geolocation", "error", err)
		return nil
	}
	j.metrics.APIRequests.WithLabelValues("geobr", "success").Inc()
	return domain.GeoIndex(refs)
}

func (j *SIDRAJob) observeDuration(start time.Time) {
	j.metrics.JobDuration.WithLabelValues("sidra").Observe(time.Since(start).Seconds())
}

func countMunicipalityCoords(rows []domain.MunicipalityRow) int {
	n := 0
	for _, r := range rows {
		if r.Latitude != nil {
			n++
		}
	}
	return n
}

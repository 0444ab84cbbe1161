package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/FrancyJGLisboa/agri-feeders/internal/adapter/census"
	"github.com/FrancyJGLisboa/agri-feeders/internal/adapter/nass"
	"github.com/FrancyJGLisboa/agri-feeders/internal/domain"
	"github.com/FrancyJGLisboa/agri-feeders/internal/georef"
	"github.com/FrancyJGLisboa/agri-feeders/internal/observability"
)

// countyGeoMaxAge is the freshness window for the Gazetteer county
// reference.
const countyGeoMaxAge = 30 * 24 * time.Hour

// NASSJob extracts a county crop history dataset from USDA QuickStats.
type NASSJob struct {
	client  *nass.Client
	gaz     *census.Client
	geo     *georef.Store
	logger  *slog.Logger
	metrics *observability.Metrics

	outputDir string
	delay     time.Duration
	states    []string
}

// NewNASSJob wires a nass extraction run.
func NewNASSJob(client *nass.Client, gaz *census.Client, geo *georef.Store,
	logger *slog.Logger, metrics *observability.Metrics,
	outputDir string, delay time.Duration, states []string) *NASSJob {
	return &NASSJob{
		client:    client,
		gaz:       gaz,
		geo:       geo,
		logger:    logger,
		metrics:   metrics,
		outputDir: outputDir,
		delay:     delay,
		states:    states,
	}
}

// Run sweeps every year × Corn Belt state, pivots the county observations
// into wide imperial-unit rows, merges the Gazetteer geo reference, and
// writes the dataset in all three formats.
func (j *NASSJob) Run(ctx context.Context, crop string, start, end int) error {
	defer j.observeDuration(time.Now())

	commodity, err := nass.CommodityForCrop(crop)
	if err != nil {
		return err
	}

	geoIndex := j.loadGeoReference(ctx)

	j.logger.Info("nass extraction starting",
		"crop", crop, "commodity", commodity, "start", start, "end", end)

	var all []domain.CropObservation
	for year := start; year <= end; year++ {
		j.logger.Info("processing year", "year", year)

		for _, state := range j.states {
			if !sleepWithContext(ctx, j.delay) {
				return ctx.Err()
			}

			obs, err := j.client.FetchStateYear(ctx, commodity, state, year)
			switch {
			case errors.Is(err, nass.ErrTooManyRecords):
				j.metrics.APIRequests.WithLabelValues("nass", "empty").Inc()
				j.logger.Warn("too many records, skipping", "state", state, "year", year)
				continue
			case err != nil:
				if ctx.Err() != nil {
					return ctx.Err()
				}
				j.metrics.APIRequests.WithLabelValues("nass", "error").Inc()
				j.logger.Warn("state fetch failed, skipping", "state", state, "year", year, "error", err)
				continue
			}

			if len(obs) == 0 {
				j.metrics.APIRequests.WithLabelValues("nass", "empty").Inc()
				j.logger.Warn("no data for state", "state", state, "year", year)
				continue
			}
			j.metrics.APIRequests.WithLabelValues("nass", "success").Inc()
			j.logger.Info("state downloaded", "state", state, "year", year, "observations", len(obs))
			all = append(all, obs...)
		}
	}

	if len(all) == 0 {
		return fmt.Errorf("no data collected for %s %d-%d", crop, start, end)
	}

	rows := domain.BuildCountyRows(all, geoIndex)

	if err := ensureDir(j.outputDir); err != nil {
		return err
	}
	base := filepath.Join(j.outputDir, fmt.Sprintf("dataset_us_%s_%d_%d", crop, start, end))
	if err := writeDataset(base, rows, j.metrics); err != nil {
		return err
	}

	j.logger.Info("nass extraction complete",
		"rows", len(rows), "with_coordinates", countCountyCoords(rows), "output", base)
	return nil
}

// loadGeoReference loads the county geo reference through the disk cache.
// Without it the dataset keeps zero land area and null coordinates.
func (j *NASSJob) loadGeoReference(ctx context.Context) map[string]domain.GeoRef {
	refs, err := j.geo.Load(ctx, "county_geo_ref", countyGeoMaxAge, j.gaz.Fetch)
	if err != nil {
		j.metrics.APIRequests.WithLabelValues("census", "error").Inc()
		j.logger.Warn("could not load county geo reference, output will lack geolocation", "error", err)
		return nil
	}
	j.metrics.APIRequests.WithLabelValues("census", "success").Inc()
	return domain.GeoIndex(refs)
}

func (j *NASSJob) observeDuration(start time.Time) {
	j.metrics.JobDuration.WithLabelValues("nass").Observe(time.Since(start).Seconds())
}

func countCountyCoords(rows []domain.CountyRow) int {
	n := 0
	for _, r := range rows {
		if r.Latitude != nil {
			n++
		}
	}
	return n
}

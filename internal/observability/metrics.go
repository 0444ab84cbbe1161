package observability

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Metrics holds the Prometheus counters and histograms for the extraction
// jobs. They live on a private registry because a batch run has no scrape
// endpoint; completed runs can push to a Pushgateway instead.
type Metrics struct {
	registry *prometheus.Registry

	APIRequests  *prometheus.CounterVec   // labels: source={sidra,nass,cftc,census,geobr}, outcome={success,error,empty}
	RowsWritten  *prometheus.CounterVec   // labels: format={csv,parquet,json}
	CacheLookups *prometheus.CounterVec   // labels: reference, result={hit,miss}
	JobDuration  *prometheus.HistogramVec // labels: job
}

// NewMetrics creates and registers all job metrics on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		APIRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "agri_feeders",
			Name:      "api_requests_total",
			Help:      "Upstream API requests by source and outcome.",
		}, []string{"source", "outcome"}),
		RowsWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "agri_feeders",
			Name:      "rows_written_total",
			Help:      "Dataset rows written by output format.",
		}, []string{"format"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "agri_feeders",
			Name:      "georef_cache_total",
			Help:      "Geo reference cache lookups by reference and result.",
		}, []string{"reference", "result"}),
		JobDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "agri_feeders",
			Name:      "job_duration_seconds",
			Help:      "Wall-clock duration of a complete job run.",
			Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600, 1800},
		}, []string{"job"}),
	}

	m.registry.MustRegister(m.APIRequests, m.RowsWritten, m.CacheLookups, m.JobDuration)
	return m
}

// Push publishes the registry to a Pushgateway, grouped by job name.
func (m *Metrics) Push(ctx context.Context, url, job string) error {
	return push.New(url, job).Gatherer(m.registry).PushContext(ctx)
}

// Package metrics records resolution statistics with Prometheus collectors.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.trai.ch/libload/internal/core/domain"
	"go.trai.ch/libload/internal/core/ports"
	"go.trai.ch/zerr"
)

const namespace = "libload"

// Recorder implements ports.Metrics on a private registry, so that several
// recorders can coexist in one process and tests start from zero.
type Recorder struct {
	registry *prometheus.Registry

	outcomes           *prometheus.CounterVec
	cacheLookups       *prometheus.CounterVec
	evictions          *prometheus.CounterVec
	fetchedBytes       prometheus.Counter
	fetchDuration      prometheus.Histogram
	resolutionDuration prometheus.Histogram
}

// NewRecorder creates a Recorder with all collectors registered.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		outcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "outcomes_total",
				Help:      "Number of resolved artifacts by result and failing stage.",
			},
			[]string{"result", "stage"},
		),
		cacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_lookups_total",
				Help:      "Number of cache lookups by result.",
			},
			[]string{"result"},
		),
		evictions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_evictions_total",
				Help:      "Number of corrupt cache entries removed, by reason.",
			},
			[]string{"reason"},
		),
		fetchedBytes: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "fetched_bytes_total",
				Help:      "Total number of bytes downloaded.",
			},
		),
		fetchDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "fetch_duration_seconds",
				Help:      "Time taken to download an artifact.",
				Buckets:   prometheus.DefBuckets,
			},
		),
		resolutionDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "resolution_duration_seconds",
				Help:      "Time taken to resolve and activate an artifact.",
				Buckets:   prometheus.DefBuckets,
			},
		),
	}

	r.registry.MustRegister(
		r.outcomes,
		r.cacheLookups,
		r.evictions,
		r.fetchedBytes,
		r.fetchDuration,
		r.resolutionDuration,
	)
	return r
}

// Registry returns the registry holding the collectors.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveOutcome records a terminal outcome. Outcomes that got past the
// locate stage also count as a cache hit or miss.
func (r *Recorder) ObserveOutcome(outcome domain.Outcome, elapsed time.Duration) {
	result := "activated"
	if !outcome.OK() {
		result = "failed"
	}
	stage := string(outcome.Stage)
	if stage == "" {
		stage = "none"
	}
	r.outcomes.WithLabelValues(result, stage).Inc()
	r.resolutionDuration.Observe(elapsed.Seconds())

	switch {
	case outcome.CacheHit:
		r.cacheLookups.WithLabelValues("hit").Inc()
	case outcome.Stage != domain.StageLocate && outcome.Stage != domain.StageCache:
		r.cacheLookups.WithLabelValues("miss").Inc()
	}
}

// ObserveEviction records a corrupt cache entry being removed.
func (r *Recorder) ObserveEviction(reason string) {
	r.evictions.WithLabelValues(reason).Inc()
}

// ObserveFetch records a completed download.
func (r *Recorder) ObserveFetch(result domain.FetchResult, elapsed time.Duration) {
	r.fetchedBytes.Add(float64(result.Bytes))
	r.fetchDuration.Observe(elapsed.Seconds())
}

// WriteTextfile writes the current values in the node-exporter textfile format.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrMetricsWriteFailed.Error()), "path", path)
	}
	return nil
}

// Ensure Recorder satisfies the interface.
var _ ports.Metrics = (*Recorder)(nil)

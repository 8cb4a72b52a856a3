// Package metrics exposes Prometheus metrics for configuration validation
// activity: load outcomes, cache effectiveness, per-field failure counts,
// and scenario runs.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Label values for load and scenario outcomes.
const (
	ResultValid   = "valid"
	ResultInvalid = "invalid"
)

// Config configures metric registration.
type Config struct {
	// Namespace is the metric name prefix (default "atlas").
	Namespace string

	// Subsystem is the secondary prefix (default "config").
	Subsystem string

	// LoadDurationBuckets are the histogram buckets for load durations in
	// seconds. Validation is in-memory work, so the default buckets are
	// sub-millisecond to low-millisecond.
	LoadDurationBuckets []float64
}

// Collector owns the Prometheus registry and every validation metric.
type Collector struct {
	registry *prometheus.Registry

	loadsTotal        *prometheus.CounterVec
	cacheHitsTotal    prometheus.Counter
	cacheMissesTotal  prometheus.Counter
	failuresTotal     *prometheus.CounterVec
	scenarioRunsTotal *prometheus.CounterVec
	loadDuration      prometheus.Histogram
}

// NewCollector creates a collector and registers its metrics. If registry is
// nil a fresh one is created.
func NewCollector(cfg Config, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	if cfg.Namespace == "" {
		cfg.Namespace = "atlas"
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = "config"
	}
	if len(cfg.LoadDurationBuckets) == 0 {
		cfg.LoadDurationBuckets = []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.05}
	}

	c := &Collector{
		registry: registry,

		loadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "loads_total",
				Help:      "Total number of settings loads by result",
			},
			[]string{"result"},
		),

		cacheHitsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "cache_hits_total",
				Help:      "Total number of settings cache hits",
			},
		),

		cacheMissesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "cache_misses_total",
				Help:      "Total number of settings cache misses",
			},
		),

		failuresTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "validation_failures_total",
				Help:      "Total number of validation failures by field",
			},
			[]string{"field"},
		),

		scenarioRunsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "scenario_runs_total",
				Help:      "Total number of scenario runs by result",
			},
			[]string{"result"},
		),

		loadDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "load_duration_seconds",
				Help:      "Settings load and validation duration in seconds",
				Buckets:   cfg.LoadDurationBuckets,
			},
		),
	}

	registry.MustRegister(
		c.loadsTotal,
		c.cacheHitsTotal,
		c.cacheMissesTotal,
		c.failuresTotal,
		c.scenarioRunsTotal,
		c.loadDuration,
	)

	return c
}

// Registry returns the underlying Prometheus registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// RecordLoad records one settings load outcome with its duration.
func (c *Collector) RecordLoad(valid bool, duration time.Duration) {
	result := ResultValid
	if !valid {
		result = ResultInvalid
	}
	c.loadsTotal.WithLabelValues(result).Inc()
	c.loadDuration.Observe(duration.Seconds())
}

// RecordCacheHit records a settings cache hit.
func (c *Collector) RecordCacheHit() {
	c.cacheHitsTotal.Inc()
}

// RecordCacheMiss records a settings cache miss.
func (c *Collector) RecordCacheMiss() {
	c.cacheMissesTotal.Inc()
}

// RecordFailure records one field-level validation failure.
func (c *Collector) RecordFailure(field string) {
	c.failuresTotal.WithLabelValues(field).Inc()
}

// RecordScenarioRun records one scenario run outcome.
func (c *Collector) RecordScenarioRun(valid bool) {
	result := ResultValid
	if !valid {
		result = ResultInvalid
	}
	c.scenarioRunsTotal.WithLabelValues(result).Inc()
}

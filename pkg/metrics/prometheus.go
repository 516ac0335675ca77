// Package metrics provides Prometheus metrics for the skill budget service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Ingestion
	ingestDocuments *prometheus.CounterVec
	ingestSkills    *prometheus.CounterVec
	ingestLatency   *prometheus.HistogramVec
	catalogSkills   *prometheus.GaugeVec
	catalogGroups   prometheus.Gauge

	// Optimizer
	optimizeRuns    *prometheus.CounterVec
	optimizeLatency prometheus.Histogram
	optimizeCells   prometheus.Histogram
	optimizeRating  prometheus.Gauge
	penaltyTotal    prometheus.Gauge

	// User edits
	skillEdits *prometheus.CounterVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Errors
	errorRateByComponent *prometheus.CounterVec
	errorRateByType      *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec
	errorLatency         *prometheus.HistogramVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "skillbudget",
		subsystem:        "planner",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
		metricPrefix:     "",
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) name(n string) string {
	if m.metricPrefix == "" {
		return n
	}
	return m.metricPrefix + "_" + n
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.customLabels)

	m.ingestDocuments = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("ingest_documents_total"),
		Help:        "Skill documents ingested by skill type and outcome (ok, warning, error)",
		ConstLabels: labels,
	}, []string{"skill_type", "outcome"})

	m.ingestSkills = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("ingest_skills_total"),
		Help:        "Canonical skill records produced by the normalizer",
		ConstLabels: labels,
	}, []string{"skill_type", "shape"})

	m.ingestLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("ingest_latency_milliseconds"),
		Help:        "Fetch plus normalize latency per skill document",
		Buckets:     []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		ConstLabels: labels,
	}, []string{"skill_type"})

	m.catalogSkills = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("catalog_skills"),
		Help:        "Skill records held in the catalog by type",
		ConstLabels: labels,
	}, []string{"skill_type"})

	m.catalogGroups = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("catalog_groups"),
		Help:        "Conceptual skills (groups) allocated so far",
		ConstLabels: labels,
	})

	m.optimizeRuns = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("optimize_runs_total"),
		Help:        "Optimize requests by outcome",
		ConstLabels: labels,
	}, []string{"outcome"})

	m.optimizeLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("optimize_latency_milliseconds"),
		Help:        "Time spent in the knapsack solver",
		Buckets:     []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
		ConstLabels: labels,
	})

	m.optimizeCells = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("optimize_dp_cells"),
		Help:        "Groups x budget cells evaluated per optimize run",
		Buckets:     prometheus.ExponentialBuckets(1000, 4, 8),
		ConstLabels: labels,
	})

	m.optimizeRating = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("optimize_last_total_rating"),
		Help:        "Total rating of the last successful optimize run",
		ConstLabels: labels,
	})

	m.penaltyTotal = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("penalty_last_total"),
		Help:        "Penalty contribution of the last optimize run",
		ConstLabels: labels,
	})

	m.skillEdits = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("skill_edits_total"),
		Help:        "User edits applied to the catalog by kind (cost, enabled, grade, reset)",
		ConstLabels: labels,
	}, []string{"kind"})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        m.name("http_requests_total"),
			Help:        "Total number of HTTP requests by endpoint and method",
			ConstLabels: labels,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        m.name("http_request_duration_milliseconds"),
			Help:        "HTTP request duration in milliseconds",
			Buckets:     m.histogramBuckets,
			ConstLabels: labels,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorRateByComponent = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        m.name("errors_by_component_total"),
			Help:        "Errors by component and error type",
			ConstLabels: labels,
		},
		[]string{"component", "error_type"},
	)

	m.errorRateByType = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        m.name("errors_by_type_total"),
			Help:        "Errors by type and severity",
			ConstLabels: labels,
		},
		[]string{"error_type", "severity"},
	)

	m.errorRateByEndpoint = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        m.name("errors_by_endpoint_total"),
			Help:        "Errors by HTTP endpoint",
			ConstLabels: labels,
		},
		[]string{"endpoint", "method", "error_type"},
	)

	m.errorLatency = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        m.name("error_latency_milliseconds"),
			Help:        "Latency of failing operations in milliseconds",
			Buckets:     m.histogramBuckets,
			ConstLabels: labels,
		},
		[]string{"component", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("system_memory_usage_bytes"),
		Help:        "Current heap allocation in bytes",
		ConstLabels: labels,
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("system_goroutine_count"),
		Help:        "Current number of goroutines",
		ConstLabels: labels,
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("system_gc_pause_time_milliseconds"),
		Help:        "Average GC pause time in milliseconds",
		Buckets:     []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
		ConstLabels: labels,
	})
}

// Enabled reports whether the manager records observations.
func (m *Manager) Enabled() bool { return m.enabled }

// RefreshInterval is how often runtime gauges should be sampled.
func (m *Manager) RefreshInterval() time.Duration { return m.refreshInterval }

// RefreshInterval returns the global manager's sampling interval.
func RefreshInterval() time.Duration { return globalManager.refreshInterval }

// Ingestion Metrics Functions.

// RecordIngestDocument counts one per-type document load by outcome.
func RecordIngestDocument(skillType, outcome string) {
	if !globalManager.enabled {
		return
	}
	globalManager.ingestDocuments.WithLabelValues(skillType, outcome).Inc()
}

// RecordIngestSkills counts records produced from one document.
func RecordIngestSkills(skillType, shape string, count int) {
	if !globalManager.enabled {
		return
	}
	globalManager.ingestSkills.WithLabelValues(skillType, shape).Add(float64(count))
}

// RecordIngestLatency records fetch plus normalize latency for one document.
func RecordIngestLatency(skillType string, latencyMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.ingestLatency.WithLabelValues(skillType).Observe(latencyMs)
}

// UpdateCatalogSkills sets the number of records held for a skill type.
func UpdateCatalogSkills(skillType string, count int) {
	globalManager.catalogSkills.WithLabelValues(skillType).Set(float64(count))
}

// UpdateCatalogGroups sets the number of allocated groups.
func UpdateCatalogGroups(count int64) {
	globalManager.catalogGroups.Set(float64(count))
}

// Optimizer Metrics Functions.

// RecordOptimizeRun counts an optimize request by outcome.
func RecordOptimizeRun(outcome string) {
	if !globalManager.enabled {
		return
	}
	globalManager.optimizeRuns.WithLabelValues(outcome).Inc()
}

// RecordOptimizeLatency records solver latency in milliseconds.
func RecordOptimizeLatency(latencyMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.optimizeLatency.Observe(latencyMs)
}

// RecordOptimizeCells records the DP table size of a run.
func RecordOptimizeCells(cells int) {
	if !globalManager.enabled {
		return
	}
	globalManager.optimizeCells.Observe(float64(cells))
}

// UpdateOptimizeResult sets the rating and penalty of the last run.
func UpdateOptimizeResult(totalRating, penalty float64) {
	globalManager.optimizeRating.Set(totalRating)
	globalManager.penaltyTotal.Set(penalty)
}

// RecordSkillEdit counts a user edit by kind.
func RecordSkillEdit(kind string) {
	if !globalManager.enabled {
		return
	}
	globalManager.skillEdits.WithLabelValues(kind).Inc()
}

// HTTP Metrics Functions.

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// Error Metrics Functions.

// RecordErrorByComponent records an error for a specific component.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByType records an error by type and severity.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records an error for a specific endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorLatency records error latency.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	globalManager.errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
}

// System Metrics Functions.

// UpdateSystemMemoryUsage sets the current memory usage.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the current goroutine count.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

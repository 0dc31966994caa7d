// Package metrics provides Prometheus metrics for the VDOT coach service.
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

// Score histogram buckets spanning the published table band.
var scoreBuckets = prometheus.LinearBuckets(30, 5, 12) //nolint:gochecknoglobals // fixed bucket layout

// Manager manages all Prometheus metrics for the coach service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Core Business Metrics - What the calculator and planner actually do
	projections       prometheus.Counter
	projectionLatency prometheus.Histogram
	scoreDistribution prometheus.Histogram

	// Hand-off Metrics - The link contract between the two tools
	handoffLinksBuilt    prometheus.Counter
	handoffLinkErrors    prometheus.Counter
	handoffParses        prometheus.Counter
	handoffFieldDefaults *prometheus.CounterVec

	// Planner Metrics
	planPrefills     prometheus.Counter
	planTargetCapped prometheus.Counter
	schedules        prometheus.Counter
	schedulesPinned  prometheus.Counter

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error Metrics
	errorRateByEndpoint *prometheus.CounterVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "coach",
		subsystem:        "vdot",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
		metricPrefix:     "",
		registry:         prometheus.DefaultRegisterer,
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	// Initialize metrics
	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	// Ensure metrics are registered on the configured registry (custom by default)
	auto := promauto.With(m.registry)

	// Core Business Metrics
	m.projections = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "projections_total",
		Help:      "Total number of race projections computed",
	})

	m.projectionLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "projection_latency_milliseconds",
		Help:      "Histogram of projection latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.scoreDistribution = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "score_distribution",
		Help:      "Distribution of computed fitness scores across the table band",
		Buckets:   scoreBuckets,
	})

	// Hand-off Metrics
	m.handoffLinksBuilt = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "handoff_links_built_total",
		Help:      "Total number of planner hand-off links generated",
	})

	m.handoffLinkErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "handoff_link_errors_total",
		Help:      "Total number of hand-off links that could not be built",
	})

	m.handoffParses = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "handoff_parses_total",
		Help:      "Total number of hand-off payloads read by the planner",
	})

	m.handoffFieldDefaults = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "handoff_fields_defaulted_total",
			Help:      "Total number of payload fields that fell back to defaults (link quality)",
		},
		[]string{"field", "reason"},
	)

	// Planner Metrics
	m.planPrefills = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "plan_prefills_total",
		Help:      "Total number of planner forms prefilled",
	})

	m.planTargetCapped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "plan_targets_capped_total",
		Help:      "Total number of plans whose target gain was capped",
	})

	m.schedules = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "schedules_total",
		Help:      "Total number of training windows computed",
	})

	m.schedulesPinned = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "schedules_pinned_total",
		Help:      "Total number of windows pinned to the minimum week count",
	})

	// HTTP Performance Metrics - User experience indicators
	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds (user experience)",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	// Error Metrics
	m.errorRateByEndpoint = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_by_endpoint_total",
			Help:      "Total number of errors by endpoint",
		},
		[]string{"endpoint", "method", "error_type"},
	)

	// System Performance Metrics
	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_usage_bytes",
		Help:      "System memory usage in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutine_count",
		Help:      "Number of goroutines",
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_gc_pause_time_milliseconds",
		Help:      "GC pause time in milliseconds",
		Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
	})
}

// RecordProjection increments the projections counter.
func RecordProjection() {
	globalManager.projections.Inc()
}

// RecordProjectionLatency records projection latency in milliseconds.
func RecordProjectionLatency(latencyMs float64) {
	globalManager.projectionLatency.Observe(latencyMs)
}

// ObserveScore records a computed fitness score.
func ObserveScore(score float64) {
	globalManager.scoreDistribution.Observe(score)
}

// RecordHandoffLinkBuilt increments the hand-off links counter.
func RecordHandoffLinkBuilt() {
	globalManager.handoffLinksBuilt.Inc()
}

// RecordHandoffLinkError increments the hand-off link error counter.
func RecordHandoffLinkError() {
	globalManager.handoffLinkErrors.Inc()
}

// RecordHandoffParse increments the hand-off parse counter.
func RecordHandoffParse() {
	globalManager.handoffParses.Inc()
}

// RecordHandoffFieldDefaulted records a payload field falling back to its default.
func RecordHandoffFieldDefaulted(field, reason string) {
	globalManager.handoffFieldDefaults.WithLabelValues(field, reason).Inc()
}

// RecordPlanPrefill increments the plan prefill counter.
func RecordPlanPrefill() {
	globalManager.planPrefills.Inc()
}

// RecordPlanTargetCapped increments the capped target counter.
func RecordPlanTargetCapped() {
	globalManager.planTargetCapped.Inc()
}

// RecordSchedule increments the schedules counter.
func RecordSchedule() {
	globalManager.schedules.Inc()
}

// RecordSchedulePinned increments the pinned window counter.
func RecordSchedulePinned() {
	globalManager.schedulesPinned.Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// System Performance Metrics Functions.

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
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

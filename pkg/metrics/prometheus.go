// Package metrics provides Prometheus metrics for the xgflow service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// defaultXGBuckets spans per-team match xG totals.
var defaultXGBuckets = []float64{0.25, 0.5, 0.75, 1, 1.5, 2, 2.5, 3, 4, 5} //nolint:gochecknoglobals // read-only bucket layout

// Manager manages all Prometheus metrics for the xgflow service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	xgBuckets        []float64
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Reconciliation metrics
	matchesAssembled  prometheus.Counter
	assemblyErrors    prometheus.Counter
	assemblyLatency   prometheus.Histogram
	shotsProcessed    prometheus.Counter
	eventsClassified  *prometheus.CounterVec
	diagnostics       *prometheus.CounterVec
	teamXGTotal       prometheus.Histogram
	eventsMissingXG   prometheus.Counter
	matchFilesDecoded *prometheus.CounterVec
	storedTimelines   prometheus.Gauge

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error Metrics
	errorRateByType     *prometheus.CounterVec
	errorRateByEndpoint *prometheus.CounterVec
	errorLatency        *prometheus.HistogramVec

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
		namespace:        "xgflow",
		subsystem:        "timeline",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		xgBuckets:        defaultXGBuckets,
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

// NewMetricsManager is an alias of NewManager.
func NewMetricsManager(opts ...Option) *Manager {
	return NewManager(opts...)
}

func (m *Manager) name(n string) string {
	if m.metricPrefix != "" {
		return m.metricPrefix + "_" + n
	}
	return n
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)
	constLabels := prometheus.Labels(m.customLabels)

	m.matchesAssembled = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("matches_assembled_total"),
		Help:        "Total number of matches reconciled into xG timelines",
		ConstLabels: constLabels,
	})

	m.assemblyErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("assembly_errors_total"),
		Help:        "Total number of matches rejected for an unusable team designation",
		ConstLabels: constLabels,
	})

	m.assemblyLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("assembly_latency_milliseconds"),
		Help:        "Histogram of match assembly latency in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: constLabels,
	})

	m.shotsProcessed = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("shots_processed_total"),
		Help:        "Total number of shot records received",
		ConstLabels: constLabels,
	})

	m.eventsClassified = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        m.name("events_classified_total"),
			Help:        "Total number of notable events by type",
			ConstLabels: constLabels,
		},
		[]string{"type"},
	)

	m.diagnostics = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        m.name("diagnostics_total"),
			Help:        "Total number of dropped or flagged records by kind and source",
			ConstLabels: constLabels,
		},
		[]string{"kind", "source"},
	)

	m.teamXGTotal = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("team_xg"),
		Help:        "Distribution of per-team match xG totals",
		Buckets:     m.xgBuckets,
		ConstLabels: constLabels,
	})

	m.eventsMissingXG = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("events_missing_xg_total"),
		Help:        "Total number of events emitted without a cumulative xG value",
		ConstLabels: constLabels,
	})

	m.matchFilesDecoded = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        m.name("match_files_decoded_total"),
			Help:        "Total number of match documents decoded by result",
			ConstLabels: constLabels,
		},
		[]string{"result"},
	)

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        m.name("http_requests_total"),
			Help:        "Total number of HTTP requests by endpoint and method",
			ConstLabels: constLabels,
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
			ConstLabels: constLabels,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorRateByType = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        m.name("errors_by_type_total"),
			Help:        "Total number of errors by type and severity",
			ConstLabels: constLabels,
		},
		[]string{"error_type", "severity"},
	)

	m.errorRateByEndpoint = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        m.name("errors_by_endpoint_total"),
			Help:        "Total number of errors by endpoint",
			ConstLabels: constLabels,
		},
		[]string{"endpoint", "method", "error_type"},
	)

	m.errorLatency = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        m.name("error_latency_milliseconds"),
			Help:        "Latency of failed operations in milliseconds",
			Buckets:     m.histogramBuckets,
			ConstLabels: constLabels,
		},
		[]string{"component", "error_type"},
	)

	m.storedTimelines = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("stored_timelines"),
		Help:        "Assembled timeline documents held in memory",
		ConstLabels: constLabels,
	})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("system_memory_usage_bytes"),
		Help:        "System memory usage in bytes",
		ConstLabels: constLabels,
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("system_goroutine_count"),
		Help:        "Number of goroutines",
		ConstLabels: constLabels,
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("system_gc_pause_time_milliseconds"),
		Help:        "GC pause time in milliseconds",
		Buckets:     []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
		ConstLabels: constLabels,
	})
}

// Enabled reports whether recording is switched on for this manager.
func (m *Manager) Enabled() bool { return m.enabled }

// ObserveAssembly records one successful assembly on this manager.
func (m *Manager) ObserveAssembly(latencyMs float64, shots int) {
	if !m.enabled {
		return
	}
	m.matchesAssembled.Inc()
	m.assemblyLatency.Observe(latencyMs)
	m.shotsProcessed.Add(float64(shots))
}

// ObserveTeamXG records a team's match xG total on this manager.
func (m *Manager) ObserveTeamXG(total float64) {
	if m.enabled {
		m.teamXGTotal.Observe(total)
	}
}

// ObserveEvent records a classified event on this manager.
func (m *Manager) ObserveEvent(eventType string, hasValue bool) {
	if !m.enabled {
		return
	}
	m.eventsClassified.WithLabelValues(eventType).Inc()
	if !hasValue {
		m.eventsMissingXG.Inc()
	}
}

// ObserveDiagnostic records a dropped or flagged record on this manager.
func (m *Manager) ObserveDiagnostic(kind, source string) {
	if m.enabled {
		m.diagnostics.WithLabelValues(kind, source).Inc()
	}
}

// ObserveAssemblyError records a rejected match on this manager.
func (m *Manager) ObserveAssemblyError() {
	if m.enabled {
		m.assemblyErrors.Inc()
	}
}

// Default returns the process-wide manager bound to the custom registry.
func Default() *Manager {
	return globalManager
}

// RecordMatchAssembled records one successful assembly.
func RecordMatchAssembled(latencyMs float64, shots int) {
	globalManager.ObserveAssembly(latencyMs, shots)
}

// RecordAssemblyError increments the rejected match counter.
func RecordAssemblyError() {
	globalManager.ObserveAssemblyError()
}

// RecordTeamXG records a team's match xG total.
func RecordTeamXG(total float64) {
	globalManager.ObserveTeamXG(total)
}

// RecordEventClassified records a classified event by type.
func RecordEventClassified(eventType string, hasValue bool) {
	globalManager.ObserveEvent(eventType, hasValue)
}

// RecordDiagnostic records a dropped or flagged record.
func RecordDiagnostic(kind, source string) {
	globalManager.ObserveDiagnostic(kind, source)
}

// RecordMatchFileDecoded records a decode attempt; result is "ok" or "error".
func RecordMatchFileDecoded(result string) {
	globalManager.matchFilesDecoded.WithLabelValues(result).Inc()
}

// UpdateStoredTimelines sets the number of documents held by the store.
func UpdateStoredTimelines(count int) {
	globalManager.storedTimelines.Set(float64(count))
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByType increments error count by type and severity.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint increments error count by endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorLatency records the latency of a failed operation.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	globalManager.errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
}

// UpdateSystemMemoryUsage sets the memory usage gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine gauge.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records an average GC pause.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom registry backing the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

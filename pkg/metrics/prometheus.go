// Package metrics provides Prometheus metrics for the dashboard service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultNamespace       = "indiacovid"
	defaultRefreshInterval = 10 * time.Second

	// subsystem groups every metric of this service under one name.
	subsystem = "dashboard"
)

// Manager manages all Prometheus metrics for the dashboard.
type Manager struct {
	namespace        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	registry         prometheus.Registerer

	// Dataset metrics, set once at startup
	datasetRows         *prometheus.GaugeVec
	datasetLoadDuration *prometheus.HistogramVec
	datasetLoadErrors   *prometheus.CounterVec
	caseCounters        *prometheus.GaugeVec

	// Reactive bar chart
	recomputeTotal   *prometheus.CounterVec
	recomputeLatency prometheus.Histogram
	recomputeBars    *prometheus.GaugeVec
	emptyResults     *prometheus.CounterVec

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

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        defaultNamespace,
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)

	m.datasetRows = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   subsystem,
		Name:        "dataset_rows",
		Help:        "Rows loaded per dataset at startup",
		ConstLabels: m.customLabels,
	}, []string{"dataset"})

	m.datasetLoadDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   subsystem,
		Name:        "dataset_load_duration_milliseconds",
		Help:        "Time spent reading and parsing each dataset",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.customLabels,
	}, []string{"dataset"})

	m.datasetLoadErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   subsystem,
		Name:        "dataset_load_errors_total",
		Help:        "Dataset load failures by dataset and reason",
		ConstLabels: m.customLabels,
	}, []string{"dataset", "reason"})

	m.caseCounters = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   subsystem,
		Name:        "cases",
		Help:        "Aggregate case counters computed at load time",
		ConstLabels: m.customLabels,
	}, []string{"kind"})

	m.recomputeTotal = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   subsystem,
		Name:        "state_graph_recompute_total",
		Help:        "Bar chart recomputes by selected status",
		ConstLabels: m.customLabels,
	}, []string{"status"})

	m.recomputeLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   subsystem,
		Name:        "state_graph_recompute_latency_milliseconds",
		Help:        "Latency of filtering and grouping the individual records",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.customLabels,
	})

	m.recomputeBars = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   subsystem,
		Name:        "state_graph_bars",
		Help:        "Number of bars produced by the last recompute per status",
		ConstLabels: m.customLabels,
	}, []string{"status"})

	m.emptyResults = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   subsystem,
		Name:        "state_graph_empty_total",
		Help:        "Recomputes that matched no records",
		ConstLabels: m.customLabels,
	}, []string{"status"})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   subsystem,
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests by endpoint and method",
			ConstLabels: m.customLabels,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   subsystem,
			Name:        "http_request_duration_milliseconds",
			Help:        "HTTP request duration in milliseconds",
			Buckets:     m.histogramBuckets,
			ConstLabels: m.customLabels,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorRateByType = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   subsystem,
			Name:        "errors_by_type_total",
			Help:        "Total number of errors by type",
			ConstLabels: m.customLabels,
		},
		[]string{"error_type", "severity"},
	)

	m.errorRateByEndpoint = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   subsystem,
			Name:        "errors_by_endpoint_total",
			Help:        "Total number of errors by endpoint",
			ConstLabels: m.customLabels,
		},
		[]string{"endpoint", "method", "error_type"},
	)

	m.errorLatency = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   subsystem,
			Name:        "error_latency_milliseconds",
			Help:        "Latency of operations that resulted in errors",
			Buckets:     m.histogramBuckets,
			ConstLabels: m.customLabels,
		},
		[]string{"component", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   subsystem,
		Name:        "system_memory_usage_bytes",
		Help:        "System memory usage in bytes",
		ConstLabels: m.customLabels,
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   subsystem,
		Name:        "system_goroutine_count",
		Help:        "Number of goroutines",
		ConstLabels: m.customLabels,
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   subsystem,
		Name:        "system_gc_pause_time_milliseconds",
		Help:        "GC pause time in milliseconds",
		Buckets:     []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
		ConstLabels: m.customLabels,
	})
}

// Enabled reports whether recording is active.
func (m *Manager) Enabled() bool { return m.enabled }

// RefreshInterval is how often gauge metrics should be refreshed.
func RefreshInterval() time.Duration { return globalManager.refreshInterval }

// Configure replaces the global manager with one built from opts on a fresh
// registry. It must run before handlers capture GetRegistry.
func Configure(opts ...Option) *Manager {
	registry := prometheus.NewRegistry()
	all := append([]Option{WithPrometheusRegistry(registry)}, opts...)
	customRegistry = registry
	globalManager = NewManager(all...)
	return globalManager
}

// SetEnabled toggles recording on the global manager.
func SetEnabled(enabled bool) { globalManager.enabled = enabled }

// RecordDatasetLoaded records the row count and load time of one dataset.
func RecordDatasetLoaded(dataset string, rows int, durationMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.datasetRows.WithLabelValues(dataset).Set(float64(rows))
	globalManager.datasetLoadDuration.WithLabelValues(dataset).Observe(durationMs)
}

// RecordDatasetLoadError counts a failed dataset load.
func RecordDatasetLoadError(dataset, reason string) {
	if !globalManager.enabled {
		return
	}
	globalManager.datasetLoadErrors.WithLabelValues(dataset, reason).Inc()
}

// UpdateCaseCounters publishes the load-time counters.
func UpdateCaseCounters(total, active, recovered, deceased int) {
	if !globalManager.enabled {
		return
	}
	globalManager.caseCounters.WithLabelValues("total").Set(float64(total))
	globalManager.caseCounters.WithLabelValues("active").Set(float64(active))
	globalManager.caseCounters.WithLabelValues("recovered").Set(float64(recovered))
	globalManager.caseCounters.WithLabelValues("deceased").Set(float64(deceased))
}

// RecordRecompute records one bar chart recompute.
func RecordRecompute(status string, bars int, latencyMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.recomputeTotal.WithLabelValues(status).Inc()
	globalManager.recomputeLatency.Observe(latencyMs)
	globalManager.recomputeBars.WithLabelValues(status).Set(float64(bars))
	if bars == 0 {
		globalManager.emptyResults.WithLabelValues(status).Inc()
	}
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	if !globalManager.enabled {
		return
	}
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	if !globalManager.enabled {
		return
	}
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	if !globalManager.enabled {
		return
	}
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorLatency records the latency of an operation that resulted in an error.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
}

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

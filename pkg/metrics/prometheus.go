// Package metrics provides Prometheus metrics for the recruitment dashboard service.
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
	registry         prometheus.Registerer

	// Chart rendering
	chartsRendered     *prometheus.CounterVec
	chartRenderErrors  *prometheus.CounterVec
	chartRenderLatency *prometheus.HistogramVec
	chartPoints        *prometheus.HistogramVec

	// Page views
	pageViews *prometheus.CounterVec

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error breakdowns
	errorRateByType     *prometheus.CounterVec
	errorRateByEndpoint *prometheus.CounterVec
	errorLatency        *prometheus.HistogramVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// Configure rebuilds the global manager with opts on a fresh registry and
// returns it. Call it once at startup, before handlers capture GetRegistry.
func Configure(opts ...Option) *Manager {
	customRegistry = prometheus.NewRegistry()
	globalManager = NewManager(append(opts, WithPrometheusRegistry(customRegistry))...)
	return globalManager
}

// Global returns the manager behind the package-level helpers.
func Global() *Manager {
	return globalManager
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "recruit",
		subsystem:        "dashboard",
		histogramBuckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100},
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

// Enabled reports whether recording is switched on.
func (m *Manager) Enabled() bool { return m.enabled }

// RefreshInterval is how often gauge updaters should run.
func (m *Manager) RefreshInterval() time.Duration { return m.refreshInterval }

func (m *Manager) opts(name, help string) (string, string, string, string, prometheus.Labels) {
	return m.namespace, m.subsystem, name, help, prometheus.Labels(m.customLabels)
}

func (m *Manager) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	ns, ss, n, h, cl := m.opts(name, help)
	return promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: ns, Subsystem: ss, Name: n, Help: h, ConstLabels: cl,
	}, labels)
}

func (m *Manager) histogramVec(name, help string, buckets []float64, labels ...string) *prometheus.HistogramVec {
	ns, ss, n, h, cl := m.opts(name, help)
	return promauto.With(m.registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace: ns, Subsystem: ss, Name: n, Help: h, ConstLabels: cl, Buckets: buckets,
	}, labels)
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	ns, ss, n, h, cl := m.opts(name, help)
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace: ns, Subsystem: ss, Name: n, Help: h, ConstLabels: cl,
	})
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	m.chartsRendered = m.counterVec("charts_rendered_total", "Total number of charts rendered by kind", "kind")
	m.chartRenderErrors = m.counterVec("chart_render_errors_total", "Total number of rejected chart inputs by kind and reason", "kind", "reason")
	m.chartRenderLatency = m.histogramVec("chart_render_latency_milliseconds", "Chart geometry computation time in milliseconds", m.histogramBuckets, "kind")
	m.chartPoints = m.histogramVec("chart_points", "Number of points per rendered chart", prometheus.ExponentialBuckets(1, 2, 10), "kind")

	m.pageViews = m.counterVec("page_views_total", "Dashboard views by tab and surface (page or fragment)", "tab", "surface")

	m.httpRequests = m.counterVec("http_requests_total", "Total number of HTTP requests by endpoint and method", "endpoint", "method", "status_code")
	m.httpRequestDuration = m.histogramVec("http_request_duration_milliseconds", "HTTP request duration in milliseconds", m.histogramBuckets, "endpoint", "method", "status_code")

	m.errorRateByType = m.counterVec("errors_by_type_total", "Total number of errors by type", "error_type", "severity")
	m.errorRateByEndpoint = m.counterVec("errors_by_endpoint_total", "Total number of errors by endpoint", "endpoint", "method", "error_type")
	m.errorLatency = m.histogramVec("error_latency_milliseconds", "Latency of operations that resulted in errors", m.histogramBuckets, "component", "error_type")

	m.systemMemoryUsage = m.gauge("system_memory_usage_bytes", "System memory usage in bytes")
	m.systemGoroutineCount = m.gauge("system_goroutine_count", "Number of goroutines")
	ns, ss, n, h, cl := m.opts("system_gc_pause_time_milliseconds", "GC pause time in milliseconds")
	m.systemGCPauseTime = promauto.With(m.registry).NewHistogram(prometheus.HistogramOpts{
		Namespace: ns, Subsystem: ss, Name: n, Help: h, ConstLabels: cl,
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
	})
}

// RecordChartRendered records a successful render with its size and latency.
func (m *Manager) RecordChartRendered(kind string, points int, latencyMs float64) {
	if !m.enabled {
		return
	}
	m.chartsRendered.WithLabelValues(kind).Inc()
	m.chartPoints.WithLabelValues(kind).Observe(float64(points))
	m.chartRenderLatency.WithLabelValues(kind).Observe(latencyMs)
}

// RecordChartError records a rejected chart input.
func (m *Manager) RecordChartError(kind, reason string) {
	if !m.enabled {
		return
	}
	m.chartRenderErrors.WithLabelValues(kind, reason).Inc()
}

// RecordPageView records a dashboard view.
func (m *Manager) RecordPageView(tab, surface string) {
	if !m.enabled {
		return
	}
	m.pageViews.WithLabelValues(tab, surface).Inc()
}

// RecordChartRendered records a successful render on the global manager.
func RecordChartRendered(kind string, points int, latencyMs float64) {
	globalManager.RecordChartRendered(kind, points, latencyMs)
}

// RecordChartError records a rejected chart input on the global manager.
func RecordChartError(kind, reason string) {
	globalManager.RecordChartError(kind, reason)
}

// RecordPageView records a dashboard view on the global manager.
func RecordPageView(tab, surface string) {
	globalManager.RecordPageView(tab, surface)
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
	if !globalManager.enabled {
		return
	}
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	if !globalManager.enabled {
		return
	}
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

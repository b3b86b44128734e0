// Package metrics provides Prometheus metrics for the suwen web front-end.
package metrics

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Upstream call outcomes recorded by RecordUpstreamRequest.
const (
	OutcomeOK             = "ok"
	OutcomeEnvelopeError  = "envelope_error"
	OutcomeTransportError = "transport_error"
)

// Manager manages all Prometheus metrics for the web front-end.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Upstream API Metrics - calls issued by the request helper
	upstreamRequests        *prometheus.CounterVec
	upstreamRequestDuration *prometheus.HistogramVec

	// Page Metrics - route loader outcomes
	pageLoads        *prometheus.CounterVec
	pageLoadDuration *prometheus.HistogramVec
	cookieRelays     prometheus.Counter

	// Error Metrics
	errorRateByType *prometheus.CounterVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global manager and the custom registry it registers on. The registry keeps
// the default Go collectors out of /metrics.
var (
	globalManager  atomic.Pointer[Manager]             //nolint:gochecknoglobals // singleton metrics manager
	customRegistry atomic.Pointer[prometheus.Registry] //nolint:gochecknoglobals // registry behind /metrics
)

func init() { //nolint:gochecknoinits // global metrics must exist before Init is called
	Init()
}

// Init replaces the global manager with one built from opts on a fresh
// registry. Call it at startup before serving traffic and before building
// anything that captured GetRegistry.
func Init(opts ...Option) {
	reg := prometheus.NewRegistry()
	all := make([]Option, 0, len(opts)+1)
	all = append(all, opts...)
	globalManager.Store(NewManager(append(all, WithPrometheusRegistry(reg))...))
	customRegistry.Store(reg)
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "suwen",
		subsystem:        "web",
		histogramBuckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		enabled:          true,
		constLabels:      prometheus.Labels{},
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
	constLabels := m.constLabels

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests by endpoint and method",
			ConstLabels: constLabels,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "http_request_duration_milliseconds",
			Help:        "HTTP request duration in milliseconds",
			Buckets:     m.histogramBuckets,
			ConstLabels: constLabels,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.upstreamRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "upstream_requests_total",
			Help:        "Total number of backend API calls by path, method and outcome",
			ConstLabels: constLabels,
		},
		[]string{"path", "method", "outcome"},
	)

	m.upstreamRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "upstream_request_duration_milliseconds",
			Help:        "Backend API call duration in milliseconds",
			Buckets:     m.histogramBuckets,
			ConstLabels: constLabels,
		},
		[]string{"path", "method"},
	)

	m.pageLoads = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "page_loads_total",
			Help:        "Total number of page loads by page and outcome",
			ConstLabels: constLabels,
		},
		[]string{"page", "outcome"},
	)

	m.pageLoadDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "page_load_duration_milliseconds",
			Help:        "Time spent in route loaders per page, in milliseconds",
			Buckets:     m.histogramBuckets,
			ConstLabels: constLabels,
		},
		[]string{"page"},
	)

	m.cookieRelays = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "cookie_relays_total",
		Help:        "Total number of set-cookie values relayed from the backend to visitors",
		ConstLabels: constLabels,
	})

	m.errorRateByType = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "errors_by_type_total",
			Help:        "Total number of errors by type",
			ConstLabels: constLabels,
		},
		[]string{"error_type", "severity"},
	)

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_memory_usage_bytes",
		Help:        "System memory usage in bytes",
		ConstLabels: constLabels,
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_goroutine_count",
		Help:        "Number of goroutines",
		ConstLabels: constLabels,
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_gc_pause_time_milliseconds",
		Help:        "GC pause time in milliseconds",
		Buckets:     []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
		ConstLabels: constLabels,
	})
}

// RecordHTTPRequest records a served HTTP request and its duration.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	if !m.enabled {
		return
	}
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordUpstreamRequest records one backend API call.
func (m *Manager) RecordUpstreamRequest(path, method, outcome string, durationMs float64) {
	if !m.enabled {
		return
	}
	m.upstreamRequests.WithLabelValues(path, method, outcome).Inc()
	m.upstreamRequestDuration.WithLabelValues(path, method).Observe(durationMs)
}

// RecordPageLoad records a page load outcome ("ok", "not_found", "error").
func (m *Manager) RecordPageLoad(page, outcome string, durationMs float64) {
	if !m.enabled {
		return
	}
	m.pageLoads.WithLabelValues(page, outcome).Inc()
	m.pageLoadDuration.WithLabelValues(page).Observe(durationMs)
}

// RecordCookieRelay increments the relayed cookie counter.
func (m *Manager) RecordCookieRelay(n int) {
	if !m.enabled || n <= 0 {
		return
	}
	m.cookieRelays.Add(float64(n))
}

// RecordErrorByType records an error with type and severity labels.
func (m *Manager) RecordErrorByType(errorType, severity string) {
	if !m.enabled {
		return
	}
	m.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordHTTPRequest records an HTTP request on the global manager.
func RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	globalManager.Load().RecordHTTPRequest(endpoint, method, statusCode, durationMs)
}

// RecordUpstreamRequest records a backend API call on the global manager.
func RecordUpstreamRequest(path, method, outcome string, durationMs float64) {
	globalManager.Load().RecordUpstreamRequest(path, method, outcome, durationMs)
}

// RecordPageLoad records a page load on the global manager.
func RecordPageLoad(page, outcome string, durationMs float64) {
	globalManager.Load().RecordPageLoad(page, outcome, durationMs)
}

// RecordCookieRelay records relayed cookies on the global manager.
func RecordCookieRelay(n int) {
	globalManager.Load().RecordCookieRelay(n)
}

// RecordErrorByType records an error on the global manager.
func RecordErrorByType(errorType, severity string) {
	globalManager.Load().RecordErrorByType(errorType, severity)
}

// System Performance Metrics Functions.

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.Load().systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.Load().systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.Load().systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry.Load()
}

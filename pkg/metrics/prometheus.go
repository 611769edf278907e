// Package metrics provides Prometheus metrics for the groundwater
// decision-support service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus metric the service emits.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Query answering
	queriesTotal   *prometheus.CounterVec
	answerDuration prometheus.Histogram

	// Prediction outcomes
	predictionsServed      prometheus.Counter
	predictionsUnavailable prometheus.Counter

	// Dataset snapshot
	rainfallRows    prometheus.Gauge
	groundwaterRows prometheus.Gauge
	statesLoaded    prometheus.Gauge

	// Sessions
	activeSessions prometheus.Gauge

	// HTTP surface
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager on its own registry, so the default Go collectors
// never mix in.
var (
	globalManager  *Manager                   //nolint:gochecknoglobals // singleton metrics manager
	customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // singleton metrics registry
)

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// Option applies a configuration option to the Manager.
type Option func(*Manager)

// WithNamespace sets the namespace for all metrics.
func WithNamespace(namespace string) Option {
	return func(m *Manager) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

// WithHistogramBuckets sets custom latency histogram buckets.
func WithHistogramBuckets(buckets []float64) Option {
	return func(m *Manager) {
		if len(buckets) > 0 {
			m.histogramBuckets = buckets
		}
	}
}

// WithRegistry registers the metrics on a custom registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(m *Manager) {
		if registry != nil {
			m.registry = registry
		}
	}
}

// NewManager creates a metrics manager and registers its metrics.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "hydrosense",
		subsystem:        "engine",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.queriesTotal = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queries_total",
		Help:      "Total answered queries, labelled by routed intent",
	}, []string{"intent"})

	m.answerDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "answer_duration_seconds",
		Help:      "Histogram of end-to-end answer latency",
		Buckets:   m.histogramBuckets,
	})

	m.predictionsServed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "predictions_served_total",
		Help:      "Total point predictions produced by the model",
	})

	m.predictionsUnavailable = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "predictions_unavailable_total",
		Help:      "Total prediction requests degraded because no model is loaded",
	})

	m.rainfallRows = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "dataset",
		Name:      "rainfall_rows",
		Help:      "Rainfall observations in the loaded snapshot",
	})

	m.groundwaterRows = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "dataset",
		Name:      "groundwater_rows",
		Help:      "Groundwater observations in the loaded snapshot",
	})

	m.statesLoaded = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "dataset",
		Name:      "states",
		Help:      "Distinct states in the loaded snapshot",
	})

	m.activeSessions = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "active_sessions",
		Help:      "Chat sessions currently alive",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests by endpoint, method, and status",
	}, []string{"endpoint", "method", "status"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Histogram of HTTP request latency",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method"})
}

// GetRegistry returns the registry backing the global manager, for the
// /metrics handler.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Package-level recording helpers against the global manager.

// RecordQuery counts one answered query for an intent.
func RecordQuery(intent string) {
	globalManager.queriesTotal.WithLabelValues(intent).Inc()
}

// ObserveAnswerDuration records end-to-end answer latency in seconds.
func ObserveAnswerDuration(seconds float64) {
	globalManager.answerDuration.Observe(seconds)
}

// RecordPredictionServed counts one successful point prediction.
func RecordPredictionServed() {
	globalManager.predictionsServed.Inc()
}

// RecordPredictionUnavailable counts one degraded prediction request.
func RecordPredictionUnavailable() {
	globalManager.predictionsUnavailable.Inc()
}

// SetDatasetSize publishes the loaded snapshot dimensions.
func SetDatasetSize(rainfallRows, groundwaterRows, states int) {
	globalManager.rainfallRows.Set(float64(rainfallRows))
	globalManager.groundwaterRows.Set(float64(groundwaterRows))
	globalManager.statesLoaded.Set(float64(states))
}

// SetActiveSessions publishes the live session count.
func SetActiveSessions(n int) {
	globalManager.activeSessions.Set(float64(n))
}

// RecordHTTPRequest counts one HTTP request.
func RecordHTTPRequest(endpoint, method, status string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

// ObserveHTTPRequestDuration records HTTP request latency in seconds.
func ObserveHTTPRequestDuration(endpoint, method string, seconds float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method).Observe(seconds)
}

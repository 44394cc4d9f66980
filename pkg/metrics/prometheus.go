// Package metrics provides Prometheus metrics for the coaching analytics
// engine: snapshot fetch health, recomputation activity, insight-generator
// outcomes, and HTTP performance.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns all Prometheus collectors for the service.
type Manager struct {
	namespace string
	registry  prometheus.Registerer

	// Snapshot metrics - upstream fetch health.
	fetchDuration  *prometheus.HistogramVec
	fetchErrors    *prometheus.CounterVec
	recordCount    *prometheus.GaugeVec
	snapshotLoads  prometheus.Counter
	snapshotLoadMs prometheus.Histogram

	// Engine metrics - recomputation activity.
	recomputes *prometheus.CounterVec

	// Insight metrics - generator outcomes by failure class.
	insightSuccess  prometheus.Counter
	insightFailures *prometheus.CounterVec

	// HTTP metrics.
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Option applies a configuration option to the Manager.
type Option func(*Manager)

// WithNamespace sets the metric namespace.
func WithNamespace(ns string) Option {
	return func(m *Manager) {
		if ns != "" {
			m.namespace = ns
		}
	}
}

// WithRegistry sets the Prometheus registerer collectors attach to.
func WithRegistry(r prometheus.Registerer) Option {
	return func(m *Manager) {
		if r != nil {
			m.registry = r
		}
	}
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "compass",
		registry:  prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}

	factory := promauto.With(m.registry)

	m.fetchDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "fetch_duration_ms",
		Help:      "Duration of one upstream record-set fetch in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500},
	}, []string{"set"})

	m.fetchErrors = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "fetch_errors_total",
		Help:      "Upstream fetch failures that degraded to an empty record set.",
	}, []string{"set"})

	m.recordCount = factory.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "record_count",
		Help:      "Number of records in the latest snapshot per record set.",
	}, []string{"set"})

	m.snapshotLoads = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "snapshot_loads_total",
		Help:      "Completed snapshot loads.",
	})

	m.snapshotLoadMs = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "snapshot_load_duration_ms",
		Help:      "End-to-end snapshot load duration in milliseconds.",
		Buckets:   []float64{10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	})

	m.recomputes = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "recomputes_total",
		Help:      "View recomputations by view name.",
	}, []string{"view"})

	m.insightSuccess = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "insight_success_total",
		Help:      "Successful insight generations.",
	})

	m.insightFailures = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "insight_failures_total",
		Help:      "Insight generation failures by failure class.",
	}, []string{"class"})

	m.httpRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by endpoint, method, and status code.",
	}, []string{"endpoint", "method", "status"})

	m.httpRequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "http_request_duration_ms",
		Help:      "HTTP request duration in milliseconds.",
		Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
	}, []string{"endpoint", "method"})

	return m
}

// Global manager on a custom registry to avoid the default Go collectors.
var (
	customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // singleton registry
	globalManager  *Manager                   //nolint:gochecknoglobals // singleton manager
)

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// GetRegistry returns the registry served on /healthz.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// RecordFetchDuration records one upstream record-set fetch.
func RecordFetchDuration(set string, ms float64) {
	globalManager.fetchDuration.WithLabelValues(set).Observe(ms)
}

// RecordFetchError counts a degraded upstream fetch.
func RecordFetchError(set string) {
	globalManager.fetchErrors.WithLabelValues(set).Inc()
}

// UpdateRecordCount tracks record-set sizes in the latest snapshot.
func UpdateRecordCount(set string, n int) {
	globalManager.recordCount.WithLabelValues(set).Set(float64(n))
}

// RecordSnapshotLoad counts a completed snapshot load and its duration.
func RecordSnapshotLoad(ms float64) {
	globalManager.snapshotLoads.Inc()
	globalManager.snapshotLoadMs.Observe(ms)
}

// RecordRecompute counts one view recomputation.
func RecordRecompute(view string) {
	globalManager.recomputes.WithLabelValues(view).Inc()
}

// RecordInsightSuccess counts a successful insight generation.
func RecordInsightSuccess() {
	globalManager.insightSuccess.Inc()
}

// RecordInsightFailure counts an insight failure by class.
func RecordInsightFailure(class string) {
	globalManager.insightFailures.WithLabelValues(class).Inc()
}

// RecordHTTPRequest counts one HTTP request.
func RecordHTTPRequest(endpoint, method, status string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

// RecordHTTPRequestDuration records one HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method string, ms float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method).Observe(ms)
}

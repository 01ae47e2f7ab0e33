// Package metrics provides Prometheus metrics for the moveboard service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns all Prometheus collectors for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Ingestion
	comparisonsProcessed prometheus.Counter
	comparisonsDuplicate prometheus.Counter
	comparisonsRejected  prometheus.Counter
	unknownItems         prometheus.Counter

	// Ranking
	recomputeDuration prometheus.Histogram
	recomputeTotal    prometheus.Counter
	eventLogSize      prometheus.Gauge
	catalogMoves      prometheus.Gauge

	// Queue and workers
	queueSize        prometheus.Gauge
	queueCapacity    prometheus.Gauge
	queueUtilization prometheus.Gauge
	queueEnqueues    prometheus.Counter
	queueDequeues    prometheus.Counter
	queueErrors      prometheus.Counter
	workerCount      prometheus.Gauge

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Errors by component/reason
	errorsByComponent *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global manager on a custom registry so the default Go collectors do not
// leak duplicate series into our exposition.
var (
	customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // singleton registry
	globalManager  *Manager                   //nolint:gochecknoglobals // singleton manager
)

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "moveboard",
		subsystem:        "tierlist",
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

	m.comparisonsProcessed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "comparisons_processed_total",
		Help: "Total number of comparison events accepted into the log",
	})
	m.comparisonsDuplicate = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "comparisons_duplicate_total",
		Help: "Total number of duplicate comparison submissions detected",
	})
	m.comparisonsRejected = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "comparisons_rejected_total",
		Help: "Total number of comparison events rejected before ingestion",
	})
	m.unknownItems = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "comparisons_unknown_item_total",
		Help: "Total number of events skipped because a participant is not in the catalog",
	})

	m.recomputeDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "standings_recompute_milliseconds",
		Help:    "Histogram of full standings recomputation duration in milliseconds",
		Buckets: m.histogramBuckets,
	})
	m.recomputeTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "standings_recompute_total",
		Help: "Total number of full standings recomputations",
	})
	m.eventLogSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "event_log_size",
		Help: "Current number of comparison events in the log",
	})
	m.catalogMoves = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "catalog_moves",
		Help: "Number of moves loaded from the catalog bundle",
	})

	m.queueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "queue_size",
		Help: "Current number of queued comparison events",
	})
	m.queueCapacity = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "queue_capacity",
		Help: "Configured queue capacity",
	})
	m.queueUtilization = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "queue_utilization",
		Help: "Queue fill ratio between 0 and 1",
	})
	m.queueEnqueues = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "queue_enqueue_total",
		Help: "Total number of successful enqueues",
	})
	m.queueDequeues = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "queue_dequeue_total",
		Help: "Total number of dequeued events",
	})
	m.queueErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "queue_enqueue_errors_total",
		Help: "Total number of failed enqueues",
	})
	m.workerCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "worker_count",
		Help: "Number of ingestion workers",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "http_requests_total",
		Help: "Total HTTP requests by endpoint, method and status",
	}, []string{"endpoint", "method", "status"})
	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "http_request_duration_milliseconds",
		Help:    "Histogram of HTTP request duration in milliseconds",
		Buckets: m.histogramBuckets,
	}, []string{"endpoint", "method", "status"})

	m.errorsByComponent = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "errors_total",
		Help: "Total errors by component and reason",
	}, []string{"component", "reason"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "system_memory_bytes",
		Help: "Current heap allocation in bytes",
	})
	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "system_goroutines",
		Help: "Current number of goroutines",
	})
}

// GetRegistry exposes the custom registry for the exposition handler.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Package-level helpers against the global manager.

func RecordComparisonProcessed() { globalManager.comparisonsProcessed.Inc() }
func RecordComparisonDuplicate() { globalManager.comparisonsDuplicate.Inc() }
func RecordComparisonRejected()  { globalManager.comparisonsRejected.Inc() }
func RecordUnknownItem()         { globalManager.unknownItems.Inc() }

func RecordRecompute(durationMS float64) {
	globalManager.recomputeDuration.Observe(durationMS)
	globalManager.recomputeTotal.Inc()
}

func UpdateEventLogSize(n int) { globalManager.eventLogSize.Set(float64(n)) }
func UpdateCatalogMoves(n int) { globalManager.catalogMoves.Set(float64(n)) }

func UpdateQueueSize(n int)            { globalManager.queueSize.Set(float64(n)) }
func UpdateQueueCapacity(n int)        { globalManager.queueCapacity.Set(float64(n)) }
func UpdateQueueUtilization(r float64) { globalManager.queueUtilization.Set(r) }
func RecordQueueEnqueue()              { globalManager.queueEnqueues.Inc() }
func RecordQueueDequeue()              { globalManager.queueDequeues.Inc() }
func RecordQueueEnqueueError()         { globalManager.queueErrors.Inc() }
func UpdateWorkerCount(n int)          { globalManager.workerCount.Set(float64(n)) }

func RecordHTTPRequest(endpoint, method, status string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

func RecordHTTPRequestDuration(endpoint, method, status string, durationMS float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(durationMS)
}

func RecordErrorByComponent(component, reason string) {
	globalManager.errorsByComponent.WithLabelValues(component, reason).Inc()
}

func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

func UpdateSystemGoroutineCount(n int) {
	globalManager.systemGoroutineCount.Set(float64(n))
}

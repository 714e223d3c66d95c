// Package metrics provides Prometheus metrics for the syntrial results
// service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Ingest metrics.
	batchesReceived  prometheus.Counter
	batchesDuplicate prometheus.Counter
	batchesStored    prometheus.Counter
	trialsRecorded   prometheus.Counter
	reactionTime     prometheus.Histogram
	sessionsStarted  *prometheus.CounterVec
	screeningsRun    *prometheus.CounterVec

	// Pipeline health.
	queueSize        prometheus.Gauge
	queueCapacity    prometheus.Gauge
	queueUtilization prometheus.Gauge
	queueEnqueues    prometheus.Counter
	queueDequeues    prometheus.Counter
	queueErrors      *prometheus.CounterVec
	workerCount      prometheus.Gauge
	workerLatency    prometheus.Histogram
	workerErrors     *prometheus.CounterVec

	// Storage.
	storeLatency      prometheus.Histogram
	storeBatches      prometheus.Gauge
	storeParticipants prometheus.Gauge

	// HTTP.
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// reactionTimeBuckets spans plausible human reaction times in milliseconds.
var reactionTimeBuckets = []float64{100, 250, 500, 750, 1000, 1500, 2000, 3000, 5000, 10000, 30000}

// Global manager on a custom registry, to keep default Go collector noise
// out of /healthz.
var globalManager *Manager                       //nolint:gochecknoglobals // singleton metrics manager
var customRegistry = prometheus.NewRegistry()    //nolint:gochecknoglobals // metrics registry
func init() {                                    //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "syntrial",
		subsystem:        "results",
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

	m.batchesReceived = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "batches_received_total",
		Help: "Total number of response batches accepted over HTTP",
	})
	m.batchesDuplicate = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "batches_duplicate_total",
		Help: "Total number of resubmitted batches detected by id",
	})
	m.batchesStored = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "batches_stored_total",
		Help: "Total number of batches persisted by workers",
	})
	m.trialsRecorded = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "trials_recorded_total",
		Help: "Total number of trial responses persisted",
	})
	m.reactionTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "reaction_time_milliseconds",
		Help:    "Histogram of recorded per-trial reaction times",
		Buckets: reactionTimeBuckets,
	})
	m.sessionsStarted = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "sessions_started_total",
		Help: "Total number of test sessions started, by test type",
	}, []string{"test_type"})
	m.screeningsRun = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "screenings_total",
		Help: "Total number of screening evaluations, by outcome",
	}, []string{"outcome"})

	m.queueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "queue_size",
		Help: "Current number of batches waiting for ingest",
	})
	m.queueCapacity = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "queue_capacity",
		Help: "Configured capacity of the ingest queue",
	})
	m.queueUtilization = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "queue_utilization_ratio",
		Help: "Ingest queue fill ratio",
	})
	m.queueEnqueues = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "queue_enqueues_total",
		Help: "Total number of successful enqueues",
	})
	m.queueDequeues = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "queue_dequeues_total",
		Help: "Total number of dequeues",
	})
	m.queueErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "queue_errors_total",
		Help: "Total number of queue errors, by reason",
	}, []string{"reason"})

	m.workerCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "worker_count",
		Help: "Number of ingest workers",
	})
	m.workerLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "worker_processing_latency_milliseconds",
		Help:    "Per-batch ingest processing latency",
		Buckets: m.histogramBuckets,
	})
	m.workerErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "worker_errors_total",
		Help: "Total number of worker errors, by stage",
	}, []string{"stage"})

	m.storeLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "store_latency_milliseconds",
		Help:    "Batch persistence latency",
		Buckets: m.histogramBuckets,
	})
	m.storeBatches = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "store_batches",
		Help: "Number of batches in the result store",
	})
	m.storeParticipants = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "store_participants",
		Help: "Number of distinct participants in the result store",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "http_requests_total",
		Help: "Total number of HTTP requests by endpoint, method, and status",
	}, []string{"endpoint", "method", "status_code"})
	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "http_request_duration_milliseconds",
		Help:    "HTTP request duration in milliseconds",
		Buckets: m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})
}

// GetRegistry returns the registry metrics are registered on, for serving
// via promhttp.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Package-level recording helpers delegate to the global manager.

func RecordBatchReceived()               { globalManager.batchesReceived.Inc() }
func RecordBatchDuplicate()              { globalManager.batchesDuplicate.Inc() }
func RecordBatchStored()                 { globalManager.batchesStored.Inc() }
func RecordTrialsRecorded(n int)         { globalManager.trialsRecorded.Add(float64(n)) }
func RecordReactionTime(ms float64)      { globalManager.reactionTime.Observe(ms) }
func RecordSessionStarted(testType string) {
	globalManager.sessionsStarted.WithLabelValues(testType).Inc()
}
func RecordScreening(outcome string) { globalManager.screeningsRun.WithLabelValues(outcome).Inc() }

func UpdateQueueSize(n int)             { globalManager.queueSize.Set(float64(n)) }
func UpdateQueueCapacity(n int)         { globalManager.queueCapacity.Set(float64(n)) }
func UpdateQueueUtilization(r float64)  { globalManager.queueUtilization.Set(r) }
func RecordQueueEnqueue()               { globalManager.queueEnqueues.Inc() }
func RecordQueueDequeue()               { globalManager.queueDequeues.Inc() }
func RecordQueueError(reason string)    { globalManager.queueErrors.WithLabelValues(reason).Inc() }
func UpdateWorkerCount(n int)           { globalManager.workerCount.Set(float64(n)) }
func RecordWorkerLatency(ms float64)    { globalManager.workerLatency.Observe(ms) }
func RecordWorkerError(stage string)    { globalManager.workerErrors.WithLabelValues(stage).Inc() }
func RecordStoreLatency(ms float64)     { globalManager.storeLatency.Observe(ms) }
func UpdateStoreBatches(n int)          { globalManager.storeBatches.Set(float64(n)) }
func UpdateStoreParticipants(n int)     { globalManager.storeParticipants.Set(float64(n)) }

func RecordHTTPRequest(endpoint, method, status string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

func RecordHTTPRequestDuration(endpoint, method, status string, ms float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(ms)
}

// Package metrics provides Prometheus metrics for the revintel scoring service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector of the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Scoring
	predictions      *prometheus.CounterVec
	predictionErrors *prometheus.CounterVec
	scoringLatency   *prometheus.HistogramVec

	// Prediction log
	logAppends prometheus.Counter
	logErrors  prometheus.Counter
	logSize    prometheus.Gauge

	// Model health
	driftDeviation *prometheus.GaugeVec
	driftStatus    *prometheus.GaugeVec
	healthChecks   prometheus.Counter

	// CRM and ranking
	repositoryLookups *prometheus.CounterVec
	rankedLeads       prometheus.Gauge

	// Transports
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorsByEndpoint    *prometheus.CounterVec
	mcpRequests         *prometheus.CounterVec

	// Rescoring pipeline
	queueSize               prometheus.Gauge
	queueCapacity           prometheus.Gauge
	queueUtilization        prometheus.Gauge
	queueEnqueued           prometheus.Counter
	queueDequeued           prometheus.Counter
	queueEnqueueErrors      *prometheus.CounterVec
	workerCount             prometheus.Gauge
	jobsProcessed           *prometheus.CounterVec
	workerProcessingLatency prometheus.Histogram
	scheduledRuns           *prometheus.CounterVec

	errorsByComponent *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // registry without default Go collectors

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "revintel",
		subsystem:        "scoring",
		histogramBuckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 500},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counter(name, help string) prometheus.Counter {
	return promauto.With(m.registry).NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	})
}

func (m *Manager) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	}, labels)
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	})
}

func (m *Manager) gaugeVec(name, help string, labels ...string) *prometheus.GaugeVec {
	return promauto.With(m.registry).NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	}, labels)
}

func (m *Manager) histogram(name, help string) prometheus.Histogram {
	return promauto.With(m.registry).NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
		Buckets: m.histogramBuckets,
	})
}

func (m *Manager) histogramVec(name, help string, labels ...string) *prometheus.HistogramVec {
	return promauto.With(m.registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
		Buckets: m.histogramBuckets,
	}, labels)
}

func (m *Manager) initializeMetrics() {
	m.predictions = m.counterVec("predictions_total", "Predictions served by type and tier", "type", "tier")
	m.predictionErrors = m.counterVec("prediction_errors_total", "Rejected prediction requests by type and error kind", "type", "kind")
	m.scoringLatency = m.histogramVec("scoring_latency_milliseconds", "Scoring engine latency in milliseconds", "type")

	m.logAppends = m.counter("prediction_log_appends_total", "Records appended to the prediction log")
	m.logErrors = m.counter("prediction_log_errors_total", "Failed prediction log appends")
	m.logSize = m.gauge("prediction_log_records", "Records currently held by the prediction log")

	m.driftDeviation = m.gaugeVec("drift_max_deviation_ratio", "Largest tier share deviation from baseline", "type")
	m.driftStatus = m.gaugeVec("drift_status", "Drift status (-1 insufficient data, 0 normal, 1 warning, 2 critical)", "type")
	m.healthChecks = m.counter("health_checks_total", "Model health evaluations")

	m.repositoryLookups = m.counterVec("repository_lookups_total", "CRM lookups by entity and result", "entity", "result")
	m.rankedLeads = m.gauge("ranked_leads", "Leads currently held by the pipeline ranking")

	m.httpRequests = m.counterVec("http_requests_total", "HTTP requests by endpoint and method", "endpoint", "method", "status_code")
	m.httpRequestDuration = m.histogramVec("http_request_duration_milliseconds", "HTTP request duration in milliseconds", "endpoint", "method", "status_code")
	m.errorsByEndpoint = m.counterVec("errors_by_endpoint_total", "HTTP errors by endpoint", "endpoint", "method", "error_type")
	m.mcpRequests = m.counterVec("mcp_requests_total", "MCP JSON-RPC requests by method and outcome", "method", "status")

	m.queueSize = m.gauge("queue_size", "Current rescoring queue backlog")
	m.queueCapacity = m.gauge("queue_capacity", "Maximum rescoring queue capacity")
	m.queueUtilization = m.gauge("queue_utilization_ratio", "Queue utilization ratio (size / capacity)")
	m.queueEnqueued = m.counter("queue_enqueue_total", "Jobs enqueued")
	m.queueDequeued = m.counter("queue_dequeue_total", "Jobs dequeued")
	m.queueEnqueueErrors = m.counterVec("queue_enqueue_errors_total", "Rejected enqueues by reason", "reason")
	m.workerCount = m.gauge("worker_count", "Rescoring workers running")
	m.jobsProcessed = m.counterVec("jobs_processed_total", "Rescoring jobs by kind and status", "kind", "status")
	m.workerProcessingLatency = m.histogram("worker_processing_latency_milliseconds", "Rescoring job latency in milliseconds")
	m.scheduledRuns = m.counterVec("scheduled_runs_total", "Scheduled job runs by job and status", "job", "status")

	m.errorsByComponent = m.counterVec("errors_by_component_total", "Errors by component", "component", "error_type")

	m.systemMemoryUsage = m.gauge("system_memory_usage_bytes", "Heap bytes allocated")
	m.systemGoroutineCount = m.gauge("system_goroutine_count", "Number of goroutines")
	m.systemGCPauseTime = promauto.With(m.registry).NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_gc_pause_time_milliseconds",
		Help:        "Average GC pause time in milliseconds",
		ConstLabels: m.constLabels,
		Buckets:     []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
	})
}

// RecordPrediction counts a served prediction.
func RecordPrediction(predictionType, tier string) {
	globalManager.predictions.WithLabelValues(predictionType, tier).Inc()
}

// RecordPredictionError counts a rejected prediction request.
func RecordPredictionError(predictionType, kind string) {
	globalManager.predictionErrors.WithLabelValues(predictionType, kind).Inc()
}

// RecordScoringLatency records engine latency in milliseconds.
func RecordScoringLatency(predictionType string, latencyMs float64) {
	globalManager.scoringLatency.WithLabelValues(predictionType).Observe(latencyMs)
}

// RecordLogAppend counts a prediction log append.
func RecordLogAppend() { globalManager.logAppends.Inc() }

// RecordLogError counts a failed prediction log append.
func RecordLogError() { globalManager.logErrors.Inc() }

// UpdateLogSize sets the number of records in the prediction log.
func UpdateLogSize(n int) { globalManager.logSize.Set(float64(n)) }

// UpdateDrift publishes the drift evaluation of one prediction type.
func UpdateDrift(predictionType string, maxDeviation float64, status int) {
	globalManager.driftDeviation.WithLabelValues(predictionType).Set(maxDeviation)
	globalManager.driftStatus.WithLabelValues(predictionType).Set(float64(status))
}

// RecordHealthCheck counts a model health evaluation.
func RecordHealthCheck() { globalManager.healthChecks.Inc() }

// RecordRepositoryLookup counts a CRM lookup. result is "hit" or "miss".
func RecordRepositoryLookup(entity, result string) {
	globalManager.repositoryLookups.WithLabelValues(entity, result).Inc()
}

// UpdateRankedLeads sets the number of ranked leads.
func UpdateRankedLeads(n int) { globalManager.rankedLeads.Set(float64(n)) }

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByEndpoint records an HTTP error.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordMCPRequest records a JSON-RPC request. status is "ok" or "error".
func RecordMCPRequest(method, status string) {
	globalManager.mcpRequests.WithLabelValues(method, status).Inc()
}

// UpdateQueueSize sets the current queue size and utilization.
func UpdateQueueSize(size, capacity int) {
	globalManager.queueSize.Set(float64(size))
	if capacity > 0 {
		globalManager.queueUtilization.Set(float64(size) / float64(capacity))
	}
}

// UpdateQueueCapacity sets the maximum queue capacity.
func UpdateQueueCapacity(capacity int) { globalManager.queueCapacity.Set(float64(capacity)) }

// RecordQueueEnqueue counts an enqueued job.
func RecordQueueEnqueue() { globalManager.queueEnqueued.Inc() }

// RecordQueueDequeue counts a dequeued job.
func RecordQueueDequeue() { globalManager.queueDequeued.Inc() }

// RecordQueueEnqueueError counts a rejected enqueue.
func RecordQueueEnqueueError(reason string) {
	globalManager.queueEnqueueErrors.WithLabelValues(reason).Inc()
}

// UpdateWorkerCount sets the number of running workers.
func UpdateWorkerCount(n int) { globalManager.workerCount.Set(float64(n)) }

// RecordJobProcessed counts a finished rescoring job.
func RecordJobProcessed(kind, status string) {
	globalManager.jobsProcessed.WithLabelValues(kind, status).Inc()
}

// RecordWorkerProcessingLatency records job latency in milliseconds.
func RecordWorkerProcessingLatency(latencyMs float64) {
	globalManager.workerProcessingLatency.Observe(latencyMs)
}

// RecordScheduledRun counts a cron job run.
func RecordScheduledRun(job, status string) {
	globalManager.scheduledRuns.WithLabelValues(job, status).Inc()
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// UpdateSystemMemoryUsage sets heap usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) { globalManager.systemMemoryUsage.Set(float64(bytes)) }

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) { globalManager.systemGoroutineCount.Set(float64(count)) }

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) { globalManager.systemGCPauseTime.Observe(pauseMs) }

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

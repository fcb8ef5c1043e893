package leaderboardmetrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// LeaderboardMetrics records leaderboard module telemetry.
type LeaderboardMetrics interface {
	RecordOperationAttempt(operationName string)
	RecordOperationSuccess(operationName string)
	RecordOperationFailure(operationName string)
	RecordOperationDuration(operationName string, seconds float64)

	RecordHandlerAttempt(handlerName string)
	RecordHandlerSuccess(handlerName string)
	RecordHandlerFailure(handlerName string)
	RecordHandlerDuration(handlerName string, seconds float64)

	RecordClassification(scope string, entries int)
	RecordChartRendered(scope string)
	RecordExportGenerated(format string)
}

type prometheusMetrics struct {
	operationAttempts  *prometheus.CounterVec
	operationSuccesses *prometheus.CounterVec
	operationFailures  *prometheus.CounterVec
	operationDuration  *prometheus.HistogramVec

	handlerAttempts  *prometheus.CounterVec
	handlerSuccesses *prometheus.CounterVec
	handlerFailures  *prometheus.CounterVec
	handlerDuration  *prometheus.HistogramVec

	classifications    *prometheus.CounterVec
	classificationSize *prometheus.HistogramVec
	chartsRendered     *prometheus.CounterVec
	exportsGenerated   *prometheus.CounterVec
}

// NewLeaderboardMetrics registers the leaderboard collectors on the registry.
func NewLeaderboardMetrics(registry *prometheus.Registry) LeaderboardMetrics {
	m := &prometheusMetrics{
		operationAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "leaderboard_operation_attempts_total",
			Help: "Number of leaderboard service operation attempts.",
		}, []string{"operation"}),
		operationSuccesses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "leaderboard_operation_successes_total",
			Help: "Number of successful leaderboard service operations.",
		}, []string{"operation"}),
		operationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "leaderboard_operation_failures_total",
			Help: "Number of failed leaderboard service operations.",
		}, []string{"operation"}),
		operationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "leaderboard_operation_duration_seconds",
			Help:    "Duration of leaderboard service operations.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		handlerAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "leaderboard_handler_attempts_total",
			Help: "Number of leaderboard handler attempts.",
		}, []string{"handler"}),
		handlerSuccesses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "leaderboard_handler_successes_total",
			Help: "Number of successful leaderboard handler runs.",
		}, []string{"handler"}),
		handlerFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "leaderboard_handler_failures_total",
			Help: "Number of failed leaderboard handler runs.",
		}, []string{"handler"}),
		handlerDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "leaderboard_handler_duration_seconds",
			Help:    "Duration of leaderboard handler runs.",
			Buckets: prometheus.DefBuckets,
		}, []string{"handler"}),
		classifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "leaderboard_classifications_total",
			Help: "Number of leaderboard classification runs.",
		}, []string{"scope"}),
		classificationSize: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "leaderboard_classification_entries",
			Help:    "Number of entries per classification run.",
			Buckets: []float64{1, 10, 50, 100, 500, 1000, 5000},
		}, []string{"scope"}),
		chartsRendered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "leaderboard_charts_rendered_total",
			Help: "Number of standings charts rendered.",
		}, []string{"scope"}),
		exportsGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "leaderboard_exports_generated_total",
			Help: "Number of leaderboard exports generated.",
		}, []string{"format"}),
	}

	registry.MustRegister(
		m.operationAttempts, m.operationSuccesses, m.operationFailures, m.operationDuration,
		m.handlerAttempts, m.handlerSuccesses, m.handlerFailures, m.handlerDuration,
		m.classifications, m.classificationSize, m.chartsRendered, m.exportsGenerated,
	)
	return m
}

func (m *prometheusMetrics) RecordOperationAttempt(operationName string) {
	m.operationAttempts.WithLabelValues(operationName).Inc()
}

func (m *prometheusMetrics) RecordOperationSuccess(operationName string) {
	m.operationSuccesses.WithLabelValues(operationName).Inc()
}

func (m *prometheusMetrics) RecordOperationFailure(operationName string) {
	m.operationFailures.WithLabelValues(operationName).Inc()
}

func (m *prometheusMetrics) RecordOperationDuration(operationName string, seconds float64) {
	m.operationDuration.WithLabelValues(operationName).Observe(seconds)
}

func (m *prometheusMetrics) RecordHandlerAttempt(handlerName string) {
	m.handlerAttempts.WithLabelValues(handlerName).Inc()
}

func (m *prometheusMetrics) RecordHandlerSuccess(handlerName string) {
	m.handlerSuccesses.WithLabelValues(handlerName).Inc()
}

func (m *prometheusMetrics) RecordHandlerFailure(handlerName string) {
	m.handlerFailures.WithLabelValues(handlerName).Inc()
}

func (m *prometheusMetrics) RecordHandlerDuration(handlerName string, seconds float64) {
	m.handlerDuration.WithLabelValues(handlerName).Observe(seconds)
}

func (m *prometheusMetrics) RecordClassification(scope string, entries int) {
	m.classifications.WithLabelValues(scope).Inc()
	m.classificationSize.WithLabelValues(scope).Observe(float64(entries))
}

func (m *prometheusMetrics) RecordChartRendered(scope string) {
	m.chartsRendered.WithLabelValues(scope).Inc()
}

func (m *prometheusMetrics) RecordExportGenerated(format string) {
	m.exportsGenerated.WithLabelValues(format).Inc()
}

// NoOpMetrics discards all measurements; used in tests.
type NoOpMetrics struct{}

func (NoOpMetrics) RecordOperationAttempt(string)           {}
func (NoOpMetrics) RecordOperationSuccess(string)           {}
func (NoOpMetrics) RecordOperationFailure(string)           {}
func (NoOpMetrics) RecordOperationDuration(string, float64) {}
func (NoOpMetrics) RecordHandlerAttempt(string)             {}
func (NoOpMetrics) RecordHandlerSuccess(string)             {}
func (NoOpMetrics) RecordHandlerFailure(string)             {}
func (NoOpMetrics) RecordHandlerDuration(string, float64)   {}
func (NoOpMetrics) RecordClassification(string, int)        {}
func (NoOpMetrics) RecordChartRendered(string)              {}
func (NoOpMetrics) RecordExportGenerated(string)            {}

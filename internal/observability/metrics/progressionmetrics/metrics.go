package progressionmetrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// ProgressionMetrics records progression module telemetry.
type ProgressionMetrics interface {
	RecordOperationAttempt(operationName string)
	RecordOperationSuccess(operationName string)
	RecordOperationFailure(operationName string)
	RecordOperationDuration(operationName string, seconds float64)

	RecordHandlerAttempt(handlerName string)
	RecordHandlerSuccess(handlerName string)
	RecordHandlerFailure(handlerName string)
	RecordHandlerDuration(handlerName string, seconds float64)

	RecordCompletion(activityKind string)
	RecordCompletionRejected(reason string)
	RecordFuelAwarded(points float64)
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

	completions          *prometheus.CounterVec
	completionsRejected  *prometheus.CounterVec
	fuelAwarded          prometheus.Counter
}

// NewProgressionMetrics registers the progression collectors on the registry.
func NewProgressionMetrics(registry *prometheus.Registry) ProgressionMetrics {
	m := &prometheusMetrics{
		operationAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "progression_operation_attempts_total",
			Help: "Number of progression service operation attempts.",
		}, []string{"operation"}),
		operationSuccesses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "progression_operation_successes_total",
			Help: "Number of successful progression service operations.",
		}, []string{"operation"}),
		operationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "progression_operation_failures_total",
			Help: "Number of failed progression service operations.",
		}, []string{"operation"}),
		operationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "progression_operation_duration_seconds",
			Help:    "Duration of progression service operations.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		handlerAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "progression_handler_attempts_total",
			Help: "Number of progression handler attempts.",
		}, []string{"handler"}),
		handlerSuccesses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "progression_handler_successes_total",
			Help: "Number of successful progression handler runs.",
		}, []string{"handler"}),
		handlerFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "progression_handler_failures_total",
			Help: "Number of failed progression handler runs.",
		}, []string{"handler"}),
		handlerDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "progression_handler_duration_seconds",
			Help:    "Duration of progression handler runs.",
			Buckets: prometheus.DefBuckets,
		}, []string{"handler"}),
		completions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "progression_completions_total",
			Help: "Number of recorded activity completions.",
		}, []string{"activity_kind"}),
		completionsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "progression_completions_rejected_total",
			Help: "Number of rejected activity completions.",
		}, []string{"reason"}),
		fuelAwarded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "progression_fuel_points_awarded_total",
			Help: "Total fuel points awarded for completions.",
		}),
	}

	registry.MustRegister(
		m.operationAttempts, m.operationSuccesses, m.operationFailures, m.operationDuration,
		m.handlerAttempts, m.handlerSuccesses, m.handlerFailures, m.handlerDuration,
		m.completions, m.completionsRejected, m.fuelAwarded,
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

func (m *prometheusMetrics) RecordCompletion(activityKind string) {
	m.completions.WithLabelValues(activityKind).Inc()
}

func (m *prometheusMetrics) RecordCompletionRejected(reason string) {
	m.completionsRejected.WithLabelValues(reason).Inc()
}

func (m *prometheusMetrics) RecordFuelAwarded(points float64) {
	m.fuelAwarded.Add(points)
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
func (NoOpMetrics) RecordCompletion(string)                 {}
func (NoOpMetrics) RecordCompletionRejected(string)         {}
func (NoOpMetrics) RecordFuelAwarded(float64)               {}

package streakmetrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// StreakMetrics records streak module telemetry.
type StreakMetrics interface {
	RecordOperationAttempt(operationName string)
	RecordOperationSuccess(operationName string)
	RecordOperationFailure(operationName string)
	RecordOperationDuration(operationName string, seconds float64)

	RecordHandlerAttempt(handlerName string)
	RecordHandlerSuccess(handlerName string)
	RecordHandlerFailure(handlerName string)
	RecordHandlerDuration(handlerName string, seconds float64)

	RecordStreakAdvanced(category string)
	RecordStreakReset(category string)
	RecordMilestoneReached(milestoneDay int)
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

	streaksAdvanced    *prometheus.CounterVec
	streaksReset       *prometheus.CounterVec
	milestonesReached  *prometheus.CounterVec
}

// NewStreakMetrics registers the streak collectors on the given registry.
func NewStreakMetrics(registry *prometheus.Registry) StreakMetrics {
	m := &prometheusMetrics{
		operationAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "streak_operation_attempts_total",
			Help: "Number of streak service operation attempts.",
		}, []string{"operation"}),
		operationSuccesses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "streak_operation_successes_total",
			Help: "Number of successful streak service operations.",
		}, []string{"operation"}),
		operationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "streak_operation_failures_total",
			Help: "Number of failed streak service operations.",
		}, []string{"operation"}),
		operationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "streak_operation_duration_seconds",
			Help:    "Duration of streak service operations.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		handlerAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "streak_handler_attempts_total",
			Help: "Number of streak handler attempts.",
		}, []string{"handler"}),
		handlerSuccesses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "streak_handler_successes_total",
			Help: "Number of successful streak handler runs.",
		}, []string{"handler"}),
		handlerFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "streak_handler_failures_total",
			Help: "Number of failed streak handler runs.",
		}, []string{"handler"}),
		handlerDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "streak_handler_duration_seconds",
			Help:    "Duration of streak handler runs.",
			Buckets: prometheus.DefBuckets,
		}, []string{"handler"}),
		streaksAdvanced: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "streak_advanced_total",
			Help: "Number of streak advancements.",
		}, []string{"category"}),
		streaksReset: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "streak_reset_total",
			Help: "Number of streak resets.",
		}, []string{"category"}),
		milestonesReached: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "streak_milestones_reached_total",
			Help: "Number of streak milestones reached.",
		}, []string{"milestone_day"}),
	}

	registry.MustRegister(
		m.operationAttempts, m.operationSuccesses, m.operationFailures, m.operationDuration,
		m.handlerAttempts, m.handlerSuccesses, m.handlerFailures, m.handlerDuration,
		m.streaksAdvanced, m.streaksReset, m.milestonesReached,
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

func (m *prometheusMetrics) RecordStreakAdvanced(category string) {
	m.streaksAdvanced.WithLabelValues(category).Inc()
}

func (m *prometheusMetrics) RecordStreakReset(category string) {
	m.streaksReset.WithLabelValues(category).Inc()
}

func (m *prometheusMetrics) RecordMilestoneReached(milestoneDay int) {
	m.milestonesReached.WithLabelValues(strconv.Itoa(milestoneDay)).Inc()
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
func (NoOpMetrics) RecordStreakAdvanced(string)             {}
func (NoOpMetrics) RecordStreakReset(string)                {}
func (NoOpMetrics) RecordMilestoneReached(int)              {}

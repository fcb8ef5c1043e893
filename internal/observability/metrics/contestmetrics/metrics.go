package contestmetrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// ContestMetrics records contest module telemetry.
type ContestMetrics interface {
	RecordOperationAttempt(operationName string)
	RecordOperationSuccess(operationName string)
	RecordOperationFailure(operationName string)
	RecordOperationDuration(operationName string, seconds float64)

	RecordHandlerAttempt(handlerName string)
	RecordHandlerSuccess(handlerName string)
	RecordHandlerFailure(handlerName string)
	RecordHandlerDuration(handlerName string, seconds float64)

	RecordRegistration(outcome string)
	RecordVerification(contestStatus string)
	RecordStatusTransition(from, to string)
	RecordJobScheduled(jobKind string)
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

	registrations     *prometheus.CounterVec
	verifications     *prometheus.CounterVec
	statusTransitions *prometheus.CounterVec
	jobsScheduled     *prometheus.CounterVec
}

// NewContestMetrics registers the contest collectors on the registry.
func NewContestMetrics(registry *prometheus.Registry) ContestMetrics {
	m := &prometheusMetrics{
		operationAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "contest_operation_attempts_total",
			Help: "Number of contest service operation attempts.",
		}, []string{"operation"}),
		operationSuccesses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "contest_operation_successes_total",
			Help: "Number of successful contest service operations.",
		}, []string{"operation"}),
		operationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "contest_operation_failures_total",
			Help: "Number of failed contest service operations.",
		}, []string{"operation"}),
		operationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "contest_operation_duration_seconds",
			Help:    "Duration of contest service operations.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		handlerAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "contest_handler_attempts_total",
			Help: "Number of contest handler attempts.",
		}, []string{"handler"}),
		handlerSuccesses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "contest_handler_successes_total",
			Help: "Number of successful contest handler runs.",
		}, []string{"handler"}),
		handlerFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "contest_handler_failures_total",
			Help: "Number of failed contest handler runs.",
		}, []string{"handler"}),
		handlerDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "contest_handler_duration_seconds",
			Help:    "Duration of contest handler runs.",
			Buckets: prometheus.DefBuckets,
		}, []string{"handler"}),
		registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "contest_registrations_total",
			Help: "Number of contest registration decisions.",
		}, []string{"outcome"}),
		verifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "contest_verifications_total",
			Help: "Number of contest verification submissions.",
		}, []string{"contest_status"}),
		statusTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "contest_status_transitions_total",
			Help: "Number of contest status transitions.",
		}, []string{"from", "to"}),
		jobsScheduled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "contest_jobs_scheduled_total",
			Help: "Number of contest background jobs scheduled.",
		}, []string{"job_kind"}),
	}

	registry.MustRegister(
		m.operationAttempts, m.operationSuccesses, m.operationFailures, m.operationDuration,
		m.handlerAttempts, m.handlerSuccesses, m.handlerFailures, m.handlerDuration,
		m.registrations, m.verifications, m.statusTransitions, m.jobsScheduled,
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

func (m *prometheusMetrics) RecordRegistration(outcome string) {
	m.registrations.WithLabelValues(outcome).Inc()
}

func (m *prometheusMetrics) RecordVerification(contestStatus string) {
	m.verifications.WithLabelValues(contestStatus).Inc()
}

func (m *prometheusMetrics) RecordStatusTransition(from, to string) {
	m.statusTransitions.WithLabelValues(from, to).Inc()
}

func (m *prometheusMetrics) RecordJobScheduled(jobKind string) {
	m.jobsScheduled.WithLabelValues(jobKind).Inc()
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
func (NoOpMetrics) RecordRegistration(string)               {}
func (NoOpMetrics) RecordVerification(string)               {}
func (NoOpMetrics) RecordStatusTransition(string, string)   {}
func (NoOpMetrics) RecordJobScheduled(string)               {}

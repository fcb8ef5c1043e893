package progressionhandlers

import (
	"log/slog"

	progressionservice "github.com/Ember-Habit-Club/habit-engine/app/modules/progression/application"
	"github.com/Ember-Habit-Club/habit-engine/internal/observability/metrics/progressionmetrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel/trace"
)

// Handlers is the progression module's watermill handler surface.
type Handlers interface {
	HandleActivityStartRequested(msg *message.Message) ([]*message.Message, error)
	HandleActivityCompletionRequested(msg *message.Message) ([]*message.Message, error)
}

// ProgressionHandlers translates progression events into service calls and
// outgoing events.
type ProgressionHandlers struct {
	service progressionservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
	metrics progressionmetrics.ProgressionMetrics
}

// NewProgressionHandlers creates the progression handler set.
func NewProgressionHandlers(
	service progressionservice.Service,
	logger *slog.Logger,
	tracer trace.Tracer,
	metrics progressionmetrics.ProgressionMetrics,
) Handlers {
	return &ProgressionHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
		metrics: metrics,
	}
}

package streakhandlers

import (
	"log/slog"

	streakservice "github.com/Ember-Habit-Club/habit-engine/app/modules/streak/application"
	"github.com/Ember-Habit-Club/habit-engine/internal/observability/metrics/streakmetrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel/trace"
)

// Handlers is the streak module's watermill handler surface.
type Handlers interface {
	HandleQualifyingActionRecorded(msg *message.Message) ([]*message.Message, error)
}

// StreakHandlers translates streak events into service calls and outgoing
// events.
type StreakHandlers struct {
	service streakservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
	metrics streakmetrics.StreakMetrics
}

// NewStreakHandlers creates the streak handler set.
func NewStreakHandlers(
	service streakservice.Service,
	logger *slog.Logger,
	tracer trace.Tracer,
	metrics streakmetrics.StreakMetrics,
) Handlers {
	return &StreakHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
		metrics: metrics,
	}
}

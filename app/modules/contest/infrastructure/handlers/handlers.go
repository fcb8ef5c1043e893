package contesthandlers

import (
	"log/slog"

	contestservice "github.com/Ember-Habit-Club/habit-engine/app/modules/contest/application"
	"github.com/Ember-Habit-Club/habit-engine/internal/observability/metrics/contestmetrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel/trace"
)

// Handlers is the contest module's message-handling contract.
type Handlers interface {
	HandleRegistrationRequested(msg *message.Message) ([]*message.Message, error)
	HandleRegistrationCancelRequested(msg *message.Message) ([]*message.Message, error)
	HandleVerificationSubmitted(msg *message.Message) ([]*message.Message, error)
	HandleContestStarted(msg *message.Message) ([]*message.Message, error)
	HandleLeaderboardClassified(msg *message.Message) ([]*message.Message, error)
}

// ContestHandlers implements Handlers.
type ContestHandlers struct {
	service contestservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
	metrics contestmetrics.ContestMetrics
}

// NewContestHandlers creates a new ContestHandlers.
func NewContestHandlers(
	service contestservice.Service,
	logger *slog.Logger,
	tracer trace.Tracer,
	metrics contestmetrics.ContestMetrics,
) Handlers {
	return &ContestHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
		metrics: metrics,
	}
}

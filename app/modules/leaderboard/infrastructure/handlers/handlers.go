package leaderboardhandlers

import (
	"log/slog"

	leaderboardservice "github.com/Ember-Habit-Club/habit-engine/app/modules/leaderboard/application"
	"github.com/Ember-Habit-Club/habit-engine/internal/observability/metrics/leaderboardmetrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel/trace"
)

// Handlers is the leaderboard module's message-handling contract.
type Handlers interface {
	HandleClassificationRequested(msg *message.Message) ([]*message.Message, error)
	HandleSettlementDue(msg *message.Message) ([]*message.Message, error)
}

// LeaderboardHandlers implements Handlers.
type LeaderboardHandlers struct {
	service leaderboardservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
	metrics leaderboardmetrics.LeaderboardMetrics
}

// NewLeaderboardHandlers creates a new LeaderboardHandlers.
func NewLeaderboardHandlers(
	service leaderboardservice.Service,
	logger *slog.Logger,
	tracer trace.Tracer,
	metrics leaderboardmetrics.LeaderboardMetrics,
) Handlers {
	return &LeaderboardHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
		metrics: metrics,
	}
}

package leaderboardservice

import (
	"context"
	"time"

	leaderboarddomain "github.com/Ember-Habit-Club/habit-engine/app/modules/leaderboard/domain"
	"github.com/Ember-Habit-Club/habit-engine/internal/events/leaderboardevents"
	"github.com/Ember-Habit-Club/habit-engine/internal/results"
	sharedtypes "github.com/Ember-Habit-Club/habit-engine/internal/types/shared"
)

// Query selects a leaderboard source: global totals, one community's
// totals, or one contest's standings.
type Query struct {
	Scope       sharedtypes.LeaderboardScope
	CommunityID sharedtypes.CommunityID
	ContestID   sharedtypes.ContestID
	PeriodStart time.Time
}

// Service is the leaderboard module's application contract.
type Service interface {
	Classify(ctx context.Context, payload leaderboardevents.ClassificationRequestedPayloadV1) (results.OperationResult, error)

	GetLeaderboard(ctx context.Context, query Query) (leaderboarddomain.Classification, error)
	RenderChart(ctx context.Context, query Query) ([]byte, error)
	ExportXLSX(ctx context.Context, query Query) ([]byte, error)
}

package leaderboardhandlers

import (
	"context"

	leaderboardservice "github.com/Ember-Habit-Club/habit-engine/app/modules/leaderboard/application"
	leaderboarddomain "github.com/Ember-Habit-Club/habit-engine/app/modules/leaderboard/domain"
	"github.com/Ember-Habit-Club/habit-engine/internal/events/leaderboardevents"
	"github.com/Ember-Habit-Club/habit-engine/internal/results"
)

// fakeLeaderboardService is a function-field fake of the leaderboard service.
type fakeLeaderboardService struct {
	ClassifyFunc func(ctx context.Context, payload leaderboardevents.ClassificationRequestedPayloadV1) (results.OperationResult, error)
}

func (f *fakeLeaderboardService) Classify(ctx context.Context, payload leaderboardevents.ClassificationRequestedPayloadV1) (results.OperationResult, error) {
	if f.ClassifyFunc != nil {
		return f.ClassifyFunc(ctx, payload)
	}
	return results.OperationResult{}, nil
}

func (f *fakeLeaderboardService) GetLeaderboard(ctx context.Context, query leaderboardservice.Query) (leaderboarddomain.Classification, error) {
	return leaderboarddomain.Classification{}, nil
}

func (f *fakeLeaderboardService) RenderChart(ctx context.Context, query leaderboardservice.Query) ([]byte, error) {
	return nil, nil
}

func (f *fakeLeaderboardService) ExportXLSX(ctx context.Context, query leaderboardservice.Query) ([]byte, error) {
	return nil, nil
}

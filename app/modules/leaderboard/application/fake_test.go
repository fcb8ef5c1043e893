package leaderboardservice

import (
	"context"
	"time"

	leaderboarddomain "github.com/Ember-Habit-Club/habit-engine/app/modules/leaderboard/domain"
	sharedtypes "github.com/Ember-Habit-Club/habit-engine/internal/types/shared"
)

// fakeLeaderboardDB is a function-field fake of the leaderboard repository.
type fakeLeaderboardDB struct {
	GlobalTotalsFunc     func(ctx context.Context, periodStart time.Time) ([]leaderboarddomain.Entry, error)
	CommunityTotalsFunc  func(ctx context.Context, communityID sharedtypes.CommunityID, periodStart time.Time) ([]leaderboarddomain.Entry, error)
	ContestStandingsFunc func(ctx context.Context, contestID sharedtypes.ContestID) ([]leaderboarddomain.Entry, error)
}

func (f *fakeLeaderboardDB) GlobalTotals(ctx context.Context, periodStart time.Time) ([]leaderboarddomain.Entry, error) {
	if f.GlobalTotalsFunc != nil {
		return f.GlobalTotalsFunc(ctx, periodStart)
	}
	return nil, nil
}

func (f *fakeLeaderboardDB) CommunityTotals(ctx context.Context, communityID sharedtypes.CommunityID, periodStart time.Time) ([]leaderboarddomain.Entry, error) {
	if f.CommunityTotalsFunc != nil {
		return f.CommunityTotalsFunc(ctx, communityID, periodStart)
	}
	return nil, nil
}

func (f *fakeLeaderboardDB) ContestStandings(ctx context.Context, contestID sharedtypes.ContestID) ([]leaderboarddomain.Entry, error) {
	if f.ContestStandingsFunc != nil {
		return f.ContestStandingsFunc(ctx, contestID)
	}
	return nil, nil
}

package leaderboarddb

import (
	"context"
	"time"

	leaderboarddomain "github.com/Ember-Habit-Club/habit-engine/app/modules/leaderboard/domain"
	sharedtypes "github.com/Ember-Habit-Club/habit-engine/internal/types/shared"
)

// LeaderboardDB is the read contract for leaderboard sources. The module
// owns no tables of its own; rankings are recomputed from the fuel ledger
// and contest registrations on every read.
type LeaderboardDB interface {
	// GlobalTotals sums fuel earned per user since periodStart.
	GlobalTotals(ctx context.Context, periodStart time.Time) ([]leaderboarddomain.Entry, error)

	// CommunityTotals sums fuel earned per user within one community since
	// periodStart.
	CommunityTotals(ctx context.Context, communityID sharedtypes.CommunityID, periodStart time.Time) ([]leaderboarddomain.Entry, error)

	// ContestStandings lists a contest's live registrants with their
	// verification counts as the ranking measure.
	ContestStandings(ctx context.Context, contestID sharedtypes.ContestID) ([]leaderboarddomain.Entry, error)
}

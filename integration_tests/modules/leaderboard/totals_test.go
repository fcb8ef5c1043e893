package leaderboardintegrationtests

import (
	"context"
	"testing"
	"time"

	contestdb "github.com/Ember-Habit-Club/habit-engine/app/modules/contest/infrastructure/repositories"
	leaderboarddb "github.com/Ember-Habit-Club/habit-engine/app/modules/leaderboard/infrastructure/repositories"
	progressiondb "github.com/Ember-Habit-Club/habit-engine/app/modules/progression/infrastructure/repositories"
	sharedtypes "github.com/Ember-Habit-Club/habit-engine/internal/types/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCompletion(t *testing.T, env *testEnvironment, userID sharedtypes.UserID, fuel sharedtypes.FuelPoints, completedAt time.Time) {
	t.Helper()

	row := &progressiondb.CompletedActivity{
		UserID:      userID,
		ActivityID:  "activity-1",
		Category:    "move",
		FuelEarned:  fuel,
		CompletedAt: completedAt,
	}
	_, err := env.BunDB.NewInsert().Model(row).Exec(context.Background())
	require.NoError(t, err)
}

func seedMembership(t *testing.T, env *testEnvironment, communityID sharedtypes.CommunityID, userID sharedtypes.UserID) {
	t.Helper()

	member := &contestdb.CommunityMember{CommunityID: communityID, UserID: userID}
	_, err := env.BunDB.NewInsert().Model(member).Exec(context.Background())
	require.NoError(t, err)
}

func TestCommunityTotals(t *testing.T) {
	env := getTestEnv(t)
	truncateLeaderboardSources(t, env.BunDB)

	ctx := context.Background()
	repo := &leaderboarddb.LeaderboardDBImpl{DB: env.BunDB}

	periodStart := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	inPeriod := periodStart.AddDate(0, 0, 5)

	seedMembership(t, env, "community-1", "member-a")
	seedMembership(t, env, "community-1", "member-b")
	seedMembership(t, env, "community-2", "outsider")

	seedCompletion(t, env, "member-a", 10, inPeriod)
	seedCompletion(t, env, "member-a", 15, inPeriod)
	seedCompletion(t, env, "member-b", 5, inPeriod)
	seedCompletion(t, env, "outsider", 100, inPeriod)
	seedCompletion(t, env, "member-b", 50, periodStart.AddDate(0, 0, -1))

	t.Run("community scope returns member totals", func(t *testing.T) {
		entries, err := repo.CommunityTotals(ctx, "community-1", periodStart)
		require.NoError(t, err)
		require.Len(t, entries, 2)

		totals := make(map[sharedtypes.UserID]sharedtypes.FuelPoints, len(entries))
		for _, entry := range entries {
			totals[entry.UserID] = entry.FuelPoints
		}
		assert.Equal(t, sharedtypes.FuelPoints(25), totals["member-a"])
		assert.Equal(t, sharedtypes.FuelPoints(5), totals["member-b"], "pre-period completions are excluded")
	})

	t.Run("other community sees only its members", func(t *testing.T) {
		entries, err := repo.CommunityTotals(ctx, "community-2", periodStart)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, sharedtypes.UserID("outsider"), entries[0].UserID)
		assert.Equal(t, sharedtypes.FuelPoints(100), entries[0].FuelPoints)
	})

	t.Run("global scope counts everyone", func(t *testing.T) {
		entries, err := repo.GlobalTotals(ctx, periodStart)
		require.NoError(t, err)
		assert.Len(t, entries, 3)
	})
}

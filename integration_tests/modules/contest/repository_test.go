package contestintegrationtests

import (
	"context"
	"testing"
	"time"

	contestdb "github.com/Ember-Habit-Club/habit-engine/app/modules/contest/infrastructure/repositories"
	leaderboarddb "github.com/Ember-Habit-Club/habit-engine/app/modules/leaderboard/infrastructure/repositories"
	"github.com/Ember-Habit-Club/habit-engine/integration_tests/testutils"
	sharedtypes "github.com/Ember-Habit-Club/habit-engine/internal/types/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var generator = testutils.NewTestDataGenerator(42)

func seedContest(t *testing.T, env *testEnvironment) *contestdb.Contest {
	t.Helper()

	contest := generator.NewContest(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))
	_, err := env.BunDB.NewInsert().Model(contest).Exec(context.Background())
	require.NoError(t, err)
	return contest
}

func TestRegistrationLifecycle(t *testing.T) {
	env := getTestEnv(t)
	truncateContestTables(t, env.BunDB)

	ctx := context.Background()
	repo := &contestdb.ContestDBImpl{DB: env.BunDB}
	contest := seedContest(t, env)

	entry := &contestdb.CreditLedgerEntry{UserID: "user-1", Delta: 2, Reason: "grant"}
	_, err := env.BunDB.NewInsert().Model(entry).Exec(ctx)
	require.NoError(t, err)

	registration := &contestdb.ContestRegistration{
		ContestID:             contest.ID,
		UserID:                "user-1",
		VerificationsRequired: contest.VerificationsGoal,
		RegisteredAt:          time.Now().UTC(),
	}

	t.Run("register debits the entry fee", func(t *testing.T) {
		require.NoError(t, repo.RegisterWithCredit(ctx, registration, contest.EntryFeeCredits))

		balance, err := repo.CreditBalance(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, 1, balance)

		count, err := repo.CountRegistrations(ctx, contest.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("duplicate registration is rejected", func(t *testing.T) {
		err := repo.RegisterWithCredit(ctx, registration, contest.EntryFeeCredits)
		assert.ErrorIs(t, err, contestdb.ErrRegistrationExists)

		balance, err := repo.CreditBalance(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, 1, balance, "failed registration must not debit")
	})

	t.Run("cancel refunds the entry fee", func(t *testing.T) {
		require.NoError(t, repo.CancelWithRefund(ctx, contest.ID, "user-1", contest.EntryFeeCredits))

		stored, err := repo.GetRegistration(ctx, contest.ID, "user-1")
		require.NoError(t, err)
		assert.True(t, stored.Cancelled)

		balance, err := repo.CreditBalance(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, 2, balance)

		count, err := repo.CountRegistrations(ctx, contest.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, count, "cancelled registrations do not count")
	})

	t.Run("cancelling twice fails", func(t *testing.T) {
		err := repo.CancelWithRefund(ctx, contest.ID, "user-1", contest.EntryFeeCredits)
		assert.ErrorIs(t, err, contestdb.ErrRegistrationNotFound)
	})

	t.Run("re-registration reactivates the cancelled row", func(t *testing.T) {
		require.NoError(t, repo.RegisterWithCredit(ctx, registration, contest.EntryFeeCredits))

		stored, err := repo.GetRegistration(ctx, contest.ID, "user-1")
		require.NoError(t, err)
		assert.False(t, stored.Cancelled)
		assert.Equal(t, 0, stored.VerificationCount)

		balance, err := repo.CreditBalance(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, 1, balance)
	})

	t.Run("verification progress persists", func(t *testing.T) {
		stored, err := repo.GetRegistration(ctx, contest.ID, "user-1")
		require.NoError(t, err)

		stored.VerificationCount = 3
		require.NoError(t, repo.UpdateVerification(ctx, stored))

		reloaded, err := repo.GetRegistration(ctx, contest.ID, "user-1")
		require.NoError(t, err)
		assert.Equal(t, 3, reloaded.VerificationCount)
	})
}

func TestContestStandings(t *testing.T) {
	env := getTestEnv(t)
	truncateContestTables(t, env.BunDB)

	ctx := context.Background()
	repo := &contestdb.ContestDBImpl{DB: env.BunDB}
	leaderboardRepo := &leaderboarddb.LeaderboardDBImpl{DB: env.BunDB}
	contest := seedContest(t, env)

	for _, seed := range []struct {
		userID string
		count  int
	}{
		{"user-a", 5},
		{"user-b", 8},
		{"user-c", 2},
	} {
		registration := &contestdb.ContestRegistration{
			ContestID:             contest.ID,
			UserID:                sharedtypes.UserID(seed.userID),
			VerificationsRequired: contest.VerificationsGoal,
			RegisteredAt:          time.Now().UTC(),
		}
		require.NoError(t, repo.RegisterWithCredit(ctx, registration, 0))

		registration.VerificationCount = seed.count
		require.NoError(t, repo.UpdateVerification(ctx, registration))
	}

	entries, err := leaderboardRepo.ContestStandings(ctx, contest.ID)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	totals := make(map[sharedtypes.UserID]sharedtypes.FuelPoints, len(entries))
	for _, entry := range entries {
		totals[entry.UserID] = entry.FuelPoints
	}
	assert.Equal(t, sharedtypes.FuelPoints(8), totals["user-b"])
	assert.Equal(t, sharedtypes.FuelPoints(5), totals["user-a"])
	assert.Equal(t, sharedtypes.FuelPoints(2), totals["user-c"])
}

package contestservice

import (
	"context"
	"errors"
	"testing"
	"time"

	contestdb "github.com/Ember-Habit-Club/habit-engine/app/modules/contest/infrastructure/repositories"
	"github.com/Ember-Habit-Club/habit-engine/internal/events/contestevents"
	sharedtypes "github.com/Ember-Habit-Club/habit-engine/internal/types/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartContest(t *testing.T) {
	startedAt := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	started := contestevents.ContestStartedPayloadV1{ContestID: "contest-1", StartedAt: startedAt}

	registrations := func(userIDs ...sharedtypes.UserID) []contestdb.ContestRegistration {
		rows := make([]contestdb.ContestRegistration, 0, len(userIDs))
		for _, userID := range userIDs {
			rows = append(rows, contestdb.ContestRegistration{
				ContestID: "contest-1", UserID: userID, VerificationsRequired: 8,
			})
		}
		return rows
	}

	repoWith := func(contest *contestdb.Contest, regs []contestdb.ContestRegistration) *fakeContestDB {
		return &fakeContestDB{
			GetContestFunc: func(context.Context, sharedtypes.ContestID) (*contestdb.Contest, error) {
				return contest, nil
			},
			ListRegistrationsFunc: func(context.Context, sharedtypes.ContestID) ([]contestdb.ContestRegistration, error) {
				return regs, nil
			},
		}
	}

	t.Run("under minimum cancels with refunds and drops jobs", func(t *testing.T) {
		contest := testContestRow()
		contest.MinPlayers = 3
		repo := repoWith(contest, registrations("user-1", "user-2"))
		queue := &fakeQueueService{}

		result, err := newTestService(repo, queue).StartContest(context.Background(), started)
		require.NoError(t, err)
		require.True(t, result.IsSuccess())

		cancelled := result.Success.(*contestevents.ContestCancelledPayloadV1)
		assert.Equal(t, ReasonBelowMinimum, cancelled.Reason)
		assert.Equal(t, 2, cancelled.Registrants)
		assert.Equal(t, 3, cancelled.MinPlayers)
		assert.Equal(t, startedAt, cancelled.CancelledAt)

		assert.Equal(t, []sharedtypes.UserID{"user-1", "user-2"}, repo.cancelled)
		assert.Equal(t, []int{1, 1}, repo.refundFees, "every registrant gets the entry fee back")
		assert.Equal(t, []sharedtypes.ContestID{"contest-1"}, queue.cancelledJobs)
	})

	t.Run("at minimum proceeds without output", func(t *testing.T) {
		contest := testContestRow()
		contest.MinPlayers = 2
		repo := repoWith(contest, registrations("user-1", "user-2"))
		queue := &fakeQueueService{}

		result, err := newTestService(repo, queue).StartContest(context.Background(), started)
		require.NoError(t, err)
		assert.False(t, result.IsSuccess())
		assert.False(t, result.IsFailure())
		assert.Empty(t, repo.cancelled)
		assert.Empty(t, queue.cancelledJobs)
	})

	t.Run("no minimum means any turnout starts", func(t *testing.T) {
		contest := testContestRow()
		contest.MinPlayers = 0
		repo := repoWith(contest, nil)

		result, err := newTestService(repo, &fakeQueueService{}).StartContest(context.Background(), started)
		require.NoError(t, err)
		assert.False(t, result.IsSuccess())
		assert.Empty(t, repo.cancelled)
	})

	t.Run("free contest refunds nothing but still cancels", func(t *testing.T) {
		contest := testContestRow()
		contest.MinPlayers = 2
		contest.EntryFeeCredits = 0
		repo := repoWith(contest, registrations("user-1"))

		result, err := newTestService(repo, &fakeQueueService{}).StartContest(context.Background(), started)
		require.NoError(t, err)
		require.True(t, result.IsSuccess())
		assert.Equal(t, []int{0}, repo.refundFees)
	})

	t.Run("unknown contest is a stale job no-op", func(t *testing.T) {
		result, err := newTestService(&fakeContestDB{}, &fakeQueueService{}).StartContest(context.Background(), started)
		require.NoError(t, err)
		assert.False(t, result.IsSuccess())
		assert.False(t, result.IsFailure())
	})

	t.Run("repository error propagates for retry", func(t *testing.T) {
		contest := testContestRow()
		contest.MinPlayers = 3
		repo := repoWith(contest, registrations("user-1"))
		repo.CancelWithRefundErr = errors.New("connection refused")

		_, err := newTestService(repo, &fakeQueueService{}).StartContest(context.Background(), started)
		require.Error(t, err)
	})

	t.Run("queue error propagates for retry", func(t *testing.T) {
		contest := testContestRow()
		contest.MinPlayers = 3
		repo := repoWith(contest, registrations("user-1"))
		queue := &fakeQueueService{CancelJobsErr: errors.New("river unavailable")}

		_, err := newTestService(repo, queue).StartContest(context.Background(), started)
		require.Error(t, err)
	})
}

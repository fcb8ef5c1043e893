package contestservice

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	contestdb "github.com/Ember-Habit-Club/habit-engine/app/modules/contest/infrastructure/repositories"
	"github.com/Ember-Habit-Club/habit-engine/internal/events/contestevents"
	"github.com/Ember-Habit-Club/habit-engine/internal/observability/metrics/contestmetrics"
	sharedtypes "github.com/Ember-Habit-Club/habit-engine/internal/types/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

func newTestService(repo *fakeContestDB, queue *fakeQueueService) *ContestService {
	return NewContestService(
		repo,
		queue,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		contestmetrics.NoOpMetrics{},
		noop.NewTracerProvider().Tracer("test"),
	)
}

func testContestRow() *contestdb.Contest {
	return &contestdb.Contest{
		ID:                  "contest-1",
		Name:                "Summer Burn",
		StartDate:           time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC),
		RegistrationEndDate: time.Date(2026, time.May, 28, 0, 0, 0, 0, time.UTC),
		DurationDays:        30,
		EntryFeeCredits:     1,
		MinPlayers:          2,
		MaxPlayers:          100,
		VerificationsGoal:   8,
	}
}

func TestRegister(t *testing.T) {
	requestedAt := time.Date(2026, time.May, 20, 12, 0, 0, 0, time.UTC)
	request := contestevents.RegistrationRequestedPayloadV1{
		ContestID: "contest-1", UserID: "user-1", RequestedAt: requestedAt,
	}

	t.Run("eligible registration consumes credit and schedules jobs", func(t *testing.T) {
		repo := &fakeContestDB{
			GetContestFunc: func(context.Context, sharedtypes.ContestID) (*contestdb.Contest, error) {
				return testContestRow(), nil
			},
			CreditBalanceFunc: func(context.Context, sharedtypes.UserID) (int, error) { return 1, nil },
		}
		queue := &fakeQueueService{}

		result, err := newTestService(repo, queue).Register(context.Background(), request)
		require.NoError(t, err)
		require.True(t, result.IsSuccess())

		accepted, ok := result.Success.(*contestevents.RegistrationAcceptedPayloadV1)
		require.True(t, ok)
		assert.True(t, accepted.CreditConsumed)
		assert.Equal(t, 8, accepted.VerificationsRequired)

		require.Len(t, repo.registered, 1)
		assert.Equal(t, 8, repo.registered[0].VerificationsRequired)
		assert.Equal(t, []int{1}, repo.registerFees)
		assert.Equal(t, []sharedtypes.ContestID{"contest-1"}, queue.startJobs)
		assert.Equal(t, []sharedtypes.ContestID{"contest-1"}, queue.settlementJobs)
	})

	t.Run("free contest skips the credit check", func(t *testing.T) {
		repo := &fakeContestDB{
			GetContestFunc: func(context.Context, sharedtypes.ContestID) (*contestdb.Contest, error) {
				row := testContestRow()
				row.EntryFeeCredits = 0
				return row, nil
			},
			CreditBalanceFunc: func(context.Context, sharedtypes.UserID) (int, error) {
				t.Fatal("credit balance should not be read for a free contest")
				return 0, nil
			},
		}

		result, err := newTestService(repo, &fakeQueueService{}).Register(context.Background(), request)
		require.NoError(t, err)
		require.True(t, result.IsSuccess())

		accepted := result.Success.(*contestevents.RegistrationAcceptedPayloadV1)
		assert.False(t, accepted.CreditConsumed)
		assert.Equal(t, []int{0}, repo.registerFees)
	})

	t.Run("unknown contest is denied", func(t *testing.T) {
		result, err := newTestService(&fakeContestDB{}, &fakeQueueService{}).Register(context.Background(), request)
		require.NoError(t, err)
		require.True(t, result.IsFailure())

		denied := result.Failure.(*contestevents.RegistrationDeniedPayloadV1)
		assert.Equal(t, ReasonUnknownContest, denied.Reason)
	})

	t.Run("no credit is denied without writes", func(t *testing.T) {
		repo := &fakeContestDB{
			GetContestFunc: func(context.Context, sharedtypes.ContestID) (*contestdb.Contest, error) {
				return testContestRow(), nil
			},
		}
		queue := &fakeQueueService{}

		result, err := newTestService(repo, queue).Register(context.Background(), request)
		require.NoError(t, err)
		require.True(t, result.IsFailure())

		denied := result.Failure.(*contestevents.RegistrationDeniedPayloadV1)
		assert.Equal(t, "no entry credit available", denied.Reason)
		assert.Empty(t, repo.registered)
		assert.Empty(t, queue.startJobs)
	})

	t.Run("closed window is denied", func(t *testing.T) {
		repo := &fakeContestDB{
			GetContestFunc: func(context.Context, sharedtypes.ContestID) (*contestdb.Contest, error) {
				return testContestRow(), nil
			},
			CreditBalanceFunc: func(context.Context, sharedtypes.UserID) (int, error) { return 1, nil },
		}
		late := request
		late.RequestedAt = time.Date(2026, time.May, 28, 0, 0, 0, 0, time.UTC)

		result, err := newTestService(repo, &fakeQueueService{}).Register(context.Background(), late)
		require.NoError(t, err)
		require.True(t, result.IsFailure())
		assert.Equal(t, "registration window has closed", result.Failure.(*contestevents.RegistrationDeniedPayloadV1).Reason)
	})

	t.Run("existing registration is denied", func(t *testing.T) {
		repo := &fakeContestDB{
			GetContestFunc: func(context.Context, sharedtypes.ContestID) (*contestdb.Contest, error) {
				return testContestRow(), nil
			},
			GetRegistrationFunc: func(context.Context, sharedtypes.ContestID, sharedtypes.UserID) (*contestdb.ContestRegistration, error) {
				return &contestdb.ContestRegistration{ContestID: "contest-1", UserID: "user-1"}, nil
			},
			CreditBalanceFunc: func(context.Context, sharedtypes.UserID) (int, error) { return 1, nil },
		}

		result, err := newTestService(repo, &fakeQueueService{}).Register(context.Background(), request)
		require.NoError(t, err)
		require.True(t, result.IsFailure())
		assert.Equal(t, "already registered for this contest", result.Failure.(*contestevents.RegistrationDeniedPayloadV1).Reason)
	})

	t.Run("cancelled registration can re-register", func(t *testing.T) {
		repo := &fakeContestDB{
			GetContestFunc: func(context.Context, sharedtypes.ContestID) (*contestdb.Contest, error) {
				return testContestRow(), nil
			},
			GetRegistrationFunc: func(context.Context, sharedtypes.ContestID, sharedtypes.UserID) (*contestdb.ContestRegistration, error) {
				return &contestdb.ContestRegistration{ContestID: "contest-1", UserID: "user-1", Cancelled: true}, nil
			},
			CreditBalanceFunc: func(context.Context, sharedtypes.UserID) (int, error) { return 1, nil },
		}

		result, err := newTestService(repo, &fakeQueueService{}).Register(context.Background(), request)
		require.NoError(t, err)
		assert.True(t, result.IsSuccess())
	})

	t.Run("full contest is denied", func(t *testing.T) {
		repo := &fakeContestDB{
			GetContestFunc: func(context.Context, sharedtypes.ContestID) (*contestdb.Contest, error) {
				return testContestRow(), nil
			},
			CreditBalanceFunc:      func(context.Context, sharedtypes.UserID) (int, error) { return 1, nil },
			CountRegistrationsFunc: func(context.Context, sharedtypes.ContestID) (int, error) { return 100, nil },
		}

		result, err := newTestService(repo, &fakeQueueService{}).Register(context.Background(), request)
		require.NoError(t, err)
		require.True(t, result.IsFailure())
		assert.Equal(t, "contest is full", result.Failure.(*contestevents.RegistrationDeniedPayloadV1).Reason)
	})

	t.Run("community restriction is enforced", func(t *testing.T) {
		repo := &fakeContestDB{
			GetContestFunc: func(context.Context, sharedtypes.ContestID) (*contestdb.Contest, error) {
				row := testContestRow()
				row.CommunityID = "community-1"
				return row, nil
			},
			CreditBalanceFunc: func(context.Context, sharedtypes.UserID) (int, error) { return 1, nil },
		}

		result, err := newTestService(repo, &fakeQueueService{}).Register(context.Background(), request)
		require.NoError(t, err)
		require.True(t, result.IsFailure())
		assert.Equal(t, "contest is restricted to community members", result.Failure.(*contestevents.RegistrationDeniedPayloadV1).Reason)
	})

	t.Run("repository error propagates", func(t *testing.T) {
		repo := &fakeContestDB{
			GetContestFunc: func(context.Context, sharedtypes.ContestID) (*contestdb.Contest, error) {
				return nil, errors.New("db down")
			},
		}

		_, err := newTestService(repo, &fakeQueueService{}).Register(context.Background(), request)
		require.Error(t, err)
	})
}

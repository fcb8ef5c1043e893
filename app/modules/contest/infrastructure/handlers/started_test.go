package contesthandlers

import (
	"context"
	"testing"
	"time"

	"github.com/Ember-Habit-Club/habit-engine/internal/events/contestevents"
	"github.com/Ember-Habit-Club/habit-engine/internal/results"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleContestStarted(t *testing.T) {
	started := contestevents.ContestStartedPayloadV1{
		ContestID: "contest-1", StartedAt: time.Now(),
	}

	t.Run("under-subscribed contest emits cancelled event", func(t *testing.T) {
		handlers := newTestHandlers(&fakeContestService{
			StartContestFunc: func(context.Context, contestevents.ContestStartedPayloadV1) (results.OperationResult, error) {
				return results.OperationResult{Success: &contestevents.ContestCancelledPayloadV1{
					ContestID: "contest-1", Reason: "below minimum players",
					Registrants: 1, MinPlayers: 3,
				}}, nil
			},
		})

		out, err := handlers.HandleContestStarted(newTestMessage(t, started))
		require.NoError(t, err)
		assert.Equal(t, []string{contestevents.ContestCancelled}, topicsOf(out))
	})

	t.Run("contest at minimum produces no output", func(t *testing.T) {
		handlers := newTestHandlers(&fakeContestService{
			StartContestFunc: func(context.Context, contestevents.ContestStartedPayloadV1) (results.OperationResult, error) {
				return results.OperationResult{}, nil
			},
		})

		out, err := handlers.HandleContestStarted(newTestMessage(t, started))
		require.NoError(t, err)
		assert.Empty(t, out)
	})
}

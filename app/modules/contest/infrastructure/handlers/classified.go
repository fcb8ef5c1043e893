package contesthandlers

import (
	"context"
	"time"

	"github.com/Ember-Habit-Club/habit-engine/internal/events/contestevents"
	"github.com/Ember-Habit-Club/habit-engine/internal/events/leaderboardevents"
	"github.com/Ember-Habit-Club/habit-engine/internal/handlerwrapper"
	"github.com/ThreeDotsLabs/watermill/message"
)

// HandleLeaderboardClassified closes the settlement loop: once the
// leaderboard module has classified a contest's standings, announce the
// contest as settled. Classifications for non-contest scopes pass through
// without output.
func (h *ContestHandlers) HandleLeaderboardClassified(msg *message.Message) ([]*message.Message, error) {
	wrapped := handlerwrapper.Wrap(
		"HandleLeaderboardClassified",
		h.logger,
		h.metrics,
		h.tracer,
		func(ctx context.Context, payload *leaderboardevents.ClassifiedPayloadV1) ([]handlerwrapper.Result, error) {
			if payload.ContestID == "" {
				return nil, nil
			}

			return []handlerwrapper.Result{
				{Topic: contestevents.ContestSettled, Payload: &contestevents.ContestSettledPayloadV1{
					ContestID:   payload.ContestID,
					Registrants: len(payload.Entries),
					SettledAt:   time.Now().UTC(),
				}},
			}, nil
		},
	)
	return wrapped(msg)
}

package contesthandlers

import (
	"context"

	"github.com/Ember-Habit-Club/habit-engine/internal/events/contestevents"
	"github.com/Ember-Habit-Club/habit-engine/internal/handlerwrapper"
	"github.com/ThreeDotsLabs/watermill/message"
)

// HandleContestStarted checks the minimum player count when the scheduled
// start job fires. Contests that reached their minimum produce no output;
// under-subscribed ones are cancelled and announced.
func (h *ContestHandlers) HandleContestStarted(msg *message.Message) ([]*message.Message, error) {
	wrapped := handlerwrapper.Wrap(
		"HandleContestStarted",
		h.logger,
		h.metrics,
		h.tracer,
		func(ctx context.Context, payload *contestevents.ContestStartedPayloadV1) ([]handlerwrapper.Result, error) {
			result, err := h.service.StartContest(ctx, *payload)
			if err != nil {
				return nil, err
			}

			if !result.IsSuccess() {
				return nil, nil
			}

			return []handlerwrapper.Result{
				{Topic: contestevents.ContestCancelled, Payload: result.Success},
			}, nil
		},
	)
	return wrapped(msg)
}

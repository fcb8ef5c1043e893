package progressionhandlers

import (
	"context"

	"github.com/Ember-Habit-Club/habit-engine/internal/events/progressionevents"
	"github.com/Ember-Habit-Club/habit-engine/internal/handlerwrapper"
	"github.com/ThreeDotsLabs/watermill/message"
)

// HandleActivityStartRequested opens a progress record for a user.
func (h *ProgressionHandlers) HandleActivityStartRequested(msg *message.Message) ([]*message.Message, error) {
	wrapped := handlerwrapper.Wrap(
		"HandleActivityStartRequested",
		h.logger,
		h.metrics,
		h.tracer,
		func(ctx context.Context, payload *progressionevents.ActivityStartRequestedPayloadV1) ([]handlerwrapper.Result, error) {
			result, err := h.service.StartActivity(ctx, *payload)
			if err != nil {
				return nil, err
			}

			if result.IsFailure() {
				return []handlerwrapper.Result{
					{Topic: progressionevents.ActivityStartDenied, Payload: result.Failure},
				}, nil
			}

			return []handlerwrapper.Result{
				{Topic: progressionevents.ActivityStarted, Payload: result.Success},
			}, nil
		},
	)
	return wrapped(msg)
}

package contesthandlers

import (
	"context"
	"fmt"

	contestservice "github.com/Ember-Habit-Club/habit-engine/app/modules/contest/application"
	"github.com/Ember-Habit-Club/habit-engine/internal/events/contestevents"
	"github.com/Ember-Habit-Club/habit-engine/internal/handlerwrapper"
	"github.com/ThreeDotsLabs/watermill/message"
)

// HandleVerificationSubmitted records one verification post and, when the
// goal is crossed, also announces the registrant's completion.
func (h *ContestHandlers) HandleVerificationSubmitted(msg *message.Message) ([]*message.Message, error) {
	wrapped := handlerwrapper.Wrap(
		"HandleVerificationSubmitted",
		h.logger,
		h.metrics,
		h.tracer,
		func(ctx context.Context, payload *contestevents.VerificationSubmittedPayloadV1) ([]handlerwrapper.Result, error) {
			result, err := h.service.SubmitVerification(ctx, *payload)
			if err != nil {
				return nil, err
			}

			if result.IsFailure() {
				return []handlerwrapper.Result{
					{Topic: contestevents.VerificationDenied, Payload: result.Failure},
				}, nil
			}

			outcome, ok := result.Success.(*contestservice.VerificationOutcome)
			if !ok {
				return nil, fmt.Errorf("unexpected success payload type %T", result.Success)
			}

			out := []handlerwrapper.Result{
				{Topic: contestevents.VerificationRecorded, Payload: outcome.Recorded},
			}
			if outcome.Completed != nil {
				out = append(out, handlerwrapper.Result{
					Topic:   contestevents.ContestCompleted,
					Payload: outcome.Completed,
				})
			}
			return out, nil
		},
	)
	return wrapped(msg)
}

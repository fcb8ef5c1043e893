package streakhandlers

import (
	"context"
	"fmt"

	streakservice "github.com/Ember-Habit-Club/habit-engine/app/modules/streak/application"
	"github.com/Ember-Habit-Club/habit-engine/internal/events/streakevents"
	"github.com/Ember-Habit-Club/habit-engine/internal/handlerwrapper"
	"github.com/ThreeDotsLabs/watermill/message"
)

// HandleQualifyingActionRecorded applies a qualifying action to the user's
// streak and emits advancement and milestone events.
func (h *StreakHandlers) HandleQualifyingActionRecorded(msg *message.Message) ([]*message.Message, error) {
	wrapped := handlerwrapper.Wrap(
		"HandleQualifyingActionRecorded",
		h.logger,
		h.metrics,
		h.tracer,
		func(ctx context.Context, payload *streakevents.QualifyingActionRecordedPayloadV1) ([]handlerwrapper.Result, error) {
			result, err := h.service.RecordQualifyingAction(ctx, *payload)
			if err != nil {
				return nil, err
			}

			if result.IsFailure() {
				return []handlerwrapper.Result{
					{Topic: streakevents.QualifyingActionFailed, Payload: result.Failure},
				}, nil
			}

			outcome, ok := result.Success.(*streakservice.QualifyingActionOutcome)
			if !ok {
				return nil, fmt.Errorf("unexpected success payload type %T", result.Success)
			}

			var out []handlerwrapper.Result
			if outcome.Advanced != nil {
				out = append(out, handlerwrapper.Result{
					Topic:   streakevents.StreakAdvanced,
					Payload: outcome.Advanced,
				})
			}
			if outcome.Milestone != nil {
				out = append(out, handlerwrapper.Result{
					Topic:   streakevents.StreakMilestoneReached,
					Payload: outcome.Milestone,
				})
			}
			return out, nil
		},
	)
	return wrapped(msg)
}

package progressionhandlers

import (
	"context"
	"fmt"

	progressionservice "github.com/Ember-Habit-Club/habit-engine/app/modules/progression/application"
	"github.com/Ember-Habit-Club/habit-engine/internal/events/progressionevents"
	"github.com/Ember-Habit-Club/habit-engine/internal/events/streakevents"
	"github.com/Ember-Habit-Club/habit-engine/internal/handlerwrapper"
	"github.com/ThreeDotsLabs/watermill/message"
)

// HandleActivityCompletionRequested records one completion event and fans
// out progress, completion, and streak-qualifying events.
func (h *ProgressionHandlers) HandleActivityCompletionRequested(msg *message.Message) ([]*message.Message, error) {
	wrapped := handlerwrapper.Wrap(
		"HandleActivityCompletionRequested",
		h.logger,
		h.metrics,
		h.tracer,
		func(ctx context.Context, payload *progressionevents.ActivityCompletionRequestedPayloadV1) ([]handlerwrapper.Result, error) {
			result, err := h.service.RecordCompletion(ctx, *payload)
			if err != nil {
				return nil, err
			}

			if result.IsFailure() {
				return []handlerwrapper.Result{
					{Topic: progressionevents.ActivityCompletionDenied, Payload: result.Failure},
				}, nil
			}

			outcome, ok := result.Success.(*progressionservice.CompletionOutcome)
			if !ok {
				return nil, fmt.Errorf("unexpected success payload type %T", result.Success)
			}

			var out []handlerwrapper.Result
			if outcome.Progressed != nil {
				out = append(out, handlerwrapper.Result{
					Topic:   progressionevents.ActivityProgressed,
					Payload: outcome.Progressed,
				})
			}
			if outcome.Completed != nil {
				out = append(out, handlerwrapper.Result{
					Topic:   progressionevents.ActivityCompleted,
					Payload: outcome.Completed,
				})
			}
			if outcome.QualifyingAction != nil {
				out = append(out, handlerwrapper.Result{
					Topic:   streakevents.QualifyingActionRecorded,
					Payload: outcome.QualifyingAction,
				})
			}
			return out, nil
		},
	)
	return wrapped(msg)
}

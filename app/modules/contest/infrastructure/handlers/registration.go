package contesthandlers

import (
	"context"

	"github.com/Ember-Habit-Club/habit-engine/internal/events/contestevents"
	"github.com/Ember-Habit-Club/habit-engine/internal/handlerwrapper"
	"github.com/ThreeDotsLabs/watermill/message"
)

// HandleRegistrationRequested runs the registration preconditions and either
// accepts or denies the entry.
func (h *ContestHandlers) HandleRegistrationRequested(msg *message.Message) ([]*message.Message, error) {
	wrapped := handlerwrapper.Wrap(
		"HandleRegistrationRequested",
		h.logger,
		h.metrics,
		h.tracer,
		func(ctx context.Context, payload *contestevents.RegistrationRequestedPayloadV1) ([]handlerwrapper.Result, error) {
			result, err := h.service.Register(ctx, *payload)
			if err != nil {
				return nil, err
			}

			if result.IsFailure() {
				return []handlerwrapper.Result{
					{Topic: contestevents.RegistrationDenied, Payload: result.Failure},
				}, nil
			}

			return []handlerwrapper.Result{
				{Topic: contestevents.RegistrationAccepted, Payload: result.Success},
			}, nil
		},
	)
	return wrapped(msg)
}

// HandleRegistrationCancelRequested cancels a registration and refunds the
// entry credit.
func (h *ContestHandlers) HandleRegistrationCancelRequested(msg *message.Message) ([]*message.Message, error) {
	wrapped := handlerwrapper.Wrap(
		"HandleRegistrationCancelRequested",
		h.logger,
		h.metrics,
		h.tracer,
		func(ctx context.Context, payload *contestevents.RegistrationCancelRequestedPayloadV1) ([]handlerwrapper.Result, error) {
			result, err := h.service.CancelRegistration(ctx, *payload)
			if err != nil {
				return nil, err
			}

			if result.IsFailure() {
				return []handlerwrapper.Result{
					{Topic: contestevents.RegistrationDenied, Payload: result.Failure},
				}, nil
			}

			return []handlerwrapper.Result{
				{Topic: contestevents.RegistrationCancelled, Payload: result.Success},
			}, nil
		},
	)
	return wrapped(msg)
}

package leaderboardhandlers

import (
	"context"

	"github.com/Ember-Habit-Club/habit-engine/internal/events/contestevents"
	"github.com/Ember-Habit-Club/habit-engine/internal/events/leaderboardevents"
	"github.com/Ember-Habit-Club/habit-engine/internal/handlerwrapper"
	sharedtypes "github.com/Ember-Habit-Club/habit-engine/internal/types/shared"
	"github.com/ThreeDotsLabs/watermill/message"
)

// HandleClassificationRequested classifies the requested scope and publishes
// the full classified leaderboard.
func (h *LeaderboardHandlers) HandleClassificationRequested(msg *message.Message) ([]*message.Message, error) {
	wrapped := handlerwrapper.Wrap(
		"HandleClassificationRequested",
		h.logger,
		h.metrics,
		h.tracer,
		func(ctx context.Context, payload *leaderboardevents.ClassificationRequestedPayloadV1) ([]handlerwrapper.Result, error) {
			return h.classify(ctx, *payload)
		},
	)
	return wrapped(msg)
}

// HandleSettlementDue classifies a finished contest's standings. The contest
// module consumes the resulting classification to settle the contest.
func (h *LeaderboardHandlers) HandleSettlementDue(msg *message.Message) ([]*message.Message, error) {
	wrapped := handlerwrapper.Wrap(
		"HandleSettlementDue",
		h.logger,
		h.metrics,
		h.tracer,
		func(ctx context.Context, payload *contestevents.SettlementDuePayloadV1) ([]handlerwrapper.Result, error) {
			return h.classify(ctx, leaderboardevents.ClassificationRequestedPayloadV1{
				Scope:       sharedtypes.ScopeContest,
				ContestID:   payload.ContestID,
				PeriodStart: payload.DueAt,
			})
		},
	)
	return wrapped(msg)
}

func (h *LeaderboardHandlers) classify(ctx context.Context, request leaderboardevents.ClassificationRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	result, err := h.service.Classify(ctx, request)
	if err != nil {
		return nil, err
	}

	if result.IsFailure() {
		return []handlerwrapper.Result{
			{Topic: leaderboardevents.ClassificationFailed, Payload: result.Failure},
		}, nil
	}

	return []handlerwrapper.Result{
		{Topic: leaderboardevents.Classified, Payload: result.Success},
	}, nil
}

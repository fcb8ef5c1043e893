package contestservice

import (
	"context"
	"errors"
	"time"

	contestdomain "github.com/Ember-Habit-Club/habit-engine/app/modules/contest/domain"
	contestdb "github.com/Ember-Habit-Club/habit-engine/app/modules/contest/infrastructure/repositories"
	"github.com/Ember-Habit-Club/habit-engine/internal/events/contestevents"
	"github.com/Ember-Habit-Club/habit-engine/internal/results"
)

// CancelRegistration cancels a pending or active registration and refunds
// the consumed entry credit. Completed registrations cannot be cancelled.
func (s *ContestService) CancelRegistration(ctx context.Context, payload contestevents.RegistrationCancelRequestedPayloadV1) (results.OperationResult, error) {
	return s.serviceWrapper(ctx, "CancelRegistration", payload.ContestID, payload.UserID, func(ctx context.Context) (results.OperationResult, error) {
		now := payload.RequestedAt
		if now.IsZero() {
			now = time.Now().UTC()
		}

		row, err := s.repo.GetContest(ctx, payload.ContestID)
		if err != nil {
			if errors.Is(err, contestdb.ErrContestNotFound) {
				return s.cancelDenied(payload, ReasonUnknownContest), nil
			}
			return results.OperationResult{}, err
		}
		contest := contestFromRow(row)

		regRow, err := s.repo.GetRegistration(ctx, payload.ContestID, payload.UserID)
		if err != nil {
			if errors.Is(err, contestdb.ErrRegistrationNotFound) {
				return s.cancelDenied(payload, "not registered for this contest"), nil
			}
			return results.OperationResult{}, err
		}

		switch contestdomain.DeriveStatus(contest, registrationFromRow(regRow), now) {
		case contestdomain.StatusCompleted:
			return s.cancelDenied(payload, "registration already completed"), nil
		case contestdomain.StatusCancelled:
			return s.cancelDenied(payload, "registration already cancelled"), nil
		}

		if err := s.repo.CancelWithRefund(ctx, payload.ContestID, payload.UserID, contest.EntryFeeCredits); err != nil {
			if errors.Is(err, contestdb.ErrRegistrationNotFound) {
				return s.cancelDenied(payload, "registration already cancelled"), nil
			}
			return results.OperationResult{}, err
		}

		s.metrics.RecordStatusTransition("active", "cancelled")

		return results.OperationResult{Success: &contestevents.RegistrationCancelledPayloadV1{
			ContestID:      payload.ContestID,
			UserID:         payload.UserID,
			CreditRefunded: !contest.IsFree(),
			CancelledAt:    now,
		}}, nil
	})
}

func (s *ContestService) cancelDenied(payload contestevents.RegistrationCancelRequestedPayloadV1, reason string) results.OperationResult {
	return results.OperationResult{Failure: &contestevents.RegistrationDeniedPayloadV1{
		ContestID: payload.ContestID,
		UserID:    payload.UserID,
		Reason:    reason,
	}}
}

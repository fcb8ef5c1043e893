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

// Verification denial reasons.
const (
	ReasonNotRegistered     = "not registered for this contest"
	ReasonContestNotStarted = "contest has not started"
	ReasonInvalidState      = "invalid_state"
)

// SubmitVerification accepts one verification post for an active
// registration. Crossing the verification goal completes the registration
// exactly once; further submissions are rejected as invalid state.
func (s *ContestService) SubmitVerification(ctx context.Context, payload contestevents.VerificationSubmittedPayloadV1) (results.OperationResult, error) {
	return s.serviceWrapper(ctx, "SubmitVerification", payload.ContestID, payload.UserID, func(ctx context.Context) (results.OperationResult, error) {
		now := payload.SubmittedAt
		if now.IsZero() {
			now = time.Now().UTC()
		}

		row, err := s.repo.GetContest(ctx, payload.ContestID)
		if err != nil {
			if errors.Is(err, contestdb.ErrContestNotFound) {
				return s.verificationDenied(payload, ReasonUnknownContest), nil
			}
			return results.OperationResult{}, err
		}
		contest := contestFromRow(row)

		regRow, err := s.repo.GetRegistration(ctx, payload.ContestID, payload.UserID)
		if err != nil {
			if errors.Is(err, contestdb.ErrRegistrationNotFound) {
				return s.verificationDenied(payload, ReasonNotRegistered), nil
			}
			return results.OperationResult{}, err
		}

		status := contestdomain.DeriveStatus(contest, registrationFromRow(regRow), now)
		s.metrics.RecordVerification(string(status))

		switch status {
		case contestdomain.StatusPending:
			return s.verificationDenied(payload, ReasonContestNotStarted), nil
		case contestdomain.StatusCompleted, contestdomain.StatusCancelled:
			return s.verificationDenied(payload, ReasonInvalidState), nil
		}

		regRow.VerificationCount++
		completed := regRow.VerificationCount >= regRow.VerificationsRequired
		if completed {
			regRow.CompletedAt = now
		}

		if err := s.repo.UpdateVerification(ctx, regRow); err != nil {
			return results.OperationResult{}, err
		}

		newStatus := contestdomain.StatusActive
		if completed {
			newStatus = contestdomain.StatusCompleted
			s.metrics.RecordStatusTransition("active", "completed")
		}

		outcome := &VerificationOutcome{
			Recorded: &contestevents.VerificationRecordedPayloadV1{
				ContestID:             payload.ContestID,
				UserID:                payload.UserID,
				VerificationCount:     regRow.VerificationCount,
				VerificationsRequired: regRow.VerificationsRequired,
				Status:                string(newStatus),
			},
		}
		if completed {
			outcome.Completed = &contestevents.ContestCompletedPayloadV1{
				ContestID:   payload.ContestID,
				UserID:      payload.UserID,
				CompletedAt: now,
			}
		}
		return results.OperationResult{Success: outcome}, nil
	})
}

func (s *ContestService) verificationDenied(payload contestevents.VerificationSubmittedPayloadV1, reason string) results.OperationResult {
	return results.OperationResult{Failure: &contestevents.VerificationDeniedPayloadV1{
		ContestID: payload.ContestID,
		UserID:    payload.UserID,
		Reason:    reason,
	}}
}

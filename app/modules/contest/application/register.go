package contestservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	contestdomain "github.com/Ember-Habit-Club/habit-engine/app/modules/contest/domain"
	contestdb "github.com/Ember-Habit-Club/habit-engine/app/modules/contest/infrastructure/repositories"
	"github.com/Ember-Habit-Club/habit-engine/internal/events/contestevents"
	"github.com/Ember-Habit-Club/habit-engine/internal/observability/attr"
	"github.com/Ember-Habit-Club/habit-engine/internal/results"
)

// Registration denial reasons that do not come from eligibility checks.
const (
	ReasonUnknownContest = "unknown contest"
)

// Register checks every registration precondition, consumes the entry
// credit, and schedules the contest's start and settlement jobs. Precondition
// failures come back as RegistrationDenied payloads with their reason; no
// partial state is created.
func (s *ContestService) Register(ctx context.Context, payload contestevents.RegistrationRequestedPayloadV1) (results.OperationResult, error) {
	return s.serviceWrapper(ctx, "Register", payload.ContestID, payload.UserID, func(ctx context.Context) (results.OperationResult, error) {
		now := payload.RequestedAt
		if now.IsZero() {
			now = time.Now().UTC()
		}

		row, err := s.repo.GetContest(ctx, payload.ContestID)
		if err != nil {
			if errors.Is(err, contestdb.ErrContestNotFound) {
				return s.registrationDenied(payload, ReasonUnknownContest), nil
			}
			return results.OperationResult{}, err
		}
		contest := contestFromRow(row)

		check := contestdomain.RegistrationCheck{Now: now}

		existing, err := s.repo.GetRegistration(ctx, payload.ContestID, payload.UserID)
		if err != nil && !errors.Is(err, contestdb.ErrRegistrationNotFound) {
			return results.OperationResult{}, err
		}
		check.AlreadyRegistered = existing != nil && !existing.Cancelled

		if !contest.IsFree() {
			balance, err := s.repo.CreditBalance(ctx, payload.UserID)
			if err != nil {
				return results.OperationResult{}, err
			}
			check.CreditBalance = balance
		}

		if contest.MaxPlayers > 0 {
			count, err := s.repo.CountRegistrations(ctx, payload.ContestID)
			if err != nil {
				return results.OperationResult{}, err
			}
			check.RegistrantCount = count
		}

		if contest.CommunityID != "" {
			member, err := s.repo.IsCommunityMember(ctx, contest.CommunityID, payload.UserID)
			if err != nil {
				return results.OperationResult{}, err
			}
			check.IsCommunityMember = member
		}

		if err := contestdomain.CheckRegistrationEligibility(contest, check); err != nil {
			var notEligible *contestdomain.NotEligibleError
			if errors.As(err, &notEligible) {
				return s.registrationDenied(payload, notEligible.Reason), nil
			}
			return results.OperationResult{}, err
		}

		registration := &contestdb.ContestRegistration{
			ContestID:             payload.ContestID,
			UserID:                payload.UserID,
			VerificationsRequired: contest.VerificationsGoal,
			RegisteredAt:          now,
		}
		if err := s.repo.RegisterWithCredit(ctx, registration, contest.EntryFeeCredits); err != nil {
			if errors.Is(err, contestdb.ErrRegistrationExists) {
				// Lost a race with a concurrent registration.
				return s.registrationDenied(payload, "already registered for this contest"), nil
			}
			return results.OperationResult{}, err
		}

		// One start job and one settlement job per contest; UniqueOpts by
		// args makes repeat scheduling from later registrations a no-op.
		if err := s.queue.ScheduleContestStart(ctx, contest.ID, contest.StartDate); err != nil {
			return results.OperationResult{}, fmt.Errorf("failed to schedule contest start: %w", err)
		}
		if err := s.queue.ScheduleContestSettlement(ctx, contest.ID, contest.EndDate()); err != nil {
			return results.OperationResult{}, fmt.Errorf("failed to schedule contest settlement: %w", err)
		}

		s.metrics.RecordRegistration("accepted")
		s.logger.InfoContext(ctx, "Contest registration accepted",
			attr.ContestID("contest_id", payload.ContestID),
			attr.UserID("user_id", payload.UserID),
			attr.Bool("credit_consumed", !contest.IsFree()),
		)

		return results.OperationResult{Success: &contestevents.RegistrationAcceptedPayloadV1{
			ContestID:             payload.ContestID,
			UserID:                payload.UserID,
			CreditConsumed:        !contest.IsFree(),
			VerificationsRequired: contest.VerificationsGoal,
			RegisteredAt:          now,
		}}, nil
	})
}

func (s *ContestService) registrationDenied(payload contestevents.RegistrationRequestedPayloadV1, reason string) results.OperationResult {
	s.metrics.RecordRegistration("denied")
	return results.OperationResult{Failure: &contestevents.RegistrationDeniedPayloadV1{
		ContestID: payload.ContestID,
		UserID:    payload.UserID,
		Reason:    reason,
	}}
}

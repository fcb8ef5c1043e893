package contestservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	contestdb "github.com/Ember-Habit-Club/habit-engine/app/modules/contest/infrastructure/repositories"
	"github.com/Ember-Habit-Club/habit-engine/internal/events/contestevents"
	"github.com/Ember-Habit-Club/habit-engine/internal/results"
)

// ReasonBelowMinimum is carried on ContestCancelled events for contests
// called off at their start date.
const ReasonBelowMinimum = "below minimum players"

// StartContest enforces the minimum player count when a contest's start date
// arrives. Contests at or above the minimum proceed without output; contests
// below it are cancelled, every live registrant is refunded, and the pending
// settlement job is dropped.
func (s *ContestService) StartContest(ctx context.Context, payload contestevents.ContestStartedPayloadV1) (results.OperationResult, error) {
	return s.serviceWrapper(ctx, "StartContest", payload.ContestID, "", func(ctx context.Context) (results.OperationResult, error) {
		row, err := s.repo.GetContest(ctx, payload.ContestID)
		if err != nil {
			if errors.Is(err, contestdb.ErrContestNotFound) {
				// Stale start job for a contest that no longer exists.
				return results.OperationResult{}, nil
			}
			return results.OperationResult{}, err
		}
		contest := contestFromRow(row)

		registrations, err := s.repo.ListRegistrations(ctx, payload.ContestID)
		if err != nil {
			return results.OperationResult{}, err
		}

		if contest.MinPlayers <= 0 || len(registrations) >= contest.MinPlayers {
			return results.OperationResult{}, nil
		}

		now := payload.StartedAt
		if now.IsZero() {
			now = time.Now().UTC()
		}

		for _, reg := range registrations {
			if err := s.repo.CancelWithRefund(ctx, payload.ContestID, reg.UserID, contest.EntryFeeCredits); err != nil {
				if errors.Is(err, contestdb.ErrRegistrationNotFound) {
					continue
				}
				return results.OperationResult{}, fmt.Errorf("failed to refund registrant %s: %w", reg.UserID, err)
			}
			s.metrics.RecordStatusTransition("pending", "cancelled")
		}

		if err := s.queue.CancelContestJobs(ctx, payload.ContestID); err != nil {
			return results.OperationResult{}, fmt.Errorf("failed to cancel scheduled jobs: %w", err)
		}

		return results.OperationResult{Success: &contestevents.ContestCancelledPayloadV1{
			ContestID:   payload.ContestID,
			Reason:      ReasonBelowMinimum,
			Registrants: len(registrations),
			MinPlayers:  contest.MinPlayers,
			CancelledAt: now,
		}}, nil
	})
}

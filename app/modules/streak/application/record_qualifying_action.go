package streakservice

import (
	"context"
	"errors"
	"fmt"

	streakdomain "github.com/Ember-Habit-Club/habit-engine/app/modules/streak/domain"
	streakdb "github.com/Ember-Habit-Club/habit-engine/app/modules/streak/infrastructure/repositories"
	"github.com/Ember-Habit-Club/habit-engine/internal/events/streakevents"
	"github.com/Ember-Habit-Club/habit-engine/internal/results"
	sharedtypes "github.com/Ember-Habit-Club/habit-engine/internal/types/shared"
)

// RecordQualifyingAction applies one qualifying action to the user's streak,
// persisting the outcome and reporting any milestone that fired.
func (s *StreakService) RecordQualifyingAction(ctx context.Context, payload streakevents.QualifyingActionRecordedPayloadV1) (results.OperationResult, error) {
	return s.serviceWrapper(ctx, "RecordQualifyingAction", payload.UserID, func(ctx context.Context) (results.OperationResult, error) {
		if payload.UserID == "" {
			return results.OperationResult{
				Failure: &streakevents.QualifyingActionFailedPayloadV1{
					Reason: "user id is required",
				},
			}, nil
		}
		if payload.ActionAt.IsZero() {
			return results.OperationResult{
				Failure: &streakevents.QualifyingActionFailedPayloadV1{
					UserID: payload.UserID,
					Reason: "action timestamp is required",
				},
			}, nil
		}

		current := streakdomain.Streak{}
		row, err := s.repo.GetStreak(ctx, payload.UserID)
		switch {
		case err == nil:
			current = streakdomain.Streak{
				CurrentLength:      row.CurrentLength,
				LongestLength:      row.LongestLength,
				LastQualifyingDate: row.LastQualifyingDate,
			}
		case errors.Is(err, streakdb.ErrStreakNotFound):
			// First qualifying action; the row is created below.
		default:
			return results.OperationResult{}, fmt.Errorf("failed to load streak: %w", err)
		}

		outcome := streakdomain.Advance(current, payload.ActionAt, s.loc)
		if !outcome.Changed {
			return results.OperationResult{Success: &QualifyingActionOutcome{}}, nil
		}

		if err := s.repo.UpsertStreak(ctx, &streakdb.UserStreak{
			UserID:             payload.UserID,
			CurrentLength:      outcome.Streak.CurrentLength,
			LongestLength:      outcome.Streak.LongestLength,
			LastQualifyingDate: outcome.Streak.LastQualifyingDate,
		}); err != nil {
			return results.OperationResult{}, fmt.Errorf("failed to persist streak: %w", err)
		}

		if outcome.WasReset {
			s.metrics.RecordStreakReset(string(payload.Category))
		} else {
			s.metrics.RecordStreakAdvanced(string(payload.Category))
		}

		success := &QualifyingActionOutcome{
			Advanced: &streakevents.StreakAdvancedPayloadV1{
				UserID:        payload.UserID,
				CurrentLength: outcome.Streak.CurrentLength,
				LongestLength: outcome.Streak.LongestLength,
				WasReset:      outcome.WasReset,
				ActionAt:      payload.ActionAt,
			},
		}
		if outcome.Milestone != nil {
			s.metrics.RecordMilestoneReached(outcome.Milestone.Day)
			success.Milestone = &streakevents.StreakMilestoneReachedPayloadV1{
				UserID:       payload.UserID,
				MilestoneDay: outcome.Milestone.Day,
				Reward:       outcome.Milestone.Reward,
				ReachedAt:    payload.ActionAt,
			}
		}

		return results.OperationResult{Success: success}, nil
	})
}

// GetStreak returns the user's current streak; a user with no streak row
// yet reads as a zero streak.
func (s *StreakService) GetStreak(ctx context.Context, userID sharedtypes.UserID) (streakdomain.Streak, error) {
	row, err := s.repo.GetStreak(ctx, userID)
	if err != nil {
		if errors.Is(err, streakdb.ErrStreakNotFound) {
			return streakdomain.Streak{}, nil
		}
		return streakdomain.Streak{}, fmt.Errorf("failed to load streak: %w", err)
	}
	return streakdomain.Streak{
		CurrentLength:      row.CurrentLength,
		LongestLength:      row.LongestLength,
		LastQualifyingDate: row.LastQualifyingDate,
	}, nil
}

// GetNextMilestone reports the user's distance to the next streak reward.
func (s *StreakService) GetNextMilestone(ctx context.Context, userID sharedtypes.UserID) (streakdomain.NextMilestoneInfo, error) {
	streak, err := s.GetStreak(ctx, userID)
	if err != nil {
		return streakdomain.NextMilestoneInfo{}, err
	}
	return streakdomain.NextMilestone(streak.CurrentLength), nil
}

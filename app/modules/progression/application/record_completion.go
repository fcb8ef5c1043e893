package progressionservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	progressiondomain "github.com/Ember-Habit-Club/habit-engine/app/modules/progression/domain"
	progressiondb "github.com/Ember-Habit-Club/habit-engine/app/modules/progression/infrastructure/repositories"
	"github.com/Ember-Habit-Club/habit-engine/internal/events/progressionevents"
	"github.com/Ember-Habit-Club/habit-engine/internal/events/streakevents"
	"github.com/Ember-Habit-Club/habit-engine/internal/results"
	sharedtypes "github.com/Ember-Habit-Club/habit-engine/internal/types/shared"
)

// Denial reason codes carried on ActivityCompletionDenied events.
const (
	ReasonInvalidState          = "invalid_state"
	ReasonAlreadyCompletedToday = "already_completed_today"
	ReasonCooldownActive        = "cooldown_active"
	ReasonNotStarted            = "not_started"
)

// RecordCompletion applies one completion event to a user's activity
// progress. Rule rejections come back as Failure payloads; only
// infrastructure problems surface as errors.
func (s *ProgressionService) RecordCompletion(ctx context.Context, payload progressionevents.ActivityCompletionRequestedPayloadV1) (results.OperationResult, error) {
	return s.serviceWrapper(ctx, "RecordCompletion", payload.UserID, payload.ActivityID, func(ctx context.Context) (results.OperationResult, error) {
		if payload.UserID == "" || payload.ActivityID == "" {
			return denied(payload, "user id and activity id are required", 0), nil
		}

		completedAt := payload.CompletedAt
		if completedAt.IsZero() {
			completedAt = time.Now().UTC()
		}

		row, err := s.repo.GetProgress(ctx, payload.UserID, payload.ActivityID)
		if err != nil {
			if errors.Is(err, progressiondb.ErrProgressNotFound) {
				s.metrics.RecordCompletionRejected(ReasonNotStarted)
				return denied(payload, ReasonNotStarted, 0), nil
			}
			return results.OperationResult{}, fmt.Errorf("failed to load progress: %w", err)
		}

		progress := progressFromRow(row)
		outcome, err := progressiondomain.RecordCompletion(progress, payload.Delta, completedAt, s.loc)
		if err != nil {
			switch {
			case errors.Is(err, progressiondomain.ErrInvalidState):
				s.metrics.RecordCompletionRejected(ReasonInvalidState)
				return denied(payload, ReasonInvalidState, 0), nil
			case errors.Is(err, progressiondomain.ErrAlreadyCompletedToday):
				s.metrics.RecordCompletionRejected(ReasonAlreadyCompletedToday)
				return denied(payload, ReasonAlreadyCompletedToday, 0), nil
			case errors.Is(err, progressiondomain.ErrCooldownActive):
				s.metrics.RecordCompletionRejected(ReasonCooldownActive)
				days := progressiondomain.DaysUntilNextWindow(progress, completedAt)
				return denied(payload, ReasonCooldownActive, days), nil
			default:
				return results.OperationResult{}, fmt.Errorf("completion rule evaluation failed: %w", err)
			}
		}

		var (
			activity *progressiondb.Activity
			ledger   *progressiondb.CompletedActivity
		)
		if outcome.Completed {
			activity, err = s.repo.GetActivity(ctx, payload.ActivityID)
			if err != nil {
				return results.OperationResult{}, fmt.Errorf("failed to load activity for completion: %w", err)
			}
			ledger = &progressiondb.CompletedActivity{
				UserID:      payload.UserID,
				ActivityID:  payload.ActivityID,
				Category:    activity.Category,
				FuelEarned:  activity.FuelPoints,
				CompletedAt: completedAt,
			}
		}

		row.CountCompleted = outcome.Progress.CountCompleted
		row.LastCompletionAt = outcome.Progress.LastCompletionAt
		row.CompletedAt = outcome.Progress.CompletedAt
		if err := s.repo.ApplyCompletion(ctx, row, ledger); err != nil {
			return results.OperationResult{}, fmt.Errorf("failed to persist completion: %w", err)
		}

		s.metrics.RecordCompletion(string(row.Kind))

		success := &CompletionOutcome{
			Progressed: &progressionevents.ActivityProgressedPayloadV1{
				UserID:         payload.UserID,
				ActivityID:     payload.ActivityID,
				CountCompleted: outcome.Progress.CountCompleted,
				CountRequired:  outcome.Progress.CountRequired,
			},
		}

		if outcome.Completed {
			s.metrics.RecordFuelAwarded(float64(activity.FuelPoints))
			success.Completed = &progressionevents.ActivityCompletedPayloadV1{
				UserID:      payload.UserID,
				ActivityID:  payload.ActivityID,
				Kind:        row.Kind,
				Category:    activity.Category,
				FuelAwarded: activity.FuelPoints,
				CompletedAt: completedAt,
			}
		}

		if row.Cadence == sharedtypes.CadenceDaily {
			if activity == nil {
				activity, err = s.repo.GetActivity(ctx, payload.ActivityID)
				if err != nil {
					return results.OperationResult{}, fmt.Errorf("failed to load activity for streak fan-out: %w", err)
				}
			}
			success.QualifyingAction = &streakevents.QualifyingActionRecordedPayloadV1{
				UserID:     payload.UserID,
				ActivityID: payload.ActivityID,
				Category:   activity.Category,
				ActionAt:   completedAt,
			}
		}

		return results.OperationResult{Success: success}, nil
	})
}

func denied(payload progressionevents.ActivityCompletionRequestedPayloadV1, reason string, daysUntilNextWindow int) results.OperationResult {
	return results.OperationResult{
		Failure: &progressionevents.ActivityCompletionDeniedPayloadV1{
			UserID:              payload.UserID,
			ActivityID:          payload.ActivityID,
			Reason:              reason,
			DaysUntilNextWindow: daysUntilNextWindow,
		},
	}
}

func progressFromRow(row *progressiondb.ActivityProgress) progressiondomain.Progress {
	return progressiondomain.Progress{
		UserID:           row.UserID,
		ActivityID:       row.ActivityID,
		Kind:             row.Kind,
		Cadence:          row.Cadence,
		CountCompleted:   row.CountCompleted,
		CountRequired:    row.CountRequired,
		StartedAt:        row.StartedAt,
		LastCompletionAt: row.LastCompletionAt,
		CompletedAt:      row.CompletedAt,
	}
}

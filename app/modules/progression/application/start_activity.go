package progressionservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	progressiondb "github.com/Ember-Habit-Club/habit-engine/app/modules/progression/infrastructure/repositories"
	"github.com/Ember-Habit-Club/habit-engine/internal/events/progressionevents"
	"github.com/Ember-Habit-Club/habit-engine/internal/results"
	sharedtypes "github.com/Ember-Habit-Club/habit-engine/internal/types/shared"
)

// StartActivity opens a progress record for a user picking up a catalog
// activity, enforcing the tier gate first.
func (s *ProgressionService) StartActivity(ctx context.Context, payload progressionevents.ActivityStartRequestedPayloadV1) (results.OperationResult, error) {
	return s.serviceWrapper(ctx, "StartActivity", payload.UserID, payload.ActivityID, func(ctx context.Context) (results.OperationResult, error) {
		if payload.UserID == "" || payload.ActivityID == "" {
			return startDenied(payload, "user id and activity id are required"), nil
		}

		activity, err := s.repo.GetActivity(ctx, payload.ActivityID)
		if err != nil {
			if errors.Is(err, progressiondb.ErrActivityNotFound) {
				return startDenied(payload, "unknown activity"), nil
			}
			return results.OperationResult{}, fmt.Errorf("failed to load activity: %w", err)
		}

		if activity.Tier > sharedtypes.Tier0 {
			status, err := s.GetTierStatus(ctx, payload.UserID, activity.Category)
			if err != nil {
				return results.OperationResult{}, fmt.Errorf("failed to evaluate tier gate: %w", err)
			}
			if activity.Tier == sharedtypes.Tier1 && !status.Tier1Unlocked {
				return startDenied(payload, "tier 1 locked"), nil
			}
			if activity.Tier == sharedtypes.Tier2 && !status.Tier2Unlocked {
				return startDenied(payload, fmt.Sprintf("tier 2 locked for category %s", activity.Category)), nil
			}
		}

		if existing, err := s.repo.GetProgress(ctx, payload.UserID, payload.ActivityID); err == nil {
			if existing.CompletedAt.IsZero() {
				return startDenied(payload, "activity already in progress"), nil
			}
			return startDenied(payload, "activity already completed"), nil
		} else if !errors.Is(err, progressiondb.ErrProgressNotFound) {
			return results.OperationResult{}, fmt.Errorf("failed to check existing progress: %w", err)
		}

		startedAt := payload.StartedAt
		if startedAt.IsZero() {
			startedAt = time.Now().UTC()
		}

		progress := &progressiondb.ActivityProgress{
			UserID:        payload.UserID,
			ActivityID:    payload.ActivityID,
			Kind:          activity.Kind,
			Cadence:       activity.Cadence,
			CountRequired: activity.RequiredCount,
			StartedAt:     startedAt,
		}
		if err := s.repo.InsertProgress(ctx, progress); err != nil {
			if errors.Is(err, progressiondb.ErrProgressExists) {
				return startDenied(payload, "activity already in progress"), nil
			}
			return results.OperationResult{}, fmt.Errorf("failed to insert progress: %w", err)
		}

		return results.OperationResult{
			Success: &progressionevents.ActivityStartedPayloadV1{
				UserID:        payload.UserID,
				ActivityID:    payload.ActivityID,
				Kind:          activity.Kind,
				CountRequired: activity.RequiredCount,
				StartedAt:     startedAt,
			},
		}, nil
	})
}

func startDenied(payload progressionevents.ActivityStartRequestedPayloadV1, reason string) results.OperationResult {
	return results.OperationResult{
		Failure: &progressionevents.ActivityStartDeniedPayloadV1{
			UserID:     payload.UserID,
			ActivityID: payload.ActivityID,
			Reason:     reason,
		},
	}
}

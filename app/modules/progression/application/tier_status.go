package progressionservice

import (
	"context"
	"errors"
	"fmt"

	progressiondomain "github.com/Ember-Habit-Club/habit-engine/app/modules/progression/domain"
	progressiondb "github.com/Ember-Habit-Club/habit-engine/app/modules/progression/infrastructure/repositories"
	sharedtypes "github.com/Ember-Habit-Club/habit-engine/internal/types/shared"
)

// GetTierStatus derives the unlock state for a user and category from the
// completed-activity set and the catalog's tier sets. Nothing is stored;
// the result is recomputed per call.
func (s *ProgressionService) GetTierStatus(ctx context.Context, userID sharedtypes.UserID, category sharedtypes.Category) (TierStatus, error) {
	completedIDs, err := s.repo.ListCompletedActivityIDs(ctx, userID)
	if err != nil {
		return TierStatus{}, fmt.Errorf("failed to list completed activities: %w", err)
	}
	completed := progressiondomain.CompletedSet(completedIDs)

	status := TierStatus{Category: category, HighestUnlocked: sharedtypes.Tier0}

	tier0, err := s.repo.GetTier0Activity(ctx)
	if err != nil {
		if errors.Is(err, progressiondb.ErrActivityNotFound) {
			// No designated Tier-0 activity in the catalog keeps everything
			// above Tier 0 locked.
			return status, nil
		}
		return TierStatus{}, fmt.Errorf("failed to load tier-0 activity: %w", err)
	}

	status.Tier1Unlocked = progressiondomain.IsTier1Unlocked(tier0.ActivityID, completed)
	if !status.Tier1Unlocked {
		return status, nil
	}
	status.HighestUnlocked = sharedtypes.Tier1

	tier1IDs, err := s.repo.ListActivityIDsByCategoryTier(ctx, category, sharedtypes.Tier1)
	if err != nil {
		return TierStatus{}, fmt.Errorf("failed to list tier-1 activities: %w", err)
	}

	status.Tier2Unlocked = progressiondomain.IsTier2Unlocked(tier1IDs, completed)
	if status.Tier2Unlocked {
		status.HighestUnlocked = sharedtypes.Tier2
	}
	return status, nil
}

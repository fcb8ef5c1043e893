package progressiondomain

import (
	sharedtypes "github.com/Ember-Habit-Club/habit-engine/internal/types/shared"
)

// IsTier1Unlocked reports whether Tier 1 content is globally unlocked: the
// designated Tier-0 activity must be in the completed set.
func IsTier1Unlocked(tier0ActivityID sharedtypes.ActivityID, completed map[sharedtypes.ActivityID]struct{}) bool {
	if tier0ActivityID == "" {
		return false
	}
	_, ok := completed[tier0ActivityID]
	return ok
}

// IsTier2Unlocked reports whether Tier 2 content in a category is unlocked:
// every Tier-1 activity of that category must be completed. An empty Tier-1
// set keeps the tier locked.
func IsTier2Unlocked(tier1ActivityIDs []sharedtypes.ActivityID, completed map[sharedtypes.ActivityID]struct{}) bool {
	if len(tier1ActivityIDs) == 0 {
		return false
	}
	for _, id := range tier1ActivityIDs {
		if _, ok := completed[id]; !ok {
			return false
		}
	}
	return true
}

// CompletedSet builds a set from a list of completed activity IDs.
func CompletedSet(ids []sharedtypes.ActivityID) map[sharedtypes.ActivityID]struct{} {
	set := make(map[sharedtypes.ActivityID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

package progressiondb

import (
	"context"

	sharedtypes "github.com/Ember-Habit-Club/habit-engine/internal/types/shared"
)

// ProgressionDB is an interface for interacting with the progression
// database: the activity catalog, per-user progress, and the fuel ledger.
type ProgressionDB interface {
	GetActivity(ctx context.Context, activityID sharedtypes.ActivityID) (*Activity, error)
	GetTier0Activity(ctx context.Context) (*Activity, error)
	ListActivityIDsByCategoryTier(ctx context.Context, category sharedtypes.Category, tier sharedtypes.Tier) ([]sharedtypes.ActivityID, error)

	GetProgress(ctx context.Context, userID sharedtypes.UserID, activityID sharedtypes.ActivityID) (*ActivityProgress, error)
	InsertProgress(ctx context.Context, progress *ActivityProgress) error

	// ApplyCompletion updates the progress row and, when the ledger entry is
	// non-nil, records it in the same transaction.
	ApplyCompletion(ctx context.Context, progress *ActivityProgress, ledger *CompletedActivity) error

	ListCompletedActivityIDs(ctx context.Context, userID sharedtypes.UserID) ([]sharedtypes.ActivityID, error)
}

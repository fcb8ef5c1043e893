package streakdb

import (
	"context"

	sharedtypes "github.com/Ember-Habit-Club/habit-engine/internal/types/shared"
)

// StreakDB is an interface for interacting with the streak database.
type StreakDB interface {
	GetStreak(ctx context.Context, userID sharedtypes.UserID) (*UserStreak, error)
	UpsertStreak(ctx context.Context, streak *UserStreak) error
}

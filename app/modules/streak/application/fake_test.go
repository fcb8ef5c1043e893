package streakservice

import (
	"context"

	streakdb "github.com/Ember-Habit-Club/habit-engine/app/modules/streak/infrastructure/repositories"
	sharedtypes "github.com/Ember-Habit-Club/habit-engine/internal/types/shared"
)

// fakeStreakDB is a function-field fake of streakdb.StreakDB.
type fakeStreakDB struct {
	GetStreakFunc    func(ctx context.Context, userID sharedtypes.UserID) (*streakdb.UserStreak, error)
	UpsertStreakFunc func(ctx context.Context, streak *streakdb.UserStreak) error

	upserted []*streakdb.UserStreak
}

func (f *fakeStreakDB) GetStreak(ctx context.Context, userID sharedtypes.UserID) (*streakdb.UserStreak, error) {
	if f.GetStreakFunc != nil {
		return f.GetStreakFunc(ctx, userID)
	}
	return nil, streakdb.ErrStreakNotFound
}

func (f *fakeStreakDB) UpsertStreak(ctx context.Context, streak *streakdb.UserStreak) error {
	f.upserted = append(f.upserted, streak)
	if f.UpsertStreakFunc != nil {
		return f.UpsertStreakFunc(ctx, streak)
	}
	return nil
}

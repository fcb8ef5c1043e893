package streakdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sharedtypes "github.com/Ember-Habit-Club/habit-engine/internal/types/shared"
	"github.com/uptrace/bun"
)

// StreakDBImpl is the bun implementation of StreakDB.
type StreakDBImpl struct {
	DB *bun.DB
}

// GetStreak fetches the streak row for a user.
func (db *StreakDBImpl) GetStreak(ctx context.Context, userID sharedtypes.UserID) (*UserStreak, error) {
	var streak UserStreak
	err := db.DB.NewSelect().
		Model(&streak).
		Where("user_id = ?", userID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStreakNotFound
		}
		return nil, fmt.Errorf("failed to fetch streak for user %s: %w", userID, err)
	}
	return &streak, nil
}

// UpsertStreak inserts or replaces the streak row for a user.
func (db *StreakDBImpl) UpsertStreak(ctx context.Context, streak *UserStreak) error {
	streak.UpdatedAt = time.Now().UTC()

	_, err := db.DB.NewInsert().
		Model(streak).
		On("CONFLICT (user_id) DO UPDATE").
		Set("current_length = EXCLUDED.current_length").
		Set("longest_length = EXCLUDED.longest_length").
		Set("last_qualifying_date = EXCLUDED.last_qualifying_date").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert streak for user %s: %w", streak.UserID, err)
	}
	return nil
}

package progressiondb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sharedtypes "github.com/Ember-Habit-Club/habit-engine/internal/types/shared"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"
)

// ProgressionDBImpl is the bun implementation of ProgressionDB.
type ProgressionDBImpl struct {
	DB *bun.DB
}

// GetActivity fetches one catalog entry.
func (db *ProgressionDBImpl) GetActivity(ctx context.Context, activityID sharedtypes.ActivityID) (*Activity, error) {
	var activity Activity
	err := db.DB.NewSelect().
		Model(&activity).
		Where("activity_id = ?", activityID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrActivityNotFound
		}
		return nil, fmt.Errorf("failed to fetch activity %s: %w", activityID, err)
	}
	return &activity, nil
}

// GetTier0Activity fetches the designated Tier-0 catalog entry.
func (db *ProgressionDBImpl) GetTier0Activity(ctx context.Context) (*Activity, error) {
	var activity Activity
	err := db.DB.NewSelect().
		Model(&activity).
		Where("tier = ?", sharedtypes.Tier0).
		Order("created_at ASC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrActivityNotFound
		}
		return nil, fmt.Errorf("failed to fetch tier-0 activity: %w", err)
	}
	return &activity, nil
}

// ListActivityIDsByCategoryTier lists catalog IDs for one category and tier.
func (db *ProgressionDBImpl) ListActivityIDsByCategoryTier(ctx context.Context, category sharedtypes.Category, tier sharedtypes.Tier) ([]sharedtypes.ActivityID, error) {
	var ids []sharedtypes.ActivityID
	err := db.DB.NewSelect().
		Model((*Activity)(nil)).
		Column("activity_id").
		Where("category = ?", category).
		Where("tier = ?", tier).
		Scan(ctx, &ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s tier-%d activities: %w", category, tier, err)
	}
	return ids, nil
}

// GetProgress fetches one (user, activity) progress row.
func (db *ProgressionDBImpl) GetProgress(ctx context.Context, userID sharedtypes.UserID, activityID sharedtypes.ActivityID) (*ActivityProgress, error) {
	var progress ActivityProgress
	err := db.DB.NewSelect().
		Model(&progress).
		Where("user_id = ?", userID).
		Where("activity_id = ?", activityID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProgressNotFound
		}
		return nil, fmt.Errorf("failed to fetch progress for user %s activity %s: %w", userID, activityID, err)
	}
	return &progress, nil
}

// InsertProgress creates a new progress row; a duplicate (user, activity)
// pair returns ErrProgressExists.
func (db *ProgressionDBImpl) InsertProgress(ctx context.Context, progress *ActivityProgress) error {
	_, err := db.DB.NewInsert().
		Model(progress).
		Exec(ctx)
	if err != nil {
		var pgErr pgdriver.Error
		if errors.As(err, &pgErr) && pgErr.IntegrityViolation() {
			return ErrProgressExists
		}
		return fmt.Errorf("failed to insert progress for user %s activity %s: %w", progress.UserID, progress.ActivityID, err)
	}
	return nil
}

// ApplyCompletion persists an updated progress row, and the fuel-ledger
// entry when present, inside one transaction.
func (db *ProgressionDBImpl) ApplyCompletion(ctx context.Context, progress *ActivityProgress, ledger *CompletedActivity) error {
	progress.UpdatedAt = time.Now().UTC()

	return db.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewUpdate().
			Model(progress).
			Column("count_completed", "last_completion_at", "completed_at", "updated_at").
			Where("user_id = ?", progress.UserID).
			Where("activity_id = ?", progress.ActivityID).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to update progress: %w", err)
		}
		rows, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read rows affected: %w", err)
		}
		if rows == 0 {
			return ErrProgressNotFound
		}

		if ledger != nil {
			if _, err := tx.NewInsert().Model(ledger).Exec(ctx); err != nil {
				return fmt.Errorf("failed to record completed activity: %w", err)
			}
		}
		return nil
	})
}

// ListCompletedActivityIDs lists the distinct activity IDs a user has
// finished; feeds the tier gate.
func (db *ProgressionDBImpl) ListCompletedActivityIDs(ctx context.Context, userID sharedtypes.UserID) ([]sharedtypes.ActivityID, error) {
	var ids []sharedtypes.ActivityID
	err := db.DB.NewSelect().
		Model((*CompletedActivity)(nil)).
		ColumnExpr("DISTINCT activity_id").
		Where("user_id = ?", userID).
		Scan(ctx, &ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list completed activities for user %s: %w", userID, err)
	}
	return ids, nil
}

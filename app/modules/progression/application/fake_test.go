package progressionservice

import (
	"context"

	progressiondb "github.com/Ember-Habit-Club/habit-engine/app/modules/progression/infrastructure/repositories"
	sharedtypes "github.com/Ember-Habit-Club/habit-engine/internal/types/shared"
)

// fakeProgressionDB is a function-field fake of progressiondb.ProgressionDB.
type fakeProgressionDB struct {
	GetActivityFunc                   func(ctx context.Context, activityID sharedtypes.ActivityID) (*progressiondb.Activity, error)
	GetTier0ActivityFunc              func(ctx context.Context) (*progressiondb.Activity, error)
	ListActivityIDsByCategoryTierFunc func(ctx context.Context, category sharedtypes.Category, tier sharedtypes.Tier) ([]sharedtypes.ActivityID, error)
	GetProgressFunc                   func(ctx context.Context, userID sharedtypes.UserID, activityID sharedtypes.ActivityID) (*progressiondb.ActivityProgress, error)
	InsertProgressFunc                func(ctx context.Context, progress *progressiondb.ActivityProgress) error
	ApplyCompletionFunc               func(ctx context.Context, progress *progressiondb.ActivityProgress, ledger *progressiondb.CompletedActivity) error
	ListCompletedActivityIDsFunc      func(ctx context.Context, userID sharedtypes.UserID) ([]sharedtypes.ActivityID, error)

	inserted       []*progressiondb.ActivityProgress
	applied        []*progressiondb.ActivityProgress
	ledgerEntries  []*progressiondb.CompletedActivity
}

func (f *fakeProgressionDB) GetActivity(ctx context.Context, activityID sharedtypes.ActivityID) (*progressiondb.Activity, error) {
	if f.GetActivityFunc != nil {
		return f.GetActivityFunc(ctx, activityID)
	}
	return nil, progressiondb.ErrActivityNotFound
}

func (f *fakeProgressionDB) GetTier0Activity(ctx context.Context) (*progressiondb.Activity, error) {
	if f.GetTier0ActivityFunc != nil {
		return f.GetTier0ActivityFunc(ctx)
	}
	return nil, progressiondb.ErrActivityNotFound
}

func (f *fakeProgressionDB) ListActivityIDsByCategoryTier(ctx context.Context, category sharedtypes.Category, tier sharedtypes.Tier) ([]sharedtypes.ActivityID, error) {
	if f.ListActivityIDsByCategoryTierFunc != nil {
		return f.ListActivityIDsByCategoryTierFunc(ctx, category, tier)
	}
	return nil, nil
}

func (f *fakeProgressionDB) GetProgress(ctx context.Context, userID sharedtypes.UserID, activityID sharedtypes.ActivityID) (*progressiondb.ActivityProgress, error) {
	if f.GetProgressFunc != nil {
		return f.GetProgressFunc(ctx, userID, activityID)
	}
	return nil, progressiondb.ErrProgressNotFound
}

func (f *fakeProgressionDB) InsertProgress(ctx context.Context, progress *progressiondb.ActivityProgress) error {
	f.inserted = append(f.inserted, progress)
	if f.InsertProgressFunc != nil {
		return f.InsertProgressFunc(ctx, progress)
	}
	return nil
}

func (f *fakeProgressionDB) ApplyCompletion(ctx context.Context, progress *progressiondb.ActivityProgress, ledger *progressiondb.CompletedActivity) error {
	f.applied = append(f.applied, progress)
	if ledger != nil {
		f.ledgerEntries = append(f.ledgerEntries, ledger)
	}
	if f.ApplyCompletionFunc != nil {
		return f.ApplyCompletionFunc(ctx, progress, ledger)
	}
	return nil
}

func (f *fakeProgressionDB) ListCompletedActivityIDs(ctx context.Context, userID sharedtypes.UserID) ([]sharedtypes.ActivityID, error) {
	if f.ListCompletedActivityIDsFunc != nil {
		return f.ListCompletedActivityIDsFunc(ctx, userID)
	}
	return nil, nil
}

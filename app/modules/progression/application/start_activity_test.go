package progressionservice

import (
	"context"
	"testing"
	"time"

	progressiondb "github.com/Ember-Habit-Club/habit-engine/app/modules/progression/infrastructure/repositories"
	"github.com/Ember-Habit-Club/habit-engine/internal/events/progressionevents"
	sharedtypes "github.com/Ember-Habit-Club/habit-engine/internal/types/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartActivity(t *testing.T) {
	tier0 := &progressiondb.Activity{
		ActivityID:    "morning-basics",
		Name:          "Morning Basics",
		Category:      "foundation",
		Tier:          sharedtypes.Tier0,
		Kind:          sharedtypes.ActivityKindChallenge,
		Cadence:       sharedtypes.CadenceDaily,
		RequiredCount: 5,
	}
	tier1 := &progressiondb.Activity{
		ActivityID:    "hydration",
		Name:          "Hydration Challenge",
		Category:      "nutrition",
		Tier:          sharedtypes.Tier1,
		Kind:          sharedtypes.ActivityKindChallenge,
		Cadence:       sharedtypes.CadenceDaily,
		RequiredCount: 7,
	}

	catalog := func(f *fakeProgressionDB) *fakeProgressionDB {
		f.GetActivityFunc = func(_ context.Context, id sharedtypes.ActivityID) (*progressiondb.Activity, error) {
			switch id {
			case tier0.ActivityID:
				return tier0, nil
			case tier1.ActivityID:
				return tier1, nil
			}
			return nil, progressiondb.ErrActivityNotFound
		}
		f.GetTier0ActivityFunc = func(context.Context) (*progressiondb.Activity, error) {
			return tier0, nil
		}
		return f
	}

	t.Run("tier 0 activity starts without gate checks", func(t *testing.T) {
		repo := catalog(&fakeProgressionDB{})
		svc := newTestService(t, repo)

		result, err := svc.StartActivity(context.Background(), progressionevents.ActivityStartRequestedPayloadV1{
			UserID: "user-1", ActivityID: "morning-basics",
		})
		require.NoError(t, err)
		require.True(t, result.IsSuccess())

		started := result.Success.(*progressionevents.ActivityStartedPayloadV1)
		assert.Equal(t, 5, started.CountRequired)
		require.Len(t, repo.inserted, 1)
		assert.Equal(t, sharedtypes.CadenceDaily, repo.inserted[0].Cadence)
	})

	t.Run("tier 1 activity denied until tier 0 completed", func(t *testing.T) {
		repo := catalog(&fakeProgressionDB{})
		svc := newTestService(t, repo)

		result, err := svc.StartActivity(context.Background(), progressionevents.ActivityStartRequestedPayloadV1{
			UserID: "user-1", ActivityID: "hydration",
		})
		require.NoError(t, err)
		require.True(t, result.IsFailure())

		denial := result.Failure.(*progressionevents.ActivityStartDeniedPayloadV1)
		assert.Equal(t, "tier 1 locked", denial.Reason)
		assert.Empty(t, repo.inserted)
	})

	t.Run("tier 1 activity starts once tier 0 completed", func(t *testing.T) {
		repo := catalog(&fakeProgressionDB{
			ListCompletedActivityIDsFunc: func(context.Context, sharedtypes.UserID) ([]sharedtypes.ActivityID, error) {
				return []sharedtypes.ActivityID{"morning-basics"}, nil
			},
		})
		svc := newTestService(t, repo)

		result, err := svc.StartActivity(context.Background(), progressionevents.ActivityStartRequestedPayloadV1{
			UserID: "user-1", ActivityID: "hydration", StartedAt: time.Now(),
		})
		require.NoError(t, err)
		require.True(t, result.IsSuccess())
	})

	t.Run("unknown activity denied", func(t *testing.T) {
		svc := newTestService(t, catalog(&fakeProgressionDB{}))

		result, err := svc.StartActivity(context.Background(), progressionevents.ActivityStartRequestedPayloadV1{
			UserID: "user-1", ActivityID: "nope",
		})
		require.NoError(t, err)
		require.True(t, result.IsFailure())
	})

	t.Run("in-progress activity denied", func(t *testing.T) {
		repo := catalog(&fakeProgressionDB{
			GetProgressFunc: func(context.Context, sharedtypes.UserID, sharedtypes.ActivityID) (*progressiondb.ActivityProgress, error) {
				return &progressiondb.ActivityProgress{UserID: "user-1", ActivityID: "morning-basics"}, nil
			},
		})
		svc := newTestService(t, repo)

		result, err := svc.StartActivity(context.Background(), progressionevents.ActivityStartRequestedPayloadV1{
			UserID: "user-1", ActivityID: "morning-basics",
		})
		require.NoError(t, err)
		require.True(t, result.IsFailure())

		denial := result.Failure.(*progressionevents.ActivityStartDeniedPayloadV1)
		assert.Equal(t, "activity already in progress", denial.Reason)
	})
}

func TestGetTierStatus(t *testing.T) {
	tier0 := &progressiondb.Activity{ActivityID: "morning-basics", Tier: sharedtypes.Tier0}
	tier1Set := []sharedtypes.ActivityID{"hydration", "sleep-reset"}

	tests := []struct {
		name          string
		completed     []sharedtypes.ActivityID
		tier1Set      []sharedtypes.ActivityID
		wantTier1     bool
		wantTier2     bool
		wantHighest   sharedtypes.Tier
	}{
		{
			name:        "nothing completed",
			wantHighest: sharedtypes.Tier0,
		},
		{
			name:        "tier 0 completed unlocks tier 1",
			completed:   []sharedtypes.ActivityID{"morning-basics"},
			tier1Set:    tier1Set,
			wantTier1:   true,
			wantHighest: sharedtypes.Tier1,
		},
		{
			name:        "partial tier 1 set keeps tier 2 locked",
			completed:   []sharedtypes.ActivityID{"morning-basics", "hydration"},
			tier1Set:    tier1Set,
			wantTier1:   true,
			wantHighest: sharedtypes.Tier1,
		},
		{
			name:        "full tier 1 set unlocks tier 2",
			completed:   []sharedtypes.ActivityID{"morning-basics", "hydration", "sleep-reset"},
			tier1Set:    tier1Set,
			wantTier1:   true,
			wantTier2:   true,
			wantHighest: sharedtypes.Tier2,
		},
		{
			name:        "empty tier 1 set keeps tier 2 locked",
			completed:   []sharedtypes.ActivityID{"morning-basics"},
			wantTier1:   true,
			wantHighest: sharedtypes.Tier1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeProgressionDB{
				GetTier0ActivityFunc: func(context.Context) (*progressiondb.Activity, error) {
					return tier0, nil
				},
				ListCompletedActivityIDsFunc: func(context.Context, sharedtypes.UserID) ([]sharedtypes.ActivityID, error) {
					return tt.completed, nil
				},
				ListActivityIDsByCategoryTierFunc: func(context.Context, sharedtypes.Category, sharedtypes.Tier) ([]sharedtypes.ActivityID, error) {
					return tt.tier1Set, nil
				},
			}
			svc := newTestService(t, repo)

			status, err := svc.GetTierStatus(context.Background(), "user-1", "nutrition")
			require.NoError(t, err)
			assert.Equal(t, tt.wantTier1, status.Tier1Unlocked)
			assert.Equal(t, tt.wantTier2, status.Tier2Unlocked)
			assert.Equal(t, tt.wantHighest, status.HighestUnlocked)
		})
	}
}

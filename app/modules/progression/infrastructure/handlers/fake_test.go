package progressionhandlers

import (
	"context"

	progressionservice "github.com/Ember-Habit-Club/habit-engine/app/modules/progression/application"
	"github.com/Ember-Habit-Club/habit-engine/internal/events/progressionevents"
	"github.com/Ember-Habit-Club/habit-engine/internal/results"
	sharedtypes "github.com/Ember-Habit-Club/habit-engine/internal/types/shared"
)

// fakeProgressionService is a function-field fake of the progression service.
type fakeProgressionService struct {
	StartActivityFunc    func(ctx context.Context, payload progressionevents.ActivityStartRequestedPayloadV1) (results.OperationResult, error)
	RecordCompletionFunc func(ctx context.Context, payload progressionevents.ActivityCompletionRequestedPayloadV1) (results.OperationResult, error)
}

func (f *fakeProgressionService) StartActivity(ctx context.Context, payload progressionevents.ActivityStartRequestedPayloadV1) (results.OperationResult, error) {
	if f.StartActivityFunc != nil {
		return f.StartActivityFunc(ctx, payload)
	}
	return results.OperationResult{}, nil
}

func (f *fakeProgressionService) RecordCompletion(ctx context.Context, payload progressionevents.ActivityCompletionRequestedPayloadV1) (results.OperationResult, error) {
	if f.RecordCompletionFunc != nil {
		return f.RecordCompletionFunc(ctx, payload)
	}
	return results.OperationResult{}, nil
}

func (f *fakeProgressionService) GetTierStatus(ctx context.Context, userID sharedtypes.UserID, category sharedtypes.Category) (progressionservice.TierStatus, error) {
	return progressionservice.TierStatus{}, nil
}

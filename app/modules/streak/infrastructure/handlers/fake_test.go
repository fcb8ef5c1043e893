package streakhandlers

import (
	"context"

	streakdomain "github.com/Ember-Habit-Club/habit-engine/app/modules/streak/domain"
	"github.com/Ember-Habit-Club/habit-engine/internal/events/streakevents"
	"github.com/Ember-Habit-Club/habit-engine/internal/results"
	sharedtypes "github.com/Ember-Habit-Club/habit-engine/internal/types/shared"
)

// fakeStreakService is a function-field fake of the streak service.
type fakeStreakService struct {
	RecordQualifyingActionFunc func(ctx context.Context, payload streakevents.QualifyingActionRecordedPayloadV1) (results.OperationResult, error)

	recordedPayloads []streakevents.QualifyingActionRecordedPayloadV1
}

func (f *fakeStreakService) RecordQualifyingAction(ctx context.Context, payload streakevents.QualifyingActionRecordedPayloadV1) (results.OperationResult, error) {
	f.recordedPayloads = append(f.recordedPayloads, payload)
	if f.RecordQualifyingActionFunc != nil {
		return f.RecordQualifyingActionFunc(ctx, payload)
	}
	return results.OperationResult{}, nil
}

func (f *fakeStreakService) GetStreak(ctx context.Context, userID sharedtypes.UserID) (streakdomain.Streak, error) {
	return streakdomain.Streak{}, nil
}

func (f *fakeStreakService) GetNextMilestone(ctx context.Context, userID sharedtypes.UserID) (streakdomain.NextMilestoneInfo, error) {
	return streakdomain.NextMilestoneInfo{}, nil
}

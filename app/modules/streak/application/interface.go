package streakservice

import (
	"context"

	streakdomain "github.com/Ember-Habit-Club/habit-engine/app/modules/streak/domain"
	"github.com/Ember-Habit-Club/habit-engine/internal/events/streakevents"
	"github.com/Ember-Habit-Club/habit-engine/internal/results"
	sharedtypes "github.com/Ember-Habit-Club/habit-engine/internal/types/shared"
)

// Service is the streak module's application API.
type Service interface {
	RecordQualifyingAction(ctx context.Context, payload streakevents.QualifyingActionRecordedPayloadV1) (results.OperationResult, error)
	GetStreak(ctx context.Context, userID sharedtypes.UserID) (streakdomain.Streak, error)
	GetNextMilestone(ctx context.Context, userID sharedtypes.UserID) (streakdomain.NextMilestoneInfo, error)
}

// QualifyingActionOutcome is the success payload of RecordQualifyingAction.
// Advanced is nil when the action fell on an already-counted day; Milestone
// is set only when the advancement landed on a reward day.
type QualifyingActionOutcome struct {
	Advanced  *streakevents.StreakAdvancedPayloadV1
	Milestone *streakevents.StreakMilestoneReachedPayloadV1
}

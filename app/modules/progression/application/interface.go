package progressionservice

import (
	"context"

	"github.com/Ember-Habit-Club/habit-engine/internal/events/progressionevents"
	"github.com/Ember-Habit-Club/habit-engine/internal/events/streakevents"
	"github.com/Ember-Habit-Club/habit-engine/internal/results"
	sharedtypes "github.com/Ember-Habit-Club/habit-engine/internal/types/shared"
)

// Service is the progression module's application API.
type Service interface {
	StartActivity(ctx context.Context, payload progressionevents.ActivityStartRequestedPayloadV1) (results.OperationResult, error)
	RecordCompletion(ctx context.Context, payload progressionevents.ActivityCompletionRequestedPayloadV1) (results.OperationResult, error)
	GetTierStatus(ctx context.Context, userID sharedtypes.UserID, category sharedtypes.Category) (TierStatus, error)
}

// CompletionOutcome is the success payload of RecordCompletion. Progressed
// is always set; Completed only on the call that first crossed the
// threshold; QualifyingAction for daily-cadence events that should advance
// the user's streak.
type CompletionOutcome struct {
	Progressed       *progressionevents.ActivityProgressedPayloadV1
	Completed        *progressionevents.ActivityCompletedPayloadV1
	QualifyingAction *streakevents.QualifyingActionRecordedPayloadV1
}

// TierStatus is the derived unlock state for one user and category.
type TierStatus struct {
	Category        sharedtypes.Category
	Tier1Unlocked   bool
	Tier2Unlocked   bool
	HighestUnlocked sharedtypes.Tier
}

// Package progressionevents defines the progression module's event topics
// and payloads.
package progressionevents

import (
	"time"

	sharedtypes "github.com/Ember-Habit-Club/habit-engine/internal/types/shared"
)

const (
	// ActivityStartRequested asks the tracker to open progress for an
	// activity a user picked up.
	ActivityStartRequested = "progression.activity.start.requested.v1"

	// ActivityStarted confirms progress was opened.
	ActivityStarted = "progression.activity.started.v1"

	// ActivityStartDenied reports a rejected start (tier locked, already
	// in progress).
	ActivityStartDenied = "progression.activity.start.denied.v1"

	// ActivityCompletionRequested asks the tracker to record one qualifying
	// completion event for an in-progress activity.
	ActivityCompletionRequested = "progression.activity.completion.requested.v1"

	// ActivityProgressed reports a counted completion event that did not yet
	// finish the activity.
	ActivityProgressed = "progression.activity.progressed.v1"

	// ActivityCompleted reports the first time countCompleted crossed
	// countRequired; published exactly once per (user, activity).
	ActivityCompleted = "progression.activity.completed.v1"

	// ActivityCompletionDenied reports a rejected completion event with the
	// rule that rejected it.
	ActivityCompletionDenied = "progression.activity.completion.denied.v1"
)

// ActivityStartRequestedPayloadV1 asks to open progress.
type ActivityStartRequestedPayloadV1 struct {
	UserID     sharedtypes.UserID     `json:"user_id"`
	ActivityID sharedtypes.ActivityID `json:"activity_id"`
	StartedAt  time.Time              `json:"started_at"`
}

// ActivityStartedPayloadV1 confirms opened progress.
type ActivityStartedPayloadV1 struct {
	UserID        sharedtypes.UserID       `json:"user_id"`
	ActivityID    sharedtypes.ActivityID   `json:"activity_id"`
	Kind          sharedtypes.ActivityKind `json:"kind"`
	CountRequired int                      `json:"count_required"`
	StartedAt     time.Time                `json:"started_at"`
}

// ActivityStartDeniedPayloadV1 reports a rejected start.
type ActivityStartDeniedPayloadV1 struct {
	UserID     sharedtypes.UserID     `json:"user_id"`
	ActivityID sharedtypes.ActivityID `json:"activity_id"`
	Reason     string                 `json:"reason"`
}

// ActivityCompletionRequestedPayloadV1 carries one completion event.
type ActivityCompletionRequestedPayloadV1 struct {
	UserID      sharedtypes.UserID     `json:"user_id"`
	ActivityID  sharedtypes.ActivityID `json:"activity_id"`
	Delta       int                    `json:"delta"`
	CompletedAt time.Time              `json:"completed_at"`
}

// ActivityProgressedPayloadV1 reports counted but unfinished progress.
type ActivityProgressedPayloadV1 struct {
	UserID         sharedtypes.UserID     `json:"user_id"`
	ActivityID     sharedtypes.ActivityID `json:"activity_id"`
	CountCompleted int                    `json:"count_completed"`
	CountRequired  int                    `json:"count_required"`
}

// ActivityCompletedPayloadV1 reports a finished activity and the fuel
// awarded for it.
type ActivityCompletedPayloadV1 struct {
	UserID      sharedtypes.UserID       `json:"user_id"`
	ActivityID  sharedtypes.ActivityID   `json:"activity_id"`
	Kind        sharedtypes.ActivityKind `json:"kind"`
	Category    sharedtypes.Category     `json:"category"`
	FuelAwarded sharedtypes.FuelPoints   `json:"fuel_awarded"`
	CompletedAt time.Time                `json:"completed_at"`
}

// ActivityCompletionDeniedPayloadV1 reports a rejected completion event.
type ActivityCompletionDeniedPayloadV1 struct {
	UserID     sharedtypes.UserID     `json:"user_id"`
	ActivityID sharedtypes.ActivityID `json:"activity_id"`
	// Reason is one of "invalid_state", "already_completed_today",
	// "cooldown_active", or a free-form validation message.
	Reason string `json:"reason"`
	// DaysUntilNextWindow is set for cooldown rejections.
	DaysUntilNextWindow int `json:"days_until_next_window,omitempty"`
}

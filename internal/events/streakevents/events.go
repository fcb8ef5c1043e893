// Package streakevents defines the streak module's event topics and payloads.
package streakevents

import (
	"time"

	sharedtypes "github.com/Ember-Habit-Club/habit-engine/internal/types/shared"
)

const (
	// QualifyingActionRecorded is consumed by the streak module; the
	// progression module publishes it for every daily-cadence completion.
	QualifyingActionRecorded = "streak.qualifying.action.recorded.v1"

	// StreakAdvanced is published after a qualifying action changed (or
	// reset) a user's streak.
	StreakAdvanced = "streak.advanced.v1"

	// StreakMilestoneReached is published when an advancement lands on a
	// milestone day.
	StreakMilestoneReached = "streak.milestone.reached.v1"

	// QualifyingActionFailed is published when a qualifying action could not
	// be applied for a non-retryable reason.
	QualifyingActionFailed = "streak.qualifying.action.failed.v1"
)

// QualifyingActionRecordedPayloadV1 carries one qualifying action.
type QualifyingActionRecordedPayloadV1 struct {
	UserID     sharedtypes.UserID     `json:"user_id"`
	ActivityID sharedtypes.ActivityID `json:"activity_id"`
	Category   sharedtypes.Category   `json:"category"`
	ActionAt   time.Time              `json:"action_at"`
}

// StreakAdvancedPayloadV1 describes the streak after a qualifying action.
type StreakAdvancedPayloadV1 struct {
	UserID        sharedtypes.UserID `json:"user_id"`
	CurrentLength int                `json:"current_length"`
	LongestLength int                `json:"longest_length"`
	WasReset      bool               `json:"was_reset"`
	ActionAt      time.Time          `json:"action_at"`
}

// StreakMilestoneReachedPayloadV1 describes a milestone hit.
type StreakMilestoneReachedPayloadV1 struct {
	UserID       sharedtypes.UserID     `json:"user_id"`
	MilestoneDay int                    `json:"milestone_day"`
	Reward       sharedtypes.FuelPoints `json:"reward"`
	ReachedAt    time.Time              `json:"reached_at"`
}

// QualifyingActionFailedPayloadV1 reports a rejected qualifying action.
type QualifyingActionFailedPayloadV1 struct {
	UserID sharedtypes.UserID `json:"user_id"`
	Reason string             `json:"reason"`
}

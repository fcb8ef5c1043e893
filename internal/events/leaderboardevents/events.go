// Package leaderboardevents defines the leaderboard module's event topics
// and payloads.
package leaderboardevents

import (
	"time"

	sharedtypes "github.com/Ember-Habit-Club/habit-engine/internal/types/shared"
)

const (
	// ClassificationRequested asks the classifier to run over a scope.
	ClassificationRequested = "leaderboard.classification.requested.v1"

	// Classified carries the full classified leaderboard.
	Classified = "leaderboard.classified.v1"

	// ClassificationFailed reports a non-retryable classification failure
	// (e.g. an empty leaderboard).
	ClassificationFailed = "leaderboard.classification.failed.v1"
)

// ClassifiedEntryV1 is one classified leaderboard row.
type ClassifiedEntryV1 struct {
	UserID         sharedtypes.UserID     `json:"user_id"`
	Rank           int                    `json:"rank"`
	FuelPoints     sharedtypes.FuelPoints `json:"fuel_points"`
	Status         string                 `json:"status"`
	Multiplier     int                    `json:"multiplier"`
	LegendProgress float64                `json:"legend_progress"`
	HeroProgress   float64                `json:"hero_progress"`
}

// ClassificationRequestedPayloadV1 asks for a classification run.
type ClassificationRequestedPayloadV1 struct {
	Scope       sharedtypes.LeaderboardScope `json:"scope"`
	CommunityID sharedtypes.CommunityID      `json:"community_id,omitempty"`
	ContestID   sharedtypes.ContestID        `json:"contest_id,omitempty"`
	PeriodStart time.Time                    `json:"period_start"`
}

// ClassifiedPayloadV1 carries the classified leaderboard.
type ClassifiedPayloadV1 struct {
	Scope           sharedtypes.LeaderboardScope `json:"scope"`
	CommunityID     sharedtypes.CommunityID      `json:"community_id,omitempty"`
	ContestID       sharedtypes.ContestID        `json:"contest_id,omitempty"`
	PeriodStart     time.Time                    `json:"period_start"`
	LegendThreshold int                          `json:"legend_threshold"`
	HeroThreshold   int                          `json:"hero_threshold"`
	Entries         []ClassifiedEntryV1          `json:"entries"`
}

// ClassificationFailedPayloadV1 reports a failed classification run.
type ClassificationFailedPayloadV1 struct {
	Scope     sharedtypes.LeaderboardScope `json:"scope"`
	ContestID sharedtypes.ContestID        `json:"contest_id,omitempty"`
	Reason    string                       `json:"reason"`
}

package contestqueue

import (
	sharedtypes "github.com/Ember-Habit-Club/habit-engine/internal/types/shared"
)

// ContestStartJob publishes contest.started.v1 when the start date arrives.
type ContestStartJob struct {
	ContestID sharedtypes.ContestID `json:"contest_id"`
}

// Kind returns the job type identifier for River.
func (ContestStartJob) Kind() string { return "contest_start" }

// ContestSettlementJob publishes contest.settlement.due.v1 when the contest
// end date arrives, triggering prize classification.
type ContestSettlementJob struct {
	ContestID sharedtypes.ContestID `json:"contest_id"`
}

// Kind returns the job type identifier for River.
func (ContestSettlementJob) Kind() string { return "contest_settlement" }

// JobInfo describes a scheduled job, for monitoring endpoints.
type JobInfo struct {
	ID          int64  `json:"id"`
	Kind        string `json:"kind"`
	ContestID   string `json:"contest_id"`
	State       string `json:"state"`
	ScheduledAt string `json:"scheduled_at"`
	CreatedAt   string `json:"created_at"`
	Attempt     int    `json:"attempt"`
	MaxAttempts int    `json:"max_attempts"`
}

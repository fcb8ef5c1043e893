// Package contestdomain holds the contest lifecycle rules: status
// derivation from wall-clock time and registration eligibility.
package contestdomain

import (
	"time"

	sharedtypes "github.com/Ember-Habit-Club/habit-engine/internal/types/shared"
)

// Status is a contest registration's lifecycle state. It is derived, not
// stored: DeriveStatus recomputes it from the contest dates and the
// registration's verification counters each time it is needed.
type Status string

const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Contest describes a scheduled contest.
type Contest struct {
	ID                  sharedtypes.ContestID
	Name                string
	StartDate           time.Time
	RegistrationEndDate time.Time
	DurationDays        int
	EntryFeeCredits     int
	MinPlayers          int
	MaxPlayers          int
	VerificationsGoal   int
	CommunityID         sharedtypes.CommunityID
}

// EndDate is the settlement boundary: StartDate plus the contest duration.
func (c Contest) EndDate() time.Time {
	return c.StartDate.AddDate(0, 0, c.DurationDays)
}

// IsFree reports whether registration consumes an entry credit.
func (c Contest) IsFree() bool {
	return c.EntryFeeCredits == 0
}

// Registration is one user's entry in a contest.
type Registration struct {
	ContestID             sharedtypes.ContestID
	UserID                sharedtypes.UserID
	Cancelled             bool
	VerificationCount     int
	VerificationsRequired int
	RegisteredAt          time.Time
	CompletedAt           time.Time
}

// DeriveStatus computes the registration status as a pure function of the
// clock. Cancellation always wins; before the start date the registration is
// pending; once the verification goal is met it is completed; otherwise it
// is active.
func DeriveStatus(c Contest, r Registration, now time.Time) Status {
	if r.Cancelled {
		return StatusCancelled
	}
	if now.Before(c.StartDate) {
		return StatusPending
	}
	if r.VerificationCount >= r.VerificationsRequired {
		return StatusCompleted
	}
	return StatusActive
}

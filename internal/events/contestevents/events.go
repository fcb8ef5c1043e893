// Package contestevents defines the contest module's event topics and
// payloads.
package contestevents

import (
	"time"

	sharedtypes "github.com/Ember-Habit-Club/habit-engine/internal/types/shared"
)

const (
	// RegistrationRequested asks the contest module to register a user.
	RegistrationRequested = "contest.registration.requested.v1"

	// RegistrationAccepted confirms a registration; the entry credit (if
	// any) has been consumed.
	RegistrationAccepted = "contest.registration.accepted.v1"

	// RegistrationDenied reports a failed precondition with its reason.
	RegistrationDenied = "contest.registration.denied.v1"

	// RegistrationCancelRequested asks to cancel an existing registration.
	RegistrationCancelRequested = "contest.registration.cancel.requested.v1"

	// RegistrationCancelled confirms cancellation and the credit refund.
	RegistrationCancelled = "contest.registration.cancelled.v1"

	// VerificationSubmitted carries one verification post for a registrant.
	VerificationSubmitted = "contest.verification.submitted.v1"

	// VerificationRecorded reports an accepted verification and the new count.
	VerificationRecorded = "contest.verification.recorded.v1"

	// VerificationDenied reports a rejected verification.
	VerificationDenied = "contest.verification.denied.v1"

	// ContestStarted is published by the scheduled start job at startDate.
	ContestStarted = "contest.started.v1"

	// ContestCancelled reports a contest called off at its start date for
	// not reaching the minimum player count; every registrant has been
	// refunded.
	ContestCancelled = "contest.cancelled.v1"

	// ContestCompleted reports a registrant crossing the verification
	// threshold.
	ContestCompleted = "contest.completed.v1"

	// SettlementDue is published by the scheduled settlement job at
	// startDate + durationDays; the leaderboard module consumes it.
	SettlementDue = "contest.settlement.due.v1"

	// ContestSettled reports the finished settlement run.
	ContestSettled = "contest.settled.v1"
)

// RegistrationRequestedPayloadV1 asks to register a user for a contest.
type RegistrationRequestedPayloadV1 struct {
	ContestID   sharedtypes.ContestID `json:"contest_id"`
	UserID      sharedtypes.UserID    `json:"user_id"`
	RequestedAt time.Time             `json:"requested_at"`
}

// RegistrationAcceptedPayloadV1 confirms a registration.
type RegistrationAcceptedPayloadV1 struct {
	ContestID             sharedtypes.ContestID `json:"contest_id"`
	UserID                sharedtypes.UserID    `json:"user_id"`
	CreditConsumed        bool                  `json:"credit_consumed"`
	VerificationsRequired int                   `json:"verifications_required"`
	RegisteredAt          time.Time             `json:"registered_at"`
}

// RegistrationDeniedPayloadV1 reports the precondition that failed.
type RegistrationDeniedPayloadV1 struct {
	ContestID sharedtypes.ContestID `json:"contest_id"`
	UserID    sharedtypes.UserID    `json:"user_id"`
	Reason    string                `json:"reason"`
}

// RegistrationCancelRequestedPayloadV1 asks to cancel a registration.
type RegistrationCancelRequestedPayloadV1 struct {
	ContestID   sharedtypes.ContestID `json:"contest_id"`
	UserID      sharedtypes.UserID    `json:"user_id"`
	RequestedAt time.Time             `json:"requested_at"`
}

// RegistrationCancelledPayloadV1 confirms a cancellation.
type RegistrationCancelledPayloadV1 struct {
	ContestID      sharedtypes.ContestID `json:"contest_id"`
	UserID         sharedtypes.UserID    `json:"user_id"`
	CreditRefunded bool                  `json:"credit_refunded"`
	CancelledAt    time.Time             `json:"cancelled_at"`
}

// VerificationSubmittedPayloadV1 carries one verification post.
type VerificationSubmittedPayloadV1 struct {
	ContestID   sharedtypes.ContestID `json:"contest_id"`
	UserID      sharedtypes.UserID    `json:"user_id"`
	SubmittedAt time.Time             `json:"submitted_at"`
}

// VerificationRecordedPayloadV1 reports the registrant's new count.
type VerificationRecordedPayloadV1 struct {
	ContestID             sharedtypes.ContestID `json:"contest_id"`
	UserID                sharedtypes.UserID    `json:"user_id"`
	VerificationCount     int                   `json:"verification_count"`
	VerificationsRequired int                   `json:"verifications_required"`
	Status                string                `json:"status"`
}

// VerificationDeniedPayloadV1 reports a rejected verification.
type VerificationDeniedPayloadV1 struct {
	ContestID sharedtypes.ContestID `json:"contest_id"`
	UserID    sharedtypes.UserID    `json:"user_id"`
	Reason    string                `json:"reason"`
}

// ContestStartedPayloadV1 is published when a contest's start date arrives.
type ContestStartedPayloadV1 struct {
	ContestID sharedtypes.ContestID `json:"contest_id"`
	StartedAt time.Time             `json:"started_at"`
}

// ContestCancelledPayloadV1 reports a contest called off below its minimum
// player count.
type ContestCancelledPayloadV1 struct {
	ContestID   sharedtypes.ContestID `json:"contest_id"`
	Reason      string                `json:"reason"`
	Registrants int                   `json:"registrants"`
	MinPlayers  int                   `json:"min_players"`
	CancelledAt time.Time             `json:"cancelled_at"`
}

// ContestCompletedPayloadV1 reports a registrant finishing the contest.
type ContestCompletedPayloadV1 struct {
	ContestID   sharedtypes.ContestID `json:"contest_id"`
	UserID      sharedtypes.UserID    `json:"user_id"`
	CompletedAt time.Time             `json:"completed_at"`
}

// SettlementDuePayloadV1 triggers prize classification for a contest.
type SettlementDuePayloadV1 struct {
	ContestID sharedtypes.ContestID `json:"contest_id"`
	DueAt     time.Time             `json:"due_at"`
}

// ContestSettledPayloadV1 reports a finished settlement.
type ContestSettledPayloadV1 struct {
	ContestID   sharedtypes.ContestID `json:"contest_id"`
	Registrants int                   `json:"registrants"`
	SettledAt   time.Time             `json:"settled_at"`
}

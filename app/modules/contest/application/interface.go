package contestservice

import (
	"context"
	"time"

	contestdomain "github.com/Ember-Habit-Club/habit-engine/app/modules/contest/domain"
	"github.com/Ember-Habit-Club/habit-engine/internal/events/contestevents"
	"github.com/Ember-Habit-Club/habit-engine/internal/results"
	sharedtypes "github.com/Ember-Habit-Club/habit-engine/internal/types/shared"
)

// Service is the contest module's application contract.
type Service interface {
	Register(ctx context.Context, payload contestevents.RegistrationRequestedPayloadV1) (results.OperationResult, error)
	CancelRegistration(ctx context.Context, payload contestevents.RegistrationCancelRequestedPayloadV1) (results.OperationResult, error)
	SubmitVerification(ctx context.Context, payload contestevents.VerificationSubmittedPayloadV1) (results.OperationResult, error)
	StartContest(ctx context.Context, payload contestevents.ContestStartedPayloadV1) (results.OperationResult, error)

	ListContests(ctx context.Context) ([]ContestSummary, error)
	GetRegistration(ctx context.Context, contestID sharedtypes.ContestID, userID sharedtypes.UserID) (RegistrationView, error)
}

// VerificationOutcome is the success payload of SubmitVerification. Recorded
// is always set; Completed only when this verification crossed the goal.
type VerificationOutcome struct {
	Recorded  *contestevents.VerificationRecordedPayloadV1
	Completed *contestevents.ContestCompletedPayloadV1
}

// ContestSummary is a contest plus its live registrant count, for read
// endpoints.
type ContestSummary struct {
	Contest     contestdomain.Contest `json:"contest"`
	Registrants int                   `json:"registrants"`
}

// RegistrationView is one registration with its derived status.
type RegistrationView struct {
	ContestID             sharedtypes.ContestID `json:"contest_id"`
	UserID                sharedtypes.UserID    `json:"user_id"`
	Status                contestdomain.Status  `json:"status"`
	VerificationCount     int                   `json:"verification_count"`
	VerificationsRequired int                   `json:"verifications_required"`
	RegisteredAt          time.Time             `json:"registered_at"`
}

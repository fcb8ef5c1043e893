package contestdb

import (
	"context"

	sharedtypes "github.com/Ember-Habit-Club/habit-engine/internal/types/shared"
)

// ContestDB is the storage contract for the contest module.
type ContestDB interface {
	GetContest(ctx context.Context, contestID sharedtypes.ContestID) (*Contest, error)
	ListContests(ctx context.Context) ([]Contest, error)

	GetRegistration(ctx context.Context, contestID sharedtypes.ContestID, userID sharedtypes.UserID) (*ContestRegistration, error)
	ListRegistrations(ctx context.Context, contestID sharedtypes.ContestID) ([]ContestRegistration, error)
	CountRegistrations(ctx context.Context, contestID sharedtypes.ContestID) (int, error)

	CreditBalance(ctx context.Context, userID sharedtypes.UserID) (int, error)
	IsCommunityMember(ctx context.Context, communityID sharedtypes.CommunityID, userID sharedtypes.UserID) (bool, error)

	// RegisterWithCredit inserts the registration and, when fee > 0, a
	// ledger debit in one transaction.
	RegisterWithCredit(ctx context.Context, registration *ContestRegistration, fee int) error

	// CancelWithRefund marks the registration cancelled and, when fee > 0,
	// writes a ledger credit in one transaction.
	CancelWithRefund(ctx context.Context, contestID sharedtypes.ContestID, userID sharedtypes.UserID, fee int) error

	// UpdateVerification persists a registration's verification counter and
	// completion timestamp.
	UpdateVerification(ctx context.Context, registration *ContestRegistration) error
}

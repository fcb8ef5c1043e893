package contestdb

import (
	"time"

	sharedtypes "github.com/Ember-Habit-Club/habit-engine/internal/types/shared"
	"github.com/uptrace/bun"
)

// Contest is one scheduled contest with its registration window, fee, and
// capacity bounds.
type Contest struct {
	bun.BaseModel `bun:"table:contests,alias:c"`

	ID                  sharedtypes.ContestID   `bun:"id,pk"`
	Name                string                  `bun:"name,notnull"`
	StartDate           time.Time               `bun:"start_date,notnull"`
	RegistrationEndDate time.Time               `bun:"registration_end_date,notnull"`
	DurationDays        int                     `bun:"duration_days,notnull"`
	EntryFeeCredits     int                     `bun:"entry_fee_credits,notnull,default:0"`
	MinPlayers          int                     `bun:"min_players,notnull,default:0"`
	MaxPlayers          int                     `bun:"max_players,notnull,default:0"`
	VerificationsGoal   int                     `bun:"verifications_goal,notnull"`
	CommunityID         sharedtypes.CommunityID `bun:"community_id,nullzero"`
	CreatedAt           time.Time               `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

// ContestRegistration is one user's entry in a contest, keyed by
// (contest, user).
type ContestRegistration struct {
	bun.BaseModel `bun:"table:contest_registrations,alias:cr"`

	ContestID             sharedtypes.ContestID `bun:"contest_id,pk"`
	UserID                sharedtypes.UserID    `bun:"user_id,pk"`
	Cancelled             bool                  `bun:"cancelled,notnull,default:false"`
	VerificationCount     int                   `bun:"verification_count,notnull,default:0"`
	VerificationsRequired int                   `bun:"verifications_required,notnull"`
	RegisteredAt          time.Time             `bun:"registered_at,nullzero,notnull,default:current_timestamp"`
	CompletedAt           time.Time             `bun:"completed_at,nullzero"`
	UpdatedAt             time.Time             `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// CreditLedgerEntry is the append-only entry-credit ledger; a user's balance
// is the sum of deltas.
type CreditLedgerEntry struct {
	bun.BaseModel `bun:"table:credit_ledger,alias:cl"`

	ID        int64                 `bun:"id,pk,autoincrement"`
	UserID    sharedtypes.UserID    `bun:"user_id,notnull"`
	Delta     int                   `bun:"delta,notnull"`
	Reason    string                `bun:"reason,notnull"`
	ContestID sharedtypes.ContestID `bun:"contest_id,nullzero"`
	CreatedAt time.Time             `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

// CommunityMember records membership for community-restricted contests.
type CommunityMember struct {
	bun.BaseModel `bun:"table:community_members,alias:cm"`

	CommunityID sharedtypes.CommunityID `bun:"community_id,pk"`
	UserID      sharedtypes.UserID      `bun:"user_id,pk"`
	JoinedAt    time.Time               `bun:"joined_at,nullzero,notnull,default:current_timestamp"`
}

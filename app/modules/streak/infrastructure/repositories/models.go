package streakdb

import (
	"time"

	sharedtypes "github.com/Ember-Habit-Club/habit-engine/internal/types/shared"
	"github.com/uptrace/bun"
)

// UserStreak is the persisted burn streak, one row per user.
type UserStreak struct {
	bun.BaseModel `bun:"table:user_streaks,alias:us"`

	UserID             sharedtypes.UserID `bun:"user_id,pk"`
	CurrentLength      int                `bun:"current_length,notnull,default:0"`
	LongestLength      int                `bun:"longest_length,notnull,default:0"`
	LastQualifyingDate time.Time          `bun:"last_qualifying_date,nullzero"`
	CreatedAt          time.Time          `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt          time.Time          `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

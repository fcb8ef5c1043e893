package progressiondb

import (
	"time"

	sharedtypes "github.com/Ember-Habit-Club/habit-engine/internal/types/shared"
	"github.com/uptrace/bun"
)

// Activity is one catalog entry: a boost, challenge, quest week, or contest
// activity with its tier, cadence, and reward.
type Activity struct {
	bun.BaseModel `bun:"table:activities,alias:a"`

	ActivityID    sharedtypes.ActivityID   `bun:"activity_id,pk"`
	Name          string                   `bun:"name,notnull"`
	Category      sharedtypes.Category     `bun:"category,notnull"`
	Tier          sharedtypes.Tier         `bun:"tier,notnull,default:0"`
	Kind          sharedtypes.ActivityKind `bun:"kind,notnull"`
	Cadence       sharedtypes.Cadence      `bun:"cadence,notnull"`
	DurationDays  int                      `bun:"duration_days,notnull,default:0"`
	RequiredCount int                      `bun:"required_count,notnull"`
	FuelPoints    sharedtypes.FuelPoints   `bun:"fuel_points,notnull,default:0"`
	CreatedAt     time.Time                `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

// ActivityProgress is one user's counter against one activity, keyed by
// (user, activity).
type ActivityProgress struct {
	bun.BaseModel `bun:"table:activity_progress,alias:ap"`

	UserID           sharedtypes.UserID       `bun:"user_id,pk"`
	ActivityID       sharedtypes.ActivityID   `bun:"activity_id,pk"`
	Kind             sharedtypes.ActivityKind `bun:"kind,notnull"`
	Cadence          sharedtypes.Cadence      `bun:"cadence,notnull"`
	CountCompleted   int                      `bun:"count_completed,notnull,default:0"`
	CountRequired    int                      `bun:"count_required,notnull"`
	StartedAt        time.Time                `bun:"started_at,nullzero,notnull,default:current_timestamp"`
	LastCompletionAt time.Time                `bun:"last_completion_at,nullzero"`
	CompletedAt      time.Time                `bun:"completed_at,nullzero"`
	UpdatedAt        time.Time                `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// CompletedActivity is the append-only fuel ledger: one row per finished
// activity, read by the leaderboard for ranked totals.
type CompletedActivity struct {
	bun.BaseModel `bun:"table:completed_activities,alias:ca"`

	ID          int64                  `bun:"id,pk,autoincrement"`
	UserID      sharedtypes.UserID     `bun:"user_id,notnull"`
	ActivityID  sharedtypes.ActivityID `bun:"activity_id,notnull"`
	Category    sharedtypes.Category   `bun:"category,notnull"`
	FuelEarned  sharedtypes.FuelPoints `bun:"fuel_earned,notnull,default:0"`
	CompletedAt time.Time              `bun:"completed_at,notnull"`
}

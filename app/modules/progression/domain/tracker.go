// Package progressiondomain holds the pure progression rules: the per-activity
// completion tracker and the tier gate.
package progressiondomain

import (
	"time"

	sharedtypes "github.com/Ember-Habit-Club/habit-engine/internal/types/shared"
)

const weeklyCooldownDays = 7

// Progress is the in-memory view of one user's progress on one activity.
type Progress struct {
	UserID           sharedtypes.UserID
	ActivityID       sharedtypes.ActivityID
	Kind             sharedtypes.ActivityKind
	Cadence          sharedtypes.Cadence
	CountCompleted   int
	CountRequired    int
	StartedAt        time.Time
	LastCompletionAt time.Time
	CompletedAt      time.Time
}

// IsCompleted reports whether the activity has reached its terminal state.
func (p Progress) IsCompleted() bool { return !p.CompletedAt.IsZero() }

// CompletionOutcome is the result of one counted completion event.
type CompletionOutcome struct {
	Progress Progress
	// Completed is true exactly once: on the call that first crossed
	// CountRequired.
	Completed bool
}

// RecordCompletion applies one completion event of weight delta to a
// progress record. It returns ErrInvalidState for completed records,
// ErrAlreadyCompletedToday for repeat daily-cadence events on the same
// calendar day (in loc), and ErrCooldownActive for weekly-cadence events
// inside the seven-day window. The input is never mutated on rejection.
func RecordCompletion(p Progress, delta int, now time.Time, loc *time.Location) (CompletionOutcome, error) {
	if p.IsCompleted() {
		return CompletionOutcome{}, ErrInvalidState
	}
	if delta < 1 {
		delta = 1
	}

	if !p.LastCompletionAt.IsZero() {
		switch p.Cadence {
		case sharedtypes.CadenceDaily:
			if sameCalendarDay(p.LastCompletionAt, now, loc) {
				return CompletionOutcome{}, ErrAlreadyCompletedToday
			}
		case sharedtypes.CadenceWeekly:
			if DaysUntilNextWindow(p, now) > 0 {
				return CompletionOutcome{}, ErrCooldownActive
			}
		}
	}

	p.CountCompleted += delta
	p.LastCompletionAt = now

	completed := false
	if p.CountCompleted >= p.CountRequired {
		p.CompletedAt = now
		completed = true
	}

	return CompletionOutcome{Progress: p, Completed: completed}, nil
}

// DaysUntilNextWindow reports how many whole days remain before a
// weekly-cadence activity accepts another completion. Zero means the window
// is open.
func DaysUntilNextWindow(p Progress, now time.Time) int {
	if p.Cadence != sharedtypes.CadenceWeekly || p.LastCompletionAt.IsZero() {
		return 0
	}
	opensAt := p.LastCompletionAt.AddDate(0, 0, weeklyCooldownDays)
	if !now.Before(opensAt) {
		return 0
	}
	remaining := opensAt.Sub(now)
	days := int(remaining / (24 * time.Hour))
	if remaining%(24*time.Hour) != 0 {
		days++
	}
	return days
}

func sameCalendarDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

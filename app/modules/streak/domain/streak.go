// Package streakdomain holds the pure burn-streak rules: calendar-day
// advancement and the milestone reward table. No I/O happens here;
// persistence and event emission belong to the application layer.
package streakdomain

import (
	"time"

	sharedtypes "github.com/Ember-Habit-Club/habit-engine/internal/types/shared"
)

// Streak is the in-memory view of a user's burn streak.
type Streak struct {
	CurrentLength      int
	LongestLength      int
	LastQualifyingDate time.Time
}

// Milestone pairs a streak day with its fuel reward.
type Milestone struct {
	Day    int
	Reward sharedtypes.FuelPoints
}

// NextMilestoneInfo reports how far away the next reward is.
type NextMilestoneInfo struct {
	DaysRemaining int
	Reward        sharedtypes.FuelPoints
}

// AdvanceOutcome is the result of applying one qualifying action.
type AdvanceOutcome struct {
	Streak Streak
	// Changed is false for a repeat action on an already-counted day.
	Changed bool
	// WasReset is true when a skipped day collapsed the streak back to 1.
	WasReset bool
	// Milestone is set when the new length lands on a reward day.
	Milestone *Milestone
}

const (
	cycleLength = 21
	cycleReward = sharedtypes.FuelPoints(200)
)

// milestoneTable is the fixed early-streak reward schedule. Past day 21 the
// reward repeats every full 21-day cycle.
var milestoneTable = []Milestone{
	{Day: 3, Reward: 5},
	{Day: 7, Reward: 10},
	{Day: 21, Reward: 100},
}

// Advance applies one qualifying action to a streak. Calendar-day
// comparisons use loc; an action on the day after LastQualifyingDate extends
// the streak, a repeat on the same day changes nothing, and any skipped day
// resets the length to 1. Actions dated before the last qualifying day are
// ignored (out-of-order delivery).
func Advance(current Streak, actionAt time.Time, loc *time.Location) AdvanceOutcome {
	actionDay := calendarDay(actionAt, loc)

	if current.CurrentLength == 0 || current.LastQualifyingDate.IsZero() {
		return outcome(current, actionDay, 1, false)
	}

	lastDay := calendarDay(current.LastQualifyingDate, loc)
	switch {
	case actionDay.Equal(lastDay) || actionDay.Before(lastDay):
		return AdvanceOutcome{Streak: current}
	case actionDay.Equal(lastDay.AddDate(0, 0, 1)):
		return outcome(current, actionDay, current.CurrentLength+1, false)
	default:
		return outcome(current, actionDay, 1, true)
	}
}

func outcome(current Streak, actionDay time.Time, newLength int, wasReset bool) AdvanceOutcome {
	next := Streak{
		CurrentLength:      newLength,
		LongestLength:      max(current.LongestLength, newLength),
		LastQualifyingDate: actionDay,
	}

	out := AdvanceOutcome{Streak: next, Changed: true, WasReset: wasReset}
	if m, ok := MilestoneFor(newLength); ok {
		out.Milestone = &m
	}
	return out
}

// MilestoneFor returns the reward for a streak length, if that length is a
// milestone day.
func MilestoneFor(length int) (Milestone, bool) {
	for _, m := range milestoneTable {
		if m.Day == length {
			return m, true
		}
	}
	if length > cycleLength && length%cycleLength == 0 {
		return Milestone{Day: length, Reward: cycleReward}, true
	}
	return Milestone{}, false
}

// NextMilestone reports the days remaining until the next reward for a
// streak of the given length, and what that reward will be.
func NextMilestone(length int) NextMilestoneInfo {
	for _, m := range milestoneTable {
		if length < m.Day {
			return NextMilestoneInfo{DaysRemaining: m.Day - length, Reward: m.Reward}
		}
	}
	nextCycleDay := (length/cycleLength + 1) * cycleLength
	return NextMilestoneInfo{DaysRemaining: nextCycleDay - length, Reward: cycleReward}
}

// calendarDay truncates a timestamp to midnight of its calendar day in loc.
func calendarDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

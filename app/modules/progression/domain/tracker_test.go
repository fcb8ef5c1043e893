package progressiondomain

import (
	"testing"
	"time"

	sharedtypes "github.com/Ember-Habit-Club/habit-engine/internal/types/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordCompletion(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	at := func(d, h int) time.Time {
		return time.Date(2026, time.May, d, h, 0, 0, 0, loc)
	}

	base := Progress{
		UserID:        "user-1",
		ActivityID:    "activity-1",
		Kind:          sharedtypes.ActivityKindChallenge,
		Cadence:       sharedtypes.CadenceDaily,
		CountRequired: 5,
		StartedAt:     at(1, 8),
	}

	t.Run("increments count without completing", func(t *testing.T) {
		p := base
		p.CountCompleted = 2
		p.LastCompletionAt = at(2, 8)

		out, err := RecordCompletion(p, 1, at(3, 8), loc)
		require.NoError(t, err)
		assert.Equal(t, 3, out.Progress.CountCompleted)
		assert.False(t, out.Completed)
		assert.True(t, out.Progress.CompletedAt.IsZero())
	})

	t.Run("crossing the threshold completes exactly once", func(t *testing.T) {
		p := base
		p.CountCompleted = 4
		p.LastCompletionAt = at(4, 8)

		out, err := RecordCompletion(p, 1, at(5, 8), loc)
		require.NoError(t, err)
		assert.True(t, out.Completed)
		assert.Equal(t, at(5, 8), out.Progress.CompletedAt)

		// Post-completion calls always reject and never mutate the count.
		_, err = RecordCompletion(out.Progress, 1, at(6, 8), loc)
		assert.ErrorIs(t, err, ErrInvalidState)
		assert.Equal(t, 5, out.Progress.CountCompleted)
	})

	t.Run("second daily completion on same calendar day rejected", func(t *testing.T) {
		p := base
		p.CountCompleted = 1
		p.LastCompletionAt = at(2, 8)

		_, err := RecordCompletion(p, 1, at(2, 20), loc)
		assert.ErrorIs(t, err, ErrAlreadyCompletedToday)
	})

	t.Run("daily completion allowed next calendar day", func(t *testing.T) {
		p := base
		p.CountCompleted = 1
		p.LastCompletionAt = at(2, 23)

		out, err := RecordCompletion(p, 1, at(3, 1), loc)
		require.NoError(t, err)
		assert.Equal(t, 2, out.Progress.CountCompleted)
	})

	t.Run("weekly cadence enforces seven day cooldown", func(t *testing.T) {
		p := base
		p.Cadence = sharedtypes.CadenceWeekly
		p.Kind = sharedtypes.ActivityKindQuest
		p.CountCompleted = 1
		p.LastCompletionAt = at(1, 8)

		_, err := RecordCompletion(p, 1, at(5, 8), loc)
		assert.ErrorIs(t, err, ErrCooldownActive)

		out, err := RecordCompletion(p, 1, at(8, 8), loc)
		require.NoError(t, err)
		assert.Equal(t, 2, out.Progress.CountCompleted)
	})

	t.Run("no cadence gate for contest verifications", func(t *testing.T) {
		p := base
		p.Cadence = sharedtypes.CadenceNone
		p.Kind = sharedtypes.ActivityKindContest
		p.CountCompleted = 1
		p.LastCompletionAt = at(2, 8)

		out, err := RecordCompletion(p, 1, at(2, 9), loc)
		require.NoError(t, err)
		assert.Equal(t, 2, out.Progress.CountCompleted)
	})

	t.Run("delta below one counts as one", func(t *testing.T) {
		p := base

		out, err := RecordCompletion(p, 0, at(2, 8), loc)
		require.NoError(t, err)
		assert.Equal(t, 1, out.Progress.CountCompleted)
	})
}

func TestDaysUntilNextWindow(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	last := time.Date(2026, time.May, 1, 12, 0, 0, 0, loc)

	p := Progress{
		Cadence:          sharedtypes.CadenceWeekly,
		LastCompletionAt: last,
	}

	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{name: "immediately after completion", now: last.Add(time.Hour), want: 7},
		{name: "three days in", now: last.AddDate(0, 0, 3), want: 4},
		{name: "one hour before window opens", now: last.AddDate(0, 0, 7).Add(-time.Hour), want: 1},
		{name: "window open", now: last.AddDate(0, 0, 7), want: 0},
		{name: "well past window", now: last.AddDate(0, 0, 10), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysUntilNextWindow(p, tt.now))
		})
	}
}

func TestDaysUntilNextWindow_NonWeekly(t *testing.T) {
	p := Progress{Cadence: sharedtypes.CadenceDaily, LastCompletionAt: time.Now()}
	assert.Equal(t, 0, DaysUntilNextWindow(p, time.Now()))
}

package streakdomain

import (
	"testing"
	"time"

	sharedtypes "github.com/Ember-Habit-Club/habit-engine/internal/types/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func easternZone(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	return loc
}

func TestAdvance(t *testing.T) {
	loc := easternZone(t)
	day := func(d int) time.Time {
		return time.Date(2026, time.March, d, 12, 0, 0, 0, loc)
	}

	tests := []struct {
		name         string
		current      Streak
		actionAt     time.Time
		wantLength   int
		wantLongest  int
		wantChanged  bool
		wantReset    bool
		wantMilestone *Milestone
	}{
		{
			name:        "first qualifying action starts at one",
			current:     Streak{},
			actionAt:    day(1),
			wantLength:  1,
			wantLongest: 1,
			wantChanged: true,
		},
		{
			name:        "consecutive day extends streak",
			current:     Streak{CurrentLength: 4, LongestLength: 4, LastQualifyingDate: day(1)},
			actionAt:    day(2),
			wantLength:  5,
			wantLongest: 5,
			wantChanged: true,
		},
		{
			name:        "same day action changes nothing",
			current:     Streak{CurrentLength: 4, LongestLength: 4, LastQualifyingDate: day(1)},
			actionAt:    day(1).Add(6 * time.Hour),
			wantLength:  4,
			wantLongest: 4,
			wantChanged: false,
		},
		{
			name:        "earlier dated action is ignored",
			current:     Streak{CurrentLength: 4, LongestLength: 4, LastQualifyingDate: day(5)},
			actionAt:    day(3),
			wantLength:  4,
			wantLongest: 4,
			wantChanged: false,
		},
		{
			name:        "skipped day resets to one",
			current:     Streak{CurrentLength: 15, LongestLength: 15, LastQualifyingDate: day(1)},
			actionAt:    day(3),
			wantLength:  1,
			wantLongest: 15,
			wantChanged: true,
			wantReset:   true,
		},
		{
			name:          "day three fires first milestone",
			current:       Streak{CurrentLength: 2, LongestLength: 2, LastQualifyingDate: day(1)},
			actionAt:      day(2),
			wantLength:    3,
			wantLongest:   3,
			wantChanged:   true,
			wantMilestone: &Milestone{Day: 3, Reward: 5},
		},
		{
			name:          "day twenty one fires hundred point milestone",
			current:       Streak{CurrentLength: 20, LongestLength: 20, LastQualifyingDate: day(1)},
			actionAt:      day(2),
			wantLength:    21,
			wantLongest:   21,
			wantChanged:   true,
			wantMilestone: &Milestone{Day: 21, Reward: 100},
		},
		{
			name:          "day forty two fires cycle milestone",
			current:       Streak{CurrentLength: 41, LongestLength: 41, LastQualifyingDate: day(1)},
			actionAt:      day(2),
			wantLength:    42,
			wantLongest:   42,
			wantChanged:   true,
			wantMilestone: &Milestone{Day: 42, Reward: 200},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Advance(tt.current, tt.actionAt, loc)
			assert.Equal(t, tt.wantLength, got.Streak.CurrentLength)
			assert.Equal(t, tt.wantLongest, got.Streak.LongestLength)
			assert.Equal(t, tt.wantChanged, got.Changed)
			assert.Equal(t, tt.wantReset, got.WasReset)
			assert.Equal(t, tt.wantMilestone, got.Milestone)
		})
	}
}

func TestAdvance_ConsecutiveDaysAccumulate(t *testing.T) {
	loc := easternZone(t)

	streak := Streak{}
	start := time.Date(2026, time.January, 5, 8, 0, 0, 0, loc)
	for i := 0; i < 30; i++ {
		out := Advance(streak, start.AddDate(0, 0, i), loc)
		require.True(t, out.Changed)
		streak = out.Streak
	}
	assert.Equal(t, 30, streak.CurrentLength)
	assert.Equal(t, 30, streak.LongestLength)
}

func TestAdvance_CrossesMidnightBoundary(t *testing.T) {
	loc := easternZone(t)

	// 11:30pm Eastern, then 00:30am the next calendar day.
	late := time.Date(2026, time.June, 10, 23, 30, 0, 0, loc)
	early := time.Date(2026, time.June, 11, 0, 30, 0, 0, loc)

	out := Advance(Streak{CurrentLength: 1, LongestLength: 1, LastQualifyingDate: late}, early, loc)
	assert.True(t, out.Changed)
	assert.Equal(t, 2, out.Streak.CurrentLength)
}

func TestAdvance_ReferenceZoneNotServerZone(t *testing.T) {
	loc := easternZone(t)

	// 2am UTC on June 12 is still June 11 Eastern; same-day rule applies
	// against the reference zone, not UTC.
	first := time.Date(2026, time.June, 11, 15, 0, 0, 0, time.UTC)
	second := time.Date(2026, time.June, 12, 2, 0, 0, 0, time.UTC)

	out := Advance(Streak{CurrentLength: 3, LongestLength: 3, LastQualifyingDate: first}, second, loc)
	assert.False(t, out.Changed)
	assert.Equal(t, 3, out.Streak.CurrentLength)
}

func TestMilestoneFor(t *testing.T) {
	tests := []struct {
		length     int
		wantReward sharedtypes.FuelPoints
		wantOK     bool
	}{
		{length: 2, wantOK: false},
		{length: 3, wantReward: 5, wantOK: true},
		{length: 7, wantReward: 10, wantOK: true},
		{length: 21, wantReward: 100, wantOK: true},
		{length: 22, wantOK: false},
		{length: 42, wantReward: 200, wantOK: true},
		{length: 63, wantReward: 200, wantOK: true},
		{length: 64, wantOK: false},
	}

	for _, tt := range tests {
		m, ok := MilestoneFor(tt.length)
		assert.Equal(t, tt.wantOK, ok, "length %d", tt.length)
		if ok {
			assert.Equal(t, tt.wantReward, m.Reward, "length %d", tt.length)
		}
	}
}

func TestNextMilestone(t *testing.T) {
	tests := []struct {
		length        int
		wantRemaining int
		wantReward    sharedtypes.FuelPoints
	}{
		{length: 0, wantRemaining: 3, wantReward: 5},
		{length: 2, wantRemaining: 1, wantReward: 5},
		{length: 3, wantRemaining: 4, wantReward: 10},
		{length: 8, wantRemaining: 13, wantReward: 100},
		{length: 21, wantRemaining: 21, wantReward: 200},
		{length: 30, wantRemaining: 12, wantReward: 200},
		{length: 42, wantRemaining: 21, wantReward: 200},
	}

	for _, tt := range tests {
		got := NextMilestone(tt.length)
		assert.Equal(t, tt.wantRemaining, got.DaysRemaining, "length %d", tt.length)
		assert.Equal(t, tt.wantReward, got.Reward, "length %d", tt.length)
	}
}

package leaderboarddomain

import (
	"fmt"
	"testing"

	sharedtypes "github.com/Ember-Habit-Club/habit-engine/internal/types/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entriesOf(n int) []Entry {
	entries := make([]Entry, n)
	for i := 0; i < n; i++ {
		entries[i] = Entry{
			UserID:     sharedtypes.UserID(fmt.Sprintf("user-%03d", i+1)),
			FuelPoints: sharedtypes.FuelPoints(10000 - i*10),
		}
	}
	return entries
}

func TestClassify(t *testing.T) {
	t.Run("hundred entries split 10/40/50", func(t *testing.T) {
		classification, err := Classify(entriesOf(100))
		require.NoError(t, err)

		assert.Equal(t, 10, classification.LegendThreshold)
		assert.Equal(t, 50, classification.HeroThreshold)

		assert.Equal(t, StatusLegend, classification.Entries[9].Status)
		assert.Equal(t, MultiplierLegend, classification.Entries[9].Multiplier)
		assert.Equal(t, StatusHero, classification.Entries[10].Status)
		assert.Equal(t, MultiplierHero, classification.Entries[10].Multiplier)
		assert.Equal(t, StatusHero, classification.Entries[49].Status)
		assert.Equal(t, StatusCommander, classification.Entries[50].Status)
		assert.Equal(t, MultiplierCommander, classification.Entries[50].Multiplier)
	})

	t.Run("progress reads 100 at or above the threshold", func(t *testing.T) {
		classification, err := Classify(entriesOf(100))
		require.NoError(t, err)

		assert.Equal(t, 100.0, classification.Entries[0].LegendProgress)
		assert.Equal(t, 100.0, classification.Entries[9].LegendProgress)
		assert.InDelta(t, 50.0, classification.Entries[19].LegendProgress, 0.001)
		assert.Equal(t, 100.0, classification.Entries[49].HeroProgress)
		assert.InDelta(t, 50.0, classification.Entries[99].HeroProgress, 0.001)
	})

	t.Run("single entry is a legend", func(t *testing.T) {
		classification, err := Classify(entriesOf(1))
		require.NoError(t, err)

		assert.Equal(t, 1, classification.LegendThreshold)
		assert.Equal(t, 1, classification.HeroThreshold)
		assert.Equal(t, StatusLegend, classification.Entries[0].Status)
	})

	t.Run("three entries keep the ceiling formula", func(t *testing.T) {
		classification, err := Classify(entriesOf(3))
		require.NoError(t, err)

		assert.Equal(t, 1, classification.LegendThreshold)
		assert.Equal(t, 2, classification.HeroThreshold)
		assert.Equal(t, StatusLegend, classification.Entries[0].Status)
		assert.Equal(t, StatusHero, classification.Entries[1].Status)
		assert.Equal(t, StatusCommander, classification.Entries[2].Status)
	})

	t.Run("empty input fails", func(t *testing.T) {
		_, err := Classify(nil)
		assert.ErrorIs(t, err, ErrEmptyLeaderboard)
	})
}

func TestAssignRanks(t *testing.T) {
	t.Run("orders by fuel descending", func(t *testing.T) {
		ranked := AssignRanks([]Entry{
			{UserID: "user-1", FuelPoints: 50},
			{UserID: "user-2", FuelPoints: 200},
			{UserID: "user-3", FuelPoints: 100},
		})
		assert.Equal(t, sharedtypes.UserID("user-2"), ranked[0].UserID)
		assert.Equal(t, sharedtypes.UserID("user-3"), ranked[1].UserID)
		assert.Equal(t, sharedtypes.UserID("user-1"), ranked[2].UserID)
	})

	t.Run("ties break by user ID ascending", func(t *testing.T) {
		ranked := AssignRanks([]Entry{
			{UserID: "user-b", FuelPoints: 100},
			{UserID: "user-a", FuelPoints: 100},
			{UserID: "user-c", FuelPoints: 100},
		})
		assert.Equal(t, sharedtypes.UserID("user-a"), ranked[0].UserID)
		assert.Equal(t, sharedtypes.UserID("user-b"), ranked[1].UserID)
		assert.Equal(t, sharedtypes.UserID("user-c"), ranked[2].UserID)
	})
}

func TestThresholds(t *testing.T) {
	tests := []struct {
		n          int
		wantLegend int
		wantHero   int
	}{
		{1, 1, 1},
		{2, 1, 1},
		{3, 1, 2},
		{10, 1, 5},
		{11, 2, 6},
		{100, 10, 50},
		{101, 11, 51},
	}
	for _, tt := range tests {
		legend, hero := Thresholds(tt.n)
		assert.Equal(t, tt.wantLegend, legend, "legend threshold for n=%d", tt.n)
		assert.Equal(t, tt.wantHero, hero, "hero threshold for n=%d", tt.n)
	}
}

// Package leaderboarddomain classifies ranked leaderboard entries into
// percentile status tiers with prize multipliers.
package leaderboarddomain

import (
	"errors"
	"math"
	"sort"

	sharedtypes "github.com/Ember-Habit-Club/habit-engine/internal/types/shared"
)

// ErrEmptyLeaderboard is returned when there is nothing to classify.
var ErrEmptyLeaderboard = errors.New("empty leaderboard")

// Status tiers, top down: Legend is the top 10%, Hero the top 50%, and
// Commander the rest.
const (
	StatusLegend    = "legend"
	StatusHero      = "hero"
	StatusCommander = "commander"
)

// Prize multipliers per status tier.
const (
	MultiplierLegend    = 5
	MultiplierHero      = 2
	MultiplierCommander = 1
)

// Entry is one unranked leaderboard row.
type Entry struct {
	UserID     sharedtypes.UserID
	FuelPoints sharedtypes.FuelPoints
}

// ClassifiedEntry is one ranked and classified row. LegendProgress and
// HeroProgress are 0-100 percentages for progress bars; at or above the
// threshold they read exactly 100.
type ClassifiedEntry struct {
	UserID         sharedtypes.UserID
	Rank           int
	FuelPoints     sharedtypes.FuelPoints
	Status         string
	Multiplier     int
	LegendProgress float64
	HeroProgress   float64
}

// Classification is the full classified leaderboard.
type Classification struct {
	LegendThreshold int
	HeroThreshold   int
	Entries         []ClassifiedEntry
}

// AssignRanks sorts entries by fuel points descending and assigns 1-based
// ranks. Ties are broken by user ID ascending so the ordering is
// deterministic across reads.
func AssignRanks(entries []Entry) []Entry {
	ranked := make([]Entry, len(entries))
	copy(ranked, entries)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].FuelPoints != ranked[j].FuelPoints {
			return ranked[i].FuelPoints > ranked[j].FuelPoints
		}
		return ranked[i].UserID < ranked[j].UserID
	})
	return ranked
}

// Thresholds computes the Legend and Hero rank cutoffs for n entries using
// the ceiling formula. Tiny fields follow the same math: with one or two
// entries both cutoffs collapse to 1 and only the leader is a Legend.
func Thresholds(n int) (legend, hero int) {
	legend = int(math.Ceil(0.10 * float64(n)))
	hero = int(math.Ceil(0.50 * float64(n)))
	return legend, hero
}

// Classify ranks the entries and assigns each a status tier, multiplier,
// and progress percentages. Returns ErrEmptyLeaderboard for empty input.
func Classify(entries []Entry) (Classification, error) {
	if len(entries) == 0 {
		return Classification{}, ErrEmptyLeaderboard
	}

	ranked := AssignRanks(entries)
	legend, hero := Thresholds(len(ranked))

	classified := make([]ClassifiedEntry, len(ranked))
	for i, entry := range ranked {
		rank := i + 1

		status := StatusCommander
		multiplier := MultiplierCommander
		switch {
		case rank <= legend:
			status = StatusLegend
			multiplier = MultiplierLegend
		case rank <= hero:
			status = StatusHero
			multiplier = MultiplierHero
		}

		classified[i] = ClassifiedEntry{
			UserID:         entry.UserID,
			Rank:           rank,
			FuelPoints:     entry.FuelPoints,
			Status:         status,
			Multiplier:     multiplier,
			LegendProgress: progressToward(legend, rank),
			HeroProgress:   progressToward(hero, rank),
		}
	}

	return Classification{
		LegendThreshold: legend,
		HeroThreshold:   hero,
		Entries:         classified,
	}, nil
}

// progressToward reads exactly 100 at or above the threshold; rank >= 1
// always, so the division is safe.
func progressToward(threshold, rank int) float64 {
	return math.Min(100, float64(threshold)/float64(rank)*100)
}

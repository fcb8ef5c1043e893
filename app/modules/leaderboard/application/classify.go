package leaderboardservice

import (
	"context"
	"errors"

	leaderboarddomain "github.com/Ember-Habit-Club/habit-engine/app/modules/leaderboard/domain"
	"github.com/Ember-Habit-Club/habit-engine/internal/events/leaderboardevents"
	"github.com/Ember-Habit-Club/habit-engine/internal/results"
)

// Classify runs the percentile classifier over the requested scope and
// returns the full classified leaderboard. An empty source is a business
// failure, not a retryable error.
func (s *LeaderboardService) Classify(ctx context.Context, payload leaderboardevents.ClassificationRequestedPayloadV1) (results.OperationResult, error) {
	return s.serviceWrapper(ctx, "Classify", payload.Scope, func(ctx context.Context) (results.OperationResult, error) {
		entries, err := s.entriesFor(ctx, Query{
			Scope:       payload.Scope,
			CommunityID: payload.CommunityID,
			ContestID:   payload.ContestID,
			PeriodStart: payload.PeriodStart,
		})
		if err != nil {
			return results.OperationResult{}, err
		}

		classification, err := leaderboarddomain.Classify(entries)
		if err != nil {
			if errors.Is(err, leaderboarddomain.ErrEmptyLeaderboard) {
				return results.OperationResult{Failure: &leaderboardevents.ClassificationFailedPayloadV1{
					Scope:     payload.Scope,
					ContestID: payload.ContestID,
					Reason:    "empty leaderboard",
				}}, nil
			}
			return results.OperationResult{}, err
		}

		s.metrics.RecordClassification(string(payload.Scope), len(classification.Entries))

		out := &leaderboardevents.ClassifiedPayloadV1{
			Scope:           payload.Scope,
			CommunityID:     payload.CommunityID,
			ContestID:       payload.ContestID,
			PeriodStart:     payload.PeriodStart,
			LegendThreshold: classification.LegendThreshold,
			HeroThreshold:   classification.HeroThreshold,
			Entries:         make([]leaderboardevents.ClassifiedEntryV1, len(classification.Entries)),
		}
		for i, entry := range classification.Entries {
			out.Entries[i] = leaderboardevents.ClassifiedEntryV1{
				UserID:         entry.UserID,
				Rank:           entry.Rank,
				FuelPoints:     entry.FuelPoints,
				Status:         entry.Status,
				Multiplier:     entry.Multiplier,
				LegendProgress: entry.LegendProgress,
				HeroProgress:   entry.HeroProgress,
			}
		}
		return results.OperationResult{Success: out}, nil
	})
}

// GetLeaderboard classifies the requested scope for read endpoints.
func (s *LeaderboardService) GetLeaderboard(ctx context.Context, query Query) (leaderboarddomain.Classification, error) {
	entries, err := s.entriesFor(ctx, query)
	if err != nil {
		return leaderboarddomain.Classification{}, err
	}
	return leaderboarddomain.Classify(entries)
}

package leaderboarddb

import (
	"context"
	"fmt"
	"time"

	leaderboarddomain "github.com/Ember-Habit-Club/habit-engine/app/modules/leaderboard/domain"
	sharedtypes "github.com/Ember-Habit-Club/habit-engine/internal/types/shared"
	"github.com/uptrace/bun"
)

// LeaderboardDBImpl is the bun implementation of LeaderboardDB. It queries
// tables owned by the progression and contest modules, so it carries no
// models or migrations of its own.
type LeaderboardDBImpl struct {
	DB *bun.DB
}

type totalRow struct {
	UserID sharedtypes.UserID     `bun:"user_id"`
	Total  sharedtypes.FuelPoints `bun:"total"`
}

// GlobalTotals sums fuel earned per user since periodStart.
func (db *LeaderboardDBImpl) GlobalTotals(ctx context.Context, periodStart time.Time) ([]leaderboarddomain.Entry, error) {
	var rows []totalRow
	err := db.DB.NewSelect().
		Table("completed_activities").
		ColumnExpr("user_id, SUM(fuel_earned) AS total").
		Where("completed_at >= ?", periodStart).
		GroupExpr("user_id").
		OrderExpr("total DESC").
		Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("failed to query global totals: %w", err)
	}
	return entriesFromRows(rows), nil
}

// CommunityTotals sums fuel earned per community member since periodStart.
// Scope membership comes from community_members, so a user's completions
// count toward every community they belong to.
func (db *LeaderboardDBImpl) CommunityTotals(ctx context.Context, communityID sharedtypes.CommunityID, periodStart time.Time) ([]leaderboarddomain.Entry, error) {
	var rows []totalRow
	err := db.DB.NewSelect().
		TableExpr("completed_activities AS ca").
		Join("JOIN community_members AS cm ON cm.user_id = ca.user_id").
		ColumnExpr("ca.user_id AS user_id, SUM(ca.fuel_earned) AS total").
		Where("cm.community_id = ?", communityID).
		Where("ca.completed_at >= ?", periodStart).
		GroupExpr("ca.user_id").
		OrderExpr("total DESC").
		Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("failed to query community totals for %s: %w", communityID, err)
	}
	return entriesFromRows(rows), nil
}

// ContestStandings lists live registrants with their verification counts as
// the ranking measure.
func (db *LeaderboardDBImpl) ContestStandings(ctx context.Context, contestID sharedtypes.ContestID) ([]leaderboarddomain.Entry, error) {
	var rows []totalRow
	err := db.DB.NewSelect().
		Table("contest_registrations").
		ColumnExpr("user_id, verification_count AS total").
		Where("contest_id = ?", contestID).
		Where("cancelled = false").
		OrderExpr("total DESC").
		Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("failed to query standings for contest %s: %w", contestID, err)
	}
	return entriesFromRows(rows), nil
}

func entriesFromRows(rows []totalRow) []leaderboarddomain.Entry {
	entries := make([]leaderboarddomain.Entry, len(rows))
	for i, row := range rows {
		entries[i] = leaderboarddomain.Entry{
			UserID:     row.UserID,
			FuelPoints: row.Total,
		}
	}
	return entries
}

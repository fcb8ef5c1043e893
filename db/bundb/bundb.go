package bundb

import (
	"context"
	"database/sql"
	"fmt"

	contestdb "github.com/Ember-Habit-Club/habit-engine/app/modules/contest/infrastructure/repositories"
	leaderboarddb "github.com/Ember-Habit-Club/habit-engine/app/modules/leaderboard/infrastructure/repositories"
	progressiondb "github.com/Ember-Habit-Club/habit-engine/app/modules/progression/infrastructure/repositories"
	streakdb "github.com/Ember-Habit-Club/habit-engine/app/modules/streak/infrastructure/repositories"
	"github.com/Ember-Habit-Club/habit-engine/config"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

// DBService bundles the per-module repositories over one bun.DB.
type DBService struct {
	StreakDB      *streakdb.StreakDBImpl
	ProgressionDB *progressiondb.ProgressionDBImpl
	ContestDB     *contestdb.ContestDBImpl
	LeaderboardDB *leaderboarddb.LeaderboardDBImpl
	db            *bun.DB
}

// GetDB returns the underlying database connection pool.
func (dbService *DBService) GetDB() *bun.DB {
	return dbService.db
}

// NewBunDBService initializes a DBService from the Postgres configuration.
func NewBunDBService(ctx context.Context, cfg config.PostgresConfig) (*DBService, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.DSN)))
	if err := sqldb.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := bun.NewDB(sqldb, pgdialect.New())

	db.RegisterModel(
		(*streakdb.UserStreak)(nil),
		(*progressiondb.Activity)(nil),
		(*progressiondb.ActivityProgress)(nil),
		(*progressiondb.CompletedActivity)(nil),
		(*contestdb.Contest)(nil),
		(*contestdb.ContestRegistration)(nil),
		(*contestdb.CreditLedgerEntry)(nil),
		(*contestdb.CommunityMember)(nil),
	)

	return &DBService{
		StreakDB:      &streakdb.StreakDBImpl{DB: db},
		ProgressionDB: &progressiondb.ProgressionDBImpl{DB: db},
		ContestDB:     &contestdb.ContestDBImpl{DB: db},
		LeaderboardDB: &leaderboarddb.LeaderboardDBImpl{DB: db},
		db:            db,
	}, nil
}

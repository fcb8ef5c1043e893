package leaderboardintegrationtests

import (
	"context"
	"database/sql"
	"log"
	"sync"
	"testing"
	"time"

	contestmigrations "github.com/Ember-Habit-Club/habit-engine/app/modules/contest/infrastructure/repositories/migrations"
	progressionmigrations "github.com/Ember-Habit-Club/habit-engine/app/modules/progression/infrastructure/repositories/migrations"
	"github.com/Ember-Habit-Club/habit-engine/integration_tests/containers"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
)

// Global test environment, initialized once per package run. The leaderboard
// reads tables owned by the progression and contest modules, so both
// migrators run here.
var (
	testEnv     *testEnvironment
	testEnvOnce sync.Once
	testEnvErr  error
)

type testEnvironment struct {
	Container *postgres.PostgresContainer
	BunDB     *bun.DB
	DSN       string
}

func getTestEnv(t *testing.T) *testEnvironment {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	testEnvOnce.Do(func() {
		log.Println("Initializing leaderboard test environment...")

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		container, dsn, err := containers.SetupPostgresContainer(ctx)
		if err != nil {
			testEnvErr = err
			return
		}

		sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
		db := bun.NewDB(sqldb, pgdialect.New())

		for _, migrations := range []*migrate.Migrations{
			progressionmigrations.Migrations,
			contestmigrations.Migrations,
		} {
			migrator := migrate.NewMigrator(db, migrations)
			if err := migrator.Init(ctx); err != nil {
				testEnvErr = err
				return
			}
			if _, err := migrator.Migrate(ctx); err != nil {
				testEnvErr = err
				return
			}
		}

		testEnv = &testEnvironment{
			Container: container,
			BunDB:     db,
			DSN:       dsn,
		}
	})

	if testEnvErr != nil {
		t.Fatalf("failed to set up test environment: %v", testEnvErr)
	}
	return testEnv
}

// truncateLeaderboardSources resets the tables the leaderboard reads.
func truncateLeaderboardSources(t *testing.T, db *bun.DB) {
	t.Helper()

	ctx := context.Background()
	for _, table := range []string{"completed_activities", "community_members", "contest_registrations", "contests"} {
		if _, err := db.ExecContext(ctx, "TRUNCATE TABLE ? CASCADE", bun.Ident(table)); err != nil {
			t.Fatalf("failed to truncate %s: %v", table, err)
		}
	}
}

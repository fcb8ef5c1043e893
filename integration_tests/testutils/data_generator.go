// Package testutils provides seeded fake-data generators for integration
// tests.
package testutils

import (
	"time"

	contestdb "github.com/Ember-Habit-Club/habit-engine/app/modules/contest/infrastructure/repositories"
	sharedtypes "github.com/Ember-Habit-Club/habit-engine/internal/types/shared"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
)

// TestDataGenerator provides methods to create test data for integration
// tests.
type TestDataGenerator struct {
	faker *gofakeit.Faker
	seed  int64
}

// NewTestDataGenerator creates a new test data generator with optional seed.
func NewTestDataGenerator(seed ...int64) *TestDataGenerator {
	var s int64
	if len(seed) > 0 {
		s = seed[0]
	} else {
		s = time.Now().UnixNano()
	}

	return &TestDataGenerator{
		faker: gofakeit.New(uint64(s)),
		seed:  s,
	}
}

// Seed returns the seed the generator was built with, for reproducing
// failures.
func (g *TestDataGenerator) Seed() int64 {
	return g.seed
}

// NewUserID generates a unique user ID.
func (g *TestDataGenerator) NewUserID() sharedtypes.UserID {
	return sharedtypes.UserID(uuid.NewString())
}

// NewContest generates a contest with a unique ID, a registration window
// closing before the start date, and sane defaults.
func (g *TestDataGenerator) NewContest(startDate time.Time) *contestdb.Contest {
	return &contestdb.Contest{
		ID:                  sharedtypes.ContestID(uuid.NewString()),
		Name:                g.faker.BookTitle(),
		StartDate:           startDate,
		RegistrationEndDate: startDate.AddDate(0, 0, -3),
		DurationDays:        g.faker.Number(7, 60),
		EntryFeeCredits:     1,
		MaxPlayers:          100,
		VerificationsGoal:   g.faker.Number(4, 12),
	}
}

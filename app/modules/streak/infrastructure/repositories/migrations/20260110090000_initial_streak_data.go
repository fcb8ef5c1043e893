package streakmigrations

import (
	"context"
	"fmt"

	streakdb "github.com/Ember-Habit-Club/habit-engine/app/modules/streak/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating user_streaks table...")

		if _, err := db.NewCreateTable().Model((*streakdb.UserStreak)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}

		fmt.Println("user_streaks table created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping user_streaks table...")

		if _, err := db.NewDropTable().Model((*streakdb.UserStreak)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}

		fmt.Println("user_streaks table dropped successfully!")
		return nil
	})
}

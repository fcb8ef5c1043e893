package progressionmigrations

import (
	"context"
	"fmt"

	progressiondb "github.com/Ember-Habit-Club/habit-engine/app/modules/progression/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating progression tables...")

		if _, err := db.NewCreateTable().Model((*progressiondb.Activity)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*progressiondb.ActivityProgress)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*progressiondb.CompletedActivity)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}

		if _, err := db.ExecContext(ctx, `
			CREATE INDEX IF NOT EXISTS idx_completed_activities_user_id ON completed_activities(user_id);
			CREATE INDEX IF NOT EXISTS idx_completed_activities_completed_at ON completed_activities(completed_at);
		`); err != nil {
			return fmt.Errorf("failed to add completed_activities indices: %w", err)
		}

		fmt.Println("Progression tables created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping progression tables...")

		if _, err := db.NewDropTable().Model((*progressiondb.CompletedActivity)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewDropTable().Model((*progressiondb.ActivityProgress)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewDropTable().Model((*progressiondb.Activity)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}

		fmt.Println("Progression tables dropped successfully!")
		return nil
	})
}

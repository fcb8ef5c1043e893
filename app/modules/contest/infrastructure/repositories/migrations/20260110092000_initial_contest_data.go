package contestmigrations

import (
	"context"
	"fmt"

	contestdb "github.com/Ember-Habit-Club/habit-engine/app/modules/contest/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating contest tables...")

		if _, err := db.NewCreateTable().Model((*contestdb.Contest)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*contestdb.ContestRegistration)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*contestdb.CreditLedgerEntry)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*contestdb.CommunityMember)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}

		if _, err := db.ExecContext(ctx, `
			CREATE INDEX IF NOT EXISTS idx_credit_ledger_user_id ON credit_ledger(user_id);
			CREATE INDEX IF NOT EXISTS idx_contest_registrations_contest_id ON contest_registrations(contest_id);
		`); err != nil {
			return fmt.Errorf("failed to add contest indices: %w", err)
		}

		fmt.Println("Contest tables created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping contest tables...")

		if _, err := db.NewDropTable().Model((*contestdb.CommunityMember)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewDropTable().Model((*contestdb.CreditLedgerEntry)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewDropTable().Model((*contestdb.ContestRegistration)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewDropTable().Model((*contestdb.Contest)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}

		fmt.Println("Contest tables dropped successfully!")
		return nil
	})
}

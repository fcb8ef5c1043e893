package contestdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sharedtypes "github.com/Ember-Habit-Club/habit-engine/internal/types/shared"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"
)

// ContestDBImpl is the bun implementation of ContestDB.
type ContestDBImpl struct {
	DB *bun.DB
}

// GetContest fetches one contest by ID.
func (db *ContestDBImpl) GetContest(ctx context.Context, contestID sharedtypes.ContestID) (*Contest, error) {
	var contest Contest
	err := db.DB.NewSelect().
		Model(&contest).
		Where("id = ?", contestID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrContestNotFound
		}
		return nil, fmt.Errorf("failed to fetch contest %s: %w", contestID, err)
	}
	return &contest, nil
}

// ListContests lists all contests, soonest start first.
func (db *ContestDBImpl) ListContests(ctx context.Context) ([]Contest, error) {
	var contests []Contest
	err := db.DB.NewSelect().
		Model(&contests).
		Order("start_date ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list contests: %w", err)
	}
	return contests, nil
}

// GetRegistration fetches one (contest, user) registration row.
func (db *ContestDBImpl) GetRegistration(ctx context.Context, contestID sharedtypes.ContestID, userID sharedtypes.UserID) (*ContestRegistration, error) {
	var registration ContestRegistration
	err := db.DB.NewSelect().
		Model(&registration).
		Where("contest_id = ?", contestID).
		Where("user_id = ?", userID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("failed to fetch registration for contest %s user %s: %w", contestID, userID, err)
	}
	return &registration, nil
}

// ListRegistrations lists a contest's non-cancelled registrations.
func (db *ContestDBImpl) ListRegistrations(ctx context.Context, contestID sharedtypes.ContestID) ([]ContestRegistration, error) {
	var registrations []ContestRegistration
	err := db.DB.NewSelect().
		Model(&registrations).
		Where("contest_id = ?", contestID).
		Where("cancelled = false").
		Order("registered_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations for contest %s: %w", contestID, err)
	}
	return registrations, nil
}

// CountRegistrations counts a contest's non-cancelled registrations.
func (db *ContestDBImpl) CountRegistrations(ctx context.Context, contestID sharedtypes.ContestID) (int, error) {
	count, err := db.DB.NewSelect().
		Model((*ContestRegistration)(nil)).
		Where("contest_id = ?", contestID).
		Where("cancelled = false").
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count registrations for contest %s: %w", contestID, err)
	}
	return count, nil
}

// CreditBalance sums a user's entry-credit ledger deltas.
func (db *ContestDBImpl) CreditBalance(ctx context.Context, userID sharedtypes.UserID) (int, error) {
	var balance int
	err := db.DB.NewSelect().
		Model((*CreditLedgerEntry)(nil)).
		ColumnExpr("COALESCE(SUM(delta), 0)").
		Where("user_id = ?", userID).
		Scan(ctx, &balance)
	if err != nil {
		return 0, fmt.Errorf("failed to compute credit balance for user %s: %w", userID, err)
	}
	return balance, nil
}

// IsCommunityMember reports membership in a community.
func (db *ContestDBImpl) IsCommunityMember(ctx context.Context, communityID sharedtypes.CommunityID, userID sharedtypes.UserID) (bool, error) {
	exists, err := db.DB.NewSelect().
		Model((*CommunityMember)(nil)).
		Where("community_id = ?", communityID).
		Where("user_id = ?", userID).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check community membership for user %s: %w", userID, err)
	}
	return exists, nil
}

// RegisterWithCredit inserts the registration and the entry-credit debit in
// one transaction. Re-registering over a cancelled row reactivates it with
// fresh counters; a live duplicate returns ErrRegistrationExists and writes
// nothing.
func (db *ContestDBImpl) RegisterWithCredit(ctx context.Context, registration *ContestRegistration, fee int) error {
	return db.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewInsert().
			Model(registration).
			On("CONFLICT (contest_id, user_id) DO UPDATE").
			Set("cancelled = false").
			Set("verification_count = 0").
			Set("verifications_required = EXCLUDED.verifications_required").
			Set("registered_at = EXCLUDED.registered_at").
			Set("completed_at = NULL").
			Set("updated_at = EXCLUDED.registered_at").
			Where("cr.cancelled = true").
			Exec(ctx)
		if err != nil {
			var pgErr pgdriver.Error
			if errors.As(err, &pgErr) && pgErr.IntegrityViolation() {
				return ErrRegistrationExists
			}
			return fmt.Errorf("failed to insert registration: %w", err)
		}
		rows, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read rows affected: %w", err)
		}
		if rows == 0 {
			return ErrRegistrationExists
		}

		if fee > 0 {
			entry := &CreditLedgerEntry{
				UserID:    registration.UserID,
				Delta:     -fee,
				Reason:    "contest_entry",
				ContestID: registration.ContestID,
				CreatedAt: time.Now().UTC(),
			}
			if _, err := tx.NewInsert().Model(entry).Exec(ctx); err != nil {
				return fmt.Errorf("failed to record credit debit: %w", err)
			}
		}
		return nil
	})
}

// CancelWithRefund marks the registration cancelled and refunds the entry
// credit in one transaction.
func (db *ContestDBImpl) CancelWithRefund(ctx context.Context, contestID sharedtypes.ContestID, userID sharedtypes.UserID, fee int) error {
	return db.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewUpdate().
			Model((*ContestRegistration)(nil)).
			Set("cancelled = true").
			Set("updated_at = ?", time.Now().UTC()).
			Where("contest_id = ?", contestID).
			Where("user_id = ?", userID).
			Where("cancelled = false").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to cancel registration: %w", err)
		}
		rows, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read rows affected: %w", err)
		}
		if rows == 0 {
			return ErrRegistrationNotFound
		}

		if fee > 0 {
			entry := &CreditLedgerEntry{
				UserID:    userID,
				Delta:     fee,
				Reason:    "contest_refund",
				ContestID: contestID,
				CreatedAt: time.Now().UTC(),
			}
			if _, err := tx.NewInsert().Model(entry).Exec(ctx); err != nil {
				return fmt.Errorf("failed to record credit refund: %w", err)
			}
		}
		return nil
	})
}

// UpdateVerification persists the verification counter and completion
// timestamp for a registration.
func (db *ContestDBImpl) UpdateVerification(ctx context.Context, registration *ContestRegistration) error {
	registration.UpdatedAt = time.Now().UTC()

	res, err := db.DB.NewUpdate().
		Model(registration).
		Column("verification_count", "completed_at", "updated_at").
		Where("contest_id = ?", registration.ContestID).
		Where("user_id = ?", registration.UserID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update verification count: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if rows == 0 {
		return ErrRegistrationNotFound
	}
	return nil
}

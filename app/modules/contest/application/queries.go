package contestservice

import (
	"context"
	"time"

	contestdomain "github.com/Ember-Habit-Club/habit-engine/app/modules/contest/domain"
	sharedtypes "github.com/Ember-Habit-Club/habit-engine/internal/types/shared"
)

// ListContests returns all contests with their live registrant counts.
func (s *ContestService) ListContests(ctx context.Context) ([]ContestSummary, error) {
	rows, err := s.repo.ListContests(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]ContestSummary, 0, len(rows))
	for i := range rows {
		count, err := s.repo.CountRegistrations(ctx, rows[i].ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, ContestSummary{
			Contest:     contestFromRow(&rows[i]),
			Registrants: count,
		})
	}
	return summaries, nil
}

// GetRegistration returns one registration with its status derived at call
// time.
func (s *ContestService) GetRegistration(ctx context.Context, contestID sharedtypes.ContestID, userID sharedtypes.UserID) (RegistrationView, error) {
	row, err := s.repo.GetContest(ctx, contestID)
	if err != nil {
		return RegistrationView{}, err
	}
	regRow, err := s.repo.GetRegistration(ctx, contestID, userID)
	if err != nil {
		return RegistrationView{}, err
	}

	status := contestdomain.DeriveStatus(contestFromRow(row), registrationFromRow(regRow), time.Now().UTC())
	return RegistrationView{
		ContestID:             regRow.ContestID,
		UserID:                regRow.UserID,
		Status:                status,
		VerificationCount:     regRow.VerificationCount,
		VerificationsRequired: regRow.VerificationsRequired,
		RegisteredAt:          regRow.RegisteredAt,
	}, nil
}

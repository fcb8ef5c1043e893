package contestservice

import (
	"context"
	"time"

	contestqueue "github.com/Ember-Habit-Club/habit-engine/app/modules/contest/infrastructure/queue"
	contestdb "github.com/Ember-Habit-Club/habit-engine/app/modules/contest/infrastructure/repositories"
	sharedtypes "github.com/Ember-Habit-Club/habit-engine/internal/types/shared"
)

// fakeContestDB is a function-field fake of the contest repository.
type fakeContestDB struct {
	GetContestFunc         func(ctx context.Context, contestID sharedtypes.ContestID) (*contestdb.Contest, error)
	ListContestsFunc       func(ctx context.Context) ([]contestdb.Contest, error)
	GetRegistrationFunc    func(ctx context.Context, contestID sharedtypes.ContestID, userID sharedtypes.UserID) (*contestdb.ContestRegistration, error)
	ListRegistrationsFunc  func(ctx context.Context, contestID sharedtypes.ContestID) ([]contestdb.ContestRegistration, error)
	CountRegistrationsFunc func(ctx context.Context, contestID sharedtypes.ContestID) (int, error)
	CreditBalanceFunc      func(ctx context.Context, userID sharedtypes.UserID) (int, error)
	IsCommunityMemberFunc  func(ctx context.Context, communityID sharedtypes.CommunityID, userID sharedtypes.UserID) (bool, error)

	registered   []*contestdb.ContestRegistration
	registerFees []int
	cancelled    []sharedtypes.UserID
	refundFees   []int
	updated      []*contestdb.ContestRegistration

	RegisterWithCreditErr error
	CancelWithRefundErr   error
	UpdateVerificationErr error
}

func (f *fakeContestDB) GetContest(ctx context.Context, contestID sharedtypes.ContestID) (*contestdb.Contest, error) {
	if f.GetContestFunc != nil {
		return f.GetContestFunc(ctx, contestID)
	}
	return nil, contestdb.ErrContestNotFound
}

func (f *fakeContestDB) ListContests(ctx context.Context) ([]contestdb.Contest, error) {
	if f.ListContestsFunc != nil {
		return f.ListContestsFunc(ctx)
	}
	return nil, nil
}

func (f *fakeContestDB) GetRegistration(ctx context.Context, contestID sharedtypes.ContestID, userID sharedtypes.UserID) (*contestdb.ContestRegistration, error) {
	if f.GetRegistrationFunc != nil {
		return f.GetRegistrationFunc(ctx, contestID, userID)
	}
	return nil, contestdb.ErrRegistrationNotFound
}

func (f *fakeContestDB) ListRegistrations(ctx context.Context, contestID sharedtypes.ContestID) ([]contestdb.ContestRegistration, error) {
	if f.ListRegistrationsFunc != nil {
		return f.ListRegistrationsFunc(ctx, contestID)
	}
	return nil, nil
}

func (f *fakeContestDB) CountRegistrations(ctx context.Context, contestID sharedtypes.ContestID) (int, error) {
	if f.CountRegistrationsFunc != nil {
		return f.CountRegistrationsFunc(ctx, contestID)
	}
	return 0, nil
}

func (f *fakeContestDB) CreditBalance(ctx context.Context, userID sharedtypes.UserID) (int, error) {
	if f.CreditBalanceFunc != nil {
		return f.CreditBalanceFunc(ctx, userID)
	}
	return 0, nil
}

func (f *fakeContestDB) IsCommunityMember(ctx context.Context, communityID sharedtypes.CommunityID, userID sharedtypes.UserID) (bool, error) {
	if f.IsCommunityMemberFunc != nil {
		return f.IsCommunityMemberFunc(ctx, communityID, userID)
	}
	return false, nil
}

func (f *fakeContestDB) RegisterWithCredit(ctx context.Context, registration *contestdb.ContestRegistration, fee int) error {
	if f.RegisterWithCreditErr != nil {
		return f.RegisterWithCreditErr
	}
	f.registered = append(f.registered, registration)
	f.registerFees = append(f.registerFees, fee)
	return nil
}

func (f *fakeContestDB) CancelWithRefund(ctx context.Context, contestID sharedtypes.ContestID, userID sharedtypes.UserID, fee int) error {
	if f.CancelWithRefundErr != nil {
		return f.CancelWithRefundErr
	}
	f.cancelled = append(f.cancelled, userID)
	f.refundFees = append(f.refundFees, fee)
	return nil
}

func (f *fakeContestDB) UpdateVerification(ctx context.Context, registration *contestdb.ContestRegistration) error {
	if f.UpdateVerificationErr != nil {
		return f.UpdateVerificationErr
	}
	f.updated = append(f.updated, registration)
	return nil
}

// fakeQueueService records scheduled and cancelled jobs.
type fakeQueueService struct {
	startJobs      []sharedtypes.ContestID
	settlementJobs []sharedtypes.ContestID
	cancelledJobs  []sharedtypes.ContestID

	ScheduleStartErr      error
	ScheduleSettlementErr error
	CancelJobsErr         error
}

func (f *fakeQueueService) ScheduleContestStart(ctx context.Context, contestID sharedtypes.ContestID, startTime time.Time) error {
	if f.ScheduleStartErr != nil {
		return f.ScheduleStartErr
	}
	f.startJobs = append(f.startJobs, contestID)
	return nil
}

func (f *fakeQueueService) ScheduleContestSettlement(ctx context.Context, contestID sharedtypes.ContestID, endTime time.Time) error {
	if f.ScheduleSettlementErr != nil {
		return f.ScheduleSettlementErr
	}
	f.settlementJobs = append(f.settlementJobs, contestID)
	return nil
}

func (f *fakeQueueService) CancelContestJobs(ctx context.Context, contestID sharedtypes.ContestID) error {
	if f.CancelJobsErr != nil {
		return f.CancelJobsErr
	}
	f.cancelledJobs = append(f.cancelledJobs, contestID)
	return nil
}

func (f *fakeQueueService) GetScheduledJobs(ctx context.Context, contestID sharedtypes.ContestID) ([]contestqueue.JobInfo, error) {
	return nil, nil
}

func (f *fakeQueueService) HealthCheck(ctx context.Context) error { return nil }

func (f *fakeQueueService) Start(ctx context.Context) error { return nil }

func (f *fakeQueueService) Stop(ctx context.Context) error { return nil }

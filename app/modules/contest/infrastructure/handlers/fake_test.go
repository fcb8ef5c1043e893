package contesthandlers

import (
	"context"

	contestservice "github.com/Ember-Habit-Club/habit-engine/app/modules/contest/application"
	"github.com/Ember-Habit-Club/habit-engine/internal/events/contestevents"
	"github.com/Ember-Habit-Club/habit-engine/internal/results"
	sharedtypes "github.com/Ember-Habit-Club/habit-engine/internal/types/shared"
)

// fakeContestService is a function-field fake of the contest service.
type fakeContestService struct {
	RegisterFunc           func(ctx context.Context, payload contestevents.RegistrationRequestedPayloadV1) (results.OperationResult, error)
	CancelRegistrationFunc func(ctx context.Context, payload contestevents.RegistrationCancelRequestedPayloadV1) (results.OperationResult, error)
	SubmitVerificationFunc func(ctx context.Context, payload contestevents.VerificationSubmittedPayloadV1) (results.OperationResult, error)
	StartContestFunc       func(ctx context.Context, payload contestevents.ContestStartedPayloadV1) (results.OperationResult, error)
}

func (f *fakeContestService) Register(ctx context.Context, payload contestevents.RegistrationRequestedPayloadV1) (results.OperationResult, error) {
	if f.RegisterFunc != nil {
		return f.RegisterFunc(ctx, payload)
	}
	return results.OperationResult{}, nil
}

func (f *fakeContestService) CancelRegistration(ctx context.Context, payload contestevents.RegistrationCancelRequestedPayloadV1) (results.OperationResult, error) {
	if f.CancelRegistrationFunc != nil {
		return f.CancelRegistrationFunc(ctx, payload)
	}
	return results.OperationResult{}, nil
}

func (f *fakeContestService) SubmitVerification(ctx context.Context, payload contestevents.VerificationSubmittedPayloadV1) (results.OperationResult, error) {
	if f.SubmitVerificationFunc != nil {
		return f.SubmitVerificationFunc(ctx, payload)
	}
	return results.OperationResult{}, nil
}

func (f *fakeContestService) StartContest(ctx context.Context, payload contestevents.ContestStartedPayloadV1) (results.OperationResult, error) {
	if f.StartContestFunc != nil {
		return f.StartContestFunc(ctx, payload)
	}
	return results.OperationResult{}, nil
}

func (f *fakeContestService) ListContests(ctx context.Context) ([]contestservice.ContestSummary, error) {
	return nil, nil
}

func (f *fakeContestService) GetRegistration(ctx context.Context, contestID sharedtypes.ContestID, userID sharedtypes.UserID) (contestservice.RegistrationView, error) {
	return contestservice.RegistrationView{}, nil
}

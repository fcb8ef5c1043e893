package contestservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	contestdomain "github.com/Ember-Habit-Club/habit-engine/app/modules/contest/domain"
	contestqueue "github.com/Ember-Habit-Club/habit-engine/app/modules/contest/infrastructure/queue"
	contestdb "github.com/Ember-Habit-Club/habit-engine/app/modules/contest/infrastructure/repositories"
	"github.com/Ember-Habit-Club/habit-engine/internal/observability/attr"
	"github.com/Ember-Habit-Club/habit-engine/internal/observability/metrics/contestmetrics"
	"github.com/Ember-Habit-Club/habit-engine/internal/results"
	sharedtypes "github.com/Ember-Habit-Club/habit-engine/internal/types/shared"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ContestService implements the Service interface.
type ContestService struct {
	repo    contestdb.ContestDB
	queue   contestqueue.QueueService
	logger  *slog.Logger
	metrics contestmetrics.ContestMetrics
	tracer  trace.Tracer
}

// NewContestService creates a new ContestService.
func NewContestService(
	repo contestdb.ContestDB,
	queue contestqueue.QueueService,
	logger *slog.Logger,
	metrics contestmetrics.ContestMetrics,
	tracer trace.Tracer,
) *ContestService {
	return &ContestService{
		repo:    repo,
		queue:   queue,
		logger:  logger,
		metrics: metrics,
		tracer:  tracer,
	}
}

// serviceWrapper wraps a service operation with tracing, metrics, and panic
// recovery.
func (s *ContestService) serviceWrapper(
	ctx context.Context,
	operationName string,
	contestID sharedtypes.ContestID,
	userID sharedtypes.UserID,
	op func(ctx context.Context) (results.OperationResult, error),
) (result results.OperationResult, err error) {
	ctx, span := s.tracer.Start(ctx, operationName, trace.WithAttributes(
		attribute.String("operation", operationName),
		attribute.String("contest_id", string(contestID)),
		attribute.String("user_id", string(userID)),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(operationName)

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(operationName, time.Since(startTime).Seconds())
	}()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.ContestID("contest_id", contestID),
				attr.UserID("user_id", userID),
				attr.ExtractCorrelationID(ctx),
				attr.Error(err),
			)
			s.metrics.RecordOperationFailure(operationName)
			span.RecordError(err)
			result = results.OperationResult{}
		}
	}()

	result, err = op(ctx)

	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed with error",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.ContestID("contest_id", contestID),
			attr.UserID("user_id", userID),
			attr.Error(wrappedErr),
		)
		s.metrics.RecordOperationFailure(operationName)
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	if result.IsFailure() {
		s.logger.WarnContext(ctx, "Operation returned failure result",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.ContestID("contest_id", contestID),
			attr.Any("failure_payload", result.Failure),
		)
	}

	if result.IsSuccess() {
		s.logger.InfoContext(ctx, operationName+" completed successfully",
			attr.String("operation", operationName),
			attr.ContestID("contest_id", contestID),
			attr.UserID("user_id", userID),
			attr.ExtractCorrelationID(ctx),
		)
		s.metrics.RecordOperationSuccess(operationName)
	}

	return result, nil
}

func contestFromRow(row *contestdb.Contest) contestdomain.Contest {
	return contestdomain.Contest{
		ID:                  row.ID,
		Name:                row.Name,
		StartDate:           row.StartDate,
		RegistrationEndDate: row.RegistrationEndDate,
		DurationDays:        row.DurationDays,
		EntryFeeCredits:     row.EntryFeeCredits,
		MinPlayers:          row.MinPlayers,
		MaxPlayers:          row.MaxPlayers,
		VerificationsGoal:   row.VerificationsGoal,
		CommunityID:         row.CommunityID,
	}
}

func registrationFromRow(row *contestdb.ContestRegistration) contestdomain.Registration {
	return contestdomain.Registration{
		ContestID:             row.ContestID,
		UserID:                row.UserID,
		Cancelled:             row.Cancelled,
		VerificationCount:     row.VerificationCount,
		VerificationsRequired: row.VerificationsRequired,
		RegisteredAt:          row.RegisteredAt,
		CompletedAt:           row.CompletedAt,
	}
}

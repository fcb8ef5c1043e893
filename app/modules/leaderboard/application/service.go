package leaderboardservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	leaderboarddomain "github.com/Ember-Habit-Club/habit-engine/app/modules/leaderboard/domain"
	leaderboarddb "github.com/Ember-Habit-Club/habit-engine/app/modules/leaderboard/infrastructure/repositories"
	"github.com/Ember-Habit-Club/habit-engine/internal/observability/attr"
	"github.com/Ember-Habit-Club/habit-engine/internal/observability/metrics/leaderboardmetrics"
	"github.com/Ember-Habit-Club/habit-engine/internal/results"
	sharedtypes "github.com/Ember-Habit-Club/habit-engine/internal/types/shared"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// LeaderboardService implements the Service interface.
type LeaderboardService struct {
	repo    leaderboarddb.LeaderboardDB
	logger  *slog.Logger
	metrics leaderboardmetrics.LeaderboardMetrics
	tracer  trace.Tracer
}

// NewLeaderboardService creates a new LeaderboardService.
func NewLeaderboardService(
	repo leaderboarddb.LeaderboardDB,
	logger *slog.Logger,
	metrics leaderboardmetrics.LeaderboardMetrics,
	tracer trace.Tracer,
) *LeaderboardService {
	return &LeaderboardService{
		repo:    repo,
		logger:  logger,
		metrics: metrics,
		tracer:  tracer,
	}
}

// serviceWrapper wraps a service operation with tracing, metrics, and panic
// recovery.
func (s *LeaderboardService) serviceWrapper(
	ctx context.Context,
	operationName string,
	scope sharedtypes.LeaderboardScope,
	op func(ctx context.Context) (results.OperationResult, error),
) (result results.OperationResult, err error) {
	ctx, span := s.tracer.Start(ctx, operationName, trace.WithAttributes(
		attribute.String("operation", operationName),
		attribute.String("scope", string(scope)),
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
				attr.String("scope", string(scope)),
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
			attr.String("scope", string(scope)),
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
			attr.Any("failure_payload", result.Failure),
		)
	}

	if result.IsSuccess() {
		s.logger.InfoContext(ctx, operationName+" completed successfully",
			attr.String("operation", operationName),
			attr.String("scope", string(scope)),
			attr.ExtractCorrelationID(ctx),
		)
		s.metrics.RecordOperationSuccess(operationName)
	}

	return result, nil
}

// entriesFor resolves a query to its source entries.
func (s *LeaderboardService) entriesFor(ctx context.Context, query Query) ([]leaderboarddomain.Entry, error) {
	switch query.Scope {
	case sharedtypes.ScopeContest:
		return s.repo.ContestStandings(ctx, query.ContestID)
	case sharedtypes.ScopeCommunity:
		return s.repo.CommunityTotals(ctx, query.CommunityID, query.PeriodStart)
	default:
		return s.repo.GlobalTotals(ctx, query.PeriodStart)
	}
}

package streakservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	streakdb "github.com/Ember-Habit-Club/habit-engine/app/modules/streak/infrastructure/repositories"
	"github.com/Ember-Habit-Club/habit-engine/internal/observability/attr"
	"github.com/Ember-Habit-Club/habit-engine/internal/observability/metrics/streakmetrics"
	"github.com/Ember-Habit-Club/habit-engine/internal/results"
	sharedtypes "github.com/Ember-Habit-Club/habit-engine/internal/types/shared"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// StreakService implements the Service interface.
type StreakService struct {
	repo    streakdb.StreakDB
	logger  *slog.Logger
	metrics streakmetrics.StreakMetrics
	tracer  trace.Tracer
	loc     *time.Location
}

// NewStreakService creates a new StreakService. loc is the reference zone
// for all calendar-day comparisons.
func NewStreakService(
	repo streakdb.StreakDB,
	logger *slog.Logger,
	metrics streakmetrics.StreakMetrics,
	tracer trace.Tracer,
	loc *time.Location,
) *StreakService {
	return &StreakService{
		repo:    repo,
		logger:  logger,
		metrics: metrics,
		tracer:  tracer,
		loc:     loc,
	}
}

// serviceWrapper wraps a service operation with tracing, metrics, and panic
// recovery.
func (s *StreakService) serviceWrapper(
	ctx context.Context,
	operationName string,
	userID sharedtypes.UserID,
	op func(ctx context.Context) (results.OperationResult, error),
) (result results.OperationResult, err error) {
	ctx, span := s.tracer.Start(ctx, operationName, trace.WithAttributes(
		attribute.String("operation", operationName),
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
			attr.UserID("user_id", userID),
			attr.Any("failure_payload", result.Failure),
		)
	}

	if result.IsSuccess() {
		s.logger.InfoContext(ctx, operationName+" completed successfully",
			attr.String("operation", operationName),
			attr.UserID("user_id", userID),
			attr.ExtractCorrelationID(ctx),
		)
		s.metrics.RecordOperationSuccess(operationName)
	}

	return result, nil
}

package progressionservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	progressiondb "github.com/Ember-Habit-Club/habit-engine/app/modules/progression/infrastructure/repositories"
	"github.com/Ember-Habit-Club/habit-engine/internal/observability/attr"
	"github.com/Ember-Habit-Club/habit-engine/internal/observability/metrics/progressionmetrics"
	"github.com/Ember-Habit-Club/habit-engine/internal/results"
	sharedtypes "github.com/Ember-Habit-Club/habit-engine/internal/types/shared"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ProgressionService implements the Service interface.
type ProgressionService struct {
	repo    progressiondb.ProgressionDB
	logger  *slog.Logger
	metrics progressionmetrics.ProgressionMetrics
	tracer  trace.Tracer
	loc     *time.Location
}

// NewProgressionService creates a new ProgressionService. loc is the
// reference zone for daily-cadence calendar comparisons.
func NewProgressionService(
	repo progressiondb.ProgressionDB,
	logger *slog.Logger,
	metrics progressionmetrics.ProgressionMetrics,
	tracer trace.Tracer,
	loc *time.Location,
) *ProgressionService {
	return &ProgressionService{
		repo:    repo,
		logger:  logger,
		metrics: metrics,
		tracer:  tracer,
		loc:     loc,
	}
}

// serviceWrapper wraps a service operation with tracing, metrics, and panic
// recovery.
func (s *ProgressionService) serviceWrapper(
	ctx context.Context,
	operationName string,
	userID sharedtypes.UserID,
	activityID sharedtypes.ActivityID,
	op func(ctx context.Context) (results.OperationResult, error),
) (result results.OperationResult, err error) {
	ctx, span := s.tracer.Start(ctx, operationName, trace.WithAttributes(
		attribute.String("operation", operationName),
		attribute.String("user_id", string(userID)),
		attribute.String("activity_id", string(activityID)),
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
				attr.ActivityID("activity_id", activityID),
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
			attr.ActivityID("activity_id", activityID),
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
			attr.ActivityID("activity_id", activityID),
			attr.ExtractCorrelationID(ctx),
		)
		s.metrics.RecordOperationSuccess(operationName)
	}

	return result, nil
}

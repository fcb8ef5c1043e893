// Package contestqueue schedules date-driven contest jobs with River: one
// start job and one settlement job per contest, deduplicated by args.
package contestqueue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Ember-Habit-Club/habit-engine/internal/eventbus"
	"github.com/Ember-Habit-Club/habit-engine/internal/observability/attr"
	"github.com/Ember-Habit-Club/habit-engine/internal/observability/metrics/contestmetrics"
	sharedtypes "github.com/Ember-Habit-Club/habit-engine/internal/types/shared"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/uptrace/bun"
)

// QueueService is the contract for contest job scheduling.
type QueueService interface {
	// ScheduleContestStart schedules the contest.started publication at startTime.
	ScheduleContestStart(ctx context.Context, contestID sharedtypes.ContestID, startTime time.Time) error
	// ScheduleContestSettlement schedules the settlement-due publication at endTime.
	ScheduleContestSettlement(ctx context.Context, contestID sharedtypes.ContestID, endTime time.Time) error
	// CancelContestJobs cancels all scheduled jobs for a contest.
	CancelContestJobs(ctx context.Context, contestID sharedtypes.ContestID) error
	// GetScheduledJobs returns scheduled job information for a contest.
	GetScheduledJobs(ctx context.Context, contestID sharedtypes.ContestID) ([]JobInfo, error)
	// HealthCheck verifies the queue tables are reachable.
	HealthCheck(ctx context.Context) error
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

var _ QueueService = (*Service)(nil)

// Service is the River-backed implementation of QueueService.
type Service struct {
	client   *river.Client[pgx.Tx]
	pool     *pgxpool.Pool
	logger   *slog.Logger
	db       *bun.DB
	metrics  contestmetrics.ContestMetrics
	eventBus eventbus.EventBus
}

// NewService creates the contest queue service. River needs its own pgx
// pool; the bun handle is only used for job-table queries.
func NewService(
	ctx context.Context,
	bunDB *bun.DB,
	logger *slog.Logger,
	dsn string,
	metrics contestmetrics.ContestMetrics,
	eventBus eventbus.EventBus,
) (*Service, error) {
	ctxLogger := logger.With(
		attr.String("operation", "new_contest_queue_service"),
		attr.String("component", "river_queue"),
	)

	ctxLogger.Info("Initializing contest queue service")

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, NewContestStartWorker(ctxLogger, eventBus))
	river.AddWorker(workers, NewContestSettlementWorker(ctxLogger, eventBus))

	riverClient, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: 50},
			"contest":          {MaxWorkers: 25},
		},
		Workers: workers,
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create River client: %w", err)
	}

	ctxLogger.Info("Contest queue service initialized successfully")
	return &Service{
		client:   riverClient,
		pool:     pool,
		logger:   ctxLogger,
		db:       bunDB,
		metrics:  metrics,
		eventBus: eventBus,
	}, nil
}

// Start starts the River client.
func (s *Service) Start(ctx context.Context) error {
	s.logger.Info("Starting contest queue service")
	if err := s.client.Start(ctx); err != nil {
		return fmt.Errorf("failed to start River client: %w", err)
	}
	return nil
}

// Stop stops the River client and releases the pool.
func (s *Service) Stop(ctx context.Context) error {
	s.logger.Info("Stopping contest queue service")
	if err := s.client.Stop(ctx); err != nil {
		return fmt.Errorf("failed to stop River client: %w", err)
	}
	s.pool.Close()
	return nil
}

// ScheduleContestStart enqueues the contest start job. UniqueOpts by args
// makes repeated registrations for the same contest a no-op.
func (s *Service) ScheduleContestStart(ctx context.Context, contestID sharedtypes.ContestID, startTime time.Time) error {
	s.metrics.RecordOperationAttempt("schedule_contest_start")

	now := time.Now()
	scheduledAt := startTime
	if scheduledAt.Before(now) {
		// The start date already passed (late registration window); fire
		// the job immediately rather than dropping it.
		scheduledAt = now
	}

	jobResult, err := s.client.Insert(ctx, ContestStartJob{ContestID: contestID}, &river.InsertOpts{
		Queue:       "contest",
		ScheduledAt: scheduledAt,
		UniqueOpts:  river.UniqueOpts{ByArgs: true},
	})
	if err != nil {
		s.metrics.RecordOperationFailure("schedule_contest_start")
		return fmt.Errorf("failed to schedule contest start: %w", err)
	}

	s.metrics.RecordOperationSuccess("schedule_contest_start")
	s.metrics.RecordJobScheduled("contest_start")
	s.logger.InfoContext(ctx, "Contest start job scheduled",
		attr.ContestID("contest_id", contestID),
		attr.Time("scheduled_at", scheduledAt),
		attr.Duration("delay", scheduledAt.Sub(now)),
		attr.Int64("job_id", jobResult.Job.ID),
	)
	return nil
}

// ScheduleContestSettlement enqueues the settlement job for the contest end
// date, deduplicated by args.
func (s *Service) ScheduleContestSettlement(ctx context.Context, contestID sharedtypes.ContestID, endTime time.Time) error {
	s.metrics.RecordOperationAttempt("schedule_contest_settlement")

	now := time.Now()
	scheduledAt := endTime
	if scheduledAt.Before(now) {
		scheduledAt = now
	}

	jobResult, err := s.client.Insert(ctx, ContestSettlementJob{ContestID: contestID}, &river.InsertOpts{
		Queue:       "contest",
		ScheduledAt: scheduledAt,
		UniqueOpts:  river.UniqueOpts{ByArgs: true},
	})
	if err != nil {
		s.metrics.RecordOperationFailure("schedule_contest_settlement")
		return fmt.Errorf("failed to schedule contest settlement: %w", err)
	}

	s.metrics.RecordOperationSuccess("schedule_contest_settlement")
	s.metrics.RecordJobScheduled("contest_settlement")
	s.logger.InfoContext(ctx, "Contest settlement job scheduled",
		attr.ContestID("contest_id", contestID),
		attr.Time("scheduled_at", scheduledAt),
		attr.Duration("delay", scheduledAt.Sub(now)),
		attr.Int64("job_id", jobResult.Job.ID),
	)
	return nil
}

// CancelContestJobs cancels every pending job for a contest.
func (s *Service) CancelContestJobs(ctx context.Context, contestID sharedtypes.ContestID) error {
	s.metrics.RecordOperationAttempt("cancel_contest_jobs")

	type riverJobRow struct {
		ID   int64  `bun:"id"`
		Kind string `bun:"kind"`
	}

	var jobs []riverJobRow
	err := s.db.NewSelect().
		Table("river_job").
		Column("id", "kind").
		Where("kind IN (?, ?)", "contest_start", "contest_settlement").
		Where("state IN (?, ?)", "available", "scheduled").
		Where("args->>'contest_id' = ?", string(contestID)).
		Scan(ctx, &jobs)
	if err != nil {
		s.metrics.RecordOperationFailure("cancel_contest_jobs")
		return fmt.Errorf("failed to query jobs for cancellation: %w", err)
	}

	cancelled := 0
	for _, job := range jobs {
		if _, err := s.client.JobCancel(ctx, job.ID); err != nil {
			s.logger.WarnContext(ctx, "Failed to cancel job",
				attr.Int64("job_id", job.ID),
				attr.String("job_kind", job.Kind),
				attr.Error(err),
			)
			continue
		}
		cancelled++
	}

	if cancelled == len(jobs) {
		s.metrics.RecordOperationSuccess("cancel_contest_jobs")
	} else {
		s.metrics.RecordOperationFailure("cancel_contest_jobs")
	}

	s.logger.InfoContext(ctx, "Contest job cancellation completed",
		attr.ContestID("contest_id", contestID),
		attr.Int("total_found", len(jobs)),
		attr.Int("cancelled_count", cancelled),
	)
	return nil
}

// GetScheduledJobs returns job information for a contest, soonest first.
func (s *Service) GetScheduledJobs(ctx context.Context, contestID sharedtypes.ContestID) ([]JobInfo, error) {
	type riverJobRow struct {
		ID          int64      `bun:"id"`
		Kind        string     `bun:"kind"`
		State       string     `bun:"state"`
		ScheduledAt *time.Time `bun:"scheduled_at"`
		CreatedAt   time.Time  `bun:"created_at"`
		Attempt     int16      `bun:"attempt"`
		MaxAttempts int16      `bun:"max_attempts"`
	}

	var jobs []riverJobRow
	err := s.db.NewSelect().
		Table("river_job").
		Column("id", "kind", "state", "scheduled_at", "created_at", "attempt", "max_attempts").
		Where("kind IN (?, ?)", "contest_start", "contest_settlement").
		Where("args->>'contest_id' = ?", string(contestID)).
		Order("scheduled_at ASC NULLS LAST", "created_at ASC").
		Scan(ctx, &jobs)
	if err != nil {
		return nil, fmt.Errorf("failed to query scheduled jobs: %w", err)
	}

	result := make([]JobInfo, len(jobs))
	for i, job := range jobs {
		scheduledAt := ""
		if job.ScheduledAt != nil {
			scheduledAt = job.ScheduledAt.Format(time.RFC3339)
		}
		result[i] = JobInfo{
			ID:          job.ID,
			Kind:        job.Kind,
			ContestID:   string(contestID),
			State:       job.State,
			ScheduledAt: scheduledAt,
			CreatedAt:   job.CreatedAt.Format(time.RFC3339),
			Attempt:     int(job.Attempt),
			MaxAttempts: int(job.MaxAttempts),
		}
	}
	return result, nil
}

// HealthCheck verifies the river_job table is reachable.
func (s *Service) HealthCheck(ctx context.Context) error {
	if _, err := s.db.NewSelect().Table("river_job").Count(ctx); err != nil {
		return fmt.Errorf("queue health check failed: %w", err)
	}
	return nil
}

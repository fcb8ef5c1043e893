package contestqueue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/Ember-Habit-Club/habit-engine/internal/eventbus"
	"github.com/Ember-Habit-Club/habit-engine/internal/events/contestevents"
	"github.com/Ember-Habit-Club/habit-engine/internal/observability/attr"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/riverqueue/river"
)

// ContestStartWorker publishes the contest started event when its scheduled
// time arrives.
type ContestStartWorker struct {
	river.WorkerDefaults[ContestStartJob]
	logger   *slog.Logger
	eventBus eventbus.EventBus
}

// NewContestStartWorker creates a ContestStartWorker.
func NewContestStartWorker(logger *slog.Logger, eventBus eventbus.EventBus) *ContestStartWorker {
	return &ContestStartWorker{logger: logger, eventBus: eventBus}
}

// Work publishes contest.started.v1 for the scheduled contest.
func (w *ContestStartWorker) Work(ctx context.Context, job *river.Job[ContestStartJob]) error {
	w.logger.InfoContext(ctx, "Contest start job firing",
		attr.ContestID("contest_id", job.Args.ContestID),
		attr.Int64("job_id", job.ID),
	)

	payload := contestevents.ContestStartedPayloadV1{
		ContestID: job.Args.ContestID,
		StartedAt: time.Now().UTC(),
	}
	if err := publishEvent(w.eventBus, contestevents.ContestStarted, payload); err != nil {
		w.logger.ErrorContext(ctx, "Failed to publish contest started event",
			attr.ContestID("contest_id", job.Args.ContestID),
			attr.Error(err),
		)
		return err
	}
	return nil
}

// ContestSettlementWorker publishes the settlement-due event at the contest
// end date; the leaderboard module picks it up and classifies standings.
type ContestSettlementWorker struct {
	river.WorkerDefaults[ContestSettlementJob]
	logger   *slog.Logger
	eventBus eventbus.EventBus
}

// NewContestSettlementWorker creates a ContestSettlementWorker.
func NewContestSettlementWorker(logger *slog.Logger, eventBus eventbus.EventBus) *ContestSettlementWorker {
	return &ContestSettlementWorker{logger: logger, eventBus: eventBus}
}

// Work publishes contest.settlement.due.v1 for the finished contest.
func (w *ContestSettlementWorker) Work(ctx context.Context, job *river.Job[ContestSettlementJob]) error {
	w.logger.InfoContext(ctx, "Contest settlement job firing",
		attr.ContestID("contest_id", job.Args.ContestID),
		attr.Int64("job_id", job.ID),
	)

	payload := contestevents.SettlementDuePayloadV1{
		ContestID: job.Args.ContestID,
		DueAt:     time.Now().UTC(),
	}
	if err := publishEvent(w.eventBus, contestevents.SettlementDue, payload); err != nil {
		w.logger.ErrorContext(ctx, "Failed to publish settlement due event",
			attr.ContestID("contest_id", job.Args.ContestID),
			attr.Error(err),
		)
		return err
	}
	return nil
}

func publishEvent(bus eventbus.EventBus, topic string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", topic, err)
	}
	msg := message.NewMessage(watermill.NewUUID(), body)
	middleware.SetCorrelationID(watermill.NewUUID(), msg)
	if err := bus.Publish(topic, msg); err != nil {
		return fmt.Errorf("failed to publish %s: %w", topic, err)
	}
	return nil
}

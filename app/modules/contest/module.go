package contest

import (
	"context"
	"fmt"
	"sync"
	"time"

	contestservice "github.com/Ember-Habit-Club/habit-engine/app/modules/contest/application"
	contestqueue "github.com/Ember-Habit-Club/habit-engine/app/modules/contest/infrastructure/queue"
	contestdb "github.com/Ember-Habit-Club/habit-engine/app/modules/contest/infrastructure/repositories"
	contestrouter "github.com/Ember-Habit-Club/habit-engine/app/modules/contest/infrastructure/router"
	"github.com/Ember-Habit-Club/habit-engine/config"
	"github.com/Ember-Habit-Club/habit-engine/internal/eventbus"
	"github.com/Ember-Habit-Club/habit-engine/internal/observability"
	"github.com/Ember-Habit-Club/habit-engine/internal/observability/metrics/contestmetrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"
)

// Module represents the contest module. It owns the River queue service
// that fires contest start and settlement jobs.
type Module struct {
	EventBus       eventbus.EventBus
	ContestService contestservice.Service
	ContestRouter  *contestrouter.ContestRouter
	QueueService   contestqueue.QueueService
	config         *config.Config
	observability  *observability.Provider
	cancelFunc     context.CancelFunc
}

// NewContestModule creates a new instance of the contest module.
func NewContestModule(
	ctx context.Context,
	cfg *config.Config,
	obs *observability.Provider,
	contestDB contestdb.ContestDB,
	bunDB *bun.DB,
	eventBus eventbus.EventBus,
	router *message.Router,
) (*Module, error) {
	logger := obs.Logger
	metrics := contestmetrics.NewContestMetrics(obs.Registry)
	tracer := obs.Tracer("contest")

	logger.InfoContext(ctx, "contest.NewContestModule called")

	queueService, err := contestqueue.NewService(ctx, bunDB, logger, cfg.Postgres.DSN, metrics, eventBus)
	if err != nil {
		return nil, fmt.Errorf("failed to create contest queue service: %w", err)
	}

	contestService := contestservice.NewContestService(contestDB, queueService, logger, metrics, tracer)

	contestRouter := contestrouter.NewContestRouter(logger, router, eventBus, eventBus, cfg, tracer, obs.Registry)

	if err := contestRouter.Configure(ctx, contestService, metrics); err != nil {
		return nil, fmt.Errorf("failed to configure contest router: %w", err)
	}

	return &Module{
		EventBus:       eventBus,
		ContestService: contestService,
		ContestRouter:  contestRouter,
		QueueService:   queueService,
		config:         cfg,
		observability:  obs,
	}, nil
}

// Run starts the queue service and keeps the module alive until the
// context is canceled.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	m.observability.Logger.Info("Starting contest module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	if err := m.QueueService.Start(ctx); err != nil {
		m.observability.Logger.Error("Failed to start contest queue service", "error", err)
		return
	}

	<-ctx.Done()
	m.observability.Logger.Info("Contest module goroutine stopped")
}

// Close stops the queue service and the module.
func (m *Module) Close() error {
	m.observability.Logger.Info("Stopping contest module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := m.QueueService.Stop(stopCtx); err != nil {
		return fmt.Errorf("failed to stop contest queue service: %w", err)
	}

	m.observability.Logger.Info("Contest module stopped")
	return nil
}

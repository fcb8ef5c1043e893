package progression

import (
	"context"
	"fmt"
	"sync"
	"time"

	progressionservice "github.com/Ember-Habit-Club/habit-engine/app/modules/progression/application"
	progressiondb "github.com/Ember-Habit-Club/habit-engine/app/modules/progression/infrastructure/repositories"
	progressionrouter "github.com/Ember-Habit-Club/habit-engine/app/modules/progression/infrastructure/router"
	"github.com/Ember-Habit-Club/habit-engine/config"
	"github.com/Ember-Habit-Club/habit-engine/internal/eventbus"
	"github.com/Ember-Habit-Club/habit-engine/internal/observability"
	"github.com/Ember-Habit-Club/habit-engine/internal/observability/metrics/progressionmetrics"
	"github.com/ThreeDotsLabs/watermill/message"
)

// Module represents the progression module.
type Module struct {
	EventBus           eventbus.EventBus
	ProgressionService progressionservice.Service
	ProgressionRouter  *progressionrouter.ProgressionRouter
	config             *config.Config
	observability      *observability.Provider
	cancelFunc         context.CancelFunc
}

// NewProgressionModule creates a new instance of the progression module.
// loc is the reference zone for daily-cadence comparisons.
func NewProgressionModule(
	ctx context.Context,
	cfg *config.Config,
	obs *observability.Provider,
	progressionDB progressiondb.ProgressionDB,
	eventBus eventbus.EventBus,
	router *message.Router,
	loc *time.Location,
) (*Module, error) {
	logger := obs.Logger
	metrics := progressionmetrics.NewProgressionMetrics(obs.Registry)
	tracer := obs.Tracer("progression")

	logger.InfoContext(ctx, "progression.NewProgressionModule called")

	progressionService := progressionservice.NewProgressionService(progressionDB, logger, metrics, tracer, loc)

	progressionRouter := progressionrouter.NewProgressionRouter(logger, router, eventBus, eventBus, cfg, tracer, obs.Registry)

	if err := progressionRouter.Configure(ctx, progressionService, metrics); err != nil {
		return nil, fmt.Errorf("failed to configure progression router: %w", err)
	}

	return &Module{
		EventBus:           eventBus,
		ProgressionService: progressionService,
		ProgressionRouter:  progressionRouter,
		config:             cfg,
		observability:      obs,
	}, nil
}

// Run keeps the module alive until the context is canceled.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	m.observability.Logger.Info("Starting progression module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	<-ctx.Done()
	m.observability.Logger.Info("Progression module goroutine stopped")
}

// Close stops the module.
func (m *Module) Close() error {
	m.observability.Logger.Info("Stopping progression module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	m.observability.Logger.Info("Progression module stopped")
	return nil
}

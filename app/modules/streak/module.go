package streak

import (
	"context"
	"fmt"
	"sync"
	"time"

	streakservice "github.com/Ember-Habit-Club/habit-engine/app/modules/streak/application"
	streakdb "github.com/Ember-Habit-Club/habit-engine/app/modules/streak/infrastructure/repositories"
	streakrouter "github.com/Ember-Habit-Club/habit-engine/app/modules/streak/infrastructure/router"
	"github.com/Ember-Habit-Club/habit-engine/config"
	"github.com/Ember-Habit-Club/habit-engine/internal/eventbus"
	"github.com/Ember-Habit-Club/habit-engine/internal/observability"
	"github.com/Ember-Habit-Club/habit-engine/internal/observability/metrics/streakmetrics"
	"github.com/ThreeDotsLabs/watermill/message"
)

// Module represents the streak module.
type Module struct {
	EventBus      eventbus.EventBus
	StreakService streakservice.Service
	StreakRouter  *streakrouter.StreakRouter
	config        *config.Config
	observability *observability.Provider
	cancelFunc    context.CancelFunc
}

// NewStreakModule creates a new instance of the streak module. loc is the
// reference zone for calendar-day comparisons.
func NewStreakModule(
	ctx context.Context,
	cfg *config.Config,
	obs *observability.Provider,
	streakDB streakdb.StreakDB,
	eventBus eventbus.EventBus,
	router *message.Router,
	loc *time.Location,
) (*Module, error) {
	logger := obs.Logger
	metrics := streakmetrics.NewStreakMetrics(obs.Registry)
	tracer := obs.Tracer("streak")

	logger.InfoContext(ctx, "streak.NewStreakModule called")

	streakService := streakservice.NewStreakService(streakDB, logger, metrics, tracer, loc)

	streakRouter := streakrouter.NewStreakRouter(logger, router, eventBus, eventBus, cfg, tracer, obs.Registry)

	if err := streakRouter.Configure(ctx, streakService, metrics); err != nil {
		return nil, fmt.Errorf("failed to configure streak router: %w", err)
	}

	return &Module{
		EventBus:      eventBus,
		StreakService: streakService,
		StreakRouter:  streakRouter,
		config:        cfg,
		observability: obs,
	}, nil
}

// Run keeps the module alive until the context is canceled.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	m.observability.Logger.Info("Starting streak module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	<-ctx.Done()
	m.observability.Logger.Info("Streak module goroutine stopped")
}

// Close stops the module.
func (m *Module) Close() error {
	m.observability.Logger.Info("Stopping streak module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	m.observability.Logger.Info("Streak module stopped")
	return nil
}

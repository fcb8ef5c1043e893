package leaderboard

import (
	"context"
	"fmt"
	"sync"

	leaderboardservice "github.com/Ember-Habit-Club/habit-engine/app/modules/leaderboard/application"
	leaderboarddb "github.com/Ember-Habit-Club/habit-engine/app/modules/leaderboard/infrastructure/repositories"
	leaderboardrouter "github.com/Ember-Habit-Club/habit-engine/app/modules/leaderboard/infrastructure/router"
	"github.com/Ember-Habit-Club/habit-engine/config"
	"github.com/Ember-Habit-Club/habit-engine/internal/eventbus"
	"github.com/Ember-Habit-Club/habit-engine/internal/observability"
	"github.com/Ember-Habit-Club/habit-engine/internal/observability/metrics/leaderboardmetrics"
	"github.com/ThreeDotsLabs/watermill/message"
)

// Module represents the leaderboard module.
type Module struct {
	EventBus           eventbus.EventBus
	LeaderboardService leaderboardservice.Service
	LeaderboardRouter  *leaderboardrouter.LeaderboardRouter
	config             *config.Config
	observability      *observability.Provider
	cancelFunc         context.CancelFunc
}

// NewLeaderboardModule creates a new instance of the leaderboard module.
func NewLeaderboardModule(
	ctx context.Context,
	cfg *config.Config,
	obs *observability.Provider,
	leaderboardDB leaderboarddb.LeaderboardDB,
	eventBus eventbus.EventBus,
	router *message.Router,
) (*Module, error) {
	logger := obs.Logger
	metrics := leaderboardmetrics.NewLeaderboardMetrics(obs.Registry)
	tracer := obs.Tracer("leaderboard")

	logger.InfoContext(ctx, "leaderboard.NewLeaderboardModule called")

	leaderboardService := leaderboardservice.NewLeaderboardService(leaderboardDB, logger, metrics, tracer)

	leaderboardRouter := leaderboardrouter.NewLeaderboardRouter(logger, router, eventBus, eventBus, cfg, tracer, obs.Registry)

	if err := leaderboardRouter.Configure(ctx, leaderboardService, metrics); err != nil {
		return nil, fmt.Errorf("failed to configure leaderboard router: %w", err)
	}

	return &Module{
		EventBus:           eventBus,
		LeaderboardService: leaderboardService,
		LeaderboardRouter:  leaderboardRouter,
		config:             cfg,
		observability:      obs,
	}, nil
}

// Run keeps the module alive until the context is canceled.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	m.observability.Logger.Info("Starting leaderboard module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	<-ctx.Done()
	m.observability.Logger.Info("Leaderboard module goroutine stopped")
}

// Close stops the module.
func (m *Module) Close() error {
	m.observability.Logger.Info("Stopping leaderboard module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	m.observability.Logger.Info("Leaderboard module stopped")
	return nil
}

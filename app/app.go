// Package app wires the engine's modules: config, database, event bus,
// routers, queue, and the HTTP read API.
package app

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/Ember-Habit-Club/habit-engine/api"
	"github.com/Ember-Habit-Club/habit-engine/app/modules/contest"
	"github.com/Ember-Habit-Club/habit-engine/app/modules/leaderboard"
	"github.com/Ember-Habit-Club/habit-engine/app/modules/progression"
	"github.com/Ember-Habit-Club/habit-engine/app/modules/streak"
	"github.com/Ember-Habit-Club/habit-engine/config"
	"github.com/Ember-Habit-Club/habit-engine/db/bundb"
	"github.com/Ember-Habit-Club/habit-engine/internal/eventbus"
	"github.com/Ember-Habit-Club/habit-engine/internal/observability"
	"github.com/Ember-Habit-Club/habit-engine/internal/observability/attr"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// App holds the application's wired components.
type App struct {
	Config        *config.Config
	Observability *observability.Provider
	EventBus      eventbus.EventBus

	StreakModule      *streak.Module
	ProgressionModule *progression.Module
	ContestModule     *contest.Module
	LeaderboardModule *leaderboard.Module

	APIServer *api.Server

	db            *bundb.DBService
	routers       []*message.Router
	metricsServer *http.Server
	wg            sync.WaitGroup
	cancelFunc    context.CancelFunc
}

// DB returns the database service.
func (a *App) DB() *bundb.DBService {
	return a.db
}

// NewApp initializes the application from configuration.
func NewApp(ctx context.Context, cfg *config.Config, obs *observability.Provider) (*App, error) {
	logger := obs.Logger

	loc, err := time.LoadLocation(cfg.Engine.ReferenceTimezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load reference timezone %q: %w", cfg.Engine.ReferenceTimezone, err)
	}

	dbService, err := bundb.NewBunDBService(ctx, cfg.Postgres)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database service: %w", err)
	}

	watermillLogger := watermill.NewSlogLogger(logger)

	eventBus, err := eventbus.NewJetStreamEventBus(cfg.NATS.URL, cfg.NATS.NKeySeed, watermillLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to create event bus: %w", err)
	}

	app := &App{
		Config:        cfg,
		Observability: obs,
		EventBus:      eventBus,
		db:            dbService,
	}

	newRouter := func() (*message.Router, error) {
		router, err := message.NewRouter(message.RouterConfig{}, watermillLogger)
		if err != nil {
			return nil, err
		}
		app.routers = append(app.routers, router)
		return router, nil
	}

	streakRouter, err := newRouter()
	if err != nil {
		return nil, fmt.Errorf("failed to create streak router: %w", err)
	}
	app.StreakModule, err = streak.NewStreakModule(ctx, cfg, obs, dbService.StreakDB, eventBus, streakRouter, loc)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize streak module: %w", err)
	}

	progressionRouter, err := newRouter()
	if err != nil {
		return nil, fmt.Errorf("failed to create progression router: %w", err)
	}
	app.ProgressionModule, err = progression.NewProgressionModule(ctx, cfg, obs, dbService.ProgressionDB, eventBus, progressionRouter, loc)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize progression module: %w", err)
	}

	contestRouter, err := newRouter()
	if err != nil {
		return nil, fmt.Errorf("failed to create contest router: %w", err)
	}
	app.ContestModule, err = contest.NewContestModule(ctx, cfg, obs, dbService.ContestDB, dbService.GetDB(), eventBus, contestRouter)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize contest module: %w", err)
	}

	leaderboardRouter, err := newRouter()
	if err != nil {
		return nil, fmt.Errorf("failed to create leaderboard router: %w", err)
	}
	app.LeaderboardModule, err = leaderboard.NewLeaderboardModule(ctx, cfg, obs, dbService.LeaderboardDB, eventBus, leaderboardRouter)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize leaderboard module: %w", err)
	}

	app.APIServer = api.NewServer(cfg.HTTP, logger, api.Services{
		Streak:      app.StreakModule.StreakService,
		Progression: app.ProgressionModule.ProgressionService,
		Contest:     app.ContestModule.ContestService,
		Leaderboard: app.LeaderboardModule.LeaderboardService,
	}, obs.Registry)

	if cfg.Observability.MetricsAddress != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(obs.Registry, promhttp.HandlerOpts{}))
		app.metricsServer = &http.Server{
			Addr:    cfg.Observability.MetricsAddress,
			Handler: mux,
		}
	}

	return app, nil
}

// Run starts the routers, modules, and HTTP servers. It blocks until the
// context is canceled.
func (a *App) Run(ctx context.Context) error {
	logger := a.Observability.Logger

	ctx, cancel := context.WithCancel(ctx)
	a.cancelFunc = cancel
	defer cancel()

	for _, router := range a.routers {
		a.wg.Add(1)
		go func(router *message.Router) {
			defer a.wg.Done()
			if err := router.Run(ctx); err != nil && ctx.Err() == nil {
				logger.Error("Router stopped unexpectedly", attr.Error(err))
			}
		}(router)
	}

	// Handlers are registered in module constructors; wait for the routers
	// to be running before accepting work.
	for _, router := range a.routers {
		select {
		case <-router.Running():
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	a.wg.Add(4)
	go a.StreakModule.Run(ctx, &a.wg)
	go a.ProgressionModule.Run(ctx, &a.wg)
	go a.ContestModule.Run(ctx, &a.wg)
	go a.LeaderboardModule.Run(ctx, &a.wg)

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		if err := a.APIServer.Start(); err != nil {
			logger.Error("API server stopped unexpectedly", attr.Error(err))
		}
	}()

	if a.metricsServer != nil {
		a.wg.Add(1)
		go func() {
			defer a.wg.Done()
			logger.Info("Metrics server listening", attr.String("address", a.metricsServer.Addr))
			if err := a.metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("Metrics server stopped unexpectedly", attr.Error(err))
			}
		}()
	}

	logger.Info("Application started")
	<-ctx.Done()
	return nil
}

// Close shuts the application down in reverse start order.
func (a *App) Close() error {
	logger := a.Observability.Logger
	logger.Info("Shutting down application")

	if a.cancelFunc != nil {
		a.cancelFunc()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := a.APIServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to shut down API server", attr.Error(err))
	}
	if a.metricsServer != nil {
		if err := a.metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("Failed to shut down metrics server", attr.Error(err))
		}
	}

	if err := a.ContestModule.Close(); err != nil {
		logger.Error("Failed to close contest module", attr.Error(err))
	}
	if err := a.LeaderboardModule.Close(); err != nil {
		logger.Error("Failed to close leaderboard module", attr.Error(err))
	}
	if err := a.ProgressionModule.Close(); err != nil {
		logger.Error("Failed to close progression module", attr.Error(err))
	}
	if err := a.StreakModule.Close(); err != nil {
		logger.Error("Failed to close streak module", attr.Error(err))
	}

	for _, router := range a.routers {
		if err := router.Close(); err != nil {
			logger.Error("Failed to close router", attr.Error(err))
		}
	}

	if err := a.EventBus.Close(); err != nil {
		logger.Error("Failed to close event bus", attr.Error(err))
	}

	a.wg.Wait()

	if err := a.db.GetDB().Close(); err != nil {
		logger.Error("Failed to close database connection", attr.Error(err))
	}

	if err := a.Observability.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to shut down observability", attr.Error(err))
	}

	logger.Info("Application shut down gracefully")
	return nil
}

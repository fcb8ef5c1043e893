// Package api exposes the engine's read endpoints over HTTP: streaks, tier
// status, contests, and classified leaderboards.
package api

import (
	"context"
	"log/slog"
	"net/http"

	contestservice "github.com/Ember-Habit-Club/habit-engine/app/modules/contest/application"
	leaderboardservice "github.com/Ember-Habit-Club/habit-engine/app/modules/leaderboard/application"
	progressionservice "github.com/Ember-Habit-Club/habit-engine/app/modules/progression/application"
	streakservice "github.com/Ember-Habit-Club/habit-engine/app/modules/streak/application"
	"github.com/Ember-Habit-Club/habit-engine/config"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

// Server serves the read API.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// Services bundles the module services the API reads from.
type Services struct {
	Streak      streakservice.Service
	Progression progressionservice.Service
	Contest     contestservice.Service
	Leaderboard leaderboardservice.Service
}

// NewServer builds the chi router and HTTP server.
func NewServer(
	cfg config.HTTPConfig,
	logger *slog.Logger,
	services Services,
	registry *prometheus.Registry,
) *Server {
	h := &handlers{services: services, logger: logger}

	limiter := NewIPRateLimiter(rate.Limit(cfg.RatePerSecond), cfg.RateBurst)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(RateLimitMiddleware(limiter))

	r.Get("/healthz", h.health)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	r.Group(func(r chi.Router) {
		r.Use(JWTMiddleware(cfg.JWTSecret))

		r.Get("/users/{userID}/streak", h.getStreak)
		r.Get("/users/{userID}/streak/next-milestone", h.getNextMilestone)
		r.Get("/users/{userID}/tiers/{category}", h.getTierStatus)

		r.Get("/contests", h.listContests)
		r.Get("/contests/{contestID}/registrations/{userID}", h.getRegistration)
		r.Get("/contests/{contestID}/standings", h.getContestStandings)

		r.Get("/leaderboard", h.getLeaderboard)
		r.Get("/leaderboard/chart", h.getLeaderboardChart)
		r.Get("/leaderboard/export", h.getLeaderboardExport)
	})

	return &Server{
		httpServer: &http.Server{
			Addr:         cfg.Address,
			Handler:      r,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		logger: logger,
	}
}

// Start blocks serving HTTP until the listener fails or Shutdown runs.
func (s *Server) Start() error {
	s.logger.Info("HTTP API listening", slog.String("address", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

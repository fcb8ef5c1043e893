package contestrouter

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	contestservice "github.com/Ember-Habit-Club/habit-engine/app/modules/contest/application"
	contesthandlers "github.com/Ember-Habit-Club/habit-engine/app/modules/contest/infrastructure/handlers"
	"github.com/Ember-Habit-Club/habit-engine/config"
	"github.com/Ember-Habit-Club/habit-engine/internal/eventbus"
	"github.com/Ember-Habit-Club/habit-engine/internal/events/contestevents"
	"github.com/Ember-Habit-Club/habit-engine/internal/events/leaderboardevents"
	"github.com/Ember-Habit-Club/habit-engine/internal/handlerwrapper"
	"github.com/Ember-Habit-Club/habit-engine/internal/observability/attr"
	"github.com/Ember-Habit-Club/habit-engine/internal/observability/metrics/contestmetrics"
	"github.com/ThreeDotsLabs/watermill/components/metrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"
)

const (
	TestEnvironmentFlag  = "APP_ENV"
	TestEnvironmentValue = "test"
)

// ContestRouter wires contest handlers onto a watermill router.
type ContestRouter struct {
	logger             *slog.Logger
	Router             *message.Router
	subscriber         eventbus.EventBus
	publisher          eventbus.EventBus
	config             *config.Config
	tracer             trace.Tracer
	metricsBuilder     *metrics.PrometheusMetricsBuilder
	prometheusRegistry *prometheus.Registry
	metricsEnabled     bool
}

// NewContestRouter creates a new ContestRouter.
func NewContestRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber eventbus.EventBus,
	publisher eventbus.EventBus,
	config *config.Config,
	tracer trace.Tracer,
	prometheusRegistry *prometheus.Registry,
) *ContestRouter {
	inTestEnv := os.Getenv(TestEnvironmentFlag) == TestEnvironmentValue

	var metricsBuilder *metrics.PrometheusMetricsBuilder
	if prometheusRegistry != nil && !inTestEnv {
		builder := metrics.NewPrometheusMetricsBuilder(prometheusRegistry, "", "")
		metricsBuilder = &builder
	}
	return &ContestRouter{
		logger:             logger,
		Router:             router,
		subscriber:         subscriber,
		publisher:          publisher,
		config:             config,
		tracer:             tracer,
		metricsBuilder:     metricsBuilder,
		prometheusRegistry: prometheusRegistry,
		metricsEnabled:     prometheusRegistry != nil && !inTestEnv,
	}
}

// Configure registers middleware and handlers on the router.
func (r *ContestRouter) Configure(routerCtx context.Context, service contestservice.Service, contestMetrics contestmetrics.ContestMetrics) error {
	if r.metricsEnabled && r.metricsBuilder != nil {
		r.metricsBuilder.AddPrometheusRouterMetrics(r.Router)
	}

	handlers := contesthandlers.NewContestHandlers(service, r.logger, r.tracer, contestMetrics)

	r.Router.AddMiddleware(
		middleware.CorrelationID,
		middleware.Recoverer,
		middleware.Retry{MaxRetries: 3}.Middleware,
	)

	if err := r.RegisterHandlers(routerCtx, handlers); err != nil {
		return fmt.Errorf("failed to register handlers: %w", err)
	}
	return nil
}

// RegisterHandlers registers event handlers against V1 topic constants.
func (r *ContestRouter) RegisterHandlers(ctx context.Context, handlers contesthandlers.Handlers) error {
	eventsToHandlers := map[string]message.HandlerFunc{
		contestevents.RegistrationRequested:       handlers.HandleRegistrationRequested,
		contestevents.RegistrationCancelRequested: handlers.HandleRegistrationCancelRequested,
		contestevents.VerificationSubmitted:       handlers.HandleVerificationSubmitted,
		contestevents.ContestStarted:              handlers.HandleContestStarted,
		leaderboardevents.Classified:              handlers.HandleLeaderboardClassified,
	}

	for topic, handlerFunc := range eventsToHandlers {
		handlerName := fmt.Sprintf("contest.%s", topic)
		r.Router.AddHandler(
			handlerName,
			topic,
			r.subscriber,
			"",
			nil,
			func(msg *message.Message) ([]*message.Message, error) {
				messages, err := handlerFunc(msg)
				if err != nil {
					r.logger.ErrorContext(ctx, "Error processing message",
						attr.String("message_id", msg.UUID),
						attr.Error(err),
					)
					return nil, err
				}
				for _, m := range messages {
					publishTopic := m.Metadata.Get(handlerwrapper.TopicMetadataKey)
					if publishTopic == "" {
						r.logger.Error("failed to resolve publish topic - message dropped",
							attr.String("handler", handlerName),
							attr.String("message_id", m.UUID),
							attr.CorrelationIDFromMsg(m),
						)
						continue
					}
					if err := r.publisher.Publish(publishTopic, m); err != nil {
						return nil, fmt.Errorf("failed to publish to %s: %w", publishTopic, err)
					}
				}
				return nil, nil
			},
		)
	}
	return nil
}

// Close shuts down the router.
func (r *ContestRouter) Close() error {
	return r.Router.Close()
}

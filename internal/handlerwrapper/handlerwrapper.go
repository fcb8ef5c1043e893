package handlerwrapper

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/Ember-Habit-Club/habit-engine/internal/eventutil"
	"github.com/Ember-Habit-Club/habit-engine/internal/observability/attr"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// TopicMetadataKey is where the wrapper records the publish topic on
// outgoing messages; module routers resolve it when publishing.
const TopicMetadataKey = "topic"

// Result is one event a handler wants published.
type Result struct {
	Topic   string
	Payload any
}

// Metrics is the slice of a module's metrics surface the wrapper needs.
type Metrics interface {
	RecordHandlerAttempt(handlerName string)
	RecordHandlerSuccess(handlerName string)
	RecordHandlerFailure(handlerName string)
	RecordHandlerDuration(handlerName string, seconds float64)
}

// Handler is a typed event handler: it receives the decoded payload and
// returns the events to publish.
type Handler[T any] func(ctx context.Context, payload *T) ([]Result, error)

// Wrap adapts a typed handler into a watermill HandlerFunc, adding payload
// decoding, tracing, metrics, and correlation-id propagation. A returned
// error nacks the message (retry); business failures must come back as
// Results instead.
func Wrap[T any](
	handlerName string,
	logger *slog.Logger,
	metrics Metrics,
	tracer trace.Tracer,
	handlerFunc Handler[T],
) message.HandlerFunc {
	return func(msg *message.Message) ([]*message.Message, error) {
		ctx, span := tracer.Start(msg.Context(), handlerName, trace.WithAttributes(
			attribute.String("handler", handlerName),
			attribute.String("message_id", msg.UUID),
		))
		defer span.End()

		metrics.RecordHandlerAttempt(handlerName)

		startTime := time.Now()
		defer func() {
			metrics.RecordHandlerDuration(handlerName, time.Since(startTime).Seconds())
		}()

		correlationID, payload, err := eventutil.UnmarshalPayload[T](msg, logger)
		if err != nil {
			metrics.RecordHandlerFailure(handlerName)
			return nil, err
		}
		ctx = attr.WithCorrelationID(ctx, correlationID)

		logger.InfoContext(ctx, handlerName+" triggered",
			attr.CorrelationIDFromMsg(msg),
			attr.String("message_id", msg.UUID),
		)

		outcomes, err := handlerFunc(ctx, payload)
		if err != nil {
			logger.ErrorContext(ctx, "Error in "+handlerName,
				attr.CorrelationIDFromMsg(msg),
				attr.Error(err),
			)
			span.RecordError(err)
			metrics.RecordHandlerFailure(handlerName)
			return nil, err
		}

		messages, err := toMessages(outcomes, correlationID)
		if err != nil {
			metrics.RecordHandlerFailure(handlerName)
			return nil, err
		}

		logger.InfoContext(ctx, handlerName+" completed successfully",
			attr.CorrelationIDFromMsg(msg),
			attr.Int("events_out", len(messages)),
		)
		metrics.RecordHandlerSuccess(handlerName)
		return messages, nil
	}
}

func toMessages(outcomes []Result, correlationID string) ([]*message.Message, error) {
	if len(outcomes) == 0 {
		return nil, nil
	}

	messages := make([]*message.Message, 0, len(outcomes))
	for _, outcome := range outcomes {
		payloadBytes, err := json.Marshal(outcome.Payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal payload for topic %s: %w", outcome.Topic, err)
		}

		outMsg := message.NewMessage(watermill.NewUUID(), payloadBytes)
		outMsg.Metadata.Set(TopicMetadataKey, outcome.Topic)
		if correlationID != "" {
			middleware.SetCorrelationID(correlationID, outMsg)
		}
		messages = append(messages, outMsg)
	}
	return messages, nil
}

package eventutil

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/Ember-Habit-Club/habit-engine/internal/observability/attr"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
)

// UnmarshalPayload decodes a message body into T and returns the message's
// correlation id alongside the decoded payload.
func UnmarshalPayload[T any](msg *message.Message, logger *slog.Logger) (string, *T, error) {
	correlationID := middleware.MessageCorrelationID(msg)

	payload := new(T)
	if err := json.Unmarshal(msg.Payload, payload); err != nil {
		if logger != nil {
			logger.Error("Failed to unmarshal payload",
				attr.String("correlation_id", correlationID),
				attr.String("message_id", msg.UUID),
				attr.Error(err),
			)
		}
		return correlationID, nil, fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	return correlationID, payload, nil
}

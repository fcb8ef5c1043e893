package attr

import (
	"context"
	"log/slog"
	"time"

	sharedtypes "github.com/Ember-Habit-Club/habit-engine/internal/types/shared"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
)

type correlationIDKey struct{}

// String returns a string slog attribute.
func String(key, value string) slog.Attr { return slog.String(key, value) }

// Int returns an int slog attribute.
func Int(key string, value int) slog.Attr { return slog.Int(key, value) }

// Int64 returns an int64 slog attribute.
func Int64(key string, value int64) slog.Attr { return slog.Int64(key, value) }

// Bool returns a bool slog attribute.
func Bool(key string, value bool) slog.Attr { return slog.Bool(key, value) }

// Float64 returns a float64 slog attribute.
func Float64(key string, value float64) slog.Attr { return slog.Float64(key, value) }

// Any returns an attribute for an arbitrary value.
func Any(key string, value any) slog.Attr { return slog.Any(key, value) }

// Error returns the conventional "error" attribute.
func Error(err error) slog.Attr { return slog.Any("error", err) }

// Time returns a time attribute.
func Time(key string, value time.Time) slog.Attr { return slog.Time(key, value) }

// Duration returns a duration attribute.
func Duration(key string, value time.Duration) slog.Attr { return slog.Duration(key, value) }

// UserID returns a user id attribute.
func UserID(key string, id sharedtypes.UserID) slog.Attr { return slog.String(key, string(id)) }

// ActivityID returns an activity id attribute.
func ActivityID(key string, id sharedtypes.ActivityID) slog.Attr {
	return slog.String(key, string(id))
}

// ContestID returns a contest id attribute.
func ContestID(key string, id sharedtypes.ContestID) slog.Attr {
	return slog.String(key, string(id))
}

// CorrelationIDFromMsg extracts the watermill correlation id from a message.
func CorrelationIDFromMsg(msg *message.Message) slog.Attr {
	return slog.String("correlation_id", middleware.MessageCorrelationID(msg))
}

// WithCorrelationID stores a correlation id on the context so service-layer
// log lines can carry it without threading the message through.
func WithCorrelationID(ctx context.Context, correlationID string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, correlationID)
}

// ExtractCorrelationID reads the correlation id previously stored on the
// context; it returns an empty-value attribute when none is present.
func ExtractCorrelationID(ctx context.Context) slog.Attr {
	if v, ok := ctx.Value(correlationIDKey{}).(string); ok {
		return slog.String("correlation_id", v)
	}
	return slog.String("correlation_id", "")
}

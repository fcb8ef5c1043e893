package eventbus

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"
)

// EventBus is the transport used by every module router: a watermill
// publisher/subscriber pair plus JetStream stream provisioning.
type EventBus interface {
	Publish(topic string, messages ...*message.Message) error
	Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error)
	EnsureStream(streamName string) error
	Close() error
}

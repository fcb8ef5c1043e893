package eventbus

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	wnats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	nc "github.com/nats-io/nats.go"
	"github.com/nats-io/nkeys"
)

// JetStreamEventBus implements EventBus over NATS JetStream using the
// watermill NATS publisher/subscriber.
type JetStreamEventBus struct {
	logger     watermill.LoggerAdapter
	natsURL    string
	conn       *nc.Conn
	js         nc.JetStreamContext
	publisher  *wnats.Publisher
	subscriber *wnats.Subscriber

	// provisioned remembers streams already ensured so hot publish paths
	// skip the JetStream round trip.
	provisioned map[string]struct{}
}

var _ EventBus = (*JetStreamEventBus)(nil)

// NewJetStreamEventBus connects to NATS and builds the watermill
// publisher/subscriber pair. nkeySeed is optional; when set the connection
// authenticates with the seed's nkey.
func NewJetStreamEventBus(natsURL, nkeySeed string, logger watermill.LoggerAdapter) (*JetStreamEventBus, error) {
	options := []nc.Option{
		nc.RetryOnFailedConnect(true),
		nc.Timeout(30 * time.Second),
		nc.ReconnectWait(1 * time.Second),
		nc.ErrorHandler(func(_ *nc.Conn, s *nc.Subscription, err error) {
			if s != nil {
				logger.Error("Error in subscription", err, watermill.LogFields{
					"subject": s.Subject,
					"queue":   s.Queue,
				})
			} else {
				logger.Error("Error in connection", err, nil)
			}
		}),
	}

	if nkeySeed != "" {
		kp, err := nkeys.FromSeed([]byte(nkeySeed))
		if err != nil {
			return nil, fmt.Errorf("failed to parse nkey seed: %w", err)
		}
		pub, err := kp.PublicKey()
		if err != nil {
			return nil, fmt.Errorf("failed to derive nkey public key: %w", err)
		}
		options = append(options, nc.Nkey(pub, func(nonce []byte) ([]byte, error) {
			return kp.Sign(nonce)
		}))
	}

	conn, err := nc.Connect(natsURL, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := conn.JetStream()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	publisher, err := wnats.NewPublisher(
		wnats.PublisherConfig{
			URL:         natsURL,
			NatsOptions: options,
			Marshaler:   &wnats.NATSMarshaler{},
			JetStream: wnats.JetStreamConfig{
				Disabled:      false,
				AutoProvision: false,
			},
		},
		logger,
	)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create watermill NATS publisher: %w", err)
	}

	subscriber, err := wnats.NewSubscriber(
		wnats.SubscriberConfig{
			URL:         natsURL,
			NatsOptions: options,
			Unmarshaler: &wnats.NATSMarshaler{},
			JetStream: wnats.JetStreamConfig{
				Disabled:      false,
				AutoProvision: false,
			},
		},
		logger,
	)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create watermill NATS subscriber: %w", err)
	}

	return &JetStreamEventBus{
		logger:      logger,
		natsURL:     natsURL,
		conn:        conn,
		js:          js,
		publisher:   publisher,
		subscriber:  subscriber,
		provisioned: make(map[string]struct{}),
	}, nil
}

// Publish ensures the topic's stream exists and publishes the messages.
func (b *JetStreamEventBus) Publish(topic string, messages ...*message.Message) error {
	if err := b.EnsureStream(StreamName(topic)); err != nil {
		return err
	}
	if err := b.publisher.Publish(topic, messages...); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}
	return nil
}

// Subscribe subscribes to a topic, provisioning the stream first.
func (b *JetStreamEventBus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	if err := b.EnsureStream(StreamName(topic)); err != nil {
		return nil, err
	}
	return b.subscriber.Subscribe(ctx, topic)
}

// EnsureStream creates the JetStream stream if it does not exist yet.
func (b *JetStreamEventBus) EnsureStream(streamName string) error {
	if _, ok := b.provisioned[streamName]; ok {
		return nil
	}
	if !isValidStreamName(streamName) {
		return fmt.Errorf("invalid stream name: %s", streamName)
	}

	info, err := b.js.StreamInfo(streamName)
	if err != nil && err != nc.ErrStreamNotFound {
		return fmt.Errorf("failed to get stream info: %w", err)
	}
	if info == nil {
		_, err = b.js.AddStream(&nc.StreamConfig{
			Name:     streamName,
			Subjects: []string{fmt.Sprintf("%s.>", streamName)},
		})
		if err != nil {
			return fmt.Errorf("failed to add stream %s: %w", streamName, err)
		}
		b.logger.Info("Stream created", watermill.LogFields{"stream": streamName})
	}

	b.provisioned[streamName] = struct{}{}
	return nil
}

// Close shuts down the publisher, subscriber, and connection.
func (b *JetStreamEventBus) Close() error {
	if err := b.publisher.Close(); err != nil {
		return fmt.Errorf("failed to close publisher: %w", err)
	}
	if err := b.subscriber.Close(); err != nil {
		return fmt.Errorf("failed to close subscriber: %w", err)
	}
	b.conn.Close()
	return nil
}

// StreamName maps a topic like "contest.registration.requested.v1" to its
// module stream ("contest").
func StreamName(topic string) string {
	if i := strings.IndexByte(topic, '.'); i > 0 {
		return topic[:i]
	}
	return topic
}

// isValidStreamName checks a name against NATS stream naming rules.
func isValidStreamName(name string) bool {
	if name == "" || name[0] == '-' || name[len(name)-1] == '-' {
		return false
	}
	for _, r := range name {
		if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_') {
			return false
		}
	}
	return true
}

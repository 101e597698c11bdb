package kafka

import (
	"context"

	"github.com/ThreeDotsLabs/watermill"
	wmkafka "github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/finbooks/finbooks/internal/config"
	ierr "github.com/finbooks/finbooks/internal/errors"
	"github.com/finbooks/finbooks/internal/logger"
	"github.com/finbooks/finbooks/internal/pubsub"
)

// PubSub implements both Publisher and Subscriber interfaces on top of Kafka
type PubSub struct {
	publisher  *wmkafka.Publisher
	subscriber *wmkafka.Subscriber
	config     *config.Configuration
	logger     *logger.Logger
}

// NewPubSub creates a new kafka-based pubsub
func NewPubSub(
	cfg *config.Configuration,
	logger *logger.Logger,
) (pubsub.PubSub, error) {
	wmLogger := watermill.NewStdLogger(false, false)
	saramaConfig := GetSaramaConfig(cfg)

	publisher, err := wmkafka.NewPublisher(
		wmkafka.PublisherConfig{
			Brokers:               cfg.Kafka.Brokers,
			Marshaler:             wmkafka.DefaultMarshaler{},
			OverwriteSaramaConfig: saramaConfig,
		},
		wmLogger,
	)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to create kafka publisher").
			Mark(ierr.ErrSystem)
	}

	subscriber, err := wmkafka.NewSubscriber(
		wmkafka.SubscriberConfig{
			Brokers:               cfg.Kafka.Brokers,
			Unmarshaler:           wmkafka.DefaultMarshaler{},
			ConsumerGroup:         cfg.Kafka.ConsumerGroup,
			OverwriteSaramaConfig: saramaConfig,
		},
		wmLogger,
	)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to create kafka subscriber").
			Mark(ierr.ErrSystem)
	}

	return &PubSub{
		publisher:  publisher,
		subscriber: subscriber,
		config:     cfg,
		logger:     logger,
	}, nil
}

// Publish publishes a webhook event
func (p *PubSub) Publish(ctx context.Context, topic string, msg *message.Message) error {
	return p.publisher.Publish(topic, msg)
}

// Subscribe starts consuming webhook events
func (p *PubSub) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	return p.subscriber.Subscribe(ctx, topic)
}

// Close closes the underlying publisher and subscriber
func (p *PubSub) Close() error {
	if err := p.publisher.Close(); err != nil {
		p.logger.Errorw("failed to close kafka publisher", "error", err)
	}
	return p.subscriber.Close()
}

package memory

import (
	"context"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/finbooks/finbooks/internal/config"
	"github.com/finbooks/finbooks/internal/logger"
	"github.com/finbooks/finbooks/internal/pubsub"
)

// PubSub routes messages through an in-process gochannel. Suited to
// single-process deployments; messages do not survive a restart.
type PubSub struct {
	channel *gochannel.GoChannel
	config  *config.Webhook
	logger  *logger.Logger
}

func NewPubSub(
	cfg *config.Configuration,
	logger *logger.Logger,
) pubsub.PubSub {
	goChannel := gochannel.NewGoChannel(
		gochannel.Config{
			// Messages published before a subscriber attaches are
			// replayed to it
			Persistent:                     true,
			BlockPublishUntilSubscriberAck: false,
			OutputChannelBuffer:            100,
		},
		watermill.NewStdLogger(true, false),
	)

	return &PubSub{
		channel: goChannel,
		config:  &cfg.Webhook,
		logger:  logger,
	}
}

func (p *PubSub) Publish(ctx context.Context, topic string, msg *message.Message) error {
	return p.channel.Publish(topic, msg)
}

func (p *PubSub) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	return p.channel.Subscribe(ctx, topic)
}

// Close is a no-op; the gochannel is owned by the process and shared by
// the publisher and subscriber sides.
func (p *PubSub) Close() error {
	return nil
}

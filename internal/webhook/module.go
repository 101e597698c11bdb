package webhook

import (
	"fmt"

	"github.com/finbooks/finbooks/internal/config"
	"github.com/finbooks/finbooks/internal/logger"
	"github.com/finbooks/finbooks/internal/pubsub"
	"github.com/finbooks/finbooks/internal/pubsub/kafka"
	"github.com/finbooks/finbooks/internal/pubsub/memory"
	"github.com/finbooks/finbooks/internal/service"
	"github.com/finbooks/finbooks/internal/types"
	"github.com/finbooks/finbooks/internal/webhook/handler"
	"github.com/finbooks/finbooks/internal/webhook/payload"
	"github.com/finbooks/finbooks/internal/webhook/publisher"
	"go.uber.org/fx"
)

// Module provides all webhook-related dependencies
var Module = fx.Options(
	// Core dependencies
	fx.Provide(
		// PubSub for sending webhook events
		providePubSub,
	),

	// Webhook components
	fx.Provide(
		// Publisher for sending webhook events
		publisher.NewPublisher,

		// Handler for processing webhook events
		handler.NewHandler,

		// Payload builder factory and services
		providePayloadBuilderFactory,

		// Main webhook service
		NewWebhookService,
	),
)

// providePayloadBuilderFactory creates a new payload builder factory with all required services
func providePayloadBuilderFactory(
	invoiceService service.InvoiceService,
	paymentService service.PaymentService,
	creditNoteService service.CreditNoteService,
	itemService service.ItemService,
) payload.PayloadBuilderFactory {
	services := payload.NewServices(
		invoiceService,
		paymentService,
		creditNoteService,
		itemService,
	)
	return payload.NewPayloadBuilderFactory(services)
}

func providePubSub(
	cfg *config.Configuration,
	logger *logger.Logger,
) (pubsub.PubSub, error) {
	switch cfg.Webhook.PubSub {
	case types.MemoryPubSub:
		return memory.NewPubSub(cfg, logger), nil
	case types.KafkaPubSub:
		return kafka.NewPubSub(cfg, logger)
	}
	return nil, fmt.Errorf("unsupported pubsub type: %s", cfg.Webhook.PubSub)
}

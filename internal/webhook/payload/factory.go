package payload

import (
	"fmt"

	"github.com/finbooks/finbooks/internal/types"
)

// PayloadBuilderFactory interface for getting event-specific payload builders
type PayloadBuilderFactory interface {
	GetBuilder(eventType string) (PayloadBuilder, error)
}

type payloadBuilderFactory struct {
	builders map[string]func() PayloadBuilder
	services *Services
}

// NewPayloadBuilderFactory creates a new factory with registered builders
func NewPayloadBuilderFactory(services *Services) PayloadBuilderFactory {
	f := &payloadBuilderFactory{
		builders: make(map[string]func() PayloadBuilder),
		services: services,
	}

	// Register invoice builders
	f.builders[types.WebhookEventInvoiceCreated] = func() PayloadBuilder {
		return NewInvoicePayloadBuilder(f.services)
	}
	f.builders[types.WebhookEventInvoiceUpdated] = func() PayloadBuilder {
		return NewInvoicePayloadBuilder(f.services)
	}
	f.builders[types.WebhookEventInvoiceDeleted] = func() PayloadBuilder {
		return NewInvoicePayloadBuilder(f.services)
	}
	f.builders[types.WebhookEventInvoicePaymentReceived] = func() PayloadBuilder {
		return NewInvoicePayloadBuilder(f.services)
	}

	// Register payment builders
	f.builders[types.WebhookEventPaymentCreated] = func() PayloadBuilder {
		return NewPaymentPayloadBuilder(f.services)
	}

	// Register credit note builders
	f.builders[types.WebhookEventCreditNoteCreated] = func() PayloadBuilder {
		return NewCreditNotePayloadBuilder(f.services)
	}

	// Register inventory builders
	f.builders[types.WebhookEventItemLowStock] = func() PayloadBuilder {
		return NewItemPayloadBuilder(f.services)
	}

	return f
}

// GetBuilder returns a payload builder for the given event type
func (f *payloadBuilderFactory) GetBuilder(eventType string) (PayloadBuilder, error) {
	builderFn, ok := f.builders[eventType]
	if !ok {
		return nil, fmt.Errorf("no builder registered for event type: %s", eventType)
	}

	return builderFn(), nil
}

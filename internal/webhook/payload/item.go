package payload

import (
	"context"
	"encoding/json"
	"fmt"

	ierr "github.com/finbooks/finbooks/internal/errors"
	webhookDto "github.com/finbooks/finbooks/internal/webhook/dto"
)

type ItemPayloadBuilder struct {
	services *Services
}

func NewItemPayloadBuilder(services *Services) PayloadBuilder {
	return &ItemPayloadBuilder{
		services: services,
	}
}

// BuildPayload builds the webhook payload for inventory item events
func (b *ItemPayloadBuilder) BuildPayload(ctx context.Context, eventType string, data json.RawMessage) (json.RawMessage, error) {
	var parsedPayload webhookDto.InternalItemEvent

	err := json.Unmarshal(data, &parsedPayload)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Unable to unmarshal item event payload").
			Mark(ierr.ErrInvalidOperation)
	}

	itemID, tenantID := parsedPayload.ItemID, parsedPayload.TenantID
	if itemID == "" || tenantID == "" {
		return nil, ierr.NewError("invalid data type for item event").
			WithHint("Please provide a valid item ID and tenant ID").
			WithReportableDetails(map[string]any{
				"expected": "string",
				"got":      fmt.Sprintf("%T", data),
			}).
			Mark(ierr.ErrInvalidOperation)
	}

	item, err := b.services.ItemService.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	payload := webhookDto.NewItemWebhookPayload(item, eventType)

	return json.Marshal(payload)
}

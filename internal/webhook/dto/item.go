package webhookDto

import "github.com/finbooks/finbooks/internal/api/dto"

// InternalItemEvent is published when an inventory item crosses the low
// stock threshold after an OUT ledger application.
type InternalItemEvent struct {
	ItemID   string `json:"item_id"`
	TenantID string `json:"tenant_id"`
}

type ItemWebhookPayload struct {
	EventType string            `json:"event_type"`
	Item      *dto.ItemResponse `json:"item"`
}

func NewItemWebhookPayload(item *dto.ItemResponse, eventType string) *ItemWebhookPayload {
	return &ItemWebhookPayload{EventType: eventType, Item: item}
}

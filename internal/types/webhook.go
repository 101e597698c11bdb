package types

import (
	"encoding/json"
	"time"
)

// WebhookEvent represents a webhook event to be delivered
type WebhookEvent struct {
	ID        string          `json:"id"`
	EventName string          `json:"event_name"`
	TenantID  string          `json:"tenant_id"`
	UserID    string          `json:"user_id"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

// invoice event names
const (
	WebhookEventInvoiceCreated         = "invoice.created"
	WebhookEventInvoiceUpdated         = "invoice.updated"
	WebhookEventInvoiceDeleted         = "invoice.deleted"
	WebhookEventInvoicePaymentReceived = "invoice.payment_received"
)

// payment event names
const (
	WebhookEventPaymentCreated = "payment.created"
)

// credit note event names
const (
	WebhookEventCreditNoteCreated = "creditnote.created"
)

// inventory event names
const (
	WebhookEventItemLowStock = "item.low_stock"
)

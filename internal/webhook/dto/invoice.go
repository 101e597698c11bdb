package webhookDto

import (
	"github.com/finbooks/finbooks/internal/api/dto"
	"github.com/finbooks/finbooks/internal/types"
)

// InternalInvoiceEvent is the payload services publish onto the internal
// webhook topic. Handlers re-read the invoice before delivery so the
// outbound payload reflects the state at send time.
type InternalInvoiceEvent struct {
	InvoiceID string `json:"invoice_id"`
	TenantID  string `json:"tenant_id"`
}

// InvoiceWebhookPayload is the outbound payload for invoice events.
// Deleted events carry only the invoice ID since the row is gone by
// the time the handler runs.
type InvoiceWebhookPayload struct {
	EventType string               `json:"event_type"`
	InvoiceID string               `json:"invoice_id"`
	Invoice   *dto.InvoiceResponse `json:"invoice,omitempty"`
}

func NewInvoiceWebhookPayload(invoice *dto.InvoiceResponse, eventType string) *InvoiceWebhookPayload {
	return &InvoiceWebhookPayload{
		EventType: eventType,
		InvoiceID: invoice.ID,
		Invoice:   invoice,
	}
}

// NewInvoiceDeletedWebhookPayload builds the payload for a deleted invoice
func NewInvoiceDeletedWebhookPayload(invoiceID string) *InvoiceWebhookPayload {
	return &InvoiceWebhookPayload{
		EventType: types.WebhookEventInvoiceDeleted,
		InvoiceID: invoiceID,
	}
}

package webhookDto

import "github.com/finbooks/finbooks/internal/api/dto"

// InternalPaymentEvent is what the service layer publishes. Only IDs
// travel on the queue; the consumer loads fresh state before delivery.
type InternalPaymentEvent struct {
	PaymentID string `json:"payment_id"`
	TenantID  string `json:"tenant_id"`
}

type PaymentWebhookPayload struct {
	Payment *dto.PaymentResponse `json:"payment"`
}

func NewPaymentWebhookPayload(payment *dto.PaymentResponse) *PaymentWebhookPayload {
	return &PaymentWebhookPayload{Payment: payment}
}

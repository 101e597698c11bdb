package webhookDto

import "github.com/finbooks/finbooks/internal/api/dto"

// InternalCreditNoteEvent carries just the IDs; the payload builder
// rehydrates the document at delivery time.
type InternalCreditNoteEvent struct {
	CreditNoteID string `json:"credit_note_id"`
	TenantID     string `json:"tenant_id"`
}

type CreditNoteWebhookPayload struct {
	CreditNote *dto.CreditNoteResponse `json:"credit_note"`
}

func NewCreditNoteWebhookPayload(creditNote *dto.CreditNoteResponse) *CreditNoteWebhookPayload {
	return &CreditNoteWebhookPayload{CreditNote: creditNote}
}

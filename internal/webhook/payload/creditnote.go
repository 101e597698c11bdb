package payload

import (
	"context"
	"encoding/json"
	"fmt"

	ierr "github.com/finbooks/finbooks/internal/errors"
	webhookDto "github.com/finbooks/finbooks/internal/webhook/dto"
)

type CreditNotePayloadBuilder struct {
	services *Services
}

func NewCreditNotePayloadBuilder(services *Services) PayloadBuilder {
	return &CreditNotePayloadBuilder{
		services: services,
	}
}

// BuildPayload rehydrates the credit note named by the internal event
// into the full document subscribers receive.
func (b *CreditNotePayloadBuilder) BuildPayload(ctx context.Context, eventType string, data json.RawMessage) (json.RawMessage, error) {
	var parsedPayload webhookDto.InternalCreditNoteEvent

	err := json.Unmarshal(data, &parsedPayload)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Unable to unmarshal credit note event payload").
			Mark(ierr.ErrInvalidOperation)
	}

	creditNoteID, tenantID := parsedPayload.CreditNoteID, parsedPayload.TenantID
	if creditNoteID == "" || tenantID == "" {
		return nil, ierr.NewError("invalid data type for credit note event").
			WithHint("Please provide a valid credit note ID and tenant ID").
			WithReportableDetails(map[string]any{
				"expected": "string",
				"got":      fmt.Sprintf("%T", data),
			}).
			Mark(ierr.ErrInvalidOperation)
	}

	creditNote, err := b.services.CreditNoteService.GetCreditNote(ctx, creditNoteID)
	if err != nil {
		return nil, err
	}

	payload := webhookDto.NewCreditNoteWebhookPayload(creditNote)

	return json.Marshal(payload)
}

package dto

import (
	"context"

	"github.com/finbooks/finbooks/internal/domain/creditnote"
	"github.com/finbooks/finbooks/internal/domain/invoice"
	"github.com/finbooks/finbooks/internal/types"
	"github.com/finbooks/finbooks/internal/validator"
)

type CreateCreditNoteRequest struct {
	// InvoiceID optionally links the note to the invoice being credited
	InvoiceID string `json:"invoiceId,omitempty"`

	CustomerID string `json:"customerId" validate:"required"`

	// Reason is free form; "Returned or Damaged Goods" additionally puts
	// the credited product quantities back into stock
	Reason string `json:"reason" validate:"omitempty,max=255"`

	IssueDate types.FlexTime `json:"issueDate"`

	LineItems []InvoiceLineItemRequest `json:"lineItems" validate:"required,min=1"`

	Amount types.FlexDecimal `json:"amount"`

	Notes string `json:"notes,omitempty"`
}

type CreditNoteResponse struct {
	*creditnote.CreditNote
}

// ListCreditNotesResponse represents the response for listing credit notes
type ListCreditNotesResponse = types.ListResponse[*CreditNoteResponse]

func (r *CreateCreditNoteRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// ToCreditNote builds the domain document. Number allocation and the
// customer snapshot happen in the service.
func (r *CreateCreditNoteRequest) ToCreditNote(ctx context.Context) *creditnote.CreditNote {
	lines := make(invoice.LineItems, 0, len(r.LineItems))
	for _, li := range r.LineItems {
		lines = append(lines, li.ToLineItem())
	}
	return &creditnote.CreditNote{
		ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CREDIT_NOTE),
		InvoiceID:  r.InvoiceID,
		CustomerID: r.CustomerID,
		Reason:     r.Reason,
		IssueDate:  r.IssueDate.Time,
		LineItems:  lines,
		Amount:     r.Amount.Decimal,
		Notes:      r.Notes,
		BaseModel:  types.GetDefaultBaseModel(ctx),
	}
}

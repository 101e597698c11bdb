package dto

import (
	"context"

	"github.com/finbooks/finbooks/internal/domain/invoice"
	"github.com/finbooks/finbooks/internal/domain/quote"
	"github.com/finbooks/finbooks/internal/types"
	"github.com/finbooks/finbooks/internal/validator"
)

type CreateQuoteRequest struct {
	CustomerID string `json:"customerId" validate:"required"`

	QuoteDate  types.FlexTime `json:"quoteDate"`
	ExpiryDate types.FlexTime `json:"expiryDate"`

	LineItems []InvoiceLineItemRequest `json:"lineItems" validate:"required,min=1"`

	SubTotal   types.FlexDecimal `json:"subTotal"`
	TaxTotal   types.FlexDecimal `json:"taxTotal"`
	GrandTotal types.FlexDecimal `json:"grandTotal"`

	Notes string `json:"notes,omitempty"`
}

type QuoteResponse struct {
	*quote.Quote
}

// ListQuotesResponse represents the response for listing quotes
type ListQuotesResponse = types.ListResponse[*QuoteResponse]

func (r *CreateQuoteRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// ToQuote builds the domain document. Number allocation and the
// customer snapshot happen in the service.
func (r *CreateQuoteRequest) ToQuote(ctx context.Context) *quote.Quote {
	lines := make(invoice.LineItems, 0, len(r.LineItems))
	for _, li := range r.LineItems {
		lines = append(lines, li.ToLineItem())
	}
	return &quote.Quote{
		ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_QUOTE),
		CustomerID: r.CustomerID,
		QuoteDate:  r.QuoteDate.Time,
		ExpiryDate: r.ExpiryDate.Time,
		LineItems:  lines,
		SubTotal:   r.SubTotal.Decimal,
		TaxTotal:   r.TaxTotal.Decimal,
		GrandTotal: r.GrandTotal.Decimal,
		Notes:      r.Notes,
		BaseModel:  types.GetDefaultBaseModel(ctx),
	}
}

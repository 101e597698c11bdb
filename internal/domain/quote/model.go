package quote

import (
	"time"

	"github.com/finbooks/finbooks/internal/domain/invoice"
	ierr "github.com/finbooks/finbooks/internal/errors"
	"github.com/finbooks/finbooks/internal/types"
	"github.com/shopspring/decimal"
)

// Quote is a price quotation. Quotes never move stock or take payments;
// they exist to be sent, and possibly converted into invoices by the
// client later.
type Quote struct {
	// ID is the unique identifier for the quote
	ID string `db:"id" json:"id"`

	// QuoteNumber is allocated from the tenant's quote sequence
	QuoteNumber string `db:"quote_number" json:"quoteNumber"`

	QuoteDate  *time.Time `db:"quote_date" json:"quoteDate,omitempty"`
	ExpiryDate *time.Time `db:"expiry_date" json:"expiryDate,omitempty"`

	// CustomerID and CustomerName are a snapshot taken at creation
	CustomerID   string `db:"customer_id" json:"customerId"`
	CustomerName string `db:"customer_name" json:"customerName"`

	LineItems invoice.LineItems `db:"line_items" json:"lineItems"`

	SubTotal   decimal.Decimal `db:"sub_total" json:"subTotal"`
	TaxTotal   decimal.Decimal `db:"tax_total" json:"taxTotal"`
	GrandTotal decimal.Decimal `db:"grand_total" json:"grandTotal"`

	Notes string `db:"notes" json:"notes,omitempty"`

	types.BaseModel
}

func (q *Quote) TableName() string {
	return "quotes"
}

func (q *Quote) Validate() error {
	if q.CustomerID == "" {
		return ierr.NewError("customerId is required").
			WithHint("Customer is required").
			Mark(ierr.ErrValidation)
	}
	if len(q.LineItems) == 0 {
		return ierr.NewError("lineItems is required").
			WithHint("At least one line item is required").
			Mark(ierr.ErrValidation)
	}
	return nil
}

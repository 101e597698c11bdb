package creditnote

import (
	"time"

	"github.com/finbooks/finbooks/internal/domain/invoice"
	ierr "github.com/finbooks/finbooks/internal/errors"
	"github.com/finbooks/finbooks/internal/types"
	"github.com/shopspring/decimal"
)

// CreditNote credits a customer for returned goods or billing
// corrections. Immutable after creation. A reason of
// types.CreditNoteReasonReturn puts returned product quantities back
// into stock when the note is created.
type CreditNote struct {
	// ID is the unique identifier for the credit note
	ID string `db:"id" json:"id"`

	// CreditNoteNumber is allocated from the tenant's credit note
	// sequence using the default theme's creditNotePrefix
	CreditNoteNumber string `db:"credit_note_number" json:"creditNoteNumber"`

	// InvoiceID optionally links the note to the invoice being credited
	InvoiceID string `db:"invoice_id" json:"invoiceId,omitempty"`

	// CustomerID and CustomerName are a snapshot taken at creation
	CustomerID   string `db:"customer_id" json:"customerId"`
	CustomerName string `db:"customer_name" json:"customerName"`

	// Reason is free form; the return reason string is significant
	Reason string `db:"reason" json:"reason"`

	IssueDate *time.Time `db:"issue_date" json:"issueDate,omitempty"`

	LineItems invoice.LineItems `db:"line_items" json:"lineItems"`

	// Amount is the total credited value
	Amount decimal.Decimal `db:"amount" json:"amount"`

	Notes string `db:"notes" json:"notes,omitempty"`

	types.BaseModel
}

func (c *CreditNote) TableName() string {
	return "credit_notes"
}

// RestocksInventory reports whether creating this note returns product
// quantities to stock.
func (c *CreditNote) RestocksInventory() bool {
	return c.Reason == types.CreditNoteReasonReturn
}

func (c *CreditNote) Validate() error {
	if c.CustomerID == "" {
		return ierr.NewError("customerId is required").
			WithHint("Customer is required").
			Mark(ierr.ErrValidation)
	}
	if len(c.LineItems) == 0 {
		return ierr.NewError("lineItems is required").
			WithHint("At least one line item is required").
			Mark(ierr.ErrValidation)
	}
	return nil
}

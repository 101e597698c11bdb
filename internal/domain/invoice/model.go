package invoice

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	ierr "github.com/finbooks/finbooks/internal/errors"
	"github.com/finbooks/finbooks/internal/types"
	"github.com/shopspring/decimal"
)

// LineItem is one ordered line on a sales invoice. JSON field names are
// the wire contract shared with existing clients.
type LineItem struct {
	// ItemID references an inventory item; empty for ad-hoc lines
	ItemID string `json:"itemId,omitempty"`

	// ItemType mirrors the referenced item's type at invoicing time.
	// Only product lines move stock.
	ItemType types.ItemType `json:"itemType,omitempty"`

	Description string `json:"description"`
	HSNSAC      string `json:"hsnSac,omitempty"`

	Quantity        decimal.Decimal `json:"quantity"`
	Rate            decimal.Decimal `json:"rate"`
	DiscountPerItem decimal.Decimal `json:"discountPerItem"`

	// TaxRate is the line's tax percentage, TaxAmount the computed tax
	TaxRate   decimal.Decimal `json:"taxRate"`
	TaxAmount decimal.Decimal `json:"taxAmount"`

	// Amount is the discounted line value: quantity*rate - discountPerItem
	Amount decimal.Decimal `json:"amount"`
}

// MovesStock reports whether the line deducts inventory when the
// invoice leaves Draft.
func (li LineItem) MovesStock() bool {
	return li.ItemID != "" && li.ItemType != types.ItemTypeService
}

// LineItems is the ordered JSONB payload of invoice lines.
type LineItems []LineItem

// Scan implements the sql.Scanner interface for LineItems
func (l *LineItems) Scan(value interface{}) error {
	if value == nil {
		*l = LineItems{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("failed to unmarshal JSONB value: %v", value)
	}
	return json.Unmarshal(bytes, l)
}

// Value implements the driver.Valuer interface for LineItems
func (l LineItems) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal(LineItems{})
	}
	return json.Marshal(l)
}

// Invoice is a sales invoice. Monetary fields are decimals; the stored
// invariant is balanceDue == grandTotal - amountPaid after every
// mutation. JSON field names are the wire contract.
type Invoice struct {
	// ID is the unique identifier for the invoice
	ID string `db:"id" json:"id"`

	// InvoiceNumber is allocated from the tenant's sequence, unique per tenant
	InvoiceNumber string `db:"invoice_number" json:"invoiceNumber"`

	InvoiceDate *time.Time `db:"invoice_date" json:"invoiceDate,omitempty"`
	DueDate     *time.Time `db:"due_date" json:"dueDate,omitempty"`

	// CustomerID and CustomerName are an immutable snapshot taken at
	// creation; later customer renames do not rewrite the document
	CustomerID   string `db:"customer_id" json:"customerId"`
	CustomerName string `db:"customer_name" json:"customerName"`

	// CustomerGSTIN and the address blocks are display snapshots
	CustomerGSTIN   string `db:"customer_gstin" json:"customerGstin,omitempty"`
	CustomerAddress string `db:"customer_address" json:"customerAddress,omitempty"`
	ShipToAddress   string `db:"ship_to_address" json:"shipToAddress,omitempty"`

	LineItems LineItems `db:"line_items" json:"lineItems"`

	SubTotal decimal.Decimal `db:"sub_total" json:"subTotal"`

	// DiscountValue is kept as entered; a trailing % marks a
	// percentage-of-subtotal discount
	DiscountType             types.DiscountType `db:"discount_type" json:"discountType"`
	DiscountValue            string             `db:"discount_value" json:"discountValue"`
	DiscountAmountCalculated decimal.Decimal    `db:"discount_amount_calculated" json:"discountAmountCalculated"`

	TaxableAmount decimal.Decimal `db:"taxable_amount" json:"taxableAmount"`
	CGSTAmount    decimal.Decimal `db:"cgst_amount" json:"cgstAmount"`
	SGSTAmount    decimal.Decimal `db:"sgst_amount" json:"sgstAmount"`
	IGSTAmount    decimal.Decimal `db:"igst_amount" json:"igstAmount"`
	CessAmount    decimal.Decimal `db:"cess_amount" json:"cessAmount"`
	TaxTotal      decimal.Decimal `db:"tax_total" json:"taxTotal"`

	GrandTotal decimal.Decimal `db:"grand_total" json:"grandTotal"`
	AmountPaid decimal.Decimal `db:"amount_paid" json:"amountPaid"`
	BalanceDue decimal.Decimal `db:"balance_due" json:"balanceDue"`

	Notes              string `db:"notes" json:"notes,omitempty"`
	TermsAndConditions string `db:"terms_and_conditions" json:"termsAndConditions,omitempty"`
	Currency           string `db:"currency" json:"currency"`

	// Status is the document status on the wire. The column is named
	// invoice_status so it cannot collide with the row lifecycle status.
	Status types.InvoiceStatus `db:"invoice_status" json:"status"`

	// Version guards payment-driven status updates; a stale version
	// surfaces as a conflict instead of silently overwriting
	Version int `db:"version" json:"version"`

	types.BaseModel
}

func (i *Invoice) TableName() string {
	return "sales_invoices"
}

// IsDraft reports whether the invoice has not yet affected stock.
func (i *Invoice) IsDraft() bool {
	return i.Status.IsDraft()
}

func (i *Invoice) Validate() error {
	if i.CustomerID == "" {
		return ierr.NewError("customerId is required").
			WithHint("Customer is required").
			Mark(ierr.ErrValidation)
	}
	if len(i.LineItems) == 0 {
		return ierr.NewError("lineItems is required").
			WithHint("At least one line item is required").
			Mark(ierr.ErrValidation)
	}
	if !i.Status.Valid() {
		return ierr.NewError("invalid invoice status").
			WithHint("Unknown invoice status").
			WithReportableDetails(map[string]interface{}{
				"status": i.Status,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

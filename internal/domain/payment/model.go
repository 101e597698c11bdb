package payment

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	ierr "github.com/finbooks/finbooks/internal/errors"
	"github.com/finbooks/finbooks/internal/types"
	"github.com/shopspring/decimal"
)

// Application records how much of a payment landed on one invoice.
// JSON field names are the wire contract.
type Application struct {
	InvoiceID     string          `json:"invoiceId"`
	AmountApplied decimal.Decimal `json:"amountApplied"`
}

// Applications is the ordered JSONB list of invoice applications.
type Applications []Application

// Scan implements the sql.Scanner interface for Applications
func (a *Applications) Scan(value interface{}) error {
	if value == nil {
		*a = Applications{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("failed to unmarshal JSONB value: %v", value)
	}
	return json.Unmarshal(bytes, a)
}

// Value implements the driver.Valuer interface for Applications
func (a Applications) Value() (driver.Value, error) {
	if a == nil {
		return json.Marshal(Applications{})
	}
	return json.Marshal(a)
}

// Payment is money received from a customer, allocated across one or
// more invoices in caller order. Immutable after creation; the sum of
// AppliedTo amounts equals Amount.
type Payment struct {
	// ID is the unique identifier for the payment
	ID string `db:"id" json:"id"`

	// CustomerID is the paying customer
	CustomerID string `db:"customer_id" json:"customerId"`

	PaymentDate time.Time `db:"payment_date" json:"paymentDate"`

	// Amount is the total received
	Amount decimal.Decimal `db:"amount" json:"amount"`

	// Reference is a free form bank/UTR reference
	Reference string `db:"reference" json:"reference,omitempty"`

	// AppliedTo is the ordered allocation across invoices
	AppliedTo Applications `db:"applied_to" json:"applied_to"`

	types.BaseModel
}

func (p *Payment) TableName() string {
	return "payments"
}

func (p *Payment) Validate() error {
	if p.CustomerID == "" {
		return ierr.NewError("customerId is required").
			WithHint("Customer is required").
			Mark(ierr.ErrValidation)
	}
	if !p.Amount.IsPositive() {
		return ierr.NewError("amount must be positive").
			WithHint("Payment amount must be greater than zero").
			WithReportableDetails(map[string]interface{}{
				"amount": p.Amount,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

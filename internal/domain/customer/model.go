package customer

import (
	ierr "github.com/finbooks/finbooks/internal/errors"
	"github.com/finbooks/finbooks/internal/types"
)

// Customer represents a party the tenant sells to. JSON field names are
// the wire contract shared with existing clients.
type Customer struct {
	// ID is the unique identifier for the customer
	ID string `db:"id" json:"id"`

	// DisplayName is the name shown on invoices and lists
	DisplayName string `db:"display_name" json:"displayName"`

	// CompanyName is the registered company name
	CompanyName string `db:"company_name" json:"companyName,omitempty"`

	Email string `db:"email" json:"email,omitempty"`
	Phone string `db:"phone" json:"phone,omitempty"`

	// GSTIN is the customer's GST identification number
	GSTIN string `db:"gstin" json:"gstin,omitempty"`

	// PAN is the customer's permanent account number
	PAN string `db:"pan" json:"pan,omitempty"`

	// GSTRegistered indicates whether the customer is registered under GST
	GSTRegistered bool `db:"gst_registered" json:"gstRegistered"`

	BillingAddress  types.Address `db:"billing_address" json:"billingAddress"`
	ShippingAddress types.Address `db:"shipping_address" json:"shippingAddress"`

	// PaymentTerms is the agreed payment window, e.g. "Net 30"
	PaymentTerms string `db:"payment_terms" json:"paymentTerms"`

	Notes string `db:"notes" json:"notes,omitempty"`

	types.BaseModel
}

func (c *Customer) TableName() string {
	return "customers"
}

func (c *Customer) Validate() error {
	if c.DisplayName == "" {
		return ierr.NewError("displayName is required").
			WithHint("Display name is required").
			Mark(ierr.ErrValidation)
	}
	if c.PaymentTerms == "" {
		return ierr.NewError("paymentTerms is required").
			WithHint("Payment terms are required").
			Mark(ierr.ErrValidation)
	}
	return nil
}

package types

import (
	ierr "github.com/finbooks/finbooks/internal/errors"
	"github.com/shopspring/decimal"
)

// InvoiceStatus is the payment/lifecycle status stored on a sales invoice.
// The string values are a wire and storage contract shared with existing
// data and must not be renamed.
type InvoiceStatus string

const (
	InvoiceStatusDraft         InvoiceStatus = "Draft"
	InvoiceStatusSent          InvoiceStatus = "Sent"
	InvoiceStatusApproved      InvoiceStatus = "Approved"
	InvoiceStatusPaid          InvoiceStatus = "Paid"
	InvoiceStatusPartiallyPaid InvoiceStatus = "Partially Paid"
	InvoiceStatusOverdue       InvoiceStatus = "Overdue"
)

func (s InvoiceStatus) String() string {
	return string(s)
}

// Valid reports whether s is one of the known invoice statuses.
func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusApproved,
		InvoiceStatusPaid, InvoiceStatusPartiallyPaid, InvoiceStatusOverdue:
		return true
	}
	return false
}

// IsDraft reports whether the invoice has not yet left the draft state.
// Any non-draft status participates in stock deduction.
func (s InvoiceStatus) IsDraft() bool {
	return s == InvoiceStatusDraft
}

// DiscountType distinguishes a flat invoice-level discount from a
// percentage-of-subtotal one. The values match what existing clients
// send; the calculator itself keys off a trailing % marker in the
// discount value rather than this label.
type DiscountType string

const (
	DiscountTypeFlat       DiscountType = "Flat"
	DiscountTypePercentage DiscountType = "Percentage"
)

// PaymentEpsilon absorbs floating point rounding when comparing paid
// amounts against invoice totals.
var PaymentEpsilon = decimal.NewFromFloat(0.01)

// TaxDisplayMode is a theme-level switch for how invoice taxes are
// computed and shown.
type TaxDisplayMode string

const (
	// TaxDisplayModeDefault persists caller-supplied tax fields as given.
	TaxDisplayModeDefault TaxDisplayMode = "default"
	// TaxDisplayModeNoTax forces every tax field on the invoice to zero.
	TaxDisplayModeNoTax TaxDisplayMode = "no_tax"
)

// InvoiceFilter represents the filter options for listing sales invoices
type InvoiceFilter struct {
	*QueryFilter
	*TimeRangeFilter

	// invoice_ids restricts results to invoices with the specified IDs
	InvoiceIDs []string `json:"invoice_ids,omitempty" form:"invoice_ids"`

	// customer_id filters invoices for a specific customer
	CustomerID string `json:"customer_id,omitempty" form:"customer_id"`

	// invoice_status filters by lifecycle status; multiple values are ORed
	InvoiceStatus []InvoiceStatus `json:"invoice_status,omitempty" form:"invoice_status"`

	// search matches against invoiceNumber and customerName
	Search string `json:"search,omitempty" form:"search"`
}

// NewInvoiceFilter creates a new invoice filter with default options
func NewInvoiceFilter() *InvoiceFilter {
	return &InvoiceFilter{
		QueryFilter: NewDefaultQueryFilter(),
	}
}

// NewNoLimitInvoiceFilter creates a new invoice filter without pagination
func NewNoLimitInvoiceFilter() *InvoiceFilter {
	return &InvoiceFilter{
		QueryFilter: NewNoLimitQueryFilter(),
	}
}

func (f *InvoiceFilter) Validate() error {
	if f == nil {
		return nil
	}
	if f.QueryFilter != nil {
		if err := f.QueryFilter.Validate(); err != nil {
			return ierr.WithError(err).WithHint("invalid query filter").Mark(ierr.ErrValidation)
		}
	}
	if f.TimeRangeFilter != nil {
		if err := f.TimeRangeFilter.Validate(); err != nil {
			return ierr.WithError(err).WithHint("invalid time range").Mark(ierr.ErrValidation)
		}
	}
	for _, s := range f.InvoiceStatus {
		if !s.Valid() {
			return ierr.NewError("invalid invoice status").
				WithHint("Unknown invoice status in filter").
				WithReportableDetails(map[string]interface{}{
					"status": s,
				}).
				Mark(ierr.ErrValidation)
		}
	}
	return nil
}

// GetLimit implements BaseFilter interface
func (f *InvoiceFilter) GetLimit() int {
	if f == nil || f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetLimit()
	}
	return f.QueryFilter.GetLimit()
}

// GetOffset implements BaseFilter interface
func (f *InvoiceFilter) GetOffset() int {
	if f == nil || f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetOffset()
	}
	return f.QueryFilter.GetOffset()
}

// GetSort implements BaseFilter interface. Invoices list newest
// document first, not newest row first.
func (f *InvoiceFilter) GetSort() string {
	if f == nil || f.QueryFilter == nil || f.QueryFilter.Sort == nil {
		return "invoice_date"
	}
	return f.QueryFilter.GetSort()
}

// GetOrder implements BaseFilter interface
func (f *InvoiceFilter) GetOrder() string {
	if f == nil || f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetOrder()
	}
	return f.QueryFilter.GetOrder()
}

// GetStatus implements BaseFilter interface
func (f *InvoiceFilter) GetStatus() string {
	if f == nil || f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetStatus()
	}
	return f.QueryFilter.GetStatus()
}

// IsUnlimited implements BaseFilter interface
func (f *InvoiceFilter) IsUnlimited() bool {
	if f == nil || f.QueryFilter == nil {
		return NewDefaultQueryFilter().IsUnlimited()
	}
	return f.QueryFilter.IsUnlimited()
}

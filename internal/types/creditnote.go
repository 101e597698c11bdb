package types

import (
	ierr "github.com/finbooks/finbooks/internal/errors"
)

// CreditNoteReasonReturn is the reason string that puts returned product
// quantities back into stock when a credit note is created.
const CreditNoteReasonReturn = "Returned or Damaged Goods"

// CreditNoteFilter represents the filter options for listing credit notes
type CreditNoteFilter struct {
	*QueryFilter
	*TimeRangeFilter

	// customer_id filters credit notes for a specific customer
	CustomerID string `json:"customer_id,omitempty" form:"customer_id"`

	// invoice_id filters credit notes raised against a specific invoice
	InvoiceID string `json:"invoice_id,omitempty" form:"invoice_id"`
}

// NewCreditNoteFilter creates a new credit note filter with default options
func NewCreditNoteFilter() *CreditNoteFilter {
	return &CreditNoteFilter{
		QueryFilter: NewDefaultQueryFilter(),
	}
}

// NewNoLimitCreditNoteFilter creates a new credit note filter without pagination
func NewNoLimitCreditNoteFilter() *CreditNoteFilter {
	return &CreditNoteFilter{
		QueryFilter: NewNoLimitQueryFilter(),
	}
}

func (f *CreditNoteFilter) Validate() error {
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
	return nil
}

// GetLimit implements BaseFilter interface
func (f *CreditNoteFilter) GetLimit() int {
	if f == nil || f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetLimit()
	}
	return f.QueryFilter.GetLimit()
}

// GetOffset implements BaseFilter interface
func (f *CreditNoteFilter) GetOffset() int {
	if f == nil || f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetOffset()
	}
	return f.QueryFilter.GetOffset()
}

// GetSort implements BaseFilter interface. Credit notes list newest
// issue date first.
func (f *CreditNoteFilter) GetSort() string {
	if f == nil || f.QueryFilter == nil || f.QueryFilter.Sort == nil {
		return "issue_date"
	}
	return f.QueryFilter.GetSort()
}

// GetOrder implements BaseFilter interface
func (f *CreditNoteFilter) GetOrder() string {
	if f == nil || f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetOrder()
	}
	return f.QueryFilter.GetOrder()
}

// GetStatus implements BaseFilter interface
func (f *CreditNoteFilter) GetStatus() string {
	if f == nil || f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetStatus()
	}
	return f.QueryFilter.GetStatus()
}

// IsUnlimited implements BaseFilter interface
func (f *CreditNoteFilter) IsUnlimited() bool {
	if f == nil || f.QueryFilter == nil {
		return NewDefaultQueryFilter().IsUnlimited()
	}
	return f.QueryFilter.IsUnlimited()
}

package types

import (
	ierr "github.com/finbooks/finbooks/internal/errors"
)

// QuoteFilter represents the filter options for listing quotes
type QuoteFilter struct {
	*QueryFilter
	*TimeRangeFilter

	// customer_id filters quotes for a specific customer
	CustomerID string `json:"customer_id,omitempty" form:"customer_id"`
}

// NewQuoteFilter creates a new quote filter with default options
func NewQuoteFilter() *QuoteFilter {
	return &QuoteFilter{
		QueryFilter: NewDefaultQueryFilter(),
	}
}

// NewNoLimitQuoteFilter creates a new quote filter without pagination
func NewNoLimitQuoteFilter() *QuoteFilter {
	return &QuoteFilter{
		QueryFilter: NewNoLimitQueryFilter(),
	}
}

func (f *QuoteFilter) Validate() error {
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
func (f *QuoteFilter) GetLimit() int {
	if f == nil || f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetLimit()
	}
	return f.QueryFilter.GetLimit()
}

// GetOffset implements BaseFilter interface
func (f *QuoteFilter) GetOffset() int {
	if f == nil || f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetOffset()
	}
	return f.QueryFilter.GetOffset()
}

// GetSort implements BaseFilter interface
func (f *QuoteFilter) GetSort() string {
	if f == nil || f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetSort()
	}
	return f.QueryFilter.GetSort()
}

// GetOrder implements BaseFilter interface
func (f *QuoteFilter) GetOrder() string {
	if f == nil || f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetOrder()
	}
	return f.QueryFilter.GetOrder()
}

// GetStatus implements BaseFilter interface
func (f *QuoteFilter) GetStatus() string {
	if f == nil || f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetStatus()
	}
	return f.QueryFilter.GetStatus()
}

// IsUnlimited implements BaseFilter interface
func (f *QuoteFilter) IsUnlimited() bool {
	if f == nil || f.QueryFilter == nil {
		return NewDefaultQueryFilter().IsUnlimited()
	}
	return f.QueryFilter.IsUnlimited()
}

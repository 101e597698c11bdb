package types

import (
	ierr "github.com/finbooks/finbooks/internal/errors"
)

// CustomerFilter represents the filter options for listing customers
type CustomerFilter struct {
	*QueryFilter
	*TimeRangeFilter

	// customer_ids restricts results to customers with the specified IDs
	CustomerIDs []string `json:"customer_ids,omitempty" form:"customer_ids"`

	// search matches against displayName, companyName and email
	Search string `json:"search,omitempty" form:"search"`

	// gst_registered filters by GST registration flag
	GSTRegistered *bool `json:"gst_registered,omitempty" form:"gst_registered"`
}

// NewCustomerFilter creates a new customer filter with default options
func NewCustomerFilter() *CustomerFilter {
	return &CustomerFilter{
		QueryFilter: NewDefaultQueryFilter(),
	}
}

// NewNoLimitCustomerFilter creates a new customer filter without pagination
func NewNoLimitCustomerFilter() *CustomerFilter {
	return &CustomerFilter{
		QueryFilter: NewNoLimitQueryFilter(),
	}
}

func (f *CustomerFilter) Validate() error {
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
func (f *CustomerFilter) GetLimit() int {
	if f == nil || f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetLimit()
	}
	return f.QueryFilter.GetLimit()
}

// GetOffset implements BaseFilter interface
func (f *CustomerFilter) GetOffset() int {
	if f == nil || f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetOffset()
	}
	return f.QueryFilter.GetOffset()
}

// GetSort implements BaseFilter interface
func (f *CustomerFilter) GetSort() string {
	if f == nil || f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetSort()
	}
	return f.QueryFilter.GetSort()
}

// GetOrder implements BaseFilter interface
func (f *CustomerFilter) GetOrder() string {
	if f == nil || f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetOrder()
	}
	return f.QueryFilter.GetOrder()
}

// GetStatus implements BaseFilter interface
func (f *CustomerFilter) GetStatus() string {
	if f == nil || f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetStatus()
	}
	return f.QueryFilter.GetStatus()
}

// IsUnlimited implements BaseFilter interface
func (f *CustomerFilter) IsUnlimited() bool {
	if f == nil || f.QueryFilter == nil {
		return NewDefaultQueryFilter().IsUnlimited()
	}
	return f.QueryFilter.IsUnlimited()
}

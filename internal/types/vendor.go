package types

import (
	ierr "github.com/finbooks/finbooks/internal/errors"
)

// VendorFilter represents the filter options for listing vendors
type VendorFilter struct {
	*QueryFilter
	*TimeRangeFilter

	// vendor_ids restricts results to vendors with the specified IDs
	VendorIDs []string `json:"vendor_ids,omitempty" form:"vendor_ids"`

	// search matches against displayName, companyName and email
	Search string `json:"search,omitempty" form:"search"`
}

// NewVendorFilter creates a new vendor filter with default options
func NewVendorFilter() *VendorFilter {
	return &VendorFilter{
		QueryFilter: NewDefaultQueryFilter(),
	}
}

// NewNoLimitVendorFilter creates a new vendor filter without pagination
func NewNoLimitVendorFilter() *VendorFilter {
	return &VendorFilter{
		QueryFilter: NewNoLimitQueryFilter(),
	}
}

func (f *VendorFilter) Validate() error {
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
func (f *VendorFilter) GetLimit() int {
	if f == nil || f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetLimit()
	}
	return f.QueryFilter.GetLimit()
}

// GetOffset implements BaseFilter interface
func (f *VendorFilter) GetOffset() int {
	if f == nil || f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetOffset()
	}
	return f.QueryFilter.GetOffset()
}

// GetSort implements BaseFilter interface
func (f *VendorFilter) GetSort() string {
	if f == nil || f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetSort()
	}
	return f.QueryFilter.GetSort()
}

// GetOrder implements BaseFilter interface
func (f *VendorFilter) GetOrder() string {
	if f == nil || f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetOrder()
	}
	return f.QueryFilter.GetOrder()
}

// GetStatus implements BaseFilter interface
func (f *VendorFilter) GetStatus() string {
	if f == nil || f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetStatus()
	}
	return f.QueryFilter.GetStatus()
}

// IsUnlimited implements BaseFilter interface
func (f *VendorFilter) IsUnlimited() bool {
	if f == nil || f.QueryFilter == nil {
		return NewDefaultQueryFilter().IsUnlimited()
	}
	return f.QueryFilter.IsUnlimited()
}

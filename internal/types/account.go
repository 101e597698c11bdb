package types

import (
	ierr "github.com/finbooks/finbooks/internal/errors"
)

// AccountFilter represents the filter options for listing chart of
// accounts entries
type AccountFilter struct {
	*QueryFilter

	// search matches against name, code, accountType and parentCategory
	Search string `json:"search,omitempty" form:"search"`

	// parent_category filters by the top level accounting category
	ParentCategory string `json:"parent_category,omitempty" form:"parent_category"`

	// account_type filters by the configured account type
	AccountType string `json:"account_type,omitempty" form:"account_type"`
}

// NewAccountFilter creates a new account filter with default options
func NewAccountFilter() *AccountFilter {
	return &AccountFilter{
		QueryFilter: NewDefaultQueryFilter(),
	}
}

// NewNoLimitAccountFilter creates a new account filter without pagination
func NewNoLimitAccountFilter() *AccountFilter {
	return &AccountFilter{
		QueryFilter: NewNoLimitQueryFilter(),
	}
}

func (f *AccountFilter) Validate() error {
	if f == nil {
		return nil
	}
	if f.QueryFilter != nil {
		if err := f.QueryFilter.Validate(); err != nil {
			return ierr.WithError(err).WithHint("invalid query filter").Mark(ierr.ErrValidation)
		}
	}
	return nil
}

// GetLimit implements BaseFilter interface
func (f *AccountFilter) GetLimit() int {
	if f == nil || f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetLimit()
	}
	return f.QueryFilter.GetLimit()
}

// GetOffset implements BaseFilter interface
func (f *AccountFilter) GetOffset() int {
	if f == nil || f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetOffset()
	}
	return f.QueryFilter.GetOffset()
}

// GetSort implements BaseFilter interface
func (f *AccountFilter) GetSort() string {
	if f == nil || f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetSort()
	}
	return f.QueryFilter.GetSort()
}

// GetOrder implements BaseFilter interface
func (f *AccountFilter) GetOrder() string {
	if f == nil || f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetOrder()
	}
	return f.QueryFilter.GetOrder()
}

// GetStatus implements BaseFilter interface
func (f *AccountFilter) GetStatus() string {
	if f == nil || f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetStatus()
	}
	return f.QueryFilter.GetStatus()
}

// IsUnlimited implements BaseFilter interface
func (f *AccountFilter) IsUnlimited() bool {
	if f == nil || f.QueryFilter == nil {
		return NewDefaultQueryFilter().IsUnlimited()
	}
	return f.QueryFilter.IsUnlimited()
}

package types

import (
	ierr "github.com/finbooks/finbooks/internal/errors"
)

// TaxRateType is the tax regime a configured rate belongs to.
type TaxRateType string

const (
	TaxRateTypeGST TaxRateType = "gst"
	TaxRateTypeTDS TaxRateType = "tds"
	TaxRateTypeTCS TaxRateType = "tcs"
)

func (t TaxRateType) String() string {
	return string(t)
}

// Valid reports whether t is a known tax regime.
func (t TaxRateType) Valid() bool {
	switch t {
	case TaxRateTypeGST, TaxRateTypeTDS, TaxRateTypeTCS:
		return true
	}
	return false
}

// TaxRateFilter represents the filter options for listing tax rates
type TaxRateFilter struct {
	*QueryFilter

	// tax_type filters rates by regime (gst, tds, tcs)
	TaxType *TaxRateType `json:"tax_type,omitempty" form:"tax_type"`
}

// NewTaxRateFilter creates a new tax rate filter with default options
func NewTaxRateFilter() *TaxRateFilter {
	return &TaxRateFilter{
		QueryFilter: NewDefaultQueryFilter(),
	}
}

// NewNoLimitTaxRateFilter creates a new tax rate filter without pagination
func NewNoLimitTaxRateFilter() *TaxRateFilter {
	return &TaxRateFilter{
		QueryFilter: NewNoLimitQueryFilter(),
	}
}

func (f *TaxRateFilter) Validate() error {
	if f == nil {
		return nil
	}
	if f.QueryFilter != nil {
		if err := f.QueryFilter.Validate(); err != nil {
			return ierr.WithError(err).WithHint("invalid query filter").Mark(ierr.ErrValidation)
		}
	}
	if f.TaxType != nil && !f.TaxType.Valid() {
		return ierr.NewError("invalid tax type").
			WithHint("Tax type must be one of gst, tds, tcs").
			WithReportableDetails(map[string]interface{}{
				"tax_type": *f.TaxType,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// GetLimit implements BaseFilter interface
func (f *TaxRateFilter) GetLimit() int {
	if f == nil || f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetLimit()
	}
	return f.QueryFilter.GetLimit()
}

// GetOffset implements BaseFilter interface
func (f *TaxRateFilter) GetOffset() int {
	if f == nil || f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetOffset()
	}
	return f.QueryFilter.GetOffset()
}

// GetSort implements BaseFilter interface
func (f *TaxRateFilter) GetSort() string {
	if f == nil || f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetSort()
	}
	return f.QueryFilter.GetSort()
}

// GetOrder implements BaseFilter interface
func (f *TaxRateFilter) GetOrder() string {
	if f == nil || f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetOrder()
	}
	return f.QueryFilter.GetOrder()
}

// GetStatus implements BaseFilter interface
func (f *TaxRateFilter) GetStatus() string {
	if f == nil || f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetStatus()
	}
	return f.QueryFilter.GetStatus()
}

// IsUnlimited implements BaseFilter interface
func (f *TaxRateFilter) IsUnlimited() bool {
	if f == nil || f.QueryFilter == nil {
		return NewDefaultQueryFilter().IsUnlimited()
	}
	return f.QueryFilter.IsUnlimited()
}

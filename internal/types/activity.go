package types

import (
	ierr "github.com/finbooks/finbooks/internal/errors"
)

// ActivityAction identifies what kind of mutation an audit trail entry
// records. The values match the action strings stored by earlier versions
// of the system.
type ActivityAction string

const (
	ActivityCreateCustomer     ActivityAction = "CREATE_CUSTOMER"
	ActivityUpdateCustomer     ActivityAction = "UPDATE_CUSTOMER"
	ActivityDeleteCustomer     ActivityAction = "DELETE_CUSTOMER"
	ActivityCreateVendor       ActivityAction = "CREATE_VENDOR"
	ActivityUpdateVendor       ActivityAction = "UPDATE_VENDOR"
	ActivityDeleteVendor       ActivityAction = "DELETE_VENDOR"
	ActivityCreateAccount      ActivityAction = "CREATE_ACCOUNT"
	ActivityUpdateAccount      ActivityAction = "UPDATE_ACCOUNT"
	ActivityDeleteAccount      ActivityAction = "DELETE_ACCOUNT"
	ActivityCreateTaxRate      ActivityAction = "CREATE_TAX_RATE"
	ActivityUpdateTaxRate      ActivityAction = "UPDATE_TAX_RATE"
	ActivityDeleteTaxRate      ActivityAction = "DELETE_TAX_RATE"
	ActivityCreateItem         ActivityAction = "CREATE_ITEM"
	ActivityUpdateItem         ActivityAction = "UPDATE_ITEM"
	ActivityDeleteItem         ActivityAction = "DELETE_ITEM"
	ActivityCreateInvoice      ActivityAction = "CREATE_SALES_INVOICE"
	ActivityUpdateInvoice      ActivityAction = "UPDATE_INVOICE"
	ActivityDeleteInvoice      ActivityAction = "DELETE_INVOICE"
	ActivityCreateCreditNote   ActivityAction = "CREATE_CREDIT_NOTE"
	ActivityCreateQuote        ActivityAction = "CREATE_QUOTE"
	ActivityRecordPayment      ActivityAction = "RECORD_PAYMENT"
	ActivitySaveSettings       ActivityAction = "SAVE_INVOICE_SETTINGS"
)

func (a ActivityAction) String() string {
	return string(a)
}

// ActivityFilter represents the filter options for listing audit trail
// entries. Entries list newest first.
type ActivityFilter struct {
	*QueryFilter
	*TimeRangeFilter

	// action_type filters by the recorded action
	ActionType *ActivityAction `json:"action_type,omitempty" form:"action_type"`

	// user filters entries recorded by a specific user
	User string `json:"user,omitempty" form:"user"`

	// document_id filters entries for a specific document
	DocumentID string `json:"document_id,omitempty" form:"document_id"`
}

// NewActivityFilter creates a new activity filter with default options
func NewActivityFilter() *ActivityFilter {
	return &ActivityFilter{
		QueryFilter: NewDefaultQueryFilter(),
	}
}

// NewNoLimitActivityFilter creates a new activity filter without pagination
func NewNoLimitActivityFilter() *ActivityFilter {
	return &ActivityFilter{
		QueryFilter: NewNoLimitQueryFilter(),
	}
}

func (f *ActivityFilter) Validate() error {
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
func (f *ActivityFilter) GetLimit() int {
	if f == nil || f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetLimit()
	}
	return f.QueryFilter.GetLimit()
}

// GetOffset implements BaseFilter interface
func (f *ActivityFilter) GetOffset() int {
	if f == nil || f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetOffset()
	}
	return f.QueryFilter.GetOffset()
}

// GetSort implements BaseFilter interface
func (f *ActivityFilter) GetSort() string {
	if f == nil || f.QueryFilter == nil || f.QueryFilter.Sort == nil {
		return "timestamp"
	}
	return f.QueryFilter.GetSort()
}

// GetOrder implements BaseFilter interface
func (f *ActivityFilter) GetOrder() string {
	if f == nil || f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetOrder()
	}
	return f.QueryFilter.GetOrder()
}

// GetStatus implements BaseFilter interface
func (f *ActivityFilter) GetStatus() string {
	if f == nil || f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetStatus()
	}
	return f.QueryFilter.GetStatus()
}

// IsUnlimited implements BaseFilter interface
func (f *ActivityFilter) IsUnlimited() bool {
	if f == nil || f.QueryFilter == nil {
		return NewDefaultQueryFilter().IsUnlimited()
	}
	return f.QueryFilter.IsUnlimited()
}

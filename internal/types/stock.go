package types

import (
	ierr "github.com/finbooks/finbooks/internal/errors"
	"github.com/samber/lo"
)

// StockTransactionType is the direction of a stock ledger entry.
type StockTransactionType string

const (
	StockTransactionIn  StockTransactionType = "IN"
	StockTransactionOut StockTransactionType = "OUT"
)

func (t StockTransactionType) String() string {
	return string(t)
}

// Valid reports whether t is a known ledger direction.
func (t StockTransactionType) Valid() bool {
	return t == StockTransactionIn || t == StockTransactionOut
}

// SignedMultiplier returns +1 for IN and -1 for OUT so a ledger entry's
// effect on currentStock is always quantity * multiplier.
func (t StockTransactionType) SignedMultiplier() int64 {
	if t == StockTransactionOut {
		return -1
	}
	return 1
}

// ItemType distinguishes stocked products from services. Only products
// participate in the stock ledger.
type ItemType string

const (
	ItemTypeProduct ItemType = "product"
	ItemTypeService ItemType = "service"
)

func (t ItemType) String() string {
	return string(t)
}

// Valid reports whether t is a known item type.
func (t ItemType) Valid() bool {
	return t == ItemTypeProduct || t == ItemTypeService
}

// ItemFilter represents the filter options for listing inventory items
type ItemFilter struct {
	*QueryFilter

	// search matches against itemName and hsnSac
	Search string `json:"search,omitempty" form:"search"`

	// item_type filters by product or service
	ItemType *ItemType `json:"item_type,omitempty" form:"item_type"`
}

// NewItemFilter creates a new item filter with default options.
// Items list alphabetically by name rather than by creation time.
func NewItemFilter() *ItemFilter {
	return &ItemFilter{
		QueryFilter: &QueryFilter{
			Limit:  lo.ToPtr(FILTER_DEFAULT_LIMIT),
			Offset: lo.ToPtr(0),
			Status: lo.ToPtr(StatusPublished),
			Sort:   lo.ToPtr("item_name"),
			Order:  lo.ToPtr(OrderAsc),
		},
	}
}

// NewNoLimitItemFilter creates a new item filter without pagination
func NewNoLimitItemFilter() *ItemFilter {
	f := NewItemFilter()
	f.QueryFilter.Limit = nil
	return f
}

func (f *ItemFilter) Validate() error {
	if f == nil {
		return nil
	}
	if f.QueryFilter != nil {
		if err := f.QueryFilter.Validate(); err != nil {
			return ierr.WithError(err).WithHint("invalid query filter").Mark(ierr.ErrValidation)
		}
	}
	if f.ItemType != nil && !f.ItemType.Valid() {
		return ierr.NewError("invalid item type").
			WithHint("Item type must be product or service").
			WithReportableDetails(map[string]interface{}{
				"item_type": *f.ItemType,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// GetLimit implements BaseFilter interface
func (f *ItemFilter) GetLimit() int {
	if f == nil || f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetLimit()
	}
	return f.QueryFilter.GetLimit()
}

// GetOffset implements BaseFilter interface
func (f *ItemFilter) GetOffset() int {
	if f == nil || f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetOffset()
	}
	return f.QueryFilter.GetOffset()
}

// GetSort implements BaseFilter interface
func (f *ItemFilter) GetSort() string {
	if f == nil || f.QueryFilter == nil || f.QueryFilter.Sort == nil {
		return "item_name"
	}
	return f.QueryFilter.GetSort()
}

// GetOrder implements BaseFilter interface
func (f *ItemFilter) GetOrder() string {
	if f == nil || f.QueryFilter == nil || f.QueryFilter.Order == nil {
		return OrderAsc
	}
	return f.QueryFilter.GetOrder()
}

// GetStatus implements BaseFilter interface
func (f *ItemFilter) GetStatus() string {
	if f == nil || f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetStatus()
	}
	return f.QueryFilter.GetStatus()
}

// IsUnlimited implements BaseFilter interface
func (f *ItemFilter) IsUnlimited() bool {
	if f == nil || f.QueryFilter == nil {
		return NewDefaultQueryFilter().IsUnlimited()
	}
	return f.QueryFilter.IsUnlimited()
}

// StockTransactionFilter represents the filter options for listing stock
// ledger entries. Entries list newest first.
type StockTransactionFilter struct {
	*QueryFilter
	*TimeRangeFilter

	// item_id restricts entries to a single inventory item
	ItemID string `json:"item_id,omitempty" form:"item_id"`

	// transaction_type filters by ledger direction (IN, OUT)
	TransactionType *StockTransactionType `json:"transaction_type,omitempty" form:"transaction_type"`
}

// NewStockTransactionFilter creates a new stock transaction filter with
// default options
func NewStockTransactionFilter() *StockTransactionFilter {
	return &StockTransactionFilter{
		QueryFilter: &QueryFilter{
			Limit:  lo.ToPtr(FILTER_DEFAULT_LIMIT),
			Offset: lo.ToPtr(0),
			Status: lo.ToPtr(StatusPublished),
			Sort:   lo.ToPtr("transaction_date"),
			Order:  lo.ToPtr(OrderDesc),
		},
	}
}

// NewNoLimitStockTransactionFilter creates a stock transaction filter
// without pagination
func NewNoLimitStockTransactionFilter() *StockTransactionFilter {
	f := NewStockTransactionFilter()
	f.QueryFilter.Limit = nil
	return f
}

func (f *StockTransactionFilter) Validate() error {
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
	if f.TransactionType != nil && !f.TransactionType.Valid() {
		return ierr.NewError("invalid transaction type").
			WithHint("Transaction type must be IN or OUT").
			WithReportableDetails(map[string]interface{}{
				"transaction_type": *f.TransactionType,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// GetLimit implements BaseFilter interface
func (f *StockTransactionFilter) GetLimit() int {
	if f == nil || f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetLimit()
	}
	return f.QueryFilter.GetLimit()
}

// GetOffset implements BaseFilter interface
func (f *StockTransactionFilter) GetOffset() int {
	if f == nil || f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetOffset()
	}
	return f.QueryFilter.GetOffset()
}

// GetSort implements BaseFilter interface
func (f *StockTransactionFilter) GetSort() string {
	if f == nil || f.QueryFilter == nil || f.QueryFilter.Sort == nil {
		return "transaction_date"
	}
	return f.QueryFilter.GetSort()
}

// GetOrder implements BaseFilter interface
func (f *StockTransactionFilter) GetOrder() string {
	if f == nil || f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetOrder()
	}
	return f.QueryFilter.GetOrder()
}

// GetStatus implements BaseFilter interface
func (f *StockTransactionFilter) GetStatus() string {
	if f == nil || f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetStatus()
	}
	return f.QueryFilter.GetStatus()
}

// IsUnlimited implements BaseFilter interface
func (f *StockTransactionFilter) IsUnlimited() bool {
	if f == nil || f.QueryFilter == nil {
		return NewDefaultQueryFilter().IsUnlimited()
	}
	return f.QueryFilter.IsUnlimited()
}

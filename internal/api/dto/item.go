package dto

import (
	"context"

	"github.com/finbooks/finbooks/internal/domain/item"
	ierr "github.com/finbooks/finbooks/internal/errors"
	"github.com/finbooks/finbooks/internal/types"
	"github.com/finbooks/finbooks/internal/validator"
	"github.com/shopspring/decimal"
)

type CreateItemRequest struct {
	ItemName string         `json:"itemName" validate:"required,max=255"`
	ItemType types.ItemType `json:"itemType" validate:"required"`
	Unit     string         `json:"unit" validate:"omitempty,max=50"`
	HSNSAC   string         `json:"hsnSac" validate:"omitempty,max=20"`

	SalesPrice    decimal.Decimal `json:"salesPrice"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`

	// OpeningStockQty seeds the stock ledger with an opening entry;
	// ignored for services
	OpeningStockQty decimal.Decimal `json:"openingStockQty"`
}

type UpdateItemRequest struct {
	ItemName      *string          `json:"itemName" validate:"omitempty,max=255"`
	Unit          *string          `json:"unit" validate:"omitempty,max=50"`
	HSNSAC        *string          `json:"hsnSac" validate:"omitempty,max=20"`
	SalesPrice    *decimal.Decimal `json:"salesPrice"`
	PurchasePrice *decimal.Decimal `json:"purchasePrice"`
}

// AdjustStockRequest records a manual stock movement against an item.
type AdjustStockRequest struct {
	TransactionType types.StockTransactionType `json:"transaction_type" validate:"required"`
	Quantity        decimal.Decimal            `json:"quantity"`
	PricePerItem    *decimal.Decimal           `json:"price_per_item,omitempty"`
	Notes           string                     `json:"notes" validate:"omitempty,max=500"`
}

type ItemResponse struct {
	*item.Item
}

type StockTransactionResponse struct {
	*item.StockTransaction
}

// ListItemsResponse represents the response for listing inventory items
type ListItemsResponse = types.ListResponse[*ItemResponse]

// ListStockTransactionsResponse represents the response for listing an
// item's stock ledger entries
type ListStockTransactionsResponse = types.ListResponse[*StockTransactionResponse]

func (r *CreateItemRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if !r.ItemType.Valid() {
		return ierr.NewError("invalid item type").
			WithHint("Item type must be product or service").
			WithReportableDetails(map[string]interface{}{
				"item_type": r.ItemType,
			}).
			Mark(ierr.ErrValidation)
	}
	if r.OpeningStockQty.IsNegative() {
		return ierr.NewError("openingStockQty must not be negative").
			WithHint("Opening stock cannot be negative").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// ToItem builds the item with a zero stock counter. The opening stock
// lands through the ledger so the counter always equals the ledger sum.
func (r *CreateItemRequest) ToItem(ctx context.Context) *item.Item {
	return &item.Item{
		ID:              types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ITEM),
		ItemName:        r.ItemName,
		ItemType:        r.ItemType,
		Unit:            r.Unit,
		HSNSAC:          r.HSNSAC,
		SalesPrice:      r.SalesPrice,
		PurchasePrice:   r.PurchasePrice,
		OpeningStockQty: r.OpeningStockQty,
		BaseModel:       types.GetDefaultBaseModel(ctx),
	}
}

func (r *UpdateItemRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// Apply copies the provided fields onto an existing item. ItemType,
// opening stock and the live stock counter are deliberately absent:
// the type is immutable and stock only moves through the ledger.
func (r *UpdateItemRequest) Apply(i *item.Item) {
	if r.ItemName != nil {
		i.ItemName = *r.ItemName
	}
	if r.Unit != nil {
		i.Unit = *r.Unit
	}
	if r.HSNSAC != nil {
		i.HSNSAC = *r.HSNSAC
	}
	if r.SalesPrice != nil {
		i.SalesPrice = *r.SalesPrice
	}
	if r.PurchasePrice != nil {
		i.PurchasePrice = *r.PurchasePrice
	}
}

func (r *AdjustStockRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if !r.TransactionType.Valid() {
		return ierr.NewError("invalid transaction type").
			WithHint("Transaction type must be IN or OUT").
			WithReportableDetails(map[string]interface{}{
				"transaction_type": r.TransactionType,
			}).
			Mark(ierr.ErrValidation)
	}
	if !r.Quantity.IsPositive() {
		return ierr.NewError("quantity must be positive").
			WithHint("Quantity must be greater than zero").
			Mark(ierr.ErrValidation)
	}
	return nil
}

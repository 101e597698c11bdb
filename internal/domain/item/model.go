package item

import (
	"time"

	ierr "github.com/finbooks/finbooks/internal/errors"
	"github.com/finbooks/finbooks/internal/types"
	"github.com/shopspring/decimal"
)

// Item is an inventory item or a service. Only products track stock;
// their CurrentStock mutates exclusively through the stock ledger so the
// counter always equals the signed sum of the item's ledger entries.
type Item struct {
	// ID is the unique identifier for the item
	ID string `db:"id" json:"id"`

	// ItemName is unique per tenant, compared case insensitively
	ItemName string `db:"item_name" json:"itemName"`

	// ItemType is product or service
	ItemType types.ItemType `db:"item_type" json:"itemType"`

	// Unit is the unit of measure, e.g. "pcs", "kg"
	Unit string `db:"unit" json:"unit,omitempty"`

	// HSNSAC is the HSN or SAC classification code
	HSNSAC string `db:"hsn_sac" json:"hsnSac,omitempty"`

	// SalesPrice is the default per unit selling price
	SalesPrice decimal.Decimal `db:"sales_price" json:"salesPrice"`

	// PurchasePrice is the default per unit purchase price
	PurchasePrice decimal.Decimal `db:"purchase_price" json:"purchasePrice"`

	// OpeningStockQty is the stock on hand when the item was created
	OpeningStockQty decimal.Decimal `db:"opening_stock_qty" json:"openingStockQty"`

	// CurrentStock is the live stock counter, products only
	CurrentStock decimal.Decimal `db:"current_stock" json:"currentStock"`

	types.BaseModel
}

func (i *Item) TableName() string {
	return "inventory_items"
}

// IsProduct reports whether the item participates in the stock ledger.
func (i *Item) IsProduct() bool {
	return i.ItemType == types.ItemTypeProduct
}

func (i *Item) Validate() error {
	if i.ItemName == "" {
		return ierr.NewError("itemName is required").
			WithHint("Item name is required").
			Mark(ierr.ErrValidation)
	}
	if !i.ItemType.Valid() {
		return ierr.NewError("invalid item type").
			WithHint("Item type must be product or service").
			WithReportableDetails(map[string]interface{}{
				"item_type": i.ItemType,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// StockTransaction is one immutable stock ledger entry. JSON field names
// are the wire contract and mix cases exactly as existing clients expect.
type StockTransaction struct {
	// ID is the unique identifier for the ledger entry
	ID string `db:"id" json:"id"`

	// ItemID is the inventory item the entry belongs to
	ItemID string `db:"item_id" json:"itemId"`

	// TransactionType is the ledger direction, IN or OUT
	TransactionType types.StockTransactionType `db:"transaction_type" json:"transaction_type"`

	// Quantity is always positive; direction carries the sign
	Quantity decimal.Decimal `db:"quantity" json:"quantity"`

	// PricePerItem is the per unit value at the time of movement
	PricePerItem *decimal.Decimal `db:"price_per_item" json:"price_per_item,omitempty"`

	// Notes describes why the stock moved, e.g. "Sale against Invoice #12"
	Notes string `db:"notes" json:"notes"`

	// TransactionDate is when the movement was recorded
	TransactionDate time.Time `db:"transaction_date" json:"transaction_date"`

	// RecordedBy is the user who caused the movement
	RecordedBy string `db:"recorded_by" json:"recorded_by"`

	types.BaseModel
}

func (t *StockTransaction) TableName() string {
	return "stock_transactions"
}

func (t *StockTransaction) Validate() error {
	if t.ItemID == "" {
		return ierr.NewError("itemId is required").
			WithHint("Item ID is required").
			Mark(ierr.ErrValidation)
	}
	if !t.TransactionType.Valid() {
		return ierr.NewError("invalid transaction type").
			WithHint("Transaction type must be IN or OUT").
			WithReportableDetails(map[string]interface{}{
				"transaction_type": t.TransactionType,
			}).
			Mark(ierr.ErrValidation)
	}
	if !t.Quantity.IsPositive() {
		return ierr.NewError("quantity must be positive").
			WithHint("Quantity must be greater than zero").
			WithReportableDetails(map[string]interface{}{
				"quantity": t.Quantity,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// SignedQuantity returns the entry's effect on the item's stock counter.
func (t *StockTransaction) SignedQuantity() decimal.Decimal {
	if t.TransactionType == types.StockTransactionOut {
		return t.Quantity.Neg()
	}
	return t.Quantity
}

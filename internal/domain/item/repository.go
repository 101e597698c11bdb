package item

import (
	"context"

	"github.com/finbooks/finbooks/internal/types"
	"github.com/shopspring/decimal"
)

// Repository defines the interface for inventory item and stock ledger
// data access. The ledger methods are primitives; the stock service
// composes them inside a transaction so the ledger and the item's stock
// counter cannot diverge.
type Repository interface {
	Create(ctx context.Context, item *Item) error
	Get(ctx context.Context, id string) (*Item, error)
	GetByName(ctx context.Context, name string) (*Item, error)
	List(ctx context.Context, filter *types.ItemFilter) ([]*Item, error)
	Count(ctx context.Context, filter *types.ItemFilter) (int, error)
	ListAll(ctx context.Context, filter *types.ItemFilter) ([]*Item, error)
	Update(ctx context.Context, item *Item) error
	Delete(ctx context.Context, id string) error

	// AdjustStock applies a signed delta to the item's stock counter
	AdjustStock(ctx context.Context, id string, delta decimal.Decimal) error

	// CreateTransaction appends an immutable ledger entry
	CreateTransaction(ctx context.Context, txn *StockTransaction) error
	ListTransactions(ctx context.Context, filter *types.StockTransactionFilter) ([]*StockTransaction, error)
	CountTransactions(ctx context.Context, filter *types.StockTransactionFilter) (int, error)

	// HasTransactions reports whether any ledger entry references the item
	HasTransactions(ctx context.Context, itemID string) (bool, error)
}

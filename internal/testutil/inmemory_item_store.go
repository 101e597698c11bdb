package testutil

import (
	"context"
	"sync"

	"github.com/finbooks/finbooks/internal/domain/item"
	ierr "github.com/finbooks/finbooks/internal/errors"
	"github.com/finbooks/finbooks/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// InMemoryItemStore implements item.Repository, holding both the
// inventory items and their stock ledger entries.
type InMemoryItemStore struct {
	*InMemoryStore[*item.Item]
	txns *InMemoryStore[*item.StockTransaction]

	// serializes read-modify-write stock adjustments
	adjustMu sync.Mutex
}

// NewInMemoryItemStore creates a new in-memory item store
func NewInMemoryItemStore() *InMemoryItemStore {
	return &InMemoryItemStore{
		InMemoryStore: NewInMemoryStore[*item.Item](),
		txns:          NewInMemoryStore[*item.StockTransaction](),
	}
}

func copyItem(i *item.Item) *item.Item {
	if i == nil {
		return nil
	}
	copied := *i
	return &copied
}

func copyStockTransaction(t *item.StockTransaction) *item.StockTransaction {
	if t == nil {
		return nil
	}
	copied := *t
	if t.PricePerItem != nil {
		p := *t.PricePerItem
		copied.PricePerItem = &p
	}
	return &copied
}

func (s *InMemoryItemStore) Create(ctx context.Context, i *item.Item) error {
	return s.InMemoryStore.Create(ctx, i.ID, copyItem(i))
}

func (s *InMemoryItemStore) Get(ctx context.Context, id string) (*item.Item, error) {
	i, err := s.InMemoryStore.Get(ctx, id)
	if err != nil || !visibleInTenant(ctx, i.TenantID, i.Status) {
		return nil, ierr.NewError("item not found").
			WithHintf("Item with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return copyItem(i), nil
}

func (s *InMemoryItemStore) GetByName(ctx context.Context, name string) (*item.Item, error) {
	filterFn := func(ctx context.Context, i *item.Item, _ interface{}) bool {
		return visibleInTenant(ctx, i.TenantID, i.Status) && i.ItemName == name
	}

	items, err := s.InMemoryStore.List(ctx, nil, filterFn, nil)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ierr.NewError("item not found").
			WithHintf("Item named %q was not found", name).
			Mark(ierr.ErrNotFound)
	}
	return copyItem(items[0]), nil
}

func (s *InMemoryItemStore) List(ctx context.Context, filter *types.ItemFilter) ([]*item.Item, error) {
	items, err := s.InMemoryStore.List(ctx, filter, itemFilterFn, itemSortFn)
	if err != nil {
		return nil, err
	}
	return lo.Map(items, func(i *item.Item, _ int) *item.Item {
		return copyItem(i)
	}), nil
}

func (s *InMemoryItemStore) Count(ctx context.Context, filter *types.ItemFilter) (int, error) {
	return s.InMemoryStore.Count(ctx, filter, itemFilterFn)
}

func (s *InMemoryItemStore) ListAll(ctx context.Context, filter *types.ItemFilter) ([]*item.Item, error) {
	f := *filter
	f.QueryFilter = types.NewNoLimitQueryFilter()
	return s.List(ctx, &f)
}

func (s *InMemoryItemStore) Update(ctx context.Context, i *item.Item) error {
	// current_stock only moves through AdjustStock, so carry the stored
	// counter over just like the UPDATE column list does
	current, err := s.Get(ctx, i.ID)
	if err != nil {
		return err
	}
	updated := copyItem(i)
	updated.CurrentStock = current.CurrentStock
	return s.InMemoryStore.Update(ctx, i.ID, updated)
}

func (s *InMemoryItemStore) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.InMemoryStore.Delete(ctx, id)
}

// AdjustStock applies a signed delta to the item's stock counter
func (s *InMemoryItemStore) AdjustStock(ctx context.Context, id string, delta decimal.Decimal) error {
	s.adjustMu.Lock()
	defer s.adjustMu.Unlock()

	i, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	i.CurrentStock = i.CurrentStock.Add(delta)
	return s.InMemoryStore.Update(ctx, id, i)
}

// CreateTransaction appends an immutable ledger entry
func (s *InMemoryItemStore) CreateTransaction(ctx context.Context, txn *item.StockTransaction) error {
	return s.txns.Create(ctx, txn.ID, copyStockTransaction(txn))
}

func (s *InMemoryItemStore) ListTransactions(ctx context.Context, filter *types.StockTransactionFilter) ([]*item.StockTransaction, error) {
	txns, err := s.txns.List(ctx, filter, stockTransactionFilterFn, stockTransactionSortFn)
	if err != nil {
		return nil, err
	}
	return lo.Map(txns, func(t *item.StockTransaction, _ int) *item.StockTransaction {
		return copyStockTransaction(t)
	}), nil
}

func (s *InMemoryItemStore) CountTransactions(ctx context.Context, filter *types.StockTransactionFilter) (int, error) {
	return s.txns.Count(ctx, filter, stockTransactionFilterFn)
}

// HasTransactions reports whether any ledger entry references the item
func (s *InMemoryItemStore) HasTransactions(ctx context.Context, itemID string) (bool, error) {
	filterFn := func(ctx context.Context, t *item.StockTransaction, _ interface{}) bool {
		return visibleInTenant(ctx, t.TenantID, t.Status) && t.ItemID == itemID
	}
	count, err := s.txns.Count(ctx, nil, filterFn)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Clear removes all items and ledger entries
func (s *InMemoryItemStore) Clear() {
	s.InMemoryStore.Clear()
	s.txns.Clear()
}

// itemFilterFn implements filtering logic for inventory items
func itemFilterFn(ctx context.Context, i *item.Item, filter interface{}) bool {
	if !visibleInTenant(ctx, i.TenantID, i.Status) {
		return false
	}

	f, ok := filter.(*types.ItemFilter)
	if !ok || f == nil {
		return true
	}

	if f.Search != "" && !matchesSearch(f.Search, i.ItemName, i.HSNSAC) {
		return false
	}
	if f.ItemType != nil && i.ItemType != *f.ItemType {
		return false
	}

	return true
}

// itemSortFn sorts by item_name asc to match the repository default
func itemSortFn(a, b *item.Item) bool {
	return a.ItemName < b.ItemName
}

// stockTransactionFilterFn implements filtering logic for ledger entries
func stockTransactionFilterFn(ctx context.Context, t *item.StockTransaction, filter interface{}) bool {
	if !visibleInTenant(ctx, t.TenantID, t.Status) {
		return false
	}

	f, ok := filter.(*types.StockTransactionFilter)
	if !ok || f == nil {
		return true
	}

	if f.ItemID != "" && t.ItemID != f.ItemID {
		return false
	}
	if f.TransactionType != nil && t.TransactionType != *f.TransactionType {
		return false
	}
	if !inTimeRange(f.TimeRangeFilter, t.CreatedAt) {
		return false
	}

	return true
}

// stockTransactionSortFn sorts by transaction_date desc to match the
// repository default
func stockTransactionSortFn(a, b *item.StockTransaction) bool {
	return a.TransactionDate.After(b.TransactionDate)
}

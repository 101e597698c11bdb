package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/finbooks/finbooks/internal/domain/item"
	ierr "github.com/finbooks/finbooks/internal/errors"
	"github.com/finbooks/finbooks/internal/logger"
	"github.com/finbooks/finbooks/internal/postgres"
	"github.com/finbooks/finbooks/internal/types"
	"github.com/shopspring/decimal"
)

type itemRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

// NewItemRepository creates a new instance of inventory item repository
func NewItemRepository(db *postgres.DB, logger *logger.Logger) item.Repository {
	return &itemRepository{db: db, logger: logger}
}

var itemSortColumns = map[string]string{
	"created_at": "created_at",
	"updated_at": "updated_at",
	"item_name":  "item_name",
	"item_type":  "item_type",
}

var stockTxnSortColumns = map[string]string{
	"created_at":       "created_at",
	"transaction_date": "transaction_date",
}

func (r *itemRepository) Create(ctx context.Context, i *item.Item) error {
	query := `
		INSERT INTO inventory_items (
			id, item_name, item_type, unit, hsn_sac,
			sales_price, purchase_price, opening_stock_qty, current_stock,
			tenant_id, status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :item_name, :item_type, :unit, :hsn_sac,
			:sales_price, :purchase_price, :opening_stock_qty, :current_stock,
			:tenant_id, :status, :created_at, :updated_at, :created_by, :updated_by
		)`

	r.logger.Debugw("creating item",
		"item_id", i.ID,
		"item_name", i.ItemName,
		"tenant_id", i.TenantID,
	)

	if _, err := r.db.NamedExecContext(ctx, query, i); err != nil {
		return fmt.Errorf("failed to insert item: %w", err)
	}
	return nil
}

func (r *itemRepository) Get(ctx context.Context, id string) (*item.Item, error) {
	query := `
		SELECT * FROM inventory_items
		WHERE id = :id
		AND tenant_id = :tenant_id
		AND status = :status`

	params := map[string]interface{}{
		"id":        id,
		"tenant_id": types.GetTenantID(ctx),
		"status":    types.StatusPublished,
	}

	rows, err := r.db.NamedQueryContext(ctx, query, params)
	if err != nil {
		return nil, fmt.Errorf("failed to query item: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, ierr.NewError("item not found").
			WithHintf("Item with ID %s was not found", id).
			WithReportableDetails(map[string]interface{}{
				"item_id": id,
			}).
			Mark(ierr.ErrNotFound)
	}

	var i item.Item
	if err := rows.StructScan(&i); err != nil {
		return nil, fmt.Errorf("failed to scan item: %w", err)
	}
	return &i, nil
}

func (r *itemRepository) GetByName(ctx context.Context, name string) (*item.Item, error) {
	query := `
		SELECT * FROM inventory_items
		WHERE item_name = :item_name
		AND tenant_id = :tenant_id
		AND status = :status`

	params := map[string]interface{}{
		"item_name": name,
		"tenant_id": types.GetTenantID(ctx),
		"status":    types.StatusPublished,
	}

	rows, err := r.db.NamedQueryContext(ctx, query, params)
	if err != nil {
		return nil, fmt.Errorf("failed to query item by name: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, ierr.NewError("item not found").
			WithHintf("Item named %q was not found", name).
			Mark(ierr.ErrNotFound)
	}

	var i item.Item
	if err := rows.StructScan(&i); err != nil {
		return nil, fmt.Errorf("failed to scan item: %w", err)
	}
	return &i, nil
}

func (r *itemRepository) buildConditions(ctx context.Context, filter *types.ItemFilter) ([]string, map[string]interface{}) {
	conditions := []string{"tenant_id = :tenant_id", "status = :status"}
	params := map[string]interface{}{
		"tenant_id": types.GetTenantID(ctx),
		"status":    types.StatusPublished,
	}

	if filter == nil {
		return conditions, params
	}

	if filter.Search != "" {
		conditions = append(conditions, "(item_name ILIKE :search OR hsn_sac ILIKE :search)")
		params["search"] = "%" + filter.Search + "%"
	}
	if filter.ItemType != nil {
		conditions = append(conditions, "item_type = :item_type")
		params["item_type"] = *filter.ItemType
	}

	return conditions, params
}

func (r *itemRepository) List(ctx context.Context, filter *types.ItemFilter) ([]*item.Item, error) {
	conditions, params := r.buildConditions(ctx, filter)

	query := "SELECT * FROM inventory_items WHERE " + strings.Join(conditions, " AND ")
	query += fmt.Sprintf(" ORDER BY %s %s",
		sortColumn(filter.GetSort(), itemSortColumns, "item_name"),
		sortOrder(filter.GetOrder()),
	)
	if !filter.IsUnlimited() {
		query += " LIMIT :limit OFFSET :offset"
		params["limit"] = filter.GetLimit()
		params["offset"] = filter.GetOffset()
	}

	r.logger.Debugw("listing items", "tenant_id", types.GetTenantID(ctx))

	rows, err := r.db.NamedQueryContext(ctx, query, params)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	var items []*item.Item
	for rows.Next() {
		var i item.Item
		if err := rows.StructScan(&i); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, &i)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating item rows: %w", err)
	}
	return items, nil
}

func (r *itemRepository) Count(ctx context.Context, filter *types.ItemFilter) (int, error) {
	conditions, params := r.buildConditions(ctx, filter)
	query := "SELECT COUNT(*) FROM inventory_items WHERE " + strings.Join(conditions, " AND ")

	rows, err := r.db.NamedQueryContext(ctx, query, params)
	if err != nil {
		return 0, fmt.Errorf("failed to count items: %w", err)
	}
	defer rows.Close()

	var count int
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return 0, fmt.Errorf("failed to scan count: %w", err)
		}
	}
	return count, nil
}

func (r *itemRepository) ListAll(ctx context.Context, filter *types.ItemFilter) ([]*item.Item, error) {
	if filter == nil {
		filter = types.NewNoLimitItemFilter()
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewNoLimitQueryFilter()
	} else {
		filter.QueryFilter.Limit = nil
	}
	return r.List(ctx, filter)
}

func (r *itemRepository) Update(ctx context.Context, i *item.Item) error {
	i.Touch(ctx)

	// current_stock is deliberately absent: only AdjustStock moves it
	query := `
		UPDATE inventory_items SET
			item_name = :item_name,
			item_type = :item_type,
			unit = :unit,
			hsn_sac = :hsn_sac,
			sales_price = :sales_price,
			purchase_price = :purchase_price,
			opening_stock_qty = :opening_stock_qty,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id
		AND tenant_id = :tenant_id
		AND status = :status`

	r.logger.Debugw("updating item",
		"item_id", i.ID,
		"tenant_id", i.TenantID,
	)

	result, err := r.db.NamedExecContext(ctx, query, i)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ierr.NewError("item not found").
			WithHintf("Item with ID %s was not found", i.ID).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *itemRepository) Delete(ctx context.Context, id string) error {
	query := `
		UPDATE inventory_items
		SET status = :archived, updated_at = NOW(), updated_by = :updated_by
		WHERE id = :id
		AND tenant_id = :tenant_id
		AND status = :status`

	params := map[string]interface{}{
		"id":         id,
		"archived":   types.StatusArchived,
		"updated_by": types.GetUserID(ctx),
		"tenant_id":  types.GetTenantID(ctx),
		"status":     types.StatusPublished,
	}

	r.logger.Debugw("deleting item",
		"item_id", id,
		"tenant_id", types.GetTenantID(ctx),
	)

	result, err := r.db.NamedExecContext(ctx, query, params)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ierr.NewError("item not found").
			WithHintf("Item with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

// AdjustStock applies a signed delta to the item's stock counter in a
// single statement so concurrent movements cannot lose updates.
func (r *itemRepository) AdjustStock(ctx context.Context, id string, delta decimal.Decimal) error {
	query := `
		UPDATE inventory_items
		SET current_stock = current_stock + :delta,
			updated_at = NOW(),
			updated_by = :updated_by
		WHERE id = :id
		AND tenant_id = :tenant_id
		AND status = :status`

	params := map[string]interface{}{
		"id":         id,
		"delta":      delta,
		"updated_by": types.GetUserID(ctx),
		"tenant_id":  types.GetTenantID(ctx),
		"status":     types.StatusPublished,
	}

	r.logger.Debugw("adjusting item stock",
		"item_id", id,
		"delta", delta,
		"tenant_id", types.GetTenantID(ctx),
	)

	result, err := r.db.NamedExecContext(ctx, query, params)
	if err != nil {
		return fmt.Errorf("failed to adjust stock: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ierr.NewError("item not found").
			WithHintf("Item with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *itemRepository) CreateTransaction(ctx context.Context, txn *item.StockTransaction) error {
	query := `
		INSERT INTO stock_transactions (
			id, item_id, transaction_type, quantity, price_per_item,
			notes, transaction_date, recorded_by,
			tenant_id, status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :item_id, :transaction_type, :quantity, :price_per_item,
			:notes, :transaction_date, :recorded_by,
			:tenant_id, :status, :created_at, :updated_at, :created_by, :updated_by
		)`

	r.logger.Debugw("creating stock transaction",
		"transaction_id", txn.ID,
		"item_id", txn.ItemID,
		"type", txn.TransactionType,
		"quantity", txn.Quantity,
		"tenant_id", txn.TenantID,
	)

	if _, err := r.db.NamedExecContext(ctx, query, txn); err != nil {
		return fmt.Errorf("failed to insert stock transaction: %w", err)
	}
	return nil
}

func (r *itemRepository) buildTxnConditions(ctx context.Context, filter *types.StockTransactionFilter) ([]string, map[string]interface{}) {
	conditions := []string{"tenant_id = :tenant_id", "status = :status"}
	params := map[string]interface{}{
		"tenant_id": types.GetTenantID(ctx),
		"status":    types.StatusPublished,
	}

	if filter == nil {
		return conditions, params
	}

	if filter.ItemID != "" {
		conditions = append(conditions, "item_id = :item_id")
		params["item_id"] = filter.ItemID
	}
	if filter.TransactionType != nil {
		conditions = append(conditions, "transaction_type = :transaction_type")
		params["transaction_type"] = *filter.TransactionType
	}
	conditions = timeRangeConditions(filter.TimeRangeFilter, conditions, params)

	return conditions, params
}

func (r *itemRepository) ListTransactions(ctx context.Context, filter *types.StockTransactionFilter) ([]*item.StockTransaction, error) {
	conditions, params := r.buildTxnConditions(ctx, filter)

	query := "SELECT * FROM stock_transactions WHERE " + strings.Join(conditions, " AND ")
	query += fmt.Sprintf(" ORDER BY %s %s",
		sortColumn(filter.GetSort(), stockTxnSortColumns, "transaction_date"),
		sortOrder(filter.GetOrder()),
	)
	if !filter.IsUnlimited() {
		query += " LIMIT :limit OFFSET :offset"
		params["limit"] = filter.GetLimit()
		params["offset"] = filter.GetOffset()
	}

	r.logger.Debugw("listing stock transactions",
		"tenant_id", types.GetTenantID(ctx),
	)

	rows, err := r.db.NamedQueryContext(ctx, query, params)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock transactions: %w", err)
	}
	defer rows.Close()

	var txns []*item.StockTransaction
	for rows.Next() {
		var txn item.StockTransaction
		if err := rows.StructScan(&txn); err != nil {
			return nil, fmt.Errorf("failed to scan stock transaction: %w", err)
		}
		txns = append(txns, &txn)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stock transaction rows: %w", err)
	}
	return txns, nil
}

func (r *itemRepository) CountTransactions(ctx context.Context, filter *types.StockTransactionFilter) (int, error) {
	conditions, params := r.buildTxnConditions(ctx, filter)
	query := "SELECT COUNT(*) FROM stock_transactions WHERE " + strings.Join(conditions, " AND ")

	rows, err := r.db.NamedQueryContext(ctx, query, params)
	if err != nil {
		return 0, fmt.Errorf("failed to count stock transactions: %w", err)
	}
	defer rows.Close()

	var count int
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return 0, fmt.Errorf("failed to scan count: %w", err)
		}
	}
	return count, nil
}

func (r *itemRepository) HasTransactions(ctx context.Context, itemID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM stock_transactions
			WHERE item_id = :item_id
			AND tenant_id = :tenant_id
			AND status = :status
		)`

	params := map[string]interface{}{
		"item_id":   itemID,
		"tenant_id": types.GetTenantID(ctx),
		"status":    types.StatusPublished,
	}

	rows, err := r.db.NamedQueryContext(ctx, query, params)
	if err != nil {
		return false, fmt.Errorf("failed to query stock transactions: %w", err)
	}
	defer rows.Close()

	var exists bool
	if rows.Next() {
		if err := rows.Scan(&exists); err != nil {
			return false, fmt.Errorf("failed to scan exists: %w", err)
		}
	}
	return exists, nil
}

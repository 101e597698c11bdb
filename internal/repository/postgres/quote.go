package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/finbooks/finbooks/internal/domain/quote"
	ierr "github.com/finbooks/finbooks/internal/errors"
	"github.com/finbooks/finbooks/internal/logger"
	"github.com/finbooks/finbooks/internal/postgres"
	"github.com/finbooks/finbooks/internal/types"
)

type quoteRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

// NewQuoteRepository creates a new instance of quote repository
func NewQuoteRepository(db *postgres.DB, logger *logger.Logger) quote.Repository {
	return &quoteRepository{db: db, logger: logger}
}

var quoteSortColumns = map[string]string{
	"created_at":   "created_at",
	"quote_date":   "quote_date",
	"expiry_date":  "expiry_date",
	"quote_number": "quote_number",
}

func (r *quoteRepository) Create(ctx context.Context, q *quote.Quote) error {
	query := `
		INSERT INTO quotes (
			id, quote_number, quote_date, expiry_date, customer_id, customer_name,
			line_items, sub_total, tax_total, grand_total, notes,
			tenant_id, status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :quote_number, :quote_date, :expiry_date, :customer_id, :customer_name,
			:line_items, :sub_total, :tax_total, :grand_total, :notes,
			:tenant_id, :status, :created_at, :updated_at, :created_by, :updated_by
		)`

	r.logger.Debugw("creating quote",
		"quote_id", q.ID,
		"quote_number", q.QuoteNumber,
		"tenant_id", q.TenantID,
	)

	if _, err := r.db.NamedExecContext(ctx, query, q); err != nil {
		return fmt.Errorf("failed to insert quote: %w", err)
	}
	return nil
}

func (r *quoteRepository) Get(ctx context.Context, id string) (*quote.Quote, error) {
	query := `
		SELECT * FROM quotes
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
		return nil, fmt.Errorf("failed to query quote: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, ierr.NewError("quote not found").
			WithHintf("Quote with ID %s was not found", id).
			WithReportableDetails(map[string]interface{}{
				"quote_id": id,
			}).
			Mark(ierr.ErrNotFound)
	}

	var q quote.Quote
	if err := rows.StructScan(&q); err != nil {
		return nil, fmt.Errorf("failed to scan quote: %w", err)
	}
	return &q, nil
}

func (r *quoteRepository) buildConditions(ctx context.Context, filter *types.QuoteFilter) ([]string, map[string]interface{}) {
	conditions := []string{"tenant_id = :tenant_id", "status = :status"}
	params := map[string]interface{}{
		"tenant_id": types.GetTenantID(ctx),
		"status":    types.StatusPublished,
	}

	if filter == nil {
		return conditions, params
	}

	if filter.CustomerID != "" {
		conditions = append(conditions, "customer_id = :customer_id")
		params["customer_id"] = filter.CustomerID
	}
	conditions = timeRangeConditions(filter.TimeRangeFilter, conditions, params)

	return conditions, params
}

func (r *quoteRepository) List(ctx context.Context, filter *types.QuoteFilter) ([]*quote.Quote, error) {
	conditions, params := r.buildConditions(ctx, filter)

	query := "SELECT * FROM quotes WHERE " + strings.Join(conditions, " AND ")
	query += fmt.Sprintf(" ORDER BY %s %s",
		sortColumn(filter.GetSort(), quoteSortColumns, "created_at"),
		sortOrder(filter.GetOrder()),
	)
	if !filter.IsUnlimited() {
		query += " LIMIT :limit OFFSET :offset"
		params["limit"] = filter.GetLimit()
		params["offset"] = filter.GetOffset()
	}

	r.logger.Debugw("listing quotes", "tenant_id", types.GetTenantID(ctx))

	rows, err := r.db.NamedQueryContext(ctx, query, params)
	if err != nil {
		return nil, fmt.Errorf("failed to query quotes: %w", err)
	}
	defer rows.Close()

	var quotes []*quote.Quote
	for rows.Next() {
		var q quote.Quote
		if err := rows.StructScan(&q); err != nil {
			return nil, fmt.Errorf("failed to scan quote: %w", err)
		}
		quotes = append(quotes, &q)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating quote rows: %w", err)
	}
	return quotes, nil
}

func (r *quoteRepository) Count(ctx context.Context, filter *types.QuoteFilter) (int, error) {
	conditions, params := r.buildConditions(ctx, filter)
	query := "SELECT COUNT(*) FROM quotes WHERE " + strings.Join(conditions, " AND ")

	rows, err := r.db.NamedQueryContext(ctx, query, params)
	if err != nil {
		return 0, fmt.Errorf("failed to count quotes: %w", err)
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

func (r *quoteRepository) ListAll(ctx context.Context, filter *types.QuoteFilter) ([]*quote.Quote, error) {
	if filter == nil {
		filter = types.NewNoLimitQuoteFilter()
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewNoLimitQueryFilter()
	} else {
		filter.QueryFilter.Limit = nil
	}
	return r.List(ctx, filter)
}

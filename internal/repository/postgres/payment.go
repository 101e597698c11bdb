package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/finbooks/finbooks/internal/domain/payment"
	ierr "github.com/finbooks/finbooks/internal/errors"
	"github.com/finbooks/finbooks/internal/logger"
	"github.com/finbooks/finbooks/internal/postgres"
	"github.com/finbooks/finbooks/internal/types"
)

type paymentRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

// NewPaymentRepository creates a new instance of payment repository
func NewPaymentRepository(db *postgres.DB, logger *logger.Logger) payment.Repository {
	return &paymentRepository{db: db, logger: logger}
}

var paymentSortColumns = map[string]string{
	"created_at":   "created_at",
	"payment_date": "payment_date",
	"amount":       "amount",
}

func (r *paymentRepository) Create(ctx context.Context, p *payment.Payment) error {
	query := `
		INSERT INTO payments (
			id, customer_id, payment_date, amount, reference, applied_to,
			tenant_id, status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :customer_id, :payment_date, :amount, :reference, :applied_to,
			:tenant_id, :status, :created_at, :updated_at, :created_by, :updated_by
		)`

	r.logger.Debugw("creating payment",
		"payment_id", p.ID,
		"customer_id", p.CustomerID,
		"amount", p.Amount,
		"tenant_id", p.TenantID,
	)

	if _, err := r.db.NamedExecContext(ctx, query, p); err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}
	return nil
}

func (r *paymentRepository) Get(ctx context.Context, id string) (*payment.Payment, error) {
	query := `
		SELECT * FROM payments
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
		return nil, fmt.Errorf("failed to query payment: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, ierr.NewError("payment not found").
			WithHintf("Payment with ID %s was not found", id).
			WithReportableDetails(map[string]interface{}{
				"payment_id": id,
			}).
			Mark(ierr.ErrNotFound)
	}

	var p payment.Payment
	if err := rows.StructScan(&p); err != nil {
		return nil, fmt.Errorf("failed to scan payment: %w", err)
	}
	return &p, nil
}

func (r *paymentRepository) buildConditions(ctx context.Context, filter *types.PaymentFilter) ([]string, map[string]interface{}) {
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
	if filter.InvoiceID != "" {
		// applied_to is a JSONB list of {invoiceId, amountApplied}
		conditions = append(conditions, `applied_to @> :applied_invoice`)
		params["applied_invoice"] = fmt.Sprintf(`[{"invoiceId": %q}]`, filter.InvoiceID)
	}
	conditions = timeRangeConditions(filter.TimeRangeFilter, conditions, params)

	return conditions, params
}

func (r *paymentRepository) List(ctx context.Context, filter *types.PaymentFilter) ([]*payment.Payment, error) {
	conditions, params := r.buildConditions(ctx, filter)

	query := "SELECT * FROM payments WHERE " + strings.Join(conditions, " AND ")
	query += fmt.Sprintf(" ORDER BY %s %s",
		sortColumn(filter.GetSort(), paymentSortColumns, "created_at"),
		sortOrder(filter.GetOrder()),
	)
	if !filter.IsUnlimited() {
		query += " LIMIT :limit OFFSET :offset"
		params["limit"] = filter.GetLimit()
		params["offset"] = filter.GetOffset()
	}

	r.logger.Debugw("listing payments", "tenant_id", types.GetTenantID(ctx))

	rows, err := r.db.NamedQueryContext(ctx, query, params)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}
	defer rows.Close()

	var payments []*payment.Payment
	for rows.Next() {
		var p payment.Payment
		if err := rows.StructScan(&p); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, &p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payment rows: %w", err)
	}
	return payments, nil
}

func (r *paymentRepository) Count(ctx context.Context, filter *types.PaymentFilter) (int, error) {
	conditions, params := r.buildConditions(ctx, filter)
	query := "SELECT COUNT(*) FROM payments WHERE " + strings.Join(conditions, " AND ")

	rows, err := r.db.NamedQueryContext(ctx, query, params)
	if err != nil {
		return 0, fmt.Errorf("failed to count payments: %w", err)
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

func (r *paymentRepository) ListAll(ctx context.Context, filter *types.PaymentFilter) ([]*payment.Payment, error) {
	if filter == nil {
		filter = types.NewNoLimitPaymentFilter()
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewNoLimitQueryFilter()
	} else {
		filter.QueryFilter.Limit = nil
	}
	return r.List(ctx, filter)
}

// UpdateApplications persists the final allocation list for a payment.
// Only the allocator calls this, inside the recording transaction.
func (r *paymentRepository) UpdateApplications(ctx context.Context, id string, applications payment.Applications) error {
	query := `
		UPDATE payments
		SET applied_to = :applied_to, updated_at = NOW(), updated_by = :updated_by
		WHERE id = :id
		AND tenant_id = :tenant_id
		AND status = :status`

	params := map[string]interface{}{
		"id":         id,
		"applied_to": applications,
		"updated_by": types.GetUserID(ctx),
		"tenant_id":  types.GetTenantID(ctx),
		"status":     types.StatusPublished,
	}

	r.logger.Debugw("updating payment applications",
		"payment_id", id,
		"applications", len(applications),
		"tenant_id", types.GetTenantID(ctx),
	)

	result, err := r.db.NamedExecContext(ctx, query, params)
	if err != nil {
		return fmt.Errorf("failed to update payment applications: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ierr.NewError("payment not found").
			WithHintf("Payment with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

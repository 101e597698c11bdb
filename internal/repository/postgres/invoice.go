package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/finbooks/finbooks/internal/domain/invoice"
	ierr "github.com/finbooks/finbooks/internal/errors"
	"github.com/finbooks/finbooks/internal/logger"
	"github.com/finbooks/finbooks/internal/postgres"
	"github.com/finbooks/finbooks/internal/types"
	"github.com/shopspring/decimal"
)

type invoiceRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

// NewInvoiceRepository creates a new instance of sales invoice repository
func NewInvoiceRepository(db *postgres.DB, logger *logger.Logger) invoice.Repository {
	return &invoiceRepository{db: db, logger: logger}
}

var invoiceSortColumns = map[string]string{
	"created_at":     "created_at",
	"updated_at":     "updated_at",
	"invoice_date":   "invoice_date",
	"due_date":       "due_date",
	"invoice_number": "invoice_number",
	"grand_total":    "grand_total",
}

func (r *invoiceRepository) Create(ctx context.Context, inv *invoice.Invoice) error {
	query := `
		INSERT INTO sales_invoices (
			id, invoice_number, invoice_date, due_date,
			customer_id, customer_name, customer_gstin, customer_address, ship_to_address,
			line_items, sub_total, discount_type, discount_value, discount_amount_calculated,
			taxable_amount, cgst_amount, sgst_amount, igst_amount, cess_amount, tax_total,
			grand_total, amount_paid, balance_due,
			notes, terms_and_conditions, currency, invoice_status, version,
			tenant_id, status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :invoice_number, :invoice_date, :due_date,
			:customer_id, :customer_name, :customer_gstin, :customer_address, :ship_to_address,
			:line_items, :sub_total, :discount_type, :discount_value, :discount_amount_calculated,
			:taxable_amount, :cgst_amount, :sgst_amount, :igst_amount, :cess_amount, :tax_total,
			:grand_total, :amount_paid, :balance_due,
			:notes, :terms_and_conditions, :currency, :invoice_status, :version,
			:tenant_id, :status, :created_at, :updated_at, :created_by, :updated_by
		)`

	r.logger.Debugw("creating invoice",
		"invoice_id", inv.ID,
		"invoice_number", inv.InvoiceNumber,
		"tenant_id", inv.TenantID,
	)

	if _, err := r.db.NamedExecContext(ctx, query, inv); err != nil {
		return fmt.Errorf("failed to insert invoice: %w", err)
	}
	return nil
}

func (r *invoiceRepository) Get(ctx context.Context, id string) (*invoice.Invoice, error) {
	query := `
		SELECT * FROM sales_invoices
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
		return nil, fmt.Errorf("failed to query invoice: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, ierr.NewError("invoice not found").
			WithHintf("Invoice with ID %s was not found", id).
			WithReportableDetails(map[string]interface{}{
				"invoice_id": id,
			}).
			Mark(ierr.ErrNotFound)
	}

	var inv invoice.Invoice
	if err := rows.StructScan(&inv); err != nil {
		return nil, fmt.Errorf("failed to scan invoice: %w", err)
	}
	return &inv, nil
}

func (r *invoiceRepository) buildConditions(ctx context.Context, filter *types.InvoiceFilter) ([]string, map[string]interface{}) {
	conditions := []string{"tenant_id = :tenant_id", "status = :status"}
	params := map[string]interface{}{
		"tenant_id": types.GetTenantID(ctx),
		"status":    types.StatusPublished,
	}

	if filter == nil {
		return conditions, params
	}

	if len(filter.InvoiceIDs) > 0 {
		conditions = append(conditions, namedInClause("id", "invoice_id", filter.InvoiceIDs, params))
	}
	if filter.CustomerID != "" {
		conditions = append(conditions, "customer_id = :customer_id")
		params["customer_id"] = filter.CustomerID
	}
	if len(filter.InvoiceStatus) > 0 {
		statuses := make([]string, len(filter.InvoiceStatus))
		for i, s := range filter.InvoiceStatus {
			statuses[i] = string(s)
		}
		conditions = append(conditions, namedInClause("invoice_status", "invoice_status", statuses, params))
	}
	if filter.Search != "" {
		conditions = append(conditions, "(invoice_number ILIKE :search OR customer_name ILIKE :search)")
		params["search"] = "%" + filter.Search + "%"
	}
	conditions = timeRangeConditions(filter.TimeRangeFilter, conditions, params)

	return conditions, params
}

func (r *invoiceRepository) List(ctx context.Context, filter *types.InvoiceFilter) ([]*invoice.Invoice, error) {
	conditions, params := r.buildConditions(ctx, filter)

	query := "SELECT * FROM sales_invoices WHERE " + strings.Join(conditions, " AND ")
	query += fmt.Sprintf(" ORDER BY %s %s",
		sortColumn(filter.GetSort(), invoiceSortColumns, "invoice_date"),
		sortOrder(filter.GetOrder()),
	)
	if !filter.IsUnlimited() {
		query += " LIMIT :limit OFFSET :offset"
		params["limit"] = filter.GetLimit()
		params["offset"] = filter.GetOffset()
	}

	r.logger.Debugw("listing invoices", "tenant_id", types.GetTenantID(ctx))

	rows, err := r.db.NamedQueryContext(ctx, query, params)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoices: %w", err)
	}
	defer rows.Close()

	var invoices []*invoice.Invoice
	for rows.Next() {
		var inv invoice.Invoice
		if err := rows.StructScan(&inv); err != nil {
			return nil, fmt.Errorf("failed to scan invoice: %w", err)
		}
		invoices = append(invoices, &inv)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invoice rows: %w", err)
	}
	return invoices, nil
}

func (r *invoiceRepository) Count(ctx context.Context, filter *types.InvoiceFilter) (int, error) {
	conditions, params := r.buildConditions(ctx, filter)
	query := "SELECT COUNT(*) FROM sales_invoices WHERE " + strings.Join(conditions, " AND ")

	rows, err := r.db.NamedQueryContext(ctx, query, params)
	if err != nil {
		return 0, fmt.Errorf("failed to count invoices: %w", err)
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

func (r *invoiceRepository) ListAll(ctx context.Context, filter *types.InvoiceFilter) ([]*invoice.Invoice, error) {
	if filter == nil {
		filter = types.NewNoLimitInvoiceFilter()
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewNoLimitQueryFilter()
	} else {
		filter.QueryFilter.Limit = nil
	}
	return r.List(ctx, filter)
}

func (r *invoiceRepository) Update(ctx context.Context, inv *invoice.Invoice) error {
	inv.Touch(ctx)

	// version moves on every full update so concurrent payment status
	// writes against the old revision fail instead of clobbering it
	query := `
		UPDATE sales_invoices SET
			invoice_number = :invoice_number,
			invoice_date = :invoice_date,
			due_date = :due_date,
			customer_id = :customer_id,
			customer_name = :customer_name,
			customer_gstin = :customer_gstin,
			customer_address = :customer_address,
			ship_to_address = :ship_to_address,
			line_items = :line_items,
			sub_total = :sub_total,
			discount_type = :discount_type,
			discount_value = :discount_value,
			discount_amount_calculated = :discount_amount_calculated,
			taxable_amount = :taxable_amount,
			cgst_amount = :cgst_amount,
			sgst_amount = :sgst_amount,
			igst_amount = :igst_amount,
			cess_amount = :cess_amount,
			tax_total = :tax_total,
			grand_total = :grand_total,
			amount_paid = :amount_paid,
			balance_due = :balance_due,
			notes = :notes,
			terms_and_conditions = :terms_and_conditions,
			currency = :currency,
			invoice_status = :invoice_status,
			version = version + 1,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id
		AND tenant_id = :tenant_id
		AND status = :status`

	r.logger.Debugw("updating invoice",
		"invoice_id", inv.ID,
		"invoice_number", inv.InvoiceNumber,
		"tenant_id", inv.TenantID,
	)

	result, err := r.db.NamedExecContext(ctx, query, inv)
	if err != nil {
		return fmt.Errorf("failed to update invoice: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ierr.NewError("invoice not found").
			WithHintf("Invoice with ID %s was not found", inv.ID).
			Mark(ierr.ErrNotFound)
	}
	inv.Version++
	return nil
}

func (r *invoiceRepository) Delete(ctx context.Context, id string) error {
	query := `
		UPDATE sales_invoices
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

	r.logger.Debugw("deleting invoice",
		"invoice_id", id,
		"tenant_id", types.GetTenantID(ctx),
	)

	result, err := r.db.NamedExecContext(ctx, query, params)
	if err != nil {
		return fmt.Errorf("failed to delete invoice: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ierr.NewError("invoice not found").
			WithHintf("Invoice with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

// UpdatePaymentStatus writes the payment-derived fields only when the
// stored row still carries the expected version. Zero matched rows with
// the row still present means another writer got there first.
func (r *invoiceRepository) UpdatePaymentStatus(ctx context.Context, id string, status types.InvoiceStatus, amountPaid, balanceDue decimal.Decimal, version int) error {
	query := `
		UPDATE sales_invoices SET
			invoice_status = :invoice_status,
			amount_paid = :amount_paid,
			balance_due = :balance_due,
			version = version + 1,
			updated_at = NOW(),
			updated_by = :updated_by
		WHERE id = :id
		AND version = :version
		AND tenant_id = :tenant_id
		AND status = :status`

	params := map[string]interface{}{
		"id":             id,
		"invoice_status": status,
		"amount_paid":    amountPaid,
		"balance_due":    balanceDue,
		"version":        version,
		"updated_by":     types.GetUserID(ctx),
		"tenant_id":      types.GetTenantID(ctx),
		"status":         types.StatusPublished,
	}

	r.logger.Debugw("updating invoice payment status",
		"invoice_id", id,
		"invoice_status", status,
		"amount_paid", amountPaid,
		"version", version,
		"tenant_id", types.GetTenantID(ctx),
	)

	result, err := r.db.NamedExecContext(ctx, query, params)
	if err != nil {
		return fmt.Errorf("failed to update invoice payment status: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ierr.NewError("invoice version conflict").
			WithHintf("Invoice %s was modified concurrently, retry the payment update", id).
			WithReportableDetails(map[string]interface{}{
				"invoice_id": id,
				"version":    version,
			}).
			Mark(ierr.ErrVersionConflict)
	}
	return nil
}

package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/finbooks/finbooks/internal/domain/customer"
	ierr "github.com/finbooks/finbooks/internal/errors"
	"github.com/finbooks/finbooks/internal/logger"
	"github.com/finbooks/finbooks/internal/postgres"
	"github.com/finbooks/finbooks/internal/types"
)

type customerRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

// NewCustomerRepository creates a new instance of customer repository
func NewCustomerRepository(db *postgres.DB, logger *logger.Logger) customer.Repository {
	return &customerRepository{db: db, logger: logger}
}

var customerSortColumns = map[string]string{
	"created_at":   "created_at",
	"updated_at":   "updated_at",
	"display_name": "display_name",
	"email":        "email",
}

func (r *customerRepository) Create(ctx context.Context, c *customer.Customer) error {
	query := `
		INSERT INTO customers (
			id, display_name, company_name, email, phone, gstin, pan, gst_registered,
			billing_address, shipping_address, payment_terms, notes,
			tenant_id, status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :display_name, :company_name, :email, :phone, :gstin, :pan, :gst_registered,
			:billing_address, :shipping_address, :payment_terms, :notes,
			:tenant_id, :status, :created_at, :updated_at, :created_by, :updated_by
		)`

	r.logger.Debugw("creating customer",
		"customer_id", c.ID,
		"tenant_id", c.TenantID,
	)

	if _, err := r.db.NamedExecContext(ctx, query, c); err != nil {
		return fmt.Errorf("failed to insert customer: %w", err)
	}
	return nil
}

func (r *customerRepository) Get(ctx context.Context, id string) (*customer.Customer, error) {
	query := `
		SELECT * FROM customers
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
		return nil, fmt.Errorf("failed to query customer: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, ierr.NewError("customer not found").
			WithHintf("Customer with ID %s was not found", id).
			WithReportableDetails(map[string]interface{}{
				"customer_id": id,
			}).
			Mark(ierr.ErrNotFound)
	}

	var c customer.Customer
	if err := rows.StructScan(&c); err != nil {
		return nil, fmt.Errorf("failed to scan customer: %w", err)
	}
	return &c, nil
}

func (r *customerRepository) buildConditions(ctx context.Context, filter *types.CustomerFilter) ([]string, map[string]interface{}) {
	conditions := []string{"tenant_id = :tenant_id", "status = :status"}
	params := map[string]interface{}{
		"tenant_id": types.GetTenantID(ctx),
		"status":    types.StatusPublished,
	}

	if filter == nil {
		return conditions, params
	}

	if len(filter.CustomerIDs) > 0 {
		conditions = append(conditions, namedInClause("id", "customer_id", filter.CustomerIDs, params))
	}
	if filter.Search != "" {
		conditions = append(conditions, "(display_name ILIKE :search OR company_name ILIKE :search OR email ILIKE :search)")
		params["search"] = "%" + filter.Search + "%"
	}
	if filter.GSTRegistered != nil {
		conditions = append(conditions, "gst_registered = :gst_registered")
		params["gst_registered"] = *filter.GSTRegistered
	}
	conditions = timeRangeConditions(filter.TimeRangeFilter, conditions, params)

	return conditions, params
}

func (r *customerRepository) List(ctx context.Context, filter *types.CustomerFilter) ([]*customer.Customer, error) {
	conditions, params := r.buildConditions(ctx, filter)

	query := "SELECT * FROM customers WHERE " + strings.Join(conditions, " AND ")
	query += fmt.Sprintf(" ORDER BY %s %s",
		sortColumn(filter.GetSort(), customerSortColumns, "created_at"),
		sortOrder(filter.GetOrder()),
	)
	if !filter.IsUnlimited() {
		query += " LIMIT :limit OFFSET :offset"
		params["limit"] = filter.GetLimit()
		params["offset"] = filter.GetOffset()
	}

	r.logger.Debugw("listing customers", "tenant_id", types.GetTenantID(ctx))

	rows, err := r.db.NamedQueryContext(ctx, query, params)
	if err != nil {
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	var customers []*customer.Customer
	for rows.Next() {
		var c customer.Customer
		if err := rows.StructScan(&c); err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, &c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating customer rows: %w", err)
	}
	return customers, nil
}

func (r *customerRepository) Count(ctx context.Context, filter *types.CustomerFilter) (int, error) {
	conditions, params := r.buildConditions(ctx, filter)
	query := "SELECT COUNT(*) FROM customers WHERE " + strings.Join(conditions, " AND ")

	rows, err := r.db.NamedQueryContext(ctx, query, params)
	if err != nil {
		return 0, fmt.Errorf("failed to count customers: %w", err)
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

func (r *customerRepository) ListAll(ctx context.Context, filter *types.CustomerFilter) ([]*customer.Customer, error) {
	if filter == nil {
		filter = types.NewNoLimitCustomerFilter()
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewNoLimitQueryFilter()
	} else {
		filter.QueryFilter.Limit = nil
	}
	return r.List(ctx, filter)
}

func (r *customerRepository) Update(ctx context.Context, c *customer.Customer) error {
	c.Touch(ctx)

	query := `
		UPDATE customers SET
			display_name = :display_name,
			company_name = :company_name,
			email = :email,
			phone = :phone,
			gstin = :gstin,
			pan = :pan,
			gst_registered = :gst_registered,
			billing_address = :billing_address,
			shipping_address = :shipping_address,
			payment_terms = :payment_terms,
			notes = :notes,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id
		AND tenant_id = :tenant_id
		AND status = :status`

	r.logger.Debugw("updating customer",
		"customer_id", c.ID,
		"tenant_id", c.TenantID,
	)

	result, err := r.db.NamedExecContext(ctx, query, c)
	if err != nil {
		return fmt.Errorf("failed to update customer: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ierr.NewError("customer not found").
			WithHintf("Customer with ID %s was not found", c.ID).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *customerRepository) Delete(ctx context.Context, id string) error {
	query := `
		UPDATE customers
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

	r.logger.Debugw("deleting customer",
		"customer_id", id,
		"tenant_id", types.GetTenantID(ctx),
	)

	result, err := r.db.NamedExecContext(ctx, query, params)
	if err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ierr.NewError("customer not found").
			WithHintf("Customer with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/finbooks/finbooks/internal/domain/vendor"
	ierr "github.com/finbooks/finbooks/internal/errors"
	"github.com/finbooks/finbooks/internal/logger"
	"github.com/finbooks/finbooks/internal/postgres"
	"github.com/finbooks/finbooks/internal/types"
)

type vendorRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

// NewVendorRepository creates a new instance of vendor repository
func NewVendorRepository(db *postgres.DB, logger *logger.Logger) vendor.Repository {
	return &vendorRepository{db: db, logger: logger}
}

var vendorSortColumns = map[string]string{
	"created_at":   "created_at",
	"updated_at":   "updated_at",
	"display_name": "display_name",
	"email":        "email",
}

func (r *vendorRepository) Create(ctx context.Context, v *vendor.Vendor) error {
	query := `
		INSERT INTO vendors (
			id, display_name, company_name, email, phone, gstin, pan, gst_registered,
			billing_address, shipping_address, payment_terms, notes,
			tenant_id, status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :display_name, :company_name, :email, :phone, :gstin, :pan, :gst_registered,
			:billing_address, :shipping_address, :payment_terms, :notes,
			:tenant_id, :status, :created_at, :updated_at, :created_by, :updated_by
		)`

	r.logger.Debugw("creating vendor",
		"vendor_id", v.ID,
		"tenant_id", v.TenantID,
	)

	if _, err := r.db.NamedExecContext(ctx, query, v); err != nil {
		return fmt.Errorf("failed to insert vendor: %w", err)
	}
	return nil
}

func (r *vendorRepository) Get(ctx context.Context, id string) (*vendor.Vendor, error) {
	query := `
		SELECT * FROM vendors
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
		return nil, fmt.Errorf("failed to query vendor: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, ierr.NewError("vendor not found").
			WithHintf("Vendor with ID %s was not found", id).
			WithReportableDetails(map[string]interface{}{
				"vendor_id": id,
			}).
			Mark(ierr.ErrNotFound)
	}

	var v vendor.Vendor
	if err := rows.StructScan(&v); err != nil {
		return nil, fmt.Errorf("failed to scan vendor: %w", err)
	}
	return &v, nil
}

func (r *vendorRepository) buildConditions(ctx context.Context, filter *types.VendorFilter) ([]string, map[string]interface{}) {
	conditions := []string{"tenant_id = :tenant_id", "status = :status"}
	params := map[string]interface{}{
		"tenant_id": types.GetTenantID(ctx),
		"status":    types.StatusPublished,
	}

	if filter == nil {
		return conditions, params
	}

	if len(filter.VendorIDs) > 0 {
		conditions = append(conditions, namedInClause("id", "vendor_id", filter.VendorIDs, params))
	}
	if filter.Search != "" {
		conditions = append(conditions, "(display_name ILIKE :search OR company_name ILIKE :search OR email ILIKE :search)")
		params["search"] = "%" + filter.Search + "%"
	}
	conditions = timeRangeConditions(filter.TimeRangeFilter, conditions, params)

	return conditions, params
}

func (r *vendorRepository) List(ctx context.Context, filter *types.VendorFilter) ([]*vendor.Vendor, error) {
	conditions, params := r.buildConditions(ctx, filter)

	query := "SELECT * FROM vendors WHERE " + strings.Join(conditions, " AND ")
	query += fmt.Sprintf(" ORDER BY %s %s",
		sortColumn(filter.GetSort(), vendorSortColumns, "created_at"),
		sortOrder(filter.GetOrder()),
	)
	if !filter.IsUnlimited() {
		query += " LIMIT :limit OFFSET :offset"
		params["limit"] = filter.GetLimit()
		params["offset"] = filter.GetOffset()
	}

	r.logger.Debugw("listing vendors", "tenant_id", types.GetTenantID(ctx))

	rows, err := r.db.NamedQueryContext(ctx, query, params)
	if err != nil {
		return nil, fmt.Errorf("failed to query vendors: %w", err)
	}
	defer rows.Close()

	var vendors []*vendor.Vendor
	for rows.Next() {
		var v vendor.Vendor
		if err := rows.StructScan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan vendor: %w", err)
		}
		vendors = append(vendors, &v)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating vendor rows: %w", err)
	}
	return vendors, nil
}

func (r *vendorRepository) Count(ctx context.Context, filter *types.VendorFilter) (int, error) {
	conditions, params := r.buildConditions(ctx, filter)
	query := "SELECT COUNT(*) FROM vendors WHERE " + strings.Join(conditions, " AND ")

	rows, err := r.db.NamedQueryContext(ctx, query, params)
	if err != nil {
		return 0, fmt.Errorf("failed to count vendors: %w", err)
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

func (r *vendorRepository) ListAll(ctx context.Context, filter *types.VendorFilter) ([]*vendor.Vendor, error) {
	if filter == nil {
		filter = types.NewNoLimitVendorFilter()
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewNoLimitQueryFilter()
	} else {
		filter.QueryFilter.Limit = nil
	}
	return r.List(ctx, filter)
}

func (r *vendorRepository) Update(ctx context.Context, v *vendor.Vendor) error {
	v.Touch(ctx)

	query := `
		UPDATE vendors SET
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

	r.logger.Debugw("updating vendor",
		"vendor_id", v.ID,
		"tenant_id", v.TenantID,
	)

	result, err := r.db.NamedExecContext(ctx, query, v)
	if err != nil {
		return fmt.Errorf("failed to update vendor: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ierr.NewError("vendor not found").
			WithHintf("Vendor with ID %s was not found", v.ID).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *vendorRepository) Delete(ctx context.Context, id string) error {
	query := `
		UPDATE vendors
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

	r.logger.Debugw("deleting vendor",
		"vendor_id", id,
		"tenant_id", types.GetTenantID(ctx),
	)

	result, err := r.db.NamedExecContext(ctx, query, params)
	if err != nil {
		return fmt.Errorf("failed to delete vendor: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ierr.NewError("vendor not found").
			WithHintf("Vendor with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/finbooks/finbooks/internal/domain/taxrate"
	ierr "github.com/finbooks/finbooks/internal/errors"
	"github.com/finbooks/finbooks/internal/logger"
	"github.com/finbooks/finbooks/internal/postgres"
	"github.com/finbooks/finbooks/internal/types"
)

type taxRateRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

// NewTaxRateRepository creates a new instance of tax rate repository
func NewTaxRateRepository(db *postgres.DB, logger *logger.Logger) taxrate.Repository {
	return &taxRateRepository{db: db, logger: logger}
}

var taxRateSortColumns = map[string]string{
	"created_at": "created_at",
	"updated_at": "updated_at",
	"tax_name":   "tax_name",
	"tax_rate":   "tax_rate",
}

func (r *taxRateRepository) Create(ctx context.Context, t *taxrate.TaxRate) error {
	query := `
		INSERT INTO tax_rates (
			id, tax_type, tax_name, tax_rate, nature_of_payment, section,
			rate_no_pan, threshold, effective_date,
			tenant_id, status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :tax_type, :tax_name, :tax_rate, :nature_of_payment, :section,
			:rate_no_pan, :threshold, :effective_date,
			:tenant_id, :status, :created_at, :updated_at, :created_by, :updated_by
		)`

	r.logger.Debugw("creating tax rate",
		"tax_rate_id", t.ID,
		"tax_type", t.TaxType,
		"tenant_id", t.TenantID,
	)

	if _, err := r.db.NamedExecContext(ctx, query, t); err != nil {
		return fmt.Errorf("failed to insert tax rate: %w", err)
	}
	return nil
}

func (r *taxRateRepository) Get(ctx context.Context, id string) (*taxrate.TaxRate, error) {
	query := `
		SELECT * FROM tax_rates
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
		return nil, fmt.Errorf("failed to query tax rate: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, ierr.NewError("tax rate not found").
			WithHintf("Tax rate with ID %s was not found", id).
			WithReportableDetails(map[string]interface{}{
				"tax_rate_id": id,
			}).
			Mark(ierr.ErrNotFound)
	}

	var t taxrate.TaxRate
	if err := rows.StructScan(&t); err != nil {
		return nil, fmt.Errorf("failed to scan tax rate: %w", err)
	}
	return &t, nil
}

func (r *taxRateRepository) buildConditions(ctx context.Context, filter *types.TaxRateFilter) ([]string, map[string]interface{}) {
	conditions := []string{"tenant_id = :tenant_id", "status = :status"}
	params := map[string]interface{}{
		"tenant_id": types.GetTenantID(ctx),
		"status":    types.StatusPublished,
	}

	if filter == nil {
		return conditions, params
	}

	if filter.TaxType != nil {
		conditions = append(conditions, "tax_type = :tax_type")
		params["tax_type"] = *filter.TaxType
	}

	return conditions, params
}

func (r *taxRateRepository) List(ctx context.Context, filter *types.TaxRateFilter) ([]*taxrate.TaxRate, error) {
	conditions, params := r.buildConditions(ctx, filter)

	query := "SELECT * FROM tax_rates WHERE " + strings.Join(conditions, " AND ")
	query += fmt.Sprintf(" ORDER BY %s %s",
		sortColumn(filter.GetSort(), taxRateSortColumns, "created_at"),
		sortOrder(filter.GetOrder()),
	)
	if !filter.IsUnlimited() {
		query += " LIMIT :limit OFFSET :offset"
		params["limit"] = filter.GetLimit()
		params["offset"] = filter.GetOffset()
	}

	r.logger.Debugw("listing tax rates", "tenant_id", types.GetTenantID(ctx))

	rows, err := r.db.NamedQueryContext(ctx, query, params)
	if err != nil {
		return nil, fmt.Errorf("failed to query tax rates: %w", err)
	}
	defer rows.Close()

	var rates []*taxrate.TaxRate
	for rows.Next() {
		var t taxrate.TaxRate
		if err := rows.StructScan(&t); err != nil {
			return nil, fmt.Errorf("failed to scan tax rate: %w", err)
		}
		rates = append(rates, &t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tax rate rows: %w", err)
	}
	return rates, nil
}

func (r *taxRateRepository) Count(ctx context.Context, filter *types.TaxRateFilter) (int, error) {
	conditions, params := r.buildConditions(ctx, filter)
	query := "SELECT COUNT(*) FROM tax_rates WHERE " + strings.Join(conditions, " AND ")

	rows, err := r.db.NamedQueryContext(ctx, query, params)
	if err != nil {
		return 0, fmt.Errorf("failed to count tax rates: %w", err)
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

func (r *taxRateRepository) ListAll(ctx context.Context, filter *types.TaxRateFilter) ([]*taxrate.TaxRate, error) {
	if filter == nil {
		filter = types.NewNoLimitTaxRateFilter()
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewNoLimitQueryFilter()
	} else {
		filter.QueryFilter.Limit = nil
	}
	return r.List(ctx, filter)
}

func (r *taxRateRepository) Update(ctx context.Context, t *taxrate.TaxRate) error {
	t.Touch(ctx)

	query := `
		UPDATE tax_rates SET
			tax_type = :tax_type,
			tax_name = :tax_name,
			tax_rate = :tax_rate,
			nature_of_payment = :nature_of_payment,
			section = :section,
			rate_no_pan = :rate_no_pan,
			threshold = :threshold,
			effective_date = :effective_date,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id
		AND tenant_id = :tenant_id
		AND status = :status`

	r.logger.Debugw("updating tax rate",
		"tax_rate_id", t.ID,
		"tenant_id", t.TenantID,
	)

	result, err := r.db.NamedExecContext(ctx, query, t)
	if err != nil {
		return fmt.Errorf("failed to update tax rate: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ierr.NewError("tax rate not found").
			WithHintf("Tax rate with ID %s was not found", t.ID).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *taxRateRepository) Delete(ctx context.Context, id string) error {
	query := `
		UPDATE tax_rates
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

	r.logger.Debugw("deleting tax rate",
		"tax_rate_id", id,
		"tenant_id", types.GetTenantID(ctx),
	)

	result, err := r.db.NamedExecContext(ctx, query, params)
	if err != nil {
		return fmt.Errorf("failed to delete tax rate: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ierr.NewError("tax rate not found").
			WithHintf("Tax rate with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

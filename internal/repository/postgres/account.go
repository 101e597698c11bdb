package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/finbooks/finbooks/internal/domain/account"
	ierr "github.com/finbooks/finbooks/internal/errors"
	"github.com/finbooks/finbooks/internal/logger"
	"github.com/finbooks/finbooks/internal/postgres"
	"github.com/finbooks/finbooks/internal/types"
)

type accountRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

// NewAccountRepository creates a new instance of chart of accounts repository
func NewAccountRepository(db *postgres.DB, logger *logger.Logger) account.Repository {
	return &accountRepository{db: db, logger: logger}
}

var accountSortColumns = map[string]string{
	"created_at": "created_at",
	"updated_at": "updated_at",
	"name":       "name",
	"code":       "code",
}

func (r *accountRepository) Create(ctx context.Context, a *account.Account) error {
	query := `
		INSERT INTO chart_of_accounts (
			id, name, account_type, code, parent_category, is_sub_account,
			opening_balance, balance_as_of, reconcile, dashboard_watch, is_favorite,
			tenant_id, status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :name, :account_type, :code, :parent_category, :is_sub_account,
			:opening_balance, :balance_as_of, :reconcile, :dashboard_watch, :is_favorite,
			:tenant_id, :status, :created_at, :updated_at, :created_by, :updated_by
		)`

	r.logger.Debugw("creating account",
		"account_id", a.ID,
		"tenant_id", a.TenantID,
	)

	if _, err := r.db.NamedExecContext(ctx, query, a); err != nil {
		return fmt.Errorf("failed to insert account: %w", err)
	}
	return nil
}

func (r *accountRepository) Get(ctx context.Context, id string) (*account.Account, error) {
	query := `
		SELECT * FROM chart_of_accounts
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
		return nil, fmt.Errorf("failed to query account: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, ierr.NewError("account not found").
			WithHintf("Account with ID %s was not found", id).
			WithReportableDetails(map[string]interface{}{
				"account_id": id,
			}).
			Mark(ierr.ErrNotFound)
	}

	var a account.Account
	if err := rows.StructScan(&a); err != nil {
		return nil, fmt.Errorf("failed to scan account: %w", err)
	}
	return &a, nil
}

func (r *accountRepository) buildConditions(ctx context.Context, filter *types.AccountFilter) ([]string, map[string]interface{}) {
	conditions := []string{"tenant_id = :tenant_id", "status = :status"}
	params := map[string]interface{}{
		"tenant_id": types.GetTenantID(ctx),
		"status":    types.StatusPublished,
	}

	if filter == nil {
		return conditions, params
	}

	if filter.Search != "" {
		conditions = append(conditions, "(name ILIKE :search OR code ILIKE :search)")
		params["search"] = "%" + filter.Search + "%"
	}
	if filter.ParentCategory != "" {
		conditions = append(conditions, "parent_category = :parent_category")
		params["parent_category"] = filter.ParentCategory
	}
	if filter.AccountType != "" {
		conditions = append(conditions, "account_type = :account_type")
		params["account_type"] = filter.AccountType
	}

	return conditions, params
}

func (r *accountRepository) List(ctx context.Context, filter *types.AccountFilter) ([]*account.Account, error) {
	conditions, params := r.buildConditions(ctx, filter)

	query := "SELECT * FROM chart_of_accounts WHERE " + strings.Join(conditions, " AND ")
	query += fmt.Sprintf(" ORDER BY %s %s",
		sortColumn(filter.GetSort(), accountSortColumns, "created_at"),
		sortOrder(filter.GetOrder()),
	)
	if !filter.IsUnlimited() {
		query += " LIMIT :limit OFFSET :offset"
		params["limit"] = filter.GetLimit()
		params["offset"] = filter.GetOffset()
	}

	r.logger.Debugw("listing accounts", "tenant_id", types.GetTenantID(ctx))

	rows, err := r.db.NamedQueryContext(ctx, query, params)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*account.Account
	for rows.Next() {
		var a account.Account
		if err := rows.StructScan(&a); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, &a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}

func (r *accountRepository) Count(ctx context.Context, filter *types.AccountFilter) (int, error) {
	conditions, params := r.buildConditions(ctx, filter)
	query := "SELECT COUNT(*) FROM chart_of_accounts WHERE " + strings.Join(conditions, " AND ")

	rows, err := r.db.NamedQueryContext(ctx, query, params)
	if err != nil {
		return 0, fmt.Errorf("failed to count accounts: %w", err)
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

func (r *accountRepository) ListAll(ctx context.Context, filter *types.AccountFilter) ([]*account.Account, error) {
	if filter == nil {
		filter = types.NewNoLimitAccountFilter()
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewNoLimitQueryFilter()
	} else {
		filter.QueryFilter.Limit = nil
	}
	return r.List(ctx, filter)
}

func (r *accountRepository) Update(ctx context.Context, a *account.Account) error {
	a.Touch(ctx)

	query := `
		UPDATE chart_of_accounts SET
			name = :name,
			account_type = :account_type,
			code = :code,
			parent_category = :parent_category,
			is_sub_account = :is_sub_account,
			opening_balance = :opening_balance,
			balance_as_of = :balance_as_of,
			reconcile = :reconcile,
			dashboard_watch = :dashboard_watch,
			is_favorite = :is_favorite,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id
		AND tenant_id = :tenant_id
		AND status = :status`

	r.logger.Debugw("updating account",
		"account_id", a.ID,
		"tenant_id", a.TenantID,
	)

	result, err := r.db.NamedExecContext(ctx, query, a)
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ierr.NewError("account not found").
			WithHintf("Account with ID %s was not found", a.ID).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *accountRepository) Delete(ctx context.Context, id string) error {
	query := `
		UPDATE chart_of_accounts
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

	r.logger.Debugw("deleting account",
		"account_id", id,
		"tenant_id", types.GetTenantID(ctx),
	)

	result, err := r.db.NamedExecContext(ctx, query, params)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ierr.NewError("account not found").
			WithHintf("Account with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

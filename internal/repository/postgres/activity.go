package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/finbooks/finbooks/internal/domain/activity"
	"github.com/finbooks/finbooks/internal/logger"
	"github.com/finbooks/finbooks/internal/postgres"
	"github.com/finbooks/finbooks/internal/types"
)

type activityRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

// NewActivityRepository creates a new instance of activity log repository
func NewActivityRepository(db *postgres.DB, logger *logger.Logger) activity.Repository {
	return &activityRepository{db: db, logger: logger}
}

var activitySortColumns = map[string]string{
	"created_at": "created_at",
	"timestamp":  "timestamp",
}

func (r *activityRepository) Create(ctx context.Context, entry *activity.Entry) error {
	query := `
		INSERT INTO activity_log (
			id, timestamp, action_type, user_name, details, document_id, collection_name,
			tenant_id, status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :timestamp, :action_type, :user_name, :details, :document_id, :collection_name,
			:tenant_id, :status, :created_at, :updated_at, :created_by, :updated_by
		)`

	r.logger.Debugw("creating activity entry",
		"action_type", entry.ActionType,
		"document_id", entry.DocumentID,
		"tenant_id", entry.TenantID,
	)

	if _, err := r.db.NamedExecContext(ctx, query, entry); err != nil {
		return fmt.Errorf("failed to insert activity entry: %w", err)
	}
	return nil
}

func (r *activityRepository) buildConditions(ctx context.Context, filter *types.ActivityFilter) ([]string, map[string]interface{}) {
	conditions := []string{"tenant_id = :tenant_id", "status = :status"}
	params := map[string]interface{}{
		"tenant_id": types.GetTenantID(ctx),
		"status":    types.StatusPublished,
	}

	if filter == nil {
		return conditions, params
	}

	if filter.ActionType != nil {
		conditions = append(conditions, "action_type = :action_type")
		params["action_type"] = *filter.ActionType
	}
	if filter.User != "" {
		conditions = append(conditions, "user_name = :user_name")
		params["user_name"] = filter.User
	}
	if filter.DocumentID != "" {
		conditions = append(conditions, "document_id = :document_id")
		params["document_id"] = filter.DocumentID
	}
	conditions = timeRangeConditions(filter.TimeRangeFilter, conditions, params)

	return conditions, params
}

func (r *activityRepository) List(ctx context.Context, filter *types.ActivityFilter) ([]*activity.Entry, error) {
	conditions, params := r.buildConditions(ctx, filter)

	query := "SELECT * FROM activity_log WHERE " + strings.Join(conditions, " AND ")
	query += fmt.Sprintf(" ORDER BY %s %s",
		sortColumn(filter.GetSort(), activitySortColumns, "timestamp"),
		sortOrder(filter.GetOrder()),
	)
	if !filter.IsUnlimited() {
		query += " LIMIT :limit OFFSET :offset"
		params["limit"] = filter.GetLimit()
		params["offset"] = filter.GetOffset()
	}

	r.logger.Debugw("listing activity entries", "tenant_id", types.GetTenantID(ctx))

	rows, err := r.db.NamedQueryContext(ctx, query, params)
	if err != nil {
		return nil, fmt.Errorf("failed to query activity entries: %w", err)
	}
	defer rows.Close()

	var entries []*activity.Entry
	for rows.Next() {
		var entry activity.Entry
		if err := rows.StructScan(&entry); err != nil {
			return nil, fmt.Errorf("failed to scan activity entry: %w", err)
		}
		entries = append(entries, &entry)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activity rows: %w", err)
	}
	return entries, nil
}

func (r *activityRepository) Count(ctx context.Context, filter *types.ActivityFilter) (int, error) {
	conditions, params := r.buildConditions(ctx, filter)
	query := "SELECT COUNT(*) FROM activity_log WHERE " + strings.Join(conditions, " AND ")

	rows, err := r.db.NamedQueryContext(ctx, query, params)
	if err != nil {
		return 0, fmt.Errorf("failed to count activity entries: %w", err)
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

package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/finbooks/finbooks/internal/domain/creditnote"
	ierr "github.com/finbooks/finbooks/internal/errors"
	"github.com/finbooks/finbooks/internal/logger"
	"github.com/finbooks/finbooks/internal/postgres"
	"github.com/finbooks/finbooks/internal/types"
)

type creditNoteRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

// NewCreditNoteRepository creates a new instance of credit note repository
func NewCreditNoteRepository(db *postgres.DB, logger *logger.Logger) creditnote.Repository {
	return &creditNoteRepository{db: db, logger: logger}
}

var creditNoteSortColumns = map[string]string{
	"created_at":         "created_at",
	"issue_date":         "issue_date",
	"credit_note_number": "credit_note_number",
	"amount":             "amount",
}

func (r *creditNoteRepository) Create(ctx context.Context, note *creditnote.CreditNote) error {
	query := `
		INSERT INTO credit_notes (
			id, credit_note_number, invoice_id, customer_id, customer_name,
			reason, issue_date, line_items, amount, notes,
			tenant_id, status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :credit_note_number, :invoice_id, :customer_id, :customer_name,
			:reason, :issue_date, :line_items, :amount, :notes,
			:tenant_id, :status, :created_at, :updated_at, :created_by, :updated_by
		)`

	r.logger.Debugw("creating credit note",
		"credit_note_id", note.ID,
		"credit_note_number", note.CreditNoteNumber,
		"tenant_id", note.TenantID,
	)

	if _, err := r.db.NamedExecContext(ctx, query, note); err != nil {
		return fmt.Errorf("failed to insert credit note: %w", err)
	}
	return nil
}

func (r *creditNoteRepository) Get(ctx context.Context, id string) (*creditnote.CreditNote, error) {
	query := `
		SELECT * FROM credit_notes
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
		return nil, fmt.Errorf("failed to query credit note: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, ierr.NewError("credit note not found").
			WithHintf("Credit note with ID %s was not found", id).
			WithReportableDetails(map[string]interface{}{
				"credit_note_id": id,
			}).
			Mark(ierr.ErrNotFound)
	}

	var note creditnote.CreditNote
	if err := rows.StructScan(&note); err != nil {
		return nil, fmt.Errorf("failed to scan credit note: %w", err)
	}
	return &note, nil
}

func (r *creditNoteRepository) buildConditions(ctx context.Context, filter *types.CreditNoteFilter) ([]string, map[string]interface{}) {
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
		conditions = append(conditions, "invoice_id = :invoice_id")
		params["invoice_id"] = filter.InvoiceID
	}
	conditions = timeRangeConditions(filter.TimeRangeFilter, conditions, params)

	return conditions, params
}

func (r *creditNoteRepository) List(ctx context.Context, filter *types.CreditNoteFilter) ([]*creditnote.CreditNote, error) {
	conditions, params := r.buildConditions(ctx, filter)

	query := "SELECT * FROM credit_notes WHERE " + strings.Join(conditions, " AND ")
	query += fmt.Sprintf(" ORDER BY %s %s",
		sortColumn(filter.GetSort(), creditNoteSortColumns, "issue_date"),
		sortOrder(filter.GetOrder()),
	)
	if !filter.IsUnlimited() {
		query += " LIMIT :limit OFFSET :offset"
		params["limit"] = filter.GetLimit()
		params["offset"] = filter.GetOffset()
	}

	r.logger.Debugw("listing credit notes", "tenant_id", types.GetTenantID(ctx))

	rows, err := r.db.NamedQueryContext(ctx, query, params)
	if err != nil {
		return nil, fmt.Errorf("failed to query credit notes: %w", err)
	}
	defer rows.Close()

	var notes []*creditnote.CreditNote
	for rows.Next() {
		var note creditnote.CreditNote
		if err := rows.StructScan(&note); err != nil {
			return nil, fmt.Errorf("failed to scan credit note: %w", err)
		}
		notes = append(notes, &note)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating credit note rows: %w", err)
	}
	return notes, nil
}

func (r *creditNoteRepository) Count(ctx context.Context, filter *types.CreditNoteFilter) (int, error) {
	conditions, params := r.buildConditions(ctx, filter)
	query := "SELECT COUNT(*) FROM credit_notes WHERE " + strings.Join(conditions, " AND ")

	rows, err := r.db.NamedQueryContext(ctx, query, params)
	if err != nil {
		return 0, fmt.Errorf("failed to count credit notes: %w", err)
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

func (r *creditNoteRepository) ListAll(ctx context.Context, filter *types.CreditNoteFilter) ([]*creditnote.CreditNote, error) {
	if filter == nil {
		filter = types.NewNoLimitCreditNoteFilter()
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewNoLimitQueryFilter()
	} else {
		filter.QueryFilter.Limit = nil
	}
	return r.List(ctx, filter)
}

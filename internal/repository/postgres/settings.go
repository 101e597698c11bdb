package postgres

import (
	"context"
	"fmt"

	"github.com/finbooks/finbooks/internal/cache"
	"github.com/finbooks/finbooks/internal/domain/settings"
	ierr "github.com/finbooks/finbooks/internal/errors"
	"github.com/finbooks/finbooks/internal/logger"
	"github.com/finbooks/finbooks/internal/postgres"
	"github.com/finbooks/finbooks/internal/types"
)

type settingsRepository struct {
	db     *postgres.DB
	logger *logger.Logger
	cache  cache.Cache
}

// NewSettingsRepository creates a new instance of invoice settings repository
func NewSettingsRepository(db *postgres.DB, logger *logger.Logger, cache cache.Cache) settings.Repository {
	return &settingsRepository{db: db, logger: logger, cache: cache}
}

// sequenceColumns maps counter names to their columns. Counter names are
// internal constants, never caller input, so interpolating the column is
// safe here.
var sequenceColumns = map[types.SequenceCounter]string{
	types.SequenceCounterInvoice:    "next_invoice_number",
	types.SequenceCounterCreditNote: "next_credit_note_number",
	types.SequenceCounterQuote:      "next_quote_number",
}

func (r *settingsRepository) Get(ctx context.Context) (*settings.InvoiceSettings, error) {
	if cached := r.GetCache(ctx); cached != nil {
		return cached, nil
	}

	query := `
		SELECT * FROM invoice_settings
		WHERE tenant_id = :tenant_id
		AND status = :status`

	params := map[string]interface{}{
		"tenant_id": types.GetTenantID(ctx),
		"status":    types.StatusPublished,
	}

	rows, err := r.db.NamedQueryContext(ctx, query, params)
	if err != nil {
		return nil, fmt.Errorf("failed to query settings: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, ierr.NewError("settings not found").
			WithHint("No invoice settings saved for this tenant yet").
			Mark(ierr.ErrNotFound)
	}

	var s settings.InvoiceSettings
	if err := rows.StructScan(&s); err != nil {
		return nil, fmt.Errorf("failed to scan settings: %w", err)
	}

	r.SetCache(ctx, &s)
	return &s, nil
}

func (r *settingsRepository) Upsert(ctx context.Context, s *settings.InvoiceSettings) error {
	query := `
		INSERT INTO invoice_settings (
			id, active_theme_name, next_invoice_number, next_credit_note_number, next_quote_number,
			saved_themes, tenant_id, status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :active_theme_name, :next_invoice_number, :next_credit_note_number, :next_quote_number,
			:saved_themes, :tenant_id, :status, :created_at, :updated_at, :created_by, :updated_by
		)
		ON CONFLICT (tenant_id) DO UPDATE SET
			active_theme_name = EXCLUDED.active_theme_name,
			next_invoice_number = EXCLUDED.next_invoice_number,
			next_credit_note_number = EXCLUDED.next_credit_note_number,
			next_quote_number = EXCLUDED.next_quote_number,
			saved_themes = EXCLUDED.saved_themes,
			updated_at = EXCLUDED.updated_at,
			updated_by = EXCLUDED.updated_by`

	r.logger.Debugw("upserting settings",
		"settings_id", s.ID,
		"tenant_id", s.TenantID,
	)

	if _, err := r.db.NamedExecContext(ctx, query, s); err != nil {
		return fmt.Errorf("failed to upsert settings: %w", err)
	}

	r.DeleteCache(ctx)
	return nil
}

// IncrementCounter allocates the next document number in one atomic
// statement. The counter column stores the next number to hand out;
// the insert path seeds a fresh tenant row with the counter already
// advanced past the first allocation. Returns the allocated number.
func (r *settingsRepository) IncrementCounter(ctx context.Context, counter types.SequenceCounter) (int64, error) {
	col, ok := sequenceColumns[counter]
	if !ok {
		return 0, ierr.NewErrorf("unknown sequence counter %s", counter).
			Mark(ierr.ErrValidation)
	}

	seed := settings.Default(types.GetTenantID(ctx))
	seed.ID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SETTINGS)

	// the allocated number on the insert path is 1, so the fresh row
	// stores 2 as the next number for this counter
	switch counter {
	case types.SequenceCounterInvoice:
		seed.NextInvoiceNumber = 2
	case types.SequenceCounterCreditNote:
		seed.NextCreditNoteNumber = 2
	case types.SequenceCounterQuote:
		seed.NextQuoteNumber = 2
	}

	query := fmt.Sprintf(`
		INSERT INTO invoice_settings (
			id, active_theme_name, next_invoice_number, next_credit_note_number, next_quote_number,
			saved_themes, tenant_id, status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :active_theme_name, :next_invoice_number, :next_credit_note_number, :next_quote_number,
			:saved_themes, :tenant_id, :status, NOW(), NOW(), :created_by, :updated_by
		)
		ON CONFLICT (tenant_id) DO UPDATE SET
			%s = COALESCE(invoice_settings.%s, 1) + 1,
			updated_at = NOW(),
			updated_by = EXCLUDED.updated_by
		RETURNING %s`, col, col, col)

	params := map[string]interface{}{
		"id":                      seed.ID,
		"active_theme_name":       seed.ActiveThemeName,
		"next_invoice_number":     seed.NextInvoiceNumber,
		"next_credit_note_number": seed.NextCreditNoteNumber,
		"next_quote_number":       seed.NextQuoteNumber,
		"saved_themes":            seed.SavedThemes,
		"tenant_id":               types.GetTenantID(ctx),
		"status":                  types.StatusPublished,
		"created_by":              types.GetUserID(ctx),
		"updated_by":              types.GetUserID(ctx),
	}

	r.logger.Debugw("incrementing sequence counter",
		"counter", counter,
		"tenant_id", types.GetTenantID(ctx),
	)

	rows, err := r.db.NamedQueryContext(ctx, query, params)
	if err != nil {
		return 0, fmt.Errorf("failed to increment counter: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return 0, fmt.Errorf("counter increment returned no row")
	}

	var next int64
	if err := rows.Scan(&next); err != nil {
		return 0, fmt.Errorf("failed to scan counter: %w", err)
	}

	r.DeleteCache(ctx)

	// the stored value is the next number, so the one just allocated
	// is one behind it
	return next - 1, nil
}

func (r *settingsRepository) SetCache(ctx context.Context, s *settings.InvoiceSettings) {
	span := cache.StartCacheSpan(ctx, "invoice_settings", "set", map[string]interface{}{
		"tenant_id": s.TenantID,
	})
	defer cache.FinishSpan(span)

	key := cache.GenerateKey(cache.PrefixSettings, types.GetTenantID(ctx))
	r.cache.Set(ctx, key, s, cache.ExpiryDefaultInMemory)
	r.logger.Debugw("cache set", "key", key)
}

func (r *settingsRepository) GetCache(ctx context.Context) *settings.InvoiceSettings {
	span := cache.StartCacheSpan(ctx, "invoice_settings", "get", map[string]interface{}{
		"tenant_id": types.GetTenantID(ctx),
	})
	defer cache.FinishSpan(span)

	key := cache.GenerateKey(cache.PrefixSettings, types.GetTenantID(ctx))
	if value, found := r.cache.Get(ctx, key); found {
		if s, ok := value.(*settings.InvoiceSettings); ok {
			r.logger.Debugw("cache hit", "key", key)
			return s
		}
	}
	return nil
}

func (r *settingsRepository) DeleteCache(ctx context.Context) {
	span := cache.StartCacheSpan(ctx, "invoice_settings", "delete", map[string]interface{}{
		"tenant_id": types.GetTenantID(ctx),
	})
	defer cache.FinishSpan(span)

	key := cache.GenerateKey(cache.PrefixSettings, types.GetTenantID(ctx))
	r.cache.Delete(ctx, key)
	r.logger.Debugw("cache deleted", "key", key)
}

package testutil

import (
	"context"
	"sync"

	"github.com/finbooks/finbooks/internal/domain/settings"
	ierr "github.com/finbooks/finbooks/internal/errors"
	"github.com/finbooks/finbooks/internal/types"
)

// InMemorySettingsStore implements settings.Repository. Rows are keyed
// by tenant and counter allocation holds the lock for the whole
// read-modify-write, matching the single-statement upsert it stands in
// for.
type InMemorySettingsStore struct {
	mu   sync.Mutex
	rows map[string]*settings.InvoiceSettings
}

// NewInMemorySettingsStore creates a new in-memory settings store
func NewInMemorySettingsStore() *InMemorySettingsStore {
	return &InMemorySettingsStore{
		rows: make(map[string]*settings.InvoiceSettings),
	}
}

func copySettings(s *settings.InvoiceSettings) *settings.InvoiceSettings {
	if s == nil {
		return nil
	}
	copied := *s
	copied.SavedThemes = append(settings.Themes{}, s.SavedThemes...)
	return &copied
}

func (s *InMemorySettingsStore) Get(ctx context.Context) (*settings.InvoiceSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.rows[types.GetTenantID(ctx)]
	if !ok {
		return nil, ierr.NewError("settings not found").
			WithHint("No invoice settings saved for this tenant yet").
			Mark(ierr.ErrNotFound)
	}
	return copySettings(row), nil
}

func (s *InMemorySettingsStore) Upsert(ctx context.Context, row *settings.InvoiceSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := copySettings(row)
	if existing, ok := s.rows[row.TenantID]; ok {
		// the conflict path keeps the original row identity
		copied.ID = existing.ID
		copied.CreatedAt = existing.CreatedAt
		copied.CreatedBy = existing.CreatedBy
	}
	s.rows[row.TenantID] = copied
	return nil
}

// IncrementCounter allocates the next document number, seeding a fresh
// tenant row on first use. Returns the allocated number.
func (s *InMemorySettingsStore) IncrementCounter(ctx context.Context, counter types.SequenceCounter) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tenantID := types.GetTenantID(ctx)
	row, ok := s.rows[tenantID]
	if !ok {
		seed := settings.Default(tenantID)
		seed.ID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SETTINGS)
		switch counter {
		case types.SequenceCounterInvoice:
			seed.NextInvoiceNumber = 2
		case types.SequenceCounterCreditNote:
			seed.NextCreditNoteNumber = 2
		case types.SequenceCounterQuote:
			seed.NextQuoteNumber = 2
		default:
			return 0, ierr.NewErrorf("unknown sequence counter %s", counter).
				Mark(ierr.ErrValidation)
		}
		s.rows[tenantID] = seed
		return 1, nil
	}

	switch counter {
	case types.SequenceCounterInvoice:
		allocated := row.NextInvoiceNumber
		row.NextInvoiceNumber++
		return allocated, nil
	case types.SequenceCounterCreditNote:
		allocated := row.NextCreditNoteNumber
		row.NextCreditNoteNumber++
		return allocated, nil
	case types.SequenceCounterQuote:
		allocated := row.NextQuoteNumber
		row.NextQuoteNumber++
		return allocated, nil
	default:
		return 0, ierr.NewErrorf("unknown sequence counter %s", counter).
			Mark(ierr.ErrValidation)
	}
}

// Clear removes all settings rows
func (s *InMemorySettingsStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = make(map[string]*settings.InvoiceSettings)
}

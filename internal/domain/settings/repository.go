package settings

import (
	"context"

	"github.com/finbooks/finbooks/internal/types"
)

// Repository stores the per-tenant settings row.
type Repository interface {
	// Get returns the tenant's settings row, ErrNotFound when none exists yet
	Get(ctx context.Context) (*InvoiceSettings, error)
	// Upsert creates or fully replaces the tenant's settings row
	Upsert(ctx context.Context, s *InvoiceSettings) error
	// IncrementCounter atomically bumps the named counter and returns its
	// previous value, seeding the row when the tenant has none yet
	IncrementCounter(ctx context.Context, counter types.SequenceCounter) (int64, error)
}

package creditnote

import (
	"context"

	"github.com/finbooks/finbooks/internal/types"
)

// Repository defines the interface for credit note data access. Credit
// notes are immutable, so there is no update or delete.
type Repository interface {
	Create(ctx context.Context, note *CreditNote) error
	Get(ctx context.Context, id string) (*CreditNote, error)
	List(ctx context.Context, filter *types.CreditNoteFilter) ([]*CreditNote, error)
	Count(ctx context.Context, filter *types.CreditNoteFilter) (int, error)
	ListAll(ctx context.Context, filter *types.CreditNoteFilter) ([]*CreditNote, error)
}

package activity

import (
	"context"

	"github.com/finbooks/finbooks/internal/types"
)

// Repository stores audit trail entries. The trail is append-only.
type Repository interface {
	Create(ctx context.Context, entry *Entry) error
	List(ctx context.Context, filter *types.ActivityFilter) ([]*Entry, error)
	Count(ctx context.Context, filter *types.ActivityFilter) (int, error)
}

package quote

import (
	"context"

	"github.com/finbooks/finbooks/internal/types"
)

// Repository defines the interface for quote data access. Quotes are
// create/list/get only.
type Repository interface {
	Create(ctx context.Context, quote *Quote) error
	Get(ctx context.Context, id string) (*Quote, error)
	List(ctx context.Context, filter *types.QuoteFilter) ([]*Quote, error)
	Count(ctx context.Context, filter *types.QuoteFilter) (int, error)
	ListAll(ctx context.Context, filter *types.QuoteFilter) ([]*Quote, error)
}

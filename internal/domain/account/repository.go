package account

import (
	"context"

	"github.com/finbooks/finbooks/internal/types"
)

// Repository defines the interface for chart of accounts data access
type Repository interface {
	Create(ctx context.Context, account *Account) error
	Get(ctx context.Context, id string) (*Account, error)
	List(ctx context.Context, filter *types.AccountFilter) ([]*Account, error)
	Count(ctx context.Context, filter *types.AccountFilter) (int, error)
	ListAll(ctx context.Context, filter *types.AccountFilter) ([]*Account, error)
	Update(ctx context.Context, account *Account) error
	Delete(ctx context.Context, id string) error
}

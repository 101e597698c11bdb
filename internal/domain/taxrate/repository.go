package taxrate

import (
	"context"

	"github.com/finbooks/finbooks/internal/types"
)

// Repository defines the interface for tax rate data access
type Repository interface {
	Create(ctx context.Context, rate *TaxRate) error
	Get(ctx context.Context, id string) (*TaxRate, error)
	List(ctx context.Context, filter *types.TaxRateFilter) ([]*TaxRate, error)
	Count(ctx context.Context, filter *types.TaxRateFilter) (int, error)
	ListAll(ctx context.Context, filter *types.TaxRateFilter) ([]*TaxRate, error)
	Update(ctx context.Context, rate *TaxRate) error
	Delete(ctx context.Context, id string) error
}

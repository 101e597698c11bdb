package payment

import (
	"context"

	"github.com/finbooks/finbooks/internal/types"
)

// Repository defines the interface for payment data access. Payments
// are immutable once recorded; UpdateApplications exists only for the
// allocator to persist the final applied_to list inside the recording
// transaction.
type Repository interface {
	Create(ctx context.Context, payment *Payment) error
	Get(ctx context.Context, id string) (*Payment, error)
	List(ctx context.Context, filter *types.PaymentFilter) ([]*Payment, error)
	Count(ctx context.Context, filter *types.PaymentFilter) (int, error)
	ListAll(ctx context.Context, filter *types.PaymentFilter) ([]*Payment, error)
	UpdateApplications(ctx context.Context, id string, applications Applications) error
}

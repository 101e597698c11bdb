package invoice

import (
	"context"

	"github.com/finbooks/finbooks/internal/types"
	"github.com/shopspring/decimal"
)

// Repository defines the interface for sales invoice data access
type Repository interface {
	Create(ctx context.Context, invoice *Invoice) error
	Get(ctx context.Context, id string) (*Invoice, error)
	List(ctx context.Context, filter *types.InvoiceFilter) ([]*Invoice, error)
	Count(ctx context.Context, filter *types.InvoiceFilter) (int, error)
	ListAll(ctx context.Context, filter *types.InvoiceFilter) ([]*Invoice, error)
	Update(ctx context.Context, invoice *Invoice) error
	Delete(ctx context.Context, id string) error

	// UpdatePaymentStatus conditionally writes the payment-derived
	// fields. The update only applies when the stored row still has the
	// given version; a zero match reports a conflict so the caller can
	// re-read and retry.
	UpdatePaymentStatus(ctx context.Context, id string, status types.InvoiceStatus, amountPaid, balanceDue decimal.Decimal, version int) error
}

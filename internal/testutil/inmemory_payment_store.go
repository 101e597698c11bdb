package testutil

import (
	"context"

	"github.com/finbooks/finbooks/internal/domain/payment"
	ierr "github.com/finbooks/finbooks/internal/errors"
	"github.com/finbooks/finbooks/internal/types"
	"github.com/samber/lo"
)

// InMemoryPaymentStore implements payment.Repository
type InMemoryPaymentStore struct {
	*InMemoryStore[*payment.Payment]
}

// NewInMemoryPaymentStore creates a new in-memory payment store
func NewInMemoryPaymentStore() *InMemoryPaymentStore {
	return &InMemoryPaymentStore{
		InMemoryStore: NewInMemoryStore[*payment.Payment](),
	}
}

func copyPayment(p *payment.Payment) *payment.Payment {
	if p == nil {
		return nil
	}
	copied := *p
	copied.AppliedTo = append(payment.Applications{}, p.AppliedTo...)
	return &copied
}

func (s *InMemoryPaymentStore) Create(ctx context.Context, p *payment.Payment) error {
	return s.InMemoryStore.Create(ctx, p.ID, copyPayment(p))
}

func (s *InMemoryPaymentStore) Get(ctx context.Context, id string) (*payment.Payment, error) {
	p, err := s.InMemoryStore.Get(ctx, id)
	if err != nil || !visibleInTenant(ctx, p.TenantID, p.Status) {
		return nil, ierr.NewError("payment not found").
			WithHintf("Payment with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return copyPayment(p), nil
}

func (s *InMemoryPaymentStore) List(ctx context.Context, filter *types.PaymentFilter) ([]*payment.Payment, error) {
	payments, err := s.InMemoryStore.List(ctx, filter, paymentFilterFn, paymentSortFn)
	if err != nil {
		return nil, err
	}
	return lo.Map(payments, func(p *payment.Payment, _ int) *payment.Payment {
		return copyPayment(p)
	}), nil
}

func (s *InMemoryPaymentStore) Count(ctx context.Context, filter *types.PaymentFilter) (int, error) {
	return s.InMemoryStore.Count(ctx, filter, paymentFilterFn)
}

func (s *InMemoryPaymentStore) ListAll(ctx context.Context, filter *types.PaymentFilter) ([]*payment.Payment, error) {
	f := *filter
	f.QueryFilter = types.NewNoLimitQueryFilter()
	return s.List(ctx, &f)
}

// UpdateApplications rewrites the payment's invoice allocations
func (s *InMemoryPaymentStore) UpdateApplications(ctx context.Context, id string, applications payment.Applications) error {
	p, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	p.AppliedTo = append(payment.Applications{}, applications...)
	return s.InMemoryStore.Update(ctx, id, p)
}

// paymentFilterFn implements filtering logic for payments
func paymentFilterFn(ctx context.Context, p *payment.Payment, filter interface{}) bool {
	if !visibleInTenant(ctx, p.TenantID, p.Status) {
		return false
	}

	f, ok := filter.(*types.PaymentFilter)
	if !ok || f == nil {
		return true
	}

	if f.CustomerID != "" && p.CustomerID != f.CustomerID {
		return false
	}
	if f.InvoiceID != "" {
		applied := lo.ContainsBy(p.AppliedTo, func(a payment.Application) bool {
			return a.InvoiceID == f.InvoiceID
		})
		if !applied {
			return false
		}
	}
	if !inTimeRange(f.TimeRangeFilter, p.CreatedAt) {
		return false
	}

	return true
}

// paymentSortFn sorts by created_at desc to match the repository default
func paymentSortFn(a, b *payment.Payment) bool {
	return a.CreatedAt.After(b.CreatedAt)
}

package testutil

import (
	"context"

	"github.com/finbooks/finbooks/internal/domain/taxrate"
	ierr "github.com/finbooks/finbooks/internal/errors"
	"github.com/finbooks/finbooks/internal/types"
	"github.com/samber/lo"
)

// InMemoryTaxRateStore implements taxrate.Repository
type InMemoryTaxRateStore struct {
	*InMemoryStore[*taxrate.TaxRate]
}

// NewInMemoryTaxRateStore creates a new in-memory tax rate store
func NewInMemoryTaxRateStore() *InMemoryTaxRateStore {
	return &InMemoryTaxRateStore{
		InMemoryStore: NewInMemoryStore[*taxrate.TaxRate](),
	}
}

func copyTaxRate(t *taxrate.TaxRate) *taxrate.TaxRate {
	if t == nil {
		return nil
	}
	copied := *t
	if t.RateNoPan != nil {
		r := *t.RateNoPan
		copied.RateNoPan = &r
	}
	if t.Threshold != nil {
		th := *t.Threshold
		copied.Threshold = &th
	}
	if t.EffectiveDate != nil {
		ed := *t.EffectiveDate
		copied.EffectiveDate = &ed
	}
	return &copied
}

func (s *InMemoryTaxRateStore) Create(ctx context.Context, t *taxrate.TaxRate) error {
	return s.InMemoryStore.Create(ctx, t.ID, copyTaxRate(t))
}

func (s *InMemoryTaxRateStore) Get(ctx context.Context, id string) (*taxrate.TaxRate, error) {
	t, err := s.InMemoryStore.Get(ctx, id)
	if err != nil || !visibleInTenant(ctx, t.TenantID, t.Status) {
		return nil, ierr.NewError("tax rate not found").
			WithHintf("Tax rate with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return copyTaxRate(t), nil
}

func (s *InMemoryTaxRateStore) List(ctx context.Context, filter *types.TaxRateFilter) ([]*taxrate.TaxRate, error) {
	rates, err := s.InMemoryStore.List(ctx, filter, taxRateFilterFn, taxRateSortFn)
	if err != nil {
		return nil, err
	}
	return lo.Map(rates, func(t *taxrate.TaxRate, _ int) *taxrate.TaxRate {
		return copyTaxRate(t)
	}), nil
}

func (s *InMemoryTaxRateStore) Count(ctx context.Context, filter *types.TaxRateFilter) (int, error) {
	return s.InMemoryStore.Count(ctx, filter, taxRateFilterFn)
}

func (s *InMemoryTaxRateStore) ListAll(ctx context.Context, filter *types.TaxRateFilter) ([]*taxrate.TaxRate, error) {
	f := *filter
	f.QueryFilter = types.NewNoLimitQueryFilter()
	return s.List(ctx, &f)
}

func (s *InMemoryTaxRateStore) Update(ctx context.Context, t *taxrate.TaxRate) error {
	if _, err := s.Get(ctx, t.ID); err != nil {
		return err
	}
	return s.InMemoryStore.Update(ctx, t.ID, copyTaxRate(t))
}

func (s *InMemoryTaxRateStore) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.InMemoryStore.Delete(ctx, id)
}

// taxRateFilterFn implements filtering logic for tax rates
func taxRateFilterFn(ctx context.Context, t *taxrate.TaxRate, filter interface{}) bool {
	if !visibleInTenant(ctx, t.TenantID, t.Status) {
		return false
	}

	f, ok := filter.(*types.TaxRateFilter)
	if !ok || f == nil {
		return true
	}

	if f.TaxType != nil && t.TaxType != *f.TaxType {
		return false
	}

	return true
}

// taxRateSortFn sorts by created_at desc to match the repository default
func taxRateSortFn(a, b *taxrate.TaxRate) bool {
	return a.CreatedAt.After(b.CreatedAt)
}

package testutil

import (
	"context"

	"github.com/finbooks/finbooks/internal/domain/vendor"
	ierr "github.com/finbooks/finbooks/internal/errors"
	"github.com/finbooks/finbooks/internal/types"
	"github.com/samber/lo"
)

// InMemoryVendorStore implements vendor.Repository
type InMemoryVendorStore struct {
	*InMemoryStore[*vendor.Vendor]
}

// NewInMemoryVendorStore creates a new in-memory vendor store
func NewInMemoryVendorStore() *InMemoryVendorStore {
	return &InMemoryVendorStore{
		InMemoryStore: NewInMemoryStore[*vendor.Vendor](),
	}
}

func copyVendor(v *vendor.Vendor) *vendor.Vendor {
	if v == nil {
		return nil
	}
	copied := *v
	return &copied
}

func (s *InMemoryVendorStore) Create(ctx context.Context, v *vendor.Vendor) error {
	return s.InMemoryStore.Create(ctx, v.ID, copyVendor(v))
}

func (s *InMemoryVendorStore) Get(ctx context.Context, id string) (*vendor.Vendor, error) {
	v, err := s.InMemoryStore.Get(ctx, id)
	if err != nil || !visibleInTenant(ctx, v.TenantID, v.Status) {
		return nil, ierr.NewError("vendor not found").
			WithHintf("Vendor with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return copyVendor(v), nil
}

func (s *InMemoryVendorStore) List(ctx context.Context, filter *types.VendorFilter) ([]*vendor.Vendor, error) {
	vendors, err := s.InMemoryStore.List(ctx, filter, vendorFilterFn, vendorSortFn)
	if err != nil {
		return nil, err
	}
	return lo.Map(vendors, func(v *vendor.Vendor, _ int) *vendor.Vendor {
		return copyVendor(v)
	}), nil
}

func (s *InMemoryVendorStore) Count(ctx context.Context, filter *types.VendorFilter) (int, error) {
	return s.InMemoryStore.Count(ctx, filter, vendorFilterFn)
}

func (s *InMemoryVendorStore) ListAll(ctx context.Context, filter *types.VendorFilter) ([]*vendor.Vendor, error) {
	f := *filter
	f.QueryFilter = types.NewNoLimitQueryFilter()
	return s.List(ctx, &f)
}

func (s *InMemoryVendorStore) Update(ctx context.Context, v *vendor.Vendor) error {
	if _, err := s.Get(ctx, v.ID); err != nil {
		return err
	}
	return s.InMemoryStore.Update(ctx, v.ID, copyVendor(v))
}

func (s *InMemoryVendorStore) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.InMemoryStore.Delete(ctx, id)
}

// vendorFilterFn implements filtering logic for vendors
func vendorFilterFn(ctx context.Context, v *vendor.Vendor, filter interface{}) bool {
	if !visibleInTenant(ctx, v.TenantID, v.Status) {
		return false
	}

	f, ok := filter.(*types.VendorFilter)
	if !ok || f == nil {
		return true
	}

	if len(f.VendorIDs) > 0 && !lo.Contains(f.VendorIDs, v.ID) {
		return false
	}
	if f.Search != "" && !matchesSearch(f.Search, v.DisplayName, v.CompanyName, v.Email) {
		return false
	}
	if !inTimeRange(f.TimeRangeFilter, v.CreatedAt) {
		return false
	}

	return true
}

// vendorSortFn sorts by created_at desc to match the repository default
func vendorSortFn(a, b *vendor.Vendor) bool {
	return a.CreatedAt.After(b.CreatedAt)
}

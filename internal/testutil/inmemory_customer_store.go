package testutil

import (
	"context"
	"strings"
	"time"

	"github.com/finbooks/finbooks/internal/domain/customer"
	ierr "github.com/finbooks/finbooks/internal/errors"
	"github.com/finbooks/finbooks/internal/types"
	"github.com/samber/lo"
)

// InMemoryCustomerStore implements customer.Repository
type InMemoryCustomerStore struct {
	*InMemoryStore[*customer.Customer]
}

// NewInMemoryCustomerStore creates a new in-memory customer store
func NewInMemoryCustomerStore() *InMemoryCustomerStore {
	return &InMemoryCustomerStore{
		InMemoryStore: NewInMemoryStore[*customer.Customer](),
	}
}

func copyCustomer(c *customer.Customer) *customer.Customer {
	if c == nil {
		return nil
	}
	copied := *c
	return &copied
}

func (s *InMemoryCustomerStore) Create(ctx context.Context, c *customer.Customer) error {
	return s.InMemoryStore.Create(ctx, c.ID, copyCustomer(c))
}

func (s *InMemoryCustomerStore) Get(ctx context.Context, id string) (*customer.Customer, error) {
	c, err := s.InMemoryStore.Get(ctx, id)
	if err != nil || !visibleInTenant(ctx, c.TenantID, c.Status) {
		return nil, ierr.NewError("customer not found").
			WithHintf("Customer with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return copyCustomer(c), nil
}

func (s *InMemoryCustomerStore) List(ctx context.Context, filter *types.CustomerFilter) ([]*customer.Customer, error) {
	customers, err := s.InMemoryStore.List(ctx, filter, customerFilterFn, customerSortFn)
	if err != nil {
		return nil, err
	}
	return lo.Map(customers, func(c *customer.Customer, _ int) *customer.Customer {
		return copyCustomer(c)
	}), nil
}

func (s *InMemoryCustomerStore) Count(ctx context.Context, filter *types.CustomerFilter) (int, error) {
	return s.InMemoryStore.Count(ctx, filter, customerFilterFn)
}

func (s *InMemoryCustomerStore) ListAll(ctx context.Context, filter *types.CustomerFilter) ([]*customer.Customer, error) {
	f := *filter
	f.QueryFilter = types.NewNoLimitQueryFilter()
	return s.List(ctx, &f)
}

func (s *InMemoryCustomerStore) Update(ctx context.Context, c *customer.Customer) error {
	if _, err := s.Get(ctx, c.ID); err != nil {
		return err
	}
	return s.InMemoryStore.Update(ctx, c.ID, copyCustomer(c))
}

func (s *InMemoryCustomerStore) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.InMemoryStore.Delete(ctx, id)
}

// customerFilterFn implements filtering logic for customers
func customerFilterFn(ctx context.Context, c *customer.Customer, filter interface{}) bool {
	if !visibleInTenant(ctx, c.TenantID, c.Status) {
		return false
	}

	f, ok := filter.(*types.CustomerFilter)
	if !ok || f == nil {
		return true
	}

	if len(f.CustomerIDs) > 0 && !lo.Contains(f.CustomerIDs, c.ID) {
		return false
	}
	if f.Search != "" && !matchesSearch(f.Search, c.DisplayName, c.CompanyName, c.Email) {
		return false
	}
	if f.GSTRegistered != nil && c.GSTRegistered != *f.GSTRegistered {
		return false
	}
	if !inTimeRange(f.TimeRangeFilter, c.CreatedAt) {
		return false
	}

	return true
}

// customerSortFn sorts by created_at desc to match the repository default
func customerSortFn(a, b *customer.Customer) bool {
	return a.CreatedAt.After(b.CreatedAt)
}

// visibleInTenant mirrors the tenant_id and status scoping every
// repository query carries
func visibleInTenant(ctx context.Context, tenantID string, status types.Status) bool {
	if want := types.GetTenantID(ctx); want != "" && tenantID != want {
		return false
	}
	return status == types.StatusPublished
}

// matchesSearch mirrors the ILIKE '%term%' search across columns
func matchesSearch(term string, values ...string) bool {
	term = strings.ToLower(term)
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), term) {
			return true
		}
	}
	return false
}

// inTimeRange mirrors the inclusive created_at range conditions
func inTimeRange(f *types.TimeRangeFilter, at time.Time) bool {
	if f == nil {
		return true
	}
	if f.StartTime != nil && at.Before(*f.StartTime) {
		return false
	}
	if f.EndTime != nil && at.After(*f.EndTime) {
		return false
	}
	return true
}

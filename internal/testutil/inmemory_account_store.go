package testutil

import (
	"context"

	"github.com/finbooks/finbooks/internal/domain/account"
	ierr "github.com/finbooks/finbooks/internal/errors"
	"github.com/finbooks/finbooks/internal/types"
	"github.com/samber/lo"
)

// InMemoryAccountStore implements account.Repository
type InMemoryAccountStore struct {
	*InMemoryStore[*account.Account]
}

// NewInMemoryAccountStore creates a new in-memory chart of accounts store
func NewInMemoryAccountStore() *InMemoryAccountStore {
	return &InMemoryAccountStore{
		InMemoryStore: NewInMemoryStore[*account.Account](),
	}
}

func copyAccount(a *account.Account) *account.Account {
	if a == nil {
		return nil
	}
	copied := *a
	if a.OpeningBalance != nil {
		ob := *a.OpeningBalance
		copied.OpeningBalance = &ob
	}
	if a.BalanceAsOf != nil {
		at := *a.BalanceAsOf
		copied.BalanceAsOf = &at
	}
	return &copied
}

func (s *InMemoryAccountStore) Create(ctx context.Context, a *account.Account) error {
	return s.InMemoryStore.Create(ctx, a.ID, copyAccount(a))
}

func (s *InMemoryAccountStore) Get(ctx context.Context, id string) (*account.Account, error) {
	a, err := s.InMemoryStore.Get(ctx, id)
	if err != nil || !visibleInTenant(ctx, a.TenantID, a.Status) {
		return nil, ierr.NewError("account not found").
			WithHintf("Account with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return copyAccount(a), nil
}

func (s *InMemoryAccountStore) List(ctx context.Context, filter *types.AccountFilter) ([]*account.Account, error) {
	accounts, err := s.InMemoryStore.List(ctx, filter, accountFilterFn, accountSortFn)
	if err != nil {
		return nil, err
	}
	return lo.Map(accounts, func(a *account.Account, _ int) *account.Account {
		return copyAccount(a)
	}), nil
}

func (s *InMemoryAccountStore) Count(ctx context.Context, filter *types.AccountFilter) (int, error) {
	return s.InMemoryStore.Count(ctx, filter, accountFilterFn)
}

func (s *InMemoryAccountStore) ListAll(ctx context.Context, filter *types.AccountFilter) ([]*account.Account, error) {
	f := *filter
	f.QueryFilter = types.NewNoLimitQueryFilter()
	return s.List(ctx, &f)
}

func (s *InMemoryAccountStore) Update(ctx context.Context, a *account.Account) error {
	if _, err := s.Get(ctx, a.ID); err != nil {
		return err
	}
	return s.InMemoryStore.Update(ctx, a.ID, copyAccount(a))
}

func (s *InMemoryAccountStore) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.InMemoryStore.Delete(ctx, id)
}

// accountFilterFn implements filtering logic for chart of accounts entries
func accountFilterFn(ctx context.Context, a *account.Account, filter interface{}) bool {
	if !visibleInTenant(ctx, a.TenantID, a.Status) {
		return false
	}

	f, ok := filter.(*types.AccountFilter)
	if !ok || f == nil {
		return true
	}

	if f.Search != "" && !matchesSearch(f.Search, a.Name, a.Code) {
		return false
	}
	if f.ParentCategory != "" && a.ParentCategory != f.ParentCategory {
		return false
	}
	if f.AccountType != "" && a.AccountType != f.AccountType {
		return false
	}

	return true
}

// accountSortFn sorts by created_at desc to match the repository default
func accountSortFn(a, b *account.Account) bool {
	return a.CreatedAt.After(b.CreatedAt)
}

package testutil

import (
	"context"

	"github.com/finbooks/finbooks/internal/domain/invoice"
	"github.com/finbooks/finbooks/internal/domain/quote"
	ierr "github.com/finbooks/finbooks/internal/errors"
	"github.com/finbooks/finbooks/internal/types"
	"github.com/samber/lo"
)

// InMemoryQuoteStore implements quote.Repository
type InMemoryQuoteStore struct {
	*InMemoryStore[*quote.Quote]
}

// NewInMemoryQuoteStore creates a new in-memory quote store
func NewInMemoryQuoteStore() *InMemoryQuoteStore {
	return &InMemoryQuoteStore{
		InMemoryStore: NewInMemoryStore[*quote.Quote](),
	}
}

func copyQuote(q *quote.Quote) *quote.Quote {
	if q == nil {
		return nil
	}
	copied := *q
	if q.QuoteDate != nil {
		d := *q.QuoteDate
		copied.QuoteDate = &d
	}
	if q.ExpiryDate != nil {
		d := *q.ExpiryDate
		copied.ExpiryDate = &d
	}
	copied.LineItems = append(invoice.LineItems{}, q.LineItems...)
	return &copied
}

func (s *InMemoryQuoteStore) Create(ctx context.Context, q *quote.Quote) error {
	return s.InMemoryStore.Create(ctx, q.ID, copyQuote(q))
}

func (s *InMemoryQuoteStore) Get(ctx context.Context, id string) (*quote.Quote, error) {
	q, err := s.InMemoryStore.Get(ctx, id)
	if err != nil || !visibleInTenant(ctx, q.TenantID, q.Status) {
		return nil, ierr.NewError("quote not found").
			WithHintf("Quote with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return copyQuote(q), nil
}

func (s *InMemoryQuoteStore) List(ctx context.Context, filter *types.QuoteFilter) ([]*quote.Quote, error) {
	quotes, err := s.InMemoryStore.List(ctx, filter, quoteFilterFn, quoteSortFn)
	if err != nil {
		return nil, err
	}
	return lo.Map(quotes, func(q *quote.Quote, _ int) *quote.Quote {
		return copyQuote(q)
	}), nil
}

func (s *InMemoryQuoteStore) Count(ctx context.Context, filter *types.QuoteFilter) (int, error) {
	return s.InMemoryStore.Count(ctx, filter, quoteFilterFn)
}

func (s *InMemoryQuoteStore) ListAll(ctx context.Context, filter *types.QuoteFilter) ([]*quote.Quote, error) {
	f := *filter
	f.QueryFilter = types.NewNoLimitQueryFilter()
	return s.List(ctx, &f)
}

// quoteFilterFn implements filtering logic for quotes
func quoteFilterFn(ctx context.Context, q *quote.Quote, filter interface{}) bool {
	if !visibleInTenant(ctx, q.TenantID, q.Status) {
		return false
	}

	f, ok := filter.(*types.QuoteFilter)
	if !ok || f == nil {
		return true
	}

	if f.CustomerID != "" && q.CustomerID != f.CustomerID {
		return false
	}
	if !inTimeRange(f.TimeRangeFilter, q.CreatedAt) {
		return false
	}

	return true
}

// quoteSortFn sorts by created_at desc to match the repository default
func quoteSortFn(a, b *quote.Quote) bool {
	return a.CreatedAt.After(b.CreatedAt)
}

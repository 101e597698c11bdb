package testutil

import (
	"context"

	"github.com/finbooks/finbooks/internal/domain/creditnote"
	"github.com/finbooks/finbooks/internal/domain/invoice"
	ierr "github.com/finbooks/finbooks/internal/errors"
	"github.com/finbooks/finbooks/internal/types"
	"github.com/samber/lo"
)

// InMemoryCreditNoteStore implements creditnote.Repository
type InMemoryCreditNoteStore struct {
	*InMemoryStore[*creditnote.CreditNote]
}

// NewInMemoryCreditNoteStore creates a new in-memory credit note store
func NewInMemoryCreditNoteStore() *InMemoryCreditNoteStore {
	return &InMemoryCreditNoteStore{
		InMemoryStore: NewInMemoryStore[*creditnote.CreditNote](),
	}
}

func copyCreditNote(n *creditnote.CreditNote) *creditnote.CreditNote {
	if n == nil {
		return nil
	}
	copied := *n
	if n.IssueDate != nil {
		d := *n.IssueDate
		copied.IssueDate = &d
	}
	copied.LineItems = append(invoice.LineItems{}, n.LineItems...)
	return &copied
}

func (s *InMemoryCreditNoteStore) Create(ctx context.Context, n *creditnote.CreditNote) error {
	return s.InMemoryStore.Create(ctx, n.ID, copyCreditNote(n))
}

func (s *InMemoryCreditNoteStore) Get(ctx context.Context, id string) (*creditnote.CreditNote, error) {
	n, err := s.InMemoryStore.Get(ctx, id)
	if err != nil || !visibleInTenant(ctx, n.TenantID, n.Status) {
		return nil, ierr.NewError("credit note not found").
			WithHintf("Credit note with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return copyCreditNote(n), nil
}

func (s *InMemoryCreditNoteStore) List(ctx context.Context, filter *types.CreditNoteFilter) ([]*creditnote.CreditNote, error) {
	notes, err := s.InMemoryStore.List(ctx, filter, creditNoteFilterFn, creditNoteSortFn)
	if err != nil {
		return nil, err
	}
	return lo.Map(notes, func(n *creditnote.CreditNote, _ int) *creditnote.CreditNote {
		return copyCreditNote(n)
	}), nil
}

func (s *InMemoryCreditNoteStore) Count(ctx context.Context, filter *types.CreditNoteFilter) (int, error) {
	return s.InMemoryStore.Count(ctx, filter, creditNoteFilterFn)
}

func (s *InMemoryCreditNoteStore) ListAll(ctx context.Context, filter *types.CreditNoteFilter) ([]*creditnote.CreditNote, error) {
	f := *filter
	f.QueryFilter = types.NewNoLimitQueryFilter()
	return s.List(ctx, &f)
}

// creditNoteFilterFn implements filtering logic for credit notes
func creditNoteFilterFn(ctx context.Context, n *creditnote.CreditNote, filter interface{}) bool {
	if !visibleInTenant(ctx, n.TenantID, n.Status) {
		return false
	}

	f, ok := filter.(*types.CreditNoteFilter)
	if !ok || f == nil {
		return true
	}

	if f.CustomerID != "" && n.CustomerID != f.CustomerID {
		return false
	}
	if f.InvoiceID != "" && n.InvoiceID != f.InvoiceID {
		return false
	}
	if !inTimeRange(f.TimeRangeFilter, n.CreatedAt) {
		return false
	}

	return true
}

// creditNoteSortFn sorts by created_at desc to match the repository default
func creditNoteSortFn(a, b *creditnote.CreditNote) bool {
	return a.CreatedAt.After(b.CreatedAt)
}

package testutil

import (
	"context"

	"github.com/finbooks/finbooks/internal/domain/invoice"
	ierr "github.com/finbooks/finbooks/internal/errors"
	"github.com/finbooks/finbooks/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// InMemoryInvoiceStore implements invoice.Repository
type InMemoryInvoiceStore struct {
	*InMemoryStore[*invoice.Invoice]
}

// NewInMemoryInvoiceStore creates a new in-memory invoice store
func NewInMemoryInvoiceStore() *InMemoryInvoiceStore {
	return &InMemoryInvoiceStore{
		InMemoryStore: NewInMemoryStore[*invoice.Invoice](),
	}
}

func copyInvoice(inv *invoice.Invoice) *invoice.Invoice {
	if inv == nil {
		return nil
	}
	copied := *inv
	if inv.InvoiceDate != nil {
		d := *inv.InvoiceDate
		copied.InvoiceDate = &d
	}
	if inv.DueDate != nil {
		d := *inv.DueDate
		copied.DueDate = &d
	}
	copied.LineItems = append(invoice.LineItems{}, inv.LineItems...)
	return &copied
}

func (s *InMemoryInvoiceStore) Create(ctx context.Context, inv *invoice.Invoice) error {
	return s.InMemoryStore.Create(ctx, inv.ID, copyInvoice(inv))
}

func (s *InMemoryInvoiceStore) Get(ctx context.Context, id string) (*invoice.Invoice, error) {
	inv, err := s.InMemoryStore.Get(ctx, id)
	if err != nil || !visibleInTenant(ctx, inv.TenantID, inv.BaseModel.Status) {
		return nil, ierr.NewError("invoice not found").
			WithHintf("Invoice with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return copyInvoice(inv), nil
}

func (s *InMemoryInvoiceStore) List(ctx context.Context, filter *types.InvoiceFilter) ([]*invoice.Invoice, error) {
	invoices, err := s.InMemoryStore.List(ctx, filter, invoiceFilterFn, invoiceSortFn)
	if err != nil {
		return nil, err
	}
	return lo.Map(invoices, func(inv *invoice.Invoice, _ int) *invoice.Invoice {
		return copyInvoice(inv)
	}), nil
}

func (s *InMemoryInvoiceStore) Count(ctx context.Context, filter *types.InvoiceFilter) (int, error) {
	return s.InMemoryStore.Count(ctx, filter, invoiceFilterFn)
}

func (s *InMemoryInvoiceStore) ListAll(ctx context.Context, filter *types.InvoiceFilter) ([]*invoice.Invoice, error) {
	f := *filter
	f.QueryFilter = types.NewNoLimitQueryFilter()
	return s.List(ctx, &f)
}

func (s *InMemoryInvoiceStore) Update(ctx context.Context, inv *invoice.Invoice) error {
	if _, err := s.Get(ctx, inv.ID); err != nil {
		return err
	}
	return s.InMemoryStore.Update(ctx, inv.ID, copyInvoice(inv))
}

func (s *InMemoryInvoiceStore) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.InMemoryStore.Delete(ctx, id)
}

// UpdatePaymentStatus writes the payment-derived fields only when the
// stored row still carries the expected version
func (s *InMemoryInvoiceStore) UpdatePaymentStatus(ctx context.Context, id string, status types.InvoiceStatus, amountPaid, balanceDue decimal.Decimal, version int) error {
	inv, err := s.Get(ctx, id)
	if err != nil || inv.Version != version {
		return ierr.NewError("invoice version conflict").
			WithHintf("Invoice %s was modified concurrently, retry the payment update", id).
			WithReportableDetails(map[string]interface{}{
				"invoice_id": id,
				"version":    version,
			}).
			Mark(ierr.ErrVersionConflict)
	}

	inv.Status = status
	inv.AmountPaid = amountPaid
	inv.BalanceDue = balanceDue
	inv.Version = version + 1
	return s.InMemoryStore.Update(ctx, id, inv)
}

// invoiceFilterFn implements filtering logic for invoices
func invoiceFilterFn(ctx context.Context, inv *invoice.Invoice, filter interface{}) bool {
	if !visibleInTenant(ctx, inv.TenantID, inv.BaseModel.Status) {
		return false
	}

	f, ok := filter.(*types.InvoiceFilter)
	if !ok || f == nil {
		return true
	}

	if len(f.InvoiceIDs) > 0 && !lo.Contains(f.InvoiceIDs, inv.ID) {
		return false
	}
	if f.CustomerID != "" && inv.CustomerID != f.CustomerID {
		return false
	}
	if len(f.InvoiceStatus) > 0 && !lo.Contains(f.InvoiceStatus, inv.Status) {
		return false
	}
	if f.Search != "" && !matchesSearch(f.Search, inv.InvoiceNumber, inv.CustomerName) {
		return false
	}
	if !inTimeRange(f.TimeRangeFilter, inv.CreatedAt) {
		return false
	}

	return true
}

// invoiceSortFn sorts by created_at desc to match the repository default
func invoiceSortFn(a, b *invoice.Invoice) bool {
	return a.CreatedAt.After(b.CreatedAt)
}

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/finbooks/finbooks/internal/api/dto"
	"github.com/finbooks/finbooks/internal/domain/invoice"
	ierr "github.com/finbooks/finbooks/internal/errors"
	"github.com/finbooks/finbooks/internal/types"
	webhookDto "github.com/finbooks/finbooks/internal/webhook/dto"
	"github.com/shopspring/decimal"
)

// InvoiceService orchestrates the sales invoice lifecycle: stock
// validation, total calculation, number allocation, persistence and the
// stock ledger side effects of status transitions. Stock is deducted
// when an invoice first leaves Draft and restored when a non-Draft
// invoice is deleted.
type InvoiceService interface {
	CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error)
	GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error)
	GetInvoices(ctx context.Context, filter *types.InvoiceFilter) (*dto.ListInvoicesResponse, error)
	UpdateInvoice(ctx context.Context, id string, req dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error)
	DeleteInvoice(ctx context.Context, id string) error
	GetInvoiceSummary(ctx context.Context) (*dto.InvoiceSummaryResponse, error)

	// UpdatePaymentStatus applies a new cumulative paid amount to a
	// loaded invoice, deriving status and balance. The write is guarded
	// by the invoice's version; inv is mutated on success.
	UpdatePaymentStatus(ctx context.Context, inv *invoice.Invoice, amountPaid decimal.Decimal) error
}

type invoiceService struct {
	ServiceParams
}

func NewInvoiceService(params ServiceParams) InvoiceService {
	return &invoiceService{
		ServiceParams: params,
	}
}

func (s *invoiceService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if degraded := req.DegradedFields(); len(degraded) > 0 {
		s.Logger.Warnw("invoice fields could not be parsed and fell back to defaults",
			"fields", degraded,
			"tenant_id", types.GetTenantID(ctx))
	}

	inv := req.ToInvoice(ctx)

	// Snapshot the customer reference. The invoice must stay readable
	// even if the customer is later renamed or deleted.
	cust, err := s.CustomerRepo.Get(ctx, inv.CustomerID)
	if err != nil {
		return nil, err
	}
	inv.CustomerName = cust.DisplayName

	settingsService := NewSettingsService(s.ServiceParams)
	theme, err := settingsService.GetDefaultTheme(ctx)
	if err != nil {
		return nil, err
	}
	NewInvoiceCalculator(s.Logger).Recalculate(ctx, inv, theme.TaxType)

	if err := inv.Validate(); err != nil {
		return nil, err
	}

	if err := s.DB.WithTx(ctx, func(txCtx context.Context) error {
		if !req.IgnoreStockWarning {
			if err := s.validateStock(txCtx, inv.LineItems); err != nil {
				return err
			}
		}

		if inv.InvoiceNumber == "" {
			sequenceService := NewSequenceService(s.ServiceParams)
			number, _, err := sequenceService.NextNumber(txCtx, types.SequenceCounterInvoice)
			if err != nil {
				return err
			}
			inv.InvoiceNumber = number
		}

		if err := s.InvoiceRepo.Create(txCtx, inv); err != nil {
			return err
		}

		if !inv.IsDraft() {
			return s.deductStock(txCtx, inv)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	s.recordActivity(ctx, types.ActivityCreateInvoice,
		fmt.Sprintf("Created Sales Invoice: %s", inv.InvoiceNumber), inv.ID, "sales_invoices")
	s.publishWebhookEvent(ctx, types.WebhookEventInvoiceCreated, webhookDto.InternalInvoiceEvent{
		InvoiceID: inv.ID,
		TenantID:  types.GetTenantID(ctx),
	})

	return &dto.InvoiceResponse{Invoice: inv}, nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	if id == "" {
		return nil, ierr.NewError("invoice ID is required").
			WithHint("Invoice ID is required").
			Mark(ierr.ErrValidation)
	}

	inv, err := s.InvoiceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	return &dto.InvoiceResponse{Invoice: inv}, nil
}

func (s *invoiceService) GetInvoices(ctx context.Context, filter *types.InvoiceFilter) (*dto.ListInvoicesResponse, error) {
	if filter == nil {
		filter = types.NewInvoiceFilter()
	}

	if err := filter.Validate(); err != nil {
		return nil, err
	}

	invoices, err := s.InvoiceRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	count, err := s.InvoiceRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		items = append(items, &dto.InvoiceResponse{Invoice: inv})
	}

	return &dto.ListInvoicesResponse{
		Items:      items,
		Pagination: types.NewPaginationResponse(count, filter.GetLimit(), filter.GetOffset()),
	}, nil
}

func (s *invoiceService) UpdateInvoice(ctx context.Context, id string, req dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if id == "" {
		return nil, ierr.NewError("invoice ID is required").
			WithHint("Invoice ID is required").
			Mark(ierr.ErrValidation)
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}
	if degraded := req.DegradedFields(); len(degraded) > 0 {
		s.Logger.Warnw("invoice fields could not be parsed and fell back to defaults",
			"fields", degraded,
			"invoice_id", id,
			"tenant_id", types.GetTenantID(ctx))
	}

	inv, err := s.InvoiceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	wasDraft := inv.IsDraft()
	req.Apply(inv)

	if req.CustomerID != "" && req.CustomerID != inv.CustomerID {
		cust, err := s.CustomerRepo.Get(ctx, req.CustomerID)
		if err != nil {
			return nil, err
		}
		inv.CustomerID = cust.ID
		inv.CustomerName = cust.DisplayName
	}

	if req.Status != "" {
		inv.Status = req.Status
	}
	leavingDraft := wasDraft && !inv.IsDraft()

	settingsService := NewSettingsService(s.ServiceParams)
	theme, err := settingsService.GetDefaultTheme(ctx)
	if err != nil {
		return nil, err
	}
	NewInvoiceCalculator(s.Logger).Recalculate(ctx, inv, theme.TaxType)

	inv.UpdatedBy = types.GetUserID(ctx)

	if err := inv.Validate(); err != nil {
		return nil, err
	}

	if err := s.DB.WithTx(ctx, func(txCtx context.Context) error {
		if leavingDraft && !req.IgnoreStockWarning {
			if err := s.validateStock(txCtx, inv.LineItems); err != nil {
				return err
			}
		}

		if err := s.InvoiceRepo.Update(txCtx, inv); err != nil {
			return err
		}

		// Stock moves only on the initial departure from Draft. Later
		// status changes, Sent to Paid for example, never touch stock.
		if leavingDraft {
			return s.deductStock(txCtx, inv)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	s.recordActivity(ctx, types.ActivityUpdateInvoice,
		fmt.Sprintf("Updated Invoice ID: %s", inv.ID), inv.ID, "sales_invoices")
	s.publishWebhookEvent(ctx, types.WebhookEventInvoiceUpdated, webhookDto.InternalInvoiceEvent{
		InvoiceID: inv.ID,
		TenantID:  types.GetTenantID(ctx),
	})

	return &dto.InvoiceResponse{Invoice: inv}, nil
}

func (s *invoiceService) DeleteInvoice(ctx context.Context, id string) error {
	if id == "" {
		return ierr.NewError("invoice ID is required").
			WithHint("Invoice ID is required").
			Mark(ierr.ErrValidation)
	}

	inv, err := s.InvoiceRepo.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.DB.WithTx(ctx, func(txCtx context.Context) error {
		// A non-Draft invoice deducted stock when it was issued, so the
		// deletion restores it line by line before the row goes.
		if !inv.IsDraft() {
			stockService := NewStockService(s.ServiceParams)
			for _, li := range inv.LineItems {
				if !li.MovesStock() || !li.Quantity.IsPositive() {
					continue
				}
				if _, err := stockService.ApplyTransaction(txCtx, li.ItemID,
					types.StockTransactionIn, li.Quantity, nil,
					fmt.Sprintf("Reversal for deleted Invoice #%s", inv.InvoiceNumber)); err != nil {
					return err
				}
			}
		}
		return s.InvoiceRepo.Delete(txCtx, inv.ID)
	}); err != nil {
		return err
	}

	s.recordActivity(ctx, types.ActivityDeleteInvoice,
		fmt.Sprintf("Deleted Invoice ID: %s", inv.ID), inv.ID, "sales_invoices")
	s.publishWebhookEvent(ctx, types.WebhookEventInvoiceDeleted, webhookDto.InternalInvoiceEvent{
		InvoiceID: inv.ID,
		TenantID:  types.GetTenantID(ctx),
	})

	return nil
}

// UpdatePaymentStatus derives the invoice's status from a new cumulative
// paid amount. Paid forces the balance to exactly zero; an amount inside
// the epsilon band of the total counts as paid in full. A zero amount
// reverts the invoice to Approved. The write is skipped entirely when
// nothing would change.
func (s *invoiceService) UpdatePaymentStatus(ctx context.Context, inv *invoice.Invoice, amountPaid decimal.Decimal) error {
	if amountPaid.GreaterThanOrEqual(inv.GrandTotal.Add(types.PaymentEpsilon)) {
		return ierr.NewErrorf("Payment amount (%s) exceeds total amount due (%s).",
			amountPaid, inv.GrandTotal).
			WithHint("Payment exceeds the invoice total").
			WithReportableDetails(map[string]interface{}{
				"invoice_id":  inv.ID,
				"amount_paid": amountPaid,
				"grand_total": inv.GrandTotal,
			}).
			Mark(ierr.ErrOverpayment)
	}

	var newStatus types.InvoiceStatus
	newBalance := inv.GrandTotal.Sub(amountPaid).Round(moneyPlaces)
	switch {
	case amountPaid.GreaterThanOrEqual(inv.GrandTotal.Sub(types.PaymentEpsilon)):
		newStatus = types.InvoiceStatusPaid
		newBalance = decimal.Zero
	case amountPaid.IsPositive():
		newStatus = types.InvoiceStatusPartiallyPaid
	default:
		newStatus = types.InvoiceStatusApproved
	}

	if newStatus == inv.Status && inv.AmountPaid.Equal(amountPaid) && inv.BalanceDue.Equal(newBalance) {
		return nil
	}

	if err := s.InvoiceRepo.UpdatePaymentStatus(ctx, inv.ID, newStatus, amountPaid, newBalance, inv.Version); err != nil {
		return err
	}

	inv.Status = newStatus
	inv.AmountPaid = amountPaid
	inv.BalanceDue = newBalance
	inv.Version++

	return nil
}

func (s *invoiceService) GetInvoiceSummary(ctx context.Context) (*dto.InvoiceSummaryResponse, error) {
	invoices, err := s.InvoiceRepo.ListAll(ctx, types.NewNoLimitInvoiceFilter())
	if err != nil {
		return nil, err
	}

	summary := &dto.InvoiceSummaryResponse{
		TotalInvoices:    len(invoices),
		TotalOutstanding: decimal.Zero,
		ByStatus:         make(map[string]dto.InvoiceStatusSummary),
	}

	now := time.Now().UTC()
	for _, inv := range invoices {
		byStatus := summary.ByStatus[inv.Status.String()]
		byStatus.Count++
		byStatus.Total = byStatus.Total.Add(inv.GrandTotal)
		summary.ByStatus[inv.Status.String()] = byStatus

		if !inv.BalanceDue.IsPositive() || inv.IsDraft() {
			continue
		}
		summary.TotalOutstanding = summary.TotalOutstanding.Add(inv.BalanceDue)

		overdueDays := 0
		if inv.DueDate != nil {
			overdueDays = int(now.Sub(*inv.DueDate).Hours() / 24)
		}
		switch {
		case overdueDays <= 0:
			summary.Aging.Current = summary.Aging.Current.Add(inv.BalanceDue)
		case overdueDays <= 30:
			summary.Aging.Days1To30 = summary.Aging.Days1To30.Add(inv.BalanceDue)
		case overdueDays <= 60:
			summary.Aging.Days31To60 = summary.Aging.Days31To60.Add(inv.BalanceDue)
		case overdueDays <= 90:
			summary.Aging.Days61To90 = summary.Aging.Days61To90.Add(inv.BalanceDue)
		default:
			summary.Aging.Days90Plus = summary.Aging.Days90Plus.Add(inv.BalanceDue)
		}
	}

	return summary, nil
}

// validateStock checks every product line against current stock and
// reports all violations together so the caller sees the complete list.
func (s *invoiceService) validateStock(ctx context.Context, lines invoice.LineItems) error {
	var msgs []string
	var violations []map[string]interface{}

	for _, li := range lines {
		if !li.MovesStock() || !li.Quantity.IsPositive() {
			continue
		}
		it, err := s.ItemRepo.Get(ctx, li.ItemID)
		if err != nil {
			return err
		}
		if it.CurrentStock.LessThan(li.Quantity) {
			msgs = append(msgs, fmt.Sprintf("Insufficient stock for item '%s'. Available: %s, Requested: %s",
				it.ItemName, it.CurrentStock, li.Quantity))
			violations = append(violations, map[string]interface{}{
				"item_id":   it.ID,
				"item_name": it.ItemName,
				"available": it.CurrentStock,
				"requested": li.Quantity,
			})
		}
	}

	if len(msgs) > 0 {
		return ierr.NewError(strings.Join(msgs, " ")).
			WithHint("One or more line items exceed available stock").
			WithReportableDetails(map[string]interface{}{
				"violations": violations,
			}).
			Mark(ierr.ErrInsufficientStock)
	}
	return nil
}

// deductStock emits one OUT ledger entry per product line. Insufficient
// stock here was pre-validated but the ledger still enforces it.
func (s *invoiceService) deductStock(ctx context.Context, inv *invoice.Invoice) error {
	stockService := NewStockService(s.ServiceParams)
	for _, li := range inv.LineItems {
		if !li.MovesStock() || !li.Quantity.IsPositive() {
			continue
		}
		rate := li.Rate
		if _, err := stockService.ApplyTransaction(ctx, li.ItemID,
			types.StockTransactionOut, li.Quantity, &rate,
			fmt.Sprintf("Sale against Invoice #%s", inv.InvoiceNumber)); err != nil {
			return err
		}
	}
	return nil
}

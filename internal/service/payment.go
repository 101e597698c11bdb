package service

import (
	"context"
	"fmt"

	"github.com/finbooks/finbooks/internal/api/dto"
	"github.com/finbooks/finbooks/internal/domain/invoice"
	"github.com/finbooks/finbooks/internal/domain/payment"
	ierr "github.com/finbooks/finbooks/internal/errors"
	"github.com/finbooks/finbooks/internal/types"
	webhookDto "github.com/finbooks/finbooks/internal/webhook/dto"
	"github.com/shopspring/decimal"
)

// PaymentService records customer payments and allocates them across
// invoices. The caller's invoice order decides which invoices get paid
// first when the amount does not cover everything; a payment exceeding
// the selected invoices' total due is rejected whole, never partially
// accepted.
type PaymentService interface {
	RecordPayment(ctx context.Context, req dto.CreatePaymentRequest) (*dto.PaymentResponse, error)
	GetPayment(ctx context.Context, id string) (*dto.PaymentResponse, error)
	GetPayments(ctx context.Context, filter *types.PaymentFilter) (*dto.ListPaymentsResponse, error)
}

type paymentService struct {
	ServiceParams
}

func NewPaymentService(params ServiceParams) PaymentService {
	return &paymentService{
		ServiceParams: params,
	}
}

func (s *paymentService) RecordPayment(ctx context.Context, req dto.CreatePaymentRequest) (*dto.PaymentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.Amount.Degraded || req.PaymentDate.Degraded {
		s.Logger.Warnw("payment fields could not be parsed and fell back to defaults",
			"amount_raw", req.Amount.Raw,
			"payment_date_raw", req.PaymentDate.Raw,
			"tenant_id", types.GetTenantID(ctx))
	}

	p := req.ToPayment(ctx)

	invoiceService := NewInvoiceService(s.ServiceParams)

	if err := s.DB.WithTx(ctx, func(txCtx context.Context) error {
		// Due amounts are read fresh inside the transaction, never
		// trusted from the request.
		invoices := make([]*invoice.Invoice, 0, len(req.InvoiceIDs))
		totalDue := decimal.Zero
		for _, id := range req.InvoiceIDs {
			inv, err := s.InvoiceRepo.Get(txCtx, id)
			if err != nil {
				if ierr.IsNotFound(err) {
					// One bad id must not block payment against the rest
					s.Logger.Warnw("invoice not found for payment application",
						"invoice_id", id,
						"tenant_id", types.GetTenantID(txCtx))
					continue
				}
				return err
			}
			invoices = append(invoices, inv)
			totalDue = totalDue.Add(inv.GrandTotal.Sub(inv.AmountPaid))
		}

		if p.Amount.GreaterThanOrEqual(totalDue.Add(types.PaymentEpsilon)) {
			return ierr.NewErrorf("Payment amount (%s) exceeds total amount due (%s).",
				p.Amount, totalDue).
				WithHint("Payment exceeds the amount due on the selected invoices").
				WithReportableDetails(map[string]interface{}{
					"amount":    p.Amount,
					"total_due": totalDue,
				}).
				Mark(ierr.ErrOverpayment)
		}

		if err := s.PaymentRepo.Create(txCtx, p); err != nil {
			return err
		}

		remaining := p.Amount
		for _, inv := range invoices {
			if !remaining.IsPositive() {
				break
			}
			applied := decimal.Min(remaining, inv.GrandTotal.Sub(inv.AmountPaid))

			if err := invoiceService.UpdatePaymentStatus(txCtx, inv, inv.AmountPaid.Add(applied)); err != nil {
				return err
			}

			p.AppliedTo = append(p.AppliedTo, payment.Application{
				InvoiceID:     inv.ID,
				AmountApplied: applied,
			})
			remaining = remaining.Sub(applied)
		}

		return s.PaymentRepo.UpdateApplications(txCtx, p.ID, p.AppliedTo)
	}); err != nil {
		return nil, err
	}

	s.recordActivity(ctx, types.ActivityRecordPayment,
		fmt.Sprintf("Recorded payment of %s", p.Amount), p.ID, "payments")

	s.publishWebhookEvent(ctx, types.WebhookEventPaymentCreated, webhookDto.InternalPaymentEvent{
		PaymentID: p.ID,
		TenantID:  types.GetTenantID(ctx),
	})
	for _, app := range p.AppliedTo {
		s.publishWebhookEvent(ctx, types.WebhookEventInvoicePaymentReceived, webhookDto.InternalInvoiceEvent{
			InvoiceID: app.InvoiceID,
			TenantID:  types.GetTenantID(ctx),
		})
	}

	return &dto.PaymentResponse{Payment: p}, nil
}

func (s *paymentService) GetPayment(ctx context.Context, id string) (*dto.PaymentResponse, error) {
	if id == "" {
		return nil, ierr.NewError("payment ID is required").
			WithHint("Payment ID is required").
			Mark(ierr.ErrValidation)
	}

	p, err := s.PaymentRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	return &dto.PaymentResponse{Payment: p}, nil
}

func (s *paymentService) GetPayments(ctx context.Context, filter *types.PaymentFilter) (*dto.ListPaymentsResponse, error) {
	if filter == nil {
		filter = types.NewPaymentFilter()
	}

	if err := filter.Validate(); err != nil {
		return nil, err
	}

	payments, err := s.PaymentRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	count, err := s.PaymentRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		items = append(items, &dto.PaymentResponse{Payment: p})
	}

	return &dto.ListPaymentsResponse{
		Items:      items,
		Pagination: types.NewPaginationResponse(count, filter.GetLimit(), filter.GetOffset()),
	}, nil
}

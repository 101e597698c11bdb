package dto

import (
	"context"
	"time"

	"github.com/finbooks/finbooks/internal/domain/payment"
	ierr "github.com/finbooks/finbooks/internal/errors"
	"github.com/finbooks/finbooks/internal/types"
	"github.com/finbooks/finbooks/internal/validator"
)

// CreatePaymentRequest records money received and allocates it across
// the listed invoices in the order given.
type CreatePaymentRequest struct {
	CustomerID string `json:"customerId" validate:"required"`

	PaymentDate types.FlexTime `json:"paymentDate"`

	Amount types.FlexDecimal `json:"amount"`

	// Reference is a free form bank or UTR reference
	Reference string `json:"reference" validate:"omitempty,max=255"`

	// InvoiceIDs is the allocation order; at least one is required
	InvoiceIDs []string `json:"invoiceIds" validate:"required,min=1"`
}

type PaymentResponse struct {
	*payment.Payment
}

// ListPaymentsResponse represents the response for listing payments
type ListPaymentsResponse = types.ListResponse[*PaymentResponse]

func (r *CreatePaymentRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if !r.Amount.IsPositive() {
		return ierr.NewError("amount must be positive").
			WithHint("Payment amount must be greater than zero").
			WithReportableDetails(map[string]interface{}{
				"amount": r.Amount.Decimal,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// ToPayment builds the payment shell; allocations are filled by the
// payment service as it walks the invoices.
func (r *CreatePaymentRequest) ToPayment(ctx context.Context) *payment.Payment {
	paymentDate := time.Now().UTC()
	if r.PaymentDate.Time != nil {
		paymentDate = *r.PaymentDate.Time
	}
	return &payment.Payment{
		ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PAYMENT),
		CustomerID:  r.CustomerID,
		PaymentDate: paymentDate,
		Amount:      r.Amount.Decimal,
		Reference:   r.Reference,
		AppliedTo:   payment.Applications{},
		BaseModel:   types.GetDefaultBaseModel(ctx),
	}
}

package dto

import (
	"context"
	"time"

	"github.com/finbooks/finbooks/internal/domain/taxrate"
	ierr "github.com/finbooks/finbooks/internal/errors"
	"github.com/finbooks/finbooks/internal/types"
	"github.com/finbooks/finbooks/internal/validator"
	"github.com/shopspring/decimal"
)

// CreateTaxRateRequest covers all three regimes. GST slabs only need
// taxName and taxRate; TDS and TCS rates also carry the statutory fields.
type CreateTaxRateRequest struct {
	TaxType types.TaxRateType `json:"taxType" validate:"required"`
	TaxName string            `json:"taxName" validate:"required,max=255"`
	TaxRate decimal.Decimal   `json:"taxRate"`

	NatureOfPayment string           `json:"natureOfPayment" validate:"omitempty,max=255"`
	Section         string           `json:"section" validate:"omitempty,max=50"`
	RateNoPan       *decimal.Decimal `json:"rateNoPan,omitempty"`
	Threshold       *decimal.Decimal `json:"threshold,omitempty"`
	EffectiveDate   *time.Time       `json:"effectiveDate,omitempty"`
}

type UpdateTaxRateRequest struct {
	TaxName         *string          `json:"taxName" validate:"omitempty,max=255"`
	TaxRate         *decimal.Decimal `json:"taxRate"`
	NatureOfPayment *string          `json:"natureOfPayment" validate:"omitempty,max=255"`
	Section         *string          `json:"section" validate:"omitempty,max=50"`
	RateNoPan       *decimal.Decimal `json:"rateNoPan"`
	Threshold       *decimal.Decimal `json:"threshold"`
	EffectiveDate   *time.Time       `json:"effectiveDate"`
}

type TaxRateResponse struct {
	*taxrate.TaxRate
}

// ListTaxRatesResponse represents the response for listing tax rates
type ListTaxRatesResponse = types.ListResponse[*TaxRateResponse]

func (r *CreateTaxRateRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if !r.TaxType.Valid() {
		return ierr.NewError("invalid tax type").
			WithHint("Tax type must be one of gst, tds, tcs").
			WithReportableDetails(map[string]interface{}{
				"tax_type": r.TaxType,
			}).
			Mark(ierr.ErrValidation)
	}
	if r.TaxRate.IsNegative() {
		return ierr.NewError("taxRate must not be negative").
			WithHint("Tax rate must be zero or positive").
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (r *CreateTaxRateRequest) ToTaxRate(ctx context.Context) *taxrate.TaxRate {
	return &taxrate.TaxRate{
		ID:              types.GenerateUUIDWithPrefix(types.UUID_PREFIX_TAX_RATE),
		TaxType:         r.TaxType,
		TaxName:         r.TaxName,
		TaxRate:         r.TaxRate,
		NatureOfPayment: r.NatureOfPayment,
		Section:         r.Section,
		RateNoPan:       r.RateNoPan,
		Threshold:       r.Threshold,
		EffectiveDate:   r.EffectiveDate,
		BaseModel:       types.GetDefaultBaseModel(ctx),
	}
}

func (r *UpdateTaxRateRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.TaxRate != nil && r.TaxRate.IsNegative() {
		return ierr.NewError("taxRate must not be negative").
			WithHint("Tax rate must be zero or positive").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// Apply copies the provided fields onto an existing tax rate. TaxType is
// immutable; a rate never changes regime after creation.
func (r *UpdateTaxRateRequest) Apply(t *taxrate.TaxRate) {
	if r.TaxName != nil {
		t.TaxName = *r.TaxName
	}
	if r.TaxRate != nil {
		t.TaxRate = *r.TaxRate
	}
	if r.NatureOfPayment != nil {
		t.NatureOfPayment = *r.NatureOfPayment
	}
	if r.Section != nil {
		t.Section = *r.Section
	}
	if r.RateNoPan != nil {
		t.RateNoPan = r.RateNoPan
	}
	if r.Threshold != nil {
		t.Threshold = r.Threshold
	}
	if r.EffectiveDate != nil {
		t.EffectiveDate = r.EffectiveDate
	}
}

package taxrate

import (
	"time"

	ierr "github.com/finbooks/finbooks/internal/errors"
	"github.com/finbooks/finbooks/internal/types"
	"github.com/shopspring/decimal"
)

// TaxRate is a configured tax rate. One entity covers the three regimes,
// distinguished by TaxType: GST slabs carry just name and rate, TDS/TCS
// rates additionally carry the nature of payment, section, no-PAN rate,
// threshold and effective date.
type TaxRate struct {
	// ID is the unique identifier for the tax rate
	ID string `db:"id" json:"id"`

	// TaxType is the regime this rate belongs to (gst, tds, tcs)
	TaxType types.TaxRateType `db:"tax_type" json:"taxType"`

	// TaxName is the display name, e.g. "GST 18%" or "194C Contractor"
	TaxName string `db:"tax_name" json:"taxName"`

	// TaxRate is the rate percentage
	TaxRate decimal.Decimal `db:"tax_rate" json:"taxRate"`

	// NatureOfPayment describes what the deduction applies to (tds/tcs)
	NatureOfPayment string `db:"nature_of_payment" json:"natureOfPayment,omitempty"`

	// Section is the statutory section, e.g. "194C" (tds/tcs)
	Section string `db:"section" json:"section,omitempty"`

	// RateNoPan is the higher rate applied when no PAN is on file (tds/tcs)
	RateNoPan *decimal.Decimal `db:"rate_no_pan" json:"rateNoPan,omitempty"`

	// Threshold is the amount above which the deduction applies (tds/tcs)
	Threshold *decimal.Decimal `db:"threshold" json:"threshold,omitempty"`

	// EffectiveDate is when the rate comes into force (tds/tcs)
	EffectiveDate *time.Time `db:"effective_date" json:"effectiveDate,omitempty"`

	types.BaseModel
}

func (t *TaxRate) TableName() string {
	return "tax_rates"
}

func (t *TaxRate) Validate() error {
	if !t.TaxType.Valid() {
		return ierr.NewError("invalid tax type").
			WithHint("Tax type must be one of gst, tds, tcs").
			WithReportableDetails(map[string]interface{}{
				"tax_type": t.TaxType,
			}).
			Mark(ierr.ErrValidation)
	}
	if t.TaxName == "" {
		return ierr.NewError("taxName is required").
			WithHint("Tax name is required").
			Mark(ierr.ErrValidation)
	}
	if t.TaxRate.IsNegative() {
		return ierr.NewError("taxRate must not be negative").
			WithHint("Tax rate must be zero or positive").
			WithReportableDetails(map[string]interface{}{
				"tax_rate": t.TaxRate,
			}).
			Mark(ierr.ErrValidation)
	}
	if t.TaxType != types.TaxRateTypeGST && t.NatureOfPayment == "" {
		return ierr.NewError("natureOfPayment is required").
			WithHint("Nature of payment is required for TDS and TCS rates").
			Mark(ierr.ErrValidation)
	}
	return nil
}

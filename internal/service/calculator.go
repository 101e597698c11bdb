package service

import (
	"context"
	"strings"

	"github.com/finbooks/finbooks/internal/domain/invoice"
	"github.com/finbooks/finbooks/internal/logger"
	"github.com/finbooks/finbooks/internal/types"
	"github.com/shopspring/decimal"
)

// moneyPlaces is the rounding applied to derived monetary amounts.
const moneyPlaces = 2

// InvoiceCalculator derives line and document totals for a sales invoice
// according to the active theme's tax display mode. It never rejects an
// invoice over a malformed amount; unparseable values count as zero and
// are logged instead.
type InvoiceCalculator struct {
	logger *logger.Logger
}

func NewInvoiceCalculator(logger *logger.Logger) *InvoiceCalculator {
	return &InvoiceCalculator{logger: logger}
}

// Recalculate rewrites the derived totals on inv in place.
//
// In no_tax mode every tax amount is forced to zero and the document is
// rebuilt from its lines: line amount is quantity*rate - discountPerItem,
// the subtotal is the sum of line amounts, and the invoice level discount
// (flat, or percentage of subtotal when the value carries a trailing %)
// produces the grand total. In the default mode the caller supplied tax
// fields are persisted as given and only the balance is re-derived.
// balanceDue == grandTotal - amountPaid holds in both modes.
func (c *InvoiceCalculator) Recalculate(ctx context.Context, inv *invoice.Invoice, mode types.TaxDisplayMode) {
	if mode == types.TaxDisplayModeNoTax {
		c.applyNoTax(ctx, inv)
	}
	inv.BalanceDue = inv.GrandTotal.Sub(inv.AmountPaid).Round(moneyPlaces)
}

func (c *InvoiceCalculator) applyNoTax(ctx context.Context, inv *invoice.Invoice) {
	subTotal := decimal.Zero
	for i := range inv.LineItems {
		li := &inv.LineItems[i]
		li.TaxRate = decimal.Zero
		li.TaxAmount = decimal.Zero
		li.Amount = li.Quantity.Mul(li.Rate).Sub(li.DiscountPerItem).Round(moneyPlaces)
		subTotal = subTotal.Add(li.Amount)
	}

	inv.SubTotal = subTotal
	inv.DiscountAmountCalculated = c.discountAmount(ctx, inv.DiscountValue, subTotal)
	inv.GrandTotal = subTotal.Sub(inv.DiscountAmountCalculated).Round(moneyPlaces)

	// TaxableAmount keeps the assessable value of the supply; only the
	// tax computed on it is zeroed.
	inv.TaxableAmount = subTotal
	inv.CGSTAmount = decimal.Zero
	inv.SGSTAmount = decimal.Zero
	inv.IGSTAmount = decimal.Zero
	inv.CessAmount = decimal.Zero
	inv.TaxTotal = decimal.Zero
}

// discountAmount resolves the invoice level discount value against the
// subtotal. A trailing % marks a percentage of subtotal; anything else is
// a flat amount.
func (c *InvoiceCalculator) discountAmount(ctx context.Context, value string, subTotal decimal.Decimal) decimal.Decimal {
	raw := strings.TrimSpace(value)
	if raw == "" {
		return decimal.Zero
	}

	if strings.HasSuffix(raw, "%") {
		pct, ok := c.parseAmount(ctx, strings.TrimSuffix(raw, "%"), "discountValue")
		if !ok {
			return decimal.Zero
		}
		return subTotal.Mul(pct).Div(decimal.NewFromInt(100)).Round(moneyPlaces)
	}

	flat, ok := c.parseAmount(ctx, raw, "discountValue")
	if !ok {
		return decimal.Zero
	}
	return flat.Round(moneyPlaces)
}

// parseAmount parses a client supplied numeric string, tolerating comma
// grouping. A failure warns and reports false so a formatting glitch never
// blocks invoice creation.
func (c *InvoiceCalculator) parseAmount(ctx context.Context, raw, field string) (decimal.Decimal, bool) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if cleaned == "" {
		return decimal.Zero, false
	}
	parsed, err := decimal.NewFromString(cleaned)
	if err != nil {
		c.logger.Warnw("could not parse numeric value, treating as zero",
			"field", field,
			"value", raw,
			"tenant_id", types.GetTenantID(ctx))
		return decimal.Zero, false
	}
	return parsed, true
}

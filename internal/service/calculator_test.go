package service

import (
	"testing"

	"github.com/finbooks/finbooks/internal/domain/invoice"
	"github.com/finbooks/finbooks/internal/testutil"
	"github.com/finbooks/finbooks/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type InvoiceCalculatorSuite struct {
	testutil.BaseServiceTestSuite
	calc *InvoiceCalculator
}

func TestInvoiceCalculator(t *testing.T) {
	suite.Run(t, new(InvoiceCalculatorSuite))
}

func (s *InvoiceCalculatorSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.calc = NewInvoiceCalculator(s.GetLogger())
}

func (s *InvoiceCalculatorSuite) TearDownTest() {
	s.BaseServiceTestSuite.TearDownTest()
}

// twoLineInvoice returns lines worth 200 and 50 after per-item discount.
func (s *InvoiceCalculatorSuite) twoLineInvoice() *invoice.Invoice {
	return &invoice.Invoice{
		LineItems: invoice.LineItems{
			{
				Description: "Widget",
				Quantity:    decimal.NewFromInt(2),
				Rate:        decimal.NewFromInt(100),
			},
			{
				Description:     "Gadget",
				Quantity:        decimal.NewFromInt(1),
				Rate:            decimal.NewFromInt(60),
				DiscountPerItem: decimal.NewFromInt(10),
			},
		},
	}
}

func (s *InvoiceCalculatorSuite) TestNoTaxRebuildsTotals() {
	inv := s.twoLineInvoice()
	inv.DiscountValue = "10%"

	// caller supplied tax values must not survive no_tax mode
	inv.LineItems[0].TaxRate = decimal.NewFromInt(18)
	inv.LineItems[0].TaxAmount = decimal.NewFromInt(36)
	inv.CGSTAmount = decimal.NewFromInt(18)
	inv.SGSTAmount = decimal.NewFromInt(18)
	inv.TaxTotal = decimal.NewFromInt(36)

	s.calc.Recalculate(s.GetContext(), inv, types.TaxDisplayModeNoTax)

	s.True(inv.LineItems[0].Amount.Equal(decimal.NewFromInt(200)))
	s.True(inv.LineItems[1].Amount.Equal(decimal.NewFromInt(50)))
	s.True(inv.SubTotal.Equal(decimal.NewFromInt(250)))
	s.True(inv.DiscountAmountCalculated.Equal(decimal.NewFromInt(25)))
	s.True(inv.GrandTotal.Equal(decimal.NewFromInt(225)))
	s.True(inv.BalanceDue.Equal(decimal.NewFromInt(225)))

	// assessable value stays, only the tax on it is zeroed
	s.True(inv.TaxableAmount.Equal(decimal.NewFromInt(250)))
	s.True(inv.LineItems[0].TaxRate.IsZero())
	s.True(inv.LineItems[0].TaxAmount.IsZero())
	s.True(inv.CGSTAmount.IsZero())
	s.True(inv.SGSTAmount.IsZero())
	s.True(inv.IGSTAmount.IsZero())
	s.True(inv.CessAmount.IsZero())
	s.True(inv.TaxTotal.IsZero())
}

func (s *InvoiceCalculatorSuite) TestNoTaxFlatDiscount() {
	inv := s.twoLineInvoice()
	inv.DiscountValue = "30"

	s.calc.Recalculate(s.GetContext(), inv, types.TaxDisplayModeNoTax)

	s.True(inv.DiscountAmountCalculated.Equal(decimal.NewFromInt(30)))
	s.True(inv.GrandTotal.Equal(decimal.NewFromInt(220)))
}

func (s *InvoiceCalculatorSuite) TestNoTaxCommaGroupedDiscount() {
	inv := &invoice.Invoice{
		LineItems: invoice.LineItems{
			{Quantity: decimal.NewFromInt(5), Rate: decimal.NewFromInt(1000)},
		},
		DiscountValue: "1,000",
	}

	s.calc.Recalculate(s.GetContext(), inv, types.TaxDisplayModeNoTax)

	s.True(inv.SubTotal.Equal(decimal.NewFromInt(5000)))
	s.True(inv.DiscountAmountCalculated.Equal(decimal.NewFromInt(1000)))
	s.True(inv.GrandTotal.Equal(decimal.NewFromInt(4000)))
}

func (s *InvoiceCalculatorSuite) TestNoTaxMalformedDiscountCountsAsZero() {
	inv := s.twoLineInvoice()
	inv.DiscountValue = "abc%"

	s.calc.Recalculate(s.GetContext(), inv, types.TaxDisplayModeNoTax)

	s.True(inv.DiscountAmountCalculated.IsZero())
	s.True(inv.GrandTotal.Equal(decimal.NewFromInt(250)))
}

func (s *InvoiceCalculatorSuite) TestNoTaxEmptyDiscountCountsAsZero() {
	inv := s.twoLineInvoice()
	inv.DiscountValue = "   "

	s.calc.Recalculate(s.GetContext(), inv, types.TaxDisplayModeNoTax)

	s.True(inv.DiscountAmountCalculated.IsZero())
	s.True(inv.GrandTotal.Equal(decimal.NewFromInt(250)))
}

func (s *InvoiceCalculatorSuite) TestNoTaxRoundsLineAmounts() {
	inv := &invoice.Invoice{
		LineItems: invoice.LineItems{
			{Quantity: decimal.NewFromInt(3), Rate: decimal.RequireFromString("33.335")},
		},
	}

	s.calc.Recalculate(s.GetContext(), inv, types.TaxDisplayModeNoTax)

	// 3 * 33.335 = 100.005, rounded half away from zero
	s.True(inv.LineItems[0].Amount.Equal(decimal.RequireFromString("100.01")))
	s.True(inv.SubTotal.Equal(decimal.RequireFromString("100.01")))
}

func (s *InvoiceCalculatorSuite) TestDefaultModeKeepsCallerTotals() {
	inv := &invoice.Invoice{
		LineItems: invoice.LineItems{
			{
				Quantity:  decimal.NewFromInt(1),
				Rate:      decimal.NewFromInt(100),
				TaxRate:   decimal.NewFromInt(18),
				TaxAmount: decimal.NewFromInt(18),
				Amount:    decimal.NewFromInt(100),
			},
		},
		SubTotal:   decimal.NewFromInt(100),
		CGSTAmount: decimal.NewFromInt(9),
		SGSTAmount: decimal.NewFromInt(9),
		TaxTotal:   decimal.NewFromInt(18),
		GrandTotal: decimal.NewFromInt(118),
		AmountPaid: decimal.RequireFromString("33.333"),
	}

	s.calc.Recalculate(s.GetContext(), inv, types.TaxDisplayModeDefault)

	// caller supplied tax breakdown survives untouched
	s.True(inv.CGSTAmount.Equal(decimal.NewFromInt(9)))
	s.True(inv.SGSTAmount.Equal(decimal.NewFromInt(9)))
	s.True(inv.TaxTotal.Equal(decimal.NewFromInt(18)))
	s.True(inv.LineItems[0].TaxAmount.Equal(decimal.NewFromInt(18)))
	s.True(inv.GrandTotal.Equal(decimal.NewFromInt(118)))

	// only the balance is derived
	s.True(inv.BalanceDue.Equal(decimal.RequireFromString("84.67")))
}

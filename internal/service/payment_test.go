package service

import (
	"testing"

	"github.com/finbooks/finbooks/internal/api/dto"
	"github.com/finbooks/finbooks/internal/domain/customer"
	"github.com/finbooks/finbooks/internal/domain/invoice"
	ierr "github.com/finbooks/finbooks/internal/errors"
	"github.com/finbooks/finbooks/internal/testutil"
	"github.com/finbooks/finbooks/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type PaymentServiceSuite struct {
	testutil.BaseServiceTestSuite
	service  PaymentService
	testData struct {
		customer *customer.Customer
		inv400   *invoice.Invoice
		inv600   *invoice.Invoice
	}
}

func TestPaymentService(t *testing.T) {
	suite.Run(t, new(PaymentServiceSuite))
}

func (s *PaymentServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.setupService()
	s.setupTestData()
}

func (s *PaymentServiceSuite) TearDownTest() {
	s.BaseServiceTestSuite.TearDownTest()
}

func (s *PaymentServiceSuite) setupService() {
	s.service = NewPaymentService(ServiceParams{
		Logger:           s.GetLogger(),
		Config:           s.GetConfig(),
		DB:               s.GetDB(),
		Cache:            s.GetCache(),
		CustomerRepo:     s.GetStores().CustomerRepo,
		VendorRepo:       s.GetStores().VendorRepo,
		AccountRepo:      s.GetStores().AccountRepo,
		TaxRateRepo:      s.GetStores().TaxRateRepo,
		ItemRepo:         s.GetStores().ItemRepo,
		InvoiceRepo:      s.GetStores().InvoiceRepo,
		CreditNoteRepo:   s.GetStores().CreditNoteRepo,
		QuoteRepo:        s.GetStores().QuoteRepo,
		PaymentRepo:      s.GetStores().PaymentRepo,
		SettingsRepo:     s.GetStores().SettingsRepo,
		ActivityRepo:     s.GetStores().ActivityRepo,
		WebhookPublisher: s.GetWebhookPublisher(),
	})
}

func (s *PaymentServiceSuite) setupTestData() {
	s.testData.customer = &customer.Customer{
		ID:           "cust_test_payment",
		DisplayName:  "Acme Traders",
		PaymentTerms: "Net 30",
		BaseModel:    types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().CustomerRepo.Create(s.GetContext(), s.testData.customer))

	s.testData.inv400 = s.createInvoice("inv_400", "INV-1", 400)
	s.testData.inv600 = s.createInvoice("inv_600", "INV-2", 600)
}

// createInvoice seeds an issued invoice with the given total and nothing
// paid against it yet.
func (s *PaymentServiceSuite) createInvoice(id, number string, total int64) *invoice.Invoice {
	grandTotal := decimal.NewFromInt(total)
	inv := &invoice.Invoice{
		ID:            id,
		InvoiceNumber: number,
		CustomerID:    s.testData.customer.ID,
		CustomerName:  s.testData.customer.DisplayName,
		LineItems: invoice.LineItems{
			{
				Description: "Professional services",
				Quantity:    decimal.NewFromInt(1),
				Rate:        grandTotal,
				Amount:      grandTotal,
			},
		},
		SubTotal:   grandTotal,
		GrandTotal: grandTotal,
		AmountPaid: decimal.Zero,
		BalanceDue: grandTotal,
		Currency:   "INR",
		Status:     types.InvoiceStatusSent,
		Version:    1,
		BaseModel:  types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().InvoiceRepo.Create(s.GetContext(), inv))
	return inv
}

func (s *PaymentServiceSuite) newPaymentRequest(amount float64, invoiceIDs ...string) dto.CreatePaymentRequest {
	return dto.CreatePaymentRequest{
		CustomerID: s.testData.customer.ID,
		Amount:     types.NewFlexDecimal(decimal.NewFromFloat(amount)),
		Reference:  "UTR-12345",
		InvoiceIDs: invoiceIDs,
	}
}

func (s *PaymentServiceSuite) getInvoice(id string) *invoice.Invoice {
	inv, err := s.GetStores().InvoiceRepo.Get(s.GetContext(), id)
	s.NoError(err)
	return inv
}

func (s *PaymentServiceSuite) TestRecordPaymentSplitAcrossInvoices() {
	resp, err := s.service.RecordPayment(s.GetContext(),
		s.newPaymentRequest(1000, s.testData.inv400.ID, s.testData.inv600.ID))
	s.NoError(err)
	s.NotNil(resp)
	s.True(resp.Amount.Equal(decimal.NewFromInt(1000)))

	s.Len(resp.AppliedTo, 2)
	s.Equal(s.testData.inv400.ID, resp.AppliedTo[0].InvoiceID)
	s.True(resp.AppliedTo[0].AmountApplied.Equal(decimal.NewFromInt(400)))
	s.Equal(s.testData.inv600.ID, resp.AppliedTo[1].InvoiceID)
	s.True(resp.AppliedTo[1].AmountApplied.Equal(decimal.NewFromInt(600)))

	inv400 := s.getInvoice(s.testData.inv400.ID)
	s.Equal(types.InvoiceStatusPaid, inv400.Status)
	s.True(inv400.BalanceDue.IsZero())
	s.Equal(2, inv400.Version)

	inv600 := s.getInvoice(s.testData.inv600.ID)
	s.Equal(types.InvoiceStatusPaid, inv600.Status)
	s.True(inv600.BalanceDue.IsZero())

	stored, err := s.GetStores().PaymentRepo.Get(s.GetContext(), resp.ID)
	s.NoError(err)
	s.Len(stored.AppliedTo, 2)
}

func (s *PaymentServiceSuite) TestRecordPaymentPartialFollowsCallerOrder() {
	resp, err := s.service.RecordPayment(s.GetContext(),
		s.newPaymentRequest(500, s.testData.inv400.ID, s.testData.inv600.ID))
	s.NoError(err)

	s.Len(resp.AppliedTo, 2)
	s.True(resp.AppliedTo[0].AmountApplied.Equal(decimal.NewFromInt(400)))
	s.True(resp.AppliedTo[1].AmountApplied.Equal(decimal.NewFromInt(100)))

	inv400 := s.getInvoice(s.testData.inv400.ID)
	s.Equal(types.InvoiceStatusPaid, inv400.Status)
	s.True(inv400.BalanceDue.IsZero())

	inv600 := s.getInvoice(s.testData.inv600.ID)
	s.Equal(types.InvoiceStatusPartiallyPaid, inv600.Status)
	s.True(inv600.AmountPaid.Equal(decimal.NewFromInt(100)))
	s.True(inv600.BalanceDue.Equal(decimal.NewFromInt(500)))
}

func (s *PaymentServiceSuite) TestRecordPaymentSequential() {
	_, err := s.service.RecordPayment(s.GetContext(),
		s.newPaymentRequest(400, s.testData.inv600.ID))
	s.NoError(err)

	inv600 := s.getInvoice(s.testData.inv600.ID)
	s.Equal(types.InvoiceStatusPartiallyPaid, inv600.Status)
	s.True(inv600.BalanceDue.Equal(decimal.NewFromInt(200)))

	_, err = s.service.RecordPayment(s.GetContext(),
		s.newPaymentRequest(200, s.testData.inv600.ID))
	s.NoError(err)

	inv600 = s.getInvoice(s.testData.inv600.ID)
	s.Equal(types.InvoiceStatusPaid, inv600.Status)
	s.True(inv600.BalanceDue.IsZero())
	s.Equal(3, inv600.Version)
}

func (s *PaymentServiceSuite) TestRecordPaymentOverpaymentRejectedWhole() {
	_, err := s.service.RecordPayment(s.GetContext(),
		s.newPaymentRequest(1000.01, s.testData.inv400.ID, s.testData.inv600.ID))
	s.Error(err)
	s.True(ierr.IsOverpayment(err))
	s.Contains(err.Error(), "Payment amount (1000.01) exceeds total amount due (1000)")

	// the whole payment is rejected, nothing persisted on either side
	count, err := s.GetStores().PaymentRepo.Count(s.GetContext(), types.NewPaymentFilter())
	s.NoError(err)
	s.Equal(0, count)

	inv400 := s.getInvoice(s.testData.inv400.ID)
	s.Equal(types.InvoiceStatusSent, inv400.Status)
	s.True(inv400.AmountPaid.IsZero())
	s.Equal(1, inv400.Version)

	inv600 := s.getInvoice(s.testData.inv600.ID)
	s.Equal(types.InvoiceStatusSent, inv600.Status)
	s.True(inv600.AmountPaid.IsZero())
}

func (s *PaymentServiceSuite) TestRecordPaymentSkipsUnknownInvoice() {
	resp, err := s.service.RecordPayment(s.GetContext(),
		s.newPaymentRequest(400, "inv_missing", s.testData.inv400.ID))
	s.NoError(err)

	s.Len(resp.AppliedTo, 1)
	s.Equal(s.testData.inv400.ID, resp.AppliedTo[0].InvoiceID)
	s.True(resp.AppliedTo[0].AmountApplied.Equal(decimal.NewFromInt(400)))

	inv400 := s.getInvoice(s.testData.inv400.ID)
	s.Equal(types.InvoiceStatusPaid, inv400.Status)
}

func (s *PaymentServiceSuite) TestRecordPaymentReadsDueFresh() {
	// 150 already paid against the first invoice
	s.NoError(s.GetStores().InvoiceRepo.UpdatePaymentStatus(s.GetContext(),
		s.testData.inv400.ID, types.InvoiceStatusPartiallyPaid,
		decimal.NewFromInt(150), decimal.NewFromInt(250), 1))

	// 250 + 600 is now the exact total due
	resp, err := s.service.RecordPayment(s.GetContext(),
		s.newPaymentRequest(850, s.testData.inv400.ID, s.testData.inv600.ID))
	s.NoError(err)

	s.True(resp.AppliedTo[0].AmountApplied.Equal(decimal.NewFromInt(250)))
	s.True(resp.AppliedTo[1].AmountApplied.Equal(decimal.NewFromInt(600)))

	inv400 := s.getInvoice(s.testData.inv400.ID)
	s.Equal(types.InvoiceStatusPaid, inv400.Status)
	s.True(inv400.BalanceDue.IsZero())

	inv600 := s.getInvoice(s.testData.inv600.ID)
	s.Equal(types.InvoiceStatusPaid, inv600.Status)
}

func (s *PaymentServiceSuite) TestRecordPaymentZeroAmountRejected() {
	_, err := s.service.RecordPayment(s.GetContext(),
		s.newPaymentRequest(0, s.testData.inv400.ID))
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *PaymentServiceSuite) TestRecordPaymentWithoutInvoicesRejected() {
	req := dto.CreatePaymentRequest{
		CustomerID: s.testData.customer.ID,
		Amount:     types.NewFlexDecimal(decimal.NewFromInt(100)),
	}
	_, err := s.service.RecordPayment(s.GetContext(), req)
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *PaymentServiceSuite) TestGetPaymentsByInvoice() {
	resp, err := s.service.RecordPayment(s.GetContext(),
		s.newPaymentRequest(500, s.testData.inv400.ID, s.testData.inv600.ID))
	s.NoError(err)

	_, err = s.service.RecordPayment(s.GetContext(),
		s.newPaymentRequest(300, s.testData.inv600.ID))
	s.NoError(err)

	filter := types.NewPaymentFilter()
	filter.InvoiceID = s.testData.inv400.ID
	list, err := s.service.GetPayments(s.GetContext(), filter)
	s.NoError(err)
	s.Equal(1, list.Pagination.Total)
	s.Len(list.Items, 1)
	s.Equal(resp.ID, list.Items[0].ID)
}

package service

import (
	"testing"

	"github.com/finbooks/finbooks/internal/api/dto"
	"github.com/finbooks/finbooks/internal/domain/customer"
	ierr "github.com/finbooks/finbooks/internal/errors"
	"github.com/finbooks/finbooks/internal/testutil"
	"github.com/finbooks/finbooks/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type QuoteServiceSuite struct {
	testutil.BaseServiceTestSuite
	service  QuoteService
	testData struct {
		customer *customer.Customer
	}
}

func TestQuoteService(t *testing.T) {
	suite.Run(t, new(QuoteServiceSuite))
}

func (s *QuoteServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.setupService()
	s.setupTestData()
}

func (s *QuoteServiceSuite) TearDownTest() {
	s.BaseServiceTestSuite.TearDownTest()
}

func (s *QuoteServiceSuite) setupService() {
	s.service = NewQuoteService(ServiceParams{
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

func (s *QuoteServiceSuite) setupTestData() {
	s.testData.customer = &customer.Customer{
		ID:          "cust_test_quote",
		DisplayName: "Acme Traders",
		BaseModel:   types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().CustomerRepo.Create(s.GetContext(), s.testData.customer))
}

func (s *QuoteServiceSuite) newQuoteRequest() dto.CreateQuoteRequest {
	return dto.CreateQuoteRequest{
		CustomerID: s.testData.customer.ID,
		LineItems: []dto.InvoiceLineItemRequest{
			{
				Description: "Consulting retainer",
				Quantity:    types.NewFlexDecimal(decimal.NewFromInt(1)),
				Rate:        types.NewFlexDecimal(decimal.NewFromInt(5000)),
				Amount:      types.NewFlexDecimal(decimal.NewFromInt(5000)),
			},
		},
		SubTotal:   types.NewFlexDecimal(decimal.NewFromInt(5000)),
		GrandTotal: types.NewFlexDecimal(decimal.NewFromInt(5000)),
	}
}

func (s *QuoteServiceSuite) TestCreateQuoteAllocatesNumber() {
	first, err := s.service.CreateQuote(s.GetContext(), s.newQuoteRequest())
	s.NoError(err)
	s.Equal("QUO-1", first.QuoteNumber)
	s.Equal("Acme Traders", first.CustomerName)
	s.True(first.GrandTotal.Equal(decimal.NewFromInt(5000)))

	second, err := s.service.CreateQuote(s.GetContext(), s.newQuoteRequest())
	s.NoError(err)
	s.Equal("QUO-2", second.QuoteNumber)
}

func (s *QuoteServiceSuite) TestCreateQuoteSharesNoCounterWithInvoices() {
	_, err := s.service.CreateQuote(s.GetContext(), s.newQuoteRequest())
	s.NoError(err)

	stored, err := s.GetStores().SettingsRepo.Get(s.GetContext())
	s.NoError(err)
	s.Equal(int64(2), stored.NextQuoteNumber)
	s.Equal(int64(1), stored.NextInvoiceNumber)
}

func (s *QuoteServiceSuite) TestCreateQuoteUnknownCustomer() {
	req := s.newQuoteRequest()
	req.CustomerID = "cust_missing"

	_, err := s.service.CreateQuote(s.GetContext(), req)
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *QuoteServiceSuite) TestCreateQuoteRequiresLineItems() {
	req := s.newQuoteRequest()
	req.LineItems = nil

	_, err := s.service.CreateQuote(s.GetContext(), req)
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *QuoteServiceSuite) TestGetQuotesByCustomer() {
	created, err := s.service.CreateQuote(s.GetContext(), s.newQuoteRequest())
	s.NoError(err)

	other := &customer.Customer{
		ID:          "cust_other",
		DisplayName: "Bharat Supplies",
		BaseModel:   types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().CustomerRepo.Create(s.GetContext(), other))
	req := s.newQuoteRequest()
	req.CustomerID = other.ID
	_, err = s.service.CreateQuote(s.GetContext(), req)
	s.NoError(err)

	filter := types.NewNoLimitQuoteFilter()
	filter.CustomerID = s.testData.customer.ID
	resp, err := s.service.GetQuotes(s.GetContext(), filter)
	s.NoError(err)
	s.Equal(1, resp.Pagination.Total)
	s.Equal(created.ID, resp.Items[0].ID)
}

func (s *QuoteServiceSuite) TestGetQuoteNotFound() {
	_, err := s.service.GetQuote(s.GetContext(), "quot_missing")
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

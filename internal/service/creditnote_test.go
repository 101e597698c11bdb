package service

import (
	"testing"

	"github.com/finbooks/finbooks/internal/api/dto"
	"github.com/finbooks/finbooks/internal/domain/customer"
	"github.com/finbooks/finbooks/internal/domain/item"
	ierr "github.com/finbooks/finbooks/internal/errors"
	"github.com/finbooks/finbooks/internal/testutil"
	"github.com/finbooks/finbooks/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type CreditNoteServiceSuite struct {
	testutil.BaseServiceTestSuite
	service  CreditNoteService
	testData struct {
		customer   *customer.Customer
		widget     *item.Item
		consulting *item.Item
	}
}

func TestCreditNoteService(t *testing.T) {
	suite.Run(t, new(CreditNoteServiceSuite))
}

func (s *CreditNoteServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.setupService()
	s.setupTestData()
}

func (s *CreditNoteServiceSuite) TearDownTest() {
	s.BaseServiceTestSuite.TearDownTest()
}

func (s *CreditNoteServiceSuite) setupService() {
	s.service = NewCreditNoteService(ServiceParams{
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

func (s *CreditNoteServiceSuite) setupTestData() {
	s.testData.customer = &customer.Customer{
		ID:          "cust_test_creditnote",
		DisplayName: "Acme Traders",
		Email:       "billing@acme.test",
		BaseModel:   types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().CustomerRepo.Create(s.GetContext(), s.testData.customer))

	s.testData.widget = &item.Item{
		ID:           "item_widget",
		ItemName:     "Widget",
		ItemType:     types.ItemTypeProduct,
		Unit:         "pcs",
		SalesPrice:   decimal.NewFromInt(150),
		CurrentStock: decimal.NewFromInt(2),
		BaseModel:    types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().ItemRepo.Create(s.GetContext(), s.testData.widget))

	s.testData.consulting = &item.Item{
		ID:         "item_consulting",
		ItemName:   "Consulting",
		ItemType:   types.ItemTypeService,
		SalesPrice: decimal.NewFromInt(2000),
		BaseModel:  types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().ItemRepo.Create(s.GetContext(), s.testData.consulting))
}

func (s *CreditNoteServiceSuite) newCreditNoteRequest(reason string) dto.CreateCreditNoteRequest {
	qty := decimal.NewFromInt(3)
	rate := decimal.NewFromInt(150)
	return dto.CreateCreditNoteRequest{
		CustomerID: s.testData.customer.ID,
		Reason:     reason,
		LineItems: []dto.InvoiceLineItemRequest{
			{
				ItemID:      s.testData.widget.ID,
				ItemType:    types.ItemTypeProduct,
				Description: "Widget",
				Quantity:    types.NewFlexDecimal(qty),
				Rate:        types.NewFlexDecimal(rate),
				Amount:      types.NewFlexDecimal(qty.Mul(rate)),
			},
		},
		Amount: types.NewFlexDecimal(qty.Mul(rate)),
	}
}

func (s *CreditNoteServiceSuite) widgetStock() decimal.Decimal {
	it, err := s.GetStores().ItemRepo.Get(s.GetContext(), s.testData.widget.ID)
	s.NoError(err)
	return it.CurrentStock
}

func (s *CreditNoteServiceSuite) widgetLedger() []*item.StockTransaction {
	txns, err := s.GetStores().ItemRepo.ListTransactions(s.GetContext(), &types.StockTransactionFilter{
		QueryFilter: types.NewNoLimitQueryFilter(),
		ItemID:      s.testData.widget.ID,
	})
	s.NoError(err)
	return txns
}

func (s *CreditNoteServiceSuite) TestCreateCreditNoteAllocatesSequentialNumbers() {
	first, err := s.service.CreateCreditNote(s.GetContext(), s.newCreditNoteRequest("Billing correction"))
	s.NoError(err)
	s.Equal("CRN-1", first.CreditNoteNumber)
	s.Equal("Acme Traders", first.CustomerName)
	s.Equal("Billing correction", first.Reason)

	second, err := s.service.CreateCreditNote(s.GetContext(), s.newCreditNoteRequest("Billing correction"))
	s.NoError(err)
	s.Equal("CRN-2", second.CreditNoteNumber)
}

func (s *CreditNoteServiceSuite) TestCreateCreditNoteReturnRestocksProducts() {
	resp, err := s.service.CreateCreditNote(s.GetContext(), s.newCreditNoteRequest(types.CreditNoteReasonReturn))
	s.NoError(err)
	s.Equal("CRN-1", resp.CreditNoteNumber)

	s.True(s.widgetStock().Equal(decimal.NewFromInt(5)))

	txns := s.widgetLedger()
	s.Len(txns, 1)
	s.Equal(types.StockTransactionIn, txns[0].TransactionType)
	s.True(txns[0].Quantity.Equal(decimal.NewFromInt(3)))
	s.Equal("Return against Credit Note #CRN-1", txns[0].Notes)
	s.Nil(txns[0].PricePerItem)
}

func (s *CreditNoteServiceSuite) TestCreateCreditNoteOtherReasonLeavesStock() {
	_, err := s.service.CreateCreditNote(s.GetContext(), s.newCreditNoteRequest("Pricing error"))
	s.NoError(err)

	s.True(s.widgetStock().Equal(decimal.NewFromInt(2)))
	s.Empty(s.widgetLedger())
}

func (s *CreditNoteServiceSuite) TestCreateCreditNoteServiceLineNeverRestocks() {
	req := dto.CreateCreditNoteRequest{
		CustomerID: s.testData.customer.ID,
		Reason:     types.CreditNoteReasonReturn,
		LineItems: []dto.InvoiceLineItemRequest{
			{
				ItemID:      s.testData.consulting.ID,
				ItemType:    types.ItemTypeService,
				Description: "Consulting",
				Quantity:    types.NewFlexDecimal(decimal.NewFromInt(2)),
				Rate:        types.NewFlexDecimal(decimal.NewFromInt(2000)),
			},
		},
		Amount: types.NewFlexDecimal(decimal.NewFromInt(4000)),
	}

	resp, err := s.service.CreateCreditNote(s.GetContext(), req)
	s.NoError(err)
	s.Equal("CRN-1", resp.CreditNoteNumber)

	txns, err := s.GetStores().ItemRepo.ListTransactions(s.GetContext(), &types.StockTransactionFilter{
		QueryFilter: types.NewNoLimitQueryFilter(),
		ItemID:      s.testData.consulting.ID,
	})
	s.NoError(err)
	s.Empty(txns)
}

func (s *CreditNoteServiceSuite) TestCreateCreditNoteUnknownCustomer() {
	req := s.newCreditNoteRequest("Billing correction")
	req.CustomerID = "cust_missing"

	resp, err := s.service.CreateCreditNote(s.GetContext(), req)
	s.Error(err)
	s.Nil(resp)
	s.True(ierr.IsNotFound(err))

	count, err := s.GetStores().CreditNoteRepo.Count(s.GetContext(), types.NewNoLimitCreditNoteFilter())
	s.NoError(err)
	s.Equal(0, count)
}

func (s *CreditNoteServiceSuite) TestCreateCreditNoteRequiresLineItems() {
	req := s.newCreditNoteRequest("Billing correction")
	req.LineItems = nil

	_, err := s.service.CreateCreditNote(s.GetContext(), req)
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *CreditNoteServiceSuite) TestGetCreditNotesByInvoice() {
	linked := s.newCreditNoteRequest("Billing correction")
	linked.InvoiceID = "inv_123"
	first, err := s.service.CreateCreditNote(s.GetContext(), linked)
	s.NoError(err)

	_, err = s.service.CreateCreditNote(s.GetContext(), s.newCreditNoteRequest("Billing correction"))
	s.NoError(err)

	filter := types.NewNoLimitCreditNoteFilter()
	filter.InvoiceID = "inv_123"
	resp, err := s.service.GetCreditNotes(s.GetContext(), filter)
	s.NoError(err)
	s.Equal(1, resp.Pagination.Total)
	s.Len(resp.Items, 1)
	s.Equal(first.ID, resp.Items[0].ID)
}

func (s *CreditNoteServiceSuite) TestGetCreditNoteNotFound() {
	resp, err := s.service.GetCreditNote(s.GetContext(), "crn_missing")
	s.Error(err)
	s.Nil(resp)
	s.True(ierr.IsNotFound(err))
}

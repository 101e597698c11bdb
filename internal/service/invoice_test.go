package service

import (
	"testing"
	"time"

	"github.com/finbooks/finbooks/internal/api/dto"
	"github.com/finbooks/finbooks/internal/domain/customer"
	"github.com/finbooks/finbooks/internal/domain/item"
	ierr "github.com/finbooks/finbooks/internal/errors"
	"github.com/finbooks/finbooks/internal/testutil"
	"github.com/finbooks/finbooks/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type InvoiceServiceSuite struct {
	testutil.BaseServiceTestSuite
	service  InvoiceService
	testData struct {
		customer *customer.Customer
		widget   *item.Item
	}
}

func TestInvoiceService(t *testing.T) {
	suite.Run(t, new(InvoiceServiceSuite))
}

func (s *InvoiceServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.setupService()
	s.setupTestData()
}

func (s *InvoiceServiceSuite) TearDownTest() {
	s.BaseServiceTestSuite.TearDownTest()
}

func (s *InvoiceServiceSuite) setupService() {
	s.service = NewInvoiceService(ServiceParams{
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

func (s *InvoiceServiceSuite) setupTestData() {
	s.testData.customer = &customer.Customer{
		ID:           "cust_test_invoice",
		DisplayName:  "Acme Traders",
		Email:        "billing@acme.test",
		PaymentTerms: "Net 30",
		BaseModel:    types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().CustomerRepo.Create(s.GetContext(), s.testData.customer))

	s.testData.widget = &item.Item{
		ID:           "item_widget",
		ItemName:     "Widget",
		ItemType:     types.ItemTypeProduct,
		Unit:         "pcs",
		SalesPrice:   decimal.NewFromInt(150),
		CurrentStock: decimal.NewFromInt(10),
		BaseModel:    types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().ItemRepo.Create(s.GetContext(), s.testData.widget))
}

// newInvoiceRequest builds a one-line invoice for the widget at rate 150.
func (s *InvoiceServiceSuite) newInvoiceRequest(qty int64, status types.InvoiceStatus) dto.CreateInvoiceRequest {
	quantity := decimal.NewFromInt(qty)
	rate := decimal.NewFromInt(150)
	total := quantity.Mul(rate)
	return dto.CreateInvoiceRequest{
		CustomerID: s.testData.customer.ID,
		LineItems: []dto.InvoiceLineItemRequest{
			{
				ItemID:      s.testData.widget.ID,
				ItemType:    types.ItemTypeProduct,
				Description: "Widget",
				Quantity:    types.NewFlexDecimal(quantity),
				Rate:        types.NewFlexDecimal(rate),
				Amount:      types.NewFlexDecimal(total),
			},
		},
		SubTotal:   types.NewFlexDecimal(total),
		GrandTotal: types.NewFlexDecimal(total),
		Status:     status,
	}
}

func (s *InvoiceServiceSuite) widgetStock() decimal.Decimal {
	it, err := s.GetStores().ItemRepo.Get(s.GetContext(), s.testData.widget.ID)
	s.NoError(err)
	return it.CurrentStock
}

func (s *InvoiceServiceSuite) widgetLedger() []*item.StockTransaction {
	txns, err := s.GetStores().ItemRepo.ListTransactions(s.GetContext(), &types.StockTransactionFilter{
		QueryFilter: types.NewNoLimitQueryFilter(),
		ItemID:      s.testData.widget.ID,
	})
	s.NoError(err)
	return txns
}

func (s *InvoiceServiceSuite) TestCreateDraftInvoiceLeavesStockAlone() {
	resp, err := s.service.CreateInvoice(s.GetContext(), s.newInvoiceRequest(3, types.InvoiceStatusDraft))
	s.NoError(err)
	s.NotNil(resp)
	s.Equal("INV-1", resp.InvoiceNumber)
	s.Equal(types.InvoiceStatusDraft, resp.Status)
	s.True(resp.BalanceDue.Equal(resp.GrandTotal.Sub(resp.AmountPaid)))

	s.True(s.widgetStock().Equal(decimal.NewFromInt(10)))
	hasTxns, err := s.GetStores().ItemRepo.HasTransactions(s.GetContext(), s.testData.widget.ID)
	s.NoError(err)
	s.False(hasTxns)
}

func (s *InvoiceServiceSuite) TestCreateIssuedInvoiceDeductsStock() {
	resp, err := s.service.CreateInvoice(s.GetContext(), s.newInvoiceRequest(3, types.InvoiceStatusSent))
	s.NoError(err)
	s.Equal("INV-1", resp.InvoiceNumber)

	s.True(s.widgetStock().Equal(decimal.NewFromInt(7)))

	txns := s.widgetLedger()
	s.Len(txns, 1)
	s.Equal(types.StockTransactionOut, txns[0].TransactionType)
	s.True(txns[0].Quantity.Equal(decimal.NewFromInt(3)))
	s.Equal("Sale against Invoice #INV-1", txns[0].Notes)
	s.NotNil(txns[0].PricePerItem)
	s.True(txns[0].PricePerItem.Equal(decimal.NewFromInt(150)))
}

func (s *InvoiceServiceSuite) TestCreateInvoiceDefaultsToDraft() {
	resp, err := s.service.CreateInvoice(s.GetContext(), s.newInvoiceRequest(2, ""))
	s.NoError(err)
	s.Equal(types.InvoiceStatusDraft, resp.Status)
	s.True(s.widgetStock().Equal(decimal.NewFromInt(10)))
}

func (s *InvoiceServiceSuite) TestCreateInvoiceInsufficientStock() {
	_, err := s.service.CreateInvoice(s.GetContext(), s.newInvoiceRequest(12, types.InvoiceStatusDraft))
	s.Error(err)
	s.True(ierr.IsInsufficientStock(err))
	s.Contains(err.Error(), "Insufficient stock for item 'Widget'. Available: 10, Requested: 12")

	// nothing persisted, nothing moved
	count, err := s.GetStores().InvoiceRepo.Count(s.GetContext(), types.NewInvoiceFilter())
	s.NoError(err)
	s.Equal(0, count)
	s.True(s.widgetStock().Equal(decimal.NewFromInt(10)))
}

func (s *InvoiceServiceSuite) TestCreateInvoiceCollectsAllStockViolations() {
	gadget := &item.Item{
		ID:           "item_gadget",
		ItemName:     "Gadget",
		ItemType:     types.ItemTypeProduct,
		CurrentStock: decimal.NewFromInt(1),
		BaseModel:    types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().ItemRepo.Create(s.GetContext(), gadget))

	req := s.newInvoiceRequest(12, types.InvoiceStatusDraft)
	req.LineItems = append(req.LineItems, dto.InvoiceLineItemRequest{
		ItemID:   gadget.ID,
		ItemType: types.ItemTypeProduct,
		Quantity: types.NewFlexDecimal(decimal.NewFromInt(5)),
		Rate:     types.NewFlexDecimal(decimal.NewFromInt(20)),
	})

	_, err := s.service.CreateInvoice(s.GetContext(), req)
	s.Error(err)
	s.True(ierr.IsInsufficientStock(err))
	s.Contains(err.Error(), "Insufficient stock for item 'Widget'. Available: 10, Requested: 12")
	s.Contains(err.Error(), "Insufficient stock for item 'Gadget'. Available: 1, Requested: 5")
}

func (s *InvoiceServiceSuite) TestCreateOversoldDraftWithIgnoreStockWarning() {
	req := s.newInvoiceRequest(12, types.InvoiceStatusDraft)
	req.IgnoreStockWarning = true

	resp, err := s.service.CreateInvoice(s.GetContext(), req)
	s.NoError(err)
	s.Equal(types.InvoiceStatusDraft, resp.Status)
	s.True(s.widgetStock().Equal(decimal.NewFromInt(10)))
}

func (s *InvoiceServiceSuite) TestCreateInvoiceServiceLineLeavesStockAlone() {
	consulting := &item.Item{
		ID:        "item_consulting",
		ItemName:  "Consulting",
		ItemType:  types.ItemTypeService,
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().ItemRepo.Create(s.GetContext(), consulting))

	req := dto.CreateInvoiceRequest{
		CustomerID: s.testData.customer.ID,
		LineItems: []dto.InvoiceLineItemRequest{
			{
				ItemID:   consulting.ID,
				ItemType: types.ItemTypeService,
				Quantity: types.NewFlexDecimal(decimal.NewFromInt(8)),
				Rate:     types.NewFlexDecimal(decimal.NewFromInt(500)),
			},
		},
		SubTotal:   types.NewFlexDecimal(decimal.NewFromInt(4000)),
		GrandTotal: types.NewFlexDecimal(decimal.NewFromInt(4000)),
		Status:     types.InvoiceStatusSent,
	}

	_, err := s.service.CreateInvoice(s.GetContext(), req)
	s.NoError(err)

	hasTxns, err := s.GetStores().ItemRepo.HasTransactions(s.GetContext(), consulting.ID)
	s.NoError(err)
	s.False(hasTxns)
}

func (s *InvoiceServiceSuite) TestCreateInvoiceAbsentQuantityDefaultsToOne() {
	req := s.newInvoiceRequest(1, types.InvoiceStatusSent)
	req.LineItems[0].Quantity = types.FlexDecimal{}

	_, err := s.service.CreateInvoice(s.GetContext(), req)
	s.NoError(err)
	s.True(s.widgetStock().Equal(decimal.NewFromInt(9)))
}

func (s *InvoiceServiceSuite) TestCreateInvoiceSnapshotsCustomerName() {
	resp, err := s.service.CreateInvoice(s.GetContext(), s.newInvoiceRequest(1, types.InvoiceStatusDraft))
	s.NoError(err)
	s.Equal("Acme Traders", resp.CustomerName)
}

func (s *InvoiceServiceSuite) TestCreateInvoiceUnknownCustomer() {
	req := s.newInvoiceRequest(1, types.InvoiceStatusDraft)
	req.CustomerID = "cust_missing"

	_, err := s.service.CreateInvoice(s.GetContext(), req)
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *InvoiceServiceSuite) TestCreateInvoiceHonorsClientSuppliedNumber() {
	req := s.newInvoiceRequest(1, types.InvoiceStatusDraft)
	req.InvoiceNumber = "IMP-99"

	resp, err := s.service.CreateInvoice(s.GetContext(), req)
	s.NoError(err)
	s.Equal("IMP-99", resp.InvoiceNumber)

	// the sequence was not consumed
	next, err := s.service.CreateInvoice(s.GetContext(), s.newInvoiceRequest(1, types.InvoiceStatusDraft))
	s.NoError(err)
	s.Equal("INV-1", next.InvoiceNumber)
}

func (s *InvoiceServiceSuite) TestUpdateInvoiceLeavingDraftDeductsStockOnce() {
	created, err := s.service.CreateInvoice(s.GetContext(), s.newInvoiceRequest(4, types.InvoiceStatusDraft))
	s.NoError(err)
	s.True(s.widgetStock().Equal(decimal.NewFromInt(10)))

	_, err = s.service.UpdateInvoice(s.GetContext(), created.ID, dto.UpdateInvoiceRequest{
		Status: types.InvoiceStatusSent,
	})
	s.NoError(err)
	s.True(s.widgetStock().Equal(decimal.NewFromInt(6)))
	s.Len(s.widgetLedger(), 1)

	// a later status change must not touch stock again
	_, err = s.service.UpdateInvoice(s.GetContext(), created.ID, dto.UpdateInvoiceRequest{
		Status: types.InvoiceStatusApproved,
	})
	s.NoError(err)
	s.True(s.widgetStock().Equal(decimal.NewFromInt(6)))
	s.Len(s.widgetLedger(), 1)
}

func (s *InvoiceServiceSuite) TestUpdateInvoiceLeavingDraftValidatesStock() {
	created, err := s.service.CreateInvoice(s.GetContext(), s.newInvoiceRequest(3, types.InvoiceStatusDraft))
	s.NoError(err)

	// drain the stock behind the draft's back
	s.NoError(s.GetStores().ItemRepo.AdjustStock(s.GetContext(), s.testData.widget.ID, decimal.NewFromInt(-9)))

	_, err = s.service.UpdateInvoice(s.GetContext(), created.ID, dto.UpdateInvoiceRequest{
		Status: types.InvoiceStatusSent,
	})
	s.Error(err)
	s.True(ierr.IsInsufficientStock(err))

	stored, err := s.GetStores().InvoiceRepo.Get(s.GetContext(), created.ID)
	s.NoError(err)
	s.Equal(types.InvoiceStatusDraft, stored.Status)
}

func (s *InvoiceServiceSuite) TestDeleteIssuedInvoiceRestoresStock() {
	created, err := s.service.CreateInvoice(s.GetContext(), s.newInvoiceRequest(3, types.InvoiceStatusSent))
	s.NoError(err)
	s.True(s.widgetStock().Equal(decimal.NewFromInt(7)))

	s.NoError(s.service.DeleteInvoice(s.GetContext(), created.ID))
	s.True(s.widgetStock().Equal(decimal.NewFromInt(10)))

	txns := s.widgetLedger()
	s.Len(txns, 2)
	reversal := txns[0]
	if reversal.TransactionType != types.StockTransactionIn {
		reversal = txns[1]
	}
	s.Equal(types.StockTransactionIn, reversal.TransactionType)
	s.True(reversal.Quantity.Equal(decimal.NewFromInt(3)))
	s.Equal("Reversal for deleted Invoice #INV-1", reversal.Notes)

	_, err = s.GetStores().InvoiceRepo.Get(s.GetContext(), created.ID)
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *InvoiceServiceSuite) TestDeleteDraftInvoiceLeavesLedgerEmpty() {
	created, err := s.service.CreateInvoice(s.GetContext(), s.newInvoiceRequest(3, types.InvoiceStatusDraft))
	s.NoError(err)

	s.NoError(s.service.DeleteInvoice(s.GetContext(), created.ID))

	hasTxns, err := s.GetStores().ItemRepo.HasTransactions(s.GetContext(), s.testData.widget.ID)
	s.NoError(err)
	s.False(hasTxns)
}

func (s *InvoiceServiceSuite) TestUpdatePaymentStatusTransitions() {
	created, err := s.service.CreateInvoice(s.GetContext(), s.newInvoiceRequest(3, types.InvoiceStatusSent))
	s.NoError(err)

	inv, err := s.GetStores().InvoiceRepo.Get(s.GetContext(), created.ID)
	s.NoError(err)
	s.True(inv.GrandTotal.Equal(decimal.NewFromInt(450)))

	s.NoError(s.service.UpdatePaymentStatus(s.GetContext(), inv, decimal.NewFromInt(200)))
	s.Equal(types.InvoiceStatusPartiallyPaid, inv.Status)
	s.True(inv.BalanceDue.Equal(decimal.NewFromInt(250)))
	s.Equal(2, inv.Version)

	s.NoError(s.service.UpdatePaymentStatus(s.GetContext(), inv, decimal.NewFromInt(450)))
	s.Equal(types.InvoiceStatusPaid, inv.Status)
	s.True(inv.BalanceDue.IsZero())
	s.Equal(3, inv.Version)

	// a full reversal drops the invoice back to Approved
	s.NoError(s.service.UpdatePaymentStatus(s.GetContext(), inv, decimal.Zero))
	s.Equal(types.InvoiceStatusApproved, inv.Status)
	s.True(inv.BalanceDue.Equal(decimal.NewFromInt(450)))
	s.Equal(4, inv.Version)

	stored, err := s.GetStores().InvoiceRepo.Get(s.GetContext(), created.ID)
	s.NoError(err)
	s.Equal(types.InvoiceStatusApproved, stored.Status)
	s.True(stored.BalanceDue.Equal(stored.GrandTotal.Sub(stored.AmountPaid)))
}

func (s *InvoiceServiceSuite) TestUpdatePaymentStatusWithinEpsilonPaysInFull() {
	created, err := s.service.CreateInvoice(s.GetContext(), s.newInvoiceRequest(3, types.InvoiceStatusSent))
	s.NoError(err)

	inv, err := s.GetStores().InvoiceRepo.Get(s.GetContext(), created.ID)
	s.NoError(err)

	s.NoError(s.service.UpdatePaymentStatus(s.GetContext(), inv, decimal.NewFromFloat(449.99)))
	s.Equal(types.InvoiceStatusPaid, inv.Status)
	s.True(inv.BalanceDue.IsZero())
}

func (s *InvoiceServiceSuite) TestUpdatePaymentStatusOverpayment() {
	created, err := s.service.CreateInvoice(s.GetContext(), s.newInvoiceRequest(3, types.InvoiceStatusSent))
	s.NoError(err)

	inv, err := s.GetStores().InvoiceRepo.Get(s.GetContext(), created.ID)
	s.NoError(err)

	err = s.service.UpdatePaymentStatus(s.GetContext(), inv, decimal.NewFromFloat(450.01))
	s.Error(err)
	s.True(ierr.IsOverpayment(err))
	s.Contains(err.Error(), "Payment amount (450.01) exceeds total amount due (450)")

	stored, err := s.GetStores().InvoiceRepo.Get(s.GetContext(), created.ID)
	s.NoError(err)
	s.Equal(types.InvoiceStatusSent, stored.Status)
	s.True(stored.AmountPaid.IsZero())
	s.Equal(1, stored.Version)
}

func (s *InvoiceServiceSuite) TestUpdatePaymentStatusVersionConflict() {
	created, err := s.service.CreateInvoice(s.GetContext(), s.newInvoiceRequest(1, types.InvoiceStatusSent))
	s.NoError(err)

	first, err := s.GetStores().InvoiceRepo.Get(s.GetContext(), created.ID)
	s.NoError(err)
	stale, err := s.GetStores().InvoiceRepo.Get(s.GetContext(), created.ID)
	s.NoError(err)

	s.NoError(s.service.UpdatePaymentStatus(s.GetContext(), first, decimal.NewFromInt(50)))

	err = s.service.UpdatePaymentStatus(s.GetContext(), stale, decimal.NewFromInt(100))
	s.Error(err)
	s.True(ierr.IsVersionConflict(err))
}

func (s *InvoiceServiceSuite) TestUpdatePaymentStatusNoOpSkipsWrite() {
	created, err := s.service.CreateInvoice(s.GetContext(), s.newInvoiceRequest(3, types.InvoiceStatusSent))
	s.NoError(err)

	inv, err := s.GetStores().InvoiceRepo.Get(s.GetContext(), created.ID)
	s.NoError(err)

	s.NoError(s.service.UpdatePaymentStatus(s.GetContext(), inv, decimal.NewFromInt(200)))
	s.Equal(2, inv.Version)

	s.NoError(s.service.UpdatePaymentStatus(s.GetContext(), inv, decimal.NewFromInt(200)))
	s.Equal(2, inv.Version)

	stored, err := s.GetStores().InvoiceRepo.Get(s.GetContext(), created.ID)
	s.NoError(err)
	s.Equal(2, stored.Version)
}

func (s *InvoiceServiceSuite) TestGetInvoiceSummary() {
	_, err := s.service.CreateInvoice(s.GetContext(), s.newInvoiceRequest(1, types.InvoiceStatusDraft))
	s.NoError(err)

	current := s.newInvoiceRequest(3, types.InvoiceStatusSent)
	dueSoon := s.GetNow().Add(10 * 24 * time.Hour)
	current.DueDate = types.FlexTime{Time: &dueSoon}
	_, err = s.service.CreateInvoice(s.GetContext(), current)
	s.NoError(err)

	overdue := s.newInvoiceRequest(2, types.InvoiceStatusSent)
	duePast := s.GetNow().Add(-45 * 24 * time.Hour)
	overdue.DueDate = types.FlexTime{Time: &duePast}
	_, err = s.service.CreateInvoice(s.GetContext(), overdue)
	s.NoError(err)

	summary, err := s.service.GetInvoiceSummary(s.GetContext())
	s.NoError(err)
	s.Equal(3, summary.TotalInvoices)

	// drafts never count toward receivables
	s.True(summary.TotalOutstanding.Equal(decimal.NewFromInt(750)))
	s.Equal(1, summary.ByStatus["Draft"].Count)
	s.Equal(2, summary.ByStatus["Sent"].Count)
	s.True(summary.ByStatus["Sent"].Total.Equal(decimal.NewFromInt(750)))

	s.True(summary.Aging.Current.Equal(decimal.NewFromInt(450)))
	s.True(summary.Aging.Days31To60.Equal(decimal.NewFromInt(300)))
	s.True(summary.Aging.Days1To30.IsZero())
	s.True(summary.Aging.Days90Plus.IsZero())
}

func (s *InvoiceServiceSuite) TestGetInvoiceNotFound() {
	_, err := s.service.GetInvoice(s.GetContext(), "inv_missing")
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *InvoiceServiceSuite) TestGetInvoicesFiltersByCustomer() {
	_, err := s.service.CreateInvoice(s.GetContext(), s.newInvoiceRequest(1, types.InvoiceStatusDraft))
	s.NoError(err)

	other := &customer.Customer{
		ID:           "cust_other",
		DisplayName:  "Other Traders",
		PaymentTerms: "Net 15",
		BaseModel:    types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().CustomerRepo.Create(s.GetContext(), other))

	req := s.newInvoiceRequest(1, types.InvoiceStatusDraft)
	req.CustomerID = other.ID
	_, err = s.service.CreateInvoice(s.GetContext(), req)
	s.NoError(err)

	filter := types.NewInvoiceFilter()
	filter.CustomerID = other.ID
	resp, err := s.service.GetInvoices(s.GetContext(), filter)
	s.NoError(err)
	s.Equal(1, resp.Pagination.Total)
	s.Len(resp.Items, 1)
	s.Equal(other.ID, resp.Items[0].CustomerID)
}

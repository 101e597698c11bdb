package service

import (
	"testing"

	"github.com/finbooks/finbooks/internal/api/dto"
	"github.com/finbooks/finbooks/internal/domain/item"
	ierr "github.com/finbooks/finbooks/internal/errors"
	"github.com/finbooks/finbooks/internal/testutil"
	"github.com/finbooks/finbooks/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type StockServiceSuite struct {
	testutil.BaseServiceTestSuite
	service     StockService
	itemService ItemService
}

func TestStockService(t *testing.T) {
	suite.Run(t, new(StockServiceSuite))
}

func (s *StockServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.setupService()
}

func (s *StockServiceSuite) TearDownTest() {
	s.BaseServiceTestSuite.TearDownTest()
}

func (s *StockServiceSuite) setupService() {
	params := ServiceParams{
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
	}
	s.service = NewStockService(params)
	s.itemService = NewItemService(params)
}

// createProduct seeds a product through the item service so its opening
// stock arrives via the ledger.
func (s *StockServiceSuite) createProduct(name string, opening int64) *dto.ItemResponse {
	resp, err := s.itemService.CreateItem(s.GetContext(), dto.CreateItemRequest{
		ItemName:        name,
		ItemType:        types.ItemTypeProduct,
		PurchasePrice:   decimal.NewFromInt(80),
		OpeningStockQty: decimal.NewFromInt(opening),
	})
	s.NoError(err)
	return resp
}

func (s *StockServiceSuite) ledger(itemID string) []*item.StockTransaction {
	txns, err := s.GetStores().ItemRepo.ListTransactions(s.GetContext(), &types.StockTransactionFilter{
		QueryFilter: types.NewNoLimitQueryFilter(),
		ItemID:      itemID,
	})
	s.NoError(err)
	return txns
}

func (s *StockServiceSuite) currentStock(itemID string) decimal.Decimal {
	it, err := s.GetStores().ItemRepo.Get(s.GetContext(), itemID)
	s.NoError(err)
	return it.CurrentStock
}

func (s *StockServiceSuite) TestCounterEqualsSignedLedgerSum() {
	widget := s.createProduct("Widget", 15)

	_, err := s.service.ApplyTransaction(s.GetContext(), widget.ID,
		types.StockTransactionOut, decimal.NewFromInt(5), nil, "Sale against Invoice #INV-7")
	s.NoError(err)

	_, err = s.service.ApplyTransaction(s.GetContext(), widget.ID,
		types.StockTransactionIn, decimal.NewFromInt(3), nil, "Return against Credit Note #CRN-2")
	s.NoError(err)

	s.True(s.currentStock(widget.ID).Equal(decimal.NewFromInt(13)))

	sum := decimal.Zero
	txns := s.ledger(widget.ID)
	s.Len(txns, 3)
	for _, txn := range txns {
		sum = sum.Add(txn.SignedQuantity())
	}
	s.True(sum.Equal(s.currentStock(widget.ID)))
}

func (s *StockServiceSuite) TestApplyTransactionOutInsufficientStock() {
	widget := s.createProduct("Widget", 2)

	_, err := s.service.ApplyTransaction(s.GetContext(), widget.ID,
		types.StockTransactionOut, decimal.NewFromInt(5), nil, "Sale against Invoice #INV-1")
	s.Error(err)
	s.True(ierr.IsInsufficientStock(err))
	s.Contains(err.Error(), "Insufficient stock for item 'Widget'. Available: 2, Requested: 5")

	// nothing appended, nothing moved
	s.Len(s.ledger(widget.ID), 1)
	s.True(s.currentStock(widget.ID).Equal(decimal.NewFromInt(2)))
}

func (s *StockServiceSuite) TestApplyTransactionServiceItemRejected() {
	consulting, err := s.itemService.CreateItem(s.GetContext(), dto.CreateItemRequest{
		ItemName: "Consulting",
		ItemType: types.ItemTypeService,
	})
	s.NoError(err)

	_, err = s.service.ApplyTransaction(s.GetContext(), consulting.ID,
		types.StockTransactionIn, decimal.NewFromInt(5), nil, "by hand")
	s.Error(err)
	s.True(ierr.IsValidation(err))
	s.Contains(err.Error(), "service items do not track stock")
}

func (s *StockServiceSuite) TestApplyTransactionUnknownItem() {
	_, err := s.service.ApplyTransaction(s.GetContext(), "item_missing",
		types.StockTransactionIn, decimal.NewFromInt(5), nil, "by hand")
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *StockServiceSuite) TestApplyTransactionRequiresItemID() {
	_, err := s.service.ApplyTransaction(s.GetContext(), "",
		types.StockTransactionIn, decimal.NewFromInt(5), nil, "by hand")
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *StockServiceSuite) TestAdjustStockManualEntry() {
	widget := s.createProduct("Widget", 2)

	resp, err := s.service.AdjustStock(s.GetContext(), widget.ID, dto.AdjustStockRequest{
		TransactionType: types.StockTransactionIn,
		Quantity:        decimal.NewFromInt(4),
		PricePerItem:    lo.ToPtr(decimal.NewFromInt(75)),
		Notes:           "Stock count correction",
	})
	s.NoError(err)
	s.Equal(types.StockTransactionIn, resp.TransactionType)
	s.True(s.currentStock(widget.ID).Equal(decimal.NewFromInt(6)))

	// manual adjustments land in the audit trail
	entries, err := s.GetStores().ActivityRepo.List(s.GetContext(), &types.ActivityFilter{
		QueryFilter: types.NewNoLimitQueryFilter(),
		DocumentID:  widget.ID,
	})
	s.NoError(err)
	found := false
	for _, e := range entries {
		if e.ActionType == types.ActivityUpdateItem && e.Details == "Manual stock adjustment: IN 4" {
			found = true
		}
	}
	s.True(found)
}

func (s *StockServiceSuite) TestAdjustStockZeroQuantityRejected() {
	widget := s.createProduct("Widget", 2)

	_, err := s.service.AdjustStock(s.GetContext(), widget.ID, dto.AdjustStockRequest{
		TransactionType: types.StockTransactionOut,
		Quantity:        decimal.Zero,
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))

	s.Len(s.ledger(widget.ID), 1)
}

func (s *StockServiceSuite) TestListTransactionsFilterByType() {
	widget := s.createProduct("Widget", 10)

	_, err := s.service.ApplyTransaction(s.GetContext(), widget.ID,
		types.StockTransactionOut, decimal.NewFromInt(2), nil, "Sale against Invoice #INV-1")
	s.NoError(err)

	resp, err := s.service.ListTransactions(s.GetContext(), &types.StockTransactionFilter{
		QueryFilter:     types.NewNoLimitQueryFilter(),
		ItemID:          widget.ID,
		TransactionType: lo.ToPtr(types.StockTransactionOut),
	})
	s.NoError(err)
	s.Equal(1, resp.Pagination.Total)
	s.Len(resp.Items, 1)
	s.Equal(types.StockTransactionOut, resp.Items[0].TransactionType)
}

func (s *StockServiceSuite) TestListTransactionsScopedToItem() {
	widget := s.createProduct("Widget", 10)
	gadget := s.createProduct("Gadget", 4)

	resp, err := s.service.ListTransactions(s.GetContext(), &types.StockTransactionFilter{
		QueryFilter: types.NewNoLimitQueryFilter(),
		ItemID:      gadget.ID,
	})
	s.NoError(err)
	s.Equal(1, resp.Pagination.Total)
	s.Equal(gadget.ID, resp.Items[0].ItemID)

	resp, err = s.service.ListTransactions(s.GetContext(), &types.StockTransactionFilter{
		QueryFilter: types.NewNoLimitQueryFilter(),
		ItemID:      widget.ID,
	})
	s.NoError(err)
	s.Equal(1, resp.Pagination.Total)
	s.Equal(widget.ID, resp.Items[0].ItemID)
}

package service

import (
	"testing"

	"github.com/finbooks/finbooks/internal/api/dto"
	ierr "github.com/finbooks/finbooks/internal/errors"
	"github.com/finbooks/finbooks/internal/testutil"
	"github.com/finbooks/finbooks/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type ItemServiceSuite struct {
	testutil.BaseServiceTestSuite
	service ItemService
}

func TestItemService(t *testing.T) {
	suite.Run(t, new(ItemServiceSuite))
}

func (s *ItemServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.setupService()
}

func (s *ItemServiceSuite) TearDownTest() {
	s.BaseServiceTestSuite.TearDownTest()
}

func (s *ItemServiceSuite) setupService() {
	s.service = NewItemService(ServiceParams{
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

func (s *ItemServiceSuite) TestCreateProductWithOpeningStock() {
	resp, err := s.service.CreateItem(s.GetContext(), dto.CreateItemRequest{
		ItemName:        "Widget",
		ItemType:        types.ItemTypeProduct,
		Unit:            "pcs",
		SalesPrice:      decimal.NewFromInt(150),
		PurchasePrice:   decimal.NewFromInt(80),
		OpeningStockQty: decimal.NewFromInt(15),
	})
	s.NoError(err)
	s.True(resp.CurrentStock.Equal(decimal.NewFromInt(15)))

	stored, err := s.GetStores().ItemRepo.Get(s.GetContext(), resp.ID)
	s.NoError(err)
	s.True(stored.CurrentStock.Equal(decimal.NewFromInt(15)))

	// the opening balance lands through the ledger, not a direct write
	txns, err := s.GetStores().ItemRepo.ListTransactions(s.GetContext(), &types.StockTransactionFilter{
		QueryFilter: types.NewNoLimitQueryFilter(),
		ItemID:      resp.ID,
	})
	s.NoError(err)
	s.Len(txns, 1)
	s.Equal(types.StockTransactionIn, txns[0].TransactionType)
	s.True(txns[0].Quantity.Equal(decimal.NewFromInt(15)))
	s.Equal("Initial opening stock", txns[0].Notes)
	s.NotNil(txns[0].PricePerItem)
	s.True(txns[0].PricePerItem.Equal(decimal.NewFromInt(80)))
}

func (s *ItemServiceSuite) TestCreateProductWithoutOpeningStock() {
	resp, err := s.service.CreateItem(s.GetContext(), dto.CreateItemRequest{
		ItemName: "Empty Shelf",
		ItemType: types.ItemTypeProduct,
	})
	s.NoError(err)
	s.True(resp.CurrentStock.IsZero())

	hasTxns, err := s.GetStores().ItemRepo.HasTransactions(s.GetContext(), resp.ID)
	s.NoError(err)
	s.False(hasTxns)
}

func (s *ItemServiceSuite) TestCreateServiceItemIgnoresOpeningStock() {
	resp, err := s.service.CreateItem(s.GetContext(), dto.CreateItemRequest{
		ItemName:        "Consulting",
		ItemType:        types.ItemTypeService,
		SalesPrice:      decimal.NewFromInt(500),
		OpeningStockQty: decimal.NewFromInt(10),
	})
	s.NoError(err)
	s.True(resp.CurrentStock.IsZero())

	hasTxns, err := s.GetStores().ItemRepo.HasTransactions(s.GetContext(), resp.ID)
	s.NoError(err)
	s.False(hasTxns)
}

func (s *ItemServiceSuite) TestCreateItemDuplicateName() {
	_, err := s.service.CreateItem(s.GetContext(), dto.CreateItemRequest{
		ItemName: "Widget",
		ItemType: types.ItemTypeProduct,
	})
	s.NoError(err)

	_, err = s.service.CreateItem(s.GetContext(), dto.CreateItemRequest{
		ItemName: "Widget",
		ItemType: types.ItemTypeService,
	})
	s.Error(err)
	s.True(ierr.IsAlreadyExists(err))
	s.Contains(err.Error(), "An item with the name 'Widget' already exists.")
}

func (s *ItemServiceSuite) TestCreateItemNegativeOpeningStock() {
	_, err := s.service.CreateItem(s.GetContext(), dto.CreateItemRequest{
		ItemName:        "Broken",
		ItemType:        types.ItemTypeProduct,
		OpeningStockQty: decimal.NewFromInt(-1),
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *ItemServiceSuite) TestUpdateItemRenameToExistingName() {
	_, err := s.service.CreateItem(s.GetContext(), dto.CreateItemRequest{
		ItemName: "Widget",
		ItemType: types.ItemTypeProduct,
	})
	s.NoError(err)

	other, err := s.service.CreateItem(s.GetContext(), dto.CreateItemRequest{
		ItemName: "Gadget",
		ItemType: types.ItemTypeProduct,
	})
	s.NoError(err)

	_, err = s.service.UpdateItem(s.GetContext(), other.ID, dto.UpdateItemRequest{
		ItemName: lo.ToPtr("Widget"),
	})
	s.Error(err)
	s.True(ierr.IsAlreadyExists(err))
}

func (s *ItemServiceSuite) TestUpdateItemKeepsStockCounter() {
	created, err := s.service.CreateItem(s.GetContext(), dto.CreateItemRequest{
		ItemName:        "Widget",
		ItemType:        types.ItemTypeProduct,
		SalesPrice:      decimal.NewFromInt(150),
		OpeningStockQty: decimal.NewFromInt(5),
	})
	s.NoError(err)

	_, err = s.service.UpdateItem(s.GetContext(), created.ID, dto.UpdateItemRequest{
		SalesPrice: lo.ToPtr(decimal.NewFromInt(175)),
	})
	s.NoError(err)

	stored, err := s.GetStores().ItemRepo.Get(s.GetContext(), created.ID)
	s.NoError(err)
	s.True(stored.SalesPrice.Equal(decimal.NewFromInt(175)))
	s.True(stored.CurrentStock.Equal(decimal.NewFromInt(5)))
}

func (s *ItemServiceSuite) TestDeleteItemWithLedgerHistoryBlocked() {
	created, err := s.service.CreateItem(s.GetContext(), dto.CreateItemRequest{
		ItemName:        "Widget",
		ItemType:        types.ItemTypeProduct,
		OpeningStockQty: decimal.NewFromInt(5),
	})
	s.NoError(err)

	err = s.service.DeleteItem(s.GetContext(), created.ID)
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
	s.Contains(err.Error(), "Cannot delete item with existing stock transactions.")

	_, err = s.GetStores().ItemRepo.Get(s.GetContext(), created.ID)
	s.NoError(err)
}

func (s *ItemServiceSuite) TestDeleteItemWithoutHistory() {
	created, err := s.service.CreateItem(s.GetContext(), dto.CreateItemRequest{
		ItemName: "Widget",
		ItemType: types.ItemTypeProduct,
	})
	s.NoError(err)

	s.NoError(s.service.DeleteItem(s.GetContext(), created.ID))

	_, err = s.GetStores().ItemRepo.Get(s.GetContext(), created.ID)
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *ItemServiceSuite) TestGetItemsSortedByName() {
	for _, name := range []string{"Zebra Cable", "Alpha Cable", "Mango Crate"} {
		_, err := s.service.CreateItem(s.GetContext(), dto.CreateItemRequest{
			ItemName: name,
			ItemType: types.ItemTypeProduct,
		})
		s.NoError(err)
	}

	resp, err := s.service.GetItems(s.GetContext(), nil)
	s.NoError(err)
	s.Equal(3, resp.Pagination.Total)
	s.Equal("Alpha Cable", resp.Items[0].ItemName)
	s.Equal("Mango Crate", resp.Items[1].ItemName)
	s.Equal("Zebra Cable", resp.Items[2].ItemName)
}

func (s *ItemServiceSuite) TestGetItemsFiltersByType() {
	_, err := s.service.CreateItem(s.GetContext(), dto.CreateItemRequest{
		ItemName: "Widget",
		ItemType: types.ItemTypeProduct,
	})
	s.NoError(err)
	_, err = s.service.CreateItem(s.GetContext(), dto.CreateItemRequest{
		ItemName: "Consulting",
		ItemType: types.ItemTypeService,
	})
	s.NoError(err)

	filter := types.NewItemFilter()
	filter.ItemType = lo.ToPtr(types.ItemTypeService)
	resp, err := s.service.GetItems(s.GetContext(), filter)
	s.NoError(err)
	s.Equal(1, resp.Pagination.Total)
	s.Equal("Consulting", resp.Items[0].ItemName)
}

package service

import (
	"context"
	"time"

	"github.com/finbooks/finbooks/internal/api/dto"
	"github.com/finbooks/finbooks/internal/domain/item"
	ierr "github.com/finbooks/finbooks/internal/errors"
	"github.com/finbooks/finbooks/internal/types"
	webhookDto "github.com/finbooks/finbooks/internal/webhook/dto"
	"github.com/shopspring/decimal"
)

// StockService is the stock ledger. Every change to an item's stock
// counter flows through ApplyTransaction, so the counter always equals
// the signed sum of the item's ledger entries.
type StockService interface {
	// ApplyTransaction appends a ledger entry and moves the item's stock
	// counter by the signed quantity, as one transactional unit
	ApplyTransaction(ctx context.Context, itemID string, direction types.StockTransactionType, quantity decimal.Decimal, pricePerItem *decimal.Decimal, notes string) (*item.StockTransaction, error)

	// AdjustStock is the manual adjustment entry point
	AdjustStock(ctx context.Context, itemID string, req dto.AdjustStockRequest) (*dto.StockTransactionResponse, error)

	ListTransactions(ctx context.Context, filter *types.StockTransactionFilter) (*dto.ListStockTransactionsResponse, error)
}

type stockService struct {
	ServiceParams
}

func NewStockService(params ServiceParams) StockService {
	return &stockService{
		ServiceParams: params,
	}
}

func (s *stockService) ApplyTransaction(ctx context.Context, itemID string, direction types.StockTransactionType, quantity decimal.Decimal, pricePerItem *decimal.Decimal, notes string) (*item.StockTransaction, error) {
	if itemID == "" {
		return nil, ierr.NewError("item ID is required").
			WithHint("Item ID is required").
			Mark(ierr.ErrValidation)
	}

	txn := &item.StockTransaction{
		ID:              types.GenerateUUIDWithPrefix(types.UUID_PREFIX_STOCK_TRANSACTION),
		ItemID:          itemID,
		TransactionType: direction,
		Quantity:        quantity,
		PricePerItem:    pricePerItem,
		Notes:           notes,
		TransactionDate: time.Now().UTC(),
		RecordedBy:      types.GetUserID(ctx),
		BaseModel:       types.GetDefaultBaseModel(ctx),
	}
	if err := txn.Validate(); err != nil {
		return nil, err
	}

	lowStock := false
	if err := s.DB.WithTx(ctx, func(txCtx context.Context) error {
		it, err := s.ItemRepo.Get(txCtx, itemID)
		if err != nil {
			return err
		}

		if !it.IsProduct() {
			return ierr.NewError("service items do not track stock").
				WithHint("Only product items have a stock ledger").
				WithReportableDetails(map[string]interface{}{
					"item_id":   it.ID,
					"item_type": it.ItemType,
				}).
				Mark(ierr.ErrValidation)
		}

		if direction == types.StockTransactionOut && it.CurrentStock.LessThan(quantity) {
			return ierr.NewErrorf("Insufficient stock for item '%s'. Available: %s, Requested: %s",
				it.ItemName, it.CurrentStock, quantity).
				WithHint("Not enough stock on hand for this movement").
				WithReportableDetails(map[string]interface{}{
					"item_id":   it.ID,
					"item_name": it.ItemName,
					"available": it.CurrentStock,
					"requested": quantity,
				}).
				Mark(ierr.ErrInsufficientStock)
		}

		// Ledger record first, counter second. A crash in between leaves
		// a state recoverable by replaying the ledger.
		if err := s.ItemRepo.CreateTransaction(txCtx, txn); err != nil {
			return err
		}
		if err := s.ItemRepo.AdjustStock(txCtx, it.ID, txn.SignedQuantity()); err != nil {
			return err
		}

		if direction == types.StockTransactionOut {
			remaining := it.CurrentStock.Sub(quantity)
			threshold := decimal.NewFromFloat(s.Config.Stock.LowStockThreshold)
			lowStock = remaining.LessThanOrEqual(threshold)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	if lowStock {
		s.publishWebhookEvent(ctx, types.WebhookEventItemLowStock, webhookDto.InternalItemEvent{
			ItemID:   itemID,
			TenantID: types.GetTenantID(ctx),
		})
	}

	s.Logger.Debugw("applied stock transaction",
		"transaction_id", txn.ID,
		"item_id", itemID,
		"direction", direction,
		"quantity", quantity)

	return txn, nil
}

func (s *stockService) AdjustStock(ctx context.Context, itemID string, req dto.AdjustStockRequest) (*dto.StockTransactionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	txn, err := s.ApplyTransaction(ctx, itemID, req.TransactionType, req.Quantity, req.PricePerItem, req.Notes)
	if err != nil {
		return nil, err
	}

	s.recordActivity(ctx, types.ActivityUpdateItem,
		"Manual stock adjustment: "+string(req.TransactionType)+" "+req.Quantity.String(),
		itemID, "inventory_items")

	return &dto.StockTransactionResponse{StockTransaction: txn}, nil
}

func (s *stockService) ListTransactions(ctx context.Context, filter *types.StockTransactionFilter) (*dto.ListStockTransactionsResponse, error) {
	if filter == nil {
		filter = types.NewStockTransactionFilter()
	}

	if err := filter.Validate(); err != nil {
		return nil, err
	}

	txns, err := s.ItemRepo.ListTransactions(ctx, filter)
	if err != nil {
		return nil, err
	}

	count, err := s.ItemRepo.CountTransactions(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.StockTransactionResponse, 0, len(txns))
	for _, t := range txns {
		items = append(items, &dto.StockTransactionResponse{StockTransaction: t})
	}

	return &dto.ListStockTransactionsResponse{
		Items:      items,
		Pagination: types.NewPaginationResponse(count, filter.GetLimit(), filter.GetOffset()),
	}, nil
}

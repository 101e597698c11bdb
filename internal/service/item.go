package service

import (
	"context"
	"fmt"

	"github.com/finbooks/finbooks/internal/api/dto"
	ierr "github.com/finbooks/finbooks/internal/errors"
	"github.com/finbooks/finbooks/internal/types"
)

// ItemService manages inventory items and services. Stock counters are
// never written here directly; opening stock and adjustments go through
// the stock ledger.
type ItemService interface {
	CreateItem(ctx context.Context, req dto.CreateItemRequest) (*dto.ItemResponse, error)
	GetItem(ctx context.Context, id string) (*dto.ItemResponse, error)
	GetItems(ctx context.Context, filter *types.ItemFilter) (*dto.ListItemsResponse, error)
	UpdateItem(ctx context.Context, id string, req dto.UpdateItemRequest) (*dto.ItemResponse, error)
	DeleteItem(ctx context.Context, id string) error
}

type itemService struct {
	ServiceParams
}

func NewItemService(params ServiceParams) ItemService {
	return &itemService{
		ServiceParams: params,
	}
}

func (s *itemService) CreateItem(ctx context.Context, req dto.CreateItemRequest) (*dto.ItemResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.ItemRepo.GetByName(ctx, req.ItemName)
	if err != nil && !ierr.IsNotFound(err) {
		return nil, err
	}
	if existing != nil {
		return nil, ierr.NewErrorf("An item with the name '%s' already exists.", req.ItemName).
			WithHint("Item names must be unique").
			WithReportableDetails(map[string]interface{}{
				"item_name": req.ItemName,
			}).
			Mark(ierr.ErrAlreadyExists)
	}

	it := req.ToItem(ctx)

	if err := s.DB.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.ItemRepo.Create(txCtx, it); err != nil {
			return err
		}

		if it.IsProduct() && req.OpeningStockQty.IsPositive() {
			stockService := NewStockService(s.ServiceParams)
			price := it.PurchasePrice
			if _, err := stockService.ApplyTransaction(txCtx, it.ID,
				types.StockTransactionIn, req.OpeningStockQty, &price, "Initial opening stock"); err != nil {
				return err
			}
			it.CurrentStock = req.OpeningStockQty
		}
		return nil
	}); err != nil {
		return nil, err
	}

	s.recordActivity(ctx, types.ActivityCreateItem,
		fmt.Sprintf("Created Item: %s", it.ItemName), it.ID, "inventory_items")

	return &dto.ItemResponse{Item: it}, nil
}

func (s *itemService) GetItem(ctx context.Context, id string) (*dto.ItemResponse, error) {
	if id == "" {
		return nil, ierr.NewError("item ID is required").
			WithHint("Item ID is required").
			Mark(ierr.ErrValidation)
	}

	it, err := s.ItemRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	return &dto.ItemResponse{Item: it}, nil
}

func (s *itemService) GetItems(ctx context.Context, filter *types.ItemFilter) (*dto.ListItemsResponse, error) {
	if filter == nil {
		filter = types.NewItemFilter()
	}

	if err := filter.Validate(); err != nil {
		return nil, err
	}

	items, err := s.ItemRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	count, err := s.ItemRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.ItemResponse, 0, len(items))
	for _, it := range items {
		responses = append(responses, &dto.ItemResponse{Item: it})
	}

	return &dto.ListItemsResponse{
		Items:      responses,
		Pagination: types.NewPaginationResponse(count, filter.GetLimit(), filter.GetOffset()),
	}, nil
}

func (s *itemService) UpdateItem(ctx context.Context, id string, req dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	if id == "" {
		return nil, ierr.NewError("item ID is required").
			WithHint("Item ID is required").
			Mark(ierr.ErrValidation)
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	it, err := s.ItemRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.ItemName != nil && *req.ItemName != it.ItemName {
		existing, err := s.ItemRepo.GetByName(ctx, *req.ItemName)
		if err != nil && !ierr.IsNotFound(err) {
			return nil, err
		}
		if existing != nil && existing.ID != it.ID {
			return nil, ierr.NewErrorf("An item with the name '%s' already exists.", *req.ItemName).
				WithHint("Item names must be unique").
				Mark(ierr.ErrAlreadyExists)
		}
	}

	req.Apply(it)
	it.UpdatedBy = types.GetUserID(ctx)

	if err := it.Validate(); err != nil {
		return nil, err
	}

	if err := s.ItemRepo.Update(ctx, it); err != nil {
		return nil, err
	}

	s.recordActivity(ctx, types.ActivityUpdateItem,
		fmt.Sprintf("Updated Item ID: %s", it.ID), it.ID, "inventory_items")

	return &dto.ItemResponse{Item: it}, nil
}

// DeleteItem removes an item that has never moved stock. An item with
// ledger history must stay so the ledger keeps referential integrity.
func (s *itemService) DeleteItem(ctx context.Context, id string) error {
	if id == "" {
		return ierr.NewError("item ID is required").
			WithHint("Item ID is required").
			Mark(ierr.ErrValidation)
	}

	it, err := s.ItemRepo.Get(ctx, id)
	if err != nil {
		return err
	}

	hasTxns, err := s.ItemRepo.HasTransactions(ctx, it.ID)
	if err != nil {
		return err
	}
	if hasTxns {
		return ierr.NewError("Cannot delete item with existing stock transactions.").
			WithHint("Items with ledger history cannot be deleted").
			WithReportableDetails(map[string]interface{}{
				"item_id": it.ID,
			}).
			Mark(ierr.ErrInvalidOperation)
	}

	if err := s.ItemRepo.Delete(ctx, it.ID); err != nil {
		return err
	}

	s.recordActivity(ctx, types.ActivityDeleteItem,
		fmt.Sprintf("Deleted Item: '%s' (ID: %s)", it.ItemName, it.ID), it.ID, "inventory_items")

	return nil
}

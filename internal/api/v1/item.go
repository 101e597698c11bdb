package v1

import (
	"net/http"

	"github.com/finbooks/finbooks/internal/api/dto"
	ierr "github.com/finbooks/finbooks/internal/errors"
	"github.com/finbooks/finbooks/internal/logger"
	"github.com/finbooks/finbooks/internal/service"
	"github.com/finbooks/finbooks/internal/types"
	"github.com/gin-gonic/gin"
)

type ItemHandler struct {
	service service.ItemService
	stock   service.StockService
	log     *logger.Logger
}

func NewItemHandler(
	service service.ItemService,
	stock service.StockService,
	log *logger.Logger,
) *ItemHandler {
	return &ItemHandler{
		service: service,
		stock:   stock,
		log:     log,
	}
}

// @Summary Create an item
// @Description Create an inventory item, with optional opening stock for products
// @Tags Items
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param item body dto.CreateItemRequest true "Item"
// @Success 201 {object} dto.ItemResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /items [post]
func (h *ItemHandler) CreateItem(c *gin.Context) {
	var req dto.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateItem(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get an item
// @Description Get an item
// @Tags Items
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Item ID"
// @Success 200 {object} dto.ItemResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /items/{id} [get]
func (h *ItemHandler) GetItem(c *gin.Context) {
	id := c.Param("id")

	resp, err := h.service.GetItem(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Get items
// @Description Get inventory items
// @Tags Items
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param filter query types.ItemFilter false "Filter"
// @Success 200 {object} dto.ListItemsResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /items [get]
func (h *ItemHandler) GetItems(c *gin.Context) {
	var filter types.ItemFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}

	resp, err := h.service.GetItems(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Update an item
// @Description Update an item
// @Tags Items
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Item ID"
// @Param item body dto.UpdateItemRequest true "Item"
// @Success 200 {object} dto.ItemResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /items/{id} [put]
func (h *ItemHandler) UpdateItem(c *gin.Context) {
	id := c.Param("id")

	var req dto.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdateItem(c.Request.Context(), id, req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Delete an item
// @Description Delete an item without stock history
// @Tags Items
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Item ID"
// @Success 204
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /items/{id} [delete]
func (h *ItemHandler) DeleteItem(c *gin.Context) {
	id := c.Param("id")

	err := h.service.DeleteItem(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Adjust stock
// @Description Apply a manual IN or OUT stock adjustment to a product
// @Tags Items
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Item ID"
// @Param adjustment body dto.AdjustStockRequest true "Adjustment"
// @Success 201 {object} dto.StockTransactionResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 422 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /items/{id}/adjust-stock [post]
func (h *ItemHandler) AdjustStock(c *gin.Context) {
	id := c.Param("id")

	var req dto.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.stock.AdjustStock(c.Request.Context(), id, req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get stock transactions
// @Description Get the stock ledger, optionally filtered by item
// @Tags Items
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param filter query types.StockTransactionFilter false "Filter"
// @Success 200 {object} dto.ListStockTransactionsResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /stock-transactions [get]
func (h *ItemHandler) GetStockTransactions(c *gin.Context) {
	var filter types.StockTransactionFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}

	resp, err := h.stock.ListTransactions(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

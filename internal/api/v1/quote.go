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

type QuoteHandler struct {
	service service.QuoteService
	log     *logger.Logger
}

func NewQuoteHandler(
	service service.QuoteService,
	log *logger.Logger,
) *QuoteHandler {
	return &QuoteHandler{
		service: service,
		log:     log,
	}
}

// @Summary Create a quote
// @Description Create a price quotation
// @Tags Quotes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param quote body dto.CreateQuoteRequest true "Quote"
// @Success 201 {object} dto.QuoteResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /quotes [post]
func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	var req dto.CreateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateQuote(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get a quote
// @Description Get a quote
// @Tags Quotes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Quote ID"
// @Success 200 {object} dto.QuoteResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /quotes/{id} [get]
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	id := c.Param("id")

	resp, err := h.service.GetQuote(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Get quotes
// @Description Get quotes
// @Tags Quotes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param filter query types.QuoteFilter false "Filter"
// @Success 200 {object} dto.ListQuotesResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /quotes [get]
func (h *QuoteHandler) GetQuotes(c *gin.Context) {
	var filter types.QuoteFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}

	resp, err := h.service.GetQuotes(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

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

type TaxRateHandler struct {
	service service.TaxRateService
	log     *logger.Logger
}

func NewTaxRateHandler(
	service service.TaxRateService,
	log *logger.Logger,
) *TaxRateHandler {
	return &TaxRateHandler{
		service: service,
		log:     log,
	}
}

// @Summary Create a tax rate
// @Description Create a GST, TDS or TCS tax rate
// @Tags TaxRates
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param tax_rate body dto.CreateTaxRateRequest true "Tax rate"
// @Success 201 {object} dto.TaxRateResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /tax-rates [post]
func (h *TaxRateHandler) CreateTaxRate(c *gin.Context) {
	var req dto.CreateTaxRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateTaxRate(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get a tax rate
// @Description Get a tax rate
// @Tags TaxRates
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Tax rate ID"
// @Success 200 {object} dto.TaxRateResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /tax-rates/{id} [get]
func (h *TaxRateHandler) GetTaxRate(c *gin.Context) {
	id := c.Param("id")

	resp, err := h.service.GetTaxRate(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Get tax rates
// @Description Get tax rates, optionally filtered by kind
// @Tags TaxRates
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param filter query types.TaxRateFilter false "Filter"
// @Success 200 {object} dto.ListTaxRatesResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /tax-rates [get]
func (h *TaxRateHandler) GetTaxRates(c *gin.Context) {
	var filter types.TaxRateFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}

	resp, err := h.service.GetTaxRates(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Update a tax rate
// @Description Update a tax rate
// @Tags TaxRates
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Tax rate ID"
// @Param tax_rate body dto.UpdateTaxRateRequest true "Tax rate"
// @Success 200 {object} dto.TaxRateResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /tax-rates/{id} [put]
func (h *TaxRateHandler) UpdateTaxRate(c *gin.Context) {
	id := c.Param("id")

	var req dto.UpdateTaxRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdateTaxRate(c.Request.Context(), id, req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Delete a tax rate
// @Description Delete a tax rate
// @Tags TaxRates
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Tax rate ID"
// @Success 204
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /tax-rates/{id} [delete]
func (h *TaxRateHandler) DeleteTaxRate(c *gin.Context) {
	id := c.Param("id")

	err := h.service.DeleteTaxRate(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

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

type VendorHandler struct {
	service service.VendorService
	log     *logger.Logger
}

func NewVendorHandler(
	service service.VendorService,
	log *logger.Logger,
) *VendorHandler {
	return &VendorHandler{
		service: service,
		log:     log,
	}
}

// @Summary Create a vendor
// @Description Create a vendor
// @Tags Vendors
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param vendor body dto.CreateVendorRequest true "Vendor"
// @Success 201 {object} dto.VendorResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /vendors [post]
func (h *VendorHandler) CreateVendor(c *gin.Context) {
	var req dto.CreateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateVendor(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get a vendor
// @Description Get a vendor
// @Tags Vendors
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Vendor ID"
// @Success 200 {object} dto.VendorResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /vendors/{id} [get]
func (h *VendorHandler) GetVendor(c *gin.Context) {
	id := c.Param("id")

	resp, err := h.service.GetVendor(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Get vendors
// @Description Get vendors
// @Tags Vendors
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param filter query types.VendorFilter false "Filter"
// @Success 200 {object} dto.ListVendorsResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /vendors [get]
func (h *VendorHandler) GetVendors(c *gin.Context) {
	var filter types.VendorFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}

	resp, err := h.service.GetVendors(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Update a vendor
// @Description Update a vendor
// @Tags Vendors
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Vendor ID"
// @Param vendor body dto.UpdateVendorRequest true "Vendor"
// @Success 200 {object} dto.VendorResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /vendors/{id} [put]
func (h *VendorHandler) UpdateVendor(c *gin.Context) {
	id := c.Param("id")

	var req dto.UpdateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdateVendor(c.Request.Context(), id, req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Delete a vendor
// @Description Delete a vendor
// @Tags Vendors
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Vendor ID"
// @Success 204
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /vendors/{id} [delete]
func (h *VendorHandler) DeleteVendor(c *gin.Context) {
	id := c.Param("id")

	err := h.service.DeleteVendor(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

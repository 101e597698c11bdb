package v1

import (
	"net/http"

	"github.com/finbooks/finbooks/internal/api/dto"
	ierr "github.com/finbooks/finbooks/internal/errors"
	"github.com/finbooks/finbooks/internal/logger"
	"github.com/finbooks/finbooks/internal/service"
	"github.com/gin-gonic/gin"
)

type SettingsHandler struct {
	service service.SettingsService
	log     *logger.Logger
}

func NewSettingsHandler(
	service service.SettingsService,
	log *logger.Logger,
) *SettingsHandler {
	return &SettingsHandler{
		service: service,
		log:     log,
	}
}

// @Summary Get invoice settings
// @Description Get the tenant's invoice settings, counters and saved themes
// @Tags Settings
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.InvoiceSettingsResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /settings/invoice [get]
func (h *SettingsHandler) GetInvoiceSettings(c *gin.Context) {
	resp, err := h.service.GetInvoiceSettings(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Update invoice settings
// @Description Update the tenant's invoice settings and themes. Counters cannot be written through this endpoint.
// @Tags Settings
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param settings body dto.UpdateInvoiceSettingsRequest true "Settings"
// @Success 200 {object} dto.InvoiceSettingsResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /settings/invoice [put]
func (h *SettingsHandler) UpdateInvoiceSettings(c *gin.Context) {
	var req dto.UpdateInvoiceSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdateInvoiceSettings(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

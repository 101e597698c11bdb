package v1

import (
	"net/http"

	ierr "github.com/finbooks/finbooks/internal/errors"
	"github.com/finbooks/finbooks/internal/logger"
	"github.com/finbooks/finbooks/internal/service"
	"github.com/finbooks/finbooks/internal/types"
	"github.com/gin-gonic/gin"
)

type ActivityHandler struct {
	service service.ActivityService
	log     *logger.Logger
}

func NewActivityHandler(
	service service.ActivityService,
	log *logger.Logger,
) *ActivityHandler {
	return &ActivityHandler{
		service: service,
		log:     log,
	}
}

// @Summary Get activity log
// @Description Get the tenant's audit trail, newest first
// @Tags Activities
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param filter query types.ActivityFilter false "Filter"
// @Success 200 {object} dto.ListActivitiesResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /activities [get]
func (h *ActivityHandler) GetActivities(c *gin.Context) {
	var filter types.ActivityFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}

	resp, err := h.service.ListActivities(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

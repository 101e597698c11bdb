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

type CreditNoteHandler struct {
	service service.CreditNoteService
	log     *logger.Logger
}

func NewCreditNoteHandler(
	service service.CreditNoteService,
	log *logger.Logger,
) *CreditNoteHandler {
	return &CreditNoteHandler{
		service: service,
		log:     log,
	}
}

// @Summary Create a credit note
// @Description Create a credit note. A returned goods reason restocks the credited product quantities.
// @Tags CreditNotes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param credit_note body dto.CreateCreditNoteRequest true "Credit note"
// @Success 201 {object} dto.CreditNoteResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /credit-notes [post]
func (h *CreditNoteHandler) CreateCreditNote(c *gin.Context) {
	var req dto.CreateCreditNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateCreditNote(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get a credit note
// @Description Get a credit note
// @Tags CreditNotes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Credit note ID"
// @Success 200 {object} dto.CreditNoteResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /credit-notes/{id} [get]
func (h *CreditNoteHandler) GetCreditNote(c *gin.Context) {
	id := c.Param("id")

	resp, err := h.service.GetCreditNote(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Get credit notes
// @Description Get credit notes
// @Tags CreditNotes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param filter query types.CreditNoteFilter false "Filter"
// @Success 200 {object} dto.ListCreditNotesResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /credit-notes [get]
func (h *CreditNoteHandler) GetCreditNotes(c *gin.Context) {
	var filter types.CreditNoteFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}

	resp, err := h.service.GetCreditNotes(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

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

type AccountHandler struct {
	service service.AccountService
	log     *logger.Logger
}

func NewAccountHandler(
	service service.AccountService,
	log *logger.Logger,
) *AccountHandler {
	return &AccountHandler{
		service: service,
		log:     log,
	}
}

// @Summary Create a ledger account
// @Description Create an account in the chart of accounts
// @Tags Accounts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param account body dto.CreateAccountRequest true "Account"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /accounts [post]
func (h *AccountHandler) CreateAccount(c *gin.Context) {
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateAccount(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get an account
// @Description Get an account
// @Tags Accounts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /accounts/{id} [get]
func (h *AccountHandler) GetAccount(c *gin.Context) {
	id := c.Param("id")

	resp, err := h.service.GetAccount(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Get accounts
// @Description Get the chart of accounts
// @Tags Accounts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param filter query types.AccountFilter false "Filter"
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /accounts [get]
func (h *AccountHandler) GetAccounts(c *gin.Context) {
	var filter types.AccountFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}

	resp, err := h.service.GetAccounts(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Update an account
// @Description Update an account
// @Tags Accounts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Account ID"
// @Param account body dto.UpdateAccountRequest true "Account"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /accounts/{id} [put]
func (h *AccountHandler) UpdateAccount(c *gin.Context) {
	id := c.Param("id")

	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdateAccount(c.Request.Context(), id, req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Delete an account
// @Description Delete an account
// @Tags Accounts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Account ID"
// @Success 204
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /accounts/{id} [delete]
func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	id := c.Param("id")

	err := h.service.DeleteAccount(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

package handler

import (
	"context"

	appaccounting "github.com/erp/erpcore/internal/application/accounting"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AccountHandler handles the chart of accounts
type AccountHandler struct {
	BaseHandler
	accountService *appaccounting.AccountService
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(accountService *appaccounting.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// List godoc
// @Summary      List accounts ordered by code
// @Tags         accounting
// @Produce      json
// @Security     BearerAuth
// @Param        type       query string false "ASSET, LIABILITY, EQUITY, INCOME or EXPENSE"
// @Param        activeOnly query bool   false "Hide deactivated accounts"
// @Success      200 {object} dto.Response{data=[]appaccounting.AccountResponse}
// @Router       /accounting/accounts [get]
func (h *AccountHandler) List(c *gin.Context) {
	q := h.query(c)
	accountType := q.String("type")
	activeOnly := q.Flag("activeOnly")
	if !q.Valid() {
		return
	}
	accounts, err := h.accountService.List(c.Request.Context(), accountType, activeOnly)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, accounts)
}

// Get godoc
// @Summary      Get an account with its balance
// @Tags         accounting
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Account ID"
// @Success      200 {object} dto.Response{data=appaccounting.AccountResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /accounting/accounts/{id} [get]
func (h *AccountHandler) Get(c *gin.Context) {
	h.withAccount(c, h.accountService.Get)
}

// Create godoc
// @Summary      Create an account
// @Tags         accounting
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body appaccounting.CreateAccountRequest true "Account"
// @Success      201 {object} dto.Response{data=appaccounting.AccountResponse}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /accounting/accounts [post]
func (h *AccountHandler) Create(c *gin.Context) {
	var req appaccounting.CreateAccountRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.accountService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// Update godoc
// @Summary      Update an account's code, name and description
// @Tags         accounting
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path string                             true "Account ID"
// @Param        request body appaccounting.UpdateAccountRequest true "Account"
// @Success      200 {object} dto.Response{data=appaccounting.AccountResponse}
// @Router       /accounting/accounts/{id} [put]
func (h *AccountHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req appaccounting.UpdateAccountRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.accountService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// SetDefault marks the account as the default of its type
// @Router /accounting/accounts/{id}/default [patch]
func (h *AccountHandler) SetDefault(c *gin.Context) {
	h.withAccount(c, h.accountService.SetDefault)
}

// Deactivate takes the account out of posting
// @Router /accounting/accounts/{id}/deactivate [patch]
func (h *AccountHandler) Deactivate(c *gin.Context) {
	h.withAccount(c, h.accountService.Deactivate)
}

// Activate returns a deactivated account to posting
// @Router /accounting/accounts/{id}/activate [patch]
func (h *AccountHandler) Activate(c *gin.Context) {
	h.withAccount(c, h.accountService.Activate)
}

func (h *AccountHandler) withAccount(c *gin.Context, op func(context.Context, uuid.UUID) (*appaccounting.AccountResponse, error)) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	resp, err := op(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

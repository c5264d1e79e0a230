package handler

import (
	appaccounting "github.com/erp/erpcore/internal/application/accounting"
	"github.com/gin-gonic/gin"
)

// TransactionHandler handles ledger entries
type TransactionHandler struct {
	BaseHandler
	transactionService *appaccounting.TransactionService
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(transactionService *appaccounting.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// List godoc
// @Summary      List ledger entries, newest first
// @Tags         accounting
// @Produce      json
// @Security     BearerAuth
// @Param        page      query int    false "Page"
// @Param        limit     query int    false "Page size"
// @Param        accountId query string false "Account ID"
// @Success      200 {object} dto.Response{data=[]appaccounting.TransactionResponse,meta=dto.Meta}
// @Router       /accounting/transactions [get]
func (h *TransactionHandler) List(c *gin.Context) {
	q := h.query(c)
	filter := appaccounting.TransactionListFilter{
		Page:      q.Int("page"),
		Limit:     q.Int("limit"),
		AccountID: q.UUID("accountId"),
	}
	if !q.Valid() || !h.validateQuery(c, &filter) {
		return
	}
	page, err := h.transactionService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	Page(c, page)
}

// Create godoc
// @Summary      Append a manual ledger entry
// @Tags         accounting
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body appaccounting.CreateTransactionRequest true "Entry"
// @Success      201 {object} dto.Response{data=appaccounting.TransactionResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /accounting/transactions [post]
func (h *TransactionHandler) Create(c *gin.Context) {
	var req appaccounting.CreateTransactionRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.transactionService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

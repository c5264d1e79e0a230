package handler

import (
	"fmt"
	"net/http"

	appaccounting "github.com/erp/erpcore/internal/application/accounting"
	"github.com/gin-gonic/gin"
)

// InvoiceHandler handles invoices and their printed form
type InvoiceHandler struct {
	BaseHandler
	invoiceService *appaccounting.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *appaccounting.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// List godoc
// @Summary      List invoices, newest first
// @Tags         accounting
// @Produce      json
// @Security     BearerAuth
// @Param        page   query int    false "Page"
// @Param        limit  query int    false "Page size"
// @Param        type   query string false "INCOME or EXPENSE"
// @Param        status query string false "DRAFT, ISSUED, PAID or CANCELLED"
// @Param        search query string false "Number or client name"
// @Success      200 {object} dto.Response{data=[]appaccounting.InvoiceResponse,meta=dto.Meta}
// @Router       /accounting/invoices [get]
func (h *InvoiceHandler) List(c *gin.Context) {
	q := h.query(c)
	filter := appaccounting.InvoiceListFilter{
		Page:   q.Int("page"),
		Limit:  q.Int("limit"),
		Type:   q.String("type"),
		Status: q.String("status"),
		Search: q.String("search"),
	}
	if !q.Valid() || !h.validateQuery(c, &filter) {
		return
	}
	page, err := h.invoiceService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	Page(c, page)
}

// Get godoc
// @Summary      Get an invoice with its two ledger entries
// @Tags         accounting
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Invoice ID"
// @Success      200 {object} dto.Response{data=appaccounting.InvoiceResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /accounting/invoices/{id} [get]
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.invoiceService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Create godoc
// @Summary      Create an invoice and post its ledger entries
// @Description  The total is recomputed as subtotal + tax. The invoice and both
// @Description  derived entries are stored atomically.
// @Tags         accounting
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body appaccounting.CreateInvoiceRequest true "Invoice"
// @Success      201 {object} dto.Response{data=appaccounting.InvoiceResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo} "MISSING_ACCOUNT_CONFIGURATION, INVALID_AMOUNT"
// @Router       /accounting/invoices [post]
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req appaccounting.CreateInvoiceRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.invoiceService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// UpdateStatus godoc
// @Summary      Move an invoice through DRAFT, ISSUED, PAID and CANCELLED
// @Tags         accounting
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path string                                   true "Invoice ID"
// @Param        request body appaccounting.UpdateInvoiceStatusRequest true "Status"
// @Success      200 {object} dto.Response{data=appaccounting.InvoiceResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo} "INVALID_STATE"
// @Router       /accounting/invoices/{id}/status [patch]
func (h *InvoiceHandler) UpdateStatus(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req appaccounting.UpdateInvoiceStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.invoiceService.UpdateStatus(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// PDF godoc
// @Summary      Download the printed invoice
// @Tags         accounting
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id path string true "Invoice ID"
// @Success      200 {file} binary
// @Failure      503 {object} dto.Response{error=dto.ErrorInfo} "rendering disabled"
// @Router       /accounting/invoices/{id}/pdf [get]
func (h *InvoiceHandler) PDF(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	pdf, err := h.invoiceService.RenderPDF(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", pdf.FileName))
	c.Data(http.StatusOK, "application/pdf", pdf.Data)
}

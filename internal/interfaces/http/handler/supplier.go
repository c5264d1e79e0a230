package handler

import (
	appinventory "github.com/erp/erpcore/internal/application/inventory"
	"github.com/gin-gonic/gin"
)

// SupplierHandler handles product suppliers
type SupplierHandler struct {
	BaseHandler
	supplierService *appinventory.SupplierService
}

// NewSupplierHandler creates a new supplier handler
func NewSupplierHandler(supplierService *appinventory.SupplierService) *SupplierHandler {
	return &SupplierHandler{supplierService: supplierService}
}

// List godoc
// @Summary      List suppliers by name
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Param        includeInactive query bool false "Include inactive suppliers"
// @Success      200 {object} dto.Response{data=[]appinventory.SupplierResponse}
// @Router       /inventory/suppliers [get]
func (h *SupplierHandler) List(c *gin.Context) {
	q := h.query(c)
	includeInactive := q.Flag("includeInactive")
	if !q.Valid() {
		return
	}
	suppliers, err := h.supplierService.List(c.Request.Context(), includeInactive)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, suppliers)
}

// Get returns one supplier
// @Router /inventory/suppliers/{id} [get]
func (h *SupplierHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.supplierService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Create creates a supplier
// @Router /inventory/suppliers [post]
func (h *SupplierHandler) Create(c *gin.Context) {
	var req appinventory.SupplierRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.supplierService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// Update replaces a supplier
// @Router /inventory/suppliers/{id} [put]
func (h *SupplierHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req appinventory.SupplierRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.supplierService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

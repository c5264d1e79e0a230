package handler

import (
	appinventory "github.com/erp/erpcore/internal/application/inventory"
	"github.com/gin-gonic/gin"
)

// ProductHandler handles the product catalog
type ProductHandler struct {
	BaseHandler
	productService *appinventory.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *appinventory.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// List godoc
// @Summary      List products with their stock status
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Param        page            query int    false "Page"
// @Param        limit           query int    false "Page size"
// @Param        search          query string false "SKU or name"
// @Param        categoryId      query string false "Category ID"
// @Param        supplierId      query string false "Supplier ID"
// @Param        includeInactive query bool   false "Include inactive products"
// @Success      200 {object} dto.Response{data=[]appinventory.ProductResponse,meta=dto.Meta}
// @Router       /inventory/products [get]
func (h *ProductHandler) List(c *gin.Context) {
	q := h.query(c)
	filter := appinventory.ProductListFilter{
		Page:            q.Int("page"),
		Limit:           q.Int("limit"),
		Search:          q.String("search"),
		CategoryID:      q.UUID("categoryId"),
		SupplierID:      q.UUID("supplierId"),
		IncludeInactive: q.Flag("includeInactive"),
	}
	if !q.Valid() || !h.validateQuery(c, &filter) {
		return
	}
	page, err := h.productService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	Page(c, page)
}

// Get godoc
// @Summary      Get a product
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Product ID"
// @Success      200 {object} dto.Response{data=appinventory.ProductResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /inventory/products/{id} [get]
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.productService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Create godoc
// @Summary      Create a product with zero stock
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body appinventory.ProductRequest true "Product"
// @Success      201 {object} dto.Response{data=appinventory.ProductResponse}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo} "SKU taken"
// @Router       /inventory/products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req appinventory.ProductRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.productService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// Update godoc
// @Summary      Update a product. Stock only changes through movements.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path string                     true "Product ID"
// @Param        request body appinventory.ProductRequest true "Product"
// @Success      200 {object} dto.Response{data=appinventory.ProductResponse}
// @Router       /inventory/products/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req appinventory.ProductRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.productService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

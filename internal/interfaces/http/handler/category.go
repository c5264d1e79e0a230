package handler

import (
	appinventory "github.com/erp/erpcore/internal/application/inventory"
	"github.com/gin-gonic/gin"
)

// CategoryHandler handles product categories
type CategoryHandler struct {
	BaseHandler
	categoryService *appinventory.CategoryService
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categoryService *appinventory.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// List godoc
// @Summary      List categories by name
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Param        includeInactive query bool false "Include inactive categories"
// @Success      200 {object} dto.Response{data=[]appinventory.CategoryResponse}
// @Router       /inventory/categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	q := h.query(c)
	includeInactive := q.Flag("includeInactive")
	if !q.Valid() {
		return
	}
	categories, err := h.categoryService.List(c.Request.Context(), includeInactive)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, categories)
}

// Get returns one category
// @Router /inventory/categories/{id} [get]
func (h *CategoryHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.categoryService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Create creates a category
// @Router /inventory/categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	var req appinventory.CategoryRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.categoryService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// Update replaces a category
// @Router /inventory/categories/{id} [put]
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req appinventory.CategoryRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.categoryService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

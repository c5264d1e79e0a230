package handler

import (
	appinventory "github.com/erp/erpcore/internal/application/inventory"
	"github.com/gin-gonic/gin"
)

// MovementHandler handles stock movements
type MovementHandler struct {
	BaseHandler
	movementService *appinventory.MovementService
}

// NewMovementHandler creates a new movement handler
func NewMovementHandler(movementService *appinventory.MovementService) *MovementHandler {
	return &MovementHandler{movementService: movementService}
}

// List godoc
// @Summary      List stock movements, newest first
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Param        page      query int    false "Page"
// @Param        limit     query int    false "Page size"
// @Param        productId query string false "Product ID"
// @Param        type      query string false "IN, OUT or ADJUSTMENT"
// @Success      200 {object} dto.Response{data=[]appinventory.MovementResponse,meta=dto.Meta}
// @Router       /inventory/movements [get]
func (h *MovementHandler) List(c *gin.Context) {
	q := h.query(c)
	filter := appinventory.MovementListFilter{
		Page:      q.Int("page"),
		Limit:     q.Int("limit"),
		ProductID: q.UUID("productId"),
		Type:      q.String("type"),
	}
	if !q.Valid() || !h.validateQuery(c, &filter) {
		return
	}
	page, err := h.movementService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	Page(c, page)
}

// Record godoc
// @Summary      Record a movement and apply it to the product's stock
// @Description  IN adds, OUT subtracts and ADJUSTMENT sets the counted quantity.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body appinventory.RecordMovementRequest true "Movement"
// @Success      201 {object} dto.Response{data=appinventory.MovementResult}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo} "INSUFFICIENT_STOCK"
// @Router       /inventory/movements [post]
func (h *MovementHandler) Record(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	var req appinventory.RecordMovementRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.movementService.Record(c.Request.Context(), req, userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

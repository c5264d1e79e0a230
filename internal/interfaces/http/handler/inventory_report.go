package handler

import (
	appinventory "github.com/erp/erpcore/internal/application/inventory"
	"github.com/gin-gonic/gin"
)

// InventoryReportHandler serves alerts, the inventory dashboard and stock reports
type InventoryReportHandler struct {
	BaseHandler
	dashboardService *appinventory.DashboardService
	alertService     *appinventory.AlertService
}

// NewInventoryReportHandler creates a new inventory report handler
func NewInventoryReportHandler(dashboardService *appinventory.DashboardService, alertService *appinventory.AlertService) *InventoryReportHandler {
	return &InventoryReportHandler{
		dashboardService: dashboardService,
		alertService:     alertService,
	}
}

// Dashboard godoc
// @Summary      Product counts, stock value, recent movements, open alerts and category summary
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.Response{data=appinventory.InventoryDashboardResponse}
// @Router       /inventory/dashboard [get]
func (h *InventoryReportHandler) Dashboard(c *gin.Context) {
	resp, err := h.dashboardService.Get(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// StockLevels lists every active product with its status
// @Router /inventory/reports/stock-levels [get]
func (h *InventoryReportHandler) StockLevels(c *gin.Context) {
	resp, err := h.dashboardService.StockLevels(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// LowStock lists active products at or below their minimum
// @Router /inventory/reports/low-stock [get]
func (h *InventoryReportHandler) LowStock(c *gin.Context) {
	resp, err := h.dashboardService.LowStock(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Alerts godoc
// @Summary      List stock alerts
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Param        resolved query bool false "Only resolved (true) or open (false) alerts"
// @Success      200 {object} dto.Response{data=[]appinventory.AlertResponse}
// @Router       /inventory/alerts [get]
func (h *InventoryReportHandler) Alerts(c *gin.Context) {
	q := h.query(c)
	filter := appinventory.AlertListFilter{Resolved: q.Bool("resolved")}
	if !q.Valid() {
		return
	}
	alerts, err := h.alertService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, alerts)
}

// ResolveAlert godoc
// @Summary      Resolve an open alert
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Alert ID"
// @Success      200 {object} dto.Response{data=appinventory.AlertResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo} "already resolved"
// @Router       /inventory/alerts/{id}/resolve [patch]
func (h *InventoryReportHandler) ResolveAlert(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.alertService.Resolve(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

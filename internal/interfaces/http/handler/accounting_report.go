package handler

import (
	appaccounting "github.com/erp/erpcore/internal/application/accounting"
	"github.com/gin-gonic/gin"
)

// AccountingReportHandler serves the accounting dashboard and statements
type AccountingReportHandler struct {
	BaseHandler
	dashboardService *appaccounting.DashboardService
	reportService    *appaccounting.ReportService
}

// NewAccountingReportHandler creates a new accounting report handler
func NewAccountingReportHandler(dashboardService *appaccounting.DashboardService, reportService *appaccounting.ReportService) *AccountingReportHandler {
	return &AccountingReportHandler{
		dashboardService: dashboardService,
		reportService:    reportService,
	}
}

// Dashboard godoc
// @Summary      Current-month totals, balances, recent entries and pending invoices
// @Tags         accounting
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.Response{data=appaccounting.DashboardResponse}
// @Router       /accounting/dashboard [get]
func (h *AccountingReportHandler) Dashboard(c *gin.Context) {
	resp, err := h.dashboardService.Get(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// IncomeStatement godoc
// @Summary      Income and expenses per account over an inclusive date range
// @Tags         accounting
// @Produce      json
// @Security     BearerAuth
// @Param        startDate query string false "YYYY-MM-DD, defaults to the first day of the month"
// @Param        endDate   query string false "YYYY-MM-DD, defaults to today"
// @Success      200 {object} dto.Response{data=appaccounting.IncomeStatementResponse}
// @Router       /accounting/reports/income-statement [get]
func (h *AccountingReportHandler) IncomeStatement(c *gin.Context) {
	q := h.query(c)
	resp, err := h.reportService.IncomeStatement(c.Request.Context(), appaccounting.IncomeStatementQuery{
		StartDate: q.String("startDate"),
		EndDate:   q.String("endDate"),
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// BalanceSheet godoc
// @Summary      Assets, liabilities and equity as of a date
// @Tags         accounting
// @Produce      json
// @Security     BearerAuth
// @Param        date query string false "YYYY-MM-DD, defaults to today"
// @Success      200 {object} dto.Response{data=accounting.BalanceSheet}
// @Router       /accounting/reports/balance-sheet [get]
func (h *AccountingReportHandler) BalanceSheet(c *gin.Context) {
	resp, err := h.reportService.BalanceSheet(c.Request.Context(), appaccounting.BalanceSheetQuery{
		Date: h.query(c).String("date"),
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	reportapp "github.com/supermart/backend/internal/application/report"
)

// ReportHandler serves sales reports
type ReportHandler struct {
	BaseHandler
	trendService *reportapp.SalesTrendService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(trendService *reportapp.SalesTrendService) *ReportHandler {
	return &ReportHandler{trendService: trendService}
}

// RegisterRoutes registers report routes
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/reports/sales/monthly", h.MonthlySales)
}

// MonthlySales aggregates order totals per month over the requested window
// GET /api/v1/reports/sales/monthly?months=N
func (h *ReportHandler) MonthlySales(c *gin.Context) {
	months := reportapp.MaxTrendMonths
	if raw := c.Query("months"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.BadRequest(c, "months must be an integer")
			return
		}
		months = parsed
	}

	trend, err := h.trendService.MonthlySales(c.Request.Context(), months)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, trend)
}

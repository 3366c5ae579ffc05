package handler

import (
	"time"

	reportapp "github.com/dukkan/backoffice/internal/application/report"
	"github.com/gin-gonic/gin"
)

// ReportHandler serves the analytics dashboard aggregation
type ReportHandler struct {
	BaseHandler
	analyticsService *reportapp.AnalyticsService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(analyticsService *reportapp.AnalyticsService) *ReportHandler {
	return &ReportHandler{analyticsService: analyticsService}
}

// ReportRequest selects the aggregation window and optional product scope
type ReportRequest struct {
	StartDate string   `form:"start_date" binding:"required"`
	EndDate   string   `form:"end_date" binding:"required"`
	Product   []string `form:"product"`
}

// Get godoc
// @Summary      Financial report
// @Description  Aggregates orders, product costs and ad spend over the date range into turnover, margin, CAC and stock-runway figures, overall and per product. Ratio fields are null when their denominator is zero.
// @Tags         reports
// @Produce      json
// @Param        start_date query string true "Range start (YYYY-MM-DD)"
// @Param        end_date query string true "Range end (YYYY-MM-DD), inclusive"
// @Param        product query []string false "Limit to these products"
// @Success      200 {object} dto.Response{data=reportapp.Report}
// @Failure      400 {object} dto.Response
// @Router       /reports [get]
func (h *ReportHandler) Get(c *gin.Context) {
	var req ReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "start_date and end_date are required")
		return
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		h.BadRequest(c, "Invalid start_date, expected YYYY-MM-DD")
		return
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		h.BadRequest(c, "Invalid end_date, expected YYYY-MM-DD")
		return
	}
	if end.Before(start) {
		h.BadRequest(c, "end_date must not be before start_date")
		return
	}

	report, err := h.analyticsService.Aggregate(c.Request.Context(), reportapp.ReportQuery{
		StartDate: start,
		EndDate:   end,
		Products:  req.Product,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, report)
}

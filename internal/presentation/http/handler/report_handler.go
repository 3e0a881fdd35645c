package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/retailpos-api/internal/application/service"
	"github.com/sangkips/retailpos-api/internal/domain/enum"
	"github.com/sangkips/retailpos-api/internal/infrastructure/spreadsheet"
	"github.com/sangkips/retailpos-api/internal/presentation/http/dto/request"
	"github.com/sangkips/retailpos-api/internal/presentation/http/dto/response"
)

// ReportHandler serves sales reports
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func bindReportQuery(c *gin.Context) (service.ReportQuery, bool) {
	var req request.SalesReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return service.ReportQuery{}, false
	}
	return service.ReportQuery{
		Granularity: enum.Granularity(req.Granularity),
		From:        req.From,
		To:          req.To,
		TopN:        req.Top,
	}, true
}

// Sales returns the sales report for a window
// @Summary Sales report
// @Tags reports
// @Param granularity query string false "daily, weekly, monthly or yearly"
// @Param from query string false "From date (YYYY-MM-DD)"
// @Param to query string false "To date (YYYY-MM-DD)"
// @Param top query int false "Number of top products"
// @Router /reports/sales [get]
func (h *ReportHandler) Sales(c *gin.Context) {
	query, ok := bindReportQuery(c)
	if !ok {
		return
	}

	report, err := h.reportService.SalesReport(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sales report generated", report)
}

// Export downloads the sales report as a workbook
func (h *ReportHandler) Export(c *gin.Context) {
	query, ok := bindReportQuery(c)
	if !ok {
		return
	}

	data, fileName, err := h.reportService.ExportSalesReport(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Attachment(c, fileName, spreadsheet.ContentType, data)
}

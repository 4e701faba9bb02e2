package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dailyworklog/server/internal/service"
)

// ReportHandler exposes the admin summary reports.
type ReportHandler struct {
	summaries *service.SummaryService
}

// NewReportHandler creates a report handler.
func NewReportHandler(summaries *service.SummaryService) *ReportHandler {
	return &ReportHandler{summaries: summaries}
}

// DailySummary handles GET /api/reports/daily-summary.
func (h *ReportHandler) DailySummary(c *gin.Context) {
	report, err := h.summaries.DailySummary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// ProjectSummary handles GET /api/reports/project-summary.
func (h *ReportHandler) ProjectSummary(c *gin.Context) {
	report, err := h.summaries.ProjectSummaryToday(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

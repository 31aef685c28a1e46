package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	reportapp "github.com/shivaccounts/backend/internal/application/report"
	"github.com/shivaccounts/backend/internal/domain/report"
)

// ReportHandler handles report and stock ledger endpoints
type ReportHandler struct {
	BaseHandler
	service *reportapp.Service
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(service *reportapp.Service) *ReportHandler {
	return &ReportHandler{service: service}
}

// RegisterRoutes registers report routes
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	{
		reports.GET("/:kind", h.GetReport)
	}
	rg.GET("/stock", h.ListStock)
}

// ReportQuery carries the report period as date-only query parameters
type ReportQuery struct {
	From string `form:"from" binding:"required,datetime=2006-01-02"`
	To   string `form:"to" binding:"required,datetime=2006-01-02"`
}

// GetReport handles GET /reports/:kind?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *ReportHandler) GetReport(c *gin.Context) {
	var query ReportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	from, err := time.Parse("2006-01-02", query.From)
	if err != nil {
		h.BadRequest(c, "Invalid from date")
		return
	}
	to, err := time.Parse("2006-01-02", query.To)
	if err != nil {
		h.BadRequest(c, "Invalid to date")
		return
	}
	// include the whole end day
	to = to.Add(24*time.Hour - time.Nanosecond)

	result, err := h.service.GetReport(report.Kind(c.Param("kind")), from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// ListStock handles GET /stock
func (h *ReportHandler) ListStock(c *gin.Context) {
	items := h.service.ListStock()
	h.List(c, items, len(items))
}

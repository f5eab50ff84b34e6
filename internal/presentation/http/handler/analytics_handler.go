package handler

import (
	"time"

	"github.com/dukapos/dukapos-api/internal/application/service"
	"github.com/dukapos/dukapos-api/internal/presentation/http/dto/request"
	"github.com/dukapos/dukapos-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// AnalyticsHandler handles analytics HTTP requests
type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
	location         *time.Location
}

// NewAnalyticsHandler creates a new analytics handler. loc is the store's
// calendar timezone for "today" queries.
func NewAnalyticsHandler(analyticsService *service.AnalyticsService, loc *time.Location) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService, location: loc}
}

func (h *AnalyticsHandler) bindRange(c *gin.Context) (start, end time.Time, limit int, ok bool) {
	var req request.AnalyticsRangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	startPtr, err := parseTimeParam(req.Start)
	if err != nil {
		response.BadRequest(c, "Invalid start parameter")
		return
	}
	endPtr, err := parseTimeParam(req.End)
	if err != nil {
		response.BadRequest(c, "Invalid end parameter")
		return
	}

	// Default window is the current calendar day
	now := time.Now().In(h.location)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, h.location)
	start, end = today, today.AddDate(0, 0, 1)
	if startPtr != nil {
		start = *startPtr
	}
	if endPtr != nil {
		end = *endPtr
	}

	return start, end, req.Limit, true
}

// Summary handles revenue and profit aggregation over a window
func (h *AnalyticsHandler) Summary(c *gin.Context) {
	start, end, _, ok := h.bindRange(c)
	if !ok {
		return
	}

	summary, err := h.analyticsService.Summary(c.Request.Context(), start, end)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Summary retrieved successfully", summary)
}

// TodaySummary handles the current calendar day's summary
func (h *AnalyticsHandler) TodaySummary(c *gin.Context) {
	summary, err := h.analyticsService.TodaySummary(c.Request.Context(), h.location)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Summary retrieved successfully", summary)
}

// TopSellers handles the best-sellers aggregation over a window
func (h *AnalyticsHandler) TopSellers(c *gin.Context) {
	start, end, limit, ok := h.bindRange(c)
	if !ok {
		return
	}

	sellers, err := h.analyticsService.TopSellers(c.Request.Context(), start, end, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Top sellers retrieved successfully", sellers)
}

// LowStock handles listing products needing replenishment
func (h *AnalyticsHandler) LowStock(c *gin.Context) {
	products, err := h.analyticsService.LowStock(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Low stock products retrieved successfully", products)
}

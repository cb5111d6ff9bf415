package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nexusai/router-api/internal/analytics"
	"github.com/nexusai/router-api/pkg/api"
)

type AnalyticsHandler struct {
	service analytics.Service
}

func NewAnalyticsHandler(service analytics.Service) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

func (h *AnalyticsHandler) Overview(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "7"))

	stats, err := h.service.GetUsageOverview(c.Request.Context(), days)
	if err != nil {
		_ = c.Error(api.InternalError("Failed to load usage overview", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"daily": stats})
}

func (h *AnalyticsHandler) ModelUsage(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "7"))

	usage, err := h.service.GetModelUsage(c.Request.Context(), days)
	if err != nil {
		_ = c.Error(api.InternalError("Failed to load model usage", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"models": usage})
}

func (h *AnalyticsHandler) RecentRequests(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	logs, err := h.service.GetRecentRequests(c.Request.Context(), limit)
	if err != nil {
		_ = c.Error(api.InternalError("Failed to load recent requests", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": logs, "count": len(logs)})
}

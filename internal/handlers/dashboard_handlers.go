package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ayomidekayo/OgwInventorybackend/internal/services"
)

// DashboardHandler holds the dashboard service.
type DashboardHandler struct {
	dashboardService services.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(ds services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: ds}
}

// GetStats handles fetching dashboard aggregates.
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.dashboardService.GetStats()
	if err != nil {
		respondServiceError(c, err, "GetStats: Error from dashboardService.GetStats")
		return
	}
	c.JSON(http.StatusOK, stats)
}

package controllers

import (
	"net/http"
	"strconv"

	"github.com/YodHeVauHe/ShopWithKylie/services"
	"github.com/gin-gonic/gin"
)

// DashboardController serves the admin dashboard aggregates.
type DashboardController struct {
	metricsService services.MetricsService
}

// NewDashboardController creates a new DashboardController.
func NewDashboardController(metricsService services.MetricsService) *DashboardController {
	return &DashboardController{metricsService: metricsService}
}

// GetMetrics handles GET /admin/dashboard (admin only).
func (dc *DashboardController) GetMetrics(ctx *gin.Context) {
	metrics, svcErr := dc.metricsService.Dashboard(ctx.Request.Context())
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, metrics)
}

// GetRevenue handles GET /admin/dashboard/revenue (admin only).
func (dc *DashboardController) GetRevenue(ctx *gin.Context) {
	days := 30
	if d, err := strconv.Atoi(ctx.DefaultQuery("days", "30")); err == nil {
		days = d
	}

	rows, svcErr := dc.metricsService.RevenueByDay(ctx.Request.Context(), days)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"revenue": rows})
}

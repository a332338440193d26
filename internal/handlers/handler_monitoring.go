package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/inkpad-app/inkpad-backend/internal/core/ports/services"
	"github.com/inkpad-app/inkpad-backend/internal/dto"
	"github.com/inkpad-app/inkpad-backend/internal/middleware"
)

// MonitoringHandler exposes the in-process request metrics and health probe.
type MonitoringHandler struct {
	monitoringService portssvc.MonitoringSvcFacade
}

func NewMonitoringHandler(monitoringService portssvc.MonitoringSvcFacade) *MonitoringHandler {
	return &MonitoringHandler{monitoringService: monitoringService}
}

func registerMonitoringRoutes(r *gin.Engine, services *portssvc.ServiceContainer) {
	h := NewMonitoringHandler(services.Monitoring)

	r.GET("/health", h.Health)

	admin := r.Group("/api/v1/monitoring", middleware.AuthMiddleware(services.Auth), middleware.RequireAdmin())
	{
		admin.GET("/metrics", h.Summary)
		admin.GET("/metrics/errors", h.RecentErrors)
		admin.GET("/metrics/activity", h.UserActivity)
		admin.POST("/metrics/reset", h.Reset)
		admin.GET("/health", h.Health)
	}
}

// Health godoc
// @Summary Health check
// @Description Reports per-component health. Returns 503 when any component is down.
// @Tags monitoring
// @Produce json
// @Success 200 {object} services.HealthReport
// @Failure 503 {object} services.HealthReport
// @Router /health [get]
func (h *MonitoringHandler) Health(c *gin.Context) {
	report, healthy := h.monitoringService.Health(c.Request.Context())
	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, report)
}

// Summary godoc
// @Summary Request metrics summary
// @Description Aggregated request counts, latencies and statuses since start or last reset. Admin only.
// @Tags monitoring
// @Produce json
// @Security BearerAuth
// @Success 200 {object} services.MetricsOverview
// @Failure 403 {object} dto.ErrorResponse
// @Router /monitoring/metrics [get]
func (h *MonitoringHandler) Summary(c *gin.Context) {
	overview, err := h.monitoringService.Summary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}

// RecentErrors godoc
// @Summary Recent error responses
// @Tags monitoring
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Rows to return" default(20)
// @Success 200 {array} metrics.RequestRecord
// @Failure 403 {object} dto.ErrorResponse
// @Router /monitoring/metrics/errors [get]
func (h *MonitoringHandler) RecentErrors(c *gin.Context) {
	var query struct {
		Limit int `form:"limit"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid query parameters"})
		return
	}
	c.JSON(http.StatusOK, h.monitoringService.RecentErrors(c.Request.Context(), query.Limit))
}

// UserActivity godoc
// @Summary User activity metrics
// @Description Daily active user counts derived from authenticated requests. Admin only.
// @Tags monitoring
// @Produce json
// @Security BearerAuth
// @Success 200 {object} metrics.UserActivity
// @Failure 403 {object} dto.ErrorResponse
// @Router /monitoring/metrics/activity [get]
func (h *MonitoringHandler) UserActivity(c *gin.Context) {
	c.JSON(http.StatusOK, h.monitoringService.UserActivity(c.Request.Context()))
}

// Reset godoc
// @Summary Reset metrics
// @Tags monitoring
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.MessageResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /monitoring/metrics/reset [post]
func (h *MonitoringHandler) Reset(c *gin.Context) {
	h.monitoringService.ResetMetrics(c.Request.Context())
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Metrics reset"})
}

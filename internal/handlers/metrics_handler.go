package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/job-tracker/internal/middleware"
	"alfredoptarigan/job-tracker/internal/services"
)

type MetricsHandler struct {
	metricsService services.MetricsService
}

func NewMetricsHandler(metricsService services.MetricsService) *MetricsHandler {
	return &MetricsHandler{metricsService: metricsService}
}

// HandleMetrics handles GET /metrics
func (h *MetricsHandler) HandleMetrics(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	metrics, err := h.metricsService.ForOwner(userID)
	if err != nil {
		return err
	}
	return c.JSON(metrics)
}

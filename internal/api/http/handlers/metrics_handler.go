package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/desk-metrics/internal/observability"
)

// MetricsHandler exposes the in-memory counters and gauges.
type MetricsHandler struct {
	metrics *observability.Metrics
}

// NewMetricsHandler constructs handler.
func NewMetricsHandler(metrics *observability.Metrics) *MetricsHandler {
	return &MetricsHandler{metrics: metrics}
}

// Metrics GET /metrics.
func (h *MetricsHandler) Metrics(c *fiber.Ctx) error {
	requests, errs, gauges := h.metrics.Snapshot()
	return c.JSON(fiber.Map{
		"requests": requests,
		"errors":   errs,
		"gauges":   gauges,
	})
}

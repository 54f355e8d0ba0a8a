package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/desk-metrics/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health  *handlers.HealthHandler
	Reports *handlers.ReportsHandler
	Metrics *handlers.MetricsHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/system", cfg.Health.System)

	app.Get("/metrics", cfg.Metrics.Metrics)

	reports := app.Group("/reports")
	reports.Get("/overview", cfg.Reports.Overview)
	reports.Get("/sla", cfg.Reports.SlaSummary)
	reports.Get("/technicians", cfg.Reports.TechnicianRanking)
	reports.Get("/tickets/:id/timeline", cfg.Reports.Timeline)
}

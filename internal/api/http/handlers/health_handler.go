package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/desk-metrics/internal/api/dto"
	"github.com/spec-kit/desk-metrics/internal/service"
)

// Pinger is anything whose connectivity readiness should check.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler responds to liveness/readiness probes and the system
// health report.
type HealthHandler struct {
	serviceName string
	version     string
	service     *service.QueryService
	deps        map[string]Pinger
}

// NewHealthHandler returns a new handler instance. deps may be empty when
// the file backend is active.
func NewHealthHandler(serviceName, version string, queryService *service.QueryService, deps map[string]Pinger) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, version: version, service: queryService, deps: deps}
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready reports service readiness by checking backend dependencies.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	depStatus := fiber.Map{}
	ready := true
	for name, dep := range h.deps {
		if err := dep.Ping(ctx); err != nil {
			depStatus[name] = err.Error()
			ready = false
		} else {
			depStatus[name] = "ok"
		}
	}

	if ready {
		return c.JSON(fiber.Map{
			"status":       "ready",
			"dependencies": depStatus,
		})
	}
	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    "DEPENDENCY_UNAVAILABLE",
			"message": "one or more dependencies unavailable",
			"details": depStatus,
		},
	})
}

// System GET /health/system reports ingestion freshness.
func (h *HealthHandler) System(c *fiber.Ctx) error {
	health, err := h.service.GetSystemHealth(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromSystemHealth(health)})
}

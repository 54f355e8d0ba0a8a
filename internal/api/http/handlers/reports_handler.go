package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/desk-metrics/internal/api/dto"
	"github.com/spec-kit/desk-metrics/internal/service"
	apperrors "github.com/spec-kit/desk-metrics/pkg/util"
)

// ReportsHandler serves the aggregated dashboard reports.
type ReportsHandler struct {
	service *service.QueryService
}

// NewReportsHandler constructs handler.
func NewReportsHandler(queryService *service.QueryService) *ReportsHandler {
	return &ReportsHandler{service: queryService}
}

// Overview GET /reports/overview.
func (h *ReportsHandler) Overview(c *fiber.Ctx) error {
	reference, err := parseReference(c)
	if err != nil {
		return err
	}
	overview, err := h.service.GetOverview(c.UserContext(), reference)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromOverview(overview)})
}

// SlaSummary GET /reports/sla.
func (h *ReportsHandler) SlaSummary(c *fiber.Ctx) error {
	reference, err := parseReference(c)
	if err != nil {
		return err
	}
	summary, err := h.service.GetSlaSummary(c.UserContext(), reference)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromSlaSummary(summary)})
}

// TechnicianRanking GET /reports/technicians.
func (h *ReportsHandler) TechnicianRanking(c *fiber.Ctx) error {
	ranking, err := h.service.GetTechnicianRanking(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromTechnicians(ranking)})
}

// Timeline GET /reports/tickets/:id/timeline.
func (h *ReportsHandler) Timeline(c *fiber.Ctx) error {
	ticketID, err := strconv.Atoi(c.Params("id"))
	if err != nil || ticketID <= 0 {
		return apperrors.NewValidationError("ticket id must be a positive integer", nil)
	}
	events, err := h.service.GetTimeline(c.UserContext(), ticketID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromTimeline(events)})
}

// parseReference reads the optional `at` query parameter used as the
// reference time for window and aging computations.
func parseReference(c *fiber.Ctx) (*time.Time, error) {
	raw := c.Query("at")
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, apperrors.NewValidationError("at must be RFC3339", map[string]any{"at": raw})
	}
	return &t, nil
}

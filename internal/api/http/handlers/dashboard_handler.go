package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/listing-admin/internal/api/dto"
	"github.com/spec-kit/listing-admin/internal/service"
)

// DashboardHandler serves the admin dashboard aggregates.
type DashboardHandler struct {
	dashboard *service.DashboardService
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(dashboard *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Stats handles GET /api/admin/dashboard/stats.
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.dashboard.Stats(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.OK("", stats))
}

// Activities handles GET /api/admin/dashboard/activities.
func (h *DashboardHandler) Activities(c *fiber.Ctx) error {
	entries, err := h.dashboard.RecentActivities(c.UserContext(), c.QueryInt("limit", service.DefaultActivityLimit))
	if err != nil {
		return err
	}
	return c.JSON(dto.OK("", dto.NewActivities(entries)))
}

package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/listing-admin/internal/api/dto"
	"github.com/spec-kit/listing-admin/internal/service"
)

// StaffHandler exposes the admin staff endpoints.
type StaffHandler struct {
	staff *service.StaffService
}

// NewStaffHandler constructs handler.
func NewStaffHandler(staff *service.StaffService) *StaffHandler {
	return &StaffHandler{staff: staff}
}

// Create handles POST /api/admin/staff.
func (h *StaffHandler) Create(c *fiber.Ctx) error {
	var req dto.StaffCreateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	account, err := h.staff.Create(c.UserContext(), actor(c), req.Input())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.OK("Staff created successfully", dto.NewStaffCreated(account)))
}

// List handles GET /api/admin/staff.
func (h *StaffHandler) List(c *fiber.Ctx) error {
	accounts, page, err := h.staff.List(c.UserContext(), pageParams(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.Page(dto.NewStaffList(accounts), page))
}

// UpdateStatus handles PUT /api/admin/staff/:staffId/status.
func (h *StaffHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.StatusRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	account, err := h.staff.UpdateStatus(c.UserContext(), actor(c), c.Params("staffId"), req.Status)
	if err != nil {
		return err
	}
	message := "Staff inactivated successfully"
	if account.Membership.Active {
		message = "Staff activated successfully"
	}
	return c.JSON(dto.OK(message, dto.StaffStatusView{
		StaffID: account.Membership.StaffCode,
		Status:  account.Membership.StatusLabel(),
	}))
}

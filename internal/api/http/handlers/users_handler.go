package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/listing-admin/internal/api/dto"
	"github.com/spec-kit/listing-admin/internal/domain"
	"github.com/spec-kit/listing-admin/internal/service"
)

// UsersHandler exposes the admin user management endpoints.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(users *service.UserService) *UsersHandler {
	return &UsersHandler{users: users}
}

// List handles GET /api/admin/users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, page, err := h.users.List(c.UserContext(), pageParams(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.Page(dto.NewUserList(users), page))
}

// Review handles GET /api/admin/users/review.
func (h *UsersHandler) Review(c *fiber.Ctx) error {
	users, page, err := h.users.ListReview(c.UserContext(), pageParams(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.Page(dto.NewReviewList(users), page))
}

// Create handles POST /api/admin/users.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var req dto.UserRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	created, err := h.users.Create(c.UserContext(), actor(c), req.Input())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.OK("User created successfully", dto.NewUserRecord(created)))
}

// Get handles GET /api/admin/users/:userId.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	user, err := h.users.Get(c.UserContext(), c.Params("userId"))
	if err != nil {
		return err
	}
	return c.JSON(dto.OK("", dto.NewUserDetail(user)))
}

// Update handles PUT /api/admin/users/:userId.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	var req dto.UserRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	updated, err := h.users.Update(c.UserContext(), actor(c), c.Params("userId"), req.Input())
	if err != nil {
		return err
	}
	return c.JSON(dto.OK("User updated successfully", dto.NewUserRecord(updated)))
}

// Delete handles DELETE /api/admin/users/:userId.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	if err := h.users.Delete(c.UserContext(), actor(c), c.Params("userId")); err != nil {
		return err
	}
	return c.JSON(dto.OK("User deleted successfully", nil))
}

// UpdateStatus handles PUT /api/admin/users/:userId/status.
func (h *UsersHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.StatusRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	user, err := h.users.UpdateStatus(c.UserContext(), actor(c), c.Params("userId"), req.Status)
	if err != nil {
		return err
	}
	message := "User activated successfully"
	if user.AccountStatus == domain.AccountStatusSuspended {
		message = "User suspended successfully"
	}
	return c.JSON(dto.OK(message, dto.NewUserStatusView(user)))
}

package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/listing-admin/internal/api/dto"
	"github.com/spec-kit/listing-admin/internal/auth"
	"github.com/spec-kit/listing-admin/internal/service"
	apperrors "github.com/spec-kit/listing-admin/pkg/util/errorutil"
)

// AuthHandler exposes login, token verification and profile self-service.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// StaffLogin handles POST /api/auth/staff/login.
func (h *AuthHandler) StaffLogin(c *fiber.Ctx) error {
	var req dto.StaffLoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	res, err := h.auth.LoginStaff(c.UserContext(), req.StaffID, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK("Login successful", dto.NewLoginResponse(res)))
}

// UserLogin handles POST /api/auth/user/login.
func (h *AuthHandler) UserLogin(c *fiber.Ctx) error {
	var req dto.UserLoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	res, err := h.auth.LoginUser(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK("Login successful", dto.NewLoginResponse(res)))
}

// VerifyToken handles POST /api/auth/verify-token and echoes the decoded claims.
func (h *AuthHandler) VerifyToken(c *fiber.Ctx) error {
	token, _ := auth.BearerToken(c.Get(fiber.HeaderAuthorization))
	claims, err := h.auth.VerifyToken(token)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK("", claims))
}

// GetProfile handles GET /api/auth/user/profile.
func (h *AuthHandler) GetProfile(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized(auth.MsgNoToken)
	}
	profile, err := h.auth.GetProfile(c.UserContext(), claims)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK("", dto.NewProfile(profile)))
}

// UpdateProfile handles PUT /api/auth/user/profile.
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized(auth.MsgNoToken)
	}
	var req dto.ProfileUpdateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if _, err := h.auth.UpdateProfile(c.UserContext(), claims, req.Input()); err != nil {
		return err
	}
	return c.JSON(dto.OK("Profile updated successfully", nil))
}

// ChangePassword handles PUT /api/auth/user/password.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized(auth.MsgNoToken)
	}
	var req dto.PasswordChangeRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := h.auth.ChangePassword(c.UserContext(), claims, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(dto.OK("Password changed successfully", nil))
}

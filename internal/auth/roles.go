package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/listing-admin/internal/domain"
	apperrors "github.com/spec-kit/listing-admin/pkg/util/errorutil"
)

// RequireAdmin ensures the caller is a staff member carrying an admin privilege set.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := ClaimsFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized(MsgNoToken)
		}
		if claims.Role != domain.RoleStaff || !claims.IsAdmin {
			return apperrors.NewForbidden("Admin access required")
		}
		return c.Next()
	}
}

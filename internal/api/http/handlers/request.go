package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/listing-admin/internal/auth"
	"github.com/spec-kit/listing-admin/internal/events"
	"github.com/spec-kit/listing-admin/internal/service"
	apperrors "github.com/spec-kit/listing-admin/pkg/util/errorutil"
)

// MsgInvalidBody is returned when a request body is present but cannot be decoded.
const MsgInvalidBody = "Invalid request body"

// parseBody decodes a JSON body into out. An empty body leaves out zeroed so that
// field validation reports what is missing.
func parseBody(c *fiber.Ctx, out any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(out); err != nil {
		return apperrors.NewValidationError(MsgInvalidBody, nil)
	}
	return nil
}

func pageParams(c *fiber.Ctx) service.PageParams {
	return service.PageParams{
		Page:   c.QueryInt("page", 1),
		Limit:  c.QueryInt("limit", 10),
		Search: c.Query("search"),
	}
}

// actor attributes admin changes to the calling staff member when the admin routes are guarded.
func actor(c *fiber.Ctx) events.Actor {
	claims, _ := auth.ClaimsFromContext(c)
	return service.ActorFromClaims(claims)
}

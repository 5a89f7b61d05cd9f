package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/listing-admin/internal/api/dto"
	"github.com/spec-kit/listing-admin/internal/service"
)

// EmailHandler exposes the mail diagnostics endpoint.
type EmailHandler struct {
	notifications *service.NotificationService
}

// NewEmailHandler constructs handler.
func NewEmailHandler(notifications *service.NotificationService) *EmailHandler {
	return &EmailHandler{notifications: notifications}
}

// SendTest handles POST /api/admin/test-email.
func (h *EmailHandler) SendTest(c *fiber.Ctx) error {
	var req dto.TestEmailRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	messageID, err := h.notifications.SendTestEmail(c.UserContext(), req.Email, req.FirstName, req.LastName)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success":   true,
		"message":   "Test email sent successfully",
		"messageId": messageID,
	})
}

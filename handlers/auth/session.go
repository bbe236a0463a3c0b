package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/coursebox/content-api/utils/auth"
	"github.com/coursebox/content-api/utils/middleware"
	"github.com/coursebox/content-api/utils/response"
)

// Me handles GET /api/auth/me. The claims in the verified cookie are the
// source of truth; no store round-trip.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	email, _ := middleware.GetUserEmail(c)
	name, _ := middleware.GetUserName(c)
	method, _ := middleware.GetUserMethod(c)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"user": fiber.Map{
			"id":     userID,
			"email":  email,
			"name":   name,
			"method": method,
		},
	})
}

// Logout handles POST /api/auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	auth.ClearSessionCookie(c)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Logged out successfully",
	})
}

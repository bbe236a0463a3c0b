package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/coursebox/content-api/services/identity"
	"github.com/coursebox/content-api/utils/auth"
	"github.com/coursebox/content-api/utils/response"
)

// AdminRequest is the body of the admin login-or-register endpoint
type AdminRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
	Name     string `json:"name" form:"name"`
}

// Admin handles POST /api/auth/admin. Same login-or-register flow as the
// user endpoint but against the admin table, password only.
func (h *AuthHandler) Admin(c *fiber.Ctx) error {
	var req AdminRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	_, outcome, token, err := h.resolver.Authenticate(c.Context(), h.adminRealm, identity.Credentials{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		return h.reportAuthFailure(c, err)
	}

	if h.bruteForceProtection != nil {
		h.bruteForceProtection.RecordSuccessfulAttempt(c)
	}

	auth.SetSessionCookie(c, token)

	message := "Admin login successful"
	if outcome == identity.OutcomeRegister {
		message = "Admin registration successful"
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": message,
	})
}

package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/coursebox/content-api/services/identity"
	"github.com/coursebox/content-api/utils/response"
)

// RegisterRequest is the body of the explicit registration endpoint
type RegisterRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
	Name     string `json:"name" form:"name"`
	ImageURL string `json:"imageUrl" form:"imageUrl"`
}

// Register handles POST /api/register. Unlike the unified endpoint this
// never logs in: an existing email is a hard failure.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	principal, err := h.resolver.Register(c.Context(), h.userRealm, identity.Credentials{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		if errors.Is(err, identity.ErrEmailExists) {
			return response.BadRequest(c, "Email already exists")
		}
		var missing *identity.MissingFieldError
		if errors.As(err, &missing) {
			return response.BadRequest(c, missing.Error())
		}
		return response.InternalServerError(c, "Registration failed")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Registration successful",
		"userId":  principal.ID,
	})
}

package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/coursebox/content-api/model"
	"github.com/coursebox/content-api/services/identity"
	"github.com/coursebox/content-api/utils/auth"
	"github.com/coursebox/content-api/utils/response"
)

// UnifiedRequest is the body of the unified login-or-register endpoint.
// It accepts both JSON and form encoding; isGoogle is kept for callers
// predating the method field.
type UnifiedRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
	Name     string `json:"name" form:"name"`
	ImageURL string `json:"imageUrl" form:"imageUrl"`
	Method   string `json:"method" form:"method"`
	IsGoogle bool   `json:"isGoogle" form:"isGoogle"`
}

// UserView is the principal shape returned on the auth surface
type UserView struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Method   string `json:"method"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// Unified handles POST /api/auth-unified. One endpoint resolves both
// logins and first-time registrations; the outcome decides the message.
func (h *AuthHandler) Unified(c *fiber.Ctx) error {
	var req UnifiedRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	method := req.Method
	if method == "" && req.IsGoogle {
		method = model.MethodFederated
	}

	principal, outcome, token, err := h.resolver.Authenticate(c.Context(), h.userRealm, identity.Credentials{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		ImageURL: req.ImageURL,
		Method:   method,
	})
	if err != nil {
		return h.reportAuthFailure(c, err)
	}

	if h.bruteForceProtection != nil {
		h.bruteForceProtection.RecordSuccessfulAttempt(c)
	}

	auth.SetSessionCookie(c, token)

	message := "Login successful"
	if outcome == identity.OutcomeRegister {
		message = "Registration successful"
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": message,
		"user": UserView{
			Email:    principal.Email,
			Name:     principal.Name,
			Method:   principal.Method,
			ImageURL: principal.ImageURL,
		},
	})
}

// reportAuthFailure maps resolver errors onto the auth surface. Failed
// credentials also feed the brute force counter.
func (h *AuthHandler) reportAuthFailure(c *fiber.Ctx, err error) error {
	var missing *identity.MissingFieldError
	var mismatch *identity.MethodMismatchError

	switch {
	case errors.As(err, &missing):
		return response.BadRequest(c, missing.Error())
	case errors.As(err, &mismatch):
		return response.BadRequest(c, mismatch.Error())
	case errors.Is(err, identity.ErrInvalidCredentials):
		if h.bruteForceProtection != nil {
			h.bruteForceProtection.RecordFailedAttempt(c)
		}
		return response.BadRequest(c, "Invalid password")
	case errors.Is(err, identity.ErrFederatedNotAllowed):
		return response.BadRequest(c, "Google sign-in is not available for this account")
	default:
		return response.InternalServerError(c, "Authentication failed")
	}
}

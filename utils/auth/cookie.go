package auth

import (
	"os"

	"github.com/gofiber/fiber/v2"
)

// SessionCookieName is the cookie carrying the session credential
const SessionCookieName = "auth-token"

// SetSessionCookie attaches the session credential to the response
func SetSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		HTTPOnly: true,
		Secure:   os.Getenv("GO_ENV") == "production",
		SameSite: fiber.CookieSameSiteStrictMode,
		Path:     "/",
		MaxAge:   int(SessionDuration.Seconds()),
	})
}

// ClearSessionCookie expires the session cookie immediately
func ClearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		HTTPOnly: true,
		Secure:   os.Getenv("GO_ENV") == "production",
		SameSite: fiber.CookieSameSiteStrictMode,
		Path:     "/",
		MaxAge:   -1,
	})
}

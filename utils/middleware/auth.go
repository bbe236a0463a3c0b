package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/coursebox/content-api/model"
	"github.com/coursebox/content-api/utils/auth"
	"github.com/coursebox/content-api/utils/response"
)

// AuthMiddleware resolves the session cookie into request identity
type AuthMiddleware struct {
	tokens *auth.TokenManager
	db     *gorm.DB
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(tokens *auth.TokenManager, db *gorm.DB) *AuthMiddleware {
	return &AuthMiddleware{
		tokens: tokens,
		db:     db,
	}
}

// Session reads the auth-token cookie on every request. A verified token
// populates the request identity and the x-user-id / x-user-role headers
// for downstream consumers; an invalid or expired token is treated as
// anonymous, not as an error.
func (m *AuthMiddleware) Session() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(auth.SessionCookieName)
		if token == "" {
			return c.Next()
		}

		claims, err := m.tokens.Validate(token)
		if err != nil {
			return c.Next()
		}

		principalID, err := uuid.Parse(claims.PrincipalID)
		if err != nil {
			return c.Next()
		}

		c.Locals("user_id", principalID)
		c.Locals("user_email", claims.Email)
		c.Locals("user_name", claims.Name)
		c.Locals("user_method", claims.Method)
		c.Locals("user_role", claims.Role)

		c.Request().Header.Set("x-user-id", claims.PrincipalID)
		c.Request().Header.Set("x-user-role", claims.Role)

		return c.Next()
	}
}

// Required rejects requests without a verified session
func (m *AuthMiddleware) Required() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := GetUserID(c); !ok {
			return response.Unauthorized(c, "Authentication required")
		}
		return c.Next()
	}
}

// RequireAdmin rejects requests whose session does not belong to an
// administrator. The admin record is re-checked against the store so a
// deleted admin cannot keep mutating content on a stale token.
func (m *AuthMiddleware) RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := GetUserID(c)
		if !ok {
			return response.Unauthorized(c, "Authentication required")
		}

		role, _ := GetUserRole(c)
		if role != "admin" {
			return response.Forbidden(c, "Admin access required")
		}

		var admin model.Admin
		if err := m.db.First(&admin, "id = ?", userID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return response.Forbidden(c, "Admin access required")
			}
			return response.InternalServerError(c, "Failed to verify admin")
		}

		c.Locals("admin", &admin)

		return c.Next()
	}
}

// PageGuard redirects unauthenticated browser navigations on protected
// paths to the login page. API routes are left alone.
func (m *AuthMiddleware) PageGuard(protectedPrefixes ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := GetUserID(c); ok {
			return c.Next()
		}

		path := c.Path()
		for _, prefix := range protectedPrefixes {
			if strings.HasPrefix(path, prefix) {
				return c.Redirect("/Login", fiber.StatusFound)
			}
		}

		return c.Next()
	}
}

// GetUserID extracts the principal id from context
func GetUserID(c *fiber.Ctx) (uuid.UUID, bool) {
	userID := c.Locals("user_id")
	if userID == nil {
		return uuid.Nil, false
	}
	id, ok := userID.(uuid.UUID)
	return id, ok
}

// GetUserEmail extracts the principal email from context
func GetUserEmail(c *fiber.Ctx) (string, bool) {
	email := c.Locals("user_email")
	if email == nil {
		return "", false
	}
	e, ok := email.(string)
	return e, ok
}

// GetUserName extracts the principal display name from context
func GetUserName(c *fiber.Ctx) (string, bool) {
	name := c.Locals("user_name")
	if name == nil {
		return "", false
	}
	n, ok := name.(string)
	return n, ok
}

// GetUserMethod extracts the authentication method from context
func GetUserMethod(c *fiber.Ctx) (string, bool) {
	method := c.Locals("user_method")
	if method == nil {
		return "", false
	}
	m, ok := method.(string)
	return m, ok
}

// GetUserRole extracts the principal role from context
func GetUserRole(c *fiber.Ctx) (string, bool) {
	role := c.Locals("user_role")
	if role == nil {
		return "", false
	}
	r, ok := role.(string)
	return r, ok
}

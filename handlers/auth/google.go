package auth

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/coursebox/content-api/model"
	"github.com/coursebox/content-api/services/identity"
	"github.com/coursebox/content-api/utils/auth"
	"github.com/coursebox/content-api/utils/response"
)

const oauthStateCookie = "oauth-state"

// googleUserInfo is the subset of the Google userinfo payload we use
type googleUserInfo struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// GoogleSignIn handles GET /api/auth/signin/google. Redirects to the
// Google consent screen with a per-request state nonce.
func (h *AuthHandler) GoogleSignIn(c *fiber.Ctx) error {
	if h.googleOAuth == nil {
		return response.Error(c, fiber.StatusNotImplemented, "Google sign-in is not configured")
	}

	state := uuid.New().String()
	c.Cookie(&fiber.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
		MaxAge:   300,
	})

	return c.Redirect(h.googleOAuth.AuthCodeURL(state), fiber.StatusTemporaryRedirect)
}

// GoogleCallback handles GET /api/auth/callback/google. Exchanges the
// code, fetches the profile and feeds it into the federated branch of
// the login-or-register flow.
func (h *AuthHandler) GoogleCallback(c *fiber.Ctx) error {
	if h.googleOAuth == nil {
		return response.Error(c, fiber.StatusNotImplemented, "Google sign-in is not configured")
	}

	state := c.Query("state")
	if state == "" || state != c.Cookies(oauthStateCookie) {
		return response.Unauthorized(c, "Invalid OAuth state")
	}
	c.Cookie(&fiber.Cookie{Name: oauthStateCookie, Value: "", Path: "/", MaxAge: -1})

	code := c.Query("code")
	if code == "" {
		return response.BadRequest(c, "Missing authorization code")
	}

	oauthToken, err := h.googleOAuth.Exchange(c.Context(), code)
	if err != nil {
		return response.BadRequest(c, "Token exchange failed")
	}

	client := h.googleOAuth.Client(c.Context(), oauthToken)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch Google profile")
	}
	defer resp.Body.Close()

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return response.InternalServerError(c, "Failed to decode Google profile")
	}

	_, _, token, err := h.resolver.Authenticate(c.Context(), h.userRealm, identity.Credentials{
		Email:    info.Email,
		Name:     info.Name,
		ImageURL: info.Picture,
		Method:   model.MethodFederated,
	})
	if err != nil {
		return h.reportAuthFailure(c, err)
	}

	auth.SetSessionCookie(c, token)

	return c.Redirect("/dashboard", fiber.StatusSeeOther)
}

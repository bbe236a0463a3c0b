// Package auth exposes the authentication surface: the unified
// login-or-register endpoint for users and admins, explicit registration,
// session introspection and the Google OAuth dance.
package auth

import (
	"golang.org/x/oauth2"
	"gorm.io/gorm"

	"github.com/coursebox/content-api/services/identity"
	"github.com/coursebox/content-api/utils/middleware"
)

// AuthHandler handles authentication requests
type AuthHandler struct {
	db         *gorm.DB
	resolver   *identity.Resolver
	userRealm  identity.Realm
	adminRealm identity.Realm

	// Optional extras: nil disables the feature
	bruteForceProtection *middleware.BruteForceProtection
	googleOAuth          *oauth2.Config
}

// NewAuthHandler creates a new auth handler. bruteForce and googleOAuth
// may be nil when Redis or Google credentials are not configured.
func NewAuthHandler(db *gorm.DB, resolver *identity.Resolver, bruteForce *middleware.BruteForceProtection, googleOAuth *oauth2.Config) *AuthHandler {
	return &AuthHandler{
		db:       db,
		resolver: resolver,
		userRealm: identity.Realm{
			Name:           "user",
			Store:          identity.NewUserStore(db),
			AllowFederated: true,
		},
		adminRealm: identity.Realm{
			Name:           "admin",
			Store:          identity.NewAdminStore(db),
			AllowFederated: false,
		},
		bruteForceProtection: bruteForce,
		googleOAuth:          googleOAuth,
	}
}

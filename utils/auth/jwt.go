package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrExpiredToken  = errors.New("token has expired")
	ErrInvalidClaims = errors.New("invalid token claims")
)

// SessionDuration is the fixed lifetime of a session credential
const SessionDuration = 4 * time.Hour

// TokenConfig holds session token configuration
type TokenConfig struct {
	Secret string
	Issuer string
}

// SessionClaims asserts a principal's identity for the cookie lifetime
type SessionClaims struct {
	PrincipalID string `json:"id"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	Method      string `json:"method"` // password or federated
	Role        string `json:"role"`   // user or admin
	jwt.RegisteredClaims
}

// TokenManager signs and verifies session credentials. The signature
// against the single server-held secret is the store of truth; nothing
// is persisted server-side.
type TokenManager struct {
	config TokenConfig
}

// NewTokenManager creates a new token manager
func NewTokenManager(config TokenConfig) *TokenManager {
	return &TokenManager{config: config}
}

// Generate issues a signed session credential for a principal
func (t *TokenManager) Generate(principalID uuid.UUID, email, name, method, role string) (string, error) {
	now := time.Now()

	claims := SessionClaims{
		PrincipalID: principalID.String(),
		Email:       email,
		Name:        name,
		Method:      method,
		Role:        role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    t.config.Issuer,
			Subject:   email,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(t.config.Secret))
}

// Validate verifies a session credential and returns its claims.
// Tampering and expiry invalidate the session uniformly.
func (t *TokenManager) Validate(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(t.config.Secret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}

	return claims, nil
}

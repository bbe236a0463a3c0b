package auth

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testManager() *TokenManager {
	return NewTokenManager(TokenConfig{Secret: "test-secret", Issuer: "test"})
}

func TestGenerateAndValidate(t *testing.T) {
	manager := testManager()
	principalID := uuid.New()

	token, err := manager.Generate(principalID, "alice@example.com", "Alice", "password", "user")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.Validate(token)
	require.NoError(t, err)

	assert.Equal(t, principalID.String(), claims.PrincipalID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "Alice", claims.Name)
	assert.Equal(t, "password", claims.Method)
	assert.Equal(t, "user", claims.Role)
	assert.Equal(t, "test", claims.Issuer)
}

func TestValidateRejectsTamperedToken(t *testing.T) {
	manager := testManager()

	token, err := manager.Generate(uuid.New(), "alice@example.com", "Alice", "password", "user")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + "." + strings.Repeat("x", len(parts[2]))

	_, err = manager.Validate(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	token, err := testManager().Generate(uuid.New(), "alice@example.com", "Alice", "password", "user")
	require.NoError(t, err)

	other := NewTokenManager(TokenConfig{Secret: "different-secret", Issuer: "test"})
	_, err = other.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsGarbage(t *testing.T) {
	_, err := testManager().Validate("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

package identity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/coursebox/content-api/model"
	"github.com/coursebox/content-api/utils/auth"
)

func setupResolver(t *testing.T) (*Resolver, Realm, Realm) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Admin{}))

	tokens := auth.NewTokenManager(auth.TokenConfig{Secret: "test-secret", Issuer: "test"})
	resolver := NewResolver(tokens)

	userRealm := Realm{Name: "user", Store: NewUserStore(db), AllowFederated: true}
	adminRealm := Realm{Name: "admin", Store: NewAdminStore(db), AllowFederated: false}

	return resolver, userRealm, adminRealm
}

func TestAuthenticateRegistersUnknownEmail(t *testing.T) {
	resolver, userRealm, _ := setupResolver(t)

	principal, outcome, token, err := resolver.Authenticate(context.Background(), userRealm, Credentials{
		Email:    "alice@example.com",
		Password: "secret123",
		Name:     "Alice",
	})
	require.NoError(t, err)

	assert.Equal(t, OutcomeRegister, outcome)
	assert.NotEmpty(t, token)
	assert.Equal(t, "alice@example.com", principal.Email)
	assert.Equal(t, model.MethodPassword, principal.Method)
	assert.False(t, principal.IsVerified)
	assert.NotEqual(t, "secret123", principal.PasswordHash)
}

func TestAuthenticateLogsInExistingEmail(t *testing.T) {
	resolver, userRealm, _ := setupResolver(t)
	ctx := context.Background()

	first, outcome, _, err := resolver.Authenticate(ctx, userRealm, Credentials{
		Email:    "alice@example.com",
		Password: "secret123",
		Name:     "Alice",
	})
	require.NoError(t, err)
	require.Equal(t, OutcomeRegister, outcome)

	second, outcome, token, err := resolver.Authenticate(ctx, userRealm, Credentials{
		Email:    "alice@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	assert.Equal(t, OutcomeLogin, outcome)
	assert.NotEmpty(t, token)
	assert.Equal(t, first.ID, second.ID)
}

func TestAuthenticateRejectsWrongPassword(t *testing.T) {
	resolver, userRealm, _ := setupResolver(t)
	ctx := context.Background()

	_, _, _, err := resolver.Authenticate(ctx, userRealm, Credentials{
		Email:    "alice@example.com",
		Password: "secret123",
		Name:     "Alice",
	})
	require.NoError(t, err)

	_, _, _, err = resolver.Authenticate(ctx, userRealm, Credentials{
		Email:    "alice@example.com",
		Password: "not-the-password",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateMethodImmutability(t *testing.T) {
	resolver, userRealm, _ := setupResolver(t)
	ctx := context.Background()

	// Password account refuses federated logins
	_, _, _, err := resolver.Authenticate(ctx, userRealm, Credentials{
		Email:    "alice@example.com",
		Password: "secret123",
		Name:     "Alice",
	})
	require.NoError(t, err)

	_, _, _, err = resolver.Authenticate(ctx, userRealm, Credentials{
		Email:  "alice@example.com",
		Name:   "Alice",
		Method: model.MethodFederated,
	})
	var mismatch *MethodMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, model.MethodPassword, mismatch.StoredMethod)
	assert.Contains(t, err.Error(), "use password instead")

	// Federated account refuses password logins
	_, _, _, err = resolver.Authenticate(ctx, userRealm, Credentials{
		Email:  "bob@example.com",
		Name:   "Bob",
		Method: model.MethodFederated,
	})
	require.NoError(t, err)

	_, _, _, err = resolver.Authenticate(ctx, userRealm, Credentials{
		Email:    "bob@example.com",
		Password: "secret123",
	})
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, model.MethodFederated, mismatch.StoredMethod)
	assert.Contains(t, err.Error(), "Google sign-in")
}

func TestAuthenticateFederatedRegistrationIsVerified(t *testing.T) {
	resolver, userRealm, _ := setupResolver(t)

	principal, outcome, _, err := resolver.Authenticate(context.Background(), userRealm, Credentials{
		Email:  "bob@example.com",
		Name:   "Bob",
		Method: model.MethodFederated,
	})
	require.NoError(t, err)

	assert.Equal(t, OutcomeRegister, outcome)
	assert.True(t, principal.IsVerified)
	assert.Empty(t, principal.PasswordHash)
}

func TestAuthenticateMissingFields(t *testing.T) {
	resolver, userRealm, _ := setupResolver(t)
	ctx := context.Background()

	var missing *MissingFieldError

	_, _, _, err := resolver.Authenticate(ctx, userRealm, Credentials{Password: "secret123"})
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "email", missing.Field)

	// Unknown email without a name cannot register
	_, _, _, err = resolver.Authenticate(ctx, userRealm, Credentials{
		Email:    "nobody@example.com",
		Password: "secret123",
	})
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "name", missing.Field)

	// Unknown email without a password cannot register either
	_, _, _, err = resolver.Authenticate(ctx, userRealm, Credentials{
		Email: "nobody@example.com",
		Name:  "Nobody",
	})
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "password", missing.Field)
}

func TestAuthenticateAdminRealm(t *testing.T) {
	resolver, _, adminRealm := setupResolver(t)
	ctx := context.Background()

	_, _, _, err := resolver.Authenticate(ctx, adminRealm, Credentials{
		Email:  "root@example.com",
		Name:   "Root",
		Method: model.MethodFederated,
	})
	assert.ErrorIs(t, err, ErrFederatedNotAllowed)

	principal, outcome, token, err := resolver.Authenticate(ctx, adminRealm, Credentials{
		Email:    "root@example.com",
		Password: "hunter22",
		Name:     "Root",
	})
	require.NoError(t, err)
	assert.Equal(t, OutcomeRegister, outcome)

	claims, err := auth.NewTokenManager(auth.TokenConfig{Secret: "test-secret", Issuer: "test"}).Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, principal.ID.String(), claims.PrincipalID)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	resolver, userRealm, _ := setupResolver(t)
	ctx := context.Background()

	_, err := resolver.Register(ctx, userRealm, Credentials{
		Email:    "alice@example.com",
		Password: "secret123",
		Name:     "Alice",
	})
	require.NoError(t, err)

	_, err = resolver.Register(ctx, userRealm, Credentials{
		Email:    "alice@example.com",
		Password: "other-password",
		Name:     "Alice Again",
	})
	assert.ErrorIs(t, err, ErrEmailExists)
}

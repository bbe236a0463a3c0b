// Package identity implements the unified login-or-register flow shared by
// the user and admin realms. A single Authenticate call resolves an identity
// assertion: existing principals are logged in (after method and credential
// checks), unknown emails are implicitly registered. Exactly one store write
// happens per successful call.
package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/coursebox/content-api/model"
	"github.com/coursebox/content-api/utils/auth"
)

// Outcome tells the caller which branch a successful call took
type Outcome string

const (
	OutcomeLogin    Outcome = "login"
	OutcomeRegister Outcome = "register"
)

var (
	// ErrInvalidCredentials is returned on a password mismatch
	ErrInvalidCredentials = errors.New("invalid password")

	// ErrFederatedNotAllowed is returned when a federated assertion hits a
	// password-only realm
	ErrFederatedNotAllowed = errors.New("federated login is not available here")

	// ErrEmailExists is returned by explicit registration for a taken email
	ErrEmailExists = errors.New("email already exists")
)

// MissingFieldError reports a required input that was absent
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

// MethodMismatchError reports a login attempt with the wrong method.
// The message tells the caller which method to use instead.
type MethodMismatchError struct {
	StoredMethod string
}

func (e *MethodMismatchError) Error() string {
	if e.StoredMethod == model.MethodFederated {
		return "Email exists with Google login. Please use Google sign-in instead."
	}
	return "Email exists with password login. Please use password instead."
}

// Principal is the realm-independent view of an authenticated identity
type Principal struct {
	ID           uuid.UUID
	Email        string
	Name         string
	ImageURL     string
	Method       string
	PasswordHash string // never serialized; responses are built field by field
	IsVerified   bool
}

// Credentials is the identity assertion supplied by the caller
type Credentials struct {
	Email    string
	Password string
	Name     string
	ImageURL string
	Method   string // model.MethodPassword or model.MethodFederated
}

// Store abstracts the principal collection of a realm
type Store interface {
	// FindByEmail returns (nil, nil) when no principal has the email
	FindByEmail(ctx context.Context, email string) (*Principal, error)
	Create(ctx context.Context, p *Principal) error
	TouchLastLogin(ctx context.Context, id uuid.UUID) error
}

// Realm parameterizes the flow: which principal collection, which role
// lands in the session credential, and whether federated logins apply.
type Realm struct {
	Name           string // role claim: "user" or "admin"
	Store          Store
	AllowFederated bool
}

// Resolver runs the login-or-register algorithm and issues session credentials
type Resolver struct {
	tokens *auth.TokenManager
}

// NewResolver creates a new identity resolver
func NewResolver(tokens *auth.TokenManager) *Resolver {
	return &Resolver{tokens: tokens}
}

// Authenticate resolves an identity assertion against a realm. On success it
// returns the principal, whether this was a login or an implicit
// registration, and a signed session credential.
func (r *Resolver) Authenticate(ctx context.Context, realm Realm, creds Credentials) (*Principal, Outcome, string, error) {
	if creds.Email == "" {
		return nil, "", "", &MissingFieldError{Field: "email"}
	}
	if creds.Method == "" {
		creds.Method = model.MethodPassword
	}
	if creds.Method == model.MethodFederated && !realm.AllowFederated {
		return nil, "", "", ErrFederatedNotAllowed
	}

	existing, err := realm.Store.FindByEmail(ctx, creds.Email)
	if err != nil {
		return nil, "", "", fmt.Errorf("lookup principal: %w", err)
	}

	if existing != nil {
		return r.login(ctx, realm, existing, creds)
	}
	return r.register(ctx, realm, creds)
}

// Register creates a principal for an explicitly registered identity,
// failing when the email is already taken.
func (r *Resolver) Register(ctx context.Context, realm Realm, creds Credentials) (*Principal, error) {
	if creds.Email == "" {
		return nil, &MissingFieldError{Field: "email"}
	}
	if creds.Method == "" {
		creds.Method = model.MethodPassword
	}
	if creds.Method == model.MethodFederated && !realm.AllowFederated {
		return nil, ErrFederatedNotAllowed
	}

	existing, err := realm.Store.FindByEmail(ctx, creds.Email)
	if err != nil {
		return nil, fmt.Errorf("lookup principal: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	principal, _, _, err := r.register(ctx, realm, creds)
	return principal, err
}

func (r *Resolver) login(ctx context.Context, realm Realm, existing *Principal, creds Credentials) (*Principal, Outcome, string, error) {
	// Method immutability: the stored method decides, forever
	if existing.Method != creds.Method {
		return nil, "", "", &MethodMismatchError{StoredMethod: existing.Method}
	}

	if creds.Method == model.MethodPassword {
		if creds.Password == "" {
			return nil, "", "", &MissingFieldError{Field: "password"}
		}
		if err := auth.VerifyPassword(existing.PasswordHash, creds.Password); err != nil {
			return nil, "", "", ErrInvalidCredentials
		}
	}
	// Federated: a matching email with matching method is sufficient proof;
	// the upstream provider already verified the identity.

	if err := realm.Store.TouchLastLogin(ctx, existing.ID); err != nil {
		return nil, "", "", fmt.Errorf("touch last login: %w", err)
	}

	token, err := r.tokens.Generate(existing.ID, existing.Email, existing.Name, existing.Method, realm.Name)
	if err != nil {
		return nil, "", "", fmt.Errorf("sign session credential: %w", err)
	}

	return existing, OutcomeLogin, token, nil
}

func (r *Resolver) register(ctx context.Context, realm Realm, creds Credentials) (*Principal, Outcome, string, error) {
	if creds.Name == "" {
		return nil, "", "", &MissingFieldError{Field: "name"}
	}

	principal := &Principal{
		Email:    creds.Email,
		Name:     creds.Name,
		ImageURL: creds.ImageURL,
		Method:   creds.Method,
		// Federated identities arrive verified by the provider
		IsVerified: creds.Method == model.MethodFederated,
	}

	if creds.Method == model.MethodPassword {
		if creds.Password == "" {
			return nil, "", "", &MissingFieldError{Field: "password"}
		}
		hash, err := auth.HashPassword(creds.Password)
		if err != nil {
			return nil, "", "", fmt.Errorf("hash password: %w", err)
		}
		principal.PasswordHash = hash
	}

	if err := realm.Store.Create(ctx, principal); err != nil {
		return nil, "", "", fmt.Errorf("create principal: %w", err)
	}

	token, err := r.tokens.Generate(principal.ID, principal.Email, principal.Name, principal.Method, realm.Name)
	if err != nil {
		return nil, "", "", fmt.Errorf("sign session credential: %w", err)
	}

	return principal, OutcomeRegister, token, nil
}

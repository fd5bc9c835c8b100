package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/goliatone/go-router"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// Identity is a user's identity with all secret material removed. It is the
// only representation that may flow into a token payload or request context.
type Identity interface {
	ID() int64
	FirstName() string
	LastName() string
	Age() int
	Email() string
}

// Session holds attributes that are part of an auth session
type Session interface {
	GetUserID() int64
	GetEmail() string
	GetAudience() []string
	GetIssuer() string
	GetIssuedAt() *time.Time
	GetExpiration() *time.Time
}

// Authenticator holds methods to deal with authentication
type Authenticator interface {
	Login(ctx context.Context, email, password string) (string, error)
	SessionFromToken(token string) (Session, error)
	IdentityFromSession(ctx context.Context, session Session) (Identity, error)
}

// LoginPayload is the credential pair carried by a sign-in request.
type LoginPayload interface {
	GetEmail() string
	GetPassword() string
}

// Config holds auth options
type Config interface {
	GetSigningKey() string
	GetSigningMethod() string
	GetContextKey() string
	GetTokenExpiration() int
	GetTokenLookup() string
	GetAuthScheme() string
	GetIssuer() string
	GetAudience() []string
}

// IdentityProvider ensures we have a store to retrieve auth identities.
// VerifyIdentity is the single credential-verification routine: both the
// direct sign-in flow and the login strategy delegate to it.
type IdentityProvider interface {
	VerifyIdentity(ctx context.Context, email, password string) (Identity, error)
	FindIdentityByID(ctx context.Context, id int64) (Identity, error)
}

// LoginStrategy performs email/password verification in place of a direct
// verifier call so the Guard mechanism can drive authentication itself.
// Implementations must delegate to an IdentityProvider rather than
// reimplement lookup or hashing.
type LoginStrategy interface {
	Validate(ctx context.Context, email, password string) (Identity, error)
}

// LoginStrategyFunc adapts a function into a LoginStrategy.
type LoginStrategyFunc func(ctx context.Context, email, password string) (Identity, error)

func (f LoginStrategyFunc) Validate(ctx context.Context, email, password string) (Identity, error) {
	if f == nil {
		return nil, ErrMismatchedHashAndPassword
	}
	return f(ctx, email, password)
}

// PasswordAuthenticator authenticates passwords
type PasswordAuthenticator interface {
	HashPassword(password string) (string, error)
	ComparePasswordAndHash(password, hash string) error
}

// Middleware is the request-protection surface exposed to route wiring.
type Middleware interface {
	ProtectedRoute(cfg Config, errorHandler func(router.Context, error) error) router.MiddlewareFunc
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] AUTH "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] AUTH "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] AUTH "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] AUTH "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}

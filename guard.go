package auth

import (
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"

	"github.com/keyrail/go-auth/middleware/jwtware"
)

// RequestVerifier is the verification capability a Guard is parameterized
// over: given a request, produce a sanitized identity or fail.
type RequestVerifier interface {
	Verify(c router.Context) (Identity, error)
}

// Guard intercepts an inbound request, runs its verifier, and either attaches
// the resulting identity to the request context or rejects the request. It
// never lets a request through without a successfully attached identity.
type Guard struct {
	verifier     RequestVerifier
	contextKey   string
	logger       Logger
	errorHandler router.ErrorHandler
}

// GuardOption customizes a Guard.
type GuardOption func(*Guard)

// WithGuardContextKey overrides the locals key the identity is stored under.
func WithGuardContextKey(key string) GuardOption {
	return func(g *Guard) {
		if key != "" {
			g.contextKey = key
		}
	}
}

// WithGuardLogger overrides the guard logger.
func WithGuardLogger(logger Logger) GuardOption {
	return func(g *Guard) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithGuardErrorHandler overrides rejection rendering.
func WithGuardErrorHandler(handler router.ErrorHandler) GuardOption {
	return func(g *Guard) {
		if handler != nil {
			g.errorHandler = handler
		}
	}
}

// NewGuard builds a Guard around the given verification capability.
func NewGuard(verifier RequestVerifier, opts ...GuardOption) *Guard {
	g := &Guard{
		verifier:   verifier,
		contextKey: "user",
		logger:     defLogger{},
	}

	for _, opt := range opts {
		opt(g)
	}

	if g.errorHandler == nil {
		g.errorHandler = g.defaultErrorHandler
	}

	return g
}

// Middleware returns the guard as router middleware. Success attaches the
// identity under the context key and on the standard context; any failure
// stops the chain.
func (g *Guard) Middleware() router.MiddlewareFunc {
	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(c router.Context) error {
			identity, err := g.verifier.Verify(c)
			if err != nil {
				return g.errorHandler(c, err)
			}

			c.Locals(g.contextKey, identity)
			c.SetContext(WithIdentityContext(c.Context(), identity))

			return next(c)
		}
	}
}

// defaultErrorHandler maps the error taxonomy onto responses. Auth failures
// collapse to a single generic message so callers cannot distinguish an
// expired token from a forged one.
func (g *Guard) defaultErrorHandler(c router.Context, err error) error {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		richErr = errors.Wrap(err, errors.CategoryAuth, "authentication failed").
			WithCode(errors.CodeUnauthorized)
	}

	g.logger.Info(
		"Guard rejected request",
		"category", richErr.Category,
		"text_code", richErr.TextCode,
		"path", c.Path(),
	)

	switch richErr.Category {
	case errors.CategoryAuth:
		return c.JSON(errors.CodeUnauthorized, map[string]any{
			"error": "invalid or expired credentials",
		})
	case errors.CategoryNotFound:
		return c.JSON(errors.CodeNotFound, map[string]any{
			"error":     richErr.Message,
			"text_code": richErr.TextCode,
		})
	case errors.CategoryValidation, errors.CategoryBadInput:
		return c.JSON(errors.CodeBadRequest, map[string]any{
			"error":     richErr.Message,
			"text_code": richErr.TextCode,
		})
	default:
		return c.JSON(errors.CodeInternal, map[string]any{
			"error": "internal error",
		})
	}
}

// TokenRequestVerifier verifies requests by their bearer token: extract from
// the configured lookup, validate signature and claims, decode the identity.
type TokenRequestVerifier struct {
	validator   TokenValidator
	tokenLookup string
	authScheme  string
}

// NewTokenRequestVerifier builds the token-based verification capability.
func NewTokenRequestVerifier(validator TokenValidator, cfg Config) *TokenRequestVerifier {
	lookup := cfg.GetTokenLookup()
	if lookup == "" {
		lookup = "header:" + router.HeaderAuthorization
	}

	scheme := cfg.GetAuthScheme()
	if scheme == "" {
		scheme = "Bearer"
	}

	return &TokenRequestVerifier{
		validator:   validator,
		tokenLookup: lookup,
		authScheme:  scheme,
	}
}

// Verify extracts and validates the bearer token, returning the sanitized
// identity it carries.
func (v *TokenRequestVerifier) Verify(c router.Context) (Identity, error) {
	raw, err := jwtware.ExtractRawTokenFromContext(c, jwtware.GetExtractors(v.tokenLookup, v.authScheme))
	if err != nil || raw == "" {
		return nil, ErrTokenMissing
	}

	claims, err := v.validator.Validate(raw)
	if err != nil {
		return nil, err
	}

	return IdentityFromClaims(claims), nil
}

var _ RequestVerifier = (*TokenRequestVerifier)(nil)

// StrategyRequestVerifier verifies requests by running a LoginStrategy over
// the credentials in the request body, so the login endpoint is protected by
// the same guard mechanism as token-bearing endpoints.
type StrategyRequestVerifier struct {
	strategy LoginStrategy
}

// NewStrategyRequestVerifier builds the strategy-based verification capability.
func NewStrategyRequestVerifier(strategy LoginStrategy) *StrategyRequestVerifier {
	return &StrategyRequestVerifier{strategy: strategy}
}

// Verify binds and validates the sign-in payload, then delegates to the
// strategy. Credential failures propagate unchanged so the caller sees the
// same outcomes as the direct sign-in flow.
func (v *StrategyRequestVerifier) Verify(c router.Context) (Identity, error) {
	payload := new(SignInPayload)
	if err := c.Bind(payload); err != nil {
		return nil, errors.Wrap(err, errors.CategoryBadInput, "unable to parse sign-in payload").
			WithCode(errors.CodeBadRequest)
	}

	if err := payload.Validate(); err != nil {
		return nil, errors.Wrap(err, errors.CategoryValidation, "invalid sign-in payload").
			WithCode(errors.CodeBadRequest)
	}

	return v.strategy.Validate(c.Context(), payload.GetEmail(), payload.GetPassword())
}

var _ RequestVerifier = (*StrategyRequestVerifier)(nil)

package auth

import (
	"github.com/caarlos0/env/v11"
	"github.com/goliatone/go-errors"
)

// EnvConfig sources auth options from AUTH_* environment variables. The
// signing secret has no default: it must be provided by the environment.
type EnvConfig struct {
	SigningKey      string   `env:"SIGNING_KEY,required"`
	SigningMethod   string   `env:"SIGNING_METHOD" envDefault:"HS256"`
	ContextKey      string   `env:"CONTEXT_KEY" envDefault:"user"`
	TokenExpiration int      `env:"TOKEN_EXPIRATION" envDefault:"0"`
	TokenLookup     string   `env:"TOKEN_LOOKUP" envDefault:"header:Authorization"`
	AuthScheme      string   `env:"AUTH_SCHEME" envDefault:"Bearer"`
	Issuer          string   `env:"ISSUER"`
	Audience        []string `env:"AUDIENCE"`
}

// NewConfigFromEnv loads configuration from AUTH_-prefixed environment
// variables. TokenExpiration is in hours; 0 issues non-expiring tokens.
func NewConfigFromEnv() (*EnvConfig, error) {
	cfg := &EnvConfig{}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: "AUTH_"}); err != nil {
		return nil, errors.Wrap(err, errors.CategoryValidation, "failed to parse auth config from environment")
	}
	return cfg, nil
}

func (c *EnvConfig) GetSigningKey() string { return c.SigningKey }

func (c *EnvConfig) GetSigningMethod() string { return c.SigningMethod }

func (c *EnvConfig) GetContextKey() string { return c.ContextKey }

func (c *EnvConfig) GetTokenExpiration() int { return c.TokenExpiration }

func (c *EnvConfig) GetTokenLookup() string { return c.TokenLookup }

func (c *EnvConfig) GetAuthScheme() string { return c.AuthScheme }

func (c *EnvConfig) GetIssuer() string { return c.Issuer }

func (c *EnvConfig) GetAudience() []string { return c.Audience }

var _ Config = (*EnvConfig)(nil)

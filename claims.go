package auth

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims is the decoded view of a session token's payload.
type AuthClaims interface {
	Subject() string
	UserID() int64
	FirstName() string
	LastName() string
	Age() int
	Email() string
	Expires() time.Time
	IssuedAt() time.Time
}

// JWTClaims is the concrete implementation of AuthClaims. The payload is the
// sanitized identity plus issuance metadata, nothing else.
type JWTClaims struct {
	jwt.RegisteredClaims
	UID           int64  `json:"uid,omitempty"`
	UserFirstName string `json:"first_name,omitempty"`
	UserLastName  string `json:"last_name,omitempty"`
	UserAge       int    `json:"age,omitempty"`
	UserEmail     string `json:"email,omitempty"`
}

var _ AuthClaims = (*JWTClaims)(nil)

// claimsFromIdentity builds the identity portion of the claims; issuance
// metadata is added by the token service at sign time.
func claimsFromIdentity(identity Identity) *JWTClaims {
	return &JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: strconv.FormatInt(identity.ID(), 10),
		},
		UID:           identity.ID(),
		UserFirstName: identity.FirstName(),
		UserLastName:  identity.LastName(),
		UserAge:       identity.Age(),
		UserEmail:     identity.Email(),
	}
}

// Subject returns the subject claim
func (c *JWTClaims) Subject() string {
	return c.RegisteredClaims.Subject
}

// UserID returns the user ID carried by the token.
func (c *JWTClaims) UserID() int64 {
	return c.UID
}

// FirstName returns the identity's first name.
func (c *JWTClaims) FirstName() string {
	return c.UserFirstName
}

// LastName returns the identity's last name.
func (c *JWTClaims) LastName() string {
	return c.UserLastName
}

// Age returns the identity's age.
func (c *JWTClaims) Age() int {
	return c.UserAge
}

// Email returns the identity's email.
func (c *JWTClaims) Email() string {
	return c.UserEmail
}

// Expires returns the expiration time, zero when the token never expires.
func (c *JWTClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the issued at time
func (c *JWTClaims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}

package auth_test

import (
	"testing"

	auth "github.com/keyrail/go-auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenValidatorFunc(t *testing.T) {
	t.Run("Delegates to the wrapped function", func(t *testing.T) {
		want := &auth.JWTClaims{UID: 9}
		validator := auth.TokenValidatorFunc(func(tokenString string) (auth.AuthClaims, error) {
			assert.Equal(t, "raw-token", tokenString)
			return want, nil
		})

		claims, err := validator.Validate("raw-token")
		require.NoError(t, err)
		assert.Equal(t, int64(9), claims.UserID())
	})

	t.Run("Nil func fails closed", func(t *testing.T) {
		var validator auth.TokenValidatorFunc

		claims, err := validator.Validate("raw-token")
		assert.Nil(t, claims)
		assert.Error(t, err)
	})
}

func TestMultiTokenValidator(t *testing.T) {
	service := newTestTokenService(24)

	identity := TestIdentity{
		id:        3,
		firstName: "Ana",
		lastName:  "Silva",
		age:       41,
		email:     "ana@example.com",
	}

	token, err := service.Generate(identity)
	require.NoError(t, err)

	rejectAll := auth.TokenValidatorFunc(func(string) (auth.AuthClaims, error) {
		return nil, auth.ErrTokenMalformed
	})

	t.Run("Falls through malformed to the next validator", func(t *testing.T) {
		validator := auth.NewMultiTokenValidator(rejectAll, service)

		claims, err := validator.Validate(token)
		require.NoError(t, err)
		assert.Equal(t, int64(3), claims.UserID())
	})

	t.Run("Non-malformed errors stop the chain", func(t *testing.T) {
		expired := auth.TokenValidatorFunc(func(string) (auth.AuthClaims, error) {
			return nil, auth.ErrTokenExpired
		})

		validator := auth.NewMultiTokenValidator(expired, service)

		claims, err := validator.Validate(token)
		assert.Nil(t, claims)
		assert.ErrorIs(t, err, auth.ErrTokenExpired)
	})

	t.Run("All validators rejecting yields the last error", func(t *testing.T) {
		validator := auth.NewMultiTokenValidator(rejectAll, rejectAll)

		claims, err := validator.Validate(token)
		assert.Nil(t, claims)
		assert.ErrorIs(t, err, auth.ErrTokenMalformed)
	})

	t.Run("Nil validators are skipped", func(t *testing.T) {
		validator := auth.NewMultiTokenValidator(nil, service, nil)

		claims, err := validator.Validate(token)
		require.NoError(t, err)
		assert.Equal(t, int64(3), claims.UserID())
	})

	t.Run("Empty chain rejects", func(t *testing.T) {
		validator := auth.NewMultiTokenValidator()

		claims, err := validator.Validate(token)
		assert.Nil(t, claims)
		assert.ErrorIs(t, err, auth.ErrTokenMalformed)
	})
}

// sanity check: a validator built from a token service satisfies the interface
var _ auth.TokenValidator = auth.TokenValidatorFunc(nil)

func TestMultiValidatorPrimaryWins(t *testing.T) {
	primary := newTestTokenService(24)
	secondary := auth.NewTokenService(
		[]byte("secondary-secret"),
		24,
		"other-issuer",
		jwt.ClaimStrings{"other:audience"},
		nil,
	)

	identity := TestIdentity{id: 11, email: "both@example.com"}

	primaryToken, err := primary.Generate(identity)
	require.NoError(t, err)
	secondaryToken, err := secondary.Generate(identity)
	require.NoError(t, err)

	validator := auth.NewMultiTokenValidator(primary, secondary)

	for _, token := range []string{primaryToken, secondaryToken} {
		claims, err := validator.Validate(token)
		require.NoError(t, err)
		assert.Equal(t, int64(11), claims.UserID())
	}
}

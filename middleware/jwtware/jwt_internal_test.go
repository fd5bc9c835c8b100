package jwtware

import (
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyfuncOptionsRefreshErrorHandlerIsSafe(t *testing.T) {
	opts := keyfuncOptions(nil)
	require.NotNil(t, opts.RefreshErrorHandler)
	require.NotPanics(t, func() {
		opts.RefreshErrorHandler(errors.New("refresh failed"))
	})

	require.Equal(t, time.Hour, opts.RefreshInterval)
	require.Equal(t, 5*time.Minute, opts.RefreshRateLimit)
	require.Equal(t, 10*time.Second, opts.RefreshTimeout)
	require.True(t, opts.RefreshUnknownKID)
}

func TestGetExtractorsParsesLookupDSL(t *testing.T) {
	tests := []struct {
		name   string
		lookup string
		count  int
	}{
		{name: "single header", lookup: "header:Authorization", count: 1},
		{name: "header and cookie", lookup: "header:Authorization,cookie:jwt", count: 2},
		{name: "all sources", lookup: "header:Authorization, query:token, param:token, cookie:jwt", count: 4},
		{name: "unknown source ignored", lookup: "body:token", count: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			extractors := GetExtractors(tc.lookup, "Bearer")
			assert.Len(t, extractors, tc.count)
		})
	}
}

func TestJWTFromHeader(t *testing.T) {
	extract := jwtFromHeader(router.HeaderAuthorization, "Bearer")

	t.Run("valid bearer header", func(t *testing.T) {
		ctx := router.NewMockContext()
		ctx.On("GetString", router.HeaderAuthorization, "").Return("Bearer raw-token")

		token, err := extract(ctx)
		require.NoError(t, err)
		assert.Equal(t, "raw-token", token)
	})

	t.Run("scheme is case insensitive", func(t *testing.T) {
		ctx := router.NewMockContext()
		ctx.On("GetString", router.HeaderAuthorization, "").Return("bearer raw-token")

		token, err := extract(ctx)
		require.NoError(t, err)
		assert.Equal(t, "raw-token", token)
	})

	t.Run("missing header", func(t *testing.T) {
		ctx := router.NewMockContext()
		ctx.On("GetString", router.HeaderAuthorization, "").Return("")

		token, err := extract(ctx)
		assert.Empty(t, token)
		assert.ErrorIs(t, err, ErrJWTMissingOrMalformed)
	})

	t.Run("scheme with no token", func(t *testing.T) {
		ctx := router.NewMockContext()
		ctx.On("GetString", router.HeaderAuthorization, "").Return("Bearer ")

		token, err := extract(ctx)
		assert.Empty(t, token)
		assert.ErrorIs(t, err, ErrJWTMissingOrMalformed)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		ctx := router.NewMockContext()
		ctx.On("GetString", router.HeaderAuthorization, "").Return("Basic dXNlcjpwYXNz")

		token, err := extract(ctx)
		assert.Empty(t, token)
		assert.ErrorIs(t, err, ErrJWTMissingOrMalformed)
	})
}

func TestJWTFromCookieAndQuery(t *testing.T) {
	t.Run("cookie", func(t *testing.T) {
		extract := jwtFromCookie("jwt")

		ctx := router.NewMockContext()
		ctx.CookiesM["jwt"] = "cookie-token"

		token, err := extract(ctx)
		require.NoError(t, err)
		assert.Equal(t, "cookie-token", token)
	})

	t.Run("query", func(t *testing.T) {
		extract := jwtFromQuery("token")

		ctx := router.NewMockContext()
		ctx.QueriesM["token"] = "query-token"

		token, err := extract(ctx)
		require.NoError(t, err)
		assert.Equal(t, "query-token", token)
	})

	t.Run("empty cookie", func(t *testing.T) {
		extract := jwtFromCookie("jwt")

		ctx := router.NewMockContext()
		ctx.CookiesM["jwt"] = ""

		token, err := extract(ctx)
		assert.Empty(t, token)
		assert.ErrorIs(t, err, ErrJWTMissingOrMalformed)
	})
}

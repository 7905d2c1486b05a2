package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmailAllowList(t *testing.T) {
	policy := ParseEmailAllowList(" Admin@Example.com, editor@example.com ,,")

	assert.Equal(t, 2, policy.Len())
	assert.True(t, policy.CanAdminister(Principal{Email: "admin@example.com"}))
	assert.True(t, policy.CanAdminister(Principal{Email: "  EDITOR@example.com"}))
	assert.False(t, policy.CanAdminister(Principal{Email: "visitor@example.com"}))
	assert.False(t, policy.CanAdminister(Principal{}))
}

func TestEmailAllowList_EmptyDeniesEveryone(t *testing.T) {
	policy := ParseEmailAllowList("")

	assert.Equal(t, 0, policy.Len())
	assert.False(t, policy.CanAdminister(Principal{Email: "admin@example.com"}))
}

func TestPrincipalContext(t *testing.T) {
	_, ok := PrincipalFrom(context.Background())
	assert.False(t, ok)

	ctx := WithPrincipal(context.Background(), Principal{UserID: "u1", Email: "a@b.c"})
	p, ok := PrincipalFrom(ctx)
	require.True(t, ok)
	assert.Equal(t, "u1", p.UserID)
}

func signToken(t *testing.T, secret string, method jwt.SigningMethod, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestTokenVerifier(t *testing.T) {
	const secret = "super-secret-jwt-token"
	verifier := NewTokenVerifier(secret)

	t.Run("valid bearer token", func(t *testing.T) {
		token := signToken(t, secret, jwt.SigningMethodHS256, jwt.MapClaims{
			"sub":   "user-1",
			"email": "admin@example.com",
			"exp":   time.Now().Add(time.Hour).Unix(),
		})

		p, err := verifier.Verify("Bearer " + token)
		require.NoError(t, err)
		assert.Equal(t, "user-1", p.UserID)
		assert.Equal(t, "admin@example.com", p.Email)
	})

	t.Run("missing token", func(t *testing.T) {
		_, err := verifier.Verify("")
		assert.ErrorIs(t, err, ErrMissingToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token := signToken(t, "other", jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": "user-1",
			"exp": time.Now().Add(time.Hour).Unix(),
		})

		_, err := verifier.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		token := signToken(t, secret, jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": "user-1",
			"exp": time.Now().Add(-time.Hour).Unix(),
		})

		_, err := verifier.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("no expiry", func(t *testing.T) {
		token := signToken(t, secret, jwt.SigningMethodHS256, jwt.MapClaims{"sub": "user-1"})

		_, err := verifier.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("other algorithm", func(t *testing.T) {
		token := signToken(t, secret, jwt.SigningMethodHS512, jwt.MapClaims{
			"sub": "user-1",
			"exp": time.Now().Add(time.Hour).Unix(),
		})

		_, err := verifier.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

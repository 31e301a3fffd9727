package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/serviceauth/internal/errors"
)

func TestNewSessionTokenService(t *testing.T) {
	t.Run("Failure_EmptySecret", func(t *testing.T) {
		service, err := NewSessionTokenService("", 168*time.Hour)
		assert.Nil(t, service)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})
}

func TestSessionTokenService_Issue(t *testing.T) {
	service, err := NewSessionTokenService("test-signing-secret", 168*time.Hour)
	require.NoError(t, err)

	t.Run("Success_IssuesParsableToken", func(t *testing.T) {
		token, expiresAt, err := service.Issue(SessionClaims{
			UserID: "0199a1b2-0000-7000-8000-000000000001",
			Email:  "admin@example.com",
			Role:   "admin",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.WithinDuration(t, time.Now().UTC().Add(168*time.Hour), expiresAt, time.Minute)

		claims, err := service.Parse(token)
		require.NoError(t, err)
		assert.Equal(t, "0199a1b2-0000-7000-8000-000000000001", claims.UserID)
		assert.Equal(t, "admin@example.com", claims.Email)
		assert.Equal(t, "admin", claims.Role)
	})

	t.Run("Success_TokensDifferPerIssue", func(t *testing.T) {
		claims := SessionClaims{UserID: "user-1", Email: "u@example.com", Role: "company_user"}

		token1, _, err := service.Issue(claims)
		require.NoError(t, err)

		time.Sleep(1100 * time.Millisecond)

		token2, _, err := service.Issue(claims)
		require.NoError(t, err)

		assert.NotEqual(t, token1, token2)
	})
}

func TestSessionTokenService_Parse(t *testing.T) {
	service, err := NewSessionTokenService("test-signing-secret", 168*time.Hour)
	require.NoError(t, err)

	t.Run("Failure_GarbageToken", func(t *testing.T) {
		claims, err := service.Parse("not-a-jwt")
		assert.Nil(t, claims)
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("Failure_WrongSigningSecret", func(t *testing.T) {
		other, err := NewSessionTokenService("another-secret", 168*time.Hour)
		require.NoError(t, err)
		token, _, err := other.Issue(SessionClaims{UserID: "user-1", Email: "u@example.com", Role: "admin"})
		require.NoError(t, err)

		claims, err := service.Parse(token)
		assert.Nil(t, claims)
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("Failure_ExpiredToken", func(t *testing.T) {
		expired, err := NewSessionTokenService("test-signing-secret", -time.Hour)
		require.NoError(t, err)
		token, _, err := expired.Issue(SessionClaims{UserID: "user-1", Email: "u@example.com", Role: "admin"})
		require.NoError(t, err)

		claims, err := service.Parse(token)
		assert.Nil(t, claims)
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("Failure_TamperedToken", func(t *testing.T) {
		token, _, err := service.Issue(SessionClaims{UserID: "user-1", Email: "u@example.com", Role: "company_user"})
		require.NoError(t, err)

		tampered := token[:len(token)-2] + "xx"
		claims, err := service.Parse(tampered)
		assert.Nil(t, claims)
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})
}

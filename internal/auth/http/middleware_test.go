package http

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	serviceDomain "github.com/allisson/serviceauth/internal/service/domain"
)

func TestServiceAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("Error_MissingHeaders", func(t *testing.T) {
		mockUseCase := &MockVerifyUseCase{}

		c, w := createTestContext(http.MethodPost, "/v1/auth/signin", nil)

		ServiceAuthMiddleware(mockUseCase, testLogger())(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.True(t, c.IsAborted())
		mockUseCase.AssertNotCalled(t, "Authenticate", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Error_BadCredentials", func(t *testing.T) {
		mockUseCase := &MockVerifyUseCase{}
		mockUseCase.On("Authenticate", mock.Anything, "billing", "wrong-key").
			Return(nil, serviceDomain.ErrInvalidCredentials).
			Once()

		c, w := createTestContext(http.MethodPost, "/v1/auth/signin", nil)
		c.Request.Header.Set(HeaderServiceName, "billing")
		c.Request.Header.Set(HeaderAPIKey, "wrong-key")

		ServiceAuthMiddleware(mockUseCase, testLogger())(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.True(t, c.IsAborted())
	})

	t.Run("Success_StoresServiceInContext", func(t *testing.T) {
		mockUseCase := &MockVerifyUseCase{}
		service := authenticatedService("billing", "ledger")

		mockUseCase.On("Authenticate", mock.Anything, "billing", "good-key").
			Return(service, nil).
			Once()

		c, _ := createTestContext(http.MethodPost, "/v1/auth/signin", nil)
		c.Request.Header.Set(HeaderServiceName, "billing")
		c.Request.Header.Set(HeaderAPIKey, "good-key")

		ServiceAuthMiddleware(mockUseCase, testLogger())(c)

		assert.False(t, c.IsAborted())
		got, ok := GetService(c.Request.Context())
		require.True(t, ok)
		assert.Equal(t, service, got)
	})
}

func TestAdminOnlyMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("Error_NoServiceInContext", func(t *testing.T) {
		c, w := createTestContext(http.MethodPost, "/v1/services", nil)

		AdminOnlyMiddleware("admin-service", testLogger())(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.True(t, c.IsAborted())
	})

	t.Run("Error_NonAdminService", func(t *testing.T) {
		c, w := createTestContext(http.MethodPost, "/v1/services", nil)
		ctx := WithService(c.Request.Context(), authenticatedService("billing"))
		c.Request = c.Request.WithContext(ctx)

		AdminOnlyMiddleware("admin-service", testLogger())(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.True(t, c.IsAborted())
	})

	t.Run("Success_AdminService", func(t *testing.T) {
		c, _ := createTestContext(http.MethodPost, "/v1/services", nil)
		ctx := WithService(c.Request.Context(), authenticatedService("admin-service"))
		c.Request = c.Request.WithContext(ctx)

		AdminOnlyMiddleware("admin-service", testLogger())(c)

		assert.False(t, c.IsAborted())
	})
}

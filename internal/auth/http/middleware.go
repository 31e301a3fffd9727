package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	authUseCase "github.com/allisson/serviceauth/internal/auth/usecase"
	apperrors "github.com/allisson/serviceauth/internal/errors"
	"github.com/allisson/serviceauth/internal/httputil"
)

// Credential headers checked by the service authentication middleware.
const (
	HeaderServiceName   = "X-Service-Name"
	HeaderAPIKey        = "X-API-Key" //nolint:gosec // header name, not a credential
	HeaderTargetService = "X-Target-Service"
)

// ServiceAuthMiddleware authenticates the calling service from the
// X-Service-Name and X-API-Key headers.
//
// The middleware:
// 1. Reads both credential headers
// 2. Validates the pair via VerifyUseCase.Authenticate
// 3. Stores the authenticated service in the request context
// 4. Allows downstream handlers to access it via GetService()
//
// Error handling:
//   - Missing or wrong credentials → 401 Unauthorized (single shape, no
//     distinction between unknown name, inactive service, and bad key)
//   - Other errors → 500 Internal Server Error
func ServiceAuthMiddleware(
	verifyUseCase authUseCase.VerifyUseCase,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		serviceName := c.GetHeader(HeaderServiceName)
		apiKey := c.GetHeader(HeaderAPIKey)

		if serviceName == "" || apiKey == "" {
			logger.Debug("service authentication failed: missing credential headers")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		service, err := verifyUseCase.Authenticate(c.Request.Context(), serviceName, apiKey)
		if err != nil {
			logger.Debug("service authentication failed",
				slog.String("service_name", serviceName))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		ctx := WithService(c.Request.Context(), service)
		c.Request = c.Request.WithContext(ctx)

		logger.Debug("service authentication successful",
			slog.String("service_id", service.ID.String()),
			slog.String("service_name", service.Name))

		c.Next()
	}
}

// AdminOnlyMiddleware restricts a route to the configured administrative
// service. MUST be used after ServiceAuthMiddleware.
func AdminOnlyMiddleware(adminServiceName string, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		service, ok := GetService(c.Request.Context())
		if !ok || service == nil {
			logger.Error("admin middleware: no authenticated service in context")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		if service.Name != adminServiceName {
			logger.Debug("admin access denied",
				slog.String("service_name", service.Name))
			httputil.HandleErrorGin(c, apperrors.ErrForbidden, logger)
			c.Abort()
			return
		}

		c.Next()
	}
}

package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/serviceauth/internal/auth/domain"
	"github.com/allisson/serviceauth/internal/auth/http/dto"
	authUseCase "github.com/allisson/serviceauth/internal/auth/usecase"
	"github.com/allisson/serviceauth/internal/httputil"
)

// VerifyHandler handles HTTP requests for credential verification.
type VerifyHandler struct {
	verifyUseCase authUseCase.VerifyUseCase
	logger        *slog.Logger
}

// NewVerifyHandler creates a new verify handler with required dependencies.
func NewVerifyHandler(
	verifyUseCase authUseCase.VerifyUseCase,
	logger *slog.Logger,
) *VerifyHandler {
	return &VerifyHandler{
		verifyUseCase: verifyUseCase,
		logger:        logger,
	}
}

// VerifyServiceHandler verifies the calling service's credentials and,
// when X-Target-Service is set, its permission to reach the target.
// POST /v1/auth/verify - credentials travel in headers, no body.
// Returns 200 OK with the caller identity, 401 on bad credentials,
// 403 when the target is not reachable.
func (h *VerifyHandler) VerifyServiceHandler(c *gin.Context) {
	input := &authDomain.VerifyInput{
		ServiceName:   c.GetHeader(HeaderServiceName),
		APIKey:        c.GetHeader(HeaderAPIKey),
		TargetService: c.GetHeader(HeaderTargetService),
	}

	output, err := h.verifyUseCase.Verify(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapVerifyOutputToResponse(output))
}

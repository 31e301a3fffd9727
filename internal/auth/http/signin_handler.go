package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/serviceauth/internal/auth/domain"
	"github.com/allisson/serviceauth/internal/auth/http/dto"
	authUseCase "github.com/allisson/serviceauth/internal/auth/usecase"
	"github.com/allisson/serviceauth/internal/httputil"
	customValidation "github.com/allisson/serviceauth/internal/validation"
)

// SignInHandler handles HTTP requests for user sign-in.
type SignInHandler struct {
	signInUseCase authUseCase.SignInUseCase
	logger        *slog.Logger
}

// NewSignInHandler creates a new sign-in handler with required dependencies.
func NewSignInHandler(
	signInUseCase authUseCase.SignInUseCase,
	logger *slog.Logger,
) *SignInHandler {
	return &SignInHandler{
		signInUseCase: signInUseCase,
		logger:        logger,
	}
}

// SignInUserHandler authenticates a user and issues a session token.
// POST /v1/auth/signin - gated by ServiceAuthMiddleware; only authenticated
// services may proxy user sign-ins.
// Returns 200 OK with token and user, 400 on malformed input, 401 on bad
// credentials.
func (h *SignInHandler) SignInUserHandler(c *gin.Context) {
	var req dto.SignInRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleBadRequestGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	input := &authDomain.SignInInput{
		Email:    req.Email,
		Password: req.Password,
	}

	output, err := h.signInUseCase.SignIn(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSignInOutputToResponse(output))
}

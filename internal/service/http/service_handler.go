// Package http provides HTTP handlers for service registry administration.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/serviceauth/internal/httputil"
	serviceDomain "github.com/allisson/serviceauth/internal/service/domain"
	"github.com/allisson/serviceauth/internal/service/http/dto"
	serviceUseCase "github.com/allisson/serviceauth/internal/service/usecase"
	customValidation "github.com/allisson/serviceauth/internal/validation"
)

// ServiceHandler handles HTTP requests for service registry operations.
// All routes are gated by the admin-only middleware.
type ServiceHandler struct {
	serviceUseCase serviceUseCase.ServiceUseCase
	logger         *slog.Logger
}

// NewServiceHandler creates a new service handler with required dependencies.
func NewServiceHandler(
	serviceUseCase serviceUseCase.ServiceUseCase,
	logger *slog.Logger,
) *ServiceHandler {
	return &ServiceHandler{
		serviceUseCase: serviceUseCase,
		logger:         logger,
	}
}

// CreateServiceHandler registers a new service and returns its one-time API key.
// POST /v1/services - admin only.
// Returns 201 Created. Re-registering an existing name rotates its key.
func (h *ServiceHandler) CreateServiceHandler(c *gin.Context) {
	var req dto.CreateServiceRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	input := &serviceDomain.CreateServiceInput{
		Name:            req.Name,
		AllowedServices: req.AllowedServices,
	}

	output, err := h.serviceUseCase.Create(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.CreateServiceResponse{
		Service: dto.MapServiceToResponse(output.Service),
		APIKey:  output.PlainAPIKey,
	}

	c.JSON(http.StatusCreated, response)
}

// ReplacePermissionsHandler atomically replaces a service's outbound edges.
// PUT /v1/services/:id/permissions - admin only.
// Returns 200 OK with the updated service, 404 if the service is unknown.
func (h *ServiceHandler) ReplacePermissionsHandler(c *gin.Context) {
	serviceID, err := parseServiceID(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	var req dto.ReplacePermissionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	service, err := h.serviceUseCase.ReplacePermissions(c.Request.Context(), serviceID, req.AllowedServices)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapServiceToResponse(service))
}

// RotateKeyHandler issues a new API key for a service, invalidating the old one.
// POST /v1/services/:id/rotate-key - admin only.
// Returns 200 OK with the one-time key, 404 if the service is unknown.
func (h *ServiceHandler) RotateKeyHandler(c *gin.Context) {
	serviceID, err := parseServiceID(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	output, err := h.serviceUseCase.RotateKey(c.Request.Context(), serviceID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.RotateKeyResponse{
		Service: dto.MapServiceToResponse(output.Service),
		APIKey:  output.PlainAPIKey,
	}

	c.JSON(http.StatusOK, response)
}

// parseServiceID extracts and validates the :id path parameter.
func parseServiceID(c *gin.Context) (uuid.UUID, error) {
	serviceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid service id format: must be a valid UUID")
	}
	return serviceID, nil
}

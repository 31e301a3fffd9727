// Package dto provides data transfer objects for service registry HTTP handling.
package dto

import (
	"time"

	serviceDomain "github.com/allisson/serviceauth/internal/service/domain"
)

// ServiceResponse represents a registered service in API responses
// (excludes the API key hash).
type ServiceResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	IsActive        bool      `json:"is_active"`
	AllowedServices []string  `json:"allowed_services"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// MapServiceToResponse converts a domain service to an API response.
func MapServiceToResponse(service *serviceDomain.Service) ServiceResponse {
	allowed := service.AllowedServices
	if allowed == nil {
		allowed = []string{}
	}
	return ServiceResponse{
		ID:              service.ID.String(),
		Name:            service.Name,
		IsActive:        service.IsActive,
		AllowedServices: allowed,
		CreatedAt:       service.CreatedAt,
		UpdatedAt:       service.UpdatedAt,
	}
}

// CreateServiceResponse contains the result of registering a service.
// SECURITY: the API key is only returned once and must be saved securely.
type CreateServiceResponse struct {
	Service ServiceResponse `json:"service"`
	APIKey  string          `json:"api_key"` //nolint:gosec // returned once on creation
}

// RotateKeyResponse contains the result of rotating a service API key.
// SECURITY: the API key is only returned once and must be saved securely.
type RotateKeyResponse struct {
	Service ServiceResponse `json:"service"`
	APIKey  string          `json:"api_key"` //nolint:gosec // returned once on rotation
}

// Package dto provides data transfer objects for service registry HTTP handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/serviceauth/internal/validation"
)

// CreateServiceRequest contains the parameters for registering a service.
type CreateServiceRequest struct {
	Name            string   `json:"name"`
	AllowedServices []string `json:"allowed_services"`
}

// Validate checks if the create service request is valid.
func (r *CreateServiceRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			customValidation.NotBlank,
			customValidation.ServiceName,
			validation.Length(1, 255),
		),
		validation.Field(&r.AllowedServices,
			validation.Each(customValidation.ServiceName),
		),
	)
}

// ReplacePermissionsRequest contains the full replacement edge set for a service.
type ReplacePermissionsRequest struct {
	AllowedServices []string `json:"allowed_services"`
}

// Validate checks if the replace permissions request is valid.
func (r *ReplacePermissionsRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.AllowedServices,
			validation.NotNil,
			validation.Each(customValidation.ServiceName),
		),
	)
}

// Package domain defines the service directory domain model.
//
// A Service is a registered backend caller identity holding a hashed API key
// and a set of outbound permission edges. An edge from A to B means "A may
// call B"; edges have no lifecycle beyond existing or not existing.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/allisson/serviceauth/internal/errors"
)

// Service represents a registered caller identity.
type Service struct {
	ID         uuid.UUID // Unique identifier (UUIDv7)
	Name       string    // Unique human-readable key, immutable after creation
	APIKeyHash string    //nolint:gosec // hashed API key (not plaintext)
	IsActive   bool      // Inactive services fail all verification
	// AllowedServices is the service's outbound edge set: the names of
	// services this service may call. Loaded together with the service so
	// callers can report reachable targets without a second round trip.
	AllowedServices []string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CanReach reports whether targetName appears in the loaded edge set.
// A service never needs an edge to itself; same-identity access is decided
// by the caller before consulting edges.
func (s *Service) CanReach(targetName string) bool {
	for _, name := range s.AllowedServices {
		if name == targetName {
			return true
		}
	}
	return false
}

// CreateServiceInput contains the parameters for registering a new service.
// The API key is generated server-side and cannot be chosen by the caller.
type CreateServiceInput struct {
	Name string // Unique service name (e.g. "invoice-service")
	// AllowedServices lists target service names to seed outbound edges to.
	// Names that do not resolve to an existing service are silently skipped.
	AllowedServices []string
}

// CreateServiceOutput contains the result of registering a service.
// SECURITY: PlainAPIKey is returned exactly once, at creation time. Only its
// hash is stored; the plaintext is never retrievable again.
type CreateServiceOutput struct {
	Service     *Service
	PlainAPIKey string
}

// RotateKeyOutput contains the result of rotating a service's API key.
// The previous key is invalid the instant the rotation commits; there is no
// overlap window. PlainAPIKey is returned exactly once.
type RotateKeyOutput struct {
	Service     *Service
	PlainAPIKey string
}

// Domain-specific errors for service directory operations.
var (
	// ErrServiceNotFound indicates the service id does not exist. Used only
	// on administrative mutation paths, never during authentication.
	ErrServiceNotFound = errors.Wrap(errors.ErrNotFound, "service not found")

	// ErrInvalidCredentials is the single sentinel for every authentication
	// failure: unknown name, inactive service, or API key mismatch. Callers
	// must not be able to tell these apart.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid authentication credentials")

	// ErrAccessDenied indicates an authenticated service without a
	// permission edge to the requested target.
	ErrAccessDenied = errors.Wrap(errors.ErrForbidden, "service does not have permission to access target service")
)

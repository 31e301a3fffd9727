// Package usecase defines business logic interfaces for service registry operations.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	serviceDomain "github.com/allisson/serviceauth/internal/service/domain"
)

// ServiceRepository defines persistence operations for registered services.
// Implementations must support transaction-aware operations via context propagation.
type ServiceRepository interface {
	// Create stores a new service in the repository.
	Create(ctx context.Context, service *serviceDomain.Service) error

	// GetByID retrieves a service by ID, including its allowed service names.
	// Returns ErrServiceNotFound if not found.
	GetByID(ctx context.Context, serviceID uuid.UUID) (*serviceDomain.Service, error)

	// GetByName retrieves a service by name, including its allowed service names.
	// Returns ErrServiceNotFound if not found.
	GetByName(ctx context.Context, name string) (*serviceDomain.Service, error)

	// GetActiveByName retrieves an active service by name. Inactive services
	// are reported as ErrServiceNotFound.
	GetActiveByName(ctx context.Context, name string) (*serviceDomain.Service, error)

	// UpdateAPIKeyHash replaces a service's API key hash and bumps updated_at.
	// Returns ErrServiceNotFound if the service does not exist.
	UpdateAPIKeyHash(ctx context.Context, serviceID uuid.UUID, apiKeyHash string, updatedAt time.Time) error

	// ReplaceAllowedServices deletes all outbound permission edges for the
	// service and inserts edges to every existing service in targetNames.
	// Unknown target names are silently skipped.
	ReplaceAllowedServices(ctx context.Context, serviceID uuid.UUID, targetNames []string) error

	// HasAccess reports whether an outbound edge exists from the source
	// service to the named target.
	HasAccess(ctx context.Context, sourceID uuid.UUID, targetName string) (bool, error)
}

// ServiceUseCase defines business logic operations for the service registry:
// registration with one-time API keys, permission management, key rotation,
// and credential checks.
type ServiceUseCase interface {
	// Authenticate verifies a service name and plain API key pair.
	// Unknown names, inactive services, and key mismatches all return
	// ErrInvalidCredentials so callers cannot probe the registry.
	Authenticate(ctx context.Context, name string, plainAPIKey string) (*serviceDomain.Service, error)

	// Create registers a new service with a generated API key and seeds its
	// permission edges. Registering an existing name rotates that service's
	// key and leaves its edges untouched.
	//
	// The returned PlainAPIKey is only available once and must be securely
	// transmitted to the service owner. Only the hash is stored.
	Create(ctx context.Context, input *serviceDomain.CreateServiceInput) (*serviceDomain.CreateServiceOutput, error)

	// Bootstrap upserts a service row with a caller-provided plain API key,
	// hashing it before storage. No permission edges are written.
	Bootstrap(ctx context.Context, name string, plainAPIKey string) (*serviceDomain.Service, error)

	// ReplacePermissions atomically replaces a service's outbound permission
	// edges with edges to the named targets. Returns the updated service.
	// Returns ErrServiceNotFound if the service does not exist.
	ReplacePermissions(ctx context.Context, serviceID uuid.UUID, targetNames []string) (*serviceDomain.Service, error)

	// RotateKey issues a new API key for the service, invalidating the old
	// one. The returned PlainAPIKey is only available once.
	// Returns ErrServiceNotFound if the service does not exist.
	RotateKey(ctx context.Context, serviceID uuid.UUID) (*serviceDomain.RotateKeyOutput, error)

	// CanAccess reports whether the source service may call the named target.
	// The configured administrative service may call anything; other services
	// need a permission edge. Self-access is the caller's concern.
	CanAccess(ctx context.Context, sourceID uuid.UUID, sourceName string, targetName string) (bool, error)
}

// Package usecase implements business logic orchestration for the service registry.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authService "github.com/allisson/serviceauth/internal/auth/service"
	"github.com/allisson/serviceauth/internal/database"
	apperrors "github.com/allisson/serviceauth/internal/errors"
	serviceDomain "github.com/allisson/serviceauth/internal/service/domain"
)

// serviceUseCase implements ServiceUseCase for managing registered services.
type serviceUseCase struct {
	txManager        database.TxManager
	serviceRepo      ServiceRepository
	secretService    authService.SecretService
	adminServiceName string
}

// Authenticate verifies a service name and plain API key pair.
// Unknown names, inactive services, and key mismatches are indistinguishable
// to the caller: all of them return ErrInvalidCredentials.
func (s *serviceUseCase) Authenticate(
	ctx context.Context,
	name string,
	plainAPIKey string,
) (*serviceDomain.Service, error) {
	service, err := s.serviceRepo.GetActiveByName(ctx, name)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			// Burn hashing time so unknown names cost the same as mismatches.
			s.secretService.DummyCompare(plainAPIKey)
			return nil, serviceDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.secretService.CompareSecret(plainAPIKey, service.APIKeyHash) {
		return nil, serviceDomain.ErrInvalidCredentials
	}

	return service, nil
}

// Create registers a new service with a generated API key and seeds its
// permission edges in a single transaction. Registering a name that already
// exists rotates that service's key instead; existing edges stay untouched.
func (s *serviceUseCase) Create(
	ctx context.Context,
	input *serviceDomain.CreateServiceInput,
) (*serviceDomain.CreateServiceOutput, error) {
	plainKey, hashedKey, err := s.secretService.GenerateAPIKey()
	if err != nil {
		return nil, err
	}

	var service *serviceDomain.Service

	err = s.txManager.WithTx(ctx, func(txCtx context.Context) error {
		existing, err := s.serviceRepo.GetByName(txCtx, input.Name)
		switch {
		case err == nil:
			// Idempotent re-registration: new key, edges untouched.
			now := time.Now().UTC()
			if err := s.serviceRepo.UpdateAPIKeyHash(txCtx, existing.ID, hashedKey, now); err != nil {
				return err
			}
			existing.APIKeyHash = hashedKey
			existing.UpdatedAt = now
			service = existing
			return nil
		case apperrors.Is(err, apperrors.ErrNotFound):
			now := time.Now().UTC()
			service = &serviceDomain.Service{
				ID:         uuid.Must(uuid.NewV7()),
				Name:       input.Name,
				APIKeyHash: hashedKey,
				IsActive:   true,
				CreatedAt:  now,
				UpdatedAt:  now,
			}
			if err := s.serviceRepo.Create(txCtx, service); err != nil {
				return err
			}
			if len(input.AllowedServices) > 0 {
				if err := s.serviceRepo.ReplaceAllowedServices(txCtx, service.ID, input.AllowedServices); err != nil {
					return err
				}
			}
			return nil
		default:
			return err
		}
	})
	if err != nil {
		return nil, err
	}

	// Reload so AllowedServices reflects which targets actually existed.
	service, err = s.serviceRepo.GetByID(ctx, service.ID)
	if err != nil {
		return nil, err
	}

	return &serviceDomain.CreateServiceOutput{
		Service:     service,
		PlainAPIKey: plainKey,
	}, nil
}

// Bootstrap upserts a service row with a caller-provided API key. Used by the
// init-admin command, where the administrative key comes from trusted
// configuration instead of being generated. No permission edges are written;
// the admin service bypasses the graph by name.
func (s *serviceUseCase) Bootstrap(
	ctx context.Context,
	name string,
	plainAPIKey string,
) (*serviceDomain.Service, error) {
	hashedKey, err := s.secretService.HashSecret(plainAPIKey)
	if err != nil {
		return nil, err
	}

	var service *serviceDomain.Service

	err = s.txManager.WithTx(ctx, func(txCtx context.Context) error {
		existing, err := s.serviceRepo.GetByName(txCtx, name)
		switch {
		case err == nil:
			now := time.Now().UTC()
			if err := s.serviceRepo.UpdateAPIKeyHash(txCtx, existing.ID, hashedKey, now); err != nil {
				return err
			}
			existing.APIKeyHash = hashedKey
			existing.UpdatedAt = now
			service = existing
			return nil
		case apperrors.Is(err, apperrors.ErrNotFound):
			now := time.Now().UTC()
			service = &serviceDomain.Service{
				ID:         uuid.Must(uuid.NewV7()),
				Name:       name,
				APIKeyHash: hashedKey,
				IsActive:   true,
				CreatedAt:  now,
				UpdatedAt:  now,
			}
			return s.serviceRepo.Create(txCtx, service)
		default:
			return err
		}
	})
	if err != nil {
		return nil, err
	}

	return service, nil
}

// ReplacePermissions atomically replaces a service's outbound permission edges.
func (s *serviceUseCase) ReplacePermissions(
	ctx context.Context,
	serviceID uuid.UUID,
	targetNames []string,
) (*serviceDomain.Service, error) {
	err := s.txManager.WithTx(ctx, func(txCtx context.Context) error {
		if _, err := s.serviceRepo.GetByID(txCtx, serviceID); err != nil {
			return err
		}
		return s.serviceRepo.ReplaceAllowedServices(txCtx, serviceID, targetNames)
	})
	if err != nil {
		return nil, err
	}

	return s.serviceRepo.GetByID(ctx, serviceID)
}

// RotateKey issues a new API key for the service, invalidating the old one
// the moment the update commits.
func (s *serviceUseCase) RotateKey(
	ctx context.Context,
	serviceID uuid.UUID,
) (*serviceDomain.RotateKeyOutput, error) {
	service, err := s.serviceRepo.GetByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	plainKey, hashedKey, err := s.secretService.GenerateAPIKey()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.serviceRepo.UpdateAPIKeyHash(ctx, service.ID, hashedKey, now); err != nil {
		return nil, err
	}

	service.APIKeyHash = hashedKey
	service.UpdatedAt = now

	return &serviceDomain.RotateKeyOutput{
		Service:     service,
		PlainAPIKey: plainKey,
	}, nil
}

// CanAccess reports whether the source service may call the named target.
// The configured administrative service bypasses the permission graph.
func (s *serviceUseCase) CanAccess(
	ctx context.Context,
	sourceID uuid.UUID,
	sourceName string,
	targetName string,
) (bool, error) {
	if sourceName == s.adminServiceName {
		return true, nil
	}
	return s.serviceRepo.HasAccess(ctx, sourceID, targetName)
}

// NewServiceUseCase creates a new ServiceUseCase with the provided dependencies.
func NewServiceUseCase(
	txManager database.TxManager,
	serviceRepo ServiceRepository,
	secretService authService.SecretService,
	adminServiceName string,
) ServiceUseCase {
	return &serviceUseCase{
		txManager:        txManager,
		serviceRepo:      serviceRepo,
		secretService:    secretService,
		adminServiceName: adminServiceName,
	}
}

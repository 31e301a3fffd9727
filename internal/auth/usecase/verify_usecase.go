// Package usecase implements business logic orchestration for authentication operations.
package usecase

import (
	"context"

	authDomain "github.com/allisson/serviceauth/internal/auth/domain"
	serviceDomain "github.com/allisson/serviceauth/internal/service/domain"
	serviceUsecase "github.com/allisson/serviceauth/internal/service/usecase"
)

// verifyUseCase implements VerifyUseCase on top of the service registry.
type verifyUseCase struct {
	serviceUseCase serviceUsecase.ServiceUseCase
}

// Verify authenticates the calling service and, when a target is named,
// checks the permission graph.
func (v *verifyUseCase) Verify(
	ctx context.Context,
	input *authDomain.VerifyInput,
) (*authDomain.VerifyOutput, error) {
	// Missing credentials fail exactly like wrong ones.
	if input.ServiceName == "" || input.APIKey == "" {
		return nil, serviceDomain.ErrInvalidCredentials
	}

	service, err := v.serviceUseCase.Authenticate(ctx, input.ServiceName, input.APIKey)
	if err != nil {
		return nil, err
	}

	output := &authDomain.VerifyOutput{
		ServiceID:       service.ID,
		ServiceName:     service.Name,
		AllowedServices: service.AllowedServices,
	}

	// No target named: identity check only.
	if input.TargetService == "" {
		return output, nil
	}

	// A service may always call itself, no graph lookup needed.
	if input.TargetService == service.Name {
		return output, nil
	}

	// The edge set was loaded with the service at authentication time, so a
	// hit there skips the graph query. A miss still goes to CanAccess for
	// the admin exception.
	if service.CanReach(input.TargetService) {
		return output, nil
	}

	allowed, err := v.serviceUseCase.CanAccess(ctx, service.ID, service.Name, input.TargetService)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, serviceDomain.ErrAccessDenied
	}

	return output, nil
}

// Authenticate verifies a service name and API key pair without a target check.
func (v *verifyUseCase) Authenticate(
	ctx context.Context,
	serviceName string,
	apiKey string,
) (*serviceDomain.Service, error) {
	if serviceName == "" || apiKey == "" {
		return nil, serviceDomain.ErrInvalidCredentials
	}
	return v.serviceUseCase.Authenticate(ctx, serviceName, apiKey)
}

// NewVerifyUseCase creates a new VerifyUseCase with the provided dependencies.
func NewVerifyUseCase(serviceUseCase serviceUsecase.ServiceUseCase) VerifyUseCase {
	return &verifyUseCase{
		serviceUseCase: serviceUseCase,
	}
}

// Package usecase defines business logic interfaces for verification and sign-in.
package usecase

import (
	"context"

	authDomain "github.com/allisson/serviceauth/internal/auth/domain"
	serviceDomain "github.com/allisson/serviceauth/internal/service/domain"
	userDomain "github.com/allisson/serviceauth/internal/user/domain"
)

// VerifyUseCase checks service credentials and, optionally, permission to
// reach a target service.
type VerifyUseCase interface {
	// Verify authenticates the calling service and, when a target is named,
	// checks the permission graph. Returns ErrInvalidCredentials on any
	// authentication failure and ErrAccessDenied when the authenticated
	// caller lacks an edge to the target.
	Verify(ctx context.Context, input *authDomain.VerifyInput) (*authDomain.VerifyOutput, error)

	// Authenticate verifies a service name and API key pair without any
	// target check. Used by middleware that gates user-facing endpoints.
	Authenticate(ctx context.Context, serviceName string, apiKey string) (*serviceDomain.Service, error)
}

// SignInUseCase authenticates users and issues session tokens.
type SignInUseCase interface {
	// SignIn verifies the email and password pair and issues a signed
	// session token. Unknown emails, inactive accounts, and password
	// mismatches are indistinguishable to the caller.
	SignIn(ctx context.Context, input *authDomain.SignInInput) (*authDomain.SignInOutput, error)
}

// UserRepository is the slice of user persistence needed by sign-in.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*userDomain.User, error)
}

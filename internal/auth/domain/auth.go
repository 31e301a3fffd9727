// Package domain defines the authentication and authorization domain types.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/allisson/serviceauth/internal/errors"
	userDomain "github.com/allisson/serviceauth/internal/user/domain"
)

// VerifyInput carries the credentials and optional target of a verification
// request. TargetService is empty when the caller only wants identity checked.
type VerifyInput struct {
	ServiceName   string
	APIKey        string
	TargetService string
}

// VerifyOutput is the verified caller identity. AllowedServices lists the
// outbound permission edges of the calling service.
type VerifyOutput struct {
	ServiceID       uuid.UUID `json:"id"`
	ServiceName     string    `json:"name"`
	AllowedServices []string  `json:"allowed_services"`
}

// SignInInput carries a user's sign-in credentials.
type SignInInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignInOutput carries the issued session token and the public projection of
// the signed-in user.
type SignInOutput struct {
	Token     string                 `json:"token"`
	ExpiresAt time.Time              `json:"expires_at"`
	User      *userDomain.PublicUser `json:"user"`
}

// Domain-specific errors for authentication operations.
var (
	// ErrInvalidCredentials indicates a failed user sign-in. Unknown emails,
	// inactive accounts, and wrong passwords all surface this same error.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid authentication credentials")

	// ErrMissingCredentials indicates absent sign-in fields.
	ErrMissingCredentials = errors.Wrap(errors.ErrInvalidInput, "email and password are required")
)

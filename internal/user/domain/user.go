// Package domain defines the core user domain entities and types.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/allisson/serviceauth/internal/errors"
)

// Role identifies a user's authorization level.
type Role string

// Supported user roles.
const (
	RoleAdmin       Role = "admin"
	RoleCompanyUser Role = "company_user"
)

// IsValid reports whether the role is one of the supported values.
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleCompanyUser
}

// User represents a user account. PasswordHash holds the Argon2id hash, never
// the plain password.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Role         Role
	CompanyID    *uuid.UUID
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicUser is the projection of a user safe to return to callers. It never
// carries the password hash.
type PublicUser struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Role      Role      `json:"role"`
}

// Public returns the caller-safe projection of the user.
func (u *User) Public() *PublicUser {
	return &PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
	}
}

// Domain-specific errors for user operations.
var (
	// ErrUserNotFound indicates the requested user does not exist.
	// Only used on administrative paths; sign-in reports ErrInvalidCredentials.
	ErrUserNotFound = errors.Wrap(errors.ErrNotFound, "user not found")

	// ErrUserAlreadyExists indicates a user with the same email already exists.
	ErrUserAlreadyExists = errors.Wrap(errors.ErrConflict, "user already exists")

	// ErrInvalidRole indicates the role is not one of the supported values.
	ErrInvalidRole = errors.Wrap(errors.ErrInvalidInput, "invalid role")

	// ErrCompanyRequired indicates a company_user without a company.
	ErrCompanyRequired = errors.Wrap(errors.ErrInvalidInput, "company is required for company users")

	// ErrCompanyNotAllowed indicates an admin carrying a company.
	ErrCompanyNotAllowed = errors.Wrap(errors.ErrInvalidInput, "admin users cannot belong to a company")
)

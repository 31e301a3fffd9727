// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"time"

	authDomain "github.com/allisson/serviceauth/internal/auth/domain"
)

// VerifyResponse represents a verified caller identity in API responses.
type VerifyResponse struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	AllowedServices []string `json:"allowed_services"`
}

// MapVerifyOutputToResponse converts a verification result to an API response.
func MapVerifyOutputToResponse(output *authDomain.VerifyOutput) VerifyResponse {
	allowed := output.AllowedServices
	if allowed == nil {
		allowed = []string{}
	}
	return VerifyResponse{
		ID:              output.ServiceID.String(),
		Name:            output.ServiceName,
		AllowedServices: allowed,
	}
}

// SignInUserResponse represents the signed-in user in API responses.
// Never carries the password hash.
type SignInUserResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

// SignInResponse contains the session token and the signed-in user.
type SignInResponse struct {
	Token     string             `json:"token"`
	ExpiresAt time.Time          `json:"expires_at"`
	User      SignInUserResponse `json:"user"`
}

// MapSignInOutputToResponse converts a sign-in result to an API response.
func MapSignInOutputToResponse(output *authDomain.SignInOutput) SignInResponse {
	return SignInResponse{
		Token:     output.Token,
		ExpiresAt: output.ExpiresAt,
		User: SignInUserResponse{
			ID:        output.User.ID.String(),
			Email:     output.User.Email,
			FirstName: output.User.FirstName,
			LastName:  output.User.LastName,
			Role:      string(output.User.Role),
		},
	}
}

// Package service provides technical services for authentication operations.
//
// This package implements reusable services for API key generation, hashing,
// and session token issuance using industry-standard cryptographic practices.
package service

import "time"

// SecretService defines operations for API key generation and validation.
// Implementations must use cryptographically secure random generation and
// industry-standard hashing algorithms (e.g., bcrypt, argon2).
type SecretService interface {
	// GenerateAPIKey creates a new cryptographically secure random API key.
	// Returns both the plain text key (to be shared with the service owner) and
	// the hashed version (to be stored in the database).
	//
	// The plain key should be treated as sensitive data and only displayed
	// once during registration or rotation.
	GenerateAPIKey() (plainKey string, hashedKey string, error error)

	// HashSecret hashes a plain text secret using a secure hashing algorithm.
	// Used for both API keys and user passwords.
	HashSecret(plainSecret string) (hashedSecret string, error error)

	// CompareSecret compares a plain text secret against a hashed secret.
	// Returns true if the plain secret matches the hash, false otherwise.
	// This is constant-time to prevent timing attacks.
	CompareSecret(plainSecret string, hashedSecret string) bool

	// DummyCompare burns roughly the same CPU time as a real CompareSecret
	// call and always returns false. Callers use it on lookups that found
	// no record, so the response time does not reveal whether the
	// identifier exists.
	DummyCompare(plainSecret string) bool
}

// SessionClaims carries the identity embedded in a session token.
type SessionClaims struct {
	UserID string
	Email  string
	Role   string
}

// SessionTokenService defines operations for signed session token issuance
// and verification. Implementations must reject expired or tampered tokens.
type SessionTokenService interface {
	// Issue creates a signed session token for the given claims.
	// Returns the encoded token and its expiration time.
	Issue(claims SessionClaims) (token string, expiresAt time.Time, error error)

	// Parse validates a session token signature and expiry and returns
	// the embedded claims.
	Parse(token string) (*SessionClaims, error)
}

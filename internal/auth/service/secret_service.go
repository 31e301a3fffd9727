package service

import (
	"crypto/rand"
	"encoding/base64"

	"github.com/allisson/go-pwdhash"

	apperrors "github.com/allisson/serviceauth/internal/errors"
)

// secretService implements SecretService using Argon2id for secret hashing.
type secretService struct {
	hasher *pwdhash.PasswordHasher

	// dummyHash is a hash of a throwaway value, precomputed at startup.
	// DummyCompare verifies against it to equalize timing on failed lookups.
	dummyHash string
}

// GenerateAPIKey creates a new cryptographically secure 32-byte random API key.
// The key is base64-encoded for easy transmission and storage.
func (s *secretService) GenerateAPIKey() (plainKey string, hashedKey string, error error) {
	// Generate 32 random bytes (256 bits)
	randomBytes := make([]byte, 32)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", "", apperrors.Wrap(err, "failed to generate random api key")
	}

	// Encode to base64 for text representation
	plainKey = base64.URLEncoding.EncodeToString(randomBytes)

	// Hash the key
	hashedKey, err := s.HashSecret(plainKey)
	if err != nil {
		return "", "", err
	}

	return plainKey, hashedKey, nil
}

// HashSecret hashes a plain text secret using Argon2id.
func (s *secretService) HashSecret(plainSecret string) (hashedSecret string, error error) {
	hashedSecret, err := s.hasher.Hash([]byte(plainSecret))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to hash secret")
	}
	return hashedSecret, nil
}

// CompareSecret performs a constant-time comparison between a plain secret and its hash.
func (s *secretService) CompareSecret(plainSecret string, hashedSecret string) bool {
	ok, err := s.hasher.Verify([]byte(plainSecret), hashedSecret)
	if err != nil {
		return false
	}
	return ok
}

// DummyCompare verifies the input against a precomputed throwaway hash
// and always returns false.
func (s *secretService) DummyCompare(plainSecret string) bool {
	s.hasher.Verify([]byte(plainSecret), s.dummyHash) //nolint:errcheck
	return false
}

// NewSecretService creates a new SecretService instance using Argon2id hashing.
// Uses the Moderate policy for a balance between security and performance.
func NewSecretService() SecretService {
	hasher, err := pwdhash.New(
		pwdhash.WithPolicy(pwdhash.PolicyModerate),
	)
	if err != nil {
		// This should never happen with valid policy
		panic(err)
	}

	dummyHash, err := hasher.Hash([]byte("dummy-comparison-target"))
	if err != nil {
		panic(err)
	}

	return &secretService{
		hasher:    hasher,
		dummyHash: dummyHash,
	}
}

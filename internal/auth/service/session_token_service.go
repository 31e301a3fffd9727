package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/allisson/serviceauth/internal/errors"
)

const sessionTokenIssuer = "serviceauth"

// sessionClaims is the wire shape of a session token payload.
type sessionClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// sessionTokenService implements SessionTokenService with HS256-signed JWTs.
type sessionTokenService struct {
	secret     []byte
	expiration time.Duration
}

// Issue creates a signed session token for the given claims.
func (s *sessionTokenService) Issue(claims SessionClaims) (string, time.Time, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(s.expiration)

	tokenClaims := sessionClaims{
		Email: claims.Email,
		Role:  claims.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    sessionTokenIssuer,
			Subject:   claims.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, apperrors.Wrap(err, "failed to sign session token")
	}

	return signed, expiresAt, nil
}

// Parse validates a session token signature and expiry and returns the embedded claims.
func (s *sessionTokenService) Parse(token string) (*SessionClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &sessionClaims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, apperrors.Wrap(apperrors.ErrUnauthorized, "unexpected signing method")
		}
		return s.secret, nil
	}, jwt.WithIssuer(sessionTokenIssuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrUnauthorized, "invalid session token")
	}

	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok || !parsed.Valid {
		return nil, apperrors.Wrap(apperrors.ErrUnauthorized, "invalid session token")
	}

	return &SessionClaims{
		UserID: claims.Subject,
		Email:  claims.Email,
		Role:   claims.Role,
	}, nil
}

// NewSessionTokenService creates a SessionTokenService that signs tokens
// with the given secret and expiration window. An empty secret is rejected
// so tokens can never be signed with a guessable key.
func NewSessionTokenService(secret string, expiration time.Duration) (SessionTokenService, error) {
	if secret == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "SESSION_TOKEN_SECRET must be set")
	}

	return &sessionTokenService{
		secret:     []byte(secret),
		expiration: expiration,
	}, nil
}

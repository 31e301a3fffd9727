package usecase

import (
	"context"

	authDomain "github.com/allisson/serviceauth/internal/auth/domain"
	authService "github.com/allisson/serviceauth/internal/auth/service"
	apperrors "github.com/allisson/serviceauth/internal/errors"
)

// signInUseCase implements SignInUseCase.
type signInUseCase struct {
	userRepo            UserRepository
	secretService       authService.SecretService
	sessionTokenService authService.SessionTokenService
}

// SignIn verifies the email and password pair and issues a signed session
// token. Every authentication failure surfaces the same ErrInvalidCredentials
// after paying the hashing cost, so response timing and shape reveal nothing
// about which emails exist.
func (s *signInUseCase) SignIn(
	ctx context.Context,
	input *authDomain.SignInInput,
) (*authDomain.SignInOutput, error) {
	if input.Email == "" || input.Password == "" {
		return nil, authDomain.ErrMissingCredentials
	}

	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			s.secretService.DummyCompare(input.Password)
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive {
		s.secretService.DummyCompare(input.Password)
		return nil, authDomain.ErrInvalidCredentials
	}

	if !s.secretService.CompareSecret(input.Password, user.PasswordHash) {
		return nil, authDomain.ErrInvalidCredentials
	}

	token, expiresAt, err := s.sessionTokenService.Issue(authService.SessionClaims{
		UserID: user.ID.String(),
		Email:  user.Email,
		Role:   string(user.Role),
	})
	if err != nil {
		return nil, err
	}

	return &authDomain.SignInOutput{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user.Public(),
	}, nil
}

// NewSignInUseCase creates a new SignInUseCase with the provided dependencies.
func NewSignInUseCase(
	userRepo UserRepository,
	secretService authService.SecretService,
	sessionTokenService authService.SessionTokenService,
) SignInUseCase {
	return &signInUseCase{
		userRepo:            userRepo,
		secretService:       secretService,
		sessionTokenService: sessionTokenService,
	}
}

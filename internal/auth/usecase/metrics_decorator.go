package usecase

import (
	"context"
	"time"

	authDomain "github.com/allisson/serviceauth/internal/auth/domain"
	apperrors "github.com/allisson/serviceauth/internal/errors"
	"github.com/allisson/serviceauth/internal/metrics"
	serviceDomain "github.com/allisson/serviceauth/internal/service/domain"
)

// verifyUseCaseWithMetrics decorates VerifyUseCase with metrics instrumentation.
type verifyUseCaseWithMetrics struct {
	next    VerifyUseCase
	metrics metrics.BusinessMetrics
}

// NewVerifyUseCaseWithMetrics wraps a VerifyUseCase with metrics recording.
func NewVerifyUseCaseWithMetrics(useCase VerifyUseCase, m metrics.BusinessMetrics) VerifyUseCase {
	return &verifyUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Verify records metrics for verification decisions. Denied targets are
// labeled separately from credential failures so dashboards can tell
// misconfigured permissions from credential problems.
func (v *verifyUseCaseWithMetrics) Verify(
	ctx context.Context,
	input *authDomain.VerifyInput,
) (*authDomain.VerifyOutput, error) {
	start := time.Now()
	output, err := v.next.Verify(ctx, input)

	status := metrics.StatusSuccess
	switch {
	case err == nil:
	case apperrors.Is(err, apperrors.ErrForbidden):
		status = metrics.StatusDenied
	default:
		status = metrics.StatusError
	}

	v.metrics.RecordOperation(ctx, metrics.DomainAuth, metrics.OperationVerify, status)
	v.metrics.RecordDuration(ctx, metrics.DomainAuth, metrics.OperationVerify, time.Since(start), status)

	return output, err
}

// Authenticate records metrics for middleware credential checks.
func (v *verifyUseCaseWithMetrics) Authenticate(
	ctx context.Context,
	serviceName string,
	apiKey string,
) (*serviceDomain.Service, error) {
	start := time.Now()
	service, err := v.next.Authenticate(ctx, serviceName, apiKey)

	status := metrics.StatusSuccess
	if err != nil {
		status = metrics.StatusError
	}

	v.metrics.RecordOperation(ctx, metrics.DomainAuth, metrics.OperationAuthenticate, status)
	v.metrics.RecordDuration(ctx, metrics.DomainAuth, metrics.OperationAuthenticate, time.Since(start), status)

	return service, err
}

// signInUseCaseWithMetrics decorates SignInUseCase with metrics instrumentation.
type signInUseCaseWithMetrics struct {
	next    SignInUseCase
	metrics metrics.BusinessMetrics
}

// NewSignInUseCaseWithMetrics wraps a SignInUseCase with metrics recording.
func NewSignInUseCaseWithMetrics(useCase SignInUseCase, m metrics.BusinessMetrics) SignInUseCase {
	return &signInUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// SignIn records metrics for sign-in decisions.
func (s *signInUseCaseWithMetrics) SignIn(
	ctx context.Context,
	input *authDomain.SignInInput,
) (*authDomain.SignInOutput, error) {
	start := time.Now()
	output, err := s.next.SignIn(ctx, input)

	status := metrics.StatusSuccess
	if err != nil {
		status = metrics.StatusError
	}

	s.metrics.RecordOperation(ctx, metrics.DomainAuth, metrics.OperationSignIn, status)
	s.metrics.RecordDuration(ctx, metrics.DomainAuth, metrics.OperationSignIn, time.Since(start), status)

	return output, err
}

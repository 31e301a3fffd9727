package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	authDomain "github.com/allisson/serviceauth/internal/auth/domain"
	serviceDomain "github.com/allisson/serviceauth/internal/service/domain"
)

// mockBusinessMetrics is a local mock for metrics.BusinessMetrics.
type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

// mockVerifyUseCase is a mock implementation of VerifyUseCase.
type mockVerifyUseCase struct {
	mock.Mock
}

func (m *mockVerifyUseCase) Verify(ctx context.Context, input *authDomain.VerifyInput) (*authDomain.VerifyOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.VerifyOutput), args.Error(1)
}

func (m *mockVerifyUseCase) Authenticate(ctx context.Context, serviceName string, apiKey string) (*serviceDomain.Service, error) {
	args := m.Called(ctx, serviceName, apiKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*serviceDomain.Service), args.Error(1)
}

// mockSignInUseCase is a mock implementation of SignInUseCase.
type mockSignInUseCase struct {
	mock.Mock
}

func (m *mockSignInUseCase) SignIn(ctx context.Context, input *authDomain.SignInInput) (*authDomain.SignInOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.SignInOutput), args.Error(1)
}

func TestVerifyUseCaseWithMetrics(t *testing.T) {
	mockNext := &mockVerifyUseCase{}
	mockMetrics := &mockBusinessMetrics{}
	uc := NewVerifyUseCaseWithMetrics(mockNext, mockMetrics)

	ctx := context.Background()

	t.Run("Verify success", func(t *testing.T) {
		input := &authDomain.VerifyInput{ServiceName: "billing-api", APIKey: "key"}
		output := &authDomain.VerifyOutput{ServiceID: uuid.Must(uuid.NewV7()), ServiceName: "billing-api"}

		mockNext.On("Verify", ctx, input).Return(output, nil).Once()
		mockMetrics.On("RecordOperation", ctx, "auth", "verify", "success").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "auth", "verify", mock.AnythingOfType("time.Duration"), "success").
			Return().
			Once()

		res, err := uc.Verify(ctx, input)
		assert.NoError(t, err)
		assert.Equal(t, output, res)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Verify denied target records denied status", func(t *testing.T) {
		input := &authDomain.VerifyInput{ServiceName: "billing-api", APIKey: "key", TargetService: "ledger-api"}

		mockNext.On("Verify", ctx, input).Return(nil, serviceDomain.ErrAccessDenied).Once()
		mockMetrics.On("RecordOperation", ctx, "auth", "verify", "denied").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "auth", "verify", mock.AnythingOfType("time.Duration"), "denied").
			Return().
			Once()

		res, err := uc.Verify(ctx, input)
		assert.ErrorIs(t, err, serviceDomain.ErrAccessDenied)
		assert.Nil(t, res)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Verify error", func(t *testing.T) {
		input := &authDomain.VerifyInput{ServiceName: "billing-api", APIKey: "key"}
		expectedErr := errors.New("error")

		mockNext.On("Verify", ctx, input).Return(nil, expectedErr).Once()
		mockMetrics.On("RecordOperation", ctx, "auth", "verify", "error").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "auth", "verify", mock.AnythingOfType("time.Duration"), "error").
			Return().
			Once()

		res, err := uc.Verify(ctx, input)
		assert.Error(t, err)
		assert.Nil(t, res)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Authenticate success", func(t *testing.T) {
		service := &serviceDomain.Service{ID: uuid.Must(uuid.NewV7()), Name: "billing-api"}

		mockNext.On("Authenticate", ctx, "billing-api", "key").Return(service, nil).Once()
		mockMetrics.On("RecordOperation", ctx, "auth", "service_authenticate", "success").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "auth", "service_authenticate", mock.AnythingOfType("time.Duration"), "success").
			Return().
			Once()

		res, err := uc.Authenticate(ctx, "billing-api", "key")
		assert.NoError(t, err)
		assert.Equal(t, service, res)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})
}

func TestSignInUseCaseWithMetrics(t *testing.T) {
	mockNext := &mockSignInUseCase{}
	mockMetrics := &mockBusinessMetrics{}
	uc := NewSignInUseCaseWithMetrics(mockNext, mockMetrics)

	ctx := context.Background()

	t.Run("SignIn success", func(t *testing.T) {
		input := &authDomain.SignInInput{Email: "user@example.com", Password: "Sup3rSecret"}
		output := &authDomain.SignInOutput{Token: "token"}

		mockNext.On("SignIn", ctx, input).Return(output, nil).Once()
		mockMetrics.On("RecordOperation", ctx, "auth", "signin", "success").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "auth", "signin", mock.AnythingOfType("time.Duration"), "success").
			Return().
			Once()

		res, err := uc.SignIn(ctx, input)
		assert.NoError(t, err)
		assert.Equal(t, output, res)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("SignIn error", func(t *testing.T) {
		input := &authDomain.SignInInput{Email: "user@example.com", Password: "wrong"}

		mockNext.On("SignIn", ctx, input).Return(nil, authDomain.ErrInvalidCredentials).Once()
		mockMetrics.On("RecordOperation", ctx, "auth", "signin", "error").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "auth", "signin", mock.AnythingOfType("time.Duration"), "error").
			Return().
			Once()

		res, err := uc.SignIn(ctx, input)
		assert.ErrorIs(t, err, authDomain.ErrInvalidCredentials)
		assert.Nil(t, res)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})
}

package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/serviceauth/internal/errors"
	"github.com/allisson/serviceauth/internal/user/domain"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func validInput() RegisterUserInput {
	return RegisterUserInput{
		Email:     "jane.doe@example.com",
		Password:  "Sup3rSecret",
		FirstName: "Jane",
		LastName:  "Doe",
		Role:      domain.RoleAdmin,
	}
}

func TestUserUseCase_RegisterUser(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_RegistersUser", func(t *testing.T) {
		userRepo := &MockUserRepository{}

		userRepo.On("Create", ctx, mock.MatchedBy(func(user *domain.User) bool {
			return user.Email == "jane.doe@example.com" &&
				user.PasswordHash != "" &&
				user.PasswordHash != "Sup3rSecret" &&
				user.Role == domain.RoleAdmin &&
				user.IsActive
		})).
			Return(nil).
			Once()

		uc, err := NewUserUseCase(userRepo)
		require.NoError(t, err)

		user, err := uc.RegisterUser(ctx, validInput())
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, user.ID)
		assert.Contains(t, user.PasswordHash, "$argon2id$")
		userRepo.AssertExpectations(t)
	})

	t.Run("Success_NormalizesEmail", func(t *testing.T) {
		userRepo := &MockUserRepository{}
		userRepo.On("Create", ctx, mock.MatchedBy(func(user *domain.User) bool {
			return user.Email == "jane.doe@example.com"
		})).
			Return(nil).
			Once()

		uc, err := NewUserUseCase(userRepo)
		require.NoError(t, err)

		input := validInput()
		input.Email = "  Jane.Doe@Example.COM  "
		_, err = uc.RegisterUser(ctx, input)
		require.NoError(t, err)
		userRepo.AssertExpectations(t)
	})

	t.Run("Error_InvalidEmail", func(t *testing.T) {
		uc, err := NewUserUseCase(&MockUserRepository{})
		require.NoError(t, err)

		input := validInput()
		input.Email = "not-an-email"
		user, err := uc.RegisterUser(ctx, input)

		assert.Nil(t, user)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("Error_WeakPassword", func(t *testing.T) {
		uc, err := NewUserUseCase(&MockUserRepository{})
		require.NoError(t, err)

		input := validInput()
		input.Password = "alllowercase"
		user, err := uc.RegisterUser(ctx, input)

		assert.Nil(t, user)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("Error_InvalidRole", func(t *testing.T) {
		uc, err := NewUserUseCase(&MockUserRepository{})
		require.NoError(t, err)

		input := validInput()
		input.Role = domain.Role("superuser")
		user, err := uc.RegisterUser(ctx, input)

		assert.Nil(t, user)
		assert.ErrorIs(t, err, domain.ErrInvalidRole)
	})

	t.Run("Error_CompanyUserWithoutCompany", func(t *testing.T) {
		uc, err := NewUserUseCase(&MockUserRepository{})
		require.NoError(t, err)

		input := validInput()
		input.Role = domain.RoleCompanyUser
		input.CompanyID = nil
		user, err := uc.RegisterUser(ctx, input)

		assert.Nil(t, user)
		assert.ErrorIs(t, err, domain.ErrCompanyRequired)
	})

	t.Run("Error_AdminWithCompany", func(t *testing.T) {
		userRepo := &MockUserRepository{}
		uc, err := NewUserUseCase(userRepo)
		require.NoError(t, err)

		companyID := uuid.Must(uuid.NewV7())
		input := validInput()
		input.Role = domain.RoleAdmin
		input.CompanyID = &companyID
		user, err := uc.RegisterUser(ctx, input)

		assert.Nil(t, user)
		assert.ErrorIs(t, err, domain.ErrCompanyNotAllowed)
		userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Success_CompanyUserWithCompany", func(t *testing.T) {
		userRepo := &MockUserRepository{}
		companyID := uuid.Must(uuid.NewV7())

		userRepo.On("Create", ctx, mock.MatchedBy(func(user *domain.User) bool {
			return user.Role == domain.RoleCompanyUser &&
				user.CompanyID != nil &&
				*user.CompanyID == companyID
		})).
			Return(nil).
			Once()

		uc, err := NewUserUseCase(userRepo)
		require.NoError(t, err)

		input := validInput()
		input.Role = domain.RoleCompanyUser
		input.CompanyID = &companyID
		_, err = uc.RegisterUser(ctx, input)
		require.NoError(t, err)
		userRepo.AssertExpectations(t)
	})

	t.Run("Error_DuplicateEmail", func(t *testing.T) {
		userRepo := &MockUserRepository{}
		userRepo.On("Create", ctx, mock.Anything).
			Return(domain.ErrUserAlreadyExists).
			Once()

		uc, err := NewUserUseCase(userRepo)
		require.NoError(t, err)

		user, err := uc.RegisterUser(ctx, validInput())
		assert.Nil(t, user)
		assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)
	})
}

func TestUserUseCase_GetUserByEmail(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		userRepo := &MockUserRepository{}
		expected := &domain.User{
			ID:    uuid.Must(uuid.NewV7()),
			Email: "jane.doe@example.com",
			Role:  domain.RoleAdmin,
		}
		userRepo.On("GetByEmail", ctx, "jane.doe@example.com").Return(expected, nil).Once()

		uc, err := NewUserUseCase(userRepo)
		require.NoError(t, err)

		user, err := uc.GetUserByEmail(ctx, "jane.doe@example.com")
		require.NoError(t, err)
		assert.Equal(t, expected, user)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		userRepo := &MockUserRepository{}
		userRepo.On("GetByEmail", ctx, "ghost@example.com").
			Return(nil, domain.ErrUserNotFound).
			Once()

		uc, err := NewUserUseCase(userRepo)
		require.NoError(t, err)

		user, err := uc.GetUserByEmail(ctx, "ghost@example.com")
		assert.Nil(t, user)
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}

package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/allisson/serviceauth/internal/app"
	"github.com/allisson/serviceauth/internal/config"
	userDomain "github.com/allisson/serviceauth/internal/user/domain"
	userUsecase "github.com/allisson/serviceauth/internal/user/usecase"
)

// RunCreateUser registers a new user from the command line.
//
// Requirements: Database must be migrated and accessible.
func RunCreateUser(
	ctx context.Context,
	email string,
	password string,
	firstName string,
	lastName string,
	role string,
	companyID string,
	format string,
) error {
	cfg := config.Load()

	container := app.NewContainer(cfg)
	logger := container.Logger()

	defer closeContainer(container, logger)

	userUseCase, err := container.UserUseCase()
	if err != nil {
		return fmt.Errorf("failed to initialize user use case: %w", err)
	}

	return CreateUser(ctx, userUseCase, logger, email, password, firstName, lastName, role, companyID, format, DefaultIO())
}

// CreateUser registers a user with the given attributes and writes the result
// in text or JSON format.
func CreateUser(
	ctx context.Context,
	userUseCase userUsecase.UseCase,
	logger *slog.Logger,
	email string,
	password string,
	firstName string,
	lastName string,
	role string,
	companyID string,
	format string,
	io IOTuple,
) error {
	logger.Info("creating new user", slog.String("email", email), slog.String("role", role))

	input := userUsecase.RegisterUserInput{
		Email:     email,
		Password:  password,
		FirstName: firstName,
		LastName:  lastName,
		Role:      userDomain.Role(role),
	}

	if companyID != "" {
		parsed, err := uuid.Parse(companyID)
		if err != nil {
			return fmt.Errorf("invalid company id: %w", err)
		}
		input.CompanyID = &parsed
	}

	user, err := userUseCase.RegisterUser(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	if format == "json" {
		writeJSON(map[string]string{
			"user_id": user.ID.String(),
			"email":   user.Email,
			"role":    string(user.Role),
		}, io.Writer)
	} else {
		_, _ = fmt.Fprintln(io.Writer, "\nUser created successfully!")
		_, _ = fmt.Fprintf(io.Writer, "User ID: %s\n", user.ID.String())
		_, _ = fmt.Fprintf(io.Writer, "Email: %s\n", user.Email)
		_, _ = fmt.Fprintf(io.Writer, "Role: %s\n", user.Role)
	}

	logger.Info("user created successfully",
		slog.String("user_id", user.ID.String()),
		slog.String("email", user.Email),
	)

	return nil
}

package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/allisson/serviceauth/internal/app"
	"github.com/allisson/serviceauth/internal/config"
	serviceUsecase "github.com/allisson/serviceauth/internal/service/usecase"
)

// RunInitAdmin bootstraps the administrative service from configuration.
// Loads ADMIN_SERVICE_NAME and ADMIN_SERVICE_API_KEY, hashes the key, and
// upserts the service row. Safe to run repeatedly; an existing admin service
// just gets its key hash replaced.
//
// Requirements: Database must be migrated and accessible.
func RunInitAdmin(ctx context.Context) error {
	cfg := config.Load()

	container := app.NewContainer(cfg)
	logger := container.Logger()

	defer closeContainer(container, logger)

	serviceUseCase, err := container.ServiceUseCase()
	if err != nil {
		return fmt.Errorf("failed to initialize service use case: %w", err)
	}

	return InitAdmin(ctx, serviceUseCase, logger, cfg.AdminServiceName, cfg.AdminServiceAPIKey, DefaultIO())
}

// InitAdmin upserts the administrative service row using the provided name
// and plain API key.
func InitAdmin(
	ctx context.Context,
	serviceUseCase serviceUsecase.ServiceUseCase,
	logger *slog.Logger,
	name string,
	apiKey string,
	io IOTuple,
) error {
	if name == "" {
		return fmt.Errorf("ADMIN_SERVICE_NAME must be set")
	}
	if apiKey == "" {
		return fmt.Errorf("ADMIN_SERVICE_API_KEY must be set")
	}

	logger.Info("bootstrapping administrative service", slog.String("name", name))

	service, err := serviceUseCase.Bootstrap(ctx, name, apiKey)
	if err != nil {
		return fmt.Errorf("failed to bootstrap administrative service: %w", err)
	}

	_, _ = fmt.Fprintln(io.Writer, "Administrative service ready.")
	_, _ = fmt.Fprintf(io.Writer, "Service ID: %s\n", service.ID.String())
	_, _ = fmt.Fprintf(io.Writer, "Name: %s\n", service.Name)

	logger.Info("administrative service bootstrapped",
		slog.String("service_id", service.ID.String()),
		slog.String("name", service.Name),
	)

	return nil
}

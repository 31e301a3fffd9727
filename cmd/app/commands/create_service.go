package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/allisson/serviceauth/internal/app"
	"github.com/allisson/serviceauth/internal/config"
	serviceDomain "github.com/allisson/serviceauth/internal/service/domain"
	serviceUsecase "github.com/allisson/serviceauth/internal/service/usecase"
)

// RunCreateService registers a new service from the command line, printing
// the generated one-time API key. Registering an existing name rotates its
// key instead.
//
// Requirements: Database must be migrated and accessible.
func RunCreateService(ctx context.Context, name string, allowedServices string, format string) error {
	cfg := config.Load()

	container := app.NewContainer(cfg)
	logger := container.Logger()

	defer closeContainer(container, logger)

	serviceUseCase, err := container.ServiceUseCase()
	if err != nil {
		return fmt.Errorf("failed to initialize service use case: %w", err)
	}

	return CreateService(ctx, serviceUseCase, logger, name, allowedServices, format, DefaultIO())
}

// CreateService registers a service with the given allowed target names and
// writes the result in text or JSON format.
func CreateService(
	ctx context.Context,
	serviceUseCase serviceUsecase.ServiceUseCase,
	logger *slog.Logger,
	name string,
	allowedServices string,
	format string,
	io IOTuple,
) error {
	logger.Info("creating new service", slog.String("name", name))

	input := &serviceDomain.CreateServiceInput{
		Name:            name,
		AllowedServices: parseServiceNames(allowedServices),
	}

	output, err := serviceUseCase.Create(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}

	if format == "json" {
		writeJSON(map[string]string{
			"service_id": output.Service.ID.String(),
			"name":       output.Service.Name,
			"api_key":    output.PlainAPIKey,
		}, io.Writer)
	} else {
		_, _ = fmt.Fprintln(io.Writer, "\nService created successfully!")
		_, _ = fmt.Fprintf(io.Writer, "Service ID: %s\n", output.Service.ID.String())
		_, _ = fmt.Fprintf(io.Writer, "Name: %s\n", output.Service.Name)
		_, _ = fmt.Fprintf(io.Writer, "API Key: %s\n", output.PlainAPIKey)
		_, _ = fmt.Fprintln(io.Writer, "\nIMPORTANT: The API key is shown only once. Store it securely.")
	}

	logger.Info("service created successfully",
		slog.String("service_id", output.Service.ID.String()),
		slog.String("name", output.Service.Name),
	)

	return nil
}

// parseServiceNames converts a comma-separated list into a slice of service
// names, dropping empty entries.
func parseServiceNames(input string) []string {
	if input == "" {
		return nil
	}

	parts := strings.Split(input, ",")
	names := make([]string, 0, len(parts))

	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			names = append(names, trimmed)
		}
	}

	return names
}

// Package main provides the entry point for the application with CLI commands.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/allisson/serviceauth/cmd/app/commands"
)

const version = "1.0.0"

func main() {
	cmd := &cli.Command{
		Name:    "serviceauth",
		Usage:   "Credential authority for service-to-service and user authentication",
		Version: version,
		Commands: []*cli.Command{
			{
				Name:  "server",
				Usage: "Start the HTTP server",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunServer(ctx, version)
				},
			},
			{
				Name:  "migrate",
				Usage: "Run database migrations",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunMigrations()
				},
			},
			{
				Name:  "init-admin",
				Usage: "Bootstrap the administrative service from ADMIN_SERVICE_NAME and ADMIN_SERVICE_API_KEY",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunInitAdmin(ctx)
				},
			},
			{
				Name:  "create-service",
				Usage: "Register a new service and print its one-time API key",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "name",
						Aliases:  []string{"n"},
						Required: true,
						Usage:    "Service name (lowercase letters, digits, and hyphens)",
					},
					&cli.StringFlag{
						Name:    "allowed-services",
						Aliases: []string{"a"},
						Usage:   "Comma-separated list of target service names this service may call",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Value:   "text",
						Usage:   "Output format: 'text' or 'json'",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunCreateService(
						ctx,
						cmd.String("name"),
						cmd.String("allowed-services"),
						cmd.String("format"),
					)
				},
			},
			{
				Name:  "create-user",
				Usage: "Register a new user account",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "email",
						Aliases:  []string{"e"},
						Required: true,
						Usage:    "User email address",
					},
					&cli.StringFlag{
						Name:     "password",
						Aliases:  []string{"p"},
						Required: true,
						Usage:    "User password",
					},
					&cli.StringFlag{
						Name:     "first-name",
						Required: true,
						Usage:    "User first name",
					},
					&cli.StringFlag{
						Name:     "last-name",
						Required: true,
						Usage:    "User last name",
					},
					&cli.StringFlag{
						Name:  "role",
						Value: "company_user",
						Usage: "User role: 'admin' or 'company_user'",
					},
					&cli.StringFlag{
						Name:  "company-id",
						Usage: "Company ID (UUID), required for company_user role",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Value:   "text",
						Usage:   "Output format: 'text' or 'json'",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunCreateUser(
						ctx,
						cmd.String("email"),
						cmd.String("password"),
						cmd.String("first-name"),
						cmd.String("last-name"),
						cmd.String("role"),
						cmd.String("company-id"),
						cmd.String("format"),
					)
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.Any("error", err))
		os.Exit(1)
	}
}

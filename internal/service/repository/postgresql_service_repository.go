// Package repository implements data persistence for the service directory.
//
// Provides PostgreSQL and MySQL implementations with transaction support via
// database.GetTx(). Services and their permission edges live in the `services`
// and `service_permissions` tables; an edge lookup is a single indexed EXISTS
// query, so no graph traversal is ever needed.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/allisson/serviceauth/internal/database"
	apperrors "github.com/allisson/serviceauth/internal/errors"
	serviceDomain "github.com/allisson/serviceauth/internal/service/domain"
)

// PostgreSQLServiceRepository implements Service persistence for PostgreSQL.
type PostgreSQLServiceRepository struct {
	db *sql.DB
}

// NewPostgreSQLServiceRepository creates a new PostgreSQL Service repository.
func NewPostgreSQLServiceRepository(db *sql.DB) *PostgreSQLServiceRepository {
	return &PostgreSQLServiceRepository{db: db}
}

// Create inserts a new Service into the PostgreSQL database.
func (p *PostgreSQLServiceRepository) Create(ctx context.Context, service *serviceDomain.Service) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO services (id, name, api_key_hash, is_active, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := querier.ExecContext(
		ctx,
		query,
		service.ID,
		service.Name,
		service.APIKeyHash,
		service.IsActive,
		service.CreatedAt,
		service.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create service")
	}
	return nil
}

// GetByID retrieves a Service by ID, including its outbound edge set.
func (p *PostgreSQLServiceRepository) GetByID(
	ctx context.Context,
	serviceID uuid.UUID,
) (*serviceDomain.Service, error) {
	query := `SELECT id, name, api_key_hash, is_active, created_at, updated_at
			  FROM services WHERE id = $1`
	return p.getService(ctx, query, serviceID)
}

// GetByName retrieves a Service by name, including its outbound edge set.
func (p *PostgreSQLServiceRepository) GetByName(
	ctx context.Context,
	name string,
) (*serviceDomain.Service, error) {
	query := `SELECT id, name, api_key_hash, is_active, created_at, updated_at
			  FROM services WHERE name = $1`
	return p.getService(ctx, query, name)
}

// GetActiveByName retrieves an active Service by name, including its outbound
// edge set. Inactive services are indistinguishable from absent ones.
func (p *PostgreSQLServiceRepository) GetActiveByName(
	ctx context.Context,
	name string,
) (*serviceDomain.Service, error) {
	query := `SELECT id, name, api_key_hash, is_active, created_at, updated_at
			  FROM services WHERE name = $1 AND is_active = TRUE`
	return p.getService(ctx, query, name)
}

// UpdateAPIKeyHash replaces the stored hash in place and bumps updated_at.
// Returns ErrServiceNotFound if the service does not exist.
func (p *PostgreSQLServiceRepository) UpdateAPIKeyHash(
	ctx context.Context,
	serviceID uuid.UUID,
	apiKeyHash string,
	updatedAt time.Time,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE services SET api_key_hash = $1, updated_at = $2 WHERE id = $3`

	result, err := querier.ExecContext(ctx, query, apiKeyHash, updatedAt, serviceID)
	if err != nil {
		return apperrors.Wrap(err, "failed to update service api key hash")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read affected rows")
	}
	if rows == 0 {
		return serviceDomain.ErrServiceNotFound
	}
	return nil
}

// ReplaceAllowedServices deletes the service's outbound edges and inserts
// fresh edges to every existing service named in targetNames. Names that do
// not resolve are silently skipped. Callers must run this inside a
// transaction so readers never observe a partial edge set.
func (p *PostgreSQLServiceRepository) ReplaceAllowedServices(
	ctx context.Context,
	serviceID uuid.UUID,
	targetNames []string,
) error {
	querier := database.GetTx(ctx, p.db)

	deleteQuery := `DELETE FROM service_permissions WHERE service_id = $1`
	if _, err := querier.ExecContext(ctx, deleteQuery, serviceID); err != nil {
		return apperrors.Wrap(err, "failed to delete service permissions")
	}

	if len(targetNames) == 0 {
		return nil
	}

	// Resolve the names that exist; unknown names are dropped.
	resolveQuery := `SELECT id FROM services WHERE name = ANY($1)`
	rows, err := querier.QueryContext(ctx, resolveQuery, pq.Array(targetNames))
	if err != nil {
		return apperrors.Wrap(err, "failed to resolve target services")
	}
	defer rows.Close()

	var targetIDs []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return apperrors.Wrap(err, "failed to scan target service id")
		}
		targetIDs = append(targetIDs, id)
	}
	if err := rows.Err(); err != nil {
		return apperrors.Wrap(err, "failed to iterate target services")
	}

	if len(targetIDs) == 0 {
		return nil
	}

	// Multi-row insert of the new edge set.
	var builder strings.Builder
	builder.WriteString(`INSERT INTO service_permissions (service_id, allowed_service_id) VALUES `)
	args := make([]any, 0, len(targetIDs)*2)
	for i, targetID := range targetIDs {
		if i > 0 {
			builder.WriteString(", ")
		}
		fmt.Fprintf(&builder, "($%d, $%d)", len(args)+1, len(args)+2)
		args = append(args, serviceID, targetID)
	}

	if _, err := querier.ExecContext(ctx, builder.String(), args...); err != nil {
		return apperrors.Wrap(err, "failed to insert service permissions")
	}
	return nil
}

// HasAccess reports whether an edge from sourceID to the service named
// targetName exists. A single indexed EXISTS query; false for unknown targets.
func (p *PostgreSQLServiceRepository) HasAccess(
	ctx context.Context,
	sourceID uuid.UUID,
	targetName string,
) (bool, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT EXISTS (
				SELECT 1 FROM service_permissions sp
				JOIN services target ON target.id = sp.allowed_service_id
				WHERE sp.service_id = $1 AND target.name = $2
			  )`

	var exists bool
	if err := querier.QueryRowContext(ctx, query, sourceID, targetName).Scan(&exists); err != nil {
		return false, apperrors.Wrap(err, "failed to check service access")
	}
	return exists, nil
}

// getService runs a single-row service query and loads the edge set.
func (p *PostgreSQLServiceRepository) getService(
	ctx context.Context,
	query string,
	arg any,
) (*serviceDomain.Service, error) {
	querier := database.GetTx(ctx, p.db)

	var service serviceDomain.Service
	err := querier.QueryRowContext(ctx, query, arg).Scan(
		&service.ID,
		&service.Name,
		&service.APIKeyHash,
		&service.IsActive,
		&service.CreatedAt,
		&service.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, serviceDomain.ErrServiceNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get service")
	}

	allowed, err := p.loadAllowedServices(ctx, querier, service.ID)
	if err != nil {
		return nil, err
	}
	service.AllowedServices = allowed

	return &service, nil
}

// loadAllowedServices returns the names of the services the given service
// holds outbound edges to, ordered for deterministic responses.
func (p *PostgreSQLServiceRepository) loadAllowedServices(
	ctx context.Context,
	querier database.Querier,
	serviceID uuid.UUID,
) ([]string, error) {
	query := `SELECT target.name
			  FROM service_permissions sp
			  JOIN services target ON target.id = sp.allowed_service_id
			  WHERE sp.service_id = $1
			  ORDER BY target.name`

	rows, err := querier.QueryContext(ctx, query, serviceID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to load allowed services")
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan allowed service name")
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate allowed services")
	}
	return names, nil
}

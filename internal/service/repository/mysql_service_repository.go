package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/serviceauth/internal/database"
	apperrors "github.com/allisson/serviceauth/internal/errors"
	serviceDomain "github.com/allisson/serviceauth/internal/service/domain"
)

// MySQLServiceRepository implements Service persistence for MySQL.
// Uses BINARY(16) for UUID storage with transaction support via database.GetTx().
type MySQLServiceRepository struct {
	db *sql.DB
}

// NewMySQLServiceRepository creates a new MySQL Service repository.
func NewMySQLServiceRepository(db *sql.DB) *MySQLServiceRepository {
	return &MySQLServiceRepository{db: db}
}

// Create inserts a new Service into the MySQL database.
func (m *MySQLServiceRepository) Create(ctx context.Context, service *serviceDomain.Service) error {
	querier := database.GetTx(ctx, m.db)

	id, err := service.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal service id")
	}

	query := `INSERT INTO services (id, name, api_key_hash, is_active, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
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
func (m *MySQLServiceRepository) GetByID(
	ctx context.Context,
	serviceID uuid.UUID,
) (*serviceDomain.Service, error) {
	id, err := serviceID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal service id")
	}

	query := `SELECT id, name, api_key_hash, is_active, created_at, updated_at
			  FROM services WHERE id = ?`
	return m.getService(ctx, query, id)
}

// GetByName retrieves a Service by name, including its outbound edge set.
func (m *MySQLServiceRepository) GetByName(
	ctx context.Context,
	name string,
) (*serviceDomain.Service, error) {
	query := `SELECT id, name, api_key_hash, is_active, created_at, updated_at
			  FROM services WHERE name = ?`
	return m.getService(ctx, query, name)
}

// GetActiveByName retrieves an active Service by name, including its outbound
// edge set. Inactive services are indistinguishable from absent ones.
func (m *MySQLServiceRepository) GetActiveByName(
	ctx context.Context,
	name string,
) (*serviceDomain.Service, error) {
	query := `SELECT id, name, api_key_hash, is_active, created_at, updated_at
			  FROM services WHERE name = ? AND is_active = TRUE`
	return m.getService(ctx, query, name)
}

// UpdateAPIKeyHash replaces the stored hash in place and bumps updated_at.
// Returns ErrServiceNotFound if the service does not exist.
func (m *MySQLServiceRepository) UpdateAPIKeyHash(
	ctx context.Context,
	serviceID uuid.UUID,
	apiKeyHash string,
	updatedAt time.Time,
) error {
	querier := database.GetTx(ctx, m.db)

	id, err := serviceID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal service id")
	}

	query := `UPDATE services SET api_key_hash = ?, updated_at = ? WHERE id = ?`

	result, err := querier.ExecContext(ctx, query, apiKeyHash, updatedAt, id)
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
func (m *MySQLServiceRepository) ReplaceAllowedServices(
	ctx context.Context,
	serviceID uuid.UUID,
	targetNames []string,
) error {
	querier := database.GetTx(ctx, m.db)

	id, err := serviceID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal service id")
	}

	deleteQuery := `DELETE FROM service_permissions WHERE service_id = ?`
	if _, err := querier.ExecContext(ctx, deleteQuery, id); err != nil {
		return apperrors.Wrap(err, "failed to delete service permissions")
	}

	if len(targetNames) == 0 {
		return nil
	}

	// Resolve the names that exist; unknown names are dropped.
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(targetNames)), ", ")
	resolveQuery := `SELECT id FROM services WHERE name IN (` + placeholders + `)`
	resolveArgs := make([]any, len(targetNames))
	for i, name := range targetNames {
		resolveArgs[i] = name
	}

	rows, err := querier.QueryContext(ctx, resolveQuery, resolveArgs...)
	if err != nil {
		return apperrors.Wrap(err, "failed to resolve target services")
	}
	defer rows.Close()

	var targetIDs [][]byte
	for rows.Next() {
		var targetID []byte
		if err := rows.Scan(&targetID); err != nil {
			return apperrors.Wrap(err, "failed to scan target service id")
		}
		targetIDs = append(targetIDs, targetID)
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
		builder.WriteString("(?, ?)")
		args = append(args, id, targetID)
	}

	if _, err := querier.ExecContext(ctx, builder.String(), args...); err != nil {
		return apperrors.Wrap(err, "failed to insert service permissions")
	}
	return nil
}

// HasAccess reports whether an edge from sourceID to the service named
// targetName exists. A single indexed EXISTS query; false for unknown targets.
func (m *MySQLServiceRepository) HasAccess(
	ctx context.Context,
	sourceID uuid.UUID,
	targetName string,
) (bool, error) {
	querier := database.GetTx(ctx, m.db)

	id, err := sourceID.MarshalBinary()
	if err != nil {
		return false, apperrors.Wrap(err, "failed to marshal service id")
	}

	query := `SELECT EXISTS (
				SELECT 1 FROM service_permissions sp
				JOIN services target ON target.id = sp.allowed_service_id
				WHERE sp.service_id = ? AND target.name = ?
			  )`

	var exists bool
	if err := querier.QueryRowContext(ctx, query, id, targetName).Scan(&exists); err != nil {
		return false, apperrors.Wrap(err, "failed to check service access")
	}
	return exists, nil
}

// getService runs a single-row service query and loads the edge set.
func (m *MySQLServiceRepository) getService(
	ctx context.Context,
	query string,
	arg any,
) (*serviceDomain.Service, error) {
	querier := database.GetTx(ctx, m.db)

	var service serviceDomain.Service
	var rawID []byte
	err := querier.QueryRowContext(ctx, query, arg).Scan(
		&rawID,
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

	serviceID, err := uuid.FromBytes(rawID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal service id")
	}
	service.ID = serviceID

	allowed, err := m.loadAllowedServices(ctx, querier, rawID)
	if err != nil {
		return nil, err
	}
	service.AllowedServices = allowed

	return &service, nil
}

// loadAllowedServices returns the names of the services the given service
// holds outbound edges to, ordered for deterministic responses.
func (m *MySQLServiceRepository) loadAllowedServices(
	ctx context.Context,
	querier database.Querier,
	rawServiceID []byte,
) ([]string, error) {
	query := `SELECT target.name
			  FROM service_permissions sp
			  JOIN services target ON target.id = sp.allowed_service_id
			  WHERE sp.service_id = ?
			  ORDER BY target.name`

	rows, err := querier.QueryContext(ctx, query, rawServiceID)
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

package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/allisson/serviceauth/internal/database"
	"github.com/allisson/serviceauth/internal/user/domain"

	apperrors "github.com/allisson/serviceauth/internal/errors"
)

// MySQLUserRepository handles user persistence for MySQL.
// Uses BINARY(16) for UUID storage with transaction support via database.GetTx().
type MySQLUserRepository struct {
	db *sql.DB
}

// NewMySQLUserRepository creates a new MySQLUserRepository
func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{
		db: db,
	}
}

// Create inserts a new user
func (r *MySQLUserRepository) Create(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	id, err := user.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal user id")
	}

	var companyID []byte
	if user.CompanyID != nil {
		companyID, err = user.CompanyID.MarshalBinary()
		if err != nil {
			return apperrors.Wrap(err, "failed to marshal company id")
		}
	}

	query := `INSERT INTO users (id, email, password_hash, first_name, last_name, role, company_id, is_active, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx, query,
		id, user.Email, user.PasswordHash, user.FirstName, user.LastName,
		user.Role, companyID, user.IsActive, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isMySQLDuplicateEntry(err) {
			return domain.ErrUserAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create user")
	}
	return nil
}

// GetByEmail retrieves a user by email
func (r *MySQLUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var (
		user      domain.User
		id        []byte
		companyID []byte
	)
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, email, password_hash, first_name, last_name, role, company_id, is_active, created_at, updated_at
			  FROM users WHERE email = ?`

	err := querier.QueryRowContext(ctx, query, email).Scan(
		&id, &user.Email, &user.PasswordHash, &user.FirstName, &user.LastName,
		&user.Role, &companyID, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get user by email")
	}

	user.ID, err = uuid.FromBytes(id)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to parse user id")
	}
	if companyID != nil {
		parsed, err := uuid.FromBytes(companyID)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to parse company id")
		}
		user.CompanyID = &parsed
	}

	return &user, nil
}

// isMySQLDuplicateEntry checks if the error is a MySQL duplicate key violation
func isMySQLDuplicateEntry(err error) bool {
	if err == nil {
		return false
	}
	// MySQL error 1062: "Duplicate entry ... for key ..."
	return strings.Contains(strings.ToLower(err.Error()), "duplicate entry")
}

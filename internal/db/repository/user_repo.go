package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/scandine/ordering-service/internal/models"
)

// UserRepository handles user data access
type UserRepository struct {
	q sqlx.ExtContext
}

// NewUserRepository creates a new user repository
func NewUserRepository(q sqlx.ExtContext) *UserRepository {
	return &UserRepository{q: q}
}

// GetByUsername retrieves a user by username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `
		SELECT id, restaurant_id, username, password_hash, name, role, is_active,
		       created_at, updated_at
		FROM users
		WHERE username = $1
	`

	var user models.User
	err := sqlx.GetContext(ctx, r.q, &user, query, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.NewNotFoundError("user not found")
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `
		SELECT id, restaurant_id, username, password_hash, name, role, is_active,
		       created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var user models.User
	err := sqlx.GetContext(ctx, r.q, &user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.NewNotFoundError("user not found")
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/scandine/ordering-service/internal/models"
)

// RestaurantRepository handles restaurant data access
type RestaurantRepository struct {
	q sqlx.ExtContext
}

// NewRestaurantRepository creates a new restaurant repository
func NewRestaurantRepository(q sqlx.ExtContext) *RestaurantRepository {
	return &RestaurantRepository{q: q}
}

// GetBySlug retrieves a restaurant by its public slug
func (r *RestaurantRepository) GetBySlug(ctx context.Context, slug string) (*models.Restaurant, error) {
	query := `
		SELECT id, name, slug, is_open, tax_rate, is_tax_included,
		       subscription_active, monthly_order_limit, created_at, updated_at
		FROM restaurants
		WHERE slug = $1
	`

	var restaurant models.Restaurant
	err := sqlx.GetContext(ctx, r.q, &restaurant, query, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.NewNotFoundError("restaurant not found")
		}
		return nil, fmt.Errorf("failed to get restaurant: %w", err)
	}

	return &restaurant, nil
}

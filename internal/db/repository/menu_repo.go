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

// MenuRepository handles food item and variant data access
type MenuRepository struct {
	q sqlx.ExtContext
}

// NewMenuRepository creates a new menu repository
func NewMenuRepository(q sqlx.ExtContext) *MenuRepository {
	return &MenuRepository{q: q}
}

// GetFoodItem retrieves a food item with its variants, scoped to a restaurant
func (r *MenuRepository) GetFoodItem(ctx context.Context, restaurantID, foodItemID uuid.UUID) (*models.FoodItem, error) {
	query := `
		SELECT id, restaurant_id, name, price, discounted_price, is_available,
		       has_variants, created_at, updated_at
		FROM food_items
		WHERE id = $1 AND restaurant_id = $2
	`

	var item models.FoodItem
	err := sqlx.GetContext(ctx, r.q, &item, query, foodItemID, restaurantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.NewNotFoundError("food item not found")
		}
		return nil, fmt.Errorf("failed to get food item: %w", err)
	}

	if item.HasVariants {
		variants, err := r.getVariants(ctx, item.ID)
		if err != nil {
			return nil, err
		}
		item.Variants = variants
	}

	return &item, nil
}

// ListFoodItems retrieves the full menu of a restaurant
func (r *MenuRepository) ListFoodItems(ctx context.Context, restaurantID uuid.UUID) ([]models.FoodItem, error) {
	query := `
		SELECT id, restaurant_id, name, price, discounted_price, is_available,
		       has_variants, created_at, updated_at
		FROM food_items
		WHERE restaurant_id = $1
		ORDER BY name ASC
	`

	var items []models.FoodItem
	err := sqlx.SelectContext(ctx, r.q, &items, query, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list food items: %w", err)
	}

	for i := range items {
		if !items[i].HasVariants {
			continue
		}
		variants, err := r.getVariants(ctx, items[i].ID)
		if err != nil {
			return nil, err
		}
		items[i].Variants = variants
	}

	return items, nil
}

func (r *MenuRepository) getVariants(ctx context.Context, foodItemID uuid.UUID) ([]models.Variant, error) {
	query := `
		SELECT id, food_item_id, name, price, discounted_price, is_available
		FROM variants
		WHERE food_item_id = $1
		ORDER BY name ASC
	`

	var variants []models.Variant
	err := sqlx.SelectContext(ctx, r.q, &variants, query, foodItemID)
	if err != nil {
		return nil, fmt.Errorf("failed to get variants: %w", err)
	}

	return variants, nil
}

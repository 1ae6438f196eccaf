package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/scandine/ordering-service/internal/models"
)

// CatalogStore is the read surface for the public menu
type CatalogStore interface {
	GetRestaurantBySlug(ctx context.Context, slug string) (*models.Restaurant, error)
	ListFoodItems(ctx context.Context, restaurantID uuid.UUID) ([]models.FoodItem, error)
}

// CatalogService serves the public menu customers browse after scanning a
// table QR code.
type CatalogService struct {
	store CatalogStore
}

// NewCatalogService creates a new catalog service
func NewCatalogService(store CatalogStore) *CatalogService {
	return &CatalogService{store: store}
}

// Menu carries a restaurant's public details and food items
type Menu struct {
	Restaurant *models.Restaurant `json:"restaurant"`
	FoodItems  []models.FoodItem  `json:"food_items"`
}

// GetMenu retrieves a restaurant's menu by slug
func (s *CatalogService) GetMenu(ctx context.Context, restaurantSlug string) (*Menu, error) {
	restaurant, err := s.store.GetRestaurantBySlug(ctx, restaurantSlug)
	if err != nil {
		return nil, err
	}
	items, err := s.store.ListFoodItems(ctx, restaurant.ID)
	if err != nil {
		return nil, err
	}
	return &Menu{Restaurant: restaurant, FoodItems: items}, nil
}

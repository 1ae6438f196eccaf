package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/scandine/ordering-service/internal/models"
)

// ValidateLine resolves one requested line against the current menu and
// returns an order item carrying immutable price snapshots. It performs no
// writes.
func ValidateLine(ctx context.Context, store MenuStore, restaurantID uuid.UUID, line models.LineRequest) (models.OrderItem, error) {
	if line.Quantity < 1 {
		return models.OrderItem{}, models.NewValidationError("quantity must be a positive integer")
	}

	item, err := store.GetFoodItem(ctx, restaurantID, line.FoodItemID)
	if err != nil {
		return models.OrderItem{}, err
	}

	// Switching the parent off takes the whole item off the menu, variants
	// included
	if !item.IsAvailable {
		return models.OrderItem{}, models.NewValidationError("%s is not available", item.Name)
	}

	resolved := models.OrderItem{
		FoodItemID: item.ID,
		Name:       item.Name,
		Quantity:   line.Quantity,
	}

	if item.HasVariants {
		if line.VariantName == nil || *line.VariantName == "" {
			return models.OrderItem{}, models.NewValidationError("%s requires a variant", item.Name)
		}
		variant := item.FindVariant(*line.VariantName)
		if variant == nil {
			return models.OrderItem{}, models.NewValidationError("variant %q of %s does not exist", *line.VariantName, item.Name)
		}
		if !variant.IsAvailable {
			return models.OrderItem{}, models.NewValidationError("%s (%s) is not available", item.Name, variant.Name)
		}
		resolved.VariantName = line.VariantName
		resolved.Price = variant.Price
		resolved.FinalPrice = variant.Price
		if variant.DiscountedPrice != nil {
			resolved.FinalPrice = *variant.DiscountedPrice
		}
		return resolved, nil
	}

	if line.VariantName != nil && *line.VariantName != "" {
		return models.OrderItem{}, models.NewValidationError("%s has no variants", item.Name)
	}
	resolved.Price = item.Price
	resolved.FinalPrice = item.Price
	if item.DiscountedPrice != nil {
		resolved.FinalPrice = *item.DiscountedPrice
	}
	return resolved, nil
}

// ValidateLines resolves every requested line, failing on the first invalid
// one so partial orders are never created.
func ValidateLines(ctx context.Context, store MenuStore, restaurantID uuid.UUID, lines []models.LineRequest) ([]models.OrderItem, error) {
	if len(lines) == 0 {
		return nil, models.NewValidationError("order must contain at least one item")
	}

	items := make([]models.OrderItem, 0, len(lines))
	for i, line := range lines {
		item, err := ValidateLine(ctx, store, restaurantID, line)
		if err != nil {
			var appErr *models.AppError
			if errors.As(err, &appErr) {
				return nil, &models.AppError{
					Kind:    appErr.Kind,
					Message: fmt.Sprintf("line %d: %s", i+1, appErr.Message),
				}
			}
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		items = append(items, item)
	}
	return items, nil
}

package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/scandine/ordering-service/internal/models"
)

func TestValidateLine(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	restaurantID := uuid.New()

	plain := store.addFoodItem(models.FoodItem{
		RestaurantID: restaurantID,
		Name:         "Garlic Bread",
		Price:        120,
		IsAvailable:  true,
	})
	discounted := store.addFoodItem(models.FoodItem{
		RestaurantID:    restaurantID,
		Name:            "Veg Burger",
		Price:           150,
		DiscountedPrice: float64Ptr(129),
		IsAvailable:     true,
	})
	unavailable := store.addFoodItem(models.FoodItem{
		RestaurantID: restaurantID,
		Name:         "Seasonal Salad",
		Price:        90,
		IsAvailable:  false,
	})
	pizza := store.addFoodItem(models.FoodItem{
		RestaurantID: restaurantID,
		Name:         "Margherita",
		Price:        0,
		IsAvailable:  true,
		HasVariants:  true,
		Variants: []models.Variant{
			{Name: "Small", Price: 200, IsAvailable: true},
			{Name: "Large", Price: 350, DiscountedPrice: float64Ptr(299), IsAvailable: true},
			{Name: "Family", Price: 500, IsAvailable: false},
		},
	})
	offMenu := store.addFoodItem(models.FoodItem{
		RestaurantID: restaurantID,
		Name:         "Tandoori Platter",
		Price:        0,
		IsAvailable:  false,
		HasVariants:  true,
		Variants: []models.Variant{
			{Name: "Half", Price: 300, IsAvailable: true},
		},
	})
	foreign := store.addFoodItem(models.FoodItem{
		RestaurantID: uuid.New(),
		Name:         "Not Yours",
		Price:        10,
		IsAvailable:  true,
	})

	tests := []struct {
		name           string
		line           models.LineRequest
		wantKind       models.ErrorKind
		wantPrice      float64
		wantFinalPrice float64
	}{
		{
			name:           "plain item snapshots its price",
			line:           models.LineRequest{FoodItemID: plain.ID, Quantity: 2},
			wantPrice:      120,
			wantFinalPrice: 120,
		},
		{
			name:           "discount snapshots both prices",
			line:           models.LineRequest{FoodItemID: discounted.ID, Quantity: 1},
			wantPrice:      150,
			wantFinalPrice: 129,
		},
		{
			name:           "variant price used",
			line:           models.LineRequest{FoodItemID: pizza.ID, VariantName: strPtr("Small"), Quantity: 1},
			wantPrice:      200,
			wantFinalPrice: 200,
		},
		{
			name:           "variant discount used",
			line:           models.LineRequest{FoodItemID: pizza.ID, VariantName: strPtr("Large"), Quantity: 1},
			wantPrice:      350,
			wantFinalPrice: 299,
		},
		{
			name:     "zero quantity rejected",
			line:     models.LineRequest{FoodItemID: plain.ID, Quantity: 0},
			wantKind: models.KindValidation,
		},
		{
			name:     "negative quantity rejected",
			line:     models.LineRequest{FoodItemID: plain.ID, Quantity: -1},
			wantKind: models.KindValidation,
		},
		{
			name:     "unknown item rejected",
			line:     models.LineRequest{FoodItemID: uuid.New(), Quantity: 1},
			wantKind: models.KindNotFound,
		},
		{
			name:     "item of another restaurant rejected",
			line:     models.LineRequest{FoodItemID: foreign.ID, Quantity: 1},
			wantKind: models.KindNotFound,
		},
		{
			name:     "unavailable item rejected",
			line:     models.LineRequest{FoodItemID: unavailable.ID, Quantity: 1},
			wantKind: models.KindValidation,
		},
		{
			name:     "unavailable parent disables its variants",
			line:     models.LineRequest{FoodItemID: offMenu.ID, VariantName: strPtr("Half"), Quantity: 1},
			wantKind: models.KindValidation,
		},
		{
			name:     "variant required when item has variants",
			line:     models.LineRequest{FoodItemID: pizza.ID, Quantity: 1},
			wantKind: models.KindValidation,
		},
		{
			name:     "unknown variant rejected",
			line:     models.LineRequest{FoodItemID: pizza.ID, VariantName: strPtr("Mega"), Quantity: 1},
			wantKind: models.KindValidation,
		},
		{
			name:     "unavailable variant rejected",
			line:     models.LineRequest{FoodItemID: pizza.ID, VariantName: strPtr("Family"), Quantity: 1},
			wantKind: models.KindValidation,
		},
		{
			name:     "variant on a plain item rejected",
			line:     models.LineRequest{FoodItemID: plain.ID, VariantName: strPtr("Small"), Quantity: 1},
			wantKind: models.KindValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, err := ValidateLine(ctx, store, restaurantID, tt.line)
			if tt.wantKind != "" {
				if err == nil {
					t.Fatal("ValidateLine() = nil error, want error")
				}
				if kind := models.KindOf(err); kind != tt.wantKind {
					t.Errorf("error kind = %s, want %s", kind, tt.wantKind)
				}
				return
			}
			if err != nil {
				t.Fatalf("ValidateLine() error = %v", err)
			}
			if item.Price != tt.wantPrice || item.FinalPrice != tt.wantFinalPrice {
				t.Errorf("price snapshot = (%v, %v), want (%v, %v)",
					item.Price, item.FinalPrice, tt.wantPrice, tt.wantFinalPrice)
			}
			if item.Quantity != tt.line.Quantity {
				t.Errorf("quantity = %d, want %d", item.Quantity, tt.line.Quantity)
			}
		})
	}
}

func TestValidateLinesFailsOnFirstBadLine(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	restaurantID := uuid.New()

	good := store.addFoodItem(models.FoodItem{
		RestaurantID: restaurantID,
		Name:         "Fries",
		Price:        80,
		IsAvailable:  true,
	})

	lines := []models.LineRequest{
		{FoodItemID: good.ID, Quantity: 1},
		{FoodItemID: uuid.New(), Quantity: 1},
	}

	items, err := ValidateLines(ctx, store, restaurantID, lines)
	if err == nil {
		t.Fatal("expected error for line 2")
	}
	if items != nil {
		t.Errorf("expected no items on failure, got %v", items)
	}
	if kind := models.KindOf(err); kind != models.KindNotFound {
		t.Errorf("error kind = %s, want %s", kind, models.KindNotFound)
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("error should name the failing line, got %q", err.Error())
	}
}

func TestValidateLinesEmpty(t *testing.T) {
	_, err := ValidateLines(context.Background(), newFakeStore(), uuid.New(), nil)
	if kind := models.KindOf(err); kind != models.KindValidation {
		t.Fatalf("error kind = %s, want %s", kind, models.KindValidation)
	}
}

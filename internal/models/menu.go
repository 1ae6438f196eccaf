package models

import (
	"time"

	"github.com/google/uuid"
)

// FoodItem represents a menu entry, optionally with named variants
type FoodItem struct {
	ID              uuid.UUID `db:"id" json:"id"`
	RestaurantID    uuid.UUID `db:"restaurant_id" json:"restaurant_id"`
	Name            string    `db:"name" json:"name"`
	Price           float64   `db:"price" json:"price"`
	DiscountedPrice *float64  `db:"discounted_price" json:"discounted_price"`
	IsAvailable     bool      `db:"is_available" json:"is_available"`
	HasVariants     bool      `db:"has_variants" json:"has_variants"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`

	// Not stored directly in the database
	Variants []Variant `db:"-" json:"variants,omitempty"`
}

// Variant is a named sub-option of a food item with its own price,
// discount and availability
type Variant struct {
	ID              uuid.UUID `db:"id" json:"id"`
	FoodItemID      uuid.UUID `db:"food_item_id" json:"food_item_id"`
	Name            string    `db:"name" json:"name"`
	Price           float64   `db:"price" json:"price"`
	DiscountedPrice *float64  `db:"discounted_price" json:"discounted_price"`
	IsAvailable     bool      `db:"is_available" json:"is_available"`
}

// FindVariant returns the variant with the given name, or nil
func (f *FoodItem) FindVariant(name string) *Variant {
	for i := range f.Variants {
		if f.Variants[i].Name == name {
			return &f.Variants[i]
		}
	}
	return nil
}

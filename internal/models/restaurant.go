package models

import (
	"time"

	"github.com/google/uuid"
)

// Restaurant represents a tenant of the platform
type Restaurant struct {
	ID                 uuid.UUID `db:"id" json:"id"`
	Name               string    `db:"name" json:"name"`
	Slug               string    `db:"slug" json:"slug"`
	IsOpen             bool      `db:"is_open" json:"is_open"`
	TaxRate            float64   `db:"tax_rate" json:"tax_rate"`
	IsTaxIncluded      bool      `db:"is_tax_included" json:"is_tax_included"`
	SubscriptionActive bool      `db:"subscription_active" json:"subscription_active"`
	MonthlyOrderLimit  int       `db:"monthly_order_limit" json:"monthly_order_limit"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time `db:"updated_at" json:"updated_at"`
}

// TaxConfig is the slice of restaurant settings the pricing engine needs
type TaxConfig struct {
	Rate     float64
	Included bool
}

// TaxConfig returns the restaurant's tax settings
func (r *Restaurant) TaxConfig() TaxConfig {
	return TaxConfig{Rate: r.TaxRate, Included: r.IsTaxIncluded}
}

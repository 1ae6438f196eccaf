package service

import (
	"testing"

	"github.com/scandine/ordering-service/internal/models"
)

func TestPrice(t *testing.T) {
	tests := []struct {
		name  string
		items []models.OrderItem
		cfg   models.TaxConfig
		want  models.Pricing
	}{
		{
			name: "exclusive tax added on top",
			items: []models.OrderItem{
				{Quantity: 2, Price: 100, FinalPrice: 100},
			},
			cfg:  models.TaxConfig{Rate: 5, Included: false},
			want: models.Pricing{Subtotal: 200, TaxAmount: 10, DiscountAmount: 0, TotalAmount: 210},
		},
		{
			name: "inclusive tax reports zero tax amount",
			items: []models.OrderItem{
				{Quantity: 2, Price: 100, FinalPrice: 100},
			},
			cfg:  models.TaxConfig{Rate: 5, Included: true},
			want: models.Pricing{Subtotal: 200, TaxAmount: 0, DiscountAmount: 0, TotalAmount: 200},
		},
		{
			name: "discounts accumulate per quantity",
			items: []models.OrderItem{
				{Quantity: 3, Price: 120, FinalPrice: 100},
				{Quantity: 1, Price: 50, FinalPrice: 50},
			},
			cfg:  models.TaxConfig{Rate: 0, Included: false},
			want: models.Pricing{Subtotal: 350, TaxAmount: 0, DiscountAmount: 60, TotalAmount: 350},
		},
		{
			name: "totals rounded to two decimals",
			items: []models.OrderItem{
				{Quantity: 3, Price: 33.33, FinalPrice: 33.33},
			},
			cfg:  models.TaxConfig{Rate: 7.5, Included: false},
			want: models.Pricing{Subtotal: 99.99, TaxAmount: 7.5, DiscountAmount: 0, TotalAmount: 107.49},
		},
		{
			name:  "empty items price to zero",
			items: nil,
			cfg:   models.TaxConfig{Rate: 18, Included: false},
			want:  models.Pricing{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Price(tt.items, tt.cfg)
			if got != tt.want {
				t.Errorf("Price() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPriceTotalIsSubtotalPlusTax(t *testing.T) {
	items := []models.OrderItem{
		{Quantity: 2, Price: 149.99, FinalPrice: 129.99},
		{Quantity: 1, Price: 89.5, FinalPrice: 89.5},
		{Quantity: 4, Price: 19.75, FinalPrice: 19.75},
	}
	got := Price(items, models.TaxConfig{Rate: 12.5, Included: false})

	if got.TotalAmount != roundMoney(got.Subtotal+got.TaxAmount) {
		t.Errorf("total %v != subtotal %v + tax %v", got.TotalAmount, got.Subtotal, got.TaxAmount)
	}
	if got.Subtotal <= 0 || got.TaxAmount <= 0 {
		t.Errorf("expected positive subtotal and tax, got %+v", got)
	}
}

func TestMinorUnits(t *testing.T) {
	tests := []struct {
		amount float64
		want   int64
	}{
		{210, 21000},
		{107.49, 10749},
		{0.1, 10},
		{0, 0},
	}
	for _, tt := range tests {
		if got := MinorUnits(tt.amount); got != tt.want {
			t.Errorf("MinorUnits(%v) = %d, want %d", tt.amount, got, tt.want)
		}
	}
}

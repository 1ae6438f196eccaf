package service

import (
	"math"

	"github.com/scandine/ordering-service/internal/models"
)

// Price computes the money breakdown for a list of resolved lines. It is a
// pure function and must be re-run whenever the line items change.
func Price(items []models.OrderItem, cfg models.TaxConfig) models.Pricing {
	var p models.Pricing
	for _, item := range items {
		qty := float64(item.Quantity)
		p.Subtotal += item.FinalPrice * qty
		p.DiscountAmount += (item.Price - item.FinalPrice) * qty
	}

	if !cfg.Included {
		p.TaxAmount = p.Subtotal * cfg.Rate / 100
	}
	p.TotalAmount = p.Subtotal + p.TaxAmount

	p.Subtotal = roundMoney(p.Subtotal)
	p.TaxAmount = roundMoney(p.TaxAmount)
	p.DiscountAmount = roundMoney(p.DiscountAmount)
	p.TotalAmount = roundMoney(p.TotalAmount)
	return p
}

func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}

// MinorUnits converts a money amount to the gateway's integer minor units
func MinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

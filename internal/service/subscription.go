package service

import (
	"context"
	"time"

	"github.com/scandine/ordering-service/internal/models"
)

// SubscriptionPolicy enforces plan limits at order time: an inactive
// subscription blocks new orders, and plans with a monthly cap stop
// accepting once the cap is reached.
type SubscriptionPolicy struct{}

// NewSubscriptionPolicy creates the default plan policy
func NewSubscriptionPolicy() *SubscriptionPolicy {
	return &SubscriptionPolicy{}
}

// CanReceiveOrders reports whether the restaurant may accept another order
func (p *SubscriptionPolicy) CanReceiveOrders(ctx context.Context, store OrderStore, restaurant *models.Restaurant) error {
	if !restaurant.SubscriptionActive {
		return models.NewConflictError("%s cannot accept orders on its current plan", restaurant.Name)
	}
	if restaurant.MonthlyOrderLimit <= 0 {
		return nil
	}

	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	count, err := store.CountOrdersSince(ctx, restaurant.ID, monthStart)
	if err != nil {
		return err
	}
	if count >= restaurant.MonthlyOrderLimit {
		return models.NewConflictError("%s reached its monthly order limit", restaurant.Name)
	}
	return nil
}

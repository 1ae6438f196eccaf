package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/scandine/ordering-service/internal/models"
)

// createPaymentForOrder records a pending payment attempt mirroring the
// order's pricing snapshot and registers it with the external gateway. Runs
// inside the order-creation transaction: a gateway failure rolls everything
// back.
func (s *OrderService) createPaymentForOrder(ctx context.Context, store OrderStore, order *models.Order) (*models.Payment, error) {
	if order.PaymentMethod != models.PaymentMethodOnline {
		return nil, models.NewValidationError("payments are only created for online orders")
	}

	payment := &models.Payment{
		ID:             uuid.New(),
		OrderID:        order.ID,
		Method:         order.PaymentMethod,
		Status:         models.PaymentStatusPending,
		Subtotal:       order.Subtotal,
		TaxAmount:      order.TaxAmount,
		DiscountAmount: order.DiscountAmount,
		Amount:         order.TotalAmount,
		Gateway:        s.gateway.Name(),
	}
	if err := store.InsertPayment(ctx, payment); err != nil {
		return nil, err
	}

	receipt := fmt.Sprintf("order_%d", order.OrderNo)
	notes := map[string]string{
		"order_id":      order.ID.String(),
		"restaurant_id": order.RestaurantID.String(),
	}
	gatewayOrderID, err := s.gateway.CreateRemoteOrder(ctx, MinorUnits(order.TotalAmount), s.gateway.Currency(), receipt, notes)
	if err != nil {
		return nil, models.NewGatewayError("payment gateway rejected the order", err)
	}

	payment.GatewayOrderID = &gatewayOrderID
	if err := store.UpdatePayment(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// syncPendingOnItemsChange updates the amounts of a still-pending payment in
// place after the order's items changed. No new payment record is created.
func syncPendingOnItemsChange(ctx context.Context, store OrderStore, orderID uuid.UUID, pricing models.Pricing) error {
	payment, err := store.GetPendingPayment(ctx, orderID)
	if err != nil {
		return err
	}
	if payment == nil {
		return nil
	}

	payment.Subtotal = pricing.Subtotal
	payment.TaxAmount = pricing.TaxAmount
	payment.DiscountAmount = pricing.DiscountAmount
	payment.Amount = pricing.TotalAmount
	return store.UpdatePayment(ctx, payment)
}

// TogglePaidStatus flips the paid flag of a cash order. When markCompleted is
// set and the order is being marked paid, the order is also moved to
// completed and its table released.
func (s *OrderService) TogglePaidStatus(ctx context.Context, restaurantSlug string, orderID uuid.UUID, actor Actor, markCompleted bool) (*models.Order, error) {
	var updated *models.Order

	err := s.store.RunInTx(ctx, func(store OrderStore) error {
		restaurant, err := store.GetRestaurantBySlug(ctx, restaurantSlug)
		if err != nil {
			return err
		}
		if err := requireMember(restaurant, actor); err != nil {
			return err
		}
		order, err := store.GetOrder(ctx, restaurant.ID, orderID)
		if err != nil {
			return err
		}

		if order.PaymentMethod != models.PaymentMethodCash {
			return models.NewValidationError("paid status can only be toggled for cash orders")
		}
		if order.Status.IsTerminal() {
			return models.NewConflictError("order is %s and can no longer change", order.Status)
		}

		order.IsPaid = !order.IsPaid

		if order.IsPaid && markCompleted && order.Status != models.OrderStatusCompleted {
			order.Status = models.OrderStatusCompleted
			if err := store.FreeTable(ctx, order.TableID); err != nil {
				return err
			}
		}

		if err := store.UpdateOrderState(ctx, order); err != nil {
			return err
		}
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.emitOrderEvent(ctx, updated, "order.paid")
	return updated, nil
}

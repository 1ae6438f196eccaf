package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/scandine/ordering-service/internal/models"
)

// OrderService owns the order lifecycle: transactional creation and update,
// status transitions, cash payment toggling and reads.
type OrderService struct {
	store    Store
	gateway  PaymentGateway
	notifier Notifier
	plan     PlanPolicy
}

// NewOrderService creates a new order service
func NewOrderService(store Store, gateway PaymentGateway, notifier Notifier, plan PlanPolicy) *OrderService {
	return &OrderService{
		store:    store,
		gateway:  gateway,
		notifier: notifier,
		plan:     plan,
	}
}

// CreateOrderResult carries the created order plus, for online orders, the
// gateway reference the client needs to open the payment flow.
type CreateOrderResult struct {
	Order          *models.Order `json:"order"`
	GatewayOrderID *string       `json:"gateway_order_id,omitempty"`
	Replayed       bool          `json:"-"`
}

// CreateOrder places a dine-in order for a table identified by its QR slug.
// Everything up to the commit runs in one transaction: validation, pricing,
// the order-number increment, the order insert, table acquisition and the
// gateway registration for online payment. On any failure no partial state
// survives. The staff notification is emitted only after the commit.
func (s *OrderService) CreateOrder(ctx context.Context, restaurantSlug, tableQRSlug string, req models.CreateOrderRequest, idempotencyKey string) (*CreateOrderResult, error) {
	if req.PaymentMethod != models.PaymentMethodOnline && req.PaymentMethod != models.PaymentMethodCash {
		return nil, models.NewValidationError("payment method must be online or cash")
	}
	if len(req.FoodItems) == 0 {
		return nil, models.NewValidationError("order must contain at least one item")
	}

	var result CreateOrderResult
	var table *models.Table

	err := s.store.RunInTx(ctx, func(store OrderStore) error {
		restaurant, err := store.GetRestaurantBySlug(ctx, restaurantSlug)
		if err != nil {
			return err
		}
		if !restaurant.IsOpen {
			return models.NewConflictError("%s is not accepting orders right now", restaurant.Name)
		}

		// A client retrying after a timeout re-sends its idempotency key
		// and gets the originally created order back.
		if idempotencyKey != "" {
			existing, err := store.GetOrderByIdempotencyKey(ctx, restaurant.ID, idempotencyKey)
			if err != nil {
				return err
			}
			if existing != nil {
				result.Order = existing
				result.Replayed = true
				result.GatewayOrderID = pendingGatewayRef(existing)
				return nil
			}
		}

		table, err = store.GetTableForUpdate(ctx, restaurant.ID, tableQRSlug)
		if err != nil {
			return err
		}
		if table.IsOccupied {
			return models.NewConflictError("table %s already has an active order", table.TableName)
		}

		items, err := ValidateLines(ctx, store, restaurant.ID, req.FoodItems)
		if err != nil {
			return err
		}

		if err := s.plan.CanReceiveOrders(ctx, store, restaurant); err != nil {
			return err
		}

		pricing := Price(items, restaurant.TaxConfig())

		orderNo, err := store.NextOrderNo(ctx, restaurant.ID)
		if err != nil {
			return err
		}

		order := &models.Order{
			ID:             uuid.New(),
			RestaurantID:   restaurant.ID,
			TableID:        table.ID,
			OrderNo:        orderNo,
			Status:         models.OrderStatusPending,
			IsPaid:         false,
			PaymentMethod:  req.PaymentMethod,
			Subtotal:       pricing.Subtotal,
			TaxAmount:      pricing.TaxAmount,
			DiscountAmount: pricing.DiscountAmount,
			TotalAmount:    pricing.TotalAmount,
			CustomerName:   req.CustomerName,
			CustomerPhone:  req.CustomerPhone,
			Notes:          req.Notes,
			Items:          items,
		}
		if idempotencyKey != "" {
			order.IdempotencyKey = &idempotencyKey
		}

		if err := store.InsertOrder(ctx, order); err != nil {
			return err
		}

		if err := store.OccupyTable(ctx, table.ID, order.ID); err != nil {
			return err
		}

		if req.PaymentMethod == models.PaymentMethodOnline {
			payment, err := s.createPaymentForOrder(ctx, store, order)
			if err != nil {
				return err
			}
			order.Payments = append(order.Payments, *payment)
			result.GatewayOrderID = payment.GatewayOrderID
		}

		result.Order = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !result.Replayed {
		s.notifyNewOrder(result.Order, table)
	}
	return &result, nil
}

// requireMember rejects actors whose token belongs to another restaurant.
// Role grants nothing across tenants; an owner elsewhere is a stranger here.
func requireMember(restaurant *models.Restaurant, actor Actor) error {
	if actor.RestaurantID != restaurant.ID {
		return models.NewForbiddenError("not a member of this restaurant")
	}
	return nil
}

// UpdateOrder replaces the line items of a pending or preparing order,
// re-prices it and syncs any still-pending payment, all in one transaction.
func (s *OrderService) UpdateOrder(ctx context.Context, restaurantSlug string, orderID uuid.UUID, req models.UpdateOrderRequest, actor Actor) (*models.Order, error) {
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
		if !order.CanEditItems() {
			return models.NewConflictError("order is %s and its items can no longer be edited", order.Status)
		}

		items, err := ValidateLines(ctx, store, restaurant.ID, req.FoodItems)
		if err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = order.ID
		}

		pricing := Price(items, restaurant.TaxConfig())

		order.Items = items
		order.Subtotal = pricing.Subtotal
		order.TaxAmount = pricing.TaxAmount
		order.DiscountAmount = pricing.DiscountAmount
		order.TotalAmount = pricing.TotalAmount
		if req.Notes != nil {
			order.Notes = req.Notes
		}

		if err := store.ReplaceOrderItems(ctx, order.ID, items); err != nil {
			return err
		}
		if err := store.UpdateOrderTotals(ctx, order); err != nil {
			return err
		}
		if err := syncPendingOnItemsChange(ctx, store, order.ID, pricing); err != nil {
			return err
		}

		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.emitOrderEvent(ctx, updated, "order.update")
	return updated, nil
}

// TransitionStatus moves an order through its lifecycle on behalf of a staff
// member or owner. Terminal transitions release the order's table.
func (s *OrderService) TransitionStatus(ctx context.Context, restaurantSlug string, orderID uuid.UUID, newStatus models.OrderStatus, actor Actor) (*models.Order, error) {
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

		if err := checkTransition(order, newStatus, actor); err != nil {
			return err
		}
		if applyTransition(order, newStatus, actor) {
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

	s.emitOrderEvent(ctx, updated, "order.status")
	return updated, nil
}

// GetOrder retrieves one order scoped to a restaurant slug
func (s *OrderService) GetOrder(ctx context.Context, restaurantSlug string, orderID uuid.UUID, actor Actor) (*models.Order, error) {
	restaurant, err := s.store.GetRestaurantBySlug(ctx, restaurantSlug)
	if err != nil {
		return nil, err
	}
	if err := requireMember(restaurant, actor); err != nil {
		return nil, err
	}
	return s.store.GetOrder(ctx, restaurant.ID, orderID)
}

// ListOrders lists a restaurant's orders, optionally filtered by status
func (s *OrderService) ListOrders(ctx context.Context, restaurantSlug string, status *models.OrderStatus, limit, offset int, actor Actor) ([]models.Order, error) {
	restaurant, err := s.store.GetRestaurantBySlug(ctx, restaurantSlug)
	if err != nil {
		return nil, err
	}
	if err := requireMember(restaurant, actor); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.store.ListOrders(ctx, restaurant.ID, status, limit, offset)
}

// StaffRoom is the notification room for a restaurant's kitchen staff
func StaffRoom(restaurantID uuid.UUID) string {
	return fmt.Sprintf("restaurant_%s_staff", restaurantID)
}

// OwnerRoom is the notification room for a restaurant's owner
func OwnerRoom(restaurantID uuid.UUID) string {
	return fmt.Sprintf("restaurant_%s_owner", restaurantID)
}

// notifyNewOrder pushes the denormalized summary of a freshly committed
// order. Delivery failure never affects the request that created the order.
func (s *OrderService) notifyNewOrder(order *models.Order, table *models.Table) {
	if s.notifier == nil {
		return
	}
	summary := models.OrderSummary{
		OrderID:       order.ID,
		OrderNo:       order.OrderNo,
		Status:        order.Status,
		IsPaid:        order.IsPaid,
		PaymentMethod: order.PaymentMethod,
		TotalAmount:   order.TotalAmount,
		Items:         order.Items,
	}
	if table != nil {
		summary.TableName = table.TableName
	}
	s.notifier.Emit(StaffRoom(order.RestaurantID), "order.new", summary)
	s.notifier.Emit(OwnerRoom(order.RestaurantID), "order.new", summary)
}

// emitOrderEvent pushes an order change to both restaurant rooms, resolving
// the table name for display when possible.
func (s *OrderService) emitOrderEvent(ctx context.Context, order *models.Order, event string) {
	if s.notifier == nil || order == nil {
		return
	}
	summary := models.OrderSummary{
		OrderID:       order.ID,
		OrderNo:       order.OrderNo,
		Status:        order.Status,
		IsPaid:        order.IsPaid,
		PaymentMethod: order.PaymentMethod,
		TotalAmount:   order.TotalAmount,
		Items:         order.Items,
	}
	if table, err := s.store.GetTableByID(ctx, order.TableID); err == nil {
		summary.TableName = table.TableName
	} else {
		log.Printf("failed to resolve table for notification: %v", err)
	}
	s.notifier.Emit(StaffRoom(order.RestaurantID), event, summary)
	s.notifier.Emit(OwnerRoom(order.RestaurantID), event, summary)
}

// pendingGatewayRef extracts the gateway reference from a replayed order's
// pending payment, if any.
func pendingGatewayRef(order *models.Order) *string {
	for i := range order.Payments {
		p := &order.Payments[i]
		if p.Status == models.PaymentStatusPending && p.GatewayOrderID != nil {
			return p.GatewayOrderID
		}
	}
	return nil
}

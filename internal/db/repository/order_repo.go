package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/scandine/ordering-service/internal/models"
)

// OrderRepository handles order data access
type OrderRepository struct {
	q sqlx.ExtContext
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(q sqlx.ExtContext) *OrderRepository {
	return &OrderRepository{q: q}
}

// NextOrderNo atomically increments and returns the restaurant's order
// counter. The counter row is the single source of order numbers; numbers
// are never derived by counting orders, so deletion or races cannot cause
// reuse. The increment participates in the caller's transaction and rolls
// back with it.
func (r *OrderRepository) NextOrderNo(ctx context.Context, restaurantID uuid.UUID) (int64, error) {
	query := `
		INSERT INTO order_counters (restaurant_id, order_no)
		VALUES ($1, 1)
		ON CONFLICT (restaurant_id)
		DO UPDATE SET order_no = order_counters.order_no + 1
		RETURNING order_no
	`

	var orderNo int64
	err := sqlx.GetContext(ctx, r.q, &orderNo, query, restaurantID)
	if err != nil {
		return 0, fmt.Errorf("failed to get next order number: %w", err)
	}

	return orderNo, nil
}

// Insert creates a new order with its items
func (r *OrderRepository) Insert(ctx context.Context, order *models.Order) error {
	query := `
		INSERT INTO orders (id, restaurant_id, table_id, order_no, status, is_paid,
		                    payment_method, kitchen_staff_id, subtotal, tax_amount,
		                    discount_amount, total_amount, customer_name, customer_phone,
		                    notes, idempotency_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING created_at, updated_at
	`

	err := sqlx.GetContext(ctx, r.q, order, query,
		order.ID,
		order.RestaurantID,
		order.TableID,
		order.OrderNo,
		order.Status,
		order.IsPaid,
		order.PaymentMethod,
		order.KitchenStaffID,
		order.Subtotal,
		order.TaxAmount,
		order.DiscountAmount,
		order.TotalAmount,
		order.CustomerName,
		order.CustomerPhone,
		order.Notes,
		order.IdempotencyKey,
	)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	for i := range order.Items {
		order.Items[i].OrderID = order.ID
		if err := r.insertItem(ctx, &order.Items[i]); err != nil {
			return err
		}
	}

	return nil
}

func (r *OrderRepository) insertItem(ctx context.Context, item *models.OrderItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}

	query := `
		INSERT INTO order_items (id, order_id, food_item_id, name, variant_name,
		                         quantity, price, final_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.q.ExecContext(ctx, query,
		item.ID,
		item.OrderID,
		item.FoodItemID,
		item.Name,
		item.VariantName,
		item.Quantity,
		item.Price,
		item.FinalPrice,
	)
	if err != nil {
		return fmt.Errorf("failed to create order item: %w", err)
	}
	return nil
}

// ReplaceItems swaps an order's line list for a new one
func (r *OrderRepository) ReplaceItems(ctx context.Context, orderID uuid.UUID, items []models.OrderItem) error {
	if _, err := r.q.ExecContext(ctx, `DELETE FROM order_items WHERE order_id = $1`, orderID); err != nil {
		return fmt.Errorf("failed to clear order items: %w", err)
	}

	for i := range items {
		items[i].OrderID = orderID
		if err := r.insertItem(ctx, &items[i]); err != nil {
			return err
		}
	}
	return nil
}

// UpdateTotals persists recomputed money fields and notes after an item edit
func (r *OrderRepository) UpdateTotals(ctx context.Context, order *models.Order) error {
	query := `
		UPDATE orders
		SET subtotal = $2, tax_amount = $3, discount_amount = $4,
		    total_amount = $5, notes = $6, updated_at = NOW()
		WHERE id = $1
	`

	_, err := r.q.ExecContext(ctx, query,
		order.ID,
		order.Subtotal,
		order.TaxAmount,
		order.DiscountAmount,
		order.TotalAmount,
		order.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to update order totals: %w", err)
	}
	return nil
}

// UpdateState persists status, paid flag and the claiming staff member
func (r *OrderRepository) UpdateState(ctx context.Context, order *models.Order) error {
	query := `
		UPDATE orders
		SET status = $2, is_paid = $3, kitchen_staff_id = $4, updated_at = NOW()
		WHERE id = $1
	`

	_, err := r.q.ExecContext(ctx, query,
		order.ID,
		order.Status,
		order.IsPaid,
		order.KitchenStaffID,
	)
	if err != nil {
		return fmt.Errorf("failed to update order state: %w", err)
	}
	return nil
}

// GetByID retrieves an order with its items and payment attempts, scoped to
// a restaurant
func (r *OrderRepository) GetByID(ctx context.Context, restaurantID, orderID uuid.UUID) (*models.Order, error) {
	query := `
		SELECT id, restaurant_id, table_id, order_no, status, is_paid,
		       payment_method, kitchen_staff_id, subtotal, tax_amount,
		       discount_amount, total_amount, customer_name, customer_phone,
		       notes, idempotency_key, created_at, updated_at
		FROM orders
		WHERE id = $1 AND restaurant_id = $2
	`

	var order models.Order
	err := sqlx.GetContext(ctx, r.q, &order, query, orderID, restaurantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.NewNotFoundError("order not found")
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if err := r.loadRelations(ctx, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// GetByIdempotencyKey retrieves the order a previous attempt with the same
// key created, or nil when the key is unused.
func (r *OrderRepository) GetByIdempotencyKey(ctx context.Context, restaurantID uuid.UUID, key string) (*models.Order, error) {
	query := `
		SELECT id, restaurant_id, table_id, order_no, status, is_paid,
		       payment_method, kitchen_staff_id, subtotal, tax_amount,
		       discount_amount, total_amount, customer_name, customer_phone,
		       notes, idempotency_key, created_at, updated_at
		FROM orders
		WHERE restaurant_id = $1 AND idempotency_key = $2
	`

	var order models.Order
	err := sqlx.GetContext(ctx, r.q, &order, query, restaurantID, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get order by idempotency key: %w", err)
	}

	if err := r.loadRelations(ctx, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// List retrieves a restaurant's orders, newest first
func (r *OrderRepository) List(ctx context.Context, restaurantID uuid.UUID, status *models.OrderStatus, limit, offset int) ([]models.Order, error) {
	query := `
		SELECT id, restaurant_id, table_id, order_no, status, is_paid,
		       payment_method, kitchen_staff_id, subtotal, tax_amount,
		       discount_amount, total_amount, customer_name, customer_phone,
		       notes, idempotency_key, created_at, updated_at
		FROM orders
		WHERE restaurant_id = $1
	`
	args := []interface{}{restaurantID}

	if status != nil {
		query += ` AND status = $2`
		args = append(args, *status)
	}

	query += fmt.Sprintf(" ORDER BY order_no DESC LIMIT %d OFFSET %d", limit, offset)

	var orders []models.Order
	err := sqlx.SelectContext(ctx, r.q, &orders, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	for i := range orders {
		items, err := r.getItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}

	return orders, nil
}

// CountSince counts orders created at or after the given time
func (r *OrderRepository) CountSince(ctx context.Context, restaurantID uuid.UUID, since time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM orders WHERE restaurant_id = $1 AND created_at >= $2`

	var count int
	err := sqlx.GetContext(ctx, r.q, &count, query, restaurantID, since)
	if err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return count, nil
}

func (r *OrderRepository) loadRelations(ctx context.Context, order *models.Order) error {
	items, err := r.getItems(ctx, order.ID)
	if err != nil {
		return err
	}
	order.Items = items

	payments, err := r.getPayments(ctx, order.ID)
	if err != nil {
		return err
	}
	order.Payments = payments
	return nil
}

func (r *OrderRepository) getItems(ctx context.Context, orderID uuid.UUID) ([]models.OrderItem, error) {
	query := `
		SELECT id, order_id, food_item_id, name, variant_name, quantity, price, final_price
		FROM order_items
		WHERE order_id = $1
	`

	var items []models.OrderItem
	err := sqlx.SelectContext(ctx, r.q, &items, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order items: %w", err)
	}
	return items, nil
}

func (r *OrderRepository) getPayments(ctx context.Context, orderID uuid.UUID) ([]models.Payment, error) {
	query := `
		SELECT id, order_id, method, status, subtotal, tax_amount, discount_amount,
		       amount, gateway, gateway_order_id, created_at, updated_at
		FROM payments
		WHERE order_id = $1
		ORDER BY created_at ASC
	`

	var payments []models.Payment
	err := sqlx.SelectContext(ctx, r.q, &payments, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get payments: %w", err)
	}
	return payments, nil
}

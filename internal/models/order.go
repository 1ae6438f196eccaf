package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus represents the status of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusServed    OrderStatus = "served"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// IsTerminal reports whether the status permits no further changes
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// IsValid reports whether s is a known order status
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPreparing, OrderStatusReady,
		OrderStatusServed, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// PaymentMethod represents how an order is paid
type PaymentMethod string

const (
	PaymentMethodOnline PaymentMethod = "online"
	PaymentMethodCash   PaymentMethod = "cash"
)

// Order represents one dine-in transaction
type Order struct {
	ID             uuid.UUID     `db:"id" json:"id"`
	RestaurantID   uuid.UUID     `db:"restaurant_id" json:"restaurant_id"`
	TableID        uuid.UUID     `db:"table_id" json:"table_id"`
	OrderNo        int64         `db:"order_no" json:"order_no"`
	Status         OrderStatus   `db:"status" json:"status"`
	IsPaid         bool          `db:"is_paid" json:"is_paid"`
	PaymentMethod  PaymentMethod `db:"payment_method" json:"payment_method"`
	KitchenStaffID *uuid.UUID    `db:"kitchen_staff_id" json:"kitchen_staff_id"`
	Subtotal       float64       `db:"subtotal" json:"subtotal"`
	TaxAmount      float64       `db:"tax_amount" json:"tax_amount"`
	DiscountAmount float64       `db:"discount_amount" json:"discount_amount"`
	TotalAmount    float64       `db:"total_amount" json:"total_amount"`
	CustomerName   *string       `db:"customer_name" json:"customer_name"`
	CustomerPhone  *string       `db:"customer_phone" json:"customer_phone"`
	Notes          *string       `db:"notes" json:"notes"`
	IdempotencyKey *string       `db:"idempotency_key" json:"-"`
	CreatedAt      time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time     `db:"updated_at" json:"updated_at"`

	// Not stored directly in the database
	Items    []OrderItem `db:"-" json:"items,omitempty"`
	Payments []Payment   `db:"-" json:"payments,omitempty"`
}

// CanEditItems reports whether the line items may still be changed
func (o *Order) CanEditItems() bool {
	return o.Status == OrderStatusPending || o.Status == OrderStatusPreparing
}

// OrderItem is one line of an order with immutable price snapshots
type OrderItem struct {
	ID         uuid.UUID `db:"id" json:"id"`
	OrderID    uuid.UUID `db:"order_id" json:"order_id"`
	FoodItemID uuid.UUID `db:"food_item_id" json:"food_item_id"`
	// Name is snapshotted at order time so menu edits don't rewrite history
	Name        string  `db:"name" json:"name"`
	VariantName *string `db:"variant_name" json:"variant_name"`
	Quantity    int     `db:"quantity" json:"quantity"`
	Price       float64 `db:"price" json:"price"`
	FinalPrice  float64 `db:"final_price" json:"final_price"`
}

// Pricing is the money breakdown computed from a line-item list
type Pricing struct {
	Subtotal       float64 `json:"subtotal"`
	TaxAmount      float64 `json:"tax_amount"`
	DiscountAmount float64 `json:"discount_amount"`
	TotalAmount    float64 `json:"total_amount"`
}

// LineRequest is one requested line in a create/update order call
type LineRequest struct {
	FoodItemID  uuid.UUID `json:"food_item_id"`
	VariantName *string   `json:"variant_name"`
	Quantity    int       `json:"quantity"`
}

// CreateOrderRequest is the body for order creation
type CreateOrderRequest struct {
	FoodItems     []LineRequest `json:"food_items"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	Notes         *string       `json:"notes"`
	CustomerName  *string       `json:"customer_name"`
	CustomerPhone *string       `json:"customer_phone"`
}

// UpdateOrderRequest is the body for editing a pending/preparing order
type UpdateOrderRequest struct {
	FoodItems []LineRequest `json:"food_items"`
	Notes     *string       `json:"notes"`
}

// OrderSummary is the denormalized payload pushed to staff clients
type OrderSummary struct {
	OrderID       uuid.UUID     `json:"order_id"`
	OrderNo       int64         `json:"order_no"`
	Status        OrderStatus   `json:"status"`
	IsPaid        bool          `json:"is_paid"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	TotalAmount   float64       `json:"total_amount"`
	TableName     string        `json:"table_name"`
	Items         []OrderItem   `json:"items"`
}

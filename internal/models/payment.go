package models

import (
	"time"

	"github.com/google/uuid"
)

// PaymentStatus represents the state of one payment attempt
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusPaid      PaymentStatus = "paid"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

// IsTerminal reports whether the payment can no longer change
func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentStatusPaid || s == PaymentStatusFailed || s == PaymentStatusCancelled
}

// Payment is one attempt to collect money for an order. Amount fields are
// snapshots of the order at the time of the attempt.
type Payment struct {
	ID             uuid.UUID     `db:"id" json:"id"`
	OrderID        uuid.UUID     `db:"order_id" json:"order_id"`
	Method         PaymentMethod `db:"method" json:"method"`
	Status         PaymentStatus `db:"status" json:"status"`
	Subtotal       float64       `db:"subtotal" json:"subtotal"`
	TaxAmount      float64       `db:"tax_amount" json:"tax_amount"`
	DiscountAmount float64       `db:"discount_amount" json:"discount_amount"`
	Amount         float64       `db:"amount" json:"amount"`
	Gateway        string        `db:"gateway" json:"gateway"`
	GatewayOrderID *string       `db:"gateway_order_id" json:"gateway_order_id"`
	CreatedAt      time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time     `db:"updated_at" json:"updated_at"`
}

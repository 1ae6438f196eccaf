package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/scandine/ordering-service/internal/models"
)

// PaymentRepository handles payment attempt data access
type PaymentRepository struct {
	q sqlx.ExtContext
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(q sqlx.ExtContext) *PaymentRepository {
	return &PaymentRepository{q: q}
}

// Insert records a new payment attempt
func (r *PaymentRepository) Insert(ctx context.Context, payment *models.Payment) error {
	query := `
		INSERT INTO payments (id, order_id, method, status, subtotal, tax_amount,
		                      discount_amount, amount, gateway, gateway_order_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at
	`

	err := sqlx.GetContext(ctx, r.q, payment, query,
		payment.ID,
		payment.OrderID,
		payment.Method,
		payment.Status,
		payment.Subtotal,
		payment.TaxAmount,
		payment.DiscountAmount,
		payment.Amount,
		payment.Gateway,
		payment.GatewayOrderID,
	)
	if err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

// Update persists amount, status and gateway reference changes in place
func (r *PaymentRepository) Update(ctx context.Context, payment *models.Payment) error {
	query := `
		UPDATE payments
		SET status = $2, subtotal = $3, tax_amount = $4, discount_amount = $5,
		    amount = $6, gateway_order_id = $7, updated_at = NOW()
		WHERE id = $1
	`

	_, err := r.q.ExecContext(ctx, query,
		payment.ID,
		payment.Status,
		payment.Subtotal,
		payment.TaxAmount,
		payment.DiscountAmount,
		payment.Amount,
		payment.GatewayOrderID,
	)
	if err != nil {
		return fmt.Errorf("failed to update payment: %w", err)
	}
	return nil
}

// GetPendingByOrder returns the order's pending payment, or nil when none
// exists. At most one pending payment exists per order in steady state.
func (r *PaymentRepository) GetPendingByOrder(ctx context.Context, orderID uuid.UUID) (*models.Payment, error) {
	query := `
		SELECT id, order_id, method, status, subtotal, tax_amount, discount_amount,
		       amount, gateway, gateway_order_id, created_at, updated_at
		FROM payments
		WHERE order_id = $1 AND status = $2
		ORDER BY created_at DESC
		LIMIT 1
	`

	var payment models.Payment
	err := sqlx.GetContext(ctx, r.q, &payment, query, orderID, models.PaymentStatusPending)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get pending payment: %w", err)
	}
	return &payment, nil
}

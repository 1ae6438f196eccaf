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

// TableRepository handles table data access and occupancy
type TableRepository struct {
	q sqlx.ExtContext
}

// NewTableRepository creates a new table repository
func NewTableRepository(q sqlx.ExtContext) *TableRepository {
	return &TableRepository{q: q}
}

// GetByQRSlugForUpdate retrieves a table by its QR slug with a row lock, so
// two transactions racing for the same table serialize on the check. QR
// slugs are only unique per restaurant, never globally.
func (r *TableRepository) GetByQRSlugForUpdate(ctx context.Context, restaurantID uuid.UUID, qrSlug string) (*models.Table, error) {
	query := `
		SELECT id, restaurant_id, table_name, seat_count, qr_slug,
		       is_occupied, current_order_id, created_at, updated_at
		FROM tables
		WHERE restaurant_id = $1 AND qr_slug = $2
		FOR UPDATE
	`

	var table models.Table
	err := sqlx.GetContext(ctx, r.q, &table, query, restaurantID, qrSlug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.NewNotFoundError("table not found")
		}
		return nil, fmt.Errorf("failed to get table: %w", err)
	}

	return &table, nil
}

// GetByID retrieves a table by ID
func (r *TableRepository) GetByID(ctx context.Context, tableID uuid.UUID) (*models.Table, error) {
	query := `
		SELECT id, restaurant_id, table_name, seat_count, qr_slug,
		       is_occupied, current_order_id, created_at, updated_at
		FROM tables
		WHERE id = $1
	`

	var table models.Table
	err := sqlx.GetContext(ctx, r.q, &table, query, tableID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.NewNotFoundError("table not found")
		}
		return nil, fmt.Errorf("failed to get table: %w", err)
	}

	return &table, nil
}

// Occupy marks a table occupied and links the active order. It only touches
// free tables, so a concurrent winner makes the loser's update a no-op that
// is caught here.
func (r *TableRepository) Occupy(ctx context.Context, tableID, orderID uuid.UUID) error {
	query := `
		UPDATE tables
		SET is_occupied = TRUE, current_order_id = $2, updated_at = NOW()
		WHERE id = $1 AND is_occupied = FALSE
	`

	res, err := r.q.ExecContext(ctx, query, tableID, orderID)
	if err != nil {
		return fmt.Errorf("failed to occupy table: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to occupy table: %w", err)
	}
	if affected == 0 {
		return models.NewConflictError("table already has an active order")
	}
	return nil
}

// Free clears a table's occupancy. Freeing an already-free table is a no-op.
func (r *TableRepository) Free(ctx context.Context, tableID uuid.UUID) error {
	query := `
		UPDATE tables
		SET is_occupied = FALSE, current_order_id = NULL, updated_at = NOW()
		WHERE id = $1
	`

	if _, err := r.q.ExecContext(ctx, query, tableID); err != nil {
		return fmt.Errorf("failed to free table: %w", err)
	}
	return nil
}

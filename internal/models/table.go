package models

import (
	"time"

	"github.com/google/uuid"
)

// Table represents a physical seating unit. A table is occupied exactly when
// it is linked to a non-terminal order.
type Table struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	RestaurantID   uuid.UUID  `db:"restaurant_id" json:"restaurant_id"`
	TableName      string     `db:"table_name" json:"table_name"`
	SeatCount      int        `db:"seat_count" json:"seat_count"`
	QRSlug         string     `db:"qr_slug" json:"qr_slug"`
	IsOccupied     bool       `db:"is_occupied" json:"is_occupied"`
	CurrentOrderID *uuid.UUID `db:"current_order_id" json:"current_order_id"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}

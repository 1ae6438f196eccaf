package models

import (
	"time"

	"github.com/google/uuid"
)

// UserRole represents the role of a user within a restaurant
type UserRole string

const (
	RoleOwner UserRole = "owner"
	RoleStaff UserRole = "staff"
)

// User represents a restaurant owner or kitchen staff member
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	RestaurantID uuid.UUID `db:"restaurant_id" json:"restaurant_id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Name         string    `db:"name" json:"name"`
	Role         UserRole  `db:"role" json:"role"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

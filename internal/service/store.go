package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/scandine/ordering-service/internal/models"
)

// MenuStore is the menu lookup surface needed by line validation
type MenuStore interface {
	// GetFoodItem returns the item with its variants, scoped to the
	// restaurant. Returns a not-found AppError when it doesn't exist or
	// belongs to another restaurant.
	GetFoodItem(ctx context.Context, restaurantID, foodItemID uuid.UUID) (*models.FoodItem, error)
}

// OrderStore is the set of data operations the order orchestrator composes.
// Inside RunInTx every method runs against the same transaction.
type OrderStore interface {
	MenuStore

	GetRestaurantBySlug(ctx context.Context, slug string) (*models.Restaurant, error)

	// GetTableForUpdate locks the table row for the duration of the
	// transaction so two concurrent creations cannot both see it free.
	GetTableForUpdate(ctx context.Context, restaurantID uuid.UUID, qrSlug string) (*models.Table, error)
	GetTableByID(ctx context.Context, tableID uuid.UUID) (*models.Table, error)
	OccupyTable(ctx context.Context, tableID, orderID uuid.UUID) error
	// FreeTable is idempotent; freeing an already-free table is a no-op.
	FreeTable(ctx context.Context, tableID uuid.UUID) error

	// NextOrderNo atomically increments and returns the per-restaurant
	// counter. The increment rolls back with the enclosing transaction.
	NextOrderNo(ctx context.Context, restaurantID uuid.UUID) (int64, error)

	InsertOrder(ctx context.Context, order *models.Order) error
	ReplaceOrderItems(ctx context.Context, orderID uuid.UUID, items []models.OrderItem) error
	UpdateOrderTotals(ctx context.Context, order *models.Order) error
	UpdateOrderState(ctx context.Context, order *models.Order) error
	GetOrder(ctx context.Context, restaurantID, orderID uuid.UUID) (*models.Order, error)
	GetOrderByIdempotencyKey(ctx context.Context, restaurantID uuid.UUID, key string) (*models.Order, error)
	ListOrders(ctx context.Context, restaurantID uuid.UUID, status *models.OrderStatus, limit, offset int) ([]models.Order, error)
	CountOrdersSince(ctx context.Context, restaurantID uuid.UUID, since time.Time) (int, error)

	InsertPayment(ctx context.Context, payment *models.Payment) error
	UpdatePayment(ctx context.Context, payment *models.Payment) error
	// GetPendingPayment returns nil when the order has no pending payment
	GetPendingPayment(ctx context.Context, orderID uuid.UUID) (*models.Payment, error)
}

// Store adds the transaction boundary to OrderStore. RunInTx commits when fn
// returns nil and rolls back every write otherwise.
type Store interface {
	OrderStore
	RunInTx(ctx context.Context, fn func(OrderStore) error) error
}

// UserStore is the lookup surface needed by authentication
type UserStore interface {
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// PaymentGateway creates remote payment orders with an external provider.
// Failures are synchronous; the caller aborts its transaction on error.
type PaymentGateway interface {
	CreateRemoteOrder(ctx context.Context, amountMinor int64, currency, receipt string, notes map[string]string) (string, error)
	Name() string
	Currency() string
}

// Notifier pushes events to named rooms, fire-and-forget
type Notifier interface {
	Emit(room, event string, payload interface{})
}

// PlanPolicy decides whether a restaurant may receive orders under its plan
type PlanPolicy interface {
	CanReceiveOrders(ctx context.Context, store OrderStore, restaurant *models.Restaurant) error
}

// Actor identifies who is performing a state-changing operation. The
// restaurant comes from the actor's token, never from the request path.
type Actor struct {
	UserID       uuid.UUID
	RestaurantID uuid.UUID
	Role         models.UserRole
}

// IsOwner reports whether the actor is the restaurant owner
func (a Actor) IsOwner() bool {
	return a.Role == models.RoleOwner
}

package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/scandine/ordering-service/internal/db"
	"github.com/scandine/ordering-service/internal/models"
	"github.com/scandine/ordering-service/internal/service"
)

// Repositories bundles every repository over one querier. Bound to the
// connection pool by default; RunInTx rebinds the whole bundle to a single
// transaction so a unit of work spans repositories atomically.
type Repositories struct {
	database *db.Postgres

	Restaurant *RestaurantRepository
	Menu       *MenuRepository
	Table      *TableRepository
	Order      *OrderRepository
	Payment    *PaymentRepository
	User       *UserRepository
}

// NewRepositories creates the repository bundle over the connection pool
func NewRepositories(database *db.Postgres) *Repositories {
	r := &Repositories{database: database}
	r.bind(database.DB)
	return r
}

func (r *Repositories) bind(q sqlx.ExtContext) {
	r.Restaurant = NewRestaurantRepository(q)
	r.Menu = NewMenuRepository(q)
	r.Table = NewTableRepository(q)
	r.Order = NewOrderRepository(q)
	r.Payment = NewPaymentRepository(q)
	r.User = NewUserRepository(q)
}

// RunInTx runs fn with a bundle bound to one transaction. fn returning an
// error rolls back every write made through the bundle.
func (r *Repositories) RunInTx(ctx context.Context, fn func(service.OrderStore) error) error {
	return r.database.RunInTx(ctx, func(tx *sqlx.Tx) error {
		bound := &Repositories{database: r.database}
		bound.bind(tx)
		return fn(bound)
	})
}

// The delegation below satisfies service.Store and service.UserStore.

func (r *Repositories) GetRestaurantBySlug(ctx context.Context, slug string) (*models.Restaurant, error) {
	return r.Restaurant.GetBySlug(ctx, slug)
}

func (r *Repositories) GetFoodItem(ctx context.Context, restaurantID, foodItemID uuid.UUID) (*models.FoodItem, error) {
	return r.Menu.GetFoodItem(ctx, restaurantID, foodItemID)
}

func (r *Repositories) ListFoodItems(ctx context.Context, restaurantID uuid.UUID) ([]models.FoodItem, error) {
	return r.Menu.ListFoodItems(ctx, restaurantID)
}

func (r *Repositories) GetTableForUpdate(ctx context.Context, restaurantID uuid.UUID, qrSlug string) (*models.Table, error) {
	return r.Table.GetByQRSlugForUpdate(ctx, restaurantID, qrSlug)
}

func (r *Repositories) GetTableByID(ctx context.Context, tableID uuid.UUID) (*models.Table, error) {
	return r.Table.GetByID(ctx, tableID)
}

func (r *Repositories) OccupyTable(ctx context.Context, tableID, orderID uuid.UUID) error {
	return r.Table.Occupy(ctx, tableID, orderID)
}

func (r *Repositories) FreeTable(ctx context.Context, tableID uuid.UUID) error {
	return r.Table.Free(ctx, tableID)
}

func (r *Repositories) NextOrderNo(ctx context.Context, restaurantID uuid.UUID) (int64, error) {
	return r.Order.NextOrderNo(ctx, restaurantID)
}

func (r *Repositories) InsertOrder(ctx context.Context, order *models.Order) error {
	return r.Order.Insert(ctx, order)
}

func (r *Repositories) ReplaceOrderItems(ctx context.Context, orderID uuid.UUID, items []models.OrderItem) error {
	return r.Order.ReplaceItems(ctx, orderID, items)
}

func (r *Repositories) UpdateOrderTotals(ctx context.Context, order *models.Order) error {
	return r.Order.UpdateTotals(ctx, order)
}

func (r *Repositories) UpdateOrderState(ctx context.Context, order *models.Order) error {
	return r.Order.UpdateState(ctx, order)
}

func (r *Repositories) GetOrder(ctx context.Context, restaurantID, orderID uuid.UUID) (*models.Order, error) {
	return r.Order.GetByID(ctx, restaurantID, orderID)
}

func (r *Repositories) GetOrderByIdempotencyKey(ctx context.Context, restaurantID uuid.UUID, key string) (*models.Order, error) {
	return r.Order.GetByIdempotencyKey(ctx, restaurantID, key)
}

func (r *Repositories) ListOrders(ctx context.Context, restaurantID uuid.UUID, status *models.OrderStatus, limit, offset int) ([]models.Order, error) {
	return r.Order.List(ctx, restaurantID, status, limit, offset)
}

func (r *Repositories) CountOrdersSince(ctx context.Context, restaurantID uuid.UUID, since time.Time) (int, error) {
	return r.Order.CountSince(ctx, restaurantID, since)
}

func (r *Repositories) InsertPayment(ctx context.Context, payment *models.Payment) error {
	return r.Payment.Insert(ctx, payment)
}

func (r *Repositories) UpdatePayment(ctx context.Context, payment *models.Payment) error {
	return r.Payment.Update(ctx, payment)
}

func (r *Repositories) GetPendingPayment(ctx context.Context, orderID uuid.UUID) (*models.Payment, error) {
	return r.Payment.GetPendingByOrder(ctx, orderID)
}

func (r *Repositories) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.User.GetByUsername(ctx, username)
}

func (r *Repositories) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return r.User.GetByID(ctx, id)
}

var _ service.Store = (*Repositories)(nil)
var _ service.UserStore = (*Repositories)(nil)
var _ service.CatalogStore = (*Repositories)(nil)

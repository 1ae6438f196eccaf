package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/scandine/ordering-service/internal/models"
)

// fakeStore is an in-memory Store. RunInTx snapshots the state up front and
// restores it when the unit of work fails, mimicking a rollback.
type fakeStore struct {
	mu sync.Mutex

	restaurants map[string]*models.Restaurant
	foodItems   map[uuid.UUID]*models.FoodItem
	tables      map[uuid.UUID]*models.Table
	orders      map[uuid.UUID]*models.Order
	payments    map[uuid.UUID]*models.Payment
	counters    map[uuid.UUID]int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		restaurants: make(map[string]*models.Restaurant),
		foodItems:   make(map[uuid.UUID]*models.FoodItem),
		tables:      make(map[uuid.UUID]*models.Table),
		orders:      make(map[uuid.UUID]*models.Order),
		payments:    make(map[uuid.UUID]*models.Payment),
		counters:    make(map[uuid.UUID]int64),
	}
}

func (s *fakeStore) addRestaurant(r models.Restaurant) *models.Restaurant {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	s.restaurants[r.Slug] = &r
	return &r
}

func (s *fakeStore) addFoodItem(f models.FoodItem) *models.FoodItem {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	s.foodItems[f.ID] = &f
	return &f
}

func (s *fakeStore) addTable(t models.Table) *models.Table {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	s.tables[t.ID] = &t
	return &t
}

func (s *fakeStore) snapshot() *fakeStore {
	snap := newFakeStore()
	for k, v := range s.restaurants {
		c := *v
		snap.restaurants[k] = &c
	}
	for k, v := range s.foodItems {
		c := *v
		snap.foodItems[k] = &c
	}
	for k, v := range s.tables {
		c := *v
		snap.tables[k] = &c
	}
	for k, v := range s.orders {
		c := *v
		c.Items = append([]models.OrderItem(nil), v.Items...)
		c.Payments = append([]models.Payment(nil), v.Payments...)
		snap.orders[k] = &c
	}
	for k, v := range s.payments {
		c := *v
		snap.payments[k] = &c
	}
	for k, v := range s.counters {
		snap.counters[k] = v
	}
	return snap
}

func (s *fakeStore) restore(snap *fakeStore) {
	s.restaurants = snap.restaurants
	s.foodItems = snap.foodItems
	s.tables = snap.tables
	s.orders = snap.orders
	s.payments = snap.payments
	s.counters = snap.counters
}

func (s *fakeStore) RunInTx(ctx context.Context, fn func(OrderStore) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	if err := fn(s); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

func (s *fakeStore) GetRestaurantBySlug(ctx context.Context, slug string) (*models.Restaurant, error) {
	if r, ok := s.restaurants[slug]; ok {
		return r, nil
	}
	return nil, models.NewNotFoundError("restaurant not found")
}

func (s *fakeStore) GetFoodItem(ctx context.Context, restaurantID, foodItemID uuid.UUID) (*models.FoodItem, error) {
	if f, ok := s.foodItems[foodItemID]; ok && f.RestaurantID == restaurantID {
		return f, nil
	}
	return nil, models.NewNotFoundError("food item not found")
}

func (s *fakeStore) GetTableForUpdate(ctx context.Context, restaurantID uuid.UUID, qrSlug string) (*models.Table, error) {
	for _, t := range s.tables {
		if t.RestaurantID == restaurantID && t.QRSlug == qrSlug {
			return t, nil
		}
	}
	return nil, models.NewNotFoundError("table not found")
}

func (s *fakeStore) GetTableByID(ctx context.Context, tableID uuid.UUID) (*models.Table, error) {
	if t, ok := s.tables[tableID]; ok {
		return t, nil
	}
	return nil, models.NewNotFoundError("table not found")
}

func (s *fakeStore) OccupyTable(ctx context.Context, tableID, orderID uuid.UUID) error {
	t, ok := s.tables[tableID]
	if !ok {
		return models.NewNotFoundError("table not found")
	}
	if t.IsOccupied {
		return models.NewConflictError("table already has an active order")
	}
	t.IsOccupied = true
	t.CurrentOrderID = &orderID
	return nil
}

func (s *fakeStore) FreeTable(ctx context.Context, tableID uuid.UUID) error {
	t, ok := s.tables[tableID]
	if !ok {
		return models.NewNotFoundError("table not found")
	}
	t.IsOccupied = false
	t.CurrentOrderID = nil
	return nil
}

func (s *fakeStore) NextOrderNo(ctx context.Context, restaurantID uuid.UUID) (int64, error) {
	s.counters[restaurantID]++
	return s.counters[restaurantID], nil
}

func (s *fakeStore) InsertOrder(ctx context.Context, order *models.Order) error {
	c := *order
	c.Items = append([]models.OrderItem(nil), order.Items...)
	s.orders[order.ID] = &c
	return nil
}

func (s *fakeStore) ReplaceOrderItems(ctx context.Context, orderID uuid.UUID, items []models.OrderItem) error {
	o, ok := s.orders[orderID]
	if !ok {
		return models.NewNotFoundError("order not found")
	}
	o.Items = append([]models.OrderItem(nil), items...)
	return nil
}

func (s *fakeStore) UpdateOrderTotals(ctx context.Context, order *models.Order) error {
	o, ok := s.orders[order.ID]
	if !ok {
		return models.NewNotFoundError("order not found")
	}
	o.Subtotal = order.Subtotal
	o.TaxAmount = order.TaxAmount
	o.DiscountAmount = order.DiscountAmount
	o.TotalAmount = order.TotalAmount
	o.Notes = order.Notes
	return nil
}

func (s *fakeStore) UpdateOrderState(ctx context.Context, order *models.Order) error {
	o, ok := s.orders[order.ID]
	if !ok {
		return models.NewNotFoundError("order not found")
	}
	o.Status = order.Status
	o.IsPaid = order.IsPaid
	o.KitchenStaffID = order.KitchenStaffID
	return nil
}

func (s *fakeStore) GetOrder(ctx context.Context, restaurantID, orderID uuid.UUID) (*models.Order, error) {
	if o, ok := s.orders[orderID]; ok && o.RestaurantID == restaurantID {
		c := *o
		c.Items = append([]models.OrderItem(nil), o.Items...)
		c.Payments = s.paymentsForOrder(orderID)
		return &c, nil
	}
	return nil, models.NewNotFoundError("order not found")
}

func (s *fakeStore) GetOrderByIdempotencyKey(ctx context.Context, restaurantID uuid.UUID, key string) (*models.Order, error) {
	for _, o := range s.orders {
		if o.RestaurantID == restaurantID && o.IdempotencyKey != nil && *o.IdempotencyKey == key {
			c := *o
			c.Items = append([]models.OrderItem(nil), o.Items...)
			c.Payments = s.paymentsForOrder(o.ID)
			return &c, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) ListOrders(ctx context.Context, restaurantID uuid.UUID, status *models.OrderStatus, limit, offset int) ([]models.Order, error) {
	var orders []models.Order
	for _, o := range s.orders {
		if o.RestaurantID != restaurantID {
			continue
		}
		if status != nil && o.Status != *status {
			continue
		}
		orders = append(orders, *o)
	}
	return orders, nil
}

func (s *fakeStore) CountOrdersSince(ctx context.Context, restaurantID uuid.UUID, since time.Time) (int, error) {
	count := 0
	for _, o := range s.orders {
		if o.RestaurantID == restaurantID {
			count++
		}
	}
	return count, nil
}

func (s *fakeStore) InsertPayment(ctx context.Context, payment *models.Payment) error {
	c := *payment
	s.payments[payment.ID] = &c
	return nil
}

func (s *fakeStore) UpdatePayment(ctx context.Context, payment *models.Payment) error {
	if _, ok := s.payments[payment.ID]; !ok {
		return models.NewNotFoundError("payment not found")
	}
	c := *payment
	s.payments[payment.ID] = &c
	return nil
}

func (s *fakeStore) GetPendingPayment(ctx context.Context, orderID uuid.UUID) (*models.Payment, error) {
	for _, p := range s.payments {
		if p.OrderID == orderID && p.Status == models.PaymentStatusPending {
			c := *p
			return &c, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) paymentsForOrder(orderID uuid.UUID) []models.Payment {
	var payments []models.Payment
	for _, p := range s.payments {
		if p.OrderID == orderID {
			payments = append(payments, *p)
		}
	}
	return payments
}

// fakeGateway records calls and can be told to fail
type fakeGateway struct {
	calls    int
	fail     bool
	lastArgs struct {
		amountMinor int64
		currency    string
		receipt     string
	}
}

func (g *fakeGateway) CreateRemoteOrder(ctx context.Context, amountMinor int64, currency, receipt string, notes map[string]string) (string, error) {
	g.calls++
	g.lastArgs.amountMinor = amountMinor
	g.lastArgs.currency = currency
	g.lastArgs.receipt = receipt
	if g.fail {
		return "", fmt.Errorf("gateway unavailable")
	}
	return fmt.Sprintf("gw_%d", g.calls), nil
}

func (g *fakeGateway) Name() string     { return "testpay" }
func (g *fakeGateway) Currency() string { return "INR" }

// fakeNotifier records emitted events
type fakeNotifier struct {
	mu     sync.Mutex
	events []emittedEvent
}

type emittedEvent struct {
	room    string
	event   string
	payload interface{}
}

func (n *fakeNotifier) Emit(room, event string, payload interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, emittedEvent{room: room, event: event, payload: payload})
}

func (n *fakeNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.events)
}

// allowAllPolicy accepts every order
type allowAllPolicy struct{}

func (allowAllPolicy) CanReceiveOrders(ctx context.Context, store OrderStore, r *models.Restaurant) error {
	return nil
}

// denyPolicy rejects every order
type denyPolicy struct{}

func (denyPolicy) CanReceiveOrders(ctx context.Context, store OrderStore, r *models.Restaurant) error {
	return models.NewConflictError("plan limit exceeded")
}

func float64Ptr(v float64) *float64 { return &v }
func strPtr(v string) *string       { return &v }

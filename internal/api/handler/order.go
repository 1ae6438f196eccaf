package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/scandine/ordering-service/internal/api"
	"github.com/scandine/ordering-service/internal/middleware"
	"github.com/scandine/ordering-service/internal/models"
	"github.com/scandine/ordering-service/internal/service"
)

// OrderHandler handles order-related requests
type OrderHandler struct {
	orders *service.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orders *service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// Create places an order for the table identified by its QR slug. Public:
// customers reach it straight from the QR flow, no account required.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	restaurantSlug := r.PathValue("restaurantSlug")
	tableQRSlug := r.PathValue("tableQRSlug")

	var req models.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, models.NewValidationError("invalid request body"))
		return
	}

	idempotencyKey := r.Header.Get("Idempotency-Key")

	result, err := h.orders.CreateOrder(r.Context(), restaurantSlug, tableQRSlug, req, idempotencyKey)
	if err != nil {
		api.Error(w, err)
		return
	}

	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
	}
	api.JSON(w, status, result)
}

// Update replaces the items of a pending or preparing order
func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	restaurantSlug := r.PathValue("restaurantSlug")
	orderID, err := uuid.Parse(r.PathValue("orderID"))
	if err != nil {
		api.Error(w, models.NewValidationError("invalid order ID"))
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req models.UpdateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, models.NewValidationError("invalid request body"))
		return
	}

	order, err := h.orders.UpdateOrder(r.Context(), restaurantSlug, orderID, req, actor)
	if err != nil {
		api.Error(w, err)
		return
	}
	api.JSON(w, http.StatusOK, order)
}

// UpdateStatus transitions an order's lifecycle status
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	restaurantSlug := r.PathValue("restaurantSlug")
	orderID, err := uuid.Parse(r.PathValue("orderID"))
	if err != nil {
		api.Error(w, models.NewValidationError("invalid order ID"))
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		Status models.OrderStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, models.NewValidationError("invalid request body"))
		return
	}

	order, err := h.orders.TransitionStatus(r.Context(), restaurantSlug, orderID, req.Status, actor)
	if err != nil {
		api.Error(w, err)
		return
	}
	api.JSON(w, http.StatusOK, order)
}

// TogglePaid flips the paid flag of a cash order
func (h *OrderHandler) TogglePaid(w http.ResponseWriter, r *http.Request) {
	restaurantSlug := r.PathValue("restaurantSlug")
	orderID, err := uuid.Parse(r.PathValue("orderID"))
	if err != nil {
		api.Error(w, models.NewValidationError("invalid order ID"))
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		MarkCompleted bool `json:"mark_completed"`
	}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.Error(w, models.NewValidationError("invalid request body"))
			return
		}
	}

	order, err := h.orders.TogglePaidStatus(r.Context(), restaurantSlug, orderID, actor, req.MarkCompleted)
	if err != nil {
		api.Error(w, err)
		return
	}
	api.JSON(w, http.StatusOK, order)
}

// Get retrieves one order
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	restaurantSlug := r.PathValue("restaurantSlug")
	orderID, err := uuid.Parse(r.PathValue("orderID"))
	if err != nil {
		api.Error(w, models.NewValidationError("invalid order ID"))
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	order, err := h.orders.GetOrder(r.Context(), restaurantSlug, orderID, actor)
	if err != nil {
		api.Error(w, err)
		return
	}
	api.JSON(w, http.StatusOK, order)
}

// List lists a restaurant's orders, optionally filtered by status
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	restaurantSlug := r.PathValue("restaurantSlug")

	var status *models.OrderStatus
	if s := r.URL.Query().Get("status"); s != "" {
		st := models.OrderStatus(s)
		if !st.IsValid() {
			api.Error(w, models.NewValidationError("unknown order status %q", s))
			return
		}
		status = &st
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	orders, err := h.orders.ListOrders(r.Context(), restaurantSlug, status, limit, offset, actor)
	if err != nil {
		api.Error(w, err)
		return
	}
	api.JSON(w, http.StatusOK, orders)
}

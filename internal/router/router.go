package router

import (
	"net/http"

	"github.com/scandine/ordering-service/internal/api"
	"github.com/scandine/ordering-service/internal/api/handler"
	"github.com/scandine/ordering-service/internal/db"
	"github.com/scandine/ordering-service/internal/middleware"
	"github.com/scandine/ordering-service/internal/service"
	"github.com/scandine/ordering-service/internal/websockets"
)

// Router handles HTTP routing
type Router struct {
	mux *http.ServeMux
}

// Services bundles everything the router wires into handlers
type Services struct {
	Auth    *service.AuthService
	Orders  *service.OrderService
	Catalog *service.CatalogService
}

// New creates a new router
func New(database *db.Postgres, services Services, hub *websockets.Hub) *Router {
	r := &Router{mux: http.NewServeMux()}

	authHandler := handler.NewAuthHandler(services.Auth)
	orderHandler := handler.NewOrderHandler(services.Orders)
	menuHandler := handler.NewMenuHandler(services.Catalog)
	wsHandler := handler.NewWebSocketHandler(services.Auth, hub)

	requireAuth := middleware.Auth(services.Auth)

	// Public routes: the QR flow needs no account
	r.mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	r.mux.HandleFunc("GET /api/menu/{restaurantSlug}", menuHandler.Get)
	r.mux.HandleFunc("POST /api/order/{restaurantSlug}/{tableQRSlug}", orderHandler.Create)
	r.mux.HandleFunc("GET /ws", wsHandler.Serve)

	r.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, req *http.Request) {
		if err := database.HealthCheck(req.Context()); err != nil {
			api.Error(w, err)
			return
		}
		api.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Staff/owner routes
	r.mux.Handle("PATCH /api/order/{restaurantSlug}/{orderID}", requireAuth(http.HandlerFunc(orderHandler.Update)))
	r.mux.Handle("PATCH /api/order/{restaurantSlug}/{orderID}/status", requireAuth(http.HandlerFunc(orderHandler.UpdateStatus)))
	r.mux.Handle("PATCH /api/order/{restaurantSlug}/{orderID}/paid-status", requireAuth(http.HandlerFunc(orderHandler.TogglePaid)))
	r.mux.Handle("GET /api/order/{restaurantSlug}/{orderID}", requireAuth(http.HandlerFunc(orderHandler.Get)))
	r.mux.Handle("GET /api/order/{restaurantSlug}", requireAuth(http.HandlerFunc(orderHandler.List)))

	return r
}

// ServeHTTP implements the http.Handler interface
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	middleware.Logger(r.mux).ServeHTTP(w, req)
}

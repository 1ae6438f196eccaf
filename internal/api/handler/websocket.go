package handler

import (
	"net/http"

	"github.com/scandine/ordering-service/internal/models"
	"github.com/scandine/ordering-service/internal/service"
	"github.com/scandine/ordering-service/internal/websockets"
)

// WebSocketHandler upgrades staff/owner connections and joins them to their
// restaurant's notification rooms.
type WebSocketHandler struct {
	auth *service.AuthService
	hub  *websockets.Hub
}

// NewWebSocketHandler creates a new websocket handler
func NewWebSocketHandler(auth *service.AuthService, hub *websockets.Hub) *WebSocketHandler {
	return &WebSocketHandler{auth: auth, hub: hub}
}

// Serve handles WebSocket connections. Browsers can't set headers on
// upgrade requests, so the token travels as a query parameter.
func (h *WebSocketHandler) Serve(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "token is required", http.StatusUnauthorized)
		return
	}

	user, err := h.auth.GetUserFromToken(r.Context(), token)
	if err != nil {
		http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
		return
	}

	var rooms []string
	switch user.Role {
	case models.RoleOwner:
		rooms = []string{service.OwnerRoom(user.RestaurantID)}
	case models.RoleStaff:
		rooms = []string{service.StaffRoom(user.RestaurantID)}
	default:
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	conn, err := websockets.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		// If upgrading fails, the upgrader has already written the error
		return
	}

	websockets.ServeWs(h.hub, conn, user.ID.String(), rooms)
}

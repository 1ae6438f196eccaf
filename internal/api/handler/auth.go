package handler

import (
	"encoding/json"
	"net/http"

	"github.com/scandine/ordering-service/internal/api"
	"github.com/scandine/ordering-service/internal/models"
	"github.com/scandine/ordering-service/internal/service"
)

// AuthHandler handles authentication requests
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login authenticates a staff member or owner and returns a JWT token
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, models.NewValidationError("invalid request body"))
		return
	}
	if req.Username == "" || req.Password == "" {
		api.Error(w, models.NewValidationError("username and password are required"))
		return
	}

	token, user, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		api.Error(w, err)
		return
	}

	api.JSON(w, http.StatusOK, struct {
		Token string       `json:"token"`
		User  *models.User `json:"user"`
	}{
		Token: token,
		User:  user,
	})
}

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/scandine/ordering-service/internal/models"
	"github.com/scandine/ordering-service/internal/service"
)

// contextKey is a type for context keys
type contextKey string

// Context keys
const (
	UserIDKey       contextKey = "userID"
	UserRoleKey     contextKey = "userRole"
	RestaurantIDKey contextKey = "restaurantID"
)

// Auth middleware for authenticating requests
func Auth(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "Authorization header required", http.StatusUnauthorized)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				http.Error(w, "Invalid authorization header", http.StatusUnauthorized)
				return
			}

			claims, err := authService.ValidateToken(parts[1])
			if err != nil {
				http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
				return
			}

			userID, err := uuid.Parse(claims.UserID)
			if err != nil {
				http.Error(w, "Invalid token claims", http.StatusUnauthorized)
				return
			}
			restaurantID, err := uuid.Parse(claims.RestaurantID)
			if err != nil {
				http.Error(w, "Invalid token claims", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			ctx = context.WithValue(ctx, UserRoleKey, models.UserRole(claims.Role))
			ctx = context.WithValue(ctx, RestaurantIDKey, restaurantID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserID extracts the authenticated user's ID from the context
func GetUserID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return id, ok
}

// GetUserRole extracts the authenticated user's role from the context
func GetUserRole(ctx context.Context) (models.UserRole, bool) {
	role, ok := ctx.Value(UserRoleKey).(models.UserRole)
	return role, ok
}

// GetRestaurantID extracts the authenticated user's restaurant from the context
func GetRestaurantID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(RestaurantIDKey).(uuid.UUID)
	return id, ok
}

// GetActor builds the service actor from the authenticated context
func GetActor(ctx context.Context) (service.Actor, bool) {
	userID, ok := GetUserID(ctx)
	if !ok {
		return service.Actor{}, false
	}
	role, ok := GetUserRole(ctx)
	if !ok {
		return service.Actor{}, false
	}
	restaurantID, ok := GetRestaurantID(ctx)
	if !ok {
		return service.Actor{}, false
	}
	return service.Actor{UserID: userID, RestaurantID: restaurantID, Role: role}, true
}

package handler

import (
	"net/http"

	"github.com/scandine/ordering-service/internal/api"
	"github.com/scandine/ordering-service/internal/service"
)

// MenuHandler serves the public menu
type MenuHandler struct {
	catalog *service.CatalogService
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(catalog *service.CatalogService) *MenuHandler {
	return &MenuHandler{catalog: catalog}
}

// Get returns a restaurant's menu by slug
func (h *MenuHandler) Get(w http.ResponseWriter, r *http.Request) {
	menu, err := h.catalog.GetMenu(r.Context(), r.PathValue("restaurantSlug"))
	if err != nil {
		api.Error(w, err)
		return
	}
	api.JSON(w, http.StatusOK, menu)
}

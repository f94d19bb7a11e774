package handlers

import (
	"kplat_back_end/internal/cart"
	"kplat_back_end/internal/models"
)

// Dépendances partagées des handlers, injectées au démarrage.
var (
	cartStore cart.Store
	handoff   *cart.HandoffStore
)

func Init(store cart.Store, h *cart.HandoffStore) {
	cartStore = store
	handoff = h
}

func cartResponse(c cart.Cart) map[string]interface{} {
	items := c.Lines
	if items == nil {
		items = []models.CartLine{}
	}
	return map[string]interface{}{
		"restaurant_id": c.RestaurantID,
		"items":         items,
		"total":         c.Total(),
		"count":         len(items),
	}
}

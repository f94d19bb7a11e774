package models

// CartLine : une entrée du panier. Au plus une ligne par item_id,
// quantité toujours >= 1 (une ligne à 0 n'existe pas, elle est supprimée).
type CartLine struct {
	ItemID      string  `json:"item_id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	UnitPrice   float64 `json:"unit_price"`
	ImageRef    string  `json:"image_ref,omitempty"`
	Quantity    int     `json:"quantity"`
}

// CartSnapshot : copie figée du panier transmise du menu vers le checkout.
// Lue une seule fois côté checkout, jamais re-synchronisée avec le panier vivant.
type CartSnapshot struct {
	RestaurantID string     `json:"restaurant_id"`
	Items        []CartLine `json:"items"`
	Total        float64    `json:"total"`
}

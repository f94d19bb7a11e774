package cart

import "kplat_back_end/internal/models"

// Cart : panier d'un seul restaurant. Invariants :
//   - au plus une ligne par item_id
//   - quantité de chaque ligne >= 1
// Le total n'est jamais stocké, toujours recalculé depuis les lignes.
type Cart struct {
	RestaurantID string            `json:"restaurant_id"`
	Lines        []models.CartLine `json:"lines"`
}

func New(restaurantID string) Cart {
	return Cart{RestaurantID: restaurantID}
}

// Total recalcule Σ(prix unitaire × quantité) à chaque lecture.
func (c Cart) Total() float64 {
	total := 0.0
	for _, line := range c.Lines {
		total += line.UnitPrice * float64(line.Quantity)
	}
	return total
}

func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

func (c Cart) Contains(itemID string) bool {
	for _, line := range c.Lines {
		if line.ItemID == itemID {
			return true
		}
	}
	return false
}

// Snapshot fige le panier pour le hand-off vers le checkout.
// Copie-valeur : le checkout ne verra jamais les mutations ultérieures.
func (c Cart) Snapshot() models.CartSnapshot {
	items := make([]models.CartLine, len(c.Lines))
	copy(items, c.Lines)
	return models.CartSnapshot{
		RestaurantID: c.RestaurantID,
		Items:        items,
		Total:        c.Total(),
	}
}

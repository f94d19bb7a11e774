package models

// MenuItem est une donnée de référence : créée au seed, jamais modifiée au runtime.
type MenuItem struct {
	ID           string  `json:"id" db:"item_id"`
	RestaurantID string  `json:"restaurant_id" db:"restaurant_id"`
	Name         string  `json:"name" db:"name"`
	Description  string  `json:"description" db:"description"`
	UnitPrice    float64 `json:"unit_price" db:"unit_price"`
	ImageRef     string  `json:"image_ref" db:"image_ref"`
}

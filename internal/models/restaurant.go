package models

type Restaurant struct {
	ID           string  `json:"id" db:"restaurant_id"`
	Name         string  `json:"name" db:"name"`
	Description  string  `json:"description" db:"description"`
	Cuisine      string  `json:"cuisine" db:"cuisine"`
	Rating       float64 `json:"rating" db:"rating"`
	ReviewCount  int     `json:"review_count" db:"review_count"`
	DeliveryTime string  `json:"delivery_time" db:"delivery_time"`
	PriceRange   string  `json:"price_range" db:"price_range"`
	ImageRef     string  `json:"image_ref" db:"image_ref"`
	Highlights   []string `json:"highlights,omitempty" db:"highlights"`
}

type Promotion struct {
	ID           string `json:"id" db:"promotion_id"`
	RestaurantID string `json:"restaurant_id" db:"restaurant_id"`
	Title        string `json:"title" db:"title"`
	Description  string `json:"description" db:"description"`
	ImageRef     string `json:"image_ref" db:"image_ref"`
	ValidUntil   string `json:"valid_until,omitempty" db:"valid_until"`
}

package models

import "time"

type Reservation struct {
	ID           string    `json:"id"`
	RestaurantID string    `json:"restaurant_id"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	PartySize    int       `json:"party_size"`
	Date         string    `json:"date"` // YYYY-MM-DD
	Time         string    `json:"time"` // HH:MM
	CreatedAt    time.Time `json:"created_at"`
}

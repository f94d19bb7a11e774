package models

import "time"

type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type Delivery struct {
	Address      string `json:"address"`
	City         string `json:"city"`
	State        string `json:"state,omitempty"`
	PostalCode   string `json:"postal_code"`
	Instructions string `json:"instructions,omitempty"`
}

type Payment struct {
	Method       string `json:"method"` // "credit" ou "paypal"
	CardLast4    string `json:"card_last4,omitempty"`
	CardName     string `json:"card_name,omitempty"`
}

type OrderSummary struct {
	Subtotal    float64 `json:"subtotal"`
	Tax         float64 `json:"tax"`
	DeliveryFee float64 `json:"delivery_fee"`
	GrandTotal  float64 `json:"grand_total"`
}

// Order : commande confirmée. Lines est une copie-valeur du panier au moment
// du hand-off, Summary est calculé une fois puis figé pour l'affichage.
type Order struct {
	ID                string       `json:"id"`
	Number            string       `json:"number"`
	RestaurantID      string       `json:"restaurant_id"`
	Customer          Customer     `json:"customer"`
	Delivery          Delivery     `json:"delivery"`
	Payment           Payment      `json:"payment"`
	Lines             []CartLine   `json:"lines"`
	Summary           OrderSummary `json:"summary"`
	Status            string       `json:"status"`
	CreatedAt         time.Time    `json:"created_at"`
	EstimatedDelivery time.Time    `json:"estimated_delivery"`
}

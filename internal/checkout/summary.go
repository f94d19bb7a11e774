package checkout

import (
	"math"

	"kplat_back_end/internal/models"
)

const (
	DefaultTaxRate     = 0.08
	DefaultDeliveryFee = 5.00
)

// Summarize calcule le récapitulatif d'une commande en pleine précision.
// Les frais de livraison ne s'appliquent qu'à un panier non vide.
// Aucun arrondi ici : l'arrondi se fait une seule fois, à l'affichage.
func Summarize(lines []models.CartLine, taxRate, deliveryFee float64) models.OrderSummary {
	subtotal := 0.0
	for _, line := range lines {
		subtotal += line.UnitPrice * float64(line.Quantity)
	}

	fee := 0.0
	if len(lines) > 0 {
		fee = deliveryFee
	}

	tax := subtotal * taxRate
	return models.OrderSummary{
		Subtotal:    subtotal,
		Tax:         tax,
		DeliveryFee: fee,
		GrandTotal:  subtotal + tax + fee,
	}
}

// Round2 arrondit au centime, demi-cent vers le haut.
func Round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}

// Rounded fige le récapitulatif pour l'affichage (frontière de formatage).
func Rounded(s models.OrderSummary) models.OrderSummary {
	return models.OrderSummary{
		Subtotal:    Round2(s.Subtotal),
		Tax:         Round2(s.Tax),
		DeliveryFee: Round2(s.DeliveryFee),
		GrandTotal:  Round2(s.GrandTotal),
	}
}

package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"kplat_back_end/internal/models"
)

func TestSummarize_ReferenceFigures(t *testing.T) {
	lines := []models.CartLine{
		{ItemID: "i1", Name: "Classic BBQ Combo", UnitPrice: 24.99, Quantity: 2},
		{ItemID: "i2", Name: "Spicy Pork Belly", UnitPrice: 22.99, Quantity: 1},
	}

	s := Summarize(lines, DefaultTaxRate, DefaultDeliveryFee)

	// Pleine précision en interne
	assert.InDelta(t, 72.97, s.Subtotal, 1e-9)
	assert.InDelta(t, 5.8376, s.Tax, 1e-9)
	assert.InDelta(t, 5.00, s.DeliveryFee, 1e-9)
	assert.InDelta(t, 83.8076, s.GrandTotal, 1e-9)

	// Arrondi demi-cent vers le haut, uniquement à la frontière d'affichage
	r := Rounded(s)
	assert.Equal(t, 72.97, r.Subtotal)
	assert.Equal(t, 5.84, r.Tax)
	assert.Equal(t, 5.00, r.DeliveryFee)
	assert.Equal(t, 83.81, r.GrandTotal)
}

func TestSummarize_EmptyCartHasNoDeliveryFee(t *testing.T) {
	s := Summarize(nil, DefaultTaxRate, DefaultDeliveryFee)

	assert.Equal(t, 0.0, s.Subtotal)
	assert.Equal(t, 0.0, s.Tax)
	assert.Equal(t, 0.0, s.DeliveryFee)
	assert.Equal(t, 0.0, s.GrandTotal)
}

func TestRound2_HalfUp(t *testing.T) {
	assert.Equal(t, 5.84, Round2(5.8376))
	assert.Equal(t, 0.13, Round2(0.125))
	assert.Equal(t, 1.00, Round2(1.0049))
	assert.Equal(t, 0.0, Round2(0))
}

package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kplat_back_end/internal/models"
)

func testSnapshot() models.CartSnapshot {
	return models.CartSnapshot{
		RestaurantID: "mdbbq",
		Items: []models.CartLine{
			{ItemID: "i1", Name: "Classic BBQ Combo", UnitPrice: 24.99, Quantity: 2},
			{ItemID: "i2", Name: "Spicy Pork Belly", UnitPrice: 22.99, Quantity: 1},
		},
		Total: 72.97,
	}
}

func TestSubmit_RejectedWithFieldErrors(t *testing.T) {
	m := NewMachine(testSnapshot())
	require.NoError(t, m.SetForm(Form{Email: "a@b.com", Phone: "5551234567"}))

	order, errs, err := m.Submit()
	require.NoError(t, err)
	assert.Nil(t, order)
	assert.NotEmpty(t, errs)
	assert.Equal(t, StateEditing, m.State(), "un submit refusé ne change pas l'état")
	assert.NotContains(t, errs, "email")
	assert.NotContains(t, errs, "phone")
}

func TestSubmit_BuildsConfirmedOrder(t *testing.T) {
	m := NewMachine(testSnapshot())
	require.NoError(t, m.SetForm(validForm()))

	order, errs, err := m.Submit()
	require.NoError(t, err)
	require.Empty(t, errs)
	require.NotNil(t, order)

	assert.Equal(t, StateConfirmed, m.State())
	assert.Equal(t, "mdbbq", order.RestaurantID)
	assert.Equal(t, "John Doe", order.Customer.Name)
	assert.Len(t, order.Lines, 2)

	// Récapitulatif figé, arrondi à la frontière d'affichage
	assert.Equal(t, 72.97, order.Summary.Subtotal)
	assert.Equal(t, 5.84, order.Summary.Tax)
	assert.Equal(t, 5.00, order.Summary.DeliveryFee)
	assert.Equal(t, 83.81, order.Summary.GrandTotal)

	// La carte n'est jamais conservée en clair
	assert.Equal(t, "credit", order.Payment.Method)
	assert.Equal(t, "1111", order.Payment.CardLast4)
	assert.NotEmpty(t, order.Number)
	assert.True(t, order.EstimatedDelivery.After(order.CreatedAt))
}

func TestConfirmed_IsTerminal(t *testing.T) {
	m := NewMachine(testSnapshot())
	require.NoError(t, m.SetForm(validForm()))
	_, _, err := m.Submit()
	require.NoError(t, err)

	_, err = m.SetField("name", "Jane")
	assert.ErrorIs(t, err, ErrConfirmed)

	assert.ErrorIs(t, m.SetForm(validForm()), ErrConfirmed)

	_, _, err = m.Submit()
	assert.ErrorIs(t, err, ErrConfirmed)
}

func TestSetField_NormalizesOnEveryKeystroke(t *testing.T) {
	m := NewMachine(testSnapshot())

	got, err := m.SetField("phone", "(555) 123-4567")
	require.NoError(t, err)
	assert.Equal(t, "5551234567", got)

	got, err = m.SetField("expiry", "1226")
	require.NoError(t, err)
	assert.Equal(t, "12/26", got)
	assert.Equal(t, "12/26", m.Form().Expiry)
}

func TestSetField_UnknownField(t *testing.T) {
	m := NewMachine(testSnapshot())
	_, err := m.SetField("favorite_color", "red")
	assert.Error(t, err)
}

func TestMachine_OwnsSnapshotCopy(t *testing.T) {
	snap := testSnapshot()
	m := NewMachine(snap)

	// Mutation du snapshot d'origine après coup : le machine n'en voit rien
	snap.Items[0].Quantity = 99

	require.NotEmpty(t, m.Lines())
	assert.Equal(t, 2, m.Lines()[0].Quantity)
}

func TestSubmit_PaypalWithEmptyCardFields(t *testing.T) {
	m := NewMachine(testSnapshot())
	f := validForm()
	f.PaymentMethod = "paypal"
	f.CardNumber = ""
	f.Expiry = ""
	f.CVV = ""
	require.NoError(t, m.SetForm(f))

	order, errs, err := m.Submit()
	require.NoError(t, err)
	require.Empty(t, errs)
	require.NotNil(t, order)
	assert.Equal(t, "paypal", order.Payment.Method)
	assert.Empty(t, order.Payment.CardLast4)
}

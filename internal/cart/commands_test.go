package cart

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kplat_back_end/internal/models"
)

func menuItem(id, name string, price float64) models.MenuItem {
	return models.MenuItem{
		ID:           id,
		RestaurantID: "mdbbq",
		Name:         name,
		UnitPrice:    price,
	}
}

func TestAddItem_InsertsWithQuantityOne(t *testing.T) {
	c := Apply(New("mdbbq"), AddItem{Item: menuItem("i1", "Korean Beef Bulgogi", 24.99)})

	require.Len(t, c.Lines, 1)
	assert.Equal(t, "i1", c.Lines[0].ItemID)
	assert.Equal(t, 1, c.Lines[0].Quantity)
	assert.Equal(t, 24.99, c.Lines[0].UnitPrice)
}

func TestAddItem_DuplicateDoesNotIncrement(t *testing.T) {
	item := menuItem("i1", "Korean Beef Bulgogi", 24.99)
	c := Apply(New("mdbbq"), AddItem{Item: item})
	c = Apply(c, AddItem{Item: item})

	require.Len(t, c.Lines, 1)
	assert.Equal(t, 1, c.Lines[0].Quantity, "l'ajout d'un article déjà présent est un no-op")
}

func TestIncreaseQuantity(t *testing.T) {
	c := Apply(New("mdbbq"), AddItem{Item: menuItem("i1", "Spicy Pork Belly", 22.99)})
	c = Apply(c, IncreaseQuantity{ItemID: "i1"})
	c = Apply(c, IncreaseQuantity{ItemID: "i1"})

	require.Len(t, c.Lines, 1)
	assert.Equal(t, 3, c.Lines[0].Quantity)
}

func TestIncreaseQuantity_UnknownIDIsNoOp(t *testing.T) {
	c := Apply(New("mdbbq"), AddItem{Item: menuItem("i1", "Spicy Pork Belly", 22.99)})
	next := Apply(c, IncreaseQuantity{ItemID: "missing"})

	assert.Equal(t, c, next)
}

func TestDecreaseQuantity_FloorsAtOne(t *testing.T) {
	c := Apply(New("mdbbq"), AddItem{Item: menuItem("i1", "Spicy Pork Belly", 22.99)})
	next := Apply(c, DecreaseQuantity{ItemID: "i1"})

	require.Len(t, next.Lines, 1, "décrémenter à 1 ne supprime pas la ligne")
	assert.Equal(t, 1, next.Lines[0].Quantity)
	assert.Equal(t, c, next)
}

func TestDecreaseQuantity_AboveOne(t *testing.T) {
	c := Apply(New("mdbbq"), AddItem{Item: menuItem("i1", "Spicy Pork Belly", 22.99)})
	c = Apply(c, IncreaseQuantity{ItemID: "i1"})
	c = Apply(c, DecreaseQuantity{ItemID: "i1"})

	assert.Equal(t, 1, c.Lines[0].Quantity)
}

func TestRemoveItem(t *testing.T) {
	c := Apply(New("mdbbq"), AddItem{Item: menuItem("i1", "Bulgogi", 24.99)})
	c = Apply(c, AddItem{Item: menuItem("i2", "Ribs", 29.99)})
	c = Apply(c, RemoveItem{ItemID: "i1"})

	require.Len(t, c.Lines, 1)
	assert.Equal(t, "i2", c.Lines[0].ItemID)
}

func TestRemoveItem_AbsentIsNoOp(t *testing.T) {
	c := Apply(New("mdbbq"), AddItem{Item: menuItem("i1", "Bulgogi", 24.99)})
	next := Apply(c, RemoveItem{ItemID: "missing"})

	assert.Equal(t, c, next)
}

func TestClear(t *testing.T) {
	c := Apply(New("mdbbq"), AddItem{Item: menuItem("i1", "Bulgogi", 24.99)})
	c = Apply(c, Clear{})

	assert.True(t, c.IsEmpty())
	assert.Equal(t, "mdbbq", c.RestaurantID)
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	c := Apply(New("mdbbq"), AddItem{Item: menuItem("i1", "Bulgogi", 24.99)})
	before := c.Lines[0].Quantity

	_ = Apply(c, IncreaseQuantity{ItemID: "i1"})

	assert.Equal(t, before, c.Lines[0].Quantity)
}

func TestTotal_MatchesLines(t *testing.T) {
	c := Apply(New("mdbbq"), AddItem{Item: menuItem("i1", "Bulgogi", 24.99)})
	c = Apply(c, IncreaseQuantity{ItemID: "i1"})
	c = Apply(c, AddItem{Item: menuItem("i2", "Pork Belly", 22.99)})

	assert.InDelta(t, 24.99*2+22.99, c.Total(), 1e-9)
}

// Rejoue des séquences de commandes pseudo-aléatoires et vérifie les
// invariants après chaque transition : jamais de quantité <= 0, jamais de
// doublon d'item_id, total toujours égal à la somme des lignes.
func TestCommandReplay_Invariants(t *testing.T) {
	items := []models.MenuItem{
		menuItem("i1", "Bulgogi", 24.99),
		menuItem("i2", "Ribs", 29.99),
		menuItem("i3", "Pork Belly", 22.99),
	}
	ids := []string{"i1", "i2", "i3", "missing"}

	rng := rand.New(rand.NewSource(42))
	c := New("mdbbq")

	for i := 0; i < 2000; i++ {
		var cmd Command
		switch rng.Intn(5) {
		case 0:
			cmd = AddItem{Item: items[rng.Intn(len(items))]}
		case 1:
			cmd = RemoveItem{ItemID: ids[rng.Intn(len(ids))]}
		case 2:
			cmd = IncreaseQuantity{ItemID: ids[rng.Intn(len(ids))]}
		case 3:
			cmd = DecreaseQuantity{ItemID: ids[rng.Intn(len(ids))]}
		case 4:
			cmd = Clear{}
		}

		c = Apply(c, cmd)

		seen := map[string]bool{}
		expected := 0.0
		for _, line := range c.Lines {
			require.Greater(t, line.Quantity, 0, "commande %d (%T)", i, cmd)
			require.False(t, seen[line.ItemID], "item_id dupliqué après commande %d (%T)", i, cmd)
			seen[line.ItemID] = true
			expected += line.UnitPrice * float64(line.Quantity)
		}
		require.InDelta(t, expected, c.Total(), 1e-9)
	}
}

func TestSnapshot_IsValueCopy(t *testing.T) {
	c := Apply(New("mdbbq"), AddItem{Item: menuItem("i1", "Bulgogi", 24.99)})
	snap := c.Snapshot()

	c = Apply(c, IncreaseQuantity{ItemID: "i1"})
	c = Apply(c, Clear{})

	require.Len(t, snap.Items, 1)
	assert.Equal(t, 1, snap.Items[0].Quantity)
	assert.InDelta(t, 24.99, snap.Total, 1e-9)
}

package cart

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kplat_back_end/internal/models"
)

// memStore : Store en mémoire pour tester le moteur sans Redis.
type memStore struct {
	carts    map[string]Cart
	failNext bool
	saves    int
}

func newMemStore() *memStore {
	return &memStore{carts: map[string]Cart{}}
}

func (s *memStore) Load(ctx context.Context, clientID, restaurantID string) (Cart, bool, error) {
	c, ok := s.carts[clientID+":"+restaurantID]
	if !ok {
		return New(restaurantID), false, nil
	}
	return c, true, nil
}

func (s *memStore) Save(ctx context.Context, clientID, restaurantID string, c Cart) error {
	if s.failNext {
		s.failNext = false
		return errors.New("store indisponible")
	}
	s.saves++
	s.carts[clientID+":"+restaurantID] = c
	return nil
}

func (s *memStore) Delete(ctx context.Context, clientID, restaurantID string) error {
	delete(s.carts, clientID+":"+restaurantID)
	return nil
}

func TestEngine_HydratesFromStore(t *testing.T) {
	store := newMemStore()
	store.carts["c1:mdbbq"] = Apply(New("mdbbq"), AddItem{Item: menuItem("i1", "Bulgogi", 24.99)})

	e, err := NewEngine(context.Background(), store, "c1", "mdbbq")
	require.NoError(t, err)
	require.Len(t, e.Cart().Lines, 1)
	assert.Equal(t, "i1", e.Cart().Lines[0].ItemID)
}

func TestEngine_WritesThroughOnEveryMutation(t *testing.T) {
	store := newMemStore()
	e, err := NewEngine(context.Background(), store, "c1", "mdbbq")
	require.NoError(t, err)

	require.NoError(t, e.Dispatch(context.Background(), AddItem{Item: menuItem("i1", "Bulgogi", 24.99)}))
	require.NoError(t, e.Dispatch(context.Background(), IncreaseQuantity{ItemID: "i1"}))
	require.NoError(t, e.Dispatch(context.Background(), AddItem{Item: menuItem("i2", "Ribs", 29.99)}))

	assert.Equal(t, 3, store.saves)

	// Un "reload" (nouveau moteur) retrouve exactement le même panier
	reloaded, err := NewEngine(context.Background(), store, "c1", "mdbbq")
	require.NoError(t, err)
	assert.Equal(t, e.Cart(), reloaded.Cart())
}

func TestEngine_FailedSaveLeavesCartUnchanged(t *testing.T) {
	store := newMemStore()
	e, err := NewEngine(context.Background(), store, "c1", "mdbbq")
	require.NoError(t, err)
	require.NoError(t, e.Dispatch(context.Background(), AddItem{Item: menuItem("i1", "Bulgogi", 24.99)}))

	store.failNext = true
	err = e.Dispatch(context.Background(), IncreaseQuantity{ItemID: "i1"})
	require.Error(t, err)

	assert.Equal(t, 1, e.Cart().Lines[0].Quantity, "l'état ne bouge pas si l'écriture échoue")
}

// Aller-retour de persistance : sauvegarder puis réhydrater reproduit le
// même ensemble de lignes (égalité par item_id + quantité, ordre indifférent).
func TestRoundTrip_SetEqualLines(t *testing.T) {
	store := newMemStore()
	e, err := NewEngine(context.Background(), store, "c1", "mdbbq")
	require.NoError(t, err)

	require.NoError(t, e.Dispatch(context.Background(), AddItem{Item: menuItem("i2", "Ribs", 29.99)}))
	require.NoError(t, e.Dispatch(context.Background(), AddItem{Item: menuItem("i1", "Bulgogi", 24.99)}))
	require.NoError(t, e.Dispatch(context.Background(), IncreaseQuantity{ItemID: "i2"}))

	reloaded, err := NewEngine(context.Background(), store, "c1", "mdbbq")
	require.NoError(t, err)

	assert.Equal(t, lineSet(e.Cart().Lines), lineSet(reloaded.Cart().Lines))
}

func lineSet(lines []models.CartLine) []string {
	set := make([]string, 0, len(lines))
	for _, l := range lines {
		set = append(set, fmt.Sprintf("%s×%d", l.ItemID, l.Quantity))
	}
	sort.Strings(set)
	return set
}

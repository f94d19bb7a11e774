package cart

import "context"

// Engine : instance explicite du panier pour une session de page restaurant.
// Pas de singleton caché — le handler crée un Engine par requête, hydraté
// depuis le Store, et chaque mutation réussie est réécrite avant de rendre
// la main (write-through synchrone : un reload ne perd jamais le panier).
type Engine struct {
	clientID     string
	restaurantID string
	store        Store
	cart         Cart
}

func NewEngine(ctx context.Context, store Store, clientID, restaurantID string) (*Engine, error) {
	c, ok, err := store.Load(ctx, clientID, restaurantID)
	if err != nil {
		return nil, err
	}
	if !ok {
		c = New(restaurantID)
	}
	return &Engine{
		clientID:     clientID,
		restaurantID: restaurantID,
		store:        store,
		cart:         c,
	}, nil
}

func (e *Engine) Cart() Cart {
	return e.cart
}

// Dispatch applique la commande puis persiste. L'écriture précède la mise à
// jour de l'état visible : si le Store échoue, le panier reste inchangé.
func (e *Engine) Dispatch(ctx context.Context, cmd Command) error {
	next := Apply(e.cart, cmd)
	if err := e.store.Save(ctx, e.clientID, e.restaurantID, next); err != nil {
		return err
	}
	e.cart = next
	return nil
}

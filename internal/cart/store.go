package cart

import "context"

// Store : persistance longue durée du panier, une entrée par (client, restaurant).
// L'interface est définie ici, côté consommateur ; l'implémentation Redis
// est interchangeable avec un fake en test sans toucher au moteur.
type Store interface {
	Load(ctx context.Context, clientID, restaurantID string) (Cart, bool, error)
	Save(ctx context.Context, clientID, restaurantID string, c Cart) error
	Delete(ctx context.Context, clientID, restaurantID string) error
}

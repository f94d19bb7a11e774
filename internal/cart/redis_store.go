package cart

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"kplat_back_end/internal/models"
)

// Durée de vie du panier persistant : 30 jours, comme la session "continuer
// mes achats". La clé est scopée par client ET par restaurant.
const CartTTL = 30 * 24 * time.Hour

type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func cartKey(clientID, restaurantID string) string {
	return "cart:" + clientID + ":" + restaurantID
}

func (s *RedisStore) Load(ctx context.Context, clientID, restaurantID string) (Cart, bool, error) {
	data, err := s.rdb.Get(ctx, cartKey(clientID, restaurantID)).Result()
	if err == redis.Nil || data == "" {
		return New(restaurantID), false, nil
	}
	if err != nil {
		return Cart{}, false, err
	}

	var lines []models.CartLine
	if err := json.Unmarshal([]byte(data), &lines); err != nil {
		// Enregistrement illisible → panier vide plutôt qu'une erreur fatale
		return New(restaurantID), false, nil
	}

	return Cart{RestaurantID: restaurantID, Lines: lines}, true, nil
}

func (s *RedisStore) Save(ctx context.Context, clientID, restaurantID string, c Cart) error {
	jsonData, err := json.Marshal(c.Lines)
	if err != nil {
		return err
	}

	key := cartKey(clientID, restaurantID)
	if err := s.rdb.Set(ctx, key, jsonData, CartTTL).Err(); err != nil {
		return err
	}

	// Notifie le canal du panier pour la synchro WebSocket
	s.rdb.Publish(ctx, key, "updated")
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, clientID, restaurantID string) error {
	key := cartKey(clientID, restaurantID)
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		return err
	}
	s.rdb.Publish(ctx, key, "cleared")
	return nil
}

package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gocql/gocql"
	"github.com/google/uuid"

	"kplat_back_end/internal/database"
	"kplat_back_end/internal/models"
)

const (
	UserCacheTTL     = 5 * time.Minute
	MenuItemCacheTTL = 10 * time.Minute
)

// GetUserFromCache récupère un utilisateur depuis Redis ou ScyllaDB
func GetUserFromCache(userID string) (*models.User, error) {
	ctx := context.Background()
	key := "user:" + userID

	// 1. Essayer le cache Redis
	data, err := database.Redis.Get(ctx, key).Result()
	if err == nil {
		var user models.User
		if json.Unmarshal([]byte(data), &user) == nil {
			return &user, nil
		}
	}

	// 2. Récupérer de ScyllaDB
	session, err := database.GetUsersSession()
	if err != nil {
		return nil, err
	}

	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, err
	}

	var email, name, role, provider string
	err = session.Query(`SELECT email, name, role, provider FROM users WHERE user_id = ?`,
		gocql.UUID(uid)).Scan(&email, &name, &role, &provider)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:       userID,
		Email:    email,
		Name:     name,
		Role:     role,
		Provider: provider,
	}

	// 3. Mettre en cache
	jsonData, _ := json.Marshal(user)
	database.Redis.Set(ctx, key, jsonData, UserCacheTTL)

	return user, nil
}

// InvalidateUserCache invalide le cache d'un utilisateur
func InvalidateUserCache(userID string) {
	ctx := context.Background()
	database.Redis.Del(ctx, "user:"+userID)
}

// GetMenuItemFromCache récupère un plat du catalogue depuis Redis ou ScyllaDB.
// Le catalogue est en lecture seule, le cache ne s'invalide que par TTL.
func GetMenuItemFromCache(restaurantID, itemID string) (*models.MenuItem, error) {
	ctx := context.Background()
	key := "menu_item:" + restaurantID + ":" + itemID

	// 1. Essayer le cache Redis
	data, err := database.Redis.Get(ctx, key).Result()
	if err == nil {
		var item models.MenuItem
		if json.Unmarshal([]byte(data), &item) == nil {
			return &item, nil
		}
	}

	// 2. Récupérer de ScyllaDB
	session, err := database.GetCatalogSession()
	if err != nil {
		return nil, err
	}

	var name, description, imageRef string
	var unitPrice float64
	err = session.Query(`SELECT name, description, unit_price, image_ref
		FROM menu_items WHERE restaurant_id = ? AND item_id = ?`,
		restaurantID, itemID).Scan(&name, &description, &unitPrice, &imageRef)
	if err != nil {
		return nil, err
	}

	item := &models.MenuItem{
		ID:           itemID,
		RestaurantID: restaurantID,
		Name:         name,
		Description:  description,
		UnitPrice:    unitPrice,
		ImageRef:     imageRef,
	}

	// 3. Mettre en cache
	jsonData, _ := json.Marshal(item)
	database.Redis.Set(ctx, key, jsonData, MenuItemCacheTTL)

	return item, nil
}

package catalog

import (
	"kplat_back_end/internal/database"
	"kplat_back_end/internal/models"
)

// Le catalogue est en lecture seule au runtime : restaurants, menus et
// promotions sont seedés au déploiement (voir seed.go) et jamais modifiés.

func ListRestaurants() ([]models.Restaurant, error) {
	session, err := database.GetCatalogSession()
	if err != nil {
		return nil, err
	}

	restaurants := []models.Restaurant{}
	iter := session.Query(`SELECT restaurant_id, name, description, cuisine, rating, review_count, delivery_time, price_range, image_ref, highlights
	                       FROM restaurants`).Iter()

	var r models.Restaurant
	for iter.Scan(&r.ID, &r.Name, &r.Description, &r.Cuisine, &r.Rating, &r.ReviewCount,
		&r.DeliveryTime, &r.PriceRange, &r.ImageRef, &r.Highlights) {
		restaurants = append(restaurants, r)
		r = models.Restaurant{}
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}

	return restaurants, nil
}

func GetRestaurant(restaurantID string) (*models.Restaurant, bool, error) {
	session, err := database.GetCatalogSession()
	if err != nil {
		return nil, false, err
	}

	var r models.Restaurant
	err = session.Query(`SELECT restaurant_id, name, description, cuisine, rating, review_count, delivery_time, price_range, image_ref, highlights
	                     FROM restaurants WHERE restaurant_id = ?`, restaurantID).Scan(
		&r.ID, &r.Name, &r.Description, &r.Cuisine, &r.Rating, &r.ReviewCount,
		&r.DeliveryTime, &r.PriceRange, &r.ImageRef, &r.Highlights)
	if err != nil {
		// Restaurant introuvable : pas une erreur, le handler décide
		return nil, false, nil
	}

	return &r, true, nil
}

// ListItems retourne le menu d'un restaurant.
// Restaurant inconnu → liste vide, jamais d'erreur.
func ListItems(restaurantID string) ([]models.MenuItem, error) {
	session, err := database.GetCatalogSession()
	if err != nil {
		return nil, err
	}

	items := []models.MenuItem{}
	iter := session.Query(`SELECT restaurant_id, item_id, name, description, unit_price, image_ref
	                       FROM menu_items WHERE restaurant_id = ?`, restaurantID).Iter()

	var m models.MenuItem
	for iter.Scan(&m.RestaurantID, &m.ID, &m.Name, &m.Description, &m.UnitPrice, &m.ImageRef) {
		items = append(items, m)
		m = models.MenuItem{}
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}

	return items, nil
}

func ListPromotions(restaurantID string) ([]models.Promotion, error) {
	session, err := database.GetCatalogSession()
	if err != nil {
		return nil, err
	}

	promos := []models.Promotion{}
	iter := session.Query(`SELECT restaurant_id, promotion_id, title, description, image_ref, valid_until
	                       FROM promotions WHERE restaurant_id = ?`, restaurantID).Iter()

	var p models.Promotion
	for iter.Scan(&p.RestaurantID, &p.ID, &p.Title, &p.Description, &p.ImageRef, &p.ValidUntil) {
		promos = append(promos, p)
		p = models.Promotion{}
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}

	return promos, nil
}

package catalog

import (
	"log"

	"kplat_back_end/internal/database"
	"kplat_back_end/internal/models"
	"kplat_back_end/internal/services"
)

// Données de référence du storefront. Insérées au démarrage (idempotent :
// mêmes clés → mêmes lignes) puis indexées dans Elasticsearch pour la
// recherche. imageRef est une clé d'objet MinIO, résolue en URL signée
// au moment de servir.

var seedRestaurants = []models.Restaurant{
	{
		ID:           "mdbbq",
		Name:         "MDBBQ",
		Description:  "MDBBQ brings the authentic taste of Korean BBQ to your table, combining traditional cooking methods with modern culinary techniques.",
		Cuisine:      "BBQ",
		Rating:       4.5,
		ReviewCount:  342,
		DeliveryTime: "30-45 min",
		PriceRange:   "$$",
		ImageRef:     "restaurants/mdbbq.png",
		Highlights: []string{
			"Authentic Korean BBQ",
			"Fresh, High-Quality Meats",
			"Traditional Cooking Methods",
			"Vegetarian Options Available",
		},
	},
}

var seedMenuItems = []models.MenuItem{
	{
		ID:           "bulgogi",
		RestaurantID: "mdbbq",
		Name:         "Korean Beef Bulgogi",
		Description:  "Signature Korean Beef Dish",
		UnitPrice:    24.99,
		ImageRef:     "menu/mdbbq/bulgogi.jpg",
	},
	{
		ID:           "beef-ribs",
		RestaurantID: "mdbbq",
		Name:         "Korean Beef Ribs",
		Description:  "Tender beef ribs with special marinade",
		UnitPrice:    29.99,
		ImageRef:     "menu/mdbbq/classicbbq.jpeg",
	},
	{
		ID:           "pork-belly",
		RestaurantID: "mdbbq",
		Name:         "Spicy Pork Belly",
		Description:  "Grilled spicy pork belly with side dishes",
		UnitPrice:    22.99,
		ImageRef:     "menu/mdbbq/porkBelly.webp",
	},
}

var seedPromotions = []models.Promotion{
	{
		ID:           "weekdays-special",
		RestaurantID: "mdbbq",
		Title:        "Weekdays Special Offer",
		Description:  "Get 10% off on all combo. Valid on weekdays only!",
		ImageRef:     "promos/mdbbq/promo.jpg",
	},
}

// Seed insère le catalogue de référence dans ScyllaDB et l'indexe.
func Seed() error {
	session, err := database.GetCatalogSession()
	if err != nil {
		return err
	}

	for _, r := range seedRestaurants {
		err := session.Query(`INSERT INTO restaurants (restaurant_id, name, description, cuisine, rating, review_count, delivery_time, price_range, image_ref, highlights)
		                      VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			r.ID, r.Name, r.Description, r.Cuisine, r.Rating, r.ReviewCount,
			r.DeliveryTime, r.PriceRange, r.ImageRef, r.Highlights).Exec()
		if err != nil {
			return err
		}
		services.IndexRestaurant(r)
	}

	for _, m := range seedMenuItems {
		err := session.Query(`INSERT INTO menu_items (restaurant_id, item_id, name, description, unit_price, image_ref)
		                      VALUES (?, ?, ?, ?, ?, ?)`,
			m.RestaurantID, m.ID, m.Name, m.Description, m.UnitPrice, m.ImageRef).Exec()
		if err != nil {
			return err
		}
	}

	for _, p := range seedPromotions {
		err := session.Query(`INSERT INTO promotions (restaurant_id, promotion_id, title, description, image_ref, valid_until)
		                      VALUES (?, ?, ?, ?, ?, ?)`,
			p.RestaurantID, p.ID, p.Title, p.Description, p.ImageRef, p.ValidUntil).Exec()
		if err != nil {
			return err
		}
	}

	log.Printf("✅ Catalogue seedé : %d restaurant(s), %d item(s), %d promotion(s)",
		len(seedRestaurants), len(seedMenuItems), len(seedPromotions))
	return nil
}

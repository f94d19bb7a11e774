package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"kplat_back_end/internal/catalog"
	"kplat_back_end/internal/services"
)

//
// 🏠 GET /api/restaurants
//
func ListRestaurants(c *gin.Context) {
	restaurants, err := catalog.ListRestaurants()
	if err != nil {
		log.Println("❌ Erreur lecture catalogue:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture catalogue"})
		return
	}

	// Filtres de la page de choix, appliqués en mémoire : le catalogue
	// tient en une poignée de lignes
	cuisine := c.Query("cuisine")
	priceRange := c.Query("price_range")
	if cuisine != "" || priceRange != "" {
		filtered := restaurants[:0]
		for _, r := range restaurants {
			if cuisine != "" && !strings.EqualFold(r.Cuisine, cuisine) {
				continue
			}
			if priceRange != "" && r.PriceRange != priceRange {
				continue
			}
			filtered = append(filtered, r)
		}
		restaurants = filtered
	}

	// Résout les clés d'image en URLs signées MinIO
	for i := range restaurants {
		restaurants[i].ImageRef = services.ResolveImage(c.Request.Context(), restaurants[i].ImageRef)
	}

	c.JSON(http.StatusOK, gin.H{"restaurants": restaurants})
}

//
// 🏠 GET /api/restaurants/:restaurantId
//
func GetRestaurant(c *gin.Context) {
	restaurantID := c.Param("restaurantId")

	restaurant, found, err := catalog.GetRestaurant(restaurantID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture catalogue"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant introuvable"})
		return
	}

	restaurant.ImageRef = services.ResolveImage(c.Request.Context(), restaurant.ImageRef)

	promotions, err := catalog.ListPromotions(restaurantID)
	if err != nil {
		log.Println("⚠️ Erreur lecture promotions:", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"restaurant": restaurant,
		"promotions": promotions,
	})
}

//
// 🍽️ GET /api/restaurants/:restaurantId/menu
//
func GetMenu(c *gin.Context) {
	restaurantID := c.Param("restaurantId")

	_, found, err := catalog.GetRestaurant(restaurantID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture catalogue"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant introuvable"})
		return
	}

	items, err := catalog.ListItems(restaurantID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture menu"})
		return
	}

	for i := range items {
		items[i].ImageRef = services.ResolveImage(c.Request.Context(), items[i].ImageRef)
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

//
// 🔍 GET /api/restaurants/search?q=...
//
func SearchRestaurants(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Paramètre q requis"})
		return
	}

	results, err := services.SearchRestaurants(query)
	if err != nil {
		log.Println("⚠️ Recherche Elastic indisponible:", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Recherche indisponible"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}

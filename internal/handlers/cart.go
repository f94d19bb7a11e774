package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kplat_back_end/internal/cache"
	"kplat_back_end/internal/cart"
)

func cartEngine(c *gin.Context) (*cart.Engine, bool) {
	clientID := c.GetString("client_id")
	if clientID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session client manquante"})
		return nil, false
	}

	engine, err := cart.NewEngine(c.Request.Context(), cartStore, clientID, c.Param("restaurantId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture panier"})
		return nil, false
	}
	return engine, true
}

//
// 🛒 GET /api/cart/:restaurantId
//
func GetCart(c *gin.Context) {
	engine, ok := cartEngine(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, cartResponse(engine.Cart()))
}

//
// 🟢 POST /api/cart/:restaurantId/items
//
func AddToCart(c *gin.Context) {
	var input struct {
		ItemID string `json:"item_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	restaurantID := c.Param("restaurantId")

	// Le plat est relu côté serveur : prix et libellé font foi ici,
	// jamais dans le payload client
	item, err := cache.GetMenuItemFromCache(restaurantID, input.ItemID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Plat introuvable"})
		return
	}

	engine, ok := cartEngine(c)
	if !ok {
		return
	}

	// Un plat déjà présent garde sa quantité, l'ajout ne cumule pas
	if err := engine.Dispatch(c.Request.Context(), cart.AddItem{Item: *item}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde panier"})
		return
	}

	c.JSON(http.StatusOK, cartResponse(engine.Cart()))
}

//
// ❌ DELETE /api/cart/:restaurantId/items/:itemId
//
func RemoveFromCart(c *gin.Context) {
	engine, ok := cartEngine(c)
	if !ok {
		return
	}

	if err := engine.Dispatch(c.Request.Context(), cart.RemoveItem{ItemID: c.Param("itemId")}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde panier"})
		return
	}

	c.JSON(http.StatusOK, cartResponse(engine.Cart()))
}

//
// ➕ POST /api/cart/:restaurantId/items/:itemId/increase
//
func IncreaseQuantity(c *gin.Context) {
	engine, ok := cartEngine(c)
	if !ok {
		return
	}

	if err := engine.Dispatch(c.Request.Context(), cart.IncreaseQuantity{ItemID: c.Param("itemId")}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde panier"})
		return
	}

	c.JSON(http.StatusOK, cartResponse(engine.Cart()))
}

//
// ➖ POST /api/cart/:restaurantId/items/:itemId/decrease
//
func DecreaseQuantity(c *gin.Context) {
	engine, ok := cartEngine(c)
	if !ok {
		return
	}

	// À quantité 1, décrémenter ne retire pas le plat : c'est RemoveFromCart
	if err := engine.Dispatch(c.Request.Context(), cart.DecreaseQuantity{ItemID: c.Param("itemId")}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde panier"})
		return
	}

	c.JSON(http.StatusOK, cartResponse(engine.Cart()))
}

//
// 🧹 DELETE /api/cart/:restaurantId
//
func ClearCart(c *gin.Context) {
	engine, ok := cartEngine(c)
	if !ok {
		return
	}

	if err := engine.Dispatch(c.Request.Context(), cart.Clear{}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur vidage panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Panier vidé avec succès",
	})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

//
// 🧾 GET /api/orders/:orderId
//
// Page de confirmation : la commande relue est figée, le récapitulatif
// affiché est celui calculé au moment du submit.
func GetOrder(c *gin.Context) {
	clientID := c.GetString("client_id")
	if clientID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session client manquante"})
		return
	}

	order, err := loadOrder(clientID, c.Param("orderId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}

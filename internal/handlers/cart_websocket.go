package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"kplat_back_end/internal/database"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Autoriser toutes les origines (à ajuster en production)
		return true
	},
}

// CartWebSocket gère la synchronisation temps réel du panier entre onglets.
// Chaque écriture Redis publie sur le canal du panier, chaque onglet abonné
// reçoit l'état complet à jour.
func CartWebSocket(c *gin.Context) {
	clientID := c.GetString("client_id")
	if clientID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session client manquante"})
		return
	}
	restaurantID := c.Param("restaurantId")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("❌ Erreur upgrade WebSocket: %v", err)
		return
	}
	defer conn.Close()

	ctx := context.Background()

	// Le canal pubsub est la clé du panier
	channel := "cart:" + clientID + ":" + restaurantID
	pubsub := database.Redis.Subscribe(ctx, channel)
	defer pubsub.Close()

	ch := pubsub.Channel()

	conn.WriteJSON(map[string]interface{}{
		"type":    "connected",
		"message": "Synchronisation panier activée",
	})

	for {
		select {
		case msg := <-ch:
			if msg.Payload != "updated" && msg.Payload != "cleared" {
				continue
			}

			current, _, err := cartStore.Load(ctx, clientID, restaurantID)
			if err != nil {
				log.Printf("❌ Erreur relecture panier: %v", err)
				continue
			}

			response := cartResponse(current)
			response["type"] = "cart_updated"

			if err := conn.WriteJSON(response); err != nil {
				log.Printf("❌ Erreur envoi WebSocket: %v", err)
				return
			}
		case <-time.After(30 * time.Second):
			// Ping pour garder la connexion active
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const ClientIDCookie = "kplat_client_id"

// ClientSession attribue un identifiant de client anonyme via cookie.
// Les paniers sont rattachés à cet identifiant, connecté ou non : pas
// besoin de compte pour commencer à commander.
func ClientSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientID, err := c.Cookie(ClientIDCookie)
		if err != nil || clientID == "" {
			clientID = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			// 30 jours, aligné sur le TTL Redis des paniers
			c.SetCookie(ClientIDCookie, clientID, 30*24*3600, "/", "", false, true)
		}

		c.Set("client_id", clientID)
		c.Next()
	}
}

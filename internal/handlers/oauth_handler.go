package handlers

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
	"github.com/markbates/goth/gothic"

	"kplat_back_end/internal/auth"
	"kplat_back_end/internal/cache"
	"kplat_back_end/internal/database"
	"kplat_back_end/internal/models"
	"kplat_back_end/internal/utils"
)

type ctxKey string

const ProviderKey ctxKey = "provider"

const oauthStateTTL = 10 * time.Minute

// ================== AUTH SOCIALE ==================

func BeginAuth(c *gin.Context) {
	provider := c.Param("provider")
	if provider == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "aucun provider spécifié"})
		return
	}

	c.Request = c.Request.WithContext(
		context.WithValue(c.Request.Context(), ProviderKey, provider),
	)

	gothic.BeginAuthHandler(c.Writer, c.Request)
}

func CallbackAuth(c *gin.Context) {
	provider := c.Param("provider")
	if provider == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "aucun provider spécifié"})
		return
	}

	c.Request = c.Request.WithContext(
		context.WithValue(c.Request.Context(), ProviderKey, provider),
	)

	userInfo, err := gothic.CompleteUserAuth(c.Writer, c.Request)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	socialLogin(c, provider, auth.UserInfo{
		ID:    userInfo.UserID,
		Email: userInfo.Email,
		Name:  userInfo.Name,
	})
}

// AuthURL prépare un flux SPA/mobile : l'app ouvre elle-même la page
// d'autorisation puis reviendra poster le code sur /token.
func AuthURL(c *gin.Context) {
	provider, ok := Providers[c.Param("provider")]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Provider non supporté"})
		return
	}

	state := generateRandomState()
	if err := database.Redis.Set(context.Background(), "oauth_state:"+state, "1", oauthStateTTL).Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur préparation OAuth"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"url":   provider.GetAuthURL(state),
		"state": state,
	})
}

// ExchangeToken échange le code d'autorisation sans passer par gothic :
// le state doit avoir été émis par AuthURL et n'est valable qu'une fois.
func ExchangeToken(c *gin.Context) {
	provider, ok := Providers[c.Param("provider")]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Provider non supporté"})
		return
	}

	var input struct {
		Code  string `json:"code" binding:"required"`
		State string `json:"state" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Code et state requis"})
		return
	}

	ctx := c.Request.Context()
	deleted, err := database.Redis.Del(ctx, "oauth_state:"+input.State).Result()
	if err != nil || deleted == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "State OAuth invalide ou expiré"})
		return
	}

	token, err := provider.Exchange(ctx, input.Code)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Code d'autorisation invalide"})
		return
	}

	info, err := provider.FetchUser(ctx, token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Impossible de récupérer le profil"})
		return
	}

	socialLogin(c, provider.Name, info)
}

// socialLogin rattache l'identité provider à un compte Scylla (créé au
// premier passage) puis émet les tokens, quel que soit le flux d'entrée.
func socialLogin(c *gin.Context, provider string, info auth.UserInfo) {
	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	// Compte social existant ?
	var userID gocql.UUID
	user := models.User{
		Email:      info.Email,
		Name:       info.Name,
		Role:       "customer",
		Provider:   provider,
		ProviderID: info.ID,
	}

	err = session.Query(`SELECT user_id FROM users_by_email WHERE email = ?`, info.Email).Scan(&userID)
	if err != nil {
		// Création d'un nouvel utilisateur social
		userID = gocql.UUID(uuid.New())
		if err := session.Query(`INSERT INTO users
			(user_id, email, password, name, role, provider, provider_id, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			userID, user.Email, "", user.Name, user.Role, user.Provider, user.ProviderID, time.Now(),
		).Exec(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur enregistrement utilisateur"})
			return
		}
		if err := session.Query(`INSERT INTO users_by_email (email, user_id) VALUES (?, ?)`,
			user.Email, userID).Exec(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur enregistrement utilisateur"})
			return
		}
	}
	user.ID = userID.String()

	token, _ := utils.GenerateJWT(user)
	refreshToken := generateRefreshToken()
	if err := cache.StoreRefreshToken(user.ID, refreshToken, refreshTokenTTL); err == nil {
		c.JSON(http.StatusOK, gin.H{
			"token":         token,
			"refresh_token": refreshToken,
			"provider":      provider,
			"email":         user.Email,
			"name":          user.Name,
			"role":          user.Role,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":    token,
		"provider": provider,
		"email":    user.Email,
		"name":     user.Name,
		"role":     user.Role,
	})
}

func generateRandomState() string {
	b := make([]byte, 24)
	rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}

package handlers

import (
	"crypto/rand"
	"encoding/base64"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"

	"kplat_back_end/internal/cache"
	"kplat_back_end/internal/database"
	"kplat_back_end/internal/models"
	"kplat_back_end/internal/utils"
)

const refreshTokenTTL = 7 * 24 * time.Hour

// ================== AUTH LOCALE ==================

func CreateUser(c *gin.Context) {
	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// email déjà pris ?
	var existingID gocql.UUID
	err := database.GetPreparedGetUserByEmail().Bind(input.Email).Scan(&existingID)
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{
			"error": "Un compte avec cet email existe déjà",
			"email": input.Email,
		})
		return
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur hash mot de passe"})
		return
	}

	userID := gocql.UUID(uuid.New())
	user := models.User{
		ID:       userID.String(),
		Name:     input.Name,
		Email:    input.Email,
		Role:     "customer",
		Provider: "local",
	}

	if err := database.GetPreparedInsertUser().Bind(
		userID, user.Email, hashedPassword, user.Name, user.Role, user.Provider, "", time.Now(),
	).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création utilisateur"})
		return
	}
	if err := database.GetPreparedInsertUserByEmail().Bind(user.Email, userID).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création utilisateur"})
		return
	}

	token, _ := utils.GenerateJWT(user)
	refreshToken := generateRefreshToken()
	if err := cache.StoreRefreshToken(user.ID, refreshToken, refreshTokenTTL); err != nil {
		log.Println("⚠️ Erreur stockage refresh token:", err)
	}

	c.JSON(http.StatusCreated, gin.H{
		"token":         token,
		"refresh_token": refreshToken,
		"userId":        user.ID,
		"email":         user.Email,
		"name":          user.Name,
		"role":          user.Role,
	})
}

func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var userID gocql.UUID
	if err := database.GetPreparedGetUserByEmail().Bind(input.Email).Scan(&userID); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
		return
	}

	var email, password, name, role, provider, providerID string
	if err := database.GetPreparedGetUserByID().Bind(userID).Scan(
		&email, &password, &name, &role, &provider, &providerID); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
		return
	}

	ok, err := utils.VerifyPassword(input.Password, password)
	if err != nil || !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
		return
	}

	user := models.User{
		ID:       userID.String(),
		Email:    email,
		Name:     name,
		Role:     role,
		Provider: provider,
	}

	token, _ := utils.GenerateJWT(user)
	refreshToken := generateRefreshToken()
	if err := cache.StoreRefreshToken(user.ID, refreshToken, refreshTokenTTL); err != nil {
		log.Println("⚠️ Erreur stockage refresh token:", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"token":         token,
		"refresh_token": refreshToken,
		"userId":        user.ID,
		"email":         user.Email,
		"name":          user.Name,
		"role":          user.Role,
	})
}

func RefreshToken(c *gin.Context) {
	var input struct {
		UserID       string `json:"user_id" binding:"required"`
		RefreshToken string `json:"refresh_token" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	stored, err := cache.GetRefreshToken(input.UserID)
	if err != nil || stored != input.RefreshToken {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token invalide"})
		return
	}

	user, err := cache.GetUserFromCache(input.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur introuvable"})
		return
	}

	// Rotation : un refresh token ne sert qu'une fois
	token, _ := utils.GenerateJWT(*user)
	refreshToken := generateRefreshToken()
	if err := cache.StoreRefreshToken(user.ID, refreshToken, refreshTokenTTL); err != nil {
		log.Println("⚠️ Erreur stockage refresh token:", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"token":         token,
		"refresh_token": refreshToken,
	})
}

func Logout(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	// Révoque l'access token courant jusqu'à son expiration naturelle
	if tokenID := c.GetString("token_id"); tokenID != "" {
		if err := cache.BlacklistToken(tokenID, 24*time.Hour); err != nil {
			log.Println("⚠️ Erreur révocation token:", err)
		}
	}

	if err := cache.DeleteRefreshToken(userID); err != nil {
		log.Println("⚠️ Erreur suppression refresh token:", err)
	}
	cache.InvalidateUserCache(userID)

	c.JSON(http.StatusOK, gin.H{"message": "Déconnecté"})
}

func Me(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	user, err := cache.GetUserFromCache(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id": user.ID,
		"email":   user.Email,
		"name":    user.Name,
		"role":    user.Role,
	})
}

func generateRefreshToken() string {
	b := make([]byte, 32)
	rand.Read(b)
	return base64.URLEncoding.EncodeToString(b)
}

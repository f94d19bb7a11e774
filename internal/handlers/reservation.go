package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"

	"kplat_back_end/internal/catalog"
	"kplat_back_end/internal/database"
	"kplat_back_end/internal/models"
)

//
// 📅 POST /api/restaurants/:restaurantId/reservations
//
func CreateReservation(c *gin.Context) {
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

	var input struct {
		Name      string `json:"name" binding:"required"`
		Phone     string `json:"phone" binding:"required"`
		PartySize int    `json:"party_size" binding:"required,min=1"`
		Date      string `json:"date" binding:"required"`
		Time      string `json:"time" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	if _, err := time.Parse("2006-01-02", input.Date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Date invalide (format YYYY-MM-DD)"})
		return
	}
	if _, err := time.Parse("15:04", input.Time); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Heure invalide (format HH:MM)"})
		return
	}

	reservation := models.Reservation{
		ID:           uuid.NewString(),
		RestaurantID: restaurantID,
		Name:         input.Name,
		Phone:        input.Phone,
		PartySize:    input.PartySize,
		Date:         input.Date,
		Time:         input.Time,
		CreatedAt:    time.Now(),
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	reservationUUID, _ := uuid.Parse(reservation.ID)
	err = session.Query(`INSERT INTO reservations
		(reservation_id, restaurant_id, name, phone, party_size, date, time, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		gocql.UUID(reservationUUID), reservation.RestaurantID, reservation.Name,
		reservation.Phone, reservation.PartySize, reservation.Date,
		reservation.Time, reservation.CreatedAt,
	).Exec()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde réservation"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"reservation": reservation})
}

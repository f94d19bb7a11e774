package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"

	"kplat_back_end/internal/checkout"
	"kplat_back_end/internal/database"
	"kplat_back_end/internal/models"
	"kplat_back_end/internal/utils"
)

//
// 🚀 POST /api/checkout/start
//
// Dépose le snapshot du panier pour la page checkout. Le panier vivant
// n'est pas touché : abandonner le checkout ne perd rien.
func StartCheckout(c *gin.Context) {
	var input struct {
		RestaurantID string `json:"restaurant_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	clientID := c.GetString("client_id")
	if clientID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session client manquante"})
		return
	}

	current, _, err := cartStore.Load(c.Request.Context(), clientID, input.RestaurantID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture panier"})
		return
	}

	// Panier vide : pas de checkout possible
	if current.IsEmpty() {
		c.JSON(http.StatusConflict, gin.H{"error": "Panier vide"})
		return
	}

	if err := handoff.SaveHandoff(c.Writer, c.Request, current.Snapshot()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur préparation checkout"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Checkout prêt"})
}

//
// 📋 GET /api/checkout/session
//
// Consomme le hand-off (lecture unique) et installe la copie de travail.
// Un refresh de la page checkout retombe sur la copie de travail ; arriver
// ici sans hand-off ni copie renvoie vers le choix du restaurant.
func CheckoutSession(c *gin.Context) {
	snap, ok := handoff.PopHandoff(c.Writer, c.Request)
	if ok {
		// Nouveau checkout : la copie de travail remplace l'ancienne
		if err := handoff.ClearDraft(c.Writer, c.Request); err != nil {
			log.Println("⚠️ Erreur nettoyage draft:", err)
		}
		if err := handoff.SaveDraft(c.Writer, c.Request, snap); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur préparation checkout"})
			return
		}
	} else {
		// Pas de hand-off : refresh d'un checkout en cours ?
		snap, ok = handoff.Draft(c.Request)
		if !ok {
			c.JSON(http.StatusConflict, gin.H{
				"error":    "Aucune commande en cours",
				"redirect": "/choose",
			})
			return
		}
	}

	machine := checkout.NewMachine(snap)
	if raw, ok := handoff.FormDraft(c.Request); ok {
		var form checkout.Form
		if json.Unmarshal([]byte(raw), &form) == nil {
			_ = machine.SetForm(form)
		}
	}

	summary := checkout.Rounded(checkout.Summarize(machine.Lines(), checkout.DefaultTaxRate, checkout.DefaultDeliveryFee))

	c.JSON(http.StatusOK, gin.H{
		"restaurant_id": snap.RestaurantID,
		"items":         machine.Lines(),
		"form":          machine.Form(),
		"summary":       summary,
	})
}

//
// ✏️ POST /api/checkout/field
//
// Normalise et enregistre la saisie d'un champ du formulaire.
func CheckoutField(c *gin.Context) {
	var input struct {
		Field string `json:"field" binding:"required"`
		Value string `json:"value"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	snap, ok := handoff.Draft(c.Request)
	if !ok {
		c.JSON(http.StatusConflict, gin.H{
			"error":    "Aucune commande en cours",
			"redirect": "/choose",
		})
		return
	}

	machine := checkout.NewMachine(snap)
	if raw, ok := handoff.FormDraft(c.Request); ok {
		var form checkout.Form
		if json.Unmarshal([]byte(raw), &form) == nil {
			_ = machine.SetForm(form)
		}
	}

	value, err := machine.SetField(input.Field, input.Value)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	formJSON, _ := json.Marshal(machine.Form())
	if err := handoff.SaveFormDraft(c.Writer, c.Request, string(formJSON)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde formulaire"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"field": input.Field,
		"value": value,
	})
}

//
// ✅ POST /api/checkout/submit
//
func SubmitCheckout(c *gin.Context) {
	clientID := c.GetString("client_id")
	if clientID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session client manquante"})
		return
	}

	snap, ok := handoff.Draft(c.Request)
	if !ok {
		c.JSON(http.StatusConflict, gin.H{
			"error":    "Aucune commande en cours",
			"redirect": "/choose",
		})
		return
	}

	machine := checkout.NewMachine(snap)

	// Le body peut porter le formulaire complet (soumission de la page),
	// sinon on relit la copie enregistrée champ par champ
	var form checkout.Form
	if err := c.ShouldBindJSON(&form); err != nil {
		if raw, ok := handoff.FormDraft(c.Request); ok {
			_ = json.Unmarshal([]byte(raw), &form)
		}
	}
	if err := machine.SetForm(form); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	order, fieldErrors, err := machine.Submit()
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	if fieldErrors != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": fieldErrors})
		return
	}

	if err := persistOrder(clientID, *order); err != nil {
		log.Println("❌ Erreur sauvegarde commande:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde commande"})
		return
	}

	// Checkout terminé : copie de travail et panier long-vécu disparaissent
	if err := handoff.ClearDraft(c.Writer, c.Request); err != nil {
		log.Println("⚠️ Erreur nettoyage draft:", err)
	}
	if err := cartStore.Delete(c.Request.Context(), clientID, order.RestaurantID); err != nil {
		log.Println("⚠️ Erreur vidage panier:", err)
	}

	// Confirmation par email avec reçu PDF, hors du chemin de la réponse
	go sendOrderConfirmation(*order)

	c.JSON(http.StatusCreated, gin.H{"order": order})
}

func sendOrderConfirmation(order models.Order) {
	if order.Customer.Email == "" {
		return
	}

	qr, err := utils.GenerateOrderQR(order.ID)
	if err != nil {
		log.Println("⚠️ Erreur génération QR:", err)
	}

	pdf, err := utils.RenderReceiptPDF(order, qr)
	if err != nil {
		log.Println("⚠️ Erreur génération reçu PDF:", err)
		pdf = nil
	}

	html := utils.GenerateOrderConfirmationHTML(order)
	subject := "🍽️ Your Kplat order " + order.Number
	if err := utils.SendConfirmationEmail(order.Customer.Email, subject, html, pdf); err != nil {
		log.Println("❌ Erreur envoi email confirmation:", err)
	}
}

func persistOrder(clientID string, order models.Order) error {
	session, err := database.GetOrdersSession()
	if err != nil {
		return err
	}

	orderUUID, err := uuid.Parse(order.ID)
	if err != nil {
		return err
	}

	linesJSON, err := json.Marshal(order.Lines)
	if err != nil {
		return err
	}

	return session.Query(`INSERT INTO orders (
		order_id, number, restaurant_id, client_id,
		customer_name, customer_email, customer_phone,
		address, city, state, postal_code, instructions,
		payment_method, card_last4, card_name,
		lines, subtotal, tax, delivery_fee, grand_total,
		status, created_at, estimated_delivery
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		gocql.UUID(orderUUID), order.Number, order.RestaurantID, clientID,
		order.Customer.Name, order.Customer.Email, order.Customer.Phone,
		order.Delivery.Address, order.Delivery.City, order.Delivery.State,
		order.Delivery.PostalCode, order.Delivery.Instructions,
		order.Payment.Method, order.Payment.CardLast4, order.Payment.CardName,
		string(linesJSON), order.Summary.Subtotal, order.Summary.Tax,
		order.Summary.DeliveryFee, order.Summary.GrandTotal,
		order.Status, order.CreatedAt, order.EstimatedDelivery,
	).Exec()
}

// loadOrder relit une commande persistée, scopée au client qui l'a passée
func loadOrder(clientID, orderID string) (*models.Order, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return nil, err
	}

	orderUUID, err := uuid.Parse(orderID)
	if err != nil {
		return nil, err
	}

	var (
		order      models.Order
		ownerID    string
		linesJSON  string
		createdAt  time.Time
		estimateAt time.Time
	)

	err = session.Query(`SELECT number, restaurant_id, client_id,
		customer_name, customer_email, customer_phone,
		address, city, state, postal_code, instructions,
		payment_method, card_last4, card_name,
		lines, subtotal, tax, delivery_fee, grand_total,
		status, created_at, estimated_delivery
		FROM orders WHERE order_id = ?`, gocql.UUID(orderUUID)).Scan(
		&order.Number, &order.RestaurantID, &ownerID,
		&order.Customer.Name, &order.Customer.Email, &order.Customer.Phone,
		&order.Delivery.Address, &order.Delivery.City, &order.Delivery.State,
		&order.Delivery.PostalCode, &order.Delivery.Instructions,
		&order.Payment.Method, &order.Payment.CardLast4, &order.Payment.CardName,
		&linesJSON, &order.Summary.Subtotal, &order.Summary.Tax,
		&order.Summary.DeliveryFee, &order.Summary.GrandTotal,
		&order.Status, &createdAt, &estimateAt,
	)
	if err != nil {
		return nil, err
	}

	if ownerID != clientID {
		return nil, gocql.ErrNotFound
	}

	order.ID = orderID
	order.CreatedAt = createdAt
	order.EstimatedDelivery = estimateAt
	if err := json.Unmarshal([]byte(linesJSON), &order.Lines); err != nil {
		return nil, err
	}

	return &order, nil
}

package routes

import (
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"kplat_back_end/internal/handlers"
	"kplat_back_end/internal/middleware"
)

func RegisterRoutes(r *gin.Engine) {
	frontURL := os.Getenv("STOREFRONT_URL")
	if frontURL == "" {
		frontURL = "http://localhost:3000"
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{frontURL},
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Use(middleware.APIRateLimit())
	r.Use(middleware.ClientSession())

	api := r.Group("/api")

	// Catalogue
	api.GET("/restaurants", handlers.ListRestaurants)
	api.GET("/restaurants/search", middleware.SearchRateLimit(), handlers.SearchRestaurants)
	api.GET("/restaurants/:restaurantId", handlers.GetRestaurant)
	api.GET("/restaurants/:restaurantId/menu", handlers.GetMenu)
	api.POST("/restaurants/:restaurantId/reservations", handlers.CreateReservation)

	// Panier
	cartGroup := api.Group("/cart/:restaurantId")
	cartGroup.GET("", handlers.GetCart)
	cartGroup.DELETE("", middleware.CartRateLimit(), handlers.ClearCart)
	cartGroup.POST("/items", middleware.CartRateLimit(), handlers.AddToCart)
	cartGroup.DELETE("/items/:itemId", middleware.CartRateLimit(), handlers.RemoveFromCart)
	cartGroup.POST("/items/:itemId/increase", middleware.CartRateLimit(), handlers.IncreaseQuantity)
	cartGroup.POST("/items/:itemId/decrease", middleware.CartRateLimit(), handlers.DecreaseQuantity)
	cartGroup.GET("/ws", handlers.CartWebSocket)

	// Checkout
	api.POST("/checkout/start", handlers.StartCheckout)
	api.GET("/checkout/session", handlers.CheckoutSession)
	api.POST("/checkout/field", handlers.CheckoutField)
	api.POST("/checkout/submit", handlers.SubmitCheckout)

	// Commandes
	api.GET("/orders/:orderId", handlers.GetOrder)

	// Auth
	api.POST("/auth/register", handlers.CreateUser)
	api.POST("/auth/login", middleware.LoginRateLimit(), handlers.Login)
	api.POST("/auth/refresh", handlers.RefreshToken)
	api.POST("/auth/logout", middleware.AuthRequired(), handlers.Logout)
	api.GET("/auth/me", middleware.AuthRequired(), handlers.Me)
	api.GET("/auth/:provider", handlers.BeginAuth)
	api.GET("/auth/:provider/callback", handlers.CallbackAuth)
	api.GET("/auth/:provider/url", handlers.AuthURL)
	api.POST("/auth/:provider/token", handlers.ExchangeToken)
}

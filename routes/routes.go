package routes

import (
	"log"
	"net/http"
	"strconv"

	"formhub/handlers"
	"formhub/middleware"
	"formhub/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

func SetupRoutes(
	router *gin.Engine,
	authHandler *handlers.AuthHandler,
	formHandler *handlers.FormHandler,
	publicHandler *handlers.PublicHandler,
	hub *services.Hub,
	formService *services.FormService,
	jwtSecret string,
) {
	// API routes
	api := router.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.GET("/verify", authHandler.Verify)
		}

		// Protected routes
		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware(jwtSecret))
		{
			// User profile
			protected.GET("/auth/profile", authHandler.GetProfile)

			// Owner form listings
			protected.GET("/my-forms", formHandler.GetUserForms)
			protected.GET("/my-forms/published", formHandler.GetUserPublishedForms)

			// Access-mode settings, applied across the owner's published forms
			protected.PATCH("/form-settings/:mode", formHandler.SetAccessMode)

			// Form routes (owner only)
			forms := protected.Group("/forms")
			{
				forms.POST("", formHandler.CreateForm)
				forms.GET("/:id", formHandler.GetFormByID)
				forms.PUT("/:id", formHandler.UpdateForm)
				forms.DELETE("/:id", formHandler.DeleteForm)
				forms.PATCH("/:id/publish", formHandler.PublishForm)
				forms.GET("/:id/answers", formHandler.GetFormAnswers)
			}
		}

		// Respondent-facing routes
		public := api.Group("/public")
		public.Use(middleware.OptionalAuth(jwtSecret))
		{
			public.POST("/register", authHandler.RegisterRespondent)
			public.GET("/forms/:mode/:publicId", publicHandler.GetPublicForm)
			public.POST("/answers/:publicId", publicHandler.SubmitAnswers)
		}
	}

	// WebSocket endpoint: the form owner watches responses arrive live.
	// Browsers cannot set headers on websocket requests, so the token rides
	// in a query parameter.
	router.GET("/ws/forms/:id", func(c *gin.Context) {
		formID, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid form ID"})
			return
		}

		email, err := middleware.ParseIdentity(c.Query("token"), jwtSecret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		// Ownership check before the upgrade; only the owner may watch.
		if _, err := formService.GetFormByID(uint(formID), email); err != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed to watch this form"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("WebSocket upgrade failed for form %d (%s): %v", formID, email, err)
			return
		}

		log.Printf("WebSocket connection established for form %d (%s)", formID, email)
		hub.RegisterClient(conn, uint(formID), email)
	})

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

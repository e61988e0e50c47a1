package main

import (
	"log"

	"formhub/config"
	"formhub/handlers"
	"formhub/middleware"
	"formhub/models"
	"formhub/routes"
	"formhub/services"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database models
	err = db.AutoMigrate(
		&models.User{},
		&models.Form{},
		&models.Question{},
		&models.Answer{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize Redis-backed public form cache
	redisClient := config.InitRedis(cfg)
	cache := services.NewFormCache(redisClient)

	// Initialize websocket hub for live response feeds
	hub := services.NewHub()
	go hub.Run()

	// Initialize services
	mailer := services.NewMailer(cfg)
	apiBaseURL := "http://" + cfg.BindAddress + ":" + cfg.Port
	authService := services.NewAuthService(db, cfg.JWTSecret, cfg.TokenTTL, mailer, apiBaseURL)
	formService := services.NewFormService(db, cache)
	publishService := services.NewPublishService(db, cache, cfg.PublicBaseURL)
	accessService := services.NewAccessService(db, cache)
	answerService := services.NewAnswerService(db, hub)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	formHandler := handlers.NewFormHandler(formService, publishService)
	publicHandler := handlers.NewPublicHandler(accessService, answerService)

	// Setup Gin router
	router := gin.Default()

	// Add CORS middleware
	router.Use(middleware.CORS())

	// Setup routes
	routes.SetupRoutes(router, authHandler, formHandler, publicHandler, hub, formService, cfg.JWTSecret)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/prabhath004/quizly/internal/api"
	"github.com/prabhath004/quizly/internal/api/handlers"
	"github.com/prabhath004/quizly/internal/config"
	"github.com/prabhath004/quizly/internal/database"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize Router
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	// Initialize Database
	if err := database.Initialize(cfg); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	// Wire handler dependencies (storage, AI client)
	if err := handlers.Setup(cfg); err != nil {
		log.Fatal("Failed to initialize handlers:", err)
	}

	// Initialize Routes
	api.SetupRoutes(router, cfg)

	// Start Server
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

package api

import (
	"github.com/prabhath004/quizly/internal/api/handlers"
	"github.com/prabhath004/quizly/internal/api/middleware"
	"github.com/prabhath004/quizly/internal/config"

	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all application routes
func SetupRoutes(router *gin.Engine, cfg *config.Config) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		setupPublicRoutes(v1)

		// Protected routes
		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(cfg))
		setupProtectedRoutes(protected)
	}
}

// setupPublicRoutes configures routes that don't require authentication
func setupPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", handlers.HealthCheck)

	auth := rg.Group("/auth")
	{
		auth.POST("/register", handlers.Register)
		auth.POST("/login", handlers.Login)
	}
}

// setupProtectedRoutes configures routes that require authentication
func setupProtectedRoutes(rg *gin.RouterGroup) {
	rg.GET("/auth/me", handlers.Me)

	// Folder routes
	folders := rg.Group("/folders")
	{
		folders.POST("", handlers.CreateFolder)
		folders.GET("", handlers.ListFolders)
		folders.PUT("/:id", handlers.UpdateFolder)
		folders.DELETE("/:id", handlers.DeleteFolder)
		folders.PUT("/:id/decks/order", handlers.ReorderDecks)
	}

	// Deck routes
	decks := rg.Group("/decks")
	{
		decks.GET("", handlers.ListDecks)
		decks.GET("/:id", handlers.GetDeck)
		decks.PUT("/:id", handlers.UpdateDeck)
		decks.DELETE("/:id", handlers.DeleteDeck)
		decks.GET("/:id/flashcards", handlers.ListDeckFlashcards)
	}

	// Flashcard routes
	flashcards := rg.Group("/flashcards")
	{
		flashcards.POST("", handlers.CreateFlashcard)
		flashcards.PUT("/:id", handlers.UpdateFlashcard)
		flashcards.DELETE("/:id", handlers.DeleteFlashcard)
	}

	// Study session routes
	sessions := rg.Group("/sessions")
	{
		sessions.POST("", handlers.CreateSession)
		sessions.GET("", handlers.ListSessions)
		sessions.POST("/:id/answers", handlers.SubmitAnswer)
		sessions.PUT("/:id/end", handlers.EndSession)
		sessions.GET("/:id/stats", handlers.SessionStats)
	}

	// AI routes
	ai := rg.Group("/ai")
	{
		ai.POST("/generate", handlers.GenerateFlashcards)
		ai.POST("/evaluate", handlers.EvaluateAnswer)
		ai.GET("/embedding", handlers.GetEmbedding)
	}

	// File routes
	files := rg.Group("/files")
	{
		files.POST("", handlers.UploadFile)
		files.GET("/*filepath", handlers.ServeFile)
	}

	// Export routes
	export := rg.Group("/export")
	{
		export.GET("/csv", handlers.ExportCSV)
		export.GET("/json", handlers.ExportJSON)
	}
}

package handlers

import (
	"github.com/prabhath004/quizly/internal/ai"
	"github.com/prabhath004/quizly/internal/config"
	"github.com/prabhath004/quizly/internal/storage"

	"github.com/gin-gonic/gin"
)

var (
	cfg         *config.Config
	aiClient    *ai.Client
	fileStorage storage.Storage
)

// Setup wires handler dependencies. Must be called before routes are served.
func Setup(c *config.Config) error {
	cfg = c
	aiClient = ai.NewClient(c.AI)

	store, err := storage.New(c)
	if err != nil {
		return err
	}
	fileStorage = store
	return nil
}

func currentUserID(c *gin.Context) uint {
	userID, _ := c.Get("user_id")
	return userID.(uint)
}

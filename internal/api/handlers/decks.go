package handlers

import (
	"log"
	"net/http"

	"github.com/prabhath004/quizly/internal/database"
	"github.com/prabhath004/quizly/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ListDecks returns the user's decks with flashcard counts. Decks inside a
// folder come back in their order index sequence.
func ListDecks(c *gin.Context) {
	userID := currentUserID(c)
	db := database.GetDB()

	query := db.Where("user_id = ?", userID)
	if folderID := c.Query("folder_id"); folderID != "" {
		if folderID == "root" {
			query = query.Where("folder_id IS NULL")
		} else {
			query = query.Where("folder_id = ?", folderID)
		}
	}

	var decks []models.Deck
	if err := query.
		Order("order_index ASC NULLS LAST").
		Order("created_at DESC").
		Find(&decks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve decks"})
		return
	}

	for i := range decks {
		var count int64
		if err := db.Model(&models.Flashcard{}).Where("deck_id = ?", decks[i].ID).Count(&count).Error; err != nil {
			continue
		}
		decks[i].CardCount = count
	}

	c.JSON(http.StatusOK, gin.H{"decks": decks})
}

// GetDeck returns a single deck with its flashcard count.
func GetDeck(c *gin.Context) {
	userID := currentUserID(c)

	var deck models.Deck
	if err := database.GetDB().Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&deck).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Deck not found"})
		return
	}

	var count int64
	if err := database.GetDB().Model(&models.Flashcard{}).Where("deck_id = ?", deck.ID).Count(&count).Error; err == nil {
		deck.CardCount = count
	}

	c.JSON(http.StatusOK, deck)
}

// UpdateDeck renames a deck or moves it between folders. Moving a deck clears
// its order index; the new folder's ordering is set by a later reorder call.
func UpdateDeck(c *gin.Context) {
	var input struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Difficulty  *string `json:"difficulty"`
		FolderID    *string `json:"folder_id"`
		MoveToRoot  bool    `json:"move_to_root"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := currentUserID(c)
	var deck models.Deck

	if err := database.GetDB().Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&deck).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Deck not found"})
		return
	}

	updates := map[string]interface{}{}
	if input.Title != nil && *input.Title != "" {
		updates["title"] = *input.Title
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Difficulty != nil {
		if !models.ValidDifficulty(*input.Difficulty) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid difficulty"})
			return
		}
		updates["difficulty"] = *input.Difficulty
	}

	if input.MoveToRoot {
		updates["folder_id"] = nil
		updates["order_index"] = nil
	} else if input.FolderID != nil {
		var folder models.Folder
		if err := database.GetDB().Where("id = ? AND user_id = ?", *input.FolderID, userID).First(&folder).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Folder not found"})
			return
		}
		updates["folder_id"] = folder.ID
		updates["order_index"] = nil
	}

	if len(updates) == 0 {
		c.JSON(http.StatusOK, deck)
		return
	}

	if err := database.GetDB().Model(&deck).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update deck"})
		return
	}

	c.JSON(http.StatusOK, deck)
}

// DeleteDeck removes a deck and all of its flashcards.
func DeleteDeck(c *gin.Context) {
	userID := currentUserID(c)

	var deck models.Deck
	if err := database.GetDB().Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&deck).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Deck not found"})
		return
	}

	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("deck_id = ?", deck.ID).Delete(&models.Flashcard{}).Error; err != nil {
			return err
		}
		return tx.Delete(&deck).Error
	})
	if err != nil {
		log.Printf("Delete deck error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete deck"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Deck deleted successfully", "deck_id": deck.ID})
}

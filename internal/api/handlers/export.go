package handlers

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/prabhath004/quizly/internal/database"
	"github.com/prabhath004/quizly/internal/models"

	"github.com/gin-gonic/gin"
)

// ExportCSV writes the user's decks and flashcards as CSV.
func ExportCSV(c *gin.Context) {
	userID := currentUserID(c)

	var decks []models.Deck
	if err := database.GetDB().Where("user_id = ?", userID).Find(&decks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch decks"})
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment;filename=quizly_export.csv")

	writer := csv.NewWriter(c.Writer)
	if err := writer.Write([]string{"Deck ID", "Deck Title", "Card ID", "Question", "Answer", "Difficulty", "Question Type", "Created At"}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write CSV header"})
		return
	}

	for _, deck := range decks {
		var cards []models.Flashcard
		if err := database.GetDB().Where("deck_id = ?", deck.ID).Find(&cards).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch flashcards"})
			return
		}

		for _, card := range cards {
			if err := writer.Write([]string{
				deck.ID,
				deck.Title,
				card.ID,
				card.Question,
				card.Answer,
				card.Difficulty,
				card.QuestionType,
				card.CreatedAt.String(),
			}); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write CSV data"})
				return
			}
		}
	}

	writer.Flush()
}

// ExportJSON writes the user's decks with nested flashcards as JSON.
func ExportJSON(c *gin.Context) {
	userID := currentUserID(c)

	var decks []models.Deck
	if err := database.GetDB().Where("user_id = ?", userID).Find(&decks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch decks"})
		return
	}

	type deckExport struct {
		models.Deck
		Flashcards []models.Flashcard `json:"flashcards"`
	}

	export := make([]deckExport, 0, len(decks))
	for _, deck := range decks {
		var cards []models.Flashcard
		if err := database.GetDB().Where("deck_id = ?", deck.ID).Find(&cards).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch flashcards"})
			return
		}
		export = append(export, deckExport{Deck: deck, Flashcards: cards})
	}

	jsonData, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to marshal JSON"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment;filename=%s", "quizly_export.json"))
	c.Data(http.StatusOK, "application/json", jsonData)
}

package handlers

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/prabhath004/quizly/internal/ai"
	"github.com/prabhath004/quizly/internal/database"
	"github.com/prabhath004/quizly/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GenerateFlashcards builds a deck of AI-generated cards from text content or
// an uploaded plain-text document and optionally persists it.
func GenerateFlashcards(c *gin.Context) {
	deckTitle := c.DefaultPostForm("deck_title", "Generated Deck")
	difficulty := c.DefaultPostForm("difficulty_level", models.DifficultyMedium)
	questionType := c.DefaultPostForm("question_type", models.QuestionFreeResponse)
	saveToDB := c.DefaultPostForm("save_to_db", "true") == "true"

	numFlashcards, err := strconv.Atoi(c.DefaultPostForm("num_flashcards", "10"))
	if err != nil || numFlashcards < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "num_flashcards must be a positive number"})
		return
	}
	if numFlashcards > cfg.AI.MaxFlashcards {
		numFlashcards = cfg.AI.MaxFlashcards
	}

	if !models.ValidDifficulty(difficulty) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid difficulty"})
		return
	}
	if !models.ValidQuestionType(questionType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid question type"})
		return
	}

	textContent := strings.TrimSpace(c.PostForm("text_content"))
	if file, err := c.FormFile("file"); err == nil && file != nil {
		if file.Size > cfg.Storage.MaxUploadSize {
			c.JSON(http.StatusBadRequest, gin.H{"error": "File too large"})
			return
		}
		f, err := file.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open file"})
			return
		}
		defer f.Close()

		data, err := io.ReadAll(f)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})
			return
		}
		textContent = string(data)
	}

	if textContent == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Either provide text content or upload a file"})
		return
	}

	result, err := aiClient.GenerateFlashcards(c.Request.Context(), ai.GenerationRequest{
		TextContent:   textContent,
		DeckTitle:     deckTitle,
		Difficulty:    difficulty,
		QuestionType:  questionType,
		NumFlashcards: numFlashcards,
	})
	if err != nil {
		log.Printf("Flashcard generation error: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Flashcard generation failed"})
		return
	}

	if !saveToDB {
		c.JSON(http.StatusOK, gin.H{
			"flashcards":      result.Cards,
			"processing_time": result.ProcessingTime.Seconds(),
			"tokens_used":     result.TokensUsed,
		})
		return
	}

	userID := currentUserID(c)
	deck := models.Deck{
		UserID:       userID,
		Title:        deckTitle,
		Description:  fmt.Sprintf("%s flashcards - %s difficulty", strings.ToUpper(questionType), difficulty),
		Difficulty:   difficulty,
		QuestionType: questionType,
	}

	var saved []models.Flashcard
	err = database.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&deck).Error; err != nil {
			return err
		}

		for _, card := range result.Cards {
			flashcard := models.Flashcard{
				DeckID:       deck.ID,
				Question:     card.Question,
				Answer:       card.Answer,
				Difficulty:   card.Difficulty,
				QuestionType: card.QuestionType,
				Tags:         card.Tags,
			}
			if card.QuestionType != models.QuestionFreeResponse {
				index := card.CorrectOptionIndex
				flashcard.Options = card.Options
				flashcard.CorrectOptionIndex = &index
			}
			if err := tx.Create(&flashcard).Error; err != nil {
				return err
			}
			saved = append(saved, flashcard)
		}
		return nil
	})
	if err != nil {
		log.Printf("Error saving generated deck: %v", err)
		// The cards were generated; hand them back even though saving failed.
		c.JSON(http.StatusOK, gin.H{
			"deck_id":         nil,
			"error":           "Failed to save to database",
			"flashcards":      result.Cards,
			"processing_time": result.ProcessingTime.Seconds(),
			"tokens_used":     result.TokensUsed,
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"deck_id":         deck.ID,
		"deck_title":      deck.Title,
		"question_type":   questionType,
		"difficulty":      difficulty,
		"flashcards":      saved,
		"saved_count":     len(saved),
		"processing_time": result.ProcessingTime.Seconds(),
		"tokens_used":     result.TokensUsed,
	})
}

// GetEmbedding returns the embedding vector for a piece of text. Useful for
// inspecting what the similarity grading actually compares.
func GetEmbedding(c *gin.Context) {
	text := strings.TrimSpace(c.Query("text"))
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text query parameter is required"})
		return
	}

	vector, err := aiClient.Embedding(c.Request.Context(), text)
	if err != nil {
		log.Printf("Embedding error: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Embedding request failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"text":       text,
		"text_hash":  ai.TextHash(text),
		"dimensions": len(vector),
		"embedding":  vector,
	})
}

// EvaluateAnswer grades an ad-hoc answer outside a study session.
func EvaluateAnswer(c *gin.Context) {
	var input struct {
		QuestionType       string `json:"question_type" binding:"required"`
		UserAnswer         string `json:"user_answer" binding:"required"`
		CorrectAnswer      string `json:"correct_answer"`
		CorrectOptionIndex *int   `json:"correct_option_index"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "question_type and user_answer are required"})
		return
	}
	if !models.ValidQuestionType(input.QuestionType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid question type"})
		return
	}

	if input.QuestionType == models.QuestionFreeResponse {
		if input.CorrectAnswer == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "correct_answer is required for free response"})
			return
		}
		eval, err := aiClient.EvaluateFreeResponse(c.Request.Context(), input.UserAnswer, input.CorrectAnswer, cfg.AI.SimilarityThreshold)
		if err != nil {
			log.Printf("Answer evaluation error: %v", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "Answer evaluation failed"})
			return
		}
		c.JSON(http.StatusOK, eval)
		return
	}

	selected, err := strconv.Atoi(input.UserAnswer)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "For MCQ and true/false, user_answer must be the option index"})
		return
	}

	correct := 0
	if input.CorrectOptionIndex != nil {
		correct = *input.CorrectOptionIndex
	}

	c.JSON(http.StatusOK, ai.EvaluateOption(input.QuestionType, selected, correct))
}

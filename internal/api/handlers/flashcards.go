package handlers

import (
	"net/http"

	"github.com/prabhath004/quizly/internal/database"
	"github.com/prabhath004/quizly/internal/models"

	"github.com/gin-gonic/gin"
)

// deckForUser loads a deck and enforces ownership.
func deckForUser(c *gin.Context, deckID string) (*models.Deck, bool) {
	var deck models.Deck
	if err := database.GetDB().Where("id = ?", deckID).First(&deck).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Deck not found"})
		return nil, false
	}
	if deck.UserID != currentUserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return nil, false
	}
	return &deck, true
}

// ListDeckFlashcards returns a deck's flashcards together with the deck,
// the payload study pages consume.
func ListDeckFlashcards(c *gin.Context) {
	deck, ok := deckForUser(c, c.Param("id"))
	if !ok {
		return
	}

	var flashcards []models.Flashcard
	if err := database.GetDB().Where("deck_id = ?", deck.ID).
		Order("created_at ASC").
		Find(&flashcards).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve flashcards"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"flashcards": flashcards, "deck": deck})
}

type flashcardInput struct {
	Question           string   `json:"question" binding:"required"`
	Answer             string   `json:"answer" binding:"required"`
	Difficulty         string   `json:"difficulty"`
	QuestionType       string   `json:"question_type"`
	Options            []string `json:"mcq_options"`
	CorrectOptionIndex *int     `json:"correct_option_index"`
	Tags               []string `json:"tags"`
}

func (in *flashcardInput) validate() string {
	if in.Difficulty == "" {
		in.Difficulty = models.DifficultyMedium
	}
	if in.QuestionType == "" {
		in.QuestionType = models.QuestionFreeResponse
	}
	if !models.ValidDifficulty(in.Difficulty) {
		return "Invalid difficulty"
	}
	if !models.ValidQuestionType(in.QuestionType) {
		return "Invalid question type"
	}
	if in.QuestionType != models.QuestionFreeResponse {
		if len(in.Options) < 2 {
			return "Option questions need at least two options"
		}
		if in.CorrectOptionIndex == nil || *in.CorrectOptionIndex < 0 || *in.CorrectOptionIndex >= len(in.Options) {
			return "correct_option_index must point at one of the options"
		}
	}
	return ""
}

// CreateFlashcard adds a card to one of the user's decks.
func CreateFlashcard(c *gin.Context) {
	var input struct {
		flashcardInput
		DeckID string `json:"deck_id" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "deck_id, question and answer are required"})
		return
	}
	if msg := input.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	if _, ok := deckForUser(c, input.DeckID); !ok {
		return
	}

	flashcard := models.Flashcard{
		DeckID:             input.DeckID,
		Question:           input.Question,
		Answer:             input.Answer,
		Difficulty:         input.Difficulty,
		QuestionType:       input.QuestionType,
		Options:            input.Options,
		CorrectOptionIndex: input.CorrectOptionIndex,
		Tags:               input.Tags,
	}

	if err := database.GetDB().Create(&flashcard).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create flashcard"})
		return
	}

	c.JSON(http.StatusCreated, flashcard)
}

// flashcardForUser loads a card and enforces ownership through its deck.
func flashcardForUser(c *gin.Context, id string) (*models.Flashcard, bool) {
	var flashcard models.Flashcard
	if err := database.GetDB().Where("id = ?", id).First(&flashcard).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Flashcard not found"})
		return nil, false
	}

	var deck models.Deck
	if err := database.GetDB().Where("id = ?", flashcard.DeckID).First(&deck).Error; err != nil || deck.UserID != currentUserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return nil, false
	}
	return &flashcard, true
}

// UpdateFlashcard applies partial updates to a card.
func UpdateFlashcard(c *gin.Context) {
	var input struct {
		Question           *string  `json:"question"`
		Answer             *string  `json:"answer"`
		Difficulty         *string  `json:"difficulty"`
		QuestionType       *string  `json:"question_type"`
		Options            []string `json:"mcq_options"`
		CorrectOptionIndex *int     `json:"correct_option_index"`
		Tags               []string `json:"tags"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	flashcard, ok := flashcardForUser(c, c.Param("id"))
	if !ok {
		return
	}

	updates := map[string]interface{}{}
	if input.Question != nil {
		updates["question"] = *input.Question
	}
	if input.Answer != nil {
		updates["answer"] = *input.Answer
	}
	if input.Difficulty != nil {
		if !models.ValidDifficulty(*input.Difficulty) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid difficulty"})
			return
		}
		updates["difficulty"] = *input.Difficulty
	}
	if input.QuestionType != nil {
		if !models.ValidQuestionType(*input.QuestionType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid question type"})
			return
		}
		updates["question_type"] = *input.QuestionType
	}
	if input.Options != nil {
		updates["options"] = models.StringList(input.Options)
		if input.CorrectOptionIndex != nil {
			if *input.CorrectOptionIndex < 0 || *input.CorrectOptionIndex >= len(input.Options) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "correct_option_index must point at one of the options"})
				return
			}
			updates["correct_option_index"] = *input.CorrectOptionIndex
		}
	}
	if input.Tags != nil {
		updates["tags"] = models.StringList(input.Tags)
	}

	if len(updates) == 0 {
		c.JSON(http.StatusOK, flashcard)
		return
	}

	if err := database.GetDB().Model(flashcard).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update flashcard"})
		return
	}

	c.JSON(http.StatusOK, flashcard)
}

// DeleteFlashcard removes a single card.
func DeleteFlashcard(c *gin.Context) {
	flashcard, ok := flashcardForUser(c, c.Param("id"))
	if !ok {
		return
	}

	if err := database.GetDB().Delete(flashcard).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete flashcard"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Flashcard deleted successfully", "flashcard_id": flashcard.ID})
}

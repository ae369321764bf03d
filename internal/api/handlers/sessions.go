package handlers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/prabhath004/quizly/internal/ai"
	"github.com/prabhath004/quizly/internal/database"
	"github.com/prabhath004/quizly/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateSession starts a study session on one of the user's decks.
func CreateSession(c *gin.Context) {
	var input struct {
		DeckID string `json:"deck_id" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "deck_id is required"})
		return
	}

	if _, ok := deckForUser(c, input.DeckID); !ok {
		return
	}

	session := models.StudySession{
		UserID: currentUserID(c),
		DeckID: input.DeckID,
	}

	if err := database.GetDB().Create(&session).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Session creation failed"})
		return
	}

	c.JSON(http.StatusCreated, session)
}

// ListSessions returns the user's study sessions, newest first.
func ListSessions(c *gin.Context) {
	var sessions []models.StudySession
	if err := database.GetDB().
		Where("user_id = ?", currentUserID(c)).
		Order("started_at DESC").
		Find(&sessions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve sessions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

// sessionForUser loads a session and enforces ownership.
func sessionForUser(c *gin.Context, id string) (*models.StudySession, bool) {
	var session models.StudySession
	if err := database.GetDB().Where("id = ? AND user_id = ?", id, currentUserID(c)).First(&session).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return nil, false
	}
	return &session, true
}

// SubmitAnswer grades one answer within a session, stores the result, and
// bumps the session counters.
func SubmitAnswer(c *gin.Context) {
	var input struct {
		FlashcardID string `json:"flashcard_id" binding:"required"`
		UserAnswer  string `json:"user_answer" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "flashcard_id and user_answer are required"})
		return
	}

	session, ok := sessionForUser(c, c.Param("id"))
	if !ok {
		return
	}
	if session.EndedAt != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Session already ended"})
		return
	}

	var flashcard models.Flashcard
	if err := database.GetDB().
		Where("id = ? AND deck_id = ?", input.FlashcardID, session.DeckID).
		First(&flashcard).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Flashcard not found in session deck"})
		return
	}

	evaluation, err := gradeAnswer(c, &flashcard, input.UserAnswer)
	if err != nil {
		log.Printf("Answer evaluation error: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Answer evaluation failed"})
		return
	}
	if evaluation == nil {
		return // response already written
	}

	result := models.SessionResult{
		SessionID:       session.ID,
		FlashcardID:     flashcard.ID,
		UserAnswer:      input.UserAnswer,
		IsCorrect:       evaluation.IsCorrect,
		SimilarityScore: evaluation.SimilarityScore,
		Feedback:        evaluation.Feedback,
	}

	err = database.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&result).Error; err != nil {
			return err
		}

		session.TotalCards++
		if evaluation.IsCorrect {
			session.CorrectAnswers++
		} else {
			session.IncorrectAnswers++
		}
		return tx.Save(session).Error
	})
	if err != nil {
		log.Printf("Submit answer error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit answer"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"is_correct":       evaluation.IsCorrect,
		"similarity_score": evaluation.SimilarityScore,
		"feedback":         evaluation.Feedback,
		"session_stats": gin.H{
			"total_cards":       session.TotalCards,
			"correct_answers":   session.CorrectAnswers,
			"incorrect_answers": session.IncorrectAnswers,
		},
	})
}

// gradeAnswer picks the evaluation path for a card's question type. A nil
// evaluation with nil error means a 400 was already written.
func gradeAnswer(c *gin.Context, flashcard *models.Flashcard, userAnswer string) (*ai.Evaluation, error) {
	if flashcard.QuestionType == models.QuestionFreeResponse {
		eval, err := aiClient.EvaluateFreeResponse(c.Request.Context(), userAnswer, flashcard.Answer, cfg.AI.SimilarityThreshold)
		if err != nil {
			return nil, err
		}
		return &eval, nil
	}

	// MCQ and true/false answers are the selected option index.
	selected, err := strconv.Atoi(userAnswer)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "For MCQ and true/false, user_answer must be the option index"})
		return nil, nil
	}

	correct := 0
	if flashcard.CorrectOptionIndex != nil {
		correct = *flashcard.CorrectOptionIndex
	}

	eval := ai.EvaluateOption(flashcard.QuestionType, selected, correct)
	return &eval, nil
}

// EndSession stamps the session's end time.
func EndSession(c *gin.Context) {
	session, ok := sessionForUser(c, c.Param("id"))
	if !ok {
		return
	}

	if session.EndedAt == nil {
		now := time.Now().UTC()
		session.EndedAt = &now
		if err := database.GetDB().Save(session).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to end session"})
			return
		}
	}

	c.JSON(http.StatusOK, session)
}

// SessionStats summarizes a session's accuracy.
func SessionStats(c *gin.Context) {
	session, ok := sessionForUser(c, c.Param("id"))
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session_id":          session.ID,
		"total_cards":         session.TotalCards,
		"correct_answers":     session.CorrectAnswers,
		"incorrect_answers":   session.IncorrectAnswers,
		"accuracy_percentage": session.Accuracy(),
		"started_at":          session.StartedAt,
		"ended_at":            session.EndedAt,
	})
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StudySession struct {
	ID               string         `json:"id" gorm:"primarykey"`
	UserID           uint           `json:"user_id" gorm:"not null;index"`
	DeckID           string         `json:"deck_id" gorm:"not null;index"`
	StartedAt        time.Time      `json:"started_at"`
	EndedAt          *time.Time     `json:"ended_at"`
	TotalCards       int            `json:"total_cards"`
	CorrectAnswers   int            `json:"correct_answers"`
	IncorrectAnswers int            `json:"incorrect_answers"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `json:"-" gorm:"index"`
}

func (s *StudySession) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.StartedAt.IsZero() {
		s.StartedAt = time.Now().UTC()
	}
	return nil
}

// Accuracy returns the percentage of correct answers, rounded to two decimals.
func (s *StudySession) Accuracy() float64 {
	total := s.CorrectAnswers + s.IncorrectAnswers
	if total == 0 {
		return 0
	}
	return float64(int(float64(s.CorrectAnswers)/float64(total)*10000+0.5)) / 100
}

type SessionResult struct {
	ID              string    `json:"id" gorm:"primarykey"`
	SessionID       string    `json:"session_id" gorm:"not null;index"`
	FlashcardID     string    `json:"flashcard_id" gorm:"not null;index"`
	UserAnswer      string    `json:"user_answer"`
	IsCorrect       bool      `json:"is_correct"`
	SimilarityScore float64   `json:"similarity_score"`
	Feedback        string    `json:"feedback"`
	CreatedAt       time.Time `json:"created_at"`
}

func (r *SessionResult) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

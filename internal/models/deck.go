package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Difficulty levels accepted on decks and flashcards.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Question types accepted on decks and flashcards.
const (
	QuestionFreeResponse = "free_response"
	QuestionMCQ          = "mcq"
	QuestionTrueFalse    = "true_false"
)

type Deck struct {
	ID           string         `json:"id" gorm:"primarykey"`
	UserID       uint           `json:"user_id" gorm:"not null;index"`
	FolderID     *string        `json:"folder_id" gorm:"index"`
	Title        string         `json:"title" gorm:"not null"`
	Description  string         `json:"description"`
	Difficulty   string         `json:"difficulty" gorm:"default:medium"`
	QuestionType string         `json:"question_type" gorm:"default:free_response"`
	OrderIndex   *int           `json:"order_index"`
	PodcastPath  *string        `json:"podcast_path"`
	CardCount    int64          `json:"flashcard_count" gorm:"-"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

func (d *Deck) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}

// ValidDifficulty reports whether s is a recognized difficulty level.
func ValidDifficulty(s string) bool {
	switch s {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// ValidQuestionType reports whether s is a recognized question type.
func ValidQuestionType(s string) bool {
	switch s {
	case QuestionFreeResponse, QuestionMCQ, QuestionTrueFalse:
		return true
	}
	return false
}

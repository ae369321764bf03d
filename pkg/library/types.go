package library

import "time"

// Folder is a deck folder as the API reports it.
type Folder struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	DeckCount int64     `json:"deck_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Deck is a flashcard deck as the API reports it. FolderID is nil for decks
// at root; OrderIndex is nil for decks without an explicit position.
type Deck struct {
	ID           string    `json:"id"`
	FolderID     *string   `json:"folder_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Difficulty   string    `json:"difficulty"`
	QuestionType string    `json:"question_type"`
	OrderIndex   *int      `json:"order_index"`
	CardCount    int64     `json:"flashcard_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Flashcard struct {
	ID                 string         `json:"id" gorm:"primarykey"`
	DeckID             string         `json:"deck_id" gorm:"not null;index"`
	Question           string         `json:"question" gorm:"not null"`
	Answer             string         `json:"answer" gorm:"not null"`
	Difficulty         string         `json:"difficulty" gorm:"default:medium"`
	QuestionType       string         `json:"question_type" gorm:"default:free_response"`
	Options            StringList     `json:"mcq_options,omitempty" gorm:"type:jsonb"`
	CorrectOptionIndex *int           `json:"correct_option_index,omitempty"`
	Tags               StringList     `json:"tags" gorm:"type:jsonb"`
	AudioPath          *string        `json:"audio_path,omitempty"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `json:"-" gorm:"index"`
}

func (f *Flashcard) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}

// StringList stores a slice of strings as a jsonb column.
type StringList []string

// Scan implements the sql.Scanner interface
func (s *StringList) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to unmarshal jsonb value")
	}

	var result []string
	if err := json.Unmarshal(bytes, &result); err != nil {
		return err
	}
	*s = result
	return nil
}

// Value implements the driver.Valuer interface
func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal([]string(s))
}

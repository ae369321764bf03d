package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/prabhath004/quizly/internal/models"
)

const (
	// Source text beyond this many characters is not sent to the provider.
	maxPromptContent = 3000

	systemPrompt = "Expert educator. Create JSON flashcards. No markdown, just valid JSON."
)

// GenerationRequest describes a deck to generate.
type GenerationRequest struct {
	TextContent   string
	DeckTitle     string
	Difficulty    string
	QuestionType  string
	NumFlashcards int
}

// GeneratedCard is a single flashcard parsed from the provider response.
type GeneratedCard struct {
	Question           string   `json:"question"`
	Answer             string   `json:"answer"`
	Difficulty         string   `json:"difficulty"`
	QuestionType       string   `json:"question_type"`
	Options            []string `json:"mcq_options,omitempty"`
	CorrectOptionIndex int      `json:"correct_option_index"`
	Tags               []string `json:"tags"`
}

// GenerationResult holds generated cards plus provider accounting.
type GenerationResult struct {
	Cards          []GeneratedCard
	ProcessingTime time.Duration
	TokensUsed     int
}

// GenerateFlashcards asks the provider for a deck of cards and parses the
// JSON-mode response.
func (c *Client) GenerateFlashcards(ctx context.Context, req GenerationRequest) (*GenerationResult, error) {
	start := time.Now()

	prompt := buildPrompt(req)

	maxTokens := 1500
	if req.NumFlashcards > 10 {
		maxTokens = 2500
	}

	content, tokens, err := c.ChatJSON(ctx, systemPrompt, prompt, maxTokens)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Flashcards []GeneratedCard `json:"flashcards"`
	}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %v", err)
	}
	if len(parsed.Flashcards) == 0 {
		return nil, fmt.Errorf("no flashcards generated")
	}

	cards := make([]GeneratedCard, 0, len(parsed.Flashcards))
	for _, card := range parsed.Flashcards {
		card.Difficulty = normalizeEnum(card.Difficulty, req.Difficulty)
		card.QuestionType = normalizeEnum(card.QuestionType, req.QuestionType)

		if card.QuestionType == models.QuestionTrueFalse && len(card.Options) == 0 {
			card.Options = []string{"True", "False"}
		}
		cards = append(cards, card)
	}

	return &GenerationResult{
		Cards:          cards,
		ProcessingTime: time.Since(start),
		TokensUsed:     tokens,
	}, nil
}

func buildPrompt(req GenerationRequest) string {
	// Truncate by rune so a multi-byte character is never split.
	content := req.TextContent
	if runes := []rune(content); len(runes) > maxPromptContent {
		content = string(runes[:maxPromptContent])
	}

	switch req.QuestionType {
	case models.QuestionMCQ:
		return fmt.Sprintf(`You are creating %d multiple choice questions at %s difficulty level.

Content to analyze:
%s

Requirements:
1. Create exactly %d questions
2. Each question must have exactly 4 options
3. Difficulty: %s
4. Include plausible wrong answers
5. Test understanding, not just memorization

Return ONLY valid JSON in this exact format:
{
  "flashcards": [
    {
      "question": "What is X?",
      "answer": "Explanation of correct answer",
      "difficulty": "%s",
      "question_type": "mcq",
      "mcq_options": ["Option 1", "Option 2", "Option 3", "Option 4"],
      "correct_option_index": 1,
      "tags": ["topic1", "topic2"]
    }
  ]
}`, req.NumFlashcards, req.Difficulty, content, req.NumFlashcards, req.Difficulty, req.Difficulty)

	case models.QuestionTrueFalse:
		return fmt.Sprintf(`You are creating %d true/false questions at %s difficulty level.

Content to analyze:
%s

Requirements:
1. Create exactly %d questions
2. Each must be a clear true/false statement
3. Difficulty: %s
4. Include explanation for the answer

Return ONLY valid JSON in this exact format:
{
  "flashcards": [
    {
      "question": "The Earth is flat",
      "answer": "False. The Earth is an oblate spheroid.",
      "difficulty": "%s",
      "question_type": "true_false",
      "mcq_options": ["True", "False"],
      "correct_option_index": 1,
      "tags": ["topic1"]
    }
  ]
}`, req.NumFlashcards, req.Difficulty, content, req.NumFlashcards, req.Difficulty, req.Difficulty)

	default:
		return fmt.Sprintf(`You are creating %d open-ended questions at %s difficulty level.

Content to analyze:
%s

Requirements:
1. Create exactly %d questions
2. Questions should be open-ended (require explanation)
3. Difficulty: %s
4. Answers should be 2-3 sentences
5. Questions students can speak aloud

Return ONLY valid JSON in this exact format:
{
  "flashcards": [
    {
      "question": "Explain the concept of X",
      "answer": "X is defined as... It works by... This is important because...",
      "difficulty": "%s",
      "question_type": "free_response",
      "tags": ["topic1", "topic2"]
    }
  ]
}`, req.NumFlashcards, req.Difficulty, content, req.NumFlashcards, req.Difficulty, req.Difficulty)
	}
}

// normalizeEnum lowercases a provider-reported enum value and strips any
// "EnumName.VALUE" prefix the model may echo back. Unrecognized values fall
// back to the requested one.
func normalizeEnum(value, fallback string) string {
	v := strings.TrimSpace(value)
	if i := strings.LastIndex(v, "."); i >= 0 {
		v = v[i+1:]
	}
	v = strings.ToLower(v)

	if models.ValidDifficulty(v) || models.ValidQuestionType(v) {
		return v
	}
	return fallback
}

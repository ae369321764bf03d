package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prabhath004/quizly/internal/config"
	"github.com/prabhath004/quizly/internal/models"
)

func testClient(baseURL string) *Client {
	return NewClient(config.AIConfig{
		APIKey:         "test-key",
		BaseURL:        baseURL,
		ChatModel:      "test-chat",
		EmbeddingModel: "test-embed",
		RequestTimeout: 5,
	})
}

func TestNormalizeEnum(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		fallback string
		want     string
	}{
		{name: "plain value", value: "hard", fallback: "medium", want: "hard"},
		{name: "uppercase", value: "MEDIUM", fallback: "easy", want: "medium"},
		{name: "enum-prefixed", value: "DifficultyLevel.MEDIUM", fallback: "easy", want: "medium"},
		{name: "question type prefixed", value: "QuestionType.MCQ", fallback: "free_response", want: "mcq"},
		{name: "unknown falls back", value: "extreme", fallback: "medium", want: "medium"},
		{name: "empty falls back", value: "", fallback: "hard", want: "hard"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeEnum(tt.value, tt.fallback))
		})
	}
}

func TestBuildPromptPerQuestionType(t *testing.T) {
	base := GenerationRequest{
		TextContent:   "The mitochondria is the powerhouse of the cell.",
		Difficulty:    models.DifficultyMedium,
		NumFlashcards: 5,
	}

	mcq := base
	mcq.QuestionType = models.QuestionMCQ
	prompt := buildPrompt(mcq)
	assert.Contains(t, prompt, "5 multiple choice questions")
	assert.Contains(t, prompt, "exactly 4 options")
	assert.Contains(t, prompt, "correct_option_index")

	tf := base
	tf.QuestionType = models.QuestionTrueFalse
	prompt = buildPrompt(tf)
	assert.Contains(t, prompt, "true/false questions")
	assert.Contains(t, prompt, `"mcq_options": ["True", "False"]`)

	free := base
	free.QuestionType = models.QuestionFreeResponse
	prompt = buildPrompt(free)
	assert.Contains(t, prompt, "open-ended questions")
	assert.Contains(t, prompt, "speak aloud")
}

func TestBuildPromptTruncatesLongContent(t *testing.T) {
	req := GenerationRequest{
		TextContent:   strings.Repeat("a", maxPromptContent+500),
		Difficulty:    models.DifficultyEasy,
		QuestionType:  models.QuestionFreeResponse,
		NumFlashcards: 3,
	}

	prompt := buildPrompt(req)
	assert.NotContains(t, prompt, strings.Repeat("a", maxPromptContent+1))
}

func TestBuildPromptTruncatesOnRuneBoundary(t *testing.T) {
	req := GenerationRequest{
		TextContent:   strings.Repeat("é", maxPromptContent+10),
		Difficulty:    models.DifficultyEasy,
		QuestionType:  models.QuestionFreeResponse,
		NumFlashcards: 3,
	}

	prompt := buildPrompt(req)
	assert.True(t, utf8.ValidString(prompt))
	assert.NotContains(t, prompt, "�")
	assert.Equal(t, maxPromptContent, strings.Count(prompt, "é"))
}

func TestGenerateFlashcards(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "test-chat", req.Model)
		require.NotNil(t, req.ResponseFormat)
		assert.Equal(t, "json_object", req.ResponseFormat.Type)

		content := `{"flashcards":[
			{"question":"Is water wet?","answer":"True. Water is wet.","difficulty":"DifficultyLevel.MEDIUM","question_type":"true_false","correct_option_index":0,"tags":["water"]},
			{"question":"What is H2O?","answer":"Water","difficulty":"easy","question_type":"QuestionType.TRUE_FALSE","mcq_options":["True","False"],"correct_option_index":1,"tags":[]}
		]}`
		resp := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": content}},
			},
			"usage": map[string]int{"total_tokens": 321},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := testClient(server.URL)
	result, err := client.GenerateFlashcards(context.Background(), GenerationRequest{
		TextContent:   "Water facts.",
		Difficulty:    models.DifficultyMedium,
		QuestionType:  models.QuestionTrueFalse,
		NumFlashcards: 2,
	})
	require.NoError(t, err)
	require.Len(t, result.Cards, 2)
	assert.Equal(t, 321, result.TokensUsed)

	first := result.Cards[0]
	assert.Equal(t, models.DifficultyMedium, first.Difficulty, "prefixed enum normalized")
	assert.Equal(t, models.QuestionTrueFalse, first.QuestionType)
	assert.Equal(t, []string{"True", "False"}, first.Options, "missing true/false options filled in")

	second := result.Cards[1]
	assert.Equal(t, models.DifficultyEasy, second.Difficulty)
	assert.Equal(t, models.QuestionTrueFalse, second.QuestionType)
}

func TestGenerateFlashcardsEmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": `{"flashcards":[]}`}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := testClient(server.URL)
	_, err := client.GenerateFlashcards(context.Background(), GenerationRequest{
		TextContent:   "x",
		Difficulty:    models.DifficultyMedium,
		QuestionType:  models.QuestionFreeResponse,
		NumFlashcards: 1,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no flashcards")
}

func TestGenerateFlashcardsProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{"message": "rate limit exceeded", "type": "rate_limit"},
		})
	}))
	defer server.Close()

	client := testClient(server.URL)
	_, err := client.GenerateFlashcards(context.Background(), GenerationRequest{
		TextContent:   "x",
		Difficulty:    models.DifficultyMedium,
		QuestionType:  models.QuestionFreeResponse,
		NumFlashcards: 1,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit exceeded")
}

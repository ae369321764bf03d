package ai

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/prabhath004/quizly/internal/config"
)

// Client talks to an OpenAI-compatible chat completions and embeddings API.
// Embedding vectors are cached by text hash, so the reference answer of a
// flashcard is fetched from the provider once no matter how often it is graded.
type Client struct {
	apiKey         string
	baseURL        string
	chatModel      string
	embeddingModel string
	httpClient     *http.Client

	mu         sync.Mutex
	embeddings map[string][]float64
}

func NewClient(cfg config.AIConfig) *Client {
	timeout := time.Duration(cfg.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 120 * time.Second
	}

	return &Client{
		apiKey:         cfg.APIKey,
		baseURL:        strings.TrimSuffix(cfg.BaseURL, "/"),
		chatModel:      cfg.ChatModel,
		embeddingModel: cfg.EmbeddingModel,
		httpClient:     &http.Client{Timeout: timeout},
		embeddings:     make(map[string][]float64),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	Temperature    float64         `json:"temperature"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		TotalTokens int `json:"total_tokens"`
	} `json:"usage"`
	Error *apiError `json:"error,omitempty"`
}

type embeddingRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type embeddingResponse struct {
	Data []struct {
		Embedding []float64 `json:"embedding"`
	} `json:"data"`
	Error *apiError `json:"error,omitempty"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// ChatJSON sends a chat completion request in JSON mode and returns the raw
// JSON text of the first choice along with total token usage.
func (c *Client) ChatJSON(ctx context.Context, system, user string, maxTokens int) (string, int, error) {
	reqBody := chatRequest{
		Model: c.chatModel,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		MaxTokens:      maxTokens,
		Temperature:    0.3,
		ResponseFormat: &responseFormat{Type: "json_object"},
	}

	var resp chatResponse
	if err := c.post(ctx, "/chat/completions", reqBody, &resp); err != nil {
		return "", 0, err
	}
	if resp.Error != nil {
		return "", 0, fmt.Errorf("provider error: %s", resp.Error.Message)
	}
	if len(resp.Choices) == 0 {
		return "", 0, fmt.Errorf("provider returned no choices")
	}

	return resp.Choices[0].Message.Content, resp.Usage.TotalTokens, nil
}

// Embedding returns the embedding vector for the given text, fetching it from
// the provider on the first call and from the cache afterwards.
func (c *Client) Embedding(ctx context.Context, text string) ([]float64, error) {
	key := TextHash(text)

	c.mu.Lock()
	if vector, ok := c.embeddings[key]; ok {
		c.mu.Unlock()
		return vector, nil
	}
	c.mu.Unlock()

	reqBody := embeddingRequest{
		Model: c.embeddingModel,
		Input: text,
	}

	var resp embeddingResponse
	if err := c.post(ctx, "/embeddings", reqBody, &resp); err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("provider error: %s", resp.Error.Message)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("provider returned no embedding")
	}

	c.mu.Lock()
	c.embeddings[key] = resp.Data[0].Embedding
	c.mu.Unlock()

	return resp.Data[0].Embedding, nil
}

// TextHash is the cache key for a piece of embedded text.
func TextHash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to AI provider failed: %v", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read provider response: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		if err := json.Unmarshal(data, out); err == nil {
			return nil // caller inspects the embedded error object
		}
		return fmt.Errorf("provider returned status %d: %s", resp.StatusCode, truncate(string(data), 200))
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode provider response: %v", err)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

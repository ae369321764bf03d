package library

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Client is a typed HTTP client for the Quizly REST API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a client for the API rooted at baseURL (including the
// /api/v1 prefix) authenticated with the given bearer token.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// ListFolders fetches all folders.
func (c *Client) ListFolders(ctx context.Context) ([]Folder, error) {
	var resp struct {
		Folders []Folder `json:"folders"`
	}
	if err := c.do(ctx, http.MethodGet, "/folders?limit=1000", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Folders, nil
}

// ListDecks fetches all decks.
func (c *Client) ListDecks(ctx context.Context) ([]Deck, error) {
	var resp struct {
		Decks []Deck `json:"decks"`
	}
	if err := c.do(ctx, http.MethodGet, "/decks", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Decks, nil
}

// CreateFolder creates a folder and returns the server record.
func (c *Client) CreateFolder(ctx context.Context, name string) (Folder, error) {
	var folder Folder
	err := c.do(ctx, http.MethodPost, "/folders", map[string]string{"name": name}, &folder)
	return folder, err
}

// RenameFolder updates a folder's name.
func (c *Client) RenameFolder(ctx context.Context, id, name string) (Folder, error) {
	var folder Folder
	err := c.do(ctx, http.MethodPut, "/folders/"+id, map[string]string{"name": name}, &folder)
	return folder, err
}

// DeleteFolder removes a folder; the server moves its decks to root.
func (c *Client) DeleteFolder(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/folders/"+id, nil, nil)
}

// MoveDeck moves a deck into a folder, or to root when folderID is nil.
func (c *Client) MoveDeck(ctx context.Context, deckID string, folderID *string) (Deck, error) {
	body := map[string]interface{}{}
	if folderID == nil {
		body["move_to_root"] = true
	} else {
		body["folder_id"] = *folderID
	}

	var deck Deck
	err := c.do(ctx, http.MethodPut, "/decks/"+deckID, body, &deck)
	return deck, err
}

// DeleteDeck removes a deck and its flashcards.
func (c *Client) DeleteDeck(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/decks/"+id, nil, nil)
}

// ReorderDecks installs a deck ordering within a folder. Pass nil for root.
func (c *Client) ReorderDecks(ctx context.Context, folderID *string, deckIDs []string) error {
	target := "root"
	if folderID != nil {
		target = *folderID
	}
	body := map[string]interface{}{"deck_ids": deckIDs}
	return c.do(ctx, http.MethodPut, "/folders/"+target+"/decks/order", body, nil)
}

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiResp struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiResp)
		return &APIError{StatusCode: resp.StatusCode, Message: apiResp.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %v", err)
	}
	return nil
}

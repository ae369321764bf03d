package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/prabhath004/quizly/internal/database"
	"github.com/prabhath004/quizly/internal/models"
)

// setupTestDB points the handlers at a throwaway sqlite database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "quizly.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Folder{},
		&models.Deck{},
		&models.Flashcard{},
		&models.StudySession{},
		&models.SessionResult{},
	))
	database.DB = db
	return db
}

// authedContext builds a gin context carrying an authenticated user.
func authedContext(t *testing.T, userID uint, method, target string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Set("user_id", userID)
	return c, w
}

func intRef(i int) *int { return &i }

func seedFolder(t *testing.T, db *gorm.DB, id string, userID uint, name string) {
	t.Helper()
	require.NoError(t, db.Create(&models.Folder{ID: id, UserID: userID, Name: name}).Error)
}

func seedDeck(t *testing.T, db *gorm.DB, id string, userID uint, folderID *string, orderIndex *int) {
	t.Helper()
	require.NoError(t, db.Create(&models.Deck{
		ID:         id,
		UserID:     userID,
		Title:      "Deck " + id,
		FolderID:   folderID,
		OrderIndex: orderIndex,
	}).Error)
}

func reloadDeck(t *testing.T, db *gorm.DB, id string) models.Deck {
	t.Helper()
	var deck models.Deck
	require.NoError(t, db.First(&deck, "id = ?", id).Error)
	return deck
}

func TestDeleteFolderMovesDecksToRoot(t *testing.T) {
	db := setupTestDB(t)
	seedFolder(t, db, "f1", 1, "Biology")
	seedFolder(t, db, "f2", 1, "History")
	f1, f2 := "f1", "f2"
	seedDeck(t, db, "d1", 1, &f1, intRef(0))
	seedDeck(t, db, "d2", 1, &f1, intRef(1))
	seedDeck(t, db, "d3", 1, &f2, intRef(0))

	c, w := authedContext(t, 1, http.MethodDelete, "/folders/f1", nil)
	c.Params = gin.Params{{Key: "id", Value: "f1"}}
	DeleteFolder(c)
	require.Equal(t, http.StatusOK, w.Code)

	for _, id := range []string{"d1", "d2"} {
		deck := reloadDeck(t, db, id)
		assert.Nil(t, deck.FolderID, "deck %s moved to root", id)
		assert.Nil(t, deck.OrderIndex, "deck %s order index cleared", id)
	}

	// The other folder's deck keeps its place.
	d3 := reloadDeck(t, db, "d3")
	require.NotNil(t, d3.FolderID)
	assert.Equal(t, "f2", *d3.FolderID)
	assert.Equal(t, 0, *d3.OrderIndex)

	var count int64
	require.NoError(t, db.Model(&models.Folder{}).Where("id = ?", "f1").Count(&count).Error)
	assert.Zero(t, count, "folder record removed")
}

func TestDeleteFolderOtherUsers(t *testing.T) {
	db := setupTestDB(t)
	seedFolder(t, db, "f1", 2, "Not yours")

	c, w := authedContext(t, 1, http.MethodDelete, "/folders/f1", nil)
	c.Params = gin.Params{{Key: "id", Value: "f1"}}
	DeleteFolder(c)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.Folder{}).Where("id = ?", "f1").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestReorderDecksAssignsIndexes(t *testing.T) {
	db := setupTestDB(t)
	seedFolder(t, db, "f1", 1, "Biology")
	f1 := "f1"
	seedDeck(t, db, "d1", 1, &f1, intRef(0))
	seedDeck(t, db, "d2", 1, &f1, intRef(1))
	seedDeck(t, db, "d3", 1, &f1, nil)

	c, w := authedContext(t, 1, http.MethodPut, "/folders/f1/decks/order",
		gin.H{"deck_ids": []string{"d3", "d1", "d2"}})
	c.Params = gin.Params{{Key: "id", Value: "f1"}}
	ReorderDecks(c)
	require.Equal(t, http.StatusOK, w.Code)

	for i, id := range []string{"d3", "d1", "d2"} {
		deck := reloadDeck(t, db, id)
		require.NotNil(t, deck.OrderIndex)
		assert.Equal(t, i, *deck.OrderIndex)
	}
}

func TestReorderDecksAtRoot(t *testing.T) {
	db := setupTestDB(t)
	seedDeck(t, db, "d1", 1, nil, nil)
	seedDeck(t, db, "d2", 1, nil, nil)

	c, w := authedContext(t, 1, http.MethodPut, "/folders/root/decks/order",
		gin.H{"deck_ids": []string{"d2", "d1"}})
	c.Params = gin.Params{{Key: "id", Value: "root"}}
	ReorderDecks(c)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, 0, *reloadDeck(t, db, "d2").OrderIndex)
	assert.Equal(t, 1, *reloadDeck(t, db, "d1").OrderIndex)
}

func TestReorderDecksRejectsForeignDeck(t *testing.T) {
	db := setupTestDB(t)
	seedFolder(t, db, "f1", 1, "Biology")
	seedFolder(t, db, "f2", 1, "History")
	f1, f2 := "f1", "f2"
	seedDeck(t, db, "d1", 1, &f1, intRef(0))
	seedDeck(t, db, "d2", 1, &f2, intRef(0))

	// d2 lives in another folder; the ordering must be rejected wholesale.
	c, w := authedContext(t, 1, http.MethodPut, "/folders/f1/decks/order",
		gin.H{"deck_ids": []string{"d1", "d2"}})
	c.Params = gin.Params{{Key: "id", Value: "f1"}}
	ReorderDecks(c)
	require.Equal(t, http.StatusBadRequest, w.Code)

	d2 := reloadDeck(t, db, "d2")
	require.NotNil(t, d2.FolderID)
	assert.Equal(t, "f2", *d2.FolderID)
	assert.Equal(t, 0, *d2.OrderIndex)
}

func TestDeleteDeckCascadesFlashcards(t *testing.T) {
	db := setupTestDB(t)
	seedDeck(t, db, "d1", 1, nil, nil)
	for _, id := range []string{"c1", "c2"} {
		require.NoError(t, db.Create(&models.Flashcard{
			ID:       id,
			DeckID:   "d1",
			Question: "Q " + id,
			Answer:   "A " + id,
		}).Error)
	}

	c, w := authedContext(t, 1, http.MethodDelete, "/decks/d1", nil)
	c.Params = gin.Params{{Key: "id", Value: "d1"}}
	DeleteDeck(c)
	require.Equal(t, http.StatusOK, w.Code)

	var cards int64
	require.NoError(t, db.Model(&models.Flashcard{}).Where("deck_id = ?", "d1").Count(&cards).Error)
	assert.Zero(t, cards, "flashcards deleted with their deck")

	var decks int64
	require.NoError(t, db.Model(&models.Deck{}).Where("id = ?", "d1").Count(&decks).Error)
	assert.Zero(t, decks)
}

func TestListFoldersClampsPagination(t *testing.T) {
	db := setupTestDB(t)
	seedFolder(t, db, "f1", 1, "Biology")

	c, w := authedContext(t, 1, http.MethodGet, "/folders?page=0&limit=0", nil)
	ListFolders(c)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Folders    []models.Folder `json:"folders"`
		Pagination struct {
			CurrentPage int `json:"current_page"`
			PerPage     int `json:"per_page"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Folders, 1)
	assert.Equal(t, 1, resp.Pagination.CurrentPage)
	assert.Equal(t, 50, resp.Pagination.PerPage)
}

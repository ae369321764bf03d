package library

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func at(min int) time.Time { return time.Date(2024, 3, 1, 10, min, 0, 0, time.UTC) }

func seedStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore()
	store.Replace(
		[]Folder{
			{ID: "f1", Name: "Biology", CreatedAt: at(1)},
			{ID: "f2", Name: "History", CreatedAt: at(2)},
		},
		[]Deck{
			{ID: "d1", Title: "Cells", FolderID: strPtr("f1"), OrderIndex: intPtr(0), CreatedAt: at(3)},
			{ID: "d2", Title: "Genetics", FolderID: strPtr("f1"), OrderIndex: intPtr(1), CreatedAt: at(4)},
			{ID: "d3", Title: "Rome", FolderID: strPtr("f2"), CreatedAt: at(5)},
			{ID: "d4", Title: "Scratch", CreatedAt: at(6)},
		},
	)
	return store
}

func TestReplaceNormalizesState(t *testing.T) {
	store := NewStore()

	// d2 points at a folder the server never sent; d1/d3 have gappy indexes.
	store.Replace(
		[]Folder{{ID: "f1", Name: "Biology", CreatedAt: at(1)}},
		[]Deck{
			{ID: "d1", FolderID: strPtr("f1"), OrderIndex: intPtr(4), CreatedAt: at(2)},
			{ID: "d2", FolderID: strPtr("ghost"), OrderIndex: intPtr(0), CreatedAt: at(3)},
			{ID: "d3", FolderID: strPtr("f1"), OrderIndex: intPtr(9), CreatedAt: at(4)},
		},
	)

	d2, ok := store.Deck("d2")
	require.True(t, ok)
	assert.Nil(t, d2.FolderID, "deck pointing at a missing folder falls to root")
	assert.Nil(t, d2.OrderIndex)

	decks := store.Decks(strPtr("f1"))
	require.Len(t, decks, 2)
	assert.Equal(t, "d1", decks[0].ID)
	assert.Equal(t, 0, *decks[0].OrderIndex, "indexes rewritten contiguous from 0")
	assert.Equal(t, "d3", decks[1].ID)
	assert.Equal(t, 1, *decks[1].OrderIndex)
}

func TestDecksDisplayOrder(t *testing.T) {
	store := seedStore(t)

	// Ordered decks first by index, then unordered newest first.
	f1 := store.Decks(strPtr("f1"))
	require.Len(t, f1, 2)
	assert.Equal(t, []string{"d1", "d2"}, []string{f1[0].ID, f1[1].ID})

	root := store.Decks(nil)
	require.Len(t, root, 1)
	assert.Equal(t, "d4", root[0].ID)
}

func TestFoldersCarryDeckCounts(t *testing.T) {
	store := seedStore(t)

	folders := store.Folders()
	require.Len(t, folders, 2)
	// Newest first.
	assert.Equal(t, "f2", folders[0].ID)
	assert.EqualValues(t, 1, folders[0].DeckCount)
	assert.Equal(t, "f1", folders[1].ID)
	assert.EqualValues(t, 2, folders[1].DeckCount)
}

func TestMoveDeckAndRollback(t *testing.T) {
	store := seedStore(t)

	rollback, err := store.MoveDeck("d1", strPtr("f2"))
	require.NoError(t, err)

	moved, _ := store.Deck("d1")
	require.NotNil(t, moved.FolderID)
	assert.Equal(t, "f2", *moved.FolderID)
	assert.Nil(t, moved.OrderIndex, "moving clears the order index")

	// The source folder's ordering closes the gap.
	remaining := store.Decks(strPtr("f1"))
	require.Len(t, remaining, 1)
	assert.Equal(t, 0, *remaining[0].OrderIndex)

	rollback()

	restored, _ := store.Deck("d1")
	require.NotNil(t, restored.FolderID)
	assert.Equal(t, "f1", *restored.FolderID)
	assert.Equal(t, 0, *restored.OrderIndex)
}

func TestMoveDeckUnknownTargets(t *testing.T) {
	store := seedStore(t)

	_, err := store.MoveDeck("d1", strPtr("nope"))
	assert.Error(t, err)

	_, err = store.MoveDeck("nope", nil)
	assert.Error(t, err)
}

func TestRemoveFolderMovesDecksToRoot(t *testing.T) {
	store := seedStore(t)

	rollback, err := store.RemoveFolder("f1")
	require.NoError(t, err)

	root := store.Decks(nil)
	assert.Len(t, root, 3)
	for _, deck := range root {
		assert.Nil(t, deck.FolderID)
		assert.Nil(t, deck.OrderIndex)
	}

	rollback()

	folders, decks := store.Len()
	assert.Equal(t, 2, folders)
	assert.Equal(t, 4, decks)
	assert.Len(t, store.Decks(strPtr("f1")), 2)
}

func TestSetOrder(t *testing.T) {
	tests := []struct {
		name    string
		folder  *string
		deckIDs []string
		wantErr bool
	}{
		{name: "reverses folder order", folder: strPtr("f1"), deckIDs: []string{"d2", "d1"}},
		{name: "orders root decks", folder: nil, deckIDs: []string{"d4"}},
		{name: "missing deck", folder: strPtr("f1"), deckIDs: []string{"d2"}, wantErr: true},
		{name: "deck from another folder", folder: strPtr("f1"), deckIDs: []string{"d1", "d3"}, wantErr: true},
		{name: "duplicate deck", folder: strPtr("f1"), deckIDs: []string{"d1", "d1"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := seedStore(t)
			_, err := store.SetOrder(tt.folder, tt.deckIDs)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			decks := store.Decks(tt.folder)
			require.Len(t, decks, len(tt.deckIDs))
			for i, id := range tt.deckIDs {
				assert.Equal(t, id, decks[i].ID)
				assert.Equal(t, i, *decks[i].OrderIndex)
			}
		})
	}
}

func TestAddDeckRejectsUnknownFolder(t *testing.T) {
	store := seedStore(t)

	_, err := store.AddDeck(Deck{ID: "d9", FolderID: strPtr("ghost")})
	assert.Error(t, err)

	rollback, err := store.AddDeck(Deck{ID: "d9", FolderID: strPtr("f2"), CreatedAt: at(9)})
	require.NoError(t, err)
	assert.Len(t, store.Decks(strPtr("f2")), 2)

	rollback()
	assert.Len(t, store.Decks(strPtr("f2")), 1)
}

func TestRenameFolder(t *testing.T) {
	store := seedStore(t)

	rollback, err := store.RenameFolder("f1", "Cell Biology")
	require.NoError(t, err)

	folders := store.Folders()
	assert.Equal(t, "Cell Biology", folders[1].Name)

	rollback()
	folders = store.Folders()
	assert.Equal(t, "Biology", folders[1].Name)

	_, err = store.RenameFolder("ghost", "x")
	assert.Error(t, err)
}

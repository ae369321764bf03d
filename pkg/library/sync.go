package library

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// API is the server surface the Syncer needs. *Client implements it; tests
// substitute their own.
type API interface {
	ListFolders(ctx context.Context) ([]Folder, error)
	ListDecks(ctx context.Context) ([]Deck, error)
	CreateFolder(ctx context.Context, name string) (Folder, error)
	RenameFolder(ctx context.Context, id, name string) (Folder, error)
	DeleteFolder(ctx context.Context, id string) error
	MoveDeck(ctx context.Context, deckID string, folderID *string) (Deck, error)
	DeleteDeck(ctx context.Context, id string) error
	ReorderDecks(ctx context.Context, folderID *string, deckIDs []string) error
}

// Syncer reconciles a Store against the server. Every mutation is applied
// optimistically, sent to the server, and then either confirmed by a full
// refresh (server truth replaces local state wholesale) or rolled back.
type Syncer struct {
	store *Store
	api   API
}

func NewSyncer(store *Store, api API) *Syncer {
	return &Syncer{store: store, api: api}
}

// Store exposes the underlying store for reads.
func (s *Syncer) Store() *Store {
	return s.store
}

// Refresh replaces local state with the server's view.
func (s *Syncer) Refresh(ctx context.Context) error {
	folders, err := s.api.ListFolders(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch folders: %w", err)
	}
	decks, err := s.api.ListDecks(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch decks: %w", err)
	}
	s.store.Replace(folders, decks)
	return nil
}

// CreateFolder adds a folder optimistically under a temporary ID, then
// refreshes so the server-assigned record takes its place.
func (s *Syncer) CreateFolder(ctx context.Context, name string) error {
	rollback := s.store.AddFolder(Folder{ID: "pending-" + uuid.NewString(), Name: name})

	if _, err := s.api.CreateFolder(ctx, name); err != nil {
		rollback()
		return err
	}
	return s.Refresh(ctx)
}

// RenameFolder renames optimistically and confirms against the server.
func (s *Syncer) RenameFolder(ctx context.Context, id, name string) error {
	rollback, err := s.store.RenameFolder(id, name)
	if err != nil {
		return err
	}

	if _, err := s.api.RenameFolder(ctx, id, name); err != nil {
		rollback()
		return err
	}
	return s.Refresh(ctx)
}

// DeleteFolder removes a folder optimistically; its decks fall to root.
func (s *Syncer) DeleteFolder(ctx context.Context, id string) error {
	rollback, err := s.store.RemoveFolder(id)
	if err != nil {
		return err
	}

	if err := s.api.DeleteFolder(ctx, id); err != nil {
		rollback()
		return err
	}
	return s.Refresh(ctx)
}

// MoveDeck moves a deck between folders optimistically.
func (s *Syncer) MoveDeck(ctx context.Context, deckID string, folderID *string) error {
	rollback, err := s.store.MoveDeck(deckID, folderID)
	if err != nil {
		return err
	}

	if _, err := s.api.MoveDeck(ctx, deckID, folderID); err != nil {
		rollback()
		return err
	}
	return s.Refresh(ctx)
}

// DeleteDeck removes a deck optimistically.
func (s *Syncer) DeleteDeck(ctx context.Context, deckID string) error {
	rollback, err := s.store.RemoveDeck(deckID)
	if err != nil {
		return err
	}

	if err := s.api.DeleteDeck(ctx, deckID); err != nil {
		rollback()
		return err
	}
	return s.Refresh(ctx)
}

// Reorder installs a new deck ordering within a folder optimistically.
func (s *Syncer) Reorder(ctx context.Context, folderID *string, deckIDs []string) error {
	rollback, err := s.store.SetOrder(folderID, deckIDs)
	if err != nil {
		return err
	}

	if err := s.api.ReorderDecks(ctx, folderID, deckIDs); err != nil {
		rollback()
		return err
	}
	return s.Refresh(ctx)
}

// Package library implements the client-side deck/folder state store: an
// in-memory mirror of the user's decks, folders, and per-folder ordering that
// supports optimistic local mutations and wholesale replacement by server
// truth.
package library

import (
	"fmt"
	"sort"
	"sync"
)

// Rollback undoes an optimistic mutation, restoring the store to the state
// it had before the mutation was applied.
type Rollback func()

// Store holds the local snapshot of folders and decks. All methods are safe
// for concurrent use.
type Store struct {
	mu      sync.RWMutex
	folders map[string]Folder
	decks   map[string]Deck
}

func NewStore() *Store {
	return &Store{
		folders: make(map[string]Folder),
		decks:   make(map[string]Deck),
	}
}

// Replace discards local state and installs the server's view. Server truth
// always wins wholesale; there is no merging.
func (s *Store) Replace(folders []Folder, decks []Deck) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.folders = make(map[string]Folder, len(folders))
	for _, f := range folders {
		s.folders[f.ID] = f
	}
	s.decks = make(map[string]Deck, len(decks))
	for _, d := range decks {
		s.decks[d.ID] = d
	}
	s.normalizeLocked()
}

// snapshotLocked captures the current state for rollback.
func (s *Store) snapshotLocked() (map[string]Folder, map[string]Deck) {
	folders := make(map[string]Folder, len(s.folders))
	for id, f := range s.folders {
		folders[id] = f
	}
	decks := make(map[string]Deck, len(s.decks))
	for id, d := range s.decks {
		decks[id] = d
	}
	return folders, decks
}

func (s *Store) rollbackTo(folders map[string]Folder, decks map[string]Deck) Rollback {
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.folders = folders
		s.decks = decks
	}
}

// AddFolder inserts a folder optimistically.
func (s *Store) AddFolder(folder Folder) Rollback {
	s.mu.Lock()
	defer s.mu.Unlock()

	prevFolders, prevDecks := s.snapshotLocked()
	s.folders[folder.ID] = folder
	return s.rollbackTo(prevFolders, prevDecks)
}

// RenameFolder changes a folder's name optimistically.
func (s *Store) RenameFolder(id, name string) (Rollback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	folder, ok := s.folders[id]
	if !ok {
		return nil, fmt.Errorf("folder %s not found", id)
	}

	prevFolders, prevDecks := s.snapshotLocked()
	folder.Name = name
	s.folders[id] = folder
	return s.rollbackTo(prevFolders, prevDecks), nil
}

// RemoveFolder deletes a folder optimistically. Its decks fall to root with
// their order index cleared, mirroring the server's delete semantics.
func (s *Store) RemoveFolder(id string) (Rollback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.folders[id]; !ok {
		return nil, fmt.Errorf("folder %s not found", id)
	}

	prevFolders, prevDecks := s.snapshotLocked()
	delete(s.folders, id)
	for deckID, deck := range s.decks {
		if deck.FolderID != nil && *deck.FolderID == id {
			deck.FolderID = nil
			deck.OrderIndex = nil
			s.decks[deckID] = deck
		}
	}
	return s.rollbackTo(prevFolders, prevDecks), nil
}

// AddDeck inserts a deck optimistically. A deck referencing an unknown folder
// is rejected.
func (s *Store) AddDeck(deck Deck) (Rollback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if deck.FolderID != nil {
		if _, ok := s.folders[*deck.FolderID]; !ok {
			return nil, fmt.Errorf("folder %s not found", *deck.FolderID)
		}
	}

	prevFolders, prevDecks := s.snapshotLocked()
	s.decks[deck.ID] = deck
	s.normalizeLocked()
	return s.rollbackTo(prevFolders, prevDecks), nil
}

// MoveDeck moves a deck between folders (nil means root) optimistically.
// The moved deck lands at the end of the target folder's ordering.
func (s *Store) MoveDeck(id string, folderID *string) (Rollback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deck, ok := s.decks[id]
	if !ok {
		return nil, fmt.Errorf("deck %s not found", id)
	}
	if folderID != nil {
		if _, ok := s.folders[*folderID]; !ok {
			return nil, fmt.Errorf("folder %s not found", *folderID)
		}
	}

	prevFolders, prevDecks := s.snapshotLocked()
	deck.FolderID = folderID
	deck.OrderIndex = nil
	s.decks[id] = deck
	s.normalizeLocked()
	return s.rollbackTo(prevFolders, prevDecks), nil
}

// RemoveDeck deletes a deck optimistically.
func (s *Store) RemoveDeck(id string) (Rollback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.decks[id]; !ok {
		return nil, fmt.Errorf("deck %s not found", id)
	}

	prevFolders, prevDecks := s.snapshotLocked()
	delete(s.decks, id)
	s.normalizeLocked()
	return s.rollbackTo(prevFolders, prevDecks), nil
}

// SetOrder installs a complete ordering for the decks of one folder (nil for
// root). Every deck currently in the folder must appear exactly once.
func (s *Store) SetOrder(folderID *string, deckIDs []string) (Rollback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := make(map[string]bool)
	for id, deck := range s.decks {
		if sameFolder(deck.FolderID, folderID) {
			current[id] = true
		}
	}

	if len(deckIDs) != len(current) {
		return nil, fmt.Errorf("ordering names %d decks, folder has %d", len(deckIDs), len(current))
	}
	for _, id := range deckIDs {
		if !current[id] {
			return nil, fmt.Errorf("deck %s is not in the target folder", id)
		}
		delete(current, id)
	}

	prevFolders, prevDecks := s.snapshotLocked()
	for i, id := range deckIDs {
		deck := s.decks[id]
		index := i
		deck.OrderIndex = &index
		s.decks[id] = deck
	}
	return s.rollbackTo(prevFolders, prevDecks), nil
}

// Folders returns all folders, newest first, with derived deck counts.
func (s *Store) Folders() []Folder {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int64)
	for _, deck := range s.decks {
		if deck.FolderID != nil {
			counts[*deck.FolderID]++
		}
	}

	folders := make([]Folder, 0, len(s.folders))
	for _, f := range s.folders {
		f.DeckCount = counts[f.ID]
		folders = append(folders, f)
	}
	sort.Slice(folders, func(i, j int) bool {
		if folders[i].CreatedAt.Equal(folders[j].CreatedAt) {
			return folders[i].ID < folders[j].ID
		}
		return folders[i].CreatedAt.After(folders[j].CreatedAt)
	})
	return folders
}

// Decks returns the decks of one folder (nil for root) in display order:
// ordered decks first by index, then unordered decks newest first.
func (s *Store) Decks(folderID *string) []Deck {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var decks []Deck
	for _, deck := range s.decks {
		if sameFolder(deck.FolderID, folderID) {
			decks = append(decks, deck)
		}
	}

	sort.Slice(decks, func(i, j int) bool {
		a, b := decks[i], decks[j]
		switch {
		case a.OrderIndex != nil && b.OrderIndex != nil:
			return *a.OrderIndex < *b.OrderIndex
		case a.OrderIndex != nil:
			return true
		case b.OrderIndex != nil:
			return false
		case a.CreatedAt.Equal(b.CreatedAt):
			return a.ID < b.ID
		default:
			return a.CreatedAt.After(b.CreatedAt)
		}
	})
	return decks
}

// Deck returns a single deck by ID.
func (s *Store) Deck(id string) (Deck, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	deck, ok := s.decks[id]
	return deck, ok
}

// Len returns the number of folders and decks held.
func (s *Store) Len() (folders, decks int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.folders), len(s.decks)
}

// normalizeLocked repairs the ordering invariants: decks pointing at a
// missing folder fall to root, and order indexes within each folder are
// rewritten to be contiguous from 0 while preserving relative order.
func (s *Store) normalizeLocked() {
	for id, deck := range s.decks {
		if deck.FolderID != nil {
			if _, ok := s.folders[*deck.FolderID]; !ok {
				deck.FolderID = nil
				deck.OrderIndex = nil
				s.decks[id] = deck
			}
		}
	}

	byFolder := make(map[string][]string)
	for id, deck := range s.decks {
		if deck.OrderIndex == nil {
			continue
		}
		byFolder[folderKey(deck.FolderID)] = append(byFolder[folderKey(deck.FolderID)], id)
	}

	for _, ids := range byFolder {
		sort.Slice(ids, func(i, j int) bool {
			return *s.decks[ids[i]].OrderIndex < *s.decks[ids[j]].OrderIndex
		})
		for i, id := range ids {
			deck := s.decks[id]
			index := i
			deck.OrderIndex = &index
			s.decks[id] = deck
		}
	}
}

func folderKey(folderID *string) string {
	if folderID == nil {
		return ""
	}
	return *folderID
}

func sameFolder(a, b *string) bool {
	return folderKey(a) == folderKey(b)
}

package storage

import (
	"sync"

	"github.com/aliskhannn/bruno/internal/domain/entities"
)

// LessonStorage provides in-memory storage for running lessons by user ID.
type LessonStorage struct {
	mu       sync.RWMutex
	sessions map[int64]*entities.LessonSession
}

// NewLessonStorage creates a new LessonStorage.
func NewLessonStorage() *LessonStorage {
	return &LessonStorage{
		sessions: make(map[int64]*entities.LessonSession),
	}
}

// Store saves the lesson session of a user, replacing a previous one.
func (s *LessonStorage) Store(userID int64, session *entities.LessonSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[userID] = session
}

// Get retrieves the lesson session of a user.
func (s *LessonStorage) Get(userID int64) (*entities.LessonSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[userID]
	return session, ok
}

// Delete removes the lesson session of a user.
func (s *LessonStorage) Delete(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}

// DeckStorage provides in-memory storage for flashcard reviews by user ID.
type DeckStorage struct {
	mu    sync.RWMutex
	decks map[int64]*entities.Deck
}

// NewDeckStorage creates a new DeckStorage.
func NewDeckStorage() *DeckStorage {
	return &DeckStorage{
		decks: make(map[int64]*entities.Deck),
	}
}

// Store saves the deck of a user.
func (s *DeckStorage) Store(userID int64, deck *entities.Deck) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.decks[userID] = deck
}

// Get retrieves the deck of a user.
func (s *DeckStorage) Get(userID int64) (*entities.Deck, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	deck, ok := s.decks[userID]
	return deck, ok
}

// Delete removes the deck of a user.
func (s *DeckStorage) Delete(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.decks, userID)
}

package service

import (
	"errors"

	"github.com/aliskhannn/bruno/internal/domain/entities"
)

var ErrNoActiveDeck = errors.New("no active flashcard review")

// DeckAction is a learner action on the top card.
type DeckAction string

const (
	DeckFlip    DeckAction = "flip"
	DeckKnown   DeckAction = "known"
	DeckUnknown DeckAction = "unknown"
	DeckRestart DeckAction = "restart"
)

var ErrUnknownDeckAction = errors.New("unknown deck action")

// WordsService runs flashcard reviews.
type WordsService struct {
	content Content
	decks   DeckStorage
}

func NewWordsService(content Content, decks DeckStorage) *WordsService {
	return &WordsService{content: content, decks: decks}
}

// Start begins a review of all words. The review streak starts from the
// learner's daily streak.
func (s *WordsService) Start(userID int64, streak int) *entities.Deck {
	deck := entities.NewDeck(userID, s.content.Words(), streak)
	s.decks.Store(userID, deck)
	return deck
}

// Current returns the running review of a user.
func (s *WordsService) Current(userID int64) (*entities.Deck, error) {
	deck, ok := s.decks.Get(userID)
	if !ok {
		return nil, ErrNoActiveDeck
	}
	return deck, nil
}

// Apply performs action on the user's deck.
func (s *WordsService) Apply(userID int64, action DeckAction) (*entities.Deck, error) {
	deck, err := s.Current(userID)
	if err != nil {
		return nil, err
	}

	switch action {
	case DeckFlip:
		err = deck.Flip()
	case DeckKnown:
		err = deck.MarkKnown()
	case DeckUnknown:
		err = deck.MarkUnknown()
	case DeckRestart:
		deck.Restart()
	default:
		err = ErrUnknownDeckAction
	}
	return deck, err
}

// Stop ends the review.
func (s *WordsService) Stop(userID int64) {
	s.decks.Delete(userID)
}

package entities

import "errors"

var ErrDeckFinished = errors.New("flashcard deck is finished")

// Difficulty is the difficulty label of a word.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Word is a flashcard: a Spanish word with its translation and an example.
type Word struct {
	ID                 int        `json:"id"`
	Spanish            string     `json:"spanish"`
	Russian            string     `json:"russian"`
	Example            string     `json:"example"`
	ExampleTranslation string     `json:"exampleTranslation"`
	Difficulty         Difficulty `json:"difficulty"`
}

// Deck walks a learner through a list of flashcards once.
type Deck struct {
	UserID  int64
	Words   []Word
	Index   int
	Flipped bool
	Streak  int
	Known   []int // word ids
	Unknown []int // word ids
}

// NewDeck starts a review with the given words.
func NewDeck(userID int64, words []Word, streak int) *Deck {
	return &Deck{
		UserID: userID,
		Words:  words,
		Streak: streak,
	}
}

// Current returns the card on top of the deck.
func (d *Deck) Current() (Word, bool) {
	if d.Finished() {
		return Word{}, false
	}
	return d.Words[d.Index], true
}

// Flip turns the current card over.
func (d *Deck) Flip() error {
	if d.Finished() {
		return ErrDeckFinished
	}
	d.Flipped = !d.Flipped
	return nil
}

// MarkKnown records the current word as known and moves on.
func (d *Deck) MarkKnown() error {
	w, ok := d.Current()
	if !ok {
		return ErrDeckFinished
	}
	d.Known = append(d.Known, w.ID)
	d.Streak++
	d.next()
	return nil
}

// MarkUnknown records the current word as unknown, resets the streak and moves on.
func (d *Deck) MarkUnknown() error {
	w, ok := d.Current()
	if !ok {
		return ErrDeckFinished
	}
	d.Unknown = append(d.Unknown, w.ID)
	d.Streak = 0
	d.next()
	return nil
}

// Restart begins the same deck again. The streak is kept.
func (d *Deck) Restart() {
	d.Index = 0
	d.Flipped = false
	d.Known = nil
	d.Unknown = nil
}

// Finished reports whether every card was reviewed.
func (d *Deck) Finished() bool {
	return d.Index >= len(d.Words)
}

// ProgressPercent is the share of reviewed cards.
func (d *Deck) ProgressPercent() int {
	if len(d.Words) == 0 {
		return 100
	}
	return (len(d.Known) + len(d.Unknown)) * 100 / len(d.Words)
}

func (d *Deck) next() {
	d.Flipped = false
	d.Index++
}

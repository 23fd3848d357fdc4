// Package content loads the static learning material shipped with the binary.
package content

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"slices"

	"github.com/aliskhannn/bruno/internal/domain/entities"
)

//go:embed data/*.json
var dataFS embed.FS

// DefaultQuizKey holds the questions used by lessons without their own quiz.
const DefaultQuizKey = "default"

var ErrInvalidContent = errors.New("invalid content")

// Content is the learning path, flashcard words and lesson quizzes.
type Content struct {
	path    []entities.PathSection
	words   []entities.Word
	quizzes map[string][]entities.Question
}

type rawSection struct {
	ID          int                   `json:"id"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Icon        string                `json:"icon"`
	Lessons     []entities.PathLesson `json:"lessons"`
}

// Load reads and validates the embedded content.
func Load() (*Content, error) {
	return LoadFS(dataFS)
}

// LoadFS reads data/path.json, data/words.json and data/lessons.json from fsys.
func LoadFS(fsys fs.FS) (*Content, error) {
	var sections []rawSection
	if err := readJSON(fsys, "data/path.json", &sections); err != nil {
		return nil, err
	}

	var words []entities.Word
	if err := readJSON(fsys, "data/words.json", &words); err != nil {
		return nil, err
	}

	var quizzes map[string][]entities.Question
	if err := readJSON(fsys, "data/lessons.json", &quizzes); err != nil {
		return nil, err
	}

	path, err := buildPath(sections)
	if err != nil {
		return nil, err
	}
	if err := validateWords(words); err != nil {
		return nil, err
	}
	if err := validateQuizzes(quizzes, path); err != nil {
		return nil, err
	}

	return &Content{path: path, words: words, quizzes: quizzes}, nil
}

func readJSON(fsys fs.FS, name string, dst any) error {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

func buildPath(raw []rawSection) ([]entities.PathSection, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty learning path", ErrInvalidContent)
	}

	seen := make(map[string]bool)
	path := make([]entities.PathSection, 0, len(raw))
	for _, s := range raw {
		icon, ok := entities.ParseIcon(s.Icon)
		if !ok {
			return nil, fmt.Errorf("%w: section %d: unknown icon %q", ErrInvalidContent, s.ID, s.Icon)
		}
		for _, l := range s.Lessons {
			if l.ID == "" || seen[l.ID] {
				return nil, fmt.Errorf("%w: section %d: empty or duplicate lesson id %q", ErrInvalidContent, s.ID, l.ID)
			}
			seen[l.ID] = true
			if !l.Type.Valid() {
				return nil, fmt.Errorf("%w: lesson %s: unknown type %q", ErrInvalidContent, l.ID, l.Type)
			}
			switch l.Status {
			case entities.StatusCompleted, entities.StatusAvailable, entities.StatusLocked:
			default:
				return nil, fmt.Errorf("%w: lesson %s: unknown status %q", ErrInvalidContent, l.ID, l.Status)
			}
		}
		path = append(path, entities.PathSection{
			ID:          s.ID,
			Title:       s.Title,
			Description: s.Description,
			Icon:        icon,
			Lessons:     s.Lessons,
		})
	}
	return path, nil
}

func validateWords(words []entities.Word) error {
	seen := make(map[int]bool, len(words))
	for _, w := range words {
		if seen[w.ID] {
			return fmt.Errorf("%w: duplicate word id %d", ErrInvalidContent, w.ID)
		}
		seen[w.ID] = true
		if w.Spanish == "" || w.Russian == "" {
			return fmt.Errorf("%w: word %d has no translation", ErrInvalidContent, w.ID)
		}
	}
	return nil
}

func validateQuizzes(quizzes map[string][]entities.Question, path []entities.PathSection) error {
	if len(quizzes[DefaultQuizKey]) == 0 {
		return fmt.Errorf("%w: no default quiz", ErrInvalidContent)
	}

	for key, questions := range quizzes {
		if key != DefaultQuizKey {
			if _, ok := entities.FindLesson(path, key); !ok {
				return fmt.Errorf("%w: quiz for unknown lesson %q", ErrInvalidContent, key)
			}
			if len(questions) == 0 {
				return fmt.Errorf("%w: quiz %s has no questions", ErrInvalidContent, key)
			}
		}
		for _, q := range questions {
			switch q.Type {
			case entities.QuestionTranslation:
				if q.CorrectAnswer == "" {
					return fmt.Errorf("%w: quiz %s question %d: empty answer", ErrInvalidContent, key, q.ID)
				}
			case entities.QuestionMultipleChoice, entities.QuestionListening:
				if !slices.Contains(q.Options, q.CorrectAnswer) {
					return fmt.Errorf("%w: quiz %s question %d: answer not among options", ErrInvalidContent, key, q.ID)
				}
			default:
				return fmt.Errorf("%w: quiz %s question %d: unknown type %q", ErrInvalidContent, key, q.ID, q.Type)
			}
		}
	}
	return nil
}

// Path returns a copy of the learning path with its static statuses.
func (c *Content) Path() []entities.PathSection {
	out := make([]entities.PathSection, len(c.path))
	for i, s := range c.path {
		s.Lessons = slices.Clone(s.Lessons)
		out[i] = s
	}
	return out
}

// Lesson returns the path lesson with the given id.
func (c *Content) Lesson(id string) (entities.PathLesson, bool) {
	return entities.FindLesson(c.path, id)
}

// Words returns a copy of the flashcard words.
func (c *Content) Words() []entities.Word {
	return slices.Clone(c.words)
}

// Questions returns the quiz of a lesson, falling back to the default quiz.
func (c *Content) Questions(lessonID string) []entities.Question {
	qs, ok := c.quizzes[lessonID]
	if !ok {
		qs = c.quizzes[DefaultQuizKey]
	}
	out := make([]entities.Question, len(qs))
	for i, q := range qs {
		q.Options = slices.Clone(q.Options)
		out[i] = q
	}
	return out
}

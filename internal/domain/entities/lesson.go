package entities

import (
	"errors"
	"strings"
)

// QuestionType is the kind of a lesson question.
type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple-choice"
	QuestionTranslation    QuestionType = "translation" // free text answer
	QuestionListening      QuestionType = "listening"
)

const (
	// LessonLives is the number of mistakes a learner may make in one lesson.
	LessonLives = 3
	// XPPerCorrectAnswer is awarded for every correct answer.
	XPPerCorrectAnswer = 10
)

var (
	ErrSessionFinished = errors.New("lesson session is finished")
	ErrAlreadyChecked  = errors.New("answer already checked")
	ErrNotChecked      = errors.New("answer not checked yet")
)

// Question is a single lesson exercise.
type Question struct {
	ID            int          `json:"id"`
	Type          QuestionType `json:"type"`
	Question      string       `json:"question"`
	QuestionRu    string       `json:"questionRu,omitempty"`
	Options       []string     `json:"options,omitempty"`
	CorrectAnswer string       `json:"correctAnswer"`
	Hint          string       `json:"hint,omitempty"`
}

// HasOptions reports whether the question is answered by picking an option.
func (q Question) HasOptions() bool {
	return q.Type != QuestionTranslation
}

// IsCorrect checks an answer. Free text answers are trimmed and compared
// in lower case; picked options are compared case-insensitively.
func (q Question) IsCorrect(answer string) bool {
	if q.Type == QuestionTranslation {
		return strings.ToLower(strings.TrimSpace(answer)) == strings.ToLower(q.CorrectAnswer)
	}
	return strings.EqualFold(answer, q.CorrectAnswer)
}

// LessonSession tracks one pass through a lesson's questions.
type LessonSession struct {
	LessonID  string
	UserID    int64
	Questions []Question

	Index    int
	Lives    int
	XPEarned int
	Correct  int
	checked  bool
}

// NewLessonSession starts a lesson with full lives.
func NewLessonSession(userID int64, lessonID string, questions []Question) *LessonSession {
	return &LessonSession{
		LessonID:  lessonID,
		UserID:    userID,
		Questions: questions,
		Lives:     LessonLives,
	}
}

// Current returns the question being answered.
func (s *LessonSession) Current() (Question, bool) {
	if s.Finished() {
		return Question{}, false
	}
	return s.Questions[s.Index], true
}

// Check grades the answer to the current question.
func (s *LessonSession) Check(answer string) (bool, error) {
	q, ok := s.Current()
	if !ok {
		return false, ErrSessionFinished
	}
	if s.checked {
		return false, ErrAlreadyChecked
	}

	correct := q.IsCorrect(answer)
	s.checked = true

	if correct {
		s.XPEarned += XPPerCorrectAnswer
		s.Correct++
	} else {
		s.Lives--
	}

	return correct, nil
}

// Checked reports whether the current question was graded.
func (s *LessonSession) Checked() bool {
	return s.checked
}

// Continue moves to the next question after a check.
// With no lives left the session ends as failed.
func (s *LessonSession) Continue() error {
	if s.Finished() {
		return ErrSessionFinished
	}
	if !s.checked {
		return ErrNotChecked
	}

	s.checked = false
	if s.Lives > 0 {
		s.Index++
	}

	return nil
}

// Failed reports whether all lives are spent.
func (s *LessonSession) Failed() bool {
	return s.Lives <= 0 && !s.checked
}

// Completed reports whether all questions were passed.
func (s *LessonSession) Completed() bool {
	return s.Index >= len(s.Questions)
}

// Finished reports whether no more answers are accepted.
func (s *LessonSession) Finished() bool {
	return s.Completed() || s.Failed()
}

// ProgressPercent is the share of questions already passed.
func (s *LessonSession) ProgressPercent() int {
	if len(s.Questions) == 0 {
		return 100
	}
	return s.Index * 100 / len(s.Questions)
}

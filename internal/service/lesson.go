package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/aliskhannn/bruno/internal/domain/entities"
)

var (
	ErrLessonNotFound = errors.New("lesson not found")
	ErrLessonLocked   = errors.New("lesson is locked")
	ErrNoActiveLesson = errors.New("no active lesson")
)

// LessonRecorder reports finished lessons to the backend.
type LessonRecorder interface {
	AwardXP(ctx context.Context, user *entities.User, delta int64) (entities.Learner, error)
	CompleteLesson(ctx context.Context, user *entities.User, lessonID string, score int) error
}

// LessonResult describes how a lesson ended.
type LessonResult struct {
	Lesson    entities.PathLesson
	Session   *entities.LessonSession
	Failed    bool
	XPAwarded int64
	Learner   *entities.Learner // set when the completion was recorded
}

// LessonService runs lesson sessions.
type LessonService struct {
	content  Content
	sessions LessonStorage
	recorder LessonRecorder
	logger   *zap.Logger
}

func NewLessonService(content Content, sessions LessonStorage, recorder LessonRecorder, logger *zap.Logger) *LessonService {
	return &LessonService{
		content:  content,
		sessions: sessions,
		recorder: recorder,
		logger:   logger,
	}
}

// Start begins a lesson, replacing any running one.
func (s *LessonService) Start(userID int64, lesson entities.PathLesson) (*entities.LessonSession, error) {
	if _, ok := s.content.Lesson(lesson.ID); !ok {
		return nil, fmt.Errorf("%w: %s", ErrLessonNotFound, lesson.ID)
	}
	if lesson.Status == entities.StatusLocked {
		return nil, fmt.Errorf("%w: %s", ErrLessonLocked, lesson.ID)
	}

	session := entities.NewLessonSession(userID, lesson.ID, s.content.Questions(lesson.ID))
	s.sessions.Store(userID, session)

	s.logger.Debug("lesson started",
		zap.Int64("user_id", userID),
		zap.String("lesson_id", lesson.ID),
		zap.Int("questions", len(session.Questions)),
	)
	return session, nil
}

// Current returns the running lesson of a user.
func (s *LessonService) Current(userID int64) (*entities.LessonSession, error) {
	session, ok := s.sessions.Get(userID)
	if !ok {
		return nil, ErrNoActiveLesson
	}
	return session, nil
}

// Answer grades the answer to the current question.
func (s *LessonService) Answer(userID int64, answer string) (*entities.LessonSession, bool, error) {
	session, err := s.Current(userID)
	if err != nil {
		return nil, false, err
	}

	correct, err := session.Check(answer)
	if err != nil {
		return session, false, err
	}
	return session, correct, nil
}

// Continue moves past a checked question. It returns a result once the
// lesson is over; a completed lesson is recorded on the backend with the
// earned xp plus the lesson reward and the number of correct answers as score.
func (s *LessonService) Continue(ctx context.Context, user *entities.User) (*entities.LessonSession, *LessonResult, error) {
	session, err := s.Current(user.ID)
	if err != nil {
		return nil, nil, err
	}
	if err := session.Continue(); err != nil {
		return session, nil, err
	}
	if !session.Finished() {
		return session, nil, nil
	}

	s.sessions.Delete(user.ID)

	lesson, _ := s.content.Lesson(session.LessonID)
	result := &LessonResult{Lesson: lesson, Session: session, Failed: session.Failed()}
	if result.Failed {
		s.logger.Info("lesson failed",
			zap.Int64("user_id", user.ID),
			zap.String("lesson_id", session.LessonID),
		)
		return session, result, nil
	}

	result.XPAwarded = int64(session.XPEarned + lesson.XPReward)

	if err := s.recorder.CompleteLesson(ctx, user, session.LessonID, session.Correct); err != nil {
		return session, result, fmt.Errorf("record lesson: %w", err)
	}
	learner, err := s.recorder.AwardXP(ctx, user, result.XPAwarded)
	if err != nil {
		return session, result, fmt.Errorf("award xp: %w", err)
	}
	result.Learner = &learner

	s.logger.Info("lesson completed",
		zap.Int64("user_id", user.ID),
		zap.String("lesson_id", session.LessonID),
		zap.Int("correct", session.Correct),
		zap.Int64("xp", result.XPAwarded),
	)
	return session, result, nil
}

// Quit abandons the running lesson.
func (s *LessonService) Quit(userID int64) {
	s.sessions.Delete(userID)
}

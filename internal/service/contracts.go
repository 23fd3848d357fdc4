package service

import (
	"context"
	"time"

	"github.com/aliskhannn/bruno/internal/domain/entities"
)

type UserRepository interface {
	Save(ctx context.Context, user *entities.User) (bool, error)
	GetByID(ctx context.Context, userID int64) (*entities.User, error)
	SetRemindersEnabled(ctx context.Context, userID int64, enabled bool) error
}

// SnapshotRepository persists the last known backend stats of users.
type SnapshotRepository interface {
	Save(ctx context.Context, owner *entities.User, snapshot *entities.StatsSnapshot) error
	Get(ctx context.Context, userID int64) (*entities.StatsSnapshot, error)
}

// ReminderRepository selects and marks streak reminder recipients.
type ReminderRepository interface {
	ListReminderCandidates(ctx context.Context, dayStart time.Time, limit, offset int) ([]*entities.ReminderCandidate, error)
	MarkReminded(ctx context.Context, userID int64, at time.Time) error
}

// ProfileCache keeps recent /api/me responses.
type ProfileCache interface {
	Get(ctx context.Context, userID int64) (*entities.MeResponse, error)
	Set(ctx context.Context, userID int64, me *entities.MeResponse) error
	Invalidate(ctx context.Context, userID int64) error
}

// Backend is the remote mini-app backend.
type Backend interface {
	GetMe(ctx context.Context, initData string) (*entities.MeResponse, error)
	UpdateStats(ctx context.Context, initData string, req entities.UpdateStatsRequest) (*entities.SuccessResponse, error)
	GetProgress(ctx context.Context, initData string) ([]entities.LessonProgress, error)
	UpdateProgress(ctx context.Context, initData string, req entities.UpdateProgressRequest) (*entities.SuccessResponse, error)
}

// InitDataSigner mints Telegram init data on behalf of a bot user.
type InitDataSigner interface {
	Sign(user *entities.User) (string, error)
}

// Content is the static learning material.
type Content interface {
	Path() []entities.PathSection
	Lesson(id string) (entities.PathLesson, bool)
	Words() []entities.Word
	Questions(lessonID string) []entities.Question
}

// LessonStorage keeps running lesson sessions.
type LessonStorage interface {
	Store(userID int64, s *entities.LessonSession)
	Get(userID int64) (*entities.LessonSession, bool)
	Delete(userID int64)
}

// DeckStorage keeps running flashcard reviews.
type DeckStorage interface {
	Store(userID int64, d *entities.Deck)
	Get(userID int64) (*entities.Deck, bool)
	Delete(userID int64)
}

// ReminderNotifier delivers streak reminders to users.
type ReminderNotifier interface {
	SendStreakReminder(ctx context.Context, c *entities.ReminderCandidate) error
}

package telegram

import (
	"context"

	"github.com/aliskhannn/bruno/internal/domain/entities"
	"github.com/aliskhannn/bruno/internal/service"
	"github.com/aliskhannn/bruno/internal/storage"
)

type UserService interface {
	EnsureUser(ctx context.Context, user *entities.User) error
	ToggleReminders(ctx context.Context, userID int64) (bool, error)
	DisableReminders(ctx context.Context, userID int64) error
}

type ProfileService interface {
	Refresh(ctx context.Context, user *entities.User) (entities.Learner, error)
	Snapshot(userID int64) entities.Learner
}

type PathService interface {
	ForUser(ctx context.Context, user *entities.User) []entities.PathSection
}

type LessonService interface {
	Start(userID int64, lesson entities.PathLesson) (*entities.LessonSession, error)
	Current(userID int64) (*entities.LessonSession, error)
	Answer(userID int64, answer string) (*entities.LessonSession, bool, error)
	Continue(ctx context.Context, user *entities.User) (*entities.LessonSession, *service.LessonResult, error)
	Quit(userID int64)
}

type WordsService interface {
	Start(userID int64, streak int) *entities.Deck
	Current(userID int64) (*entities.Deck, error)
	Apply(userID int64, action service.DeckAction) (*entities.Deck, error)
	Stop(userID int64)
}

type ResetService interface {
	ResetUser(ctx context.Context, userID int64) error
}

// ReminderStorage remembers the last reminder message per user.
type ReminderStorage interface {
	UpsertAndGetPrev(userID int64, chatID int64, messageID int) (storage.ReminderMessage, bool)
	Delete(userID int64)
}

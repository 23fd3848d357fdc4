package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/aliskhannn/bruno/internal/domain/entities"
)

type UserService struct {
	repository UserRepository
	logger     *zap.Logger
}

func NewUserService(repository UserRepository, logger *zap.Logger) *UserService {
	return &UserService{repository: repository, logger: logger}
}

// EnsureUser registers the user on first contact and refreshes the Telegram
// fields on later ones.
func (s *UserService) EnsureUser(ctx context.Context, user *entities.User) error {
	created, err := s.repository.Save(ctx, user)
	if err != nil {
		return fmt.Errorf("ensure user: %w", err)
	}
	if created {
		s.logger.Info("user registered", zap.Int64("user_id", user.ID))
	}
	return nil
}

// Get returns a registered user.
func (s *UserService) Get(ctx context.Context, userID int64) (*entities.User, error) {
	return s.repository.GetByID(ctx, userID)
}

// ToggleReminders flips streak reminders and returns the new state.
func (s *UserService) ToggleReminders(ctx context.Context, userID int64) (bool, error) {
	user, err := s.repository.GetByID(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("get user: %w", err)
	}

	enabled := !user.RemindersEnabled
	if err := s.repository.SetRemindersEnabled(ctx, userID, enabled); err != nil {
		return false, fmt.Errorf("toggle reminders: %w", err)
	}
	return enabled, nil
}

// DisableReminders switches streak reminders off.
func (s *UserService) DisableReminders(ctx context.Context, userID int64) error {
	if err := s.repository.SetRemindersEnabled(ctx, userID, false); err != nil {
		return fmt.Errorf("disable reminders: %w", err)
	}
	return nil
}

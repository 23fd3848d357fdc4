package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/aliskhannn/bruno/internal/store"
)

// ResetRepository drops local user data in one transaction.
type ResetRepository interface {
	Reset(ctx context.Context, userID int64) error
}

// ResetService forgets what the bot keeps about a user. Backend data is untouched.
type ResetService struct {
	repo     ResetRepository
	cache    ProfileCache
	registry *store.Registry
	logger   *zap.Logger
}

func NewResetService(repo ResetRepository, cache ProfileCache, registry *store.Registry, logger *zap.Logger) *ResetService {
	return &ResetService{
		repo:     repo,
		cache:    cache,
		registry: registry,
		logger:   logger,
	}
}

func (s *ResetService) ResetUser(ctx context.Context, userID int64) error {
	if err := s.repo.Reset(ctx, userID); err != nil {
		return fmt.Errorf("reset user: %w", err)
	}
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		s.logger.Warn("failed to invalidate profile cache", zap.Int64("user_id", userID), zap.Error(err))
	}

	// The guest snapshot is not persisted, so the deleted row stays deleted.
	s.registry.Get(userID).ResetToGuest()
	return nil
}

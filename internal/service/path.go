package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/aliskhannn/bruno/internal/domain/entities"
)

// ProgressSource provides backend lesson progress of a user.
type ProgressSource interface {
	Progress(ctx context.Context, user *entities.User) ([]entities.LessonProgress, error)
}

// PathService renders the learning path for a user.
type PathService struct {
	content  Content
	progress ProgressSource
	logger   *zap.Logger
}

func NewPathService(content Content, progress ProgressSource, logger *zap.Logger) *PathService {
	return &PathService{content: content, progress: progress, logger: logger}
}

// Static returns the path with the statuses shipped in content.
func (s *PathService) Static() []entities.PathSection {
	return s.content.Path()
}

// ForUser returns the path with statuses derived from backend progress.
// Without progress the static statuses are kept.
func (s *PathService) ForUser(ctx context.Context, user *entities.User) []entities.PathSection {
	path := s.content.Path()

	progress, err := s.progress.Progress(ctx, user)
	if err != nil {
		s.logger.Warn("failed to load lesson progress, using static path",
			zap.Int64("user_id", user.ID),
			zap.Error(err),
		)
		return path
	}

	return entities.ApplyProgress(path, progress)
}

// NextLesson returns the first available lesson of the user's path.
func (s *PathService) NextLesson(ctx context.Context, user *entities.User) (entities.PathLesson, bool) {
	return entities.NextAvailable(s.ForUser(ctx, user))
}

package httpapi

import (
	"context"

	"github.com/aliskhannn/bruno/internal/domain/entities"
)

type ProfileService interface {
	Load(ctx context.Context, userID int64, initData string) (entities.Learner, error)
}

type UserService interface {
	EnsureUser(ctx context.Context, user *entities.User) error
}

type PathService interface {
	Static() []entities.PathSection
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/bruno/internal/domain/entities"
	"github.com/aliskhannn/bruno/internal/store"
)

var ErrProfileUnavailable = errors.New("profile unavailable")

const snapshotWriteTimeout = 5 * time.Second

// ProfileService loads learners from the backend into their user stores.
type ProfileService struct {
	backend   Backend
	signer    InitDataSigner
	cache     ProfileCache
	snapshots SnapshotRepository
	registry  *store.Registry
	logger    *zap.Logger
	now       func() time.Time
}

// NewProfileService creates the service and subscribes it to every store
// the registry creates, so published telegram snapshots are persisted.
func NewProfileService(
	backend Backend,
	signer InitDataSigner,
	cache ProfileCache,
	snapshots SnapshotRepository,
	registry *store.Registry,
	logger *zap.Logger,
) *ProfileService {
	s := &ProfileService{
		backend:   backend,
		signer:    signer,
		cache:     cache,
		snapshots: snapshots,
		registry:  registry,
		logger:    logger,
		now:       time.Now,
	}
	registry.OnCreate(func(userID int64, us *store.UserStore) {
		us.Subscribe(s.persist)
	})
	return s
}

// Refresh loads the learner of a bot user.
func (s *ProfileService) Refresh(ctx context.Context, user *entities.User) (entities.Learner, error) {
	initData, err := s.signer.Sign(user)
	if err != nil {
		return entities.Learner{}, fmt.Errorf("sign init data: %w", err)
	}
	return s.Load(ctx, user.ID, initData)
}

// Load fetches the learner behind initData, preferring a cached response.
// When the backend fails the last stored snapshot is returned instead.
func (s *ProfileService) Load(ctx context.Context, userID int64, initData string) (entities.Learner, error) {
	us := s.registry.Get(userID)

	me, err := s.cache.Get(ctx, userID)
	if err == nil {
		return us.ApplyProfile(me.Profile, me.Stats), nil
	}

	me, err = s.backend.GetMe(ctx, initData)
	if err != nil {
		s.logger.Warn("backend profile request failed",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return s.fallback(ctx, us, userID, err)
	}

	if err := s.cache.Set(ctx, userID, me); err != nil {
		s.logger.Warn("failed to cache profile", zap.Int64("user_id", userID), zap.Error(err))
	}

	return us.ApplyProfile(me.Profile, me.Stats), nil
}

func (s *ProfileService) fallback(ctx context.Context, us *store.UserStore, userID int64, cause error) (entities.Learner, error) {
	if cur := us.Snapshot(); cur.Source == entities.SourceTelegram {
		return cur, nil
	}

	snap, err := s.snapshots.Get(ctx, userID)
	if err != nil {
		return us.Snapshot(), fmt.Errorf("%w: %w", ErrProfileUnavailable, cause)
	}
	return snap.Learner(), nil
}

// Snapshot returns the learner currently held for userID.
func (s *ProfileService) Snapshot(userID int64) entities.Learner {
	return s.registry.Get(userID).Snapshot()
}

// AwardXP adds xp on the backend and reloads the learner.
// If the reload fails a telegram snapshot in the store is patched with the
// delta; a guest store is left alone and ErrProfileUnavailable is returned
// when no stored snapshot exists either.
func (s *ProfileService) AwardXP(ctx context.Context, user *entities.User, delta int64) (entities.Learner, error) {
	initData, err := s.signer.Sign(user)
	if err != nil {
		return entities.Learner{}, fmt.Errorf("sign init data: %w", err)
	}

	if _, err := s.backend.UpdateStats(ctx, initData, entities.UpdateStatsRequest{XPDelta: delta}); err != nil {
		return entities.Learner{}, fmt.Errorf("update stats: %w", err)
	}
	if err := s.cache.Invalidate(ctx, user.ID); err != nil {
		s.logger.Warn("failed to invalidate profile cache", zap.Int64("user_id", user.ID), zap.Error(err))
	}

	us := s.registry.Get(user.ID)
	me, err := s.backend.GetMe(ctx, initData)
	if err != nil {
		s.logger.Warn("reload after xp award failed", zap.Int64("user_id", user.ID), zap.Error(err))
		if cur := us.Snapshot(); cur.Source == entities.SourceTelegram {
			xp := cur.Stats.XP + delta
			return us.UpdateStats(entities.StatsPatch{XP: &xp}), nil
		}

		// A guest store has no xp to patch. Answer from the stored
		// snapshot without publishing it.
		l, ferr := s.fallback(ctx, us, user.ID, err)
		if ferr != nil {
			return l, ferr
		}
		xp := l.Stats.XP + delta
		return l.WithPatch(entities.StatsPatch{XP: &xp}), nil
	}

	if err := s.cache.Set(ctx, user.ID, me); err != nil {
		s.logger.Warn("failed to cache profile", zap.Int64("user_id", user.ID), zap.Error(err))
	}
	return us.ApplyProfile(me.Profile, me.Stats), nil
}

// Progress returns the backend lesson progress of a bot user.
func (s *ProfileService) Progress(ctx context.Context, user *entities.User) ([]entities.LessonProgress, error) {
	initData, err := s.signer.Sign(user)
	if err != nil {
		return nil, fmt.Errorf("sign init data: %w", err)
	}
	return s.backend.GetProgress(ctx, initData)
}

// CompleteLesson marks a lesson completed on the backend.
func (s *ProfileService) CompleteLesson(ctx context.Context, user *entities.User, lessonID string, score int) error {
	initData, err := s.signer.Sign(user)
	if err != nil {
		return fmt.Errorf("sign init data: %w", err)
	}

	_, err = s.backend.UpdateProgress(ctx, initData, entities.UpdateProgressRequest{
		LessonID: lessonID,
		Status:   entities.ProgressCompleted,
		Score:    &score,
	})
	if err != nil {
		return fmt.Errorf("update progress: %w", err)
	}
	return nil
}

// persist writes telegram snapshots. It runs under the store write lock,
// so snapshots reach the database in publish order. The cost is that every
// write to the same user store waits for this transaction, up to
// snapshotWriteTimeout; readers of Snapshot are not blocked.
func (s *ProfileService) persist(l entities.Learner) {
	if l.Source != entities.SourceTelegram || l.ID == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), snapshotWriteTimeout)
	defer cancel()

	owner := entities.NewUser(*l.ID, *l.ID, l.Name, "", "", "")
	if err := s.snapshots.Save(ctx, owner, entities.NewStatsSnapshot(l, s.now())); err != nil {
		s.logger.Error("failed to persist stats snapshot",
			zap.Int64("user_id", *l.ID),
			zap.Error(err),
		)
	}
}

package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/aliskhannn/bruno/internal/domain/entities"
	"github.com/aliskhannn/bruno/internal/infra/redis"
)

var errBackendDown = errors.New("backend down")

type fakeBackend struct {
	mu           sync.Mutex
	me           *entities.MeResponse
	meErr        error
	reloadErr    error // returned by GetMe after UpdateStats
	getMeCalls   int
	statsReqs    []entities.UpdateStatsRequest
	progress     []entities.LessonProgress
	progressErr  error
	progressReqs []entities.UpdateProgressRequest
	initData     []string
}

func (b *fakeBackend) GetMe(_ context.Context, initData string) (*entities.MeResponse, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.getMeCalls++
	b.initData = append(b.initData, initData)
	if b.meErr != nil {
		return nil, b.meErr
	}
	if len(b.statsReqs) > 0 && b.reloadErr != nil {
		return nil, b.reloadErr
	}
	profile := *b.me.Profile
	stats := *b.me.Stats
	return &entities.MeResponse{Profile: &profile, Stats: &stats}, nil
}

func (b *fakeBackend) UpdateStats(_ context.Context, initData string, req entities.UpdateStatsRequest) (*entities.SuccessResponse, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.statsReqs = append(b.statsReqs, req)
	if b.me != nil {
		b.me.Stats.XP += req.XPDelta
	}
	return &entities.SuccessResponse{Success: true}, nil
}

func (b *fakeBackend) GetProgress(_ context.Context, initData string) ([]entities.LessonProgress, error) {
	if b.progressErr != nil {
		return nil, b.progressErr
	}
	return b.progress, nil
}

func (b *fakeBackend) UpdateProgress(_ context.Context, initData string, req entities.UpdateProgressRequest) (*entities.SuccessResponse, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.progressReqs = append(b.progressReqs, req)
	return &entities.SuccessResponse{Success: true}, nil
}

type fakeSigner struct{}

func (fakeSigner) Sign(u *entities.User) (string, error) {
	return fmt.Sprintf("init:%d", u.ID), nil
}

type fakeCache struct {
	mu          sync.Mutex
	items       map[int64]*entities.MeResponse
	invalidated []int64
}

func newFakeCache() *fakeCache {
	return &fakeCache{items: make(map[int64]*entities.MeResponse)}
}

func (c *fakeCache) Get(_ context.Context, userID int64) (*entities.MeResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	me, ok := c.items[userID]
	if !ok {
		return nil, redis.ErrCacheMiss
	}
	return me, nil
}

func (c *fakeCache) Set(_ context.Context, userID int64, me *entities.MeResponse) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[userID] = me
	return nil
}

func (c *fakeCache) Invalidate(_ context.Context, userID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, userID)
	c.invalidated = append(c.invalidated, userID)
	return nil
}

type fakeSnapshots struct {
	mu     sync.Mutex
	stored map[int64]*entities.StatsSnapshot
	owners map[int64]*entities.User
	saves  int
	resets []int64
	block  chan struct{} // Save waits on it when set
}

func newFakeSnapshots() *fakeSnapshots {
	return &fakeSnapshots{
		stored: make(map[int64]*entities.StatsSnapshot),
		owners: make(map[int64]*entities.User),
	}
}

func (s *fakeSnapshots) Save(_ context.Context, owner *entities.User, snap *entities.StatsSnapshot) error {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	s.owners[owner.ID] = owner
	s.stored[snap.UserID] = snap
	return nil
}

func (s *fakeSnapshots) Get(_ context.Context, userID int64) (*entities.StatsSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.stored[userID]
	if !ok {
		return nil, errors.New("not found")
	}
	return snap, nil
}

func (s *fakeSnapshots) Reset(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.stored, userID)
	s.resets = append(s.resets, userID)
	return nil
}

type fakeUserRepo struct {
	users map[int64]*entities.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*entities.User)}
}

func (r *fakeUserRepo) Save(_ context.Context, u *entities.User) (bool, error) {
	_, exists := r.users[u.ID]
	if exists {
		r.users[u.ID].FirstName = u.FirstName
		return false, nil
	}
	cp := *u
	r.users[u.ID] = &cp
	return true, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, userID int64) (*entities.User, error) {
	u, ok := r.users[userID]
	if !ok {
		return nil, errors.New("user not found")
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) SetRemindersEnabled(_ context.Context, userID int64, enabled bool) error {
	u, ok := r.users[userID]
	if !ok {
		return errors.New("user not found")
	}
	u.RemindersEnabled = enabled
	return nil
}

type fakeReminderRepo struct {
	mu         sync.Mutex
	candidates []*entities.ReminderCandidate
	reminded   map[int64]time.Time
	queries    int
}

func (r *fakeReminderRepo) ListReminderCandidates(_ context.Context, dayStart time.Time, limit, offset int) ([]*entities.ReminderCandidate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queries++

	var due []*entities.ReminderCandidate
	for _, c := range r.candidates {
		if at, ok := r.reminded[c.UserID]; ok && !at.Before(dayStart) {
			continue
		}
		due = append(due, c)
	}
	sort.Slice(due, func(i, j int) bool { return due[i].UserID < due[j].UserID })

	if offset >= len(due) {
		return nil, nil
	}
	due = due[offset:]
	if len(due) > limit {
		due = due[:limit]
	}
	return due, nil
}

func (r *fakeReminderRepo) MarkReminded(_ context.Context, userID int64, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reminded[userID] = at
	return nil
}

type fakeNotifier struct {
	mu     sync.Mutex
	sent   []int64
	failOn func(userID int64) bool
}

func (n *fakeNotifier) SendStreakReminder(_ context.Context, c *entities.ReminderCandidate) error {
	if n.failOn != nil && n.failOn(c.UserID) {
		return errors.New("chat not found")
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, c.UserID)
	return nil
}

type fakeRecorder struct {
	awarded   []int64
	completed []entities.UpdateProgressRequest
	awardErr  error
}

func (r *fakeRecorder) AwardXP(_ context.Context, user *entities.User, delta int64) (entities.Learner, error) {
	if r.awardErr != nil {
		return entities.Learner{}, r.awardErr
	}
	r.awarded = append(r.awarded, delta)
	return entities.NewLearner(&entities.Profile{TgID: user.ID, FirstName: user.FirstName}, &entities.Stats{XP: delta}), nil
}

func (r *fakeRecorder) CompleteLesson(_ context.Context, _ *entities.User, lessonID string, score int) error {
	r.completed = append(r.completed, entities.UpdateProgressRequest{
		LessonID: lessonID,
		Status:   entities.ProgressCompleted,
		Score:    &score,
	})
	return nil
}

// Package store holds the current learner snapshot of each Telegram user.
package store

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/aliskhannn/bruno/internal/domain/entities"
)

// Listener receives every published snapshot.
type Listener func(entities.Learner)

type subscription struct {
	id int
	fn Listener
}

// UserStore owns the learner snapshot of one user.
// Writes are serialized and listeners are notified under the write lock,
// so they observe snapshots in write order. Readers never take the lock.
type UserStore struct {
	mu        sync.Mutex
	current   atomic.Pointer[entities.Learner]
	listeners []subscription
	nextID    int
	log       *zap.Logger
}

// New creates a store holding the guest snapshot.
func New(log *zap.Logger) *UserStore {
	if log == nil {
		log = zap.NewNop()
	}
	s := &UserStore{log: log}
	guest := entities.NewGuest()
	s.current.Store(&guest)
	return s
}

// Snapshot returns the current learner.
func (s *UserStore) Snapshot() entities.Learner {
	return clone(*s.current.Load())
}

// clone detaches the ID pointer so callers cannot mutate the stored value.
func clone(l entities.Learner) entities.Learner {
	if l.ID != nil {
		id := *l.ID
		l.ID = &id
	}
	return l
}

// Subscribe registers fn and calls it with the current snapshot.
// The returned function removes the listener; calling it twice is a no-op.
func (s *UserStore) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners = append(s.listeners, subscription{id: id, fn: fn})
	s.notify(fn, clone(*s.current.Load()))

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, sub := range s.listeners {
				if sub.id == id {
					s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
					return
				}
			}
		})
	}
}

// ApplyProfile replaces the snapshot with the learner described by backend data.
func (s *UserStore) ApplyProfile(profile *entities.Profile, stats *entities.Stats) entities.Learner {
	return s.write(func(entities.Learner) entities.Learner {
		return entities.NewLearner(profile, stats)
	})
}

// UpdateStats merges patch into the current snapshot.
func (s *UserStore) UpdateStats(patch entities.StatsPatch) entities.Learner {
	return s.write(func(cur entities.Learner) entities.Learner {
		return cur.WithPatch(patch)
	})
}

// ResetToGuest publishes the guest snapshot.
func (s *UserStore) ResetToGuest() entities.Learner {
	return s.write(func(entities.Learner) entities.Learner {
		return entities.NewGuest()
	})
}

func (s *UserStore) write(next func(entities.Learner) entities.Learner) entities.Learner {
	s.mu.Lock()
	defer s.mu.Unlock()

	l := next(*s.current.Load())
	s.current.Store(&l)

	for _, sub := range s.listeners {
		s.notify(sub.fn, clone(l))
	}
	return clone(l)
}

// notify calls fn and keeps a panicking listener from breaking the writer.
func (s *UserStore) notify(fn Listener, l entities.Learner) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("store listener panicked", zap.Any("panic", r))
		}
	}()
	fn(l)
}

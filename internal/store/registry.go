package store

import (
	"sync"

	"go.uber.org/zap"
)

// Registry owns one UserStore per Telegram user.
type Registry struct {
	mu     sync.RWMutex
	stores map[int64]*UserStore
	onNew  []func(userID int64, s *UserStore)
	log    *zap.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{
		stores: make(map[int64]*UserStore),
		log:    log,
	}
}

// OnCreate registers a hook run once for every store the registry creates.
// Hooks run under the registry lock and must not call back into it.
func (r *Registry) OnCreate(fn func(userID int64, s *UserStore)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onNew = append(r.onNew, fn)
}

// Get returns the store of userID, creating it on first use.
func (r *Registry) Get(userID int64) *UserStore {
	r.mu.RLock()
	s, ok := r.stores[userID]
	r.mu.RUnlock()
	if ok {
		return s
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.stores[userID]; ok {
		return s
	}

	s = New(r.log.With(zap.Int64("user_id", userID)))
	r.stores[userID] = s
	for _, fn := range r.onNew {
		fn(userID, s)
	}
	return s
}

// Lookup returns the store of userID if it exists.
func (r *Registry) Lookup(userID int64) (*UserStore, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.stores[userID]
	return s, ok
}

// Range calls fn for every store until fn returns false.
func (r *Registry) Range(fn func(userID int64, s *UserStore) bool) {
	r.mu.RLock()
	ids := make([]int64, 0, len(r.stores))
	stores := make([]*UserStore, 0, len(r.stores))
	for id, s := range r.stores {
		ids = append(ids, id)
		stores = append(stores, s)
	}
	r.mu.RUnlock()

	for i := range ids {
		if !fn(ids[i], stores[i]) {
			return
		}
	}
}

// Len returns the number of stores.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.stores)
}

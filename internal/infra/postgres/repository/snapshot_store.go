package repository

import (
	"context"

	"github.com/aliskhannn/bruno/internal/domain/entities"
	"github.com/aliskhannn/bruno/internal/infra/postgres"
)

// SnapshotStore writes a stats snapshot together with its owner row,
// so snapshots can be saved for users that never opened the bot chat.
type SnapshotStore struct {
	tx    *postgres.Transactor
	users *UserRepository
	stats *StatsRepository
}

// NewSnapshotStore creates a SnapshotStore.
func NewSnapshotStore(tx *postgres.Transactor, users *UserRepository, stats *StatsRepository) *SnapshotStore {
	return &SnapshotStore{tx: tx, users: users, stats: stats}
}

// Save stores the snapshot, creating the user first when missing.
func (s *SnapshotStore) Save(ctx context.Context, owner *entities.User, snapshot *entities.StatsSnapshot) error {
	return s.tx.WithinTx(ctx, func(ctx context.Context, tx postgres.DBTX) error {
		if err := s.users.WithTx(tx).CreateIfMissing(ctx, owner); err != nil {
			return err
		}
		return s.stats.WithTx(tx).Upsert(ctx, snapshot)
	})
}

// Get returns the stored snapshot of a user.
func (s *SnapshotStore) Get(ctx context.Context, userID int64) (*entities.StatsSnapshot, error) {
	return s.stats.Get(ctx, userID)
}

// Reset drops everything stored locally about a user except the user row.
func (s *SnapshotStore) Reset(ctx context.Context, userID int64) error {
	return s.tx.WithinTx(ctx, func(ctx context.Context, tx postgres.DBTX) error {
		if err := s.stats.WithTx(tx).Delete(ctx, userID); err != nil {
			return err
		}
		return s.users.WithTx(tx).ResetReminders(ctx, userID)
	})
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/bruno/internal/domain/entities"
	"github.com/aliskhannn/bruno/internal/infra/postgres"
)

var ErrSnapshotNotFound = errors.New("stats snapshot not found")

// StatsRepository stores the last known backend stats per user.
type StatsRepository struct {
	db postgres.DBTX
}

// NewStatsRepository creates a new StatsRepository with the provided database handle.
func NewStatsRepository(db postgres.DBTX) *StatsRepository {
	return &StatsRepository{db: db}
}

// WithTx returns a repository bound to the given transaction.
func (r *StatsRepository) WithTx(tx postgres.DBTX) *StatsRepository {
	return &StatsRepository{db: tx}
}

// Upsert creates or replaces the snapshot of a user.
// An unknown last activity keeps the stored one.
func (r *StatsRepository) Upsert(ctx context.Context, s *entities.StatsSnapshot) error {
	query := `
		INSERT INTO stats_snapshots (user_id, display_name, xp, streak, level, last_active_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id) DO UPDATE SET
			display_name = EXCLUDED.display_name,
			xp = EXCLUDED.xp,
			streak = EXCLUDED.streak,
			level = EXCLUDED.level,
			last_active_at = COALESCE(EXCLUDED.last_active_at, stats_snapshots.last_active_at),
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.Exec(ctx, query,
		s.UserID,
		s.DisplayName,
		s.XP,
		s.Streak,
		s.Level,
		s.LastActiveAt,
		s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert stats snapshot: %w", err)
	}

	return nil
}

// Get returns the snapshot of a user.
func (r *StatsRepository) Get(ctx context.Context, userID int64) (*entities.StatsSnapshot, error) {
	query := `
		SELECT user_id, display_name, xp, streak, level, last_active_at, updated_at
		FROM stats_snapshots
		WHERE user_id = $1
	`

	var s entities.StatsSnapshot
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&s.UserID,
		&s.DisplayName,
		&s.XP,
		&s.Streak,
		&s.Level,
		&s.LastActiveAt,
		&s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("get stats snapshot: %w", err)
	}

	return &s, nil
}

// Delete removes the snapshot of a user.
func (r *StatsRepository) Delete(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx, "DELETE FROM stats_snapshots WHERE user_id = $1", userID)
	if err != nil {
		return fmt.Errorf("delete stats snapshot: %w", err)
	}
	return nil
}

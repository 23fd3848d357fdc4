package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/bruno/internal/domain/entities"
	"github.com/aliskhannn/bruno/internal/infra/postgres"
)

var ErrUserNotFound = errors.New("user not found")

// UserRepository provides access to user data in the database.
type UserRepository struct {
	db postgres.DBTX
}

// NewUserRepository creates a new UserRepository with the provided database handle.
func NewUserRepository(db postgres.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// WithTx returns a repository bound to the given transaction.
func (r *UserRepository) WithTx(tx postgres.DBTX) *UserRepository {
	return &UserRepository{db: tx}
}

// Save inserts a new user or refreshes the Telegram fields of an existing one.
// It reports whether the row was created.
func (r *UserRepository) Save(ctx context.Context, user *entities.User) (bool, error) {
	query := `
		INSERT INTO users (id, chat_id, first_name, last_name, username, language_code, reminders_enabled, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			chat_id = EXCLUDED.chat_id,
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			username = EXCLUDED.username,
			language_code = EXCLUDED.language_code
		RETURNING (xmax = 0) AS created
	`

	var created bool
	err := r.db.QueryRow(ctx, query,
		user.ID,
		user.ChatID,
		user.FirstName,
		user.LastName,
		user.Username,
		user.LanguageCode,
		user.RemindersEnabled,
		user.CreatedAt,
	).Scan(&created)
	if err != nil {
		return false, fmt.Errorf("save user: %w", err)
	}

	return created, nil
}

// CreateIfMissing inserts the user unless a row with the same ID exists.
func (r *UserRepository) CreateIfMissing(ctx context.Context, user *entities.User) error {
	query := `
		INSERT INTO users (id, chat_id, first_name, last_name, username, language_code, reminders_enabled, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO NOTHING
	`

	_, err := r.db.Exec(ctx, query,
		user.ID,
		user.ChatID,
		user.FirstName,
		user.LastName,
		user.Username,
		user.LanguageCode,
		user.RemindersEnabled,
		user.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

// Exists checks if a user with the given ID exists in the database.
func (r *UserRepository) Exists(ctx context.Context, userID int64) (bool, error) {
	query := "SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)"

	var exists bool
	err := r.db.QueryRow(ctx, query, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check user existence: %w", err)
	}

	return exists, nil
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, userID int64) (*entities.User, error) {
	query := `
		SELECT id, chat_id, first_name, last_name, username, language_code,
		       reminders_enabled, last_reminded_at, created_at
		FROM users
		WHERE id = $1
	`

	var user entities.User
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&user.ID,
		&user.ChatID,
		&user.FirstName,
		&user.LastName,
		&user.Username,
		&user.LanguageCode,
		&user.RemindersEnabled,
		&user.LastRemindedAt,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &user, nil
}

// SetRemindersEnabled switches streak reminders for a user.
func (r *UserRepository) SetRemindersEnabled(ctx context.Context, userID int64, enabled bool) error {
	tag, err := r.db.Exec(ctx, "UPDATE users SET reminders_enabled = $2 WHERE id = $1", userID, enabled)
	if err != nil {
		return fmt.Errorf("set reminders enabled: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// ResetReminders switches reminders back on and forgets the last one sent.
func (r *UserRepository) ResetReminders(ctx context.Context, userID int64) error {
	query := "UPDATE users SET reminders_enabled = TRUE, last_reminded_at = NULL WHERE id = $1"
	if _, err := r.db.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("reset reminders: %w", err)
	}
	return nil
}

// MarkReminded stores the time of the last streak reminder.
func (r *UserRepository) MarkReminded(ctx context.Context, userID int64, at time.Time) error {
	_, err := r.db.Exec(ctx, "UPDATE users SET last_reminded_at = $2 WHERE id = $1", userID, at)
	if err != nil {
		return fmt.Errorf("mark reminded: %w", err)
	}
	return nil
}

// ListReminderCandidates returns users with reminders on, a running streak,
// no activity since dayStart and no reminder since dayStart.
func (r *UserRepository) ListReminderCandidates(ctx context.Context, dayStart time.Time, limit, offset int) ([]*entities.ReminderCandidate, error) {
	query := `
		SELECT u.id, u.chat_id, u.first_name, s.streak, s.level, s.last_active_at
		FROM users u
		JOIN stats_snapshots s ON s.user_id = u.id
		WHERE u.reminders_enabled
		  AND s.streak > 0
		  AND (s.last_active_at IS NULL OR s.last_active_at < $1)
		  AND (u.last_reminded_at IS NULL OR u.last_reminded_at < $1)
		ORDER BY u.id
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, dayStart, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list reminder candidates: %w", err)
	}
	defer rows.Close()

	var result []*entities.ReminderCandidate
	for rows.Next() {
		var c entities.ReminderCandidate
		if err := rows.Scan(&c.UserID, &c.ChatID, &c.FirstName, &c.Streak, &c.Level, &c.LastActiveAt); err != nil {
			return nil, fmt.Errorf("scan reminder candidate: %w", err)
		}
		result = append(result, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reminder candidates: %w", err)
	}

	return result, nil
}

package entities

import (
	"strings"
	"time"
)

// Profile is the user profile returned by the backend.
type Profile struct {
	TgID         int64   `json:"tg_id"`
	Username     *string `json:"username"`
	FirstName    string  `json:"first_name"`
	LastName     *string `json:"last_name"`
	PhotoURL     *string `json:"photo_url"`
	LanguageCode *string `json:"language_code"`
}

// DisplayName joins first and last name, falling back to the username.
func (p *Profile) DisplayName() string {
	parts := make([]string, 0, 2)
	if p.FirstName != "" {
		parts = append(parts, p.FirstName)
	}
	if p.LastName != nil && *p.LastName != "" {
		parts = append(parts, *p.LastName)
	}

	name := strings.TrimSpace(strings.Join(parts, " "))
	if name != "" {
		return name
	}
	if p.Username != nil && *p.Username != "" {
		return *p.Username
	}
	return "Telegram User"
}

// Stats holds the backend-owned counters of a user.
type Stats struct {
	XP         int64  `json:"xp"`
	Streak     int    `json:"streak"`
	LastActive string `json:"last_active,omitempty"`
}

// LastActiveAt parses LastActive, accepting RFC 3339 and plain dates.
func (s *Stats) LastActiveAt() (time.Time, bool) {
	if s.LastActive == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05", time.DateOnly} {
		if t, err := time.Parse(layout, s.LastActive); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// MeResponse is the body of GET /api/me.
type MeResponse struct {
	Profile *Profile `json:"profile"`
	Stats   *Stats   `json:"stats"`
}

// UpdateStatsRequest is the body of POST /api/stats.
type UpdateStatsRequest struct {
	XPDelta int64 `json:"xp_delta" validate:"gte=0"`
	Streak  *int  `json:"streak,omitempty" validate:"omitempty,gte=0"`
}

// ProgressStatus is the backend status of a lesson.
type ProgressStatus string

const (
	ProgressNotStarted ProgressStatus = "not_started"
	ProgressInProgress ProgressStatus = "in_progress"
	ProgressCompleted  ProgressStatus = "completed"
)

// LessonProgress is one row of GET /api/progress.
type LessonProgress struct {
	LessonID  string         `json:"lesson_id"`
	Status    ProgressStatus `json:"status"`
	Score     *int           `json:"score"`
	UpdatedAt string         `json:"updated_at"`
}

// UpdateProgressRequest is the body of POST /api/progress.
type UpdateProgressRequest struct {
	LessonID string         `json:"lesson_id" validate:"required"`
	Status   ProgressStatus `json:"status" validate:"required,oneof=not_started in_progress completed"`
	Score    *int           `json:"score,omitempty" validate:"omitempty,gte=0"`
}

// SuccessResponse is returned by the backend write endpoints.
type SuccessResponse struct {
	Success bool `json:"success"`
}

package entities

import "time"

// StatsSnapshot is the last known backend stats of a user, kept locally
// so profiles can be shown while the backend is unreachable.
type StatsSnapshot struct {
	UserID       int64
	DisplayName  string
	XP           int64
	Streak       int
	Level        int
	LastActiveAt *time.Time // nullable
	UpdatedAt    time.Time
}

// NewStatsSnapshot captures a telegram learner.
func NewStatsSnapshot(l Learner, now time.Time) *StatsSnapshot {
	s := &StatsSnapshot{
		DisplayName: l.Name,
		XP:          l.Stats.XP,
		Streak:      l.Stats.Streak,
		Level:       l.Stats.Level,
		UpdatedAt:   now,
	}
	if l.ID != nil {
		s.UserID = *l.ID
	}
	if !l.LastActive.IsZero() {
		t := l.LastActive
		s.LastActiveAt = &t
	}
	return s
}

// Learner restores a telegram learner from the snapshot.
func (s *StatsSnapshot) Learner() Learner {
	id := s.UserID
	l := Learner{
		ID:     &id,
		Name:   s.DisplayName,
		Source: SourceTelegram,
		Stats: UserStats{
			LevelInfo: CalculateLevel(s.XP),
			Streak:    s.Streak,
		},
	}
	if s.LastActiveAt != nil {
		l.LastActive = *s.LastActiveAt
	}
	return l
}

// ReminderCandidate is a user eligible for a streak reminder.
type ReminderCandidate struct {
	UserID       int64
	ChatID       int64
	FirstName    string
	Streak       int
	Level        int
	LastActiveAt *time.Time
}

// ActiveOn reports whether the candidate was active on the UTC day of t.
func (c ReminderCandidate) ActiveOn(t time.Time) bool {
	if c.LastActiveAt == nil {
		return false
	}
	return sameUTCDay(*c.LastActiveAt, t)
}

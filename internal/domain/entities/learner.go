package entities

import "time"

// Source tells where a learner snapshot came from.
type Source string

const (
	SourceGuest    Source = "guest"
	SourceTelegram Source = "telegram"
)

// GuestName is shown for users that are not loaded from the backend.
const GuestName = "Гость"

// UserStats is the stats block shown on profile screens.
type UserStats struct {
	LevelInfo
	Streak           int     `json:"streak"`
	TotalWords       int     `json:"totalWords"`
	Accuracy         float64 `json:"accuracy"`
	LessonsCompleted int     `json:"lessonsCompleted"`
}

// StatsPatch is a partial update of UserStats. Nil fields are left unchanged.
type StatsPatch struct {
	XP               *int64
	Streak           *int
	TotalWords       *int
	Accuracy         *float64
	LessonsCompleted *int
}

// Learner is an immutable snapshot of the current user.
type Learner struct {
	ID        *int64    `json:"id,omitempty"`
	Name      string    `json:"name"`
	AvatarURL string    `json:"avatarUrl,omitempty"`
	Source    Source    `json:"source"`
	Stats     UserStats `json:"stats"`

	LastActive time.Time `json:"lastActive,omitzero"`
}

// NewGuest returns the learner used before anything is loaded.
func NewGuest() Learner {
	return Learner{
		Name:   GuestName,
		Source: SourceGuest,
		Stats:  UserStats{LevelInfo: CalculateLevel(0)},
	}
}

// NewLearner builds a telegram learner from backend data.
// The xp from stats is passed to CalculateLevel verbatim.
func NewLearner(profile *Profile, stats *Stats) Learner {
	id := profile.TgID
	l := Learner{
		ID:     &id,
		Name:   profile.DisplayName(),
		Source: SourceTelegram,
		Stats: UserStats{
			LevelInfo: CalculateLevel(stats.XP),
			Streak:    stats.Streak,
		},
	}
	if profile.PhotoURL != nil {
		l.AvatarURL = *profile.PhotoURL
	}
	if t, ok := stats.LastActiveAt(); ok {
		l.LastActive = t
	}
	return l
}

// WithPatch returns a copy of l with the patch applied.
// A changed xp recomputes the level fields.
func (l Learner) WithPatch(p StatsPatch) Learner {
	if p.XP != nil {
		l.Stats.LevelInfo = CalculateLevel(*p.XP)
	}
	if p.Streak != nil {
		l.Stats.Streak = *p.Streak
	}
	if p.TotalWords != nil {
		l.Stats.TotalWords = *p.TotalWords
	}
	if p.Accuracy != nil {
		l.Stats.Accuracy = *p.Accuracy
	}
	if p.LessonsCompleted != nil {
		l.Stats.LessonsCompleted = *p.LessonsCompleted
	}
	if l.ID != nil {
		id := *l.ID
		l.ID = &id
	}
	return l
}

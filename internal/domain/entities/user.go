// Package entities contains domain entities used across the application.
package entities

import "time"

// User represents a bot user registered on first contact.
type User struct {
	ID               int64 // Telegram user ID
	ChatID           int64
	FirstName        string
	LastName         string
	Username         string
	LanguageCode     string
	RemindersEnabled bool
	LastRemindedAt   *time.Time // nullable
	CreatedAt        time.Time
}

// NewUser creates a user with streak reminders switched on.
func NewUser(id, chatID int64, firstName, lastName, username, languageCode string) *User {
	return &User{
		ID:               id,
		ChatID:           chatID,
		FirstName:        firstName,
		LastName:         lastName,
		Username:         username,
		LanguageCode:     languageCode,
		RemindersEnabled: true,
		CreatedAt:        time.Now(),
	}
}

// RemindedOn reports whether a reminder was already sent on the UTC day of t.
func (u *User) RemindedOn(t time.Time) bool {
	if u.LastRemindedAt == nil {
		return false
	}
	return sameUTCDay(*u.LastRemindedAt, t)
}

func sameUTCDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

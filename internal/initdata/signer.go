package initdata

import (
	"time"

	"github.com/aliskhannn/bruno/internal/domain/entities"
)

// Signer mints init data for registered bot users.
type Signer struct {
	botToken string
	now      func() time.Time
}

// NewSigner creates a Signer for the bot with the given token.
func NewSigner(botToken string) *Signer {
	return &Signer{botToken: botToken, now: time.Now}
}

// Sign returns fresh init data describing u.
func (s *Signer) Sign(u *entities.User) (string, error) {
	return Sign(s.botToken, FromUser(u), s.now(), "")
}

// FromUser converts a bot user to the init data user shape.
func FromUser(u *entities.User) User {
	return User{
		ID:           u.ID,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Username:     u.Username,
		LanguageCode: u.LanguageCode,
	}
}

// ToUser converts the init data user to a bot user. Mini-app users chat
// with the bot in a private chat whose id equals the user id.
func (u User) ToUser() *entities.User {
	return entities.NewUser(u.ID, u.ID, u.FirstName, u.LastName, u.Username, u.LanguageCode)
}

package storage

import (
	"sync"
	"time"
)

// ReminderMessage is the last streak reminder sent to a user.
type ReminderMessage struct {
	ChatID    int64
	MessageID int
	SentAt    time.Time
}

// ReminderStorage remembers sent reminders so a new one can replace the old.
type ReminderStorage struct {
	mu       sync.RWMutex
	messages map[int64]ReminderMessage
	now      func() time.Time
}

func NewReminderStorage() *ReminderStorage {
	return &ReminderStorage{
		messages: make(map[int64]ReminderMessage),
		now:      time.Now,
	}
}

func (s *ReminderStorage) Get(userID int64) (ReminderMessage, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msg, ok := s.messages[userID]
	return msg, ok
}

// Delete forgets the reminder of a user, e.g. once they started a lesson.
func (s *ReminderStorage) Delete(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.messages, userID)
}

// UpsertAndGetPrev stores a new reminder and returns the one it replaced.
func (s *ReminderStorage) UpsertAndGetPrev(userID int64, chatID int64, messageID int) (prev ReminderMessage, hadPrev bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, hadPrev = s.messages[userID]

	s.messages[userID] = ReminderMessage{
		ChatID:    chatID,
		MessageID: messageID,
		SentAt:    s.now(),
	}

	return prev, hadPrev
}

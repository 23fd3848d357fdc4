package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/bruno/internal/domain/entities"
	"github.com/aliskhannn/bruno/internal/store"
)

// SendStreakReminder sends a streak reminder and deletes the previous one,
// so a chat shows at most one reminder.
func (h *Handler) SendStreakReminder(ctx context.Context, c *entities.ReminderCandidate) error {
	msg := newMessage(c.ChatID, formatStreakReminder(c))
	msg.ReplyMarkup = buildReminderKeyboard()

	sent, err := h.bot.Send(msg)
	if err != nil {
		return fmt.Errorf("send reminder: %w", err)
	}

	prev, ok := h.reminderStorage.UpsertAndGetPrev(c.UserID, c.ChatID, sent.MessageID)
	if !ok {
		return nil
	}

	if _, err := h.bot.Request(tgbotapi.NewDeleteMessage(prev.ChatID, prev.MessageID)); err != nil {
		h.logger.Debug("failed to delete previous reminder",
			zap.Int64("user_id", c.UserID),
			zap.Int("message_id", prev.MessageID),
			zap.Error(err),
		)
	}
	return nil
}

// watchLevel subscribes to a user store and congratulates the user when a
// backend snapshot carries a higher level than the previous one.
func (h *Handler) watchLevel(userID int64, s *store.UserStore) {
	var prev entities.Learner

	// Listeners run in write order under the store lock, so prev needs no
	// synchronization. The message itself is sent outside the lock.
	s.Subscribe(func(next entities.Learner) {
		if isLevelUp(prev, next) {
			go h.sendLevelUp(userID, next)
		}
		prev = next
	})
}

// isLevelUp reports whether next is a higher level of the same backend user.
func isLevelUp(prev, next entities.Learner) bool {
	if prev.Source != entities.SourceTelegram || next.Source != entities.SourceTelegram {
		return false
	}
	if prev.ID == nil || next.ID == nil || *prev.ID != *next.ID {
		return false
	}
	return next.Stats.Level > prev.Stats.Level
}

// sendLevelUp writes to the private chat, whose id equals the user id.
func (h *Handler) sendLevelUp(userID int64, l entities.Learner) {
	h.logger.Info("level up",
		zap.Int64("user_id", userID),
		zap.Int("level", l.Stats.Level),
	)
	_ = h.send(newMessage(userID, formatLevelUp(l)))
}

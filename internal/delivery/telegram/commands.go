package telegram

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/aliskhannn/bruno/internal/domain/entities"
	"github.com/aliskhannn/bruno/internal/service"
)

// handleStart greets the user and links the mini-app.
func (h *Handler) handleStart(user *entities.User) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		msg := newMessage(chatID, welcomeMessage(user.FirstName))
		msg.ReplyMarkup = buildWelcomeKeyboard(h.webAppURL)
		return h.send(msg)
	}
}

// handleProfile reloads the learner from the backend and shows level and streak.
func (h *Handler) handleProfile(user *entities.User) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		learner, err := h.profileService.Refresh(ctx, user)
		if err != nil {
			h.logger.Warn("profile refresh failed",
				zap.Int64("user_id", user.ID),
				zap.Error(err),
			)
			if err := h.send(newPlainMessage(chatID, msgProfileUnavailable)); err != nil {
				return err
			}
		}

		msg := newMessage(chatID, formatProfile(learner))
		msg.ReplyMarkup = buildProfileKeyboard()
		return h.send(msg)
	}
}

// handlePath shows the learning path with the user's progress.
func (h *Handler) handlePath(user *entities.User) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		sections := h.pathService.ForUser(ctx, user)

		msg := newMessage(chatID, formatPath(sections))
		if kb := buildPathKeyboard(entities.NextAvailable(sections)); kb != nil {
			msg.ReplyMarkup = *kb
		}
		return h.send(msg)
	}
}

// handleLesson starts the lesson with the given id, or the next available one.
func (h *Handler) handleLesson(user *entities.User, lessonID string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		sections := h.pathService.ForUser(ctx, user)

		var (
			lesson entities.PathLesson
			ok     bool
		)
		if lessonID == "" {
			lesson, ok = entities.NextAvailable(sections)
			if !ok {
				return h.send(newPlainMessage(chatID, msgPathFinished))
			}
		} else {
			lesson, ok = entities.FindLesson(sections, lessonID)
			if !ok {
				return h.send(newPlainMessage(chatID, msgLessonNotFound))
			}
		}

		return h.startLesson(chatID, user, lesson)
	}
}

func (h *Handler) startLesson(chatID int64, user *entities.User, lesson entities.PathLesson) error {
	session, err := h.lessonService.Start(user.ID, lesson)
	switch {
	case errors.Is(err, service.ErrLessonLocked):
		return h.send(newPlainMessage(chatID, msgLessonUnavailable))
	case errors.Is(err, service.ErrLessonNotFound):
		return h.send(newPlainMessage(chatID, msgLessonNotFound))
	case err != nil:
		return err
	}

	h.reminderStorage.Delete(user.ID)

	if err := h.send(newMessage(chatID, formatLessonIntro(lesson))); err != nil {
		return err
	}
	return h.sendQuestion(chatID, session)
}

func (h *Handler) sendQuestion(chatID int64, session *entities.LessonSession) error {
	msg := newMessage(chatID, formatQuestion(session))
	msg.ReplyMarkup = buildQuestionKeyboard(session)
	return h.send(msg)
}

// handleWords starts a flashcard review. The review streak starts from the
// daily streak of the last known profile.
func (h *Handler) handleWords(user *entities.User) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		streak := h.profileService.Snapshot(user.ID).Stats.Streak
		deck := h.wordsService.Start(user.ID, streak)

		msg := newMessage(chatID, formatCard(deck))
		msg.ReplyMarkup = buildCardKeyboard(deck)
		return h.send(msg)
	}
}

// handleReminders toggles streak reminders.
func (h *Handler) handleReminders(user *entities.User) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		enabled, err := h.userService.ToggleReminders(ctx, user.ID)
		if err != nil {
			return err
		}

		msg := newMessage(chatID, formatReminderStatus(enabled))
		msg.ReplyMarkup = buildRemindersKeyboard(enabled)
		return h.send(msg)
	}
}

// handleReset asks for confirmation before wiping local data.
func (h *Handler) handleReset() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		msg := newMessage(chatID, resetConfirmMessage())
		msg.ReplyMarkup = buildResetKeyboard()
		return h.send(msg)
	}
}

func (h *Handler) handleHelp() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		return h.send(newMessage(chatID, helpMessage()))
	}
}

func (h *Handler) handleUnknown() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		return h.send(newPlainMessage(chatID, msgUnknownCommand))
	}
}

// handleText treats free text as the answer to a translation question.
func (h *Handler) handleText(user *entities.User, text string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		session, err := h.lessonService.Current(user.ID)
		if err != nil {
			return h.send(newPlainMessage(chatID, msgUnknownInput))
		}

		q, ok := session.Current()
		if !ok || q.HasOptions() {
			return h.send(newPlainMessage(chatID, msgUseButtons))
		}
		if session.Checked() {
			return h.send(newPlainMessage(chatID, msgPressContinue))
		}

		_, correct, err := h.lessonService.Answer(user.ID, text)
		if err != nil {
			return err
		}

		msg := newMessage(chatID, formatAnswerFeedback(q, text, correct, session.Lives))
		msg.ReplyMarkup = buildContinueKeyboard()
		return h.send(msg)
	}
}

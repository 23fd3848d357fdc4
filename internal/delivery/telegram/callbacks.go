package telegram

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/bruno/internal/domain/entities"
	"github.com/aliskhannn/bruno/internal/service"
)

// callbackContext is what every callback handler needs to reply in place.
type callbackContext struct {
	user   *entities.User
	chatID int64
	msgID  int
	data   callbackData
}

// handleCallback dispatches a button press. The returned notice, if any,
// is shown to the user as the callback answer.
func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		h.answerCallback(cb, "")
		return
	}

	cc := callbackContext{
		user:   newUser(cb.From, cb.Message.Chat.ID),
		chatID: cb.Message.Chat.ID,
		msgID:  cb.Message.MessageID,
		data:   decodeCallback(cb.Data),
	}

	var (
		notice string
		err    error
	)

	switch cc.data.Action {
	case actionLesson:
		notice, err = h.handleLessonCallback(ctx, cc)
	case actionDeck:
		notice, err = h.handleDeckCallback(ctx, cc)
	case actionProfile:
		notice, err = h.handleProfileCallback(ctx, cc)
	case actionPath:
		err = h.handlePath(cc.user)(ctx, cc.chatID)
	case actionReminder:
		notice, err = h.handleReminderCallback(ctx, cc)
	case actionReset:
		err = h.handleResetCallback(ctx, cc)
	default:
		h.logger.Warn("unknown callback",
			zap.String("data", cb.Data),
		)
	}

	// Remove the user's "clock".
	h.answerCallback(cb, notice)

	if err != nil {
		h.logger.Error("callback failed",
			zap.Int64("user_id", cc.user.ID),
			zap.String("data", cb.Data),
			zap.Error(err),
		)
		h.sendError(cc.chatID, msgInternalError)
	}
}

func (h *Handler) handleLessonCallback(ctx context.Context, cc callbackContext) (string, error) {
	switch cc.data.param(0) {
	case lessonStart:
		return "", h.handleLesson(cc.user, cc.data.param(1))(ctx, cc.chatID)
	case lessonAnswer:
		return h.handleLessonAnswer(cc)
	case lessonContinue:
		return h.handleLessonContinue(ctx, cc)
	case lessonQuit:
		h.lessonService.Quit(cc.user.ID)
		return "", h.send(newEdit(cc.chatID, cc.msgID, md(msgLessonQuit)))
	default:
		h.logger.Warn("unknown lesson callback", zap.String("data", cc.data.Raw))
		return "", nil
	}
}

// handleLessonAnswer grades a picked option and shows the verdict in place
// of the question.
func (h *Handler) handleLessonAnswer(cc callbackContext) (string, error) {
	questionIndex, ok1 := cc.data.intParam(1)
	optionIndex, ok2 := cc.data.intParam(2)
	if !ok1 || !ok2 {
		h.logger.Warn("invalid answer callback", zap.String("data", cc.data.Raw))
		return "", nil
	}

	session, err := h.lessonService.Current(cc.user.ID)
	if errors.Is(err, service.ErrNoActiveLesson) {
		return msgNoActiveLesson, nil
	}
	if err != nil {
		return "", err
	}

	q, ok := session.Current()
	if !ok || session.Checked() || session.Index != questionIndex || optionIndex >= len(q.Options) {
		return msgStaleQuestion, nil
	}

	answer := q.Options[optionIndex]
	_, correct, err := h.lessonService.Answer(cc.user.ID, answer)
	if err != nil {
		return "", err
	}

	edit := newEdit(cc.chatID, cc.msgID, formatAnswerFeedback(q, answer, correct, session.Lives))
	kb := buildContinueKeyboard()
	edit.ReplyMarkup = &kb
	if err := h.send(edit); err != nil {
		return "", err
	}

	if correct {
		return "✅", nil
	}
	return "❌", nil
}

// handleLessonContinue moves to the next question or finishes the lesson.
func (h *Handler) handleLessonContinue(ctx context.Context, cc callbackContext) (string, error) {
	session, result, err := h.lessonService.Continue(ctx, cc.user)
	switch {
	case errors.Is(err, service.ErrNoActiveLesson):
		return msgNoActiveLesson, nil
	case errors.Is(err, entities.ErrNotChecked):
		return msgUseButtons, nil
	case result == nil && err != nil:
		return "", err
	}

	if result == nil {
		edit := newEdit(cc.chatID, cc.msgID, formatQuestion(session))
		kb := buildQuestionKeyboard(session)
		edit.ReplyMarkup = &kb
		return "", h.send(edit)
	}

	if err != nil {
		h.logger.Error("failed to record lesson",
			zap.Int64("user_id", cc.user.ID),
			zap.String("lesson_id", result.Lesson.ID),
			zap.Error(err),
		)
		return "", h.send(newPlainMessage(cc.chatID, msgLessonNotSaved))
	}

	edit := newEdit(cc.chatID, cc.msgID, formatLessonResult(result))
	kb := buildLessonResultKeyboard(result)
	edit.ReplyMarkup = &kb
	return "", h.send(edit)
}

func (h *Handler) handleDeckCallback(ctx context.Context, cc callbackContext) (string, error) {
	switch p := cc.data.param(0); p {
	case deckStart:
		return "", h.handleWords(cc.user)(ctx, cc.chatID)
	case deckStop:
		h.wordsService.Stop(cc.user.ID)
		return "", h.send(newEdit(cc.chatID, cc.msgID, md(msgDeckStopped)))
	default:
		deck, err := h.wordsService.Apply(cc.user.ID, service.DeckAction(p))
		switch {
		case errors.Is(err, service.ErrNoActiveDeck):
			return msgNoActiveDeck, nil
		case errors.Is(err, service.ErrUnknownDeckAction):
			h.logger.Warn("unknown deck callback", zap.String("data", cc.data.Raw))
			return "", nil
		case errors.Is(err, entities.ErrDeckFinished):
			return "", nil
		case err != nil:
			return "", err
		}

		edit := newEdit(cc.chatID, cc.msgID, formatCard(deck))
		kb := buildCardKeyboard(deck)
		edit.ReplyMarkup = &kb
		return "", h.send(edit)
	}
}

func (h *Handler) handleProfileCallback(ctx context.Context, cc callbackContext) (string, error) {
	notice := ""
	learner, err := h.profileService.Refresh(ctx, cc.user)
	if err != nil {
		h.logger.Warn("profile refresh failed",
			zap.Int64("user_id", cc.user.ID),
			zap.Error(err),
		)
		notice = msgProfileUnavailable
	}

	edit := newEdit(cc.chatID, cc.msgID, formatProfile(learner))
	kb := buildProfileKeyboard()
	edit.ReplyMarkup = &kb
	return notice, h.send(edit)
}

func (h *Handler) handleReminderCallback(ctx context.Context, cc callbackContext) (string, error) {
	switch cc.data.param(0) {
	case reminderToggle:
		enabled, err := h.userService.ToggleReminders(ctx, cc.user.ID)
		if err != nil {
			return "", err
		}
		edit := newEdit(cc.chatID, cc.msgID, formatReminderStatus(enabled))
		kb := buildRemindersKeyboard(enabled)
		edit.ReplyMarkup = &kb
		return "", h.send(edit)

	case reminderStartLesson:
		return "", h.handleLesson(cc.user, "")(ctx, cc.chatID)

	case reminderDisable:
		if err := h.userService.DisableReminders(ctx, cc.user.ID); err != nil {
			return "", err
		}
		h.reminderStorage.Delete(cc.user.ID)
		return "", h.send(newEdit(cc.chatID, cc.msgID, md(msgRemindersOff)))

	default:
		h.logger.Warn("unknown reminder callback", zap.String("data", cc.data.Raw))
		return "", nil
	}
}

func (h *Handler) handleResetCallback(ctx context.Context, cc callbackContext) error {
	if cc.data.param(0) != resetConfirm {
		return h.send(newEdit(cc.chatID, cc.msgID, md(msgResetCancelled)))
	}

	if err := h.resetService.ResetUser(ctx, cc.user.ID); err != nil {
		return err
	}
	h.lessonService.Quit(cc.user.ID)
	h.wordsService.Stop(cc.user.ID)
	h.reminderStorage.Delete(cc.user.ID)

	return h.send(newEdit(cc.chatID, cc.msgID, md(msgResetDone)))
}

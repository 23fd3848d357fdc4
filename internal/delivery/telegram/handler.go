package telegram

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/bruno/internal/domain/entities"
	"github.com/aliskhannn/bruno/internal/store"
)

// Services groups the use cases the bot talks to.
type Services struct {
	Users   UserService
	Profile ProfileService
	Path    PathService
	Lessons LessonService
	Words   WordsService
	Reset   ResetService
}

type Handler struct {
	bot             *tgbotapi.BotAPI
	logger          *zap.Logger
	userService     UserService
	profileService  ProfileService
	pathService     PathService
	lessonService   LessonService
	wordsService    WordsService
	resetService    ResetService
	reminderStorage ReminderStorage
	webAppURL       string
}

// NewHandler creates the bot handler and subscribes it to level changes
// of every user store the registry creates.
func NewHandler(
	bot *tgbotapi.BotAPI,
	logger *zap.Logger,
	services Services,
	registry *store.Registry,
	reminderStorage ReminderStorage,
	webAppURL string,
) *Handler {
	h := &Handler{
		bot:             bot,
		logger:          logger,
		userService:     services.Users,
		profileService:  services.Profile,
		pathService:     services.Path,
		lessonService:   services.Lessons,
		wordsService:    services.Words,
		resetService:    services.Reset,
		reminderStorage: reminderStorage,
		webAppURL:       webAppURL,
	}

	registry.OnCreate(h.watchLevel)

	return h
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)
	defer h.bot.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return nil
		case update := <-updates:
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil || update.Message.From == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	chatID := update.Message.Chat.ID
	user := newUser(update.Message.From, chatID)

	if err := h.userService.EnsureUser(ctx, user); err != nil {
		h.logger.Error("failed to ensure user",
			zap.Int64("user_id", user.ID),
			zap.Error(err),
		)
	}

	if update.Message.IsCommand() {
		var fn HandlerFunc
		switch update.Message.Command() {
		case "start":
			fn = h.handleStart(user)
		case "profile":
			fn = h.handleProfile(user)
		case "path":
			fn = h.handlePath(user)
		case "lesson":
			fn = h.handleLesson(user, strings.TrimSpace(update.Message.CommandArguments()))
		case "words":
			fn = h.handleWords(user)
		case "reminders":
			fn = h.handleReminders(user)
		case "reset":
			fn = h.handleReset()
		case "help":
			fn = h.handleHelp()
		default:
			fn = h.handleUnknown()
		}

		_ = h.withErrorHandling(fn)(ctx, chatID)
		return
	}

	_ = h.withErrorHandling(h.handleText(user, update.Message.Text))(ctx, chatID)
}

// newUser maps a Telegram sender to a bot user.
func newUser(from *tgbotapi.User, chatID int64) *entities.User {
	return entities.NewUser(from.ID, chatID, from.FirstName, from.LastName, from.UserName, from.LanguageCode)
}

func (h *Handler) sendError(chatID int64, text string) {
	_ = h.send(newPlainMessage(chatID, text))
}

func (h *Handler) send(c tgbotapi.Chattable) error {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
		return err
	}
	return nil
}

// answerCallback removes the loading state of a pressed button.
func (h *Handler) answerCallback(cb *tgbotapi.CallbackQuery, text string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(cb.ID, text)); err != nil {
		h.logger.Warn("callback answer failed",
			zap.String("callback_id", cb.ID),
			zap.Error(err),
		)
	}
}

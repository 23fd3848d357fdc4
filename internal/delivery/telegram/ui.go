package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/bruno/internal/domain/entities"
	"github.com/aliskhannn/bruno/internal/service"
)

// buildWelcomeKeyboard opens the mini-app and the first lesson.
func buildWelcomeKeyboard(webAppURL string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("📱 Открыть Bruno", webAppURL),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("▶️ Начать урок", buildLessonStartCallback("")),
			tgbotapi.NewInlineKeyboardButtonData("🗺 Путь", buildPathCallback()),
		),
	)
}

// buildProfileKeyboard builds keyboard for profile screen.
func buildProfileKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Обновить", buildProfileRefreshCallback()),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("▶️ Следующий урок", buildLessonStartCallback("")),
			tgbotapi.NewInlineKeyboardButtonData("🃏 Слова", buildDeckStartCallback()),
		),
	)
}

// buildPathKeyboard offers the next available lesson.
func buildPathKeyboard(next entities.PathLesson, ok bool) *tgbotapi.InlineKeyboardMarkup {
	if !ok {
		return nil
	}
	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("▶️ "+next.Title, buildLessonStartCallback(next.ID)),
		),
	)
	return &kb
}

// buildQuestionKeyboard builds keyboard for a lesson question.
// Free text questions only get the quit button.
func buildQuestionKeyboard(s *entities.LessonSession) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	if q, ok := s.Current(); ok && q.HasOptions() {
		for i, option := range q.Options {
			button := tgbotapi.NewInlineKeyboardButtonData(option, buildLessonAnswerCallback(s.Index, i))
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(button))
		}
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("✖️ Выйти", buildLessonQuitCallback()),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func buildContinueKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Дальше ➡️", buildLessonContinueCallback()),
		),
	)
}

// buildLessonResultKeyboard offers a retry after a failure and the next lesson otherwise.
func buildLessonResultKeyboard(r *service.LessonResult) tgbotapi.InlineKeyboardMarkup {
	first := tgbotapi.NewInlineKeyboardButtonData("▶️ Следующий урок", buildLessonStartCallback(""))
	if r.Failed {
		first = tgbotapi.NewInlineKeyboardButtonData("🔁 Ещё раз", buildLessonStartCallback(r.Lesson.ID))
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(first),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗺 Путь", buildPathCallback()),
			tgbotapi.NewInlineKeyboardButtonData("👤 Профиль", buildProfileRefreshCallback()),
		),
	)
}

// buildCardKeyboard builds keyboard for the top flashcard.
func buildCardKeyboard(d *entities.Deck) tgbotapi.InlineKeyboardMarkup {
	if d.Finished() {
		return tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("🔁 Заново", buildDeckCallback(service.DeckRestart)),
				tgbotapi.NewInlineKeyboardButtonData("✖️ Закрыть", buildDeckStopCallback()),
			),
		)
	}

	if !d.Flipped {
		return tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("🔄 Перевернуть", buildDeckCallback(service.DeckFlip)),
			),
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("✖️ Закрыть", buildDeckStopCallback()),
			),
		)
	}

	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("❌ Не знаю", buildDeckCallback(service.DeckUnknown)),
			tgbotapi.NewInlineKeyboardButtonData("✅ Знаю", buildDeckCallback(service.DeckKnown)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✖️ Закрыть", buildDeckStopCallback()),
		),
	)
}

// buildRemindersKeyboard builds keyboard for the reminders toggle.
func buildRemindersKeyboard(enabled bool) tgbotapi.InlineKeyboardMarkup {
	text := "🔔 Включить"
	if enabled {
		text = "🔕 Выключить"
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(text, buildReminderToggleCallback()),
		),
	)
}

// buildReminderKeyboard builds keyboard attached to a streak reminder.
func buildReminderKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("▶️ Начать урок", buildReminderStartLessonCallback()),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔕 Не напоминать", buildReminderDisableCallback()),
		),
	)
}

func buildResetKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗑 Сбросить", buildResetConfirmCallback()),
			tgbotapi.NewInlineKeyboardButtonData("Отмена", buildResetCancelCallback()),
		),
	)
}

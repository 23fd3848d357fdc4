// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/bruno/internal/domain/entities"
	"github.com/aliskhannn/bruno/internal/service"
)

// Error messages.
const (
	msgInternalError      = "Что‑то пошло не так. Попробуйте позже."
	msgProfileUnavailable = "Не удалось загрузить профиль. Показываю гостевой режим, попробуйте позже."
	msgLessonUnavailable  = "Урок недоступен. Сначала пройдите предыдущие уроки: /path"
	msgLessonNotFound     = "Такого урока нет. Список уроков: /path"
	msgPathFinished       = "Вы прошли весь путь! 🎉 Повторяйте слова: /words"
	msgNoActiveLesson     = "Нет активного урока. Начните его командой /lesson"
	msgNoActiveDeck       = "Нет активного повторения. Начните его командой /words"
	msgStaleQuestion      = "Этот вопрос уже пройден"
	msgLessonNotSaved     = "Урок пройден, но сохранить результат не удалось. Попробуйте позже."
	msgUseButtons         = "Выберите вариант ответа кнопкой под вопросом."
	msgPressContinue      = "Нажмите «Дальше», чтобы продолжить."
	msgUnknownInput       = "Не понимаю 🤔 Список команд: /help"
	msgUnknownCommand     = "Неизвестная команда. Список команд: /help"
	msgResetDone          = "Локальные данные сброшены. Прогресс на сервере не изменился."
	msgResetCancelled     = "Сброс отменён."
	msgRemindersOff       = "Напоминания выключены. Включить снова: /reminders"
	msgLessonQuit         = "Урок прерван. Продолжить можно командой /lesson"
	msgDeckStopped        = "Повторение остановлено."
)

// md escapes plain text for MarkdownV2.
func md(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s)
}

func bold(s string) string {
	return "*" + md(s) + "*"
}

func italic(s string) string {
	return "_" + md(s) + "_"
}

// newMessage creates a message with MarkdownV2 parse mode.
func newMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	return msg
}

// newPlainMessage creates a plain message without MarkdownV2 parse mode.
func newPlainMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	return msg
}

// newEdit creates an edit with MarkdownV2 parse mode.
func newEdit(chatID int64, msgID int, text string) tgbotapi.EditMessageTextConfig {
	edit := tgbotapi.NewEditMessageText(chatID, msgID, text)
	edit.ParseMode = tgbotapi.ModeMarkdownV2
	return edit
}

func welcomeMessage(name string) string {
	var sb strings.Builder

	sb.WriteString(md("¡Hola, "))
	sb.WriteString(bold(name))
	sb.WriteString(md("! 👋"))
	sb.WriteString("\n\n")

	sb.WriteString(bold("Bruno"))
	sb.WriteString(md(" поможет выучить испанский маленькими шагами."))
	sb.WriteString("\n\n")

	sb.WriteString(md("Откройте мини‑приложение кнопкой ниже или учитесь прямо в чате:"))
	sb.WriteString("\n\n")
	sb.WriteString(helpCommands())
	return sb.String()
}

func helpMessage() string {
	return bold("Команды") + "\n\n" + helpCommands()
}

func helpCommands() string {
	lines := []string{
		"/profile — уровень, опыт и серия",
		"/path — путь обучения",
		"/lesson — следующий урок",
		"/words — повторить слова",
		"/reminders — включить или выключить напоминания",
		"/reset — сбросить локальные данные",
	}
	for i := range lines {
		lines[i] = md(lines[i])
	}
	return strings.Join(lines, "\n")
}

// formatProfile renders a learner snapshot with its level bar.
func formatProfile(l entities.Learner) string {
	var sb strings.Builder
	s := l.Stats

	sb.WriteString(bold("👤 " + l.Name))
	if l.Source == entities.SourceGuest {
		sb.WriteString(md(" (гость)"))
	}
	sb.WriteString("\n\n")

	sb.WriteString(md(fmt.Sprintf("⭐ Уровень %d", s.Level)))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("%s %d%%", buildPercentBar(s.ProgressPercent), s.ProgressPercent)))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("Опыт: %d XP, до уровня %d осталось %d XP", s.XP, s.Level+1, s.Remaining())))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("🔥 Серия: %d %s", s.Streak, pluralDays(s.Streak))))

	return sb.String()
}

// formatPath renders the learning path with per-unit completion.
func formatPath(sections []entities.PathSection) string {
	var sb strings.Builder

	done := entities.CountCompleted(sections)
	total := 0
	for _, s := range sections {
		total += len(s.Lessons)
	}

	sb.WriteString(bold("🗺 Путь обучения"))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("%s %d/%d", buildProgressBar(done, total, progressBarLength), done, total)))

	for _, s := range sections {
		sb.WriteString("\n\n")
		sb.WriteString(md(emoji(s.Icon) + " "))
		sb.WriteString(bold(s.Title))
		sb.WriteString("\n")
		sb.WriteString(italic(s.Description))
		for _, l := range s.Lessons {
			sb.WriteString("\n")
			sb.WriteString(md(fmt.Sprintf("%s %s · %s", lessonStatusMark[l.Status], l.ID, l.Title)))
		}
	}

	return sb.String()
}

// formatLessonIntro announces a lesson before the first question.
func formatLessonIntro(l entities.PathLesson) string {
	var sb strings.Builder

	sb.WriteString(md(lessonTypeEmoji[l.Type] + " "))
	sb.WriteString(bold(l.Title))
	sb.WriteString("\n")
	sb.WriteString(md(l.ShortGoal))
	sb.WriteString("\n\n")
	sb.WriteString(md(fmt.Sprintf("⏱ ~%d мин · 🎁 +%d XP", l.EstimatedMinutes, l.XPReward)))

	return sb.String()
}

// formatQuestion renders the current question of a session.
func formatQuestion(s *entities.LessonSession) string {
	q, ok := s.Current()
	if !ok {
		return ""
	}

	var sb strings.Builder

	sb.WriteString(md(fmt.Sprintf("Вопрос %d/%d · %s · %s",
		s.Index+1, len(s.Questions), strings.Repeat("❤️", s.Lives), buildPercentBar(s.ProgressPercent()))))
	sb.WriteString("\n\n")
	sb.WriteString(bold(q.Question))
	if q.QuestionRu != "" {
		sb.WriteString("\n")
		sb.WriteString(italic(q.QuestionRu))
	}

	switch q.Type {
	case entities.QuestionTranslation:
		sb.WriteString("\n\n")
		sb.WriteString(md("✍️ Напишите перевод сообщением."))
	case entities.QuestionListening:
		sb.WriteString("\n\n")
		sb.WriteString(md("🎧 Выберите правильный вариант."))
	}

	if q.Hint != "" {
		sb.WriteString("\n\n")
		sb.WriteString(md("💡 "))
		sb.WriteString(italic(q.Hint))
	}

	return sb.String()
}

// formatAnswerFeedback renders the verdict on a checked answer.
func formatAnswerFeedback(q entities.Question, answer string, correct bool, livesLeft int) string {
	var sb strings.Builder

	sb.WriteString(bold(q.Question))
	sb.WriteString("\n\n")
	if correct {
		sb.WriteString(md(fmt.Sprintf("✅ Верно! +%d XP", entities.XPPerCorrectAnswer)))
		return sb.String()
	}

	sb.WriteString(md("❌ Ваш ответ: "))
	sb.WriteString(italic(answer))
	sb.WriteString("\n")
	sb.WriteString(md("Правильно: "))
	sb.WriteString(bold(q.CorrectAnswer))
	sb.WriteString("\n")
	if livesLeft > 0 {
		sb.WriteString(md(fmt.Sprintf("Осталось жизней: %d", livesLeft)))
	} else {
		sb.WriteString(md("Жизни закончились."))
	}

	return sb.String()
}

// formatLessonResult renders the end of a lesson.
func formatLessonResult(r *service.LessonResult) string {
	var sb strings.Builder

	if r.Failed {
		sb.WriteString(bold("💔 Урок не пройден"))
		sb.WriteString("\n\n")
		sb.WriteString(md(fmt.Sprintf("Верных ответов: %d из %d. Попробуйте ещё раз!",
			r.Session.Correct, len(r.Session.Questions))))
		return sb.String()
	}

	sb.WriteString(bold("🎉 Урок пройден: " + r.Lesson.Title))
	sb.WriteString("\n\n")
	sb.WriteString(md(fmt.Sprintf("Верных ответов: %d из %d", r.Session.Correct, len(r.Session.Questions))))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("Получено: +%d XP", r.XPAwarded)))

	if r.Learner != nil {
		s := r.Learner.Stats
		sb.WriteString("\n\n")
		sb.WriteString(md(fmt.Sprintf("⭐ Уровень %d %s %d%%", s.Level, buildPercentBar(s.ProgressPercent), s.ProgressPercent)))
	}

	return sb.String()
}

// formatCard renders the top card of a flashcard review.
func formatCard(d *entities.Deck) string {
	var sb strings.Builder

	w, ok := d.Current()
	if !ok {
		sb.WriteString(bold("🏆 Повторение завершено"))
		sb.WriteString("\n\n")
		sb.WriteString(md(fmt.Sprintf("Знаю: %d · Учу: %d · Серия: %d", len(d.Known), len(d.Unknown), d.Streak)))
		return sb.String()
	}

	sb.WriteString(md(fmt.Sprintf("Карточка %d/%d · 🔥 %d · %s",
		d.Index+1, len(d.Words), d.Streak, buildPercentBar(d.ProgressPercent()))))
	sb.WriteString("\n\n")
	sb.WriteString(bold(w.Spanish))

	if d.Flipped {
		sb.WriteString("\n")
		sb.WriteString(md("— " + w.Russian))
		if w.Example != "" {
			sb.WriteString("\n\n")
			sb.WriteString(italic(w.Example))
			sb.WriteString("\n")
			sb.WriteString(md(w.ExampleTranslation))
		}
	}

	return sb.String()
}

// formatLevelUp congratulates a learner on a new level.
func formatLevelUp(l entities.Learner) string {
	return bold(fmt.Sprintf("🚀 Новый уровень: %d!", l.Stats.Level)) + "\n\n" +
		md(fmt.Sprintf("До уровня %d: %d XP. ¡Sigue así!", l.Stats.Level+1, l.Stats.Remaining()))
}

// formatStreakReminder asks a learner to keep the streak alive.
func formatStreakReminder(c *entities.ReminderCandidate) string {
	name := c.FirstName
	if name == "" {
		name = entities.GuestName
	}
	return md(fmt.Sprintf("🔥 %s, ваша серия — %d %s подряд.", name, c.Streak, pluralDays(c.Streak))) + "\n" +
		md("Пройдите урок сегодня, чтобы её не потерять!")
}

func formatReminderStatus(enabled bool) string {
	if enabled {
		return md("🔔 Напоминания включены. Напомню, если вы не занимались днём.")
	}
	return md("🔕 Напоминания выключены.")
}

func resetConfirmMessage() string {
	return bold("Сбросить локальные данные?") + "\n\n" +
		md("Будут удалены сохранённая статистика и настройки напоминаний в боте. Прогресс в мини‑приложении останется.")
}

// pluralDays picks the Russian plural form of "день".
func pluralDays(n int) string {
	if n < 0 {
		n = -n
	}
	switch {
	case n%100 >= 11 && n%100 <= 14:
		return "дней"
	case n%10 == 1:
		return "день"
	case n%10 >= 2 && n%10 <= 4:
		return "дня"
	default:
		return "дней"
	}
}

package telegram

import (
	"strconv"
	"strings"

	"github.com/aliskhannn/bruno/internal/service"
)

// Callback action constants.
const (
	actionLesson   = "lesson"
	actionDeck     = "deck"
	actionProfile  = "profile"
	actionPath     = "path"
	actionReminder = "reminder"
	actionReset    = "reset"
)

// Lesson sub-actions.
const (
	lessonStart    = "start"
	lessonAnswer   = "answer"
	lessonContinue = "continue"
	lessonQuit     = "quit"
)

// Deck sub-actions besides the service.DeckAction values.
const (
	deckStart = "start"
	deckStop  = "stop"
)

const profileRefresh = "refresh"

// Reminder sub-actions.
const (
	reminderToggle      = "toggle"
	reminderStartLesson = "start_lesson"
	reminderDisable     = "disable"
)

const (
	resetConfirm = "confirm"
	resetCancel  = "cancel"
)

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// param returns the i-th parameter or "".
func (cd callbackData) param(i int) string {
	if i < 0 || i >= len(cd.Params) {
		return ""
	}
	return cd.Params[i]
}

// intParam parses the i-th parameter as a non-negative integer.
func (cd callbackData) intParam(i int) (int, bool) {
	n, err := strconv.Atoi(cd.param(i))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// buildLessonStartCallback starts the given lesson, or the next one when id is empty.
func buildLessonStartCallback(lessonID string) string {
	params := []string{lessonStart}
	if lessonID != "" {
		params = append(params, lessonID)
	}
	return callbackData{Action: actionLesson, Params: params}.encode()
}

// buildLessonAnswerCallback picks an option of the question at questionIndex.
// Indexes keep the payload inside Telegram's 64 byte limit.
func buildLessonAnswerCallback(questionIndex, optionIndex int) string {
	return callbackData{
		Action: actionLesson,
		Params: []string{
			lessonAnswer,
			strconv.Itoa(questionIndex),
			strconv.Itoa(optionIndex),
		},
	}.encode()
}

func buildLessonContinueCallback() string {
	return callbackData{Action: actionLesson, Params: []string{lessonContinue}}.encode()
}

func buildLessonQuitCallback() string {
	return callbackData{Action: actionLesson, Params: []string{lessonQuit}}.encode()
}

func buildDeckCallback(action service.DeckAction) string {
	return callbackData{Action: actionDeck, Params: []string{string(action)}}.encode()
}

func buildDeckStartCallback() string {
	return callbackData{Action: actionDeck, Params: []string{deckStart}}.encode()
}

func buildDeckStopCallback() string {
	return callbackData{Action: actionDeck, Params: []string{deckStop}}.encode()
}

func buildProfileRefreshCallback() string {
	return callbackData{Action: actionProfile, Params: []string{profileRefresh}}.encode()
}

func buildPathCallback() string {
	return actionPath
}

func buildReminderToggleCallback() string {
	return callbackData{Action: actionReminder, Params: []string{reminderToggle}}.encode()
}

// buildReminderStartLessonCallback builds callback data for starting a lesson from a reminder message.
func buildReminderStartLessonCallback() string {
	return callbackData{Action: actionReminder, Params: []string{reminderStartLesson}}.encode()
}

func buildReminderDisableCallback() string {
	return callbackData{Action: actionReminder, Params: []string{reminderDisable}}.encode()
}

func buildResetConfirmCallback() string {
	return callbackData{Action: actionReset, Params: []string{resetConfirm}}.encode()
}

func buildResetCancelCallback() string {
	return callbackData{Action: actionReset, Params: []string{resetCancel}}.encode()
}

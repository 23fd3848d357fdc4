package telegram

import (
	"reflect"
	"testing"

	"github.com/aliskhannn/bruno/internal/service"
)

func TestCallbackRoundTrip(t *testing.T) {
	tests := []struct {
		name       string
		data       string
		wantAction string
		wantParams []string
	}{
		{"next lesson", buildLessonStartCallback(""), actionLesson, []string{lessonStart}},
		{"given lesson", buildLessonStartCallback("A11-28"), actionLesson, []string{lessonStart, "A11-28"}},
		{"answer", buildLessonAnswerCallback(3, 1), actionLesson, []string{lessonAnswer, "3", "1"}},
		{"continue", buildLessonContinueCallback(), actionLesson, []string{lessonContinue}},
		{"deck flip", buildDeckCallback(service.DeckFlip), actionDeck, []string{"flip"}},
		{"deck stop", buildDeckStopCallback(), actionDeck, []string{deckStop}},
		{"path", buildPathCallback(), actionPath, []string{}},
		{"reminder", buildReminderStartLessonCallback(), actionReminder, []string{reminderStartLesson}},
		{"reset", buildResetConfirmCallback(), actionReset, []string{resetConfirm}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cd := decodeCallback(tt.data)
			if cd.Action != tt.wantAction {
				t.Errorf("action = %q, want %q", cd.Action, tt.wantAction)
			}
			if !reflect.DeepEqual(cd.Params, tt.wantParams) {
				t.Errorf("params = %q, want %q", cd.Params, tt.wantParams)
			}
			if cd.Raw != tt.data {
				t.Errorf("raw = %q", cd.Raw)
			}
			if cd.encode() != tt.data {
				t.Errorf("encode = %q, want %q", cd.encode(), tt.data)
			}
			if len(tt.data) > 64 {
				t.Errorf("callback data %q exceeds 64 bytes", tt.data)
			}
		})
	}
}

func TestCallbackParams(t *testing.T) {
	cd := decodeCallback("lesson:answer:2:x:-1")

	if got := cd.param(0); got != lessonAnswer {
		t.Errorf("param(0) = %q", got)
	}
	if got := cd.param(9); got != "" {
		t.Errorf("param(9) = %q", got)
	}
	if n, ok := cd.intParam(1); !ok || n != 2 {
		t.Errorf("intParam(1) = %d, %v", n, ok)
	}
	if _, ok := cd.intParam(2); ok {
		t.Error("intParam accepted a word")
	}
	if _, ok := cd.intParam(3); ok {
		t.Error("intParam accepted a negative number")
	}
}

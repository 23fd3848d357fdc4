package entities

import (
	"encoding/json"
	"testing"
	"time"
)

func testPath() []PathSection {
	return []PathSection{
		{ID: 1, Icon: IconSparkles, Lessons: []PathLesson{
			{ID: "A11-01", Status: StatusCompleted},
			{ID: "A11-02", Status: StatusAvailable},
		}},
		{ID: 2, Icon: IconUsers, Lessons: []PathLesson{
			{ID: "A11-06", Status: StatusLocked},
			{ID: "A11-07", Status: StatusLocked},
		}},
	}
}

func statuses(sections []PathSection) []LessonStatus {
	var out []LessonStatus
	for _, s := range sections {
		for _, l := range s.Lessons {
			out = append(out, l.Status)
		}
	}
	return out
}

func TestApplyProgress(t *testing.T) {
	path := testPath()
	progress := []LessonProgress{
		{LessonID: "A11-01", Status: ProgressCompleted},
		{LessonID: "A11-02", Status: ProgressCompleted},
		{LessonID: "A11-06", Status: ProgressInProgress},
	}

	got := statuses(ApplyProgress(path, progress))
	want := []LessonStatus{StatusCompleted, StatusCompleted, StatusAvailable, StatusLocked}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("statuses = %v, want %v", got, want)
		}
	}

	if path[0].Lessons[1].Status != StatusAvailable {
		t.Error("ApplyProgress must not modify its input")
	}
}

func TestApplyProgress_Empty(t *testing.T) {
	got := statuses(ApplyProgress(testPath(), nil))
	want := []LessonStatus{StatusAvailable, StatusLocked, StatusLocked, StatusLocked}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("statuses = %v, want %v", got, want)
		}
	}
}

func TestCountCompletedAndFind(t *testing.T) {
	path := testPath()
	if n := CountCompleted(path); n != 1 {
		t.Errorf("CountCompleted = %d, want 1", n)
	}
	if l, ok := FindLesson(path, "A11-07"); !ok || l.ID != "A11-07" {
		t.Errorf("FindLesson(A11-07) = %+v, %v", l, ok)
	}
	if _, ok := FindLesson(path, "missing"); ok {
		t.Error("FindLesson(missing) should fail")
	}
}

func TestParseIcon(t *testing.T) {
	if icon, ok := ParseIcon("globe"); !ok || icon != IconGlobe {
		t.Errorf("ParseIcon(globe) = %v, %v", icon, ok)
	}
	if icon, ok := ParseIcon("Rocket"); ok || icon != IconBookOpen {
		t.Errorf("ParseIcon(Rocket) = %v, %v, want fallback", icon, ok)
	}

	b, err := json.Marshal(PathSection{Icon: IconHeart})
	if err != nil {
		t.Fatal(err)
	}
	var back PathSection
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatal(err)
	}
	if back.Icon != IconHeart {
		t.Errorf("icon round trip = %v, want heart", back.Icon)
	}
}

func strPtr(s string) *string { return &s }

func TestProfile_DisplayName(t *testing.T) {
	tests := []struct {
		name    string
		profile Profile
		want    string
	}{
		{"first and last", Profile{FirstName: "Ana", LastName: strPtr("García")}, "Ana García"},
		{"first only", Profile{FirstName: "Ana"}, "Ana"},
		{"username fallback", Profile{Username: strPtr("ana_g")}, "ana_g"},
		{"nothing", Profile{LastName: strPtr("")}, "Telegram User"},
	}
	for _, tt := range tests {
		if got := tt.profile.DisplayName(); got != tt.want {
			t.Errorf("%s: DisplayName() = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestNewLearner(t *testing.T) {
	l := NewLearner(&Profile{TgID: 42, FirstName: "Ana", PhotoURL: strPtr("https://t.me/a.jpg")}, &Stats{XP: 299, Streak: 4})

	if l.ID == nil || *l.ID != 42 || l.Source != SourceTelegram {
		t.Fatalf("unexpected identity: %+v", l)
	}
	if l.Stats.Level != 2 || l.Stats.ProgressPercent != 66 || l.Stats.Streak != 4 {
		t.Errorf("unexpected stats: %+v", l.Stats)
	}
	if l.AvatarURL != "https://t.me/a.jpg" {
		t.Errorf("avatar = %q", l.AvatarURL)
	}

	xp := int64(300)
	patched := l.WithPatch(StatsPatch{XP: &xp})
	if patched.Stats.Level != 3 || patched.Stats.Streak != 4 {
		t.Errorf("patched stats: %+v", patched.Stats)
	}
	if l.Stats.Level != 2 {
		t.Error("WithPatch must not modify the receiver")
	}
}

func TestStats_LastActiveAt(t *testing.T) {
	for _, v := range []string{"2026-10-17T08:00:00Z", "2026-10-17 08:00:00", "2026-10-17"} {
		s := Stats{LastActive: v}
		at, ok := s.LastActiveAt()
		if !ok || at.Day() != 17 {
			t.Errorf("LastActiveAt(%q) = %v, %v", v, at, ok)
		}
	}
	if _, ok := (&Stats{LastActive: "yesterday"}).LastActiveAt(); ok {
		t.Error("garbage must not parse")
	}
}

func TestStatsSnapshot_RoundTrip(t *testing.T) {
	now := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	l := NewLearner(&Profile{TgID: 5, FirstName: "Ana"}, &Stats{XP: 350, Streak: 2, LastActive: "2026-10-17"})

	s := NewStatsSnapshot(l, now)
	if s.UserID != 5 || s.Level != 3 || s.XP != 350 || s.LastActiveAt == nil || !s.UpdatedAt.Equal(now) {
		t.Fatalf("snapshot = %+v", s)
	}

	back := s.Learner()
	if *back.ID != 5 || back.Name != "Ana" || back.Stats.LevelInfo != l.Stats.LevelInfo || !back.LastActive.Equal(l.LastActive) {
		t.Errorf("restored learner = %+v", back)
	}

	c := ReminderCandidate{LastActiveAt: s.LastActiveAt}
	if !c.ActiveOn(time.Date(2026, 10, 17, 23, 0, 0, 0, time.UTC)) || c.ActiveOn(now) {
		t.Error("ActiveOn must compare UTC days")
	}
}

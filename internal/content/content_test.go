package content

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/aliskhannn/bruno/internal/domain/entities"
)

func TestLoad_Embedded(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	path := c.Path()
	if len(path) != 5 {
		t.Fatalf("sections = %d, want 5", len(path))
	}
	lessons := 0
	for _, s := range path {
		lessons += len(s.Lessons)
	}
	if lessons != 28 {
		t.Errorf("lessons = %d, want 28", lessons)
	}

	wantIcons := []entities.Icon{
		entities.IconSparkles, entities.IconUsers, entities.IconGlobe, entities.IconHome, entities.IconHeart,
	}
	for i, s := range path {
		if s.Icon != wantIcons[i] {
			t.Errorf("section %d icon = %v, want %v", s.ID, s.Icon, wantIcons[i])
		}
	}

	if got := entities.CountCompleted(path); got != 3 {
		t.Errorf("static completed = %d, want 3", got)
	}

	l, ok := c.Lesson("A11-28")
	if !ok || l.XPReward != 50 || l.Type != entities.TypeCheckpoint {
		t.Errorf("Lesson(A11-28) = %+v, %v", l, ok)
	}

	if len(c.Words()) != 8 {
		t.Errorf("words = %d, want 8", len(c.Words()))
	}
	if qs := c.Questions("A11-04"); len(qs) != 5 {
		t.Errorf("questions = %d, want 5", len(qs))
	}
}

func TestContent_ReturnsCopies(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatal(err)
	}

	p := c.Path()
	p[0].Lessons[0].Status = entities.StatusLocked
	if c.Path()[0].Lessons[0].Status != entities.StatusCompleted {
		t.Error("Path() exposes internal lessons")
	}

	qs := c.Questions("A11-01")
	qs[0].Options[0] = "changed"
	if c.Questions("A11-01")[0].Options[0] == "changed" {
		t.Error("Questions() exposes internal options")
	}
}

func TestLoadFS_Invalid(t *testing.T) {
	const (
		goodPath    = `[{"id":1,"title":"t","icon":"globe","lessons":[{"id":"L1","status":"available","type":"lesson","xpReward":10}]}]`
		goodWords   = `[{"id":1,"spanish":"hola","russian":"привет"}]`
		goodLessons = `{"default":[{"id":1,"type":"translation","question":"q","correctAnswer":"hola"}]}`
	)

	tests := []struct {
		name    string
		path    string
		words   string
		lessons string
	}{
		{"unknown icon", `[{"id":1,"icon":"rocket","lessons":[]}]`, goodWords, goodLessons},
		{"duplicate lesson", `[{"id":1,"icon":"globe","lessons":[{"id":"L1","status":"locked","type":"lesson"},{"id":"L1","status":"locked","type":"lesson"}]}]`, goodWords, goodLessons},
		{"unknown type", `[{"id":1,"icon":"globe","lessons":[{"id":"L1","status":"locked","type":"game"}]}]`, goodWords, goodLessons},
		{"unknown status", `[{"id":1,"icon":"globe","lessons":[{"id":"L1","status":"open","type":"lesson"}]}]`, goodWords, goodLessons},
		{"empty path", `[]`, goodWords, goodLessons},
		{"duplicate word", goodPath, `[{"id":1,"spanish":"a","russian":"b"},{"id":1,"spanish":"c","russian":"d"}]`, goodLessons},
		{"no default quiz", goodPath, goodWords, `{}`},
		{"answer not in options", goodPath, goodWords, `{"default":[{"id":1,"type":"multiple-choice","options":["a"],"correctAnswer":"b"}]}`},
		{"quiz for unknown lesson", goodPath, goodWords, `{"default":[{"id":1,"type":"translation","correctAnswer":"a"}],"L9":[]}`},
		{"empty lesson quiz", goodPath, goodWords, `{"default":[{"id":1,"type":"translation","correctAnswer":"a"}],"L1":[]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := fstest.MapFS{
				"data/path.json":    {Data: []byte(tt.path)},
				"data/words.json":   {Data: []byte(tt.words)},
				"data/lessons.json": {Data: []byte(tt.lessons)},
			}
			if _, err := LoadFS(fsys); !errors.Is(err, ErrInvalidContent) {
				t.Errorf("got %v, want ErrInvalidContent", err)
			}
		})
	}
}

func TestLoadFS_LessonQuiz(t *testing.T) {
	const lessons = `{
		"default":[{"id":1,"type":"translation","correctAnswer":"a"}],
		"L1":[{"id":7,"type":"listening","options":["x","y"],"correctAnswer":"y"}]
	}`
	fsys := fstest.MapFS{
		"data/path.json":    {Data: []byte(`[{"id":1,"icon":"heart","lessons":[{"id":"L1","status":"available","type":"drill"}]}]`)},
		"data/words.json":   {Data: []byte(`[]`)},
		"data/lessons.json": {Data: []byte(lessons)},
	}

	c, err := LoadFS(fsys)
	if err != nil {
		t.Fatal(err)
	}
	if qs := c.Questions("L1"); len(qs) != 1 || qs[0].ID != 7 {
		t.Errorf("Questions(L1) = %+v", qs)
	}
	if qs := c.Questions("other"); len(qs) != 1 || qs[0].ID != 1 {
		t.Errorf("Questions(other) = %+v", qs)
	}
}

func TestLoadFS_MissingFile(t *testing.T) {
	if _, err := LoadFS(fstest.MapFS{}); err == nil {
		t.Error("expected error for missing files")
	}
}

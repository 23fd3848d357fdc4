package service

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/bruno/internal/domain/entities"
)

func newReminderFixture(n int) (*ReminderService, *fakeReminderRepo, *fakeNotifier) {
	repo := &fakeReminderRepo{reminded: make(map[int64]time.Time)}
	for i := 1; i <= n; i++ {
		repo.candidates = append(repo.candidates, &entities.ReminderCandidate{
			UserID: int64(i),
			ChatID: int64(i),
			Streak: 2,
		})
	}
	notifier := &fakeNotifier{}

	svc := NewReminderService(repo, "", zap.NewNop())
	svc.SetNotifier(notifier)
	svc.now = func() time.Time { return time.Date(2026, 10, 18, 15, 0, 0, 0, time.UTC) }
	return svc, repo, notifier
}

func TestReminderService_SendDue(t *testing.T) {
	svc, repo, notifier := newReminderFixture(3)

	sent, err := svc.SendDue(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if sent != 3 || len(notifier.sent) != 3 {
		t.Errorf("sent = %d, notified = %v", sent, notifier.sent)
	}
	if len(repo.reminded) != 3 {
		t.Errorf("reminded = %v", repo.reminded)
	}

	// Second run on the same day finds nobody.
	sent, err = svc.SendDue(context.Background())
	if err != nil || sent != 0 {
		t.Errorf("second run = %d, %v", sent, err)
	}
}

func TestReminderService_BatchesWithFailures(t *testing.T) {
	svc, repo, notifier := newReminderFixture(120)
	notifier.failOn = func(id int64) bool { return id%50 == 0 }

	sent, err := svc.SendDue(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if sent != 118 {
		t.Errorf("sent = %d, want 118", sent)
	}
	if _, ok := repo.reminded[50]; ok {
		t.Error("failed reminder marked as sent")
	}

	sort.Slice(notifier.sent, func(i, j int) bool { return notifier.sent[i] < notifier.sent[j] })
	if notifier.sent[0] != 1 || notifier.sent[len(notifier.sent)-1] != 120 {
		t.Errorf("sent range = %d..%d", notifier.sent[0], notifier.sent[len(notifier.sent)-1])
	}
}

func TestReminderService_SkipsActiveToday(t *testing.T) {
	svc, repo, notifier := newReminderFixture(1)
	active := time.Date(2026, 10, 18, 8, 0, 0, 0, time.UTC)
	repo.candidates[0].LastActiveAt = &active

	sent, err := svc.SendDue(context.Background())
	if err != nil || sent != 0 || len(notifier.sent) != 0 {
		t.Errorf("sent = %d, %v, notified %v", sent, err, notifier.sent)
	}
}

func TestReminderService_NoNotifier(t *testing.T) {
	svc := NewReminderService(&fakeReminderRepo{}, "", zap.NewNop())
	if _, err := svc.SendDue(context.Background()); !errors.Is(err, errNotifierNotSet) {
		t.Errorf("got %v", err)
	}
}

func TestReminderService_StartBadSchedule(t *testing.T) {
	svc := NewReminderService(&fakeReminderRepo{}, "every minute", zap.NewNop())
	if err := svc.Start(context.Background()); err == nil {
		t.Error("expected schedule error")
	}
}

func TestReminderService_StartStops(t *testing.T) {
	svc, _, _ := newReminderFixture(0)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- svc.Start(ctx) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Start: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Start did not return after cancel")
	}
}

func TestUserService(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, zap.NewNop())
	ctx := context.Background()

	if err := svc.EnsureUser(ctx, entities.NewUser(1, 10, "Ana", "", "", "")); err != nil {
		t.Fatal(err)
	}
	if err := svc.EnsureUser(ctx, entities.NewUser(1, 10, "Anita", "", "", "")); err != nil {
		t.Fatal(err)
	}
	u, err := svc.Get(ctx, 1)
	if err != nil || u.FirstName != "Anita" || !u.RemindersEnabled {
		t.Fatalf("Get = %+v, %v", u, err)
	}

	enabled, err := svc.ToggleReminders(ctx, 1)
	if err != nil || enabled {
		t.Errorf("first toggle = %v, %v", enabled, err)
	}
	enabled, err = svc.ToggleReminders(ctx, 1)
	if err != nil || !enabled {
		t.Errorf("second toggle = %v, %v", enabled, err)
	}

	if err := svc.DisableReminders(ctx, 1); err != nil {
		t.Fatal(err)
	}
	if u, _ := svc.Get(ctx, 1); u.RemindersEnabled {
		t.Error("reminders still enabled")
	}

	if _, err := svc.ToggleReminders(ctx, 2); err == nil {
		t.Error("toggle for unknown user must fail")
	}
}

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/aliskhannn/bruno/internal/domain/entities"
)

const (
	DefaultReminderSchedule = "0 * * * *"

	reminderBatchSize     = 100
	reminderMaxConcurrent = 10
)

var (
	errNotifierNotSet = errors.New("notifier not initialized")
	errActiveToday    = errors.New("user already practised today")
)

// ReminderService sends streak reminders to users who have not practised today.
type ReminderService struct {
	reminderRepo ReminderRepository
	notifier     ReminderNotifier
	schedule     string
	logger       *zap.Logger
	now          func() time.Time
}

// NewReminderService creates a new reminder service.
// An empty schedule means DefaultReminderSchedule.
func NewReminderService(reminderRepo ReminderRepository, schedule string, logger *zap.Logger) *ReminderService {
	if schedule == "" {
		schedule = DefaultReminderSchedule
	}
	return &ReminderService{
		reminderRepo: reminderRepo,
		schedule:     schedule,
		logger:       logger,
		now:          time.Now,
	}
}

// SetNotifier sets the notifier (called after handler is created).
func (s *ReminderService) SetNotifier(notifier ReminderNotifier) {
	s.notifier = notifier
}

// Start runs the reminder schedule until ctx is done.
func (s *ReminderService) Start(ctx context.Context) error {
	c := cron.New(cron.WithLocation(time.UTC))

	_, err := c.AddFunc(s.schedule, func() {
		s.logger.Info("cron triggered: processing streak reminders")
		if _, err := s.SendDue(ctx); err != nil {
			s.logger.Error("failed to send streak reminders", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("add cron job %q: %w", s.schedule, err)
	}

	c.Start()
	s.logger.Info("reminder service started", zap.String("schedule", s.schedule))

	<-ctx.Done()

	<-c.Stop().Done()
	s.logger.Info("reminder service stopped")
	return nil
}

// SendDue sends reminders to every due candidate and returns how many were sent.
func (s *ReminderService) SendDue(ctx context.Context) (int, error) {
	if s.notifier == nil {
		return 0, errNotifierNotSet
	}

	now := s.now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	offset := 0
	totalSent := 0

	for {
		candidates, err := s.reminderRepo.ListReminderCandidates(ctx, dayStart, reminderBatchSize, offset)
		if err != nil {
			return totalSent, fmt.Errorf("list reminder candidates: %w", err)
		}

		if len(candidates) == 0 {
			break
		}

		sent := s.processBatch(ctx, candidates, now)
		totalSent += sent

		if len(candidates) < reminderBatchSize {
			break
		}

		// Reminded users drop out of the candidate query.
		offset += len(candidates) - sent
	}

	s.logger.Info("streak reminders processed", zap.Int("total_sent", totalSent))
	return totalSent, nil
}

// processBatch sends a batch of reminders concurrently.
func (s *ReminderService) processBatch(ctx context.Context, candidates []*entities.ReminderCandidate, now time.Time) int {
	sem := make(chan struct{}, reminderMaxConcurrent)
	var wg sync.WaitGroup
	var mu sync.Mutex
	sent := 0

	for _, c := range candidates {
		c := c
		wg.Add(1)
		sem <- struct{}{}

		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			if err := s.processReminder(ctx, c, now); err != nil {
				if errors.Is(err, errActiveToday) {
					s.logger.Debug("reminder skipped", zap.Int64("user_id", c.UserID))
					return
				}
				s.logger.Error("failed to process reminder",
					zap.Int64("user_id", c.UserID),
					zap.Error(err))
				return
			}
			mu.Lock()
			sent++
			mu.Unlock()
		}()
	}

	wg.Wait()
	return sent
}

func (s *ReminderService) processReminder(ctx context.Context, c *entities.ReminderCandidate, now time.Time) error {
	if c.ActiveOn(now) {
		return errActiveToday
	}

	if err := s.notifier.SendStreakReminder(ctx, c); err != nil {
		return fmt.Errorf("send notification: %w", err)
	}

	if err := s.reminderRepo.MarkReminded(ctx, c.UserID, now); err != nil {
		return fmt.Errorf("mark reminded: %w", err)
	}

	s.logger.Debug("streak reminder sent",
		zap.Int64("user_id", c.UserID),
		zap.Int("streak", c.Streak),
	)
	return nil
}

// Package scheduler runs periodic maintenance jobs on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// DefaultAuditCleanupSchedule runs the cleanup daily at 03:00.
const DefaultAuditCleanupSchedule = "0 3 * * *"

// AuditCleaner removes audit events older than retentionDays. The task
// queue enqueues the work; without a queue the audit service runs it inline.
type AuditCleaner interface {
	ScheduleAuditCleanup(ctx context.Context, retentionDays int) error
}

// AuditRetentionScheduler triggers audit event cleanup periodically.
type AuditRetentionScheduler struct {
	cleaner       AuditCleaner
	schedule      string
	retentionDays int

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

func newCron() *cron.Cron {
	return cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)))
}

// NewAuditRetentionScheduler creates a scheduler. An empty schedule falls
// back to DefaultAuditCleanupSchedule.
func NewAuditRetentionScheduler(cleaner AuditCleaner, schedule string, retentionDays int) *AuditRetentionScheduler {
	if schedule == "" {
		schedule = DefaultAuditCleanupSchedule
	}
	return &AuditRetentionScheduler{
		cleaner:       cleaner,
		schedule:      schedule,
		retentionDays: retentionDays,
		cron:          newCron(),
	}
}

// ValidateSchedule reports whether schedule is a five-field cron expression.
func ValidateSchedule(schedule string) error {
	_, err := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow).Parse(schedule)
	return err
}

// Start registers the cleanup job and begins the cron loop. The scheduler
// stops when ctx is cancelled.
func (s *AuditRetentionScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if err := ValidateSchedule(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.schedule, err)
	}

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		s.run(cancelCtx)
	})
	if err != nil {
		s.cancelFunc()
		return fmt.Errorf("failed to schedule audit cleanup: %w", err)
	}
	s.entryID = entryID

	s.cron.Start()
	s.isRunning = true

	log.Info().
		Str("schedule", s.schedule).
		Int("retention_days", s.retentionDays).
		Time("next_run", s.cron.Entry(entryID).Next).
		Msg("Audit retention scheduler started")

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop waits for a running job, then stops the cron loop.
func (s *AuditRetentionScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	<-s.cron.Stop().Done()
	s.cron.Remove(s.entryID)
	if s.cancelFunc != nil {
		s.cancelFunc()
	}

	s.isRunning = false
	s.cancelFunc = nil
	s.cron = newCron()

	log.Info().Msg("Audit retention scheduler stopped")
}

// RunNow triggers a cleanup outside the schedule.
func (s *AuditRetentionScheduler) RunNow(ctx context.Context) {
	s.run(ctx)
}

// IsRunning returns whether the scheduler is active.
func (s *AuditRetentionScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRun returns when the next cleanup will occur.
func (s *AuditRetentionScheduler) NextRun() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}
	next := s.cron.Entry(s.entryID).Next
	return &next
}

func (s *AuditRetentionScheduler) run(ctx context.Context) {
	if err := s.cleaner.ScheduleAuditCleanup(ctx, s.retentionDays); err != nil {
		log.Error().Err(err).Msg("Audit cleanup failed")
	}
}

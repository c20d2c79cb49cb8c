package scheduler

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/comunidad/backend/internal/application/billing"
	"github.com/comunidad/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// cronTickerInterval is the interval at which the scheduler checks whether
// the daily run is due
const cronTickerInterval = 1 * time.Minute

// DunningRunner is the slice of the dunning service the scheduler drives
type DunningRunner interface {
	RunScheduledSweep(ctx context.Context, today time.Time) (*billing.SweepResult, error)
	SendReminders(ctx context.Context, today time.Time) (*billing.ReminderResult, error)
}

// DunningScheduler runs the overdue escalation and the payment reminders
// once a day at the configured time. A date guard keeps restarts within the
// same day from repeating the run; the sweep itself is also idempotent.
type DunningScheduler struct {
	config  config.SchedulerConfig
	dunning DunningRunner
	logger  *zap.Logger

	cronHour   int
	cronMinute int

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool

	lastRunDate string // YYYY-MM-DD of the last completed run
	now         func() time.Time
}

// NewDunningScheduler creates a new DunningScheduler
func NewDunningScheduler(cfg config.SchedulerConfig, dunning DunningRunner, logger *zap.Logger) (*DunningScheduler, error) {
	hour, minute, err := ParseCronSchedule(cfg.DailyCronSchedule)
	if err != nil {
		return nil, err
	}

	return &DunningScheduler{
		config:     cfg,
		dunning:    dunning,
		logger:     logger,
		cronHour:   hour,
		cronMinute: minute,
		now:        time.Now,
	}, nil
}

// Start begins the daily ticker. It is a no-op when the scheduler is
// disabled or already running.
func (s *DunningScheduler) Start(ctx context.Context) {
	if !s.config.Enabled {
		s.logger.Info("Dunning scheduler disabled")
		return
	}

	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.loop(ctx)

	s.logger.Info("Dunning scheduler started",
		zap.Int("hour", s.cronHour),
		zap.Int("minute", s.cronMinute),
	)
}

// Stop stops the scheduler and waits for an in-flight run to finish
func (s *DunningScheduler) Stop() {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()

	s.logger.Info("Dunning scheduler stopped")
}

func (s *DunningScheduler) loop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(cronTickerInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if s.due(s.now()) {
				s.runOnce(ctx)
			}
		}
	}
}

// due reports whether the daily run should fire now
func (s *DunningScheduler) due(now time.Time) bool {
	if now.Hour() != s.cronHour || now.Minute() != s.cronMinute {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRunDate != now.Format("2006-01-02")
}

// runOnce executes one sweep-and-remind cycle and marks the day done
func (s *DunningScheduler) runOnce(ctx context.Context) {
	today := s.now()

	runCtx := ctx
	if s.config.JobTimeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, s.config.JobTimeout)
		defer cancel()
	}

	s.logger.Info("Daily dunning run starting", zap.String("date", today.Format("2006-01-02")))

	sweep, err := s.dunning.RunScheduledSweep(runCtx, today)
	if err != nil {
		s.logger.Error("Scheduled overdue sweep failed", zap.Error(err))
	} else {
		s.logger.Info("Scheduled overdue sweep finished",
			zap.Int("updated", sweep.Updated),
			zap.Int("notified", sweep.Notified),
			zap.Int("send_failures", sweep.SendFailures),
		)
	}

	reminders, err := s.dunning.SendReminders(runCtx, today)
	if err != nil {
		s.logger.Error("Scheduled reminder run failed", zap.Error(err))
	} else {
		s.logger.Info("Scheduled reminder run finished",
			zap.Int("candidates", reminders.Candidates),
			zap.Int("notified", reminders.Notified),
			zap.Int("send_failures", reminders.SendFailures),
		)
	}

	s.mu.Lock()
	s.lastRunDate = today.Format("2006-01-02")
	s.mu.Unlock()
}

// ParseCronSchedule extracts hour and minute from a "minute hour * * *"
// cron expression. Defaults to 06:00 for an empty or partial expression.
func ParseCronSchedule(cronExpr string) (hour, minute int, err error) {
	hour = 6
	minute = 0

	parts := strings.Fields(cronExpr)
	if len(parts) < 2 {
		return hour, minute, nil
	}

	if parts[0] != "*" {
		if val, parseErr := parseCronField(parts[0]); parseErr == nil {
			minute = val
		}
	}
	if parts[1] != "*" {
		if val, parseErr := parseCronField(parts[1]); parseErr == nil {
			hour = val
		}
	}

	if minute < 0 || minute > 59 {
		return 6, 0, fmt.Errorf("minute must be 0-59, got %d", minute)
	}
	if hour < 0 || hour > 23 {
		return 6, 0, fmt.Errorf("hour must be 0-23, got %d", hour)
	}

	return hour, minute, nil
}

func parseCronField(s string) (int, error) {
	val := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("not a number: %q", s)
		}
		val = val*10 + int(c-'0')
	}
	return val, nil
}

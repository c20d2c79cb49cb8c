package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/comunidad/backend/internal/application/billing"
	"github.com/comunidad/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeDunningRunner struct {
	mu        sync.Mutex
	sweeps    int
	reminders int
}

func (f *fakeDunningRunner) RunScheduledSweep(ctx context.Context, today time.Time) (*billing.SweepResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sweeps++
	return &billing.SweepResult{}, nil
}

func (f *fakeDunningRunner) SendReminders(ctx context.Context, today time.Time) (*billing.ReminderResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reminders++
	return &billing.ReminderResult{}, nil
}

func (f *fakeDunningRunner) counts() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sweeps, f.reminders
}

func newTestScheduler(t *testing.T, runner DunningRunner) *DunningScheduler {
	t.Helper()
	s, err := NewDunningScheduler(config.SchedulerConfig{
		Enabled:           true,
		DailyCronSchedule: "0 6 * * *",
		JobTimeout:        time.Minute,
	}, runner, zap.NewNop())
	require.NoError(t, err)
	return s
}

func TestParseCronSchedule(t *testing.T) {
	t.Run("parses minute and hour", func(t *testing.T) {
		hour, minute, err := ParseCronSchedule("30 4 * * *")
		require.NoError(t, err)
		assert.Equal(t, 4, hour)
		assert.Equal(t, 30, minute)
	})

	t.Run("defaults for empty expression", func(t *testing.T) {
		hour, minute, err := ParseCronSchedule("")
		require.NoError(t, err)
		assert.Equal(t, 6, hour)
		assert.Equal(t, 0, minute)
	})

	t.Run("rejects out-of-range hour", func(t *testing.T) {
		_, _, err := ParseCronSchedule("0 25 * * *")
		assert.Error(t, err)
	})
}

func TestDunningScheduler_Due(t *testing.T) {
	s := newTestScheduler(t, &fakeDunningRunner{})

	atSix := time.Date(2024, 3, 10, 6, 0, 30, 0, time.UTC)
	assert.True(t, s.due(atSix))

	assert.False(t, s.due(time.Date(2024, 3, 10, 6, 1, 0, 0, time.UTC)))
	assert.False(t, s.due(time.Date(2024, 3, 10, 7, 0, 0, 0, time.UTC)))
}

func TestDunningScheduler_RunsOncePerDay(t *testing.T) {
	runner := &fakeDunningRunner{}
	s := newTestScheduler(t, runner)

	day := time.Date(2024, 3, 10, 6, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return day }

	require.True(t, s.due(s.now()))
	s.runOnce(context.Background())

	sweeps, reminders := runner.counts()
	assert.Equal(t, 1, sweeps)
	assert.Equal(t, 1, reminders)

	// Same day, same time slot: the date guard blocks a second run
	assert.False(t, s.due(s.now()))

	// Next day fires again
	day = day.AddDate(0, 0, 1)
	require.True(t, s.due(s.now()))
	s.runOnce(context.Background())

	sweeps, reminders = runner.counts()
	assert.Equal(t, 2, sweeps)
	assert.Equal(t, 2, reminders)
}

func TestDunningScheduler_StartStop(t *testing.T) {
	runner := &fakeDunningRunner{}
	s := newTestScheduler(t, runner)

	s.Start(context.Background())
	s.Stop()

	// Stopping twice is safe
	s.Stop()
}

func TestDunningScheduler_DisabledDoesNotStart(t *testing.T) {
	s, err := NewDunningScheduler(config.SchedulerConfig{Enabled: false}, &fakeDunningRunner{}, zap.NewNop())
	require.NoError(t, err)

	s.Start(context.Background())
	assert.False(t, s.isRunning)
	s.Stop()
}

package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPeriod(t *testing.T) {
	t.Run("valid period", func(t *testing.T) {
		p, err := NewPeriod(3, 2024)
		require.NoError(t, err)
		assert.Equal(t, 3, p.Month)
		assert.Equal(t, 2024, p.Year)
	})

	t.Run("month out of range", func(t *testing.T) {
		_, err := NewPeriod(0, 2024)
		assert.Error(t, err)
		_, err = NewPeriod(13, 2024)
		assert.Error(t, err)
	})

	t.Run("year out of range", func(t *testing.T) {
		_, err := NewPeriod(1, 1999)
		assert.Error(t, err)
	})
}

func TestPeriodNext(t *testing.T) {
	t.Run("mid year", func(t *testing.T) {
		p := Period{Month: 3, Year: 2024}
		assert.Equal(t, Period{Month: 4, Year: 2024}, p.Next())
	})

	t.Run("december wraps to january of next year", func(t *testing.T) {
		p := Period{Month: 12, Year: 2024}
		assert.Equal(t, Period{Month: 1, Year: 2025}, p.Next())
	})
}

func TestPeriodCompare(t *testing.T) {
	older := Period{Month: 11, Year: 2023}
	newer := Period{Month: 2, Year: 2024}

	assert.True(t, older.IsBefore(newer))
	assert.False(t, newer.IsBefore(older))
	assert.True(t, newer.IsOnOrAfter(older))
	assert.True(t, newer.IsOnOrAfter(newer))
	assert.Equal(t, 0, newer.Compare(Period{Month: 2, Year: 2024}))
}

func TestCurrentPeriod(t *testing.T) {
	now := time.Date(2024, time.March, 10, 15, 0, 0, 0, time.UTC)
	assert.Equal(t, Period{Month: 3, Year: 2024}, CurrentPeriod(now))
}

func TestEndOfBillingCycle(t *testing.T) {
	t.Run("day 30 of the period month", func(t *testing.T) {
		end := EndOfBillingCycle(Period{Month: 3, Year: 2024})
		assert.Equal(t, time.Date(2024, time.March, 30, 0, 0, 0, 0, time.UTC), end)
	})

	t.Run("february overflows like the legacy date library", func(t *testing.T) {
		// Day 30 does not exist in February; the policy lets the date
		// normalize forward rather than clamping to month end.
		end := EndOfBillingCycle(Period{Month: 2, Year: 2024})
		assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), end)
	})

	t.Run("due date equals cycle end", func(t *testing.T) {
		p := Period{Month: 7, Year: 2025}
		assert.Equal(t, EndOfBillingCycle(p), DueDate(p))
	})
}

func TestGracePeriod(t *testing.T) {
	assert.True(t, InGracePeriod(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, InGracePeriod(time.Date(2024, time.March, 5, 23, 0, 0, 0, time.UTC)))
	assert.False(t, InGracePeriod(time.Date(2024, time.March, 6, 0, 0, 0, 0, time.UTC)))

	cutoff := GraceCutoff(time.Date(2024, time.March, 17, 12, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC), cutoff)
}

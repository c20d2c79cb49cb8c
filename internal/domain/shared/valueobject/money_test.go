package valueobject

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("creates money with valid currency", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromInt(700), USD)
		require.NoError(t, err)
		assert.Equal(t, USD, m.Currency())
		assert.True(t, m.Amount().Equal(decimal.NewFromInt(700)))
	})

	t.Run("rejects empty currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromInt(1), "")
		assert.Error(t, err)
	})

	t.Run("from string", func(t *testing.T) {
		m, err := NewMoneyFromString("12.50", VES)
		require.NoError(t, err)
		assert.Equal(t, "12.50", m.StringFixed(2))
	})

	t.Run("rejects malformed string", func(t *testing.T) {
		_, err := NewMoneyFromString("twelve", USD)
		assert.Error(t, err)
	})
}

func TestMoneyArithmetic(t *testing.T) {
	a := NewMoneyUSDFromFloat(100.50)
	b := NewMoneyUSDFromFloat(49.50)

	t.Run("add", func(t *testing.T) {
		sum, err := a.Add(b)
		require.NoError(t, err)
		assert.Equal(t, "150.00", sum.StringFixed(2))
	})

	t.Run("subtract", func(t *testing.T) {
		diff, err := a.Subtract(b)
		require.NoError(t, err)
		assert.Equal(t, "51.00", diff.StringFixed(2))
	})

	t.Run("multiply by int", func(t *testing.T) {
		assert.Equal(t, "201.00", a.MultiplyByInt(2).StringFixed(2))
	})

	t.Run("currency mismatch", func(t *testing.T) {
		other := Zero(VES)
		_, err := a.Add(other)
		assert.Error(t, err)
		_, err = a.Subtract(other)
		assert.Error(t, err)
	})
}

func TestMoneyComparison(t *testing.T) {
	a := NewMoneyUSDFromFloat(10)
	b := NewMoneyUSDFromFloat(20)

	lt, err := a.LessThan(b)
	require.NoError(t, err)
	assert.True(t, lt)

	gt, err := b.GreaterThan(a)
	require.NoError(t, err)
	assert.True(t, gt)

	assert.True(t, ZeroUSD().IsZero())
	assert.True(t, b.IsPositive())
	assert.False(t, b.IsNegative())
	assert.True(t, a.Equals(NewMoneyUSDFromFloat(10)))
	assert.False(t, a.Equals(b))
}

func TestPhone(t *testing.T) {
	t.Run("normalizes separators", func(t *testing.T) {
		p, err := NewPhone("+58 (412) 555-1234")
		require.NoError(t, err)
		assert.Equal(t, "+584125551234", p.String())
		assert.False(t, p.IsEmpty())
	})

	t.Run("empty is allowed", func(t *testing.T) {
		p, err := NewPhone("   ")
		require.NoError(t, err)
		assert.True(t, p.IsEmpty())
	})

	t.Run("rejects letters", func(t *testing.T) {
		_, err := NewPhone("not-a-phone")
		assert.Error(t, err)
	})

	t.Run("rejects too short", func(t *testing.T) {
		_, err := NewPhone("12345")
		assert.Error(t, err)
	})
}

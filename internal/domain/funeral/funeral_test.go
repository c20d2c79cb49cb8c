package funeral

import (
	"testing"
	"time"

	"github.com/comunidad/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlan(t *testing.T) {
	t.Run("valid plan", func(t *testing.T) {
		p, err := NewPlan("Plan Familiar", "Cobertura para 4 personas", valueobject.NewMoneyUSDFromFloat(1200), 12)
		require.NoError(t, err)
		assert.True(t, p.Active)
		assert.Equal(t, "100.00", p.InstallmentAmount().StringFixed(2))
	})

	t.Run("rejects zero price", func(t *testing.T) {
		_, err := NewPlan("Plan", "", valueobject.ZeroUSD(), 12)
		assert.Error(t, err)
	})

	t.Run("rejects zero installments", func(t *testing.T) {
		_, err := NewPlan("Plan", "", valueobject.NewMoneyUSDFromFloat(100), 0)
		assert.Error(t, err)
	})
}

func TestClientLifecycle(t *testing.T) {
	now := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	planID := uuid.New()

	c, err := NewClient("Jose", "Rivas", "v-9876543", "+58 414 000 1122", "Av. Principal", planID, now)
	require.NoError(t, err)
	assert.Equal(t, "V-9876543", c.Cedula)
	assert.Equal(t, "Jose Rivas", c.FullName())
	assert.Nil(t, c.CanceledAt)

	t.Run("switch plan", func(t *testing.T) {
		other := uuid.New()
		require.NoError(t, c.SwitchPlan(other))
		assert.Equal(t, other, c.PlanID)
	})

	t.Run("cancel is one-way", func(t *testing.T) {
		require.NoError(t, c.Cancel(now.AddDate(0, 6, 0)))
		require.NotNil(t, c.CanceledAt)
		assert.Error(t, c.Cancel(now.AddDate(0, 7, 0)))
		assert.Error(t, c.SwitchPlan(uuid.New()))
	})

	t.Run("requires a plan", func(t *testing.T) {
		_, err := NewClient("Ana", "Mora", "V-1122334", "", "", uuid.Nil, now)
		assert.Error(t, err)
	})
}

func TestCasketStock(t *testing.T) {
	c, err := NewCasket("Clasico", "Caoba", valueobject.NewMoneyUSDFromFloat(450), 3)
	require.NoError(t, err)

	require.NoError(t, c.AdjustStock(-2))
	assert.Equal(t, 1, c.Stock)

	assert.Error(t, c.AdjustStock(-5))
	assert.Equal(t, 1, c.Stock)

	require.NoError(t, c.AdjustStock(4))
	assert.Equal(t, 5, c.Stock)
}

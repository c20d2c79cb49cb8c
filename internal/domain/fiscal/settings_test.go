package fiscal

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	assert.Equal(t, "FAC", s.InvoicePrefix)
	assert.Equal(t, int64(1), s.NextInvoiceNumber)
	assert.True(t, s.IVARate.Equal(decimal.NewFromFloat(0.16)))
}

func TestSettings_UpdateBusiness(t *testing.T) {
	t.Run("accepts valid data and normalizes RIF", func(t *testing.T) {
		s := DefaultSettings()

		err := s.UpdateBusiness("Residencias El Bosque", "j-12345678-9", " Av. Principal ")

		require.NoError(t, err)
		assert.Equal(t, "Residencias El Bosque", s.BusinessName)
		assert.Equal(t, "J-12345678-9", s.RIF)
		assert.Equal(t, "Av. Principal", s.Address)
	})

	t.Run("rejects empty business name", func(t *testing.T) {
		s := DefaultSettings()

		err := s.UpdateBusiness("", "J-12345678-9", "")

		assert.Error(t, err)
	})

	t.Run("rejects malformed RIF", func(t *testing.T) {
		s := DefaultSettings()

		err := s.UpdateBusiness("Residencias El Bosque", "X-123", "")

		assert.Error(t, err)
	})

	t.Run("allows empty RIF", func(t *testing.T) {
		s := DefaultSettings()

		err := s.UpdateBusiness("Residencias El Bosque", "", "")

		require.NoError(t, err)
		assert.Empty(t, s.RIF)
	})
}

func TestSettings_SetIVARate(t *testing.T) {
	s := DefaultSettings()

	require.NoError(t, s.SetIVARate(decimal.NewFromFloat(0.08)))
	assert.True(t, s.IVARate.Equal(decimal.NewFromFloat(0.08)))

	assert.Error(t, s.SetIVARate(decimal.NewFromFloat(-0.01)))
	assert.Error(t, s.SetIVARate(decimal.NewFromFloat(1.5)))
}

func TestSettings_SetInvoicePrefix(t *testing.T) {
	s := DefaultSettings()

	require.NoError(t, s.SetInvoicePrefix(" fac "))
	assert.Equal(t, "FAC", s.InvoicePrefix)

	assert.Error(t, s.SetInvoicePrefix(""))
	assert.Error(t, s.SetInvoicePrefix("TOOLONGPREFIX"))
}

func TestSettings_ConsumeInvoiceNumber(t *testing.T) {
	s := DefaultSettings()
	s.NextInvoiceNumber = 41

	first := s.ConsumeInvoiceNumber()
	second := s.ConsumeInvoiceNumber()

	assert.Equal(t, "FAC-00000041", first)
	assert.Equal(t, "FAC-00000042", second)
	assert.Equal(t, int64(43), s.NextInvoiceNumber)
}

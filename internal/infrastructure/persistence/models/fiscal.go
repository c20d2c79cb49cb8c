package models

import (
	"github.com/comunidad/backend/internal/domain/fiscal"
	"github.com/shopspring/decimal"
)

// FiscalSettingsModel is the persistence model for fiscal configuration.
// The table holds a single row; Load always reads the first one.
type FiscalSettingsModel struct {
	AggregateModel
	BusinessName      string          `gorm:"not null"`
	RIF               string          `gorm:""`
	Address           string          `gorm:""`
	InvoicePrefix     string          `gorm:"not null"`
	NextInvoiceNumber int64           `gorm:"not null;default:1"`
	IVARate           decimal.Decimal `gorm:"type:decimal(5,4);not null"`
	LogoObjectKey     string          `gorm:""`
}

// TableName returns the table name for FiscalSettingsModel
func (FiscalSettingsModel) TableName() string {
	return "fiscal_settings"
}

// ToDomain converts FiscalSettingsModel to domain Settings
func (m *FiscalSettingsModel) ToDomain() *fiscal.Settings {
	s := &fiscal.Settings{
		BusinessName:      m.BusinessName,
		RIF:               m.RIF,
		Address:           m.Address,
		InvoicePrefix:     m.InvoicePrefix,
		NextInvoiceNumber: m.NextInvoiceNumber,
		IVARate:           m.IVARate,
		LogoObjectKey:     m.LogoObjectKey,
	}
	m.PopulateAggregateRoot(&s.BaseAggregateRoot)
	return s
}

// FiscalSettingsModelFromDomain converts domain Settings to its persistence model
func FiscalSettingsModelFromDomain(s *fiscal.Settings) *FiscalSettingsModel {
	m := &FiscalSettingsModel{
		BusinessName:      s.BusinessName,
		RIF:               s.RIF,
		Address:           s.Address,
		InvoicePrefix:     s.InvoicePrefix,
		NextInvoiceNumber: s.NextInvoiceNumber,
		IVARate:           s.IVARate,
		LogoObjectKey:     s.LogoObjectKey,
	}
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	return m
}

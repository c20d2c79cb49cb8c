package models

import (
	"time"

	"github.com/comunidad/backend/internal/domain/billing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentModel is the persistence model for monthly dues payments.
// A resident can have at most one payment per billing period; the unique
// index enforces that at the database level.
type PaymentModel struct {
	AggregateModel
	ResidentID  uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_payments_resident_period"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Month       int             `gorm:"not null;uniqueIndex:idx_payments_resident_period"`
	Year        int             `gorm:"not null;uniqueIndex:idx_payments_resident_period"`
	PaymentDate *time.Time      `gorm:""`
	DueDate     time.Time       `gorm:"not null;index"`
	Status      string          `gorm:"not null;index;default:'pending'"`
	Reference   string          `gorm:""`

	Resident *ResidentModel `gorm:"foreignKey:ResidentID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for PaymentModel
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts PaymentModel to a domain Payment
func (m *PaymentModel) ToDomain() *billing.Payment {
	p := &billing.Payment{
		ResidentID:  m.ResidentID,
		Amount:      m.Amount,
		Period:      billing.Period{Month: m.Month, Year: m.Year},
		PaymentDate: m.PaymentDate,
		DueDate:     m.DueDate,
		Status:      billing.PaymentStatus(m.Status),
		Reference:   m.Reference,
	}
	m.PopulateAggregateRoot(&p.BaseAggregateRoot)
	return p
}

// PaymentModelFromDomain converts a domain Payment to its persistence model
func PaymentModelFromDomain(p *billing.Payment) *PaymentModel {
	m := &PaymentModel{
		ResidentID:  p.ResidentID,
		Amount:      p.Amount,
		Month:       p.Period.Month,
		Year:        p.Period.Year,
		PaymentDate: p.PaymentDate,
		DueDate:     p.DueDate,
		Status:      string(p.Status),
		Reference:   p.Reference,
	}
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	return m
}

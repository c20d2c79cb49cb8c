package models

import (
	"time"

	"github.com/comunidad/backend/internal/domain/resident"
	"github.com/google/uuid"
)

// ResidentModel is the persistence model for residents
type ResidentModel struct {
	AggregateModel
	FirstName          string     `gorm:"not null"`
	LastName           string     `gorm:"not null"`
	Cedula             string     `gorm:"not null;uniqueIndex"`
	RegistrationNumber string     `gorm:""`
	Phone              string     `gorm:""`
	Address            string     `gorm:""`
	PaymentState       string     `gorm:"not null;index;default:'pending'"`
	LastPaymentDate    *time.Time `gorm:""`
	NextPaymentDate    *time.Time `gorm:"index"`
}

// TableName returns the table name for ResidentModel
func (ResidentModel) TableName() string {
	return "residents"
}

// ToDomain converts ResidentModel to a domain Resident
func (m *ResidentModel) ToDomain() *resident.Resident {
	r := &resident.Resident{
		FirstName:          m.FirstName,
		LastName:           m.LastName,
		Cedula:             m.Cedula,
		RegistrationNumber: m.RegistrationNumber,
		Phone:              m.Phone,
		Address:            m.Address,
		PaymentState:       resident.PaymentState(m.PaymentState),
		LastPaymentDate:    m.LastPaymentDate,
		NextPaymentDate:    m.NextPaymentDate,
	}
	m.PopulateAggregateRoot(&r.BaseAggregateRoot)
	return r
}

// ResidentModelFromDomain converts a domain Resident to its persistence model
func ResidentModelFromDomain(r *resident.Resident) *ResidentModel {
	m := &ResidentModel{
		FirstName:          r.FirstName,
		LastName:           r.LastName,
		Cedula:             r.Cedula,
		RegistrationNumber: r.RegistrationNumber,
		Phone:              r.Phone,
		Address:            r.Address,
		PaymentState:       string(r.PaymentState),
		LastPaymentDate:    r.LastPaymentDate,
		NextPaymentDate:    r.NextPaymentDate,
	}
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	return m
}

// TokenModel is the persistence model for access tokens
type TokenModel struct {
	AggregateModel
	ResidentID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	Name            string     `gorm:"not null"`
	Status          string     `gorm:"not null;default:'active'"`
	PaymentState    string     `gorm:"not null;default:'pending'"`
	LastPaymentDate *time.Time `gorm:""`
	NextPaymentDate *time.Time `gorm:""`

	Resident *ResidentModel `gorm:"foreignKey:ResidentID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for TokenModel
func (TokenModel) TableName() string {
	return "tokens"
}

// ToDomain converts TokenModel to a domain Token
func (m *TokenModel) ToDomain() *resident.Token {
	t := &resident.Token{
		ResidentID:      m.ResidentID,
		Name:            m.Name,
		Status:          resident.TokenStatus(m.Status),
		PaymentState:    resident.PaymentState(m.PaymentState),
		LastPaymentDate: m.LastPaymentDate,
		NextPaymentDate: m.NextPaymentDate,
	}
	m.PopulateAggregateRoot(&t.BaseAggregateRoot)
	return t
}

// TokenModelFromDomain converts a domain Token to its persistence model
func TokenModelFromDomain(t *resident.Token) *TokenModel {
	m := &TokenModel{
		ResidentID:      t.ResidentID,
		Name:            t.Name,
		Status:          string(t.Status),
		PaymentState:    string(t.PaymentState),
		LastPaymentDate: t.LastPaymentDate,
		NextPaymentDate: t.NextPaymentDate,
	}
	m.FromDomainAggregateRoot(t.BaseAggregateRoot)
	return m
}

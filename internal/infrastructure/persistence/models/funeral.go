package models

import (
	"time"

	"github.com/comunidad/backend/internal/domain/funeral"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FuneralPlanModel is the persistence model for funeral plans
type FuneralPlanModel struct {
	AggregateModel
	Name         string          `gorm:"not null;uniqueIndex"`
	Description  string          `gorm:"type:text"`
	Price        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Installments int             `gorm:"not null;default:1"`
	Active       bool            `gorm:"not null;default:true;index"`
}

// TableName returns the table name for FuneralPlanModel
func (FuneralPlanModel) TableName() string {
	return "funeral_plans"
}

// ToDomain converts FuneralPlanModel to a domain Plan
func (m *FuneralPlanModel) ToDomain() *funeral.Plan {
	p := &funeral.Plan{
		Name:         m.Name,
		Description:  m.Description,
		Price:        m.Price,
		Installments: m.Installments,
		Active:       m.Active,
	}
	m.PopulateAggregateRoot(&p.BaseAggregateRoot)
	return p
}

// FuneralPlanModelFromDomain converts a domain Plan to its persistence model
func FuneralPlanModelFromDomain(p *funeral.Plan) *FuneralPlanModel {
	m := &FuneralPlanModel{
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		Installments: p.Installments,
		Active:       p.Active,
	}
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	return m
}

// FuneralClientModel is the persistence model for funeral plan clients
type FuneralClientModel struct {
	AggregateModel
	FirstName  string     `gorm:"not null"`
	LastName   string     `gorm:"not null"`
	Cedula     string     `gorm:"not null;uniqueIndex"`
	Phone      string     `gorm:""`
	Address    string     `gorm:""`
	PlanID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	JoinedAt   time.Time  `gorm:"not null"`
	CanceledAt *time.Time `gorm:""`

	Plan *FuneralPlanModel `gorm:"foreignKey:PlanID"`
}

// TableName returns the table name for FuneralClientModel
func (FuneralClientModel) TableName() string {
	return "funeral_clients"
}

// ToDomain converts FuneralClientModel to a domain Client
func (m *FuneralClientModel) ToDomain() *funeral.Client {
	c := &funeral.Client{
		FirstName:  m.FirstName,
		LastName:   m.LastName,
		Cedula:     m.Cedula,
		Phone:      m.Phone,
		Address:    m.Address,
		PlanID:     m.PlanID,
		JoinedAt:   m.JoinedAt,
		CanceledAt: m.CanceledAt,
	}
	m.PopulateAggregateRoot(&c.BaseAggregateRoot)
	return c
}

// FuneralClientModelFromDomain converts a domain Client to its persistence model
func FuneralClientModelFromDomain(c *funeral.Client) *FuneralClientModel {
	m := &FuneralClientModel{
		FirstName:  c.FirstName,
		LastName:   c.LastName,
		Cedula:     c.Cedula,
		Phone:      c.Phone,
		Address:    c.Address,
		PlanID:     c.PlanID,
		JoinedAt:   c.JoinedAt,
		CanceledAt: c.CanceledAt,
	}
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	return m
}

// CasketModel is the persistence model for casket inventory
type CasketModel struct {
	AggregateModel
	Model    string          `gorm:"not null"`
	Material string          `gorm:"not null"`
	Price    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Stock    int             `gorm:"not null;default:0"`
}

// TableName returns the table name for CasketModel
func (CasketModel) TableName() string {
	return "caskets"
}

// ToDomain converts CasketModel to a domain Casket
func (m *CasketModel) ToDomain() *funeral.Casket {
	c := &funeral.Casket{
		Model:    m.Model,
		Material: m.Material,
		Price:    m.Price,
		Stock:    m.Stock,
	}
	m.PopulateAggregateRoot(&c.BaseAggregateRoot)
	return c
}

// CasketModelFromDomain converts a domain Casket to its persistence model
func CasketModelFromDomain(c *funeral.Casket) *CasketModel {
	m := &CasketModel{
		Model:    c.Model,
		Material: c.Material,
		Price:    c.Price,
		Stock:    c.Stock,
	}
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	return m
}

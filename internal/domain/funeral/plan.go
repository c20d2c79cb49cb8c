package funeral

import (
	"strings"
	"time"

	"github.com/comunidad/backend/internal/domain/shared"
	"github.com/comunidad/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Plan is a funeral coverage plan offered to the community
type Plan struct {
	shared.BaseAggregateRoot
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Installments int             `json:"installments"` // Monthly installments the price is split into
	Active       bool            `json:"active"`
}

// NewPlan creates a funeral plan
func NewPlan(name, description string, price valueobject.Money, installments int) (*Plan, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_PLAN_NAME", "Plan name cannot be empty")
	}
	if price.Amount().LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_PRICE", "Plan price must be positive")
	}
	if installments < 1 {
		return nil, shared.NewDomainError("INVALID_INSTALLMENTS", "Installments must be at least 1")
	}

	return &Plan{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Description:       strings.TrimSpace(description),
		Price:             price.Amount(),
		Installments:      installments,
		Active:            true,
	}, nil
}

// InstallmentAmount returns the price of one monthly installment
func (p *Plan) InstallmentAmount() decimal.Decimal {
	return p.Price.Div(decimal.NewFromInt(int64(p.Installments))).Round(2)
}

// Deactivate retires the plan from new enrollments
func (p *Plan) Deactivate() {
	p.Active = false
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// UpdatePricing changes price and installment count
func (p *Plan) UpdatePricing(price valueobject.Money, installments int) error {
	if price.Amount().LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_PRICE", "Plan price must be positive")
	}
	if installments < 1 {
		return shared.NewDomainError("INVALID_INSTALLMENTS", "Installments must be at least 1")
	}

	p.Price = price.Amount()
	p.Installments = installments
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

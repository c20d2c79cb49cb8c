package funeral

import (
	"strings"
	"time"

	"github.com/comunidad/backend/internal/domain/shared"
	"github.com/comunidad/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Casket is an inventory item available under the funeral plans
type Casket struct {
	shared.BaseAggregateRoot
	Model    string          `json:"model"`
	Material string          `json:"material"`
	Price    decimal.Decimal `json:"price"`
	Stock    int             `json:"stock"`
}

// NewCasket registers a casket model in inventory
func NewCasket(model, material string, price valueobject.Money, stock int) (*Casket, error) {
	model = strings.TrimSpace(model)
	if model == "" {
		return nil, shared.NewDomainError("INVALID_MODEL", "Casket model cannot be empty")
	}
	if price.Amount().LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_PRICE", "Casket price must be positive")
	}
	if stock < 0 {
		return nil, shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}

	return &Casket{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Model:             model,
		Material:          strings.TrimSpace(material),
		Price:             price.Amount(),
		Stock:             stock,
	}, nil
}

// AdjustStock applies a positive or negative stock delta
func (c *Casket) AdjustStock(delta int) error {
	if c.Stock+delta < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock cannot go negative")
	}
	c.Stock += delta
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

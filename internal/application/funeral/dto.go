package funeral

import (
	"time"

	"github.com/comunidad/backend/internal/domain/funeral"
	"github.com/comunidad/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreatePlanRequest contains the input for creating a funeral plan
type CreatePlanRequest struct {
	Name         string          `json:"name" binding:"required"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price" binding:"required"`
	Installments int             `json:"installments" binding:"required"`
}

// UpdatePlanPricingRequest contains the input for repricing a plan
type UpdatePlanPricingRequest struct {
	Price        decimal.Decimal `json:"price" binding:"required"`
	Installments int             `json:"installments" binding:"required"`
}

// PlanDTO represents a funeral plan for the API
type PlanDTO struct {
	ID                uuid.UUID       `json:"id"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	Price             decimal.Decimal `json:"price"`
	Installments      int             `json:"installments"`
	InstallmentAmount decimal.Decimal `json:"installment_amount"`
	Active            bool            `json:"active"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// ToPlanDTO converts a domain plan to its API representation
func ToPlanDTO(p *funeral.Plan) PlanDTO {
	return PlanDTO{
		ID:                p.ID,
		Name:              p.Name,
		Description:       p.Description,
		Price:             p.Price,
		Installments:      p.Installments,
		InstallmentAmount: p.InstallmentAmount(),
		Active:            p.Active,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

// CreateClientRequest contains the input for enrolling a client
type CreateClientRequest struct {
	FirstName string    `json:"first_name" binding:"required"`
	LastName  string    `json:"last_name" binding:"required"`
	Cedula    string    `json:"cedula" binding:"required"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	PlanID    uuid.UUID `json:"plan_id" binding:"required"`
}

// ClientDTO represents an enrolled client for the API
type ClientDTO struct {
	ID         uuid.UUID  `json:"id"`
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	FullName   string     `json:"full_name"`
	Cedula     string     `json:"cedula"`
	Phone      string     `json:"phone"`
	Address    string     `json:"address"`
	PlanID     uuid.UUID  `json:"plan_id"`
	JoinedAt   time.Time  `json:"joined_at"`
	CanceledAt *time.Time `json:"canceled_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// ToClientDTO converts a domain client to its API representation
func ToClientDTO(c *funeral.Client) ClientDTO {
	return ClientDTO{
		ID:         c.ID,
		FirstName:  c.FirstName,
		LastName:   c.LastName,
		FullName:   c.FullName(),
		Cedula:     c.Cedula,
		Phone:      c.Phone,
		Address:    c.Address,
		PlanID:     c.PlanID,
		JoinedAt:   c.JoinedAt,
		CanceledAt: c.CanceledAt,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

// ClientListResult is a paginated client listing
type ClientListResult = shared.Paginated[ClientDTO]

// CreateCasketRequest contains the input for registering a casket model
type CreateCasketRequest struct {
	Model    string          `json:"model" binding:"required"`
	Material string          `json:"material"`
	Price    decimal.Decimal `json:"price" binding:"required"`
	Stock    int             `json:"stock"`
}

// AdjustStockRequest contains a stock delta for a casket model
type AdjustStockRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// CasketDTO represents a casket inventory item for the API
type CasketDTO struct {
	ID        uuid.UUID       `json:"id"`
	Model     string          `json:"model"`
	Material  string          `json:"material"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ToCasketDTO converts a domain casket to its API representation
func ToCasketDTO(c *funeral.Casket) CasketDTO {
	return CasketDTO{
		ID:        c.ID,
		Model:     c.Model,
		Material:  c.Material,
		Price:     c.Price,
		Stock:     c.Stock,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

package funeral

import (
	"context"

	"github.com/comunidad/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ClientRepository defines persistence operations for funeral-plan clients
type ClientRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Client, error)
	FindByCedula(ctx context.Context, cedula string) (*Client, error)
	FindByPlan(ctx context.Context, planID uuid.UUID, filter shared.Filter) ([]Client, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Client, error)
	Save(ctx context.Context, c *Client) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// PlanRepository defines persistence operations for funeral plans
type PlanRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Plan, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Plan, error)
	Save(ctx context.Context, p *Plan) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CasketRepository defines persistence operations for casket inventory
type CasketRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Casket, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Casket, error)
	Save(ctx context.Context, c *Casket) error
	Delete(ctx context.Context, id uuid.UUID) error
}

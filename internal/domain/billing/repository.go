package billing

import (
	"context"

	"github.com/comunidad/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PaymentRepository defines persistence operations for payments.
// Implementations must back FindByResidentAndPeriod with a unique index on
// (resident_id, month, year) so the duplicate-period check cannot race.
type PaymentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)
	FindByResidentAndPeriod(ctx context.Context, residentID uuid.UUID, period Period) (*Payment, error)
	FindByResident(ctx context.Context, residentID uuid.UUID, filter shared.Filter) ([]Payment, error)
	FindByStatus(ctx context.Context, status PaymentStatus, filter shared.Filter) ([]Payment, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Payment, error)
	Create(ctx context.Context, payment *Payment) error
	Save(ctx context.Context, payment *Payment) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

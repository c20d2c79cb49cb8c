package resident

import (
	"context"
	"time"

	"github.com/comunidad/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Repository defines persistence operations for residents
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Resident, error)
	FindByCedula(ctx context.Context, cedula string) (*Resident, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Resident, error)
	FindByPaymentState(ctx context.Context, state PaymentState, filter shared.Filter) ([]Resident, error)
	// FindPendingDueBefore returns residents still pending whose next
	// payment date is strictly before the cutoff. Used by the overdue sweep.
	FindPendingDueBefore(ctx context.Context, cutoff time.Time) ([]Resident, error)
	// FindPendingDueBetween returns residents still pending whose next
	// payment date falls inside [from, to]. Used by the reminder run.
	FindPendingDueBetween(ctx context.Context, from, to time.Time) ([]Resident, error)
	Save(ctx context.Context, r *Resident) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// TokenRepository defines persistence operations for access tokens
type TokenRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Token, error)
	FindByResident(ctx context.Context, residentID uuid.UUID) ([]Token, error)
	Save(ctx context.Context, t *Token) error
	// MirrorPaymentStateForResident rewrites the payment-state fields of
	// every token owned by the resident in one statement.
	MirrorPaymentStateForResident(ctx context.Context, residentID uuid.UUID, state PaymentState, lastPayment, nextPayment *time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error
}

package resident

import (
	"time"

	"github.com/comunidad/backend/internal/domain/billing"
	"github.com/comunidad/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ResidentRegisteredEvent is raised when a resident is registered
type ResidentRegisteredEvent struct {
	shared.BaseDomainEvent
	ResidentID uuid.UUID `json:"resident_id"`
	Cedula     string    `json:"cedula"`
	FullName   string    `json:"full_name"`
}

// EventType returns the event type name
func (e *ResidentRegisteredEvent) EventType() string {
	return "ResidentRegistered"
}

// NewResidentRegisteredEvent creates a new ResidentRegisteredEvent
func NewResidentRegisteredEvent(r *Resident) *ResidentRegisteredEvent {
	return &ResidentRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("ResidentRegistered", "Resident", r.ID),
		ResidentID:      r.ID,
		Cedula:          r.Cedula,
		FullName:        r.FullName(),
	}
}

// ResidentPaidEvent is raised when a resident's cycle is settled
type ResidentPaidEvent struct {
	shared.BaseDomainEvent
	ResidentID      uuid.UUID      `json:"resident_id"`
	Period          billing.Period `json:"period"`
	NextPaymentDate *time.Time     `json:"next_payment_date"`
}

// EventType returns the event type name
func (e *ResidentPaidEvent) EventType() string {
	return "ResidentPaid"
}

// NewResidentPaidEvent creates a new ResidentPaidEvent
func NewResidentPaidEvent(r *Resident, period billing.Period) *ResidentPaidEvent {
	return &ResidentPaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("ResidentPaid", "Resident", r.ID),
		ResidentID:      r.ID,
		Period:          period,
		NextPaymentDate: r.NextPaymentDate,
	}
}

// ResidentDelinquentEvent is raised when a resident is escalated past the
// grace period
type ResidentDelinquentEvent struct {
	shared.BaseDomainEvent
	ResidentID uuid.UUID    `json:"resident_id"`
	State      PaymentState `json:"state"`
}

// EventType returns the event type name
func (e *ResidentDelinquentEvent) EventType() string {
	return "ResidentDelinquent"
}

// NewResidentDelinquentEvent creates a new ResidentDelinquentEvent
func NewResidentDelinquentEvent(r *Resident) *ResidentDelinquentEvent {
	return &ResidentDelinquentEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("ResidentDelinquent", "Resident", r.ID),
		ResidentID:      r.ID,
		State:           r.PaymentState,
	}
}

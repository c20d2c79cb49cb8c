package billing

import (
	"github.com/comunidad/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentRecordedEvent is raised when a dues payment is recorded
type PaymentRecordedEvent struct {
	shared.BaseDomainEvent
	PaymentID  uuid.UUID       `json:"payment_id"`
	ResidentID uuid.UUID       `json:"resident_id"`
	Amount     decimal.Decimal `json:"amount"`
	Period     Period          `json:"period"`
}

// EventType returns the event type name
func (e *PaymentRecordedEvent) EventType() string {
	return "PaymentRecorded"
}

// NewPaymentRecordedEvent creates a new PaymentRecordedEvent
func NewPaymentRecordedEvent(p *Payment) *PaymentRecordedEvent {
	return &PaymentRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("PaymentRecorded", "Payment", p.ID),
		PaymentID:       p.ID,
		ResidentID:      p.ResidentID,
		Amount:          p.Amount,
		Period:          p.Period,
	}
}

// PaymentValidatedEvent is raised when an administrator confirms a payment
type PaymentValidatedEvent struct {
	shared.BaseDomainEvent
	PaymentID  uuid.UUID `json:"payment_id"`
	ResidentID uuid.UUID `json:"resident_id"`
	Period     Period    `json:"period"`
}

// EventType returns the event type name
func (e *PaymentValidatedEvent) EventType() string {
	return "PaymentValidated"
}

// NewPaymentValidatedEvent creates a new PaymentValidatedEvent
func NewPaymentValidatedEvent(p *Payment) *PaymentValidatedEvent {
	return &PaymentValidatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("PaymentValidated", "Payment", p.ID),
		PaymentID:       p.ID,
		ResidentID:      p.ResidentID,
		Period:          p.Period,
	}
}

package billing

import (
	"fmt"
	"time"

	"github.com/comunidad/backend/internal/domain/shared"
	"github.com/comunidad/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentStatus represents the status of a recorded payment
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"   // Registered but not yet settled
	PaymentStatusCompleted PaymentStatus = "completed" // Settled at registration time
	PaymentStatusPaid      PaymentStatus = "paid"      // Confirmed by an administrator
	PaymentStatusOverdue   PaymentStatus = "overdue"   // Registered after its cycle lapsed
)

// IsValid checks if the status is a valid PaymentStatus
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusPaid, PaymentStatusOverdue:
		return true
	}
	return false
}

// String returns the string representation of PaymentStatus
func (s PaymentStatus) String() string {
	return string(s)
}

// IsSettled returns true once the payment counts toward the resident's cycle
func (s PaymentStatus) IsSettled() bool {
	return s == PaymentStatusCompleted || s == PaymentStatusPaid
}

// Payment represents one resident's dues payment for a single billing
// period. Amount and dates are immutable once the payment is validated.
type Payment struct {
	shared.BaseAggregateRoot
	ResidentID  uuid.UUID       `json:"resident_id"`
	Amount      decimal.Decimal `json:"amount"`
	Period      Period          `json:"period"`
	PaymentDate *time.Time      `json:"payment_date"`
	DueDate     time.Time       `json:"due_date"`
	Status      PaymentStatus   `json:"status"`
	Reference   string          `json:"reference"` // Bank/transfer reference, optional
}

// NewPayment records a payment for the given resident and period.
// The payment is created settled (completed) with the due date fixed to the
// period's cycle end.
func NewPayment(residentID uuid.UUID, amount valueobject.Money, period Period, now time.Time) (*Payment, error) {
	if residentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_RESIDENT", "Resident ID cannot be empty")
	}
	if amount.Amount().LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}

	paymentDate := now
	p := &Payment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ResidentID:        residentID,
		Amount:            amount.Amount(),
		Period:            period,
		PaymentDate:       &paymentDate,
		DueDate:           DueDate(period),
		Status:            PaymentStatusCompleted,
	}

	p.AddDomainEvent(NewPaymentRecordedEvent(p))

	return p, nil
}

// WithReference attaches a bank/transfer reference
func (p *Payment) WithReference(reference string) *Payment {
	p.Reference = reference
	return p
}

// MarkValidated confirms the payment. The payment date is stamped with the
// validation time and the record becomes immutable.
func (p *Payment) MarkValidated(now time.Time) error {
	if p.Status == PaymentStatusPaid {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Payment %s has already been validated", p.ID))
	}

	p.Status = PaymentStatusPaid
	p.PaymentDate = &now
	p.UpdatedAt = now
	p.IncrementVersion()

	p.AddDomainEvent(NewPaymentValidatedEvent(p))

	return nil
}

// GetAmountMoney returns the amount as a Money value object
func (p *Payment) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(p.Amount)
}

// CoversCurrentOrFutureCycle reports whether the payment's period is the
// calendar month of now or later. Only such payments advance the resident's
// payment state.
func (p *Payment) CoversCurrentOrFutureCycle(now time.Time) bool {
	return p.Period.IsOnOrAfter(CurrentPeriod(now))
}

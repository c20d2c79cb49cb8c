package resident

import (
	"strings"
	"time"

	"github.com/comunidad/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// TokenStatus represents the activation state of an access token
type TokenStatus string

const (
	TokenStatusActive   TokenStatus = "active"
	TokenStatusInactive TokenStatus = "inactive"
)

// IsValid checks if the status is a valid TokenStatus
func (s TokenStatus) IsValid() bool {
	return s == TokenStatusActive || s == TokenStatusInactive
}

// Token is an access credential owned by a resident. Its payment-state
// fields mirror the owner's and are rewritten in bulk whenever one of the
// owner's payments is validated.
type Token struct {
	shared.BaseAggregateRoot
	ResidentID      uuid.UUID    `json:"resident_id"`
	Name            string       `json:"name"`
	Status          TokenStatus  `json:"status"`
	PaymentState    PaymentState `json:"payment_state"`
	LastPaymentDate *time.Time   `json:"last_payment_date"`
	NextPaymentDate *time.Time   `json:"next_payment_date"`
}

// NewToken issues a token for a resident. New tokens start active and
// inherit the pending payment state.
func NewToken(residentID uuid.UUID, name string) (*Token, error) {
	if residentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_RESIDENT", "Resident ID cannot be empty")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_TOKEN_NAME", "Token name cannot be empty")
	}

	return &Token{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ResidentID:        residentID,
		Name:              name,
		Status:            TokenStatusActive,
		PaymentState:      PaymentStatePending,
	}, nil
}

// MirrorPaymentState copies the owner's payment-state fields onto the token
func (t *Token) MirrorPaymentState(state PaymentState, lastPayment, nextPayment *time.Time, now time.Time) {
	t.PaymentState = state
	t.LastPaymentDate = lastPayment
	t.NextPaymentDate = nextPayment
	t.UpdatedAt = now
	t.IncrementVersion()
}

// Activate enables the token
func (t *Token) Activate() {
	t.Status = TokenStatusActive
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
}

// Deactivate disables the token
func (t *Token) Deactivate() {
	t.Status = TokenStatusInactive
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
}

// IsActive returns true while the token grants access
func (t *Token) IsActive() bool {
	return t.Status == TokenStatusActive
}

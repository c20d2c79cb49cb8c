package billing

import (
	"time"

	"github.com/comunidad/backend/internal/domain/billing"
	"github.com/comunidad/backend/internal/domain/notification"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecordPaymentRequest is the input for recording a monthly payment.
// Month and Year default to the current period when left zero.
type RecordPaymentRequest struct {
	ResidentID uuid.UUID       `json:"resident_id" binding:"required"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	Month      int             `json:"month"`
	Year       int             `json:"year"`
	Reference  string          `json:"reference"`
}

// PaymentDTO is the API representation of a payment.
type PaymentDTO struct {
	ID          uuid.UUID       `json:"id"`
	ResidentID  uuid.UUID       `json:"resident_id"`
	Amount      decimal.Decimal `json:"amount"`
	Month       int             `json:"month"`
	Year        int             `json:"year"`
	Status      string          `json:"status"`
	PaymentDate *time.Time      `json:"payment_date,omitempty"`
	DueDate     time.Time       `json:"due_date"`
	Reference   string          `json:"reference,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ToPaymentDTO converts a domain payment to its API representation.
func ToPaymentDTO(p *billing.Payment) *PaymentDTO {
	return &PaymentDTO{
		ID:          p.ID,
		ResidentID:  p.ResidentID,
		Amount:      p.Amount,
		Month:       p.Period.Month,
		Year:        p.Period.Year,
		Status:      p.Status.String(),
		PaymentDate: p.PaymentDate,
		DueDate:     p.DueDate,
		Reference:   p.Reference,
		CreatedAt:   p.CreatedAt,
	}
}

// ToPaymentDTOs converts a slice of domain payments.
func ToPaymentDTOs(payments []billing.Payment) []*PaymentDTO {
	dtos := make([]*PaymentDTO, 0, len(payments))
	for i := range payments {
		dtos = append(dtos, ToPaymentDTO(&payments[i]))
	}
	return dtos
}

// SweepResult summarizes one overdue sweep run.
type SweepResult struct {
	Skipped      bool `json:"skipped"` // True when the run fell inside the grace period
	Updated      int  `json:"updated"`
	Notified     int  `json:"notified"`
	SendFailures int  `json:"send_failures"`
}

// ReminderResult summarizes one reminder run.
type ReminderResult struct {
	Candidates   int `json:"candidates"`
	Notified     int `json:"notified"`
	SendFailures int `json:"send_failures"`
}

// NotificationDTO is one entry of a resident's notification log.
type NotificationDTO struct {
	ID         uuid.UUID `json:"id"`
	ResidentID uuid.UUID `json:"resident_id"`
	Channel    string    `json:"channel"`
	Kind       string    `json:"kind"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
}

// ToNotificationDTO converts a log entry to its API representation.
func ToNotificationDTO(n *notification.Notification) NotificationDTO {
	return NotificationDTO{
		ID:         n.ID,
		ResidentID: n.ResidentID,
		Channel:    string(n.Channel),
		Kind:       string(n.Kind),
		Message:    n.Message,
		CreatedAt:  n.CreatedAt,
	}
}

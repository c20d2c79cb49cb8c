package notification

import (
	"context"

	"github.com/google/uuid"
)

// Recipient is the minimal view of a resident the sender needs
type Recipient struct {
	Name   string
	Phone  string
	Amount string // Formatted dues amount, optional
}

// Sender dispatches messages over an external channel. Implementations
// return an error per send; batch callers record the failure and continue
// with the next recipient rather than aborting.
type Sender interface {
	SendReminder(ctx context.Context, to Recipient) (string, error)
	SendOverdueNotice(ctx context.Context, to Recipient) (string, error)
}

// Repository defines persistence for the notification log
type Repository interface {
	Append(ctx context.Context, n *Notification) error
	FindByResident(ctx context.Context, residentID uuid.UUID) ([]Notification, error)
}

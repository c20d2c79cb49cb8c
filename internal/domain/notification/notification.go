package notification

import (
	"strings"

	"github.com/comunidad/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Channel identifies the delivery channel of a notification
type Channel string

const (
	ChannelWhatsApp Channel = "whatsapp"
)

// Kind classifies what prompted the notification
type Kind string

const (
	KindReminder      Kind = "reminder"
	KindOverdueNotice Kind = "overdue_notice"
)

// Notification is one entry in the append-only log of messages sent to a
// resident. Entries are never mutated after creation.
type Notification struct {
	shared.BaseEntity
	ResidentID uuid.UUID `json:"resident_id"`
	Channel    Channel   `json:"channel"`
	Kind       Kind      `json:"kind"`
	Message    string    `json:"message"`
}

// NewNotification appends a log entry for a sent message
func NewNotification(residentID uuid.UUID, channel Channel, kind Kind, message string) (*Notification, error) {
	if residentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_RESIDENT", "Resident ID cannot be empty")
	}
	if strings.TrimSpace(message) == "" {
		return nil, shared.NewDomainError("INVALID_MESSAGE", "Message cannot be empty")
	}

	return &Notification{
		BaseEntity: shared.NewBaseEntity(),
		ResidentID: residentID,
		Channel:    channel,
		Kind:       kind,
		Message:    message,
	}, nil
}

package models

import (
	"github.com/comunidad/backend/internal/domain/notification"
	"github.com/google/uuid"
)

// NotificationModel is the persistence model for the notification log
type NotificationModel struct {
	BaseModel
	ResidentID uuid.UUID `gorm:"type:uuid;not null;index"`
	Channel    string    `gorm:"not null"`
	Kind       string    `gorm:"not null"`
	Message    string    `gorm:"type:text;not null"`

	Resident *ResidentModel `gorm:"foreignKey:ResidentID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for NotificationModel
func (NotificationModel) TableName() string {
	return "notifications"
}

// ToDomain converts NotificationModel to a domain Notification
func (m *NotificationModel) ToDomain() *notification.Notification {
	return &notification.Notification{
		BaseEntity: m.BaseModel.ToDomain(),
		ResidentID: m.ResidentID,
		Channel:    notification.Channel(m.Channel),
		Kind:       notification.Kind(m.Kind),
		Message:    m.Message,
	}
}

// NotificationModelFromDomain converts a domain Notification to its persistence model
func NotificationModelFromDomain(n *notification.Notification) *NotificationModel {
	m := &NotificationModel{
		ResidentID: n.ResidentID,
		Channel:    string(n.Channel),
		Kind:       string(n.Kind),
		Message:    n.Message,
	}
	m.FromDomainBaseEntity(n.BaseEntity)
	return m
}

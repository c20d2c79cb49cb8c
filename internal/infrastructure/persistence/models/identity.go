package models

import (
	"time"

	"github.com/comunidad/backend/internal/domain/identity"
)

// UserModel is the persistence model for back-office users
type UserModel struct {
	AggregateModel
	Username          string     `gorm:"not null;uniqueIndex"`
	DisplayName       string     `gorm:""`
	PasswordHash      string     `gorm:"not null"`
	Role              string     `gorm:"not null;index"`
	Status            string     `gorm:"not null;index;default:'active'"`
	LastLoginAt       *time.Time `gorm:""`
	LastLoginIP       string     `gorm:""`
	FailedAttempts    int        `gorm:"not null;default:0"`
	LockedUntil       *time.Time `gorm:""`
	PasswordChangedAt *time.Time `gorm:""`
}

// TableName returns the table name for UserModel
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts UserModel to a domain User
func (m *UserModel) ToDomain() *identity.User {
	u := &identity.User{
		Username:          m.Username,
		DisplayName:       m.DisplayName,
		PasswordHash:      m.PasswordHash,
		Role:              identity.Role(m.Role),
		Status:            identity.UserStatus(m.Status),
		LastLoginAt:       m.LastLoginAt,
		LastLoginIP:       m.LastLoginIP,
		FailedAttempts:    m.FailedAttempts,
		LockedUntil:       m.LockedUntil,
		PasswordChangedAt: m.PasswordChangedAt,
	}
	m.PopulateAggregateRoot(&u.BaseAggregateRoot)
	return u
}

// UserModelFromDomain converts a domain User to its persistence model
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{
		Username:          u.Username,
		DisplayName:       u.DisplayName,
		PasswordHash:      u.PasswordHash,
		Role:              string(u.Role),
		Status:            string(u.Status),
		LastLoginAt:       u.LastLoginAt,
		LastLoginIP:       u.LastLoginIP,
		FailedAttempts:    u.FailedAttempts,
		LockedUntil:       u.LockedUntil,
		PasswordChangedAt: u.PasswordChangedAt,
	}
	m.FromDomainAggregateRoot(u.BaseAggregateRoot)
	return m
}

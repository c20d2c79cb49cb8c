package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/comunidad/backend/internal/domain/notification"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NotificationModelSQLite is a SQLite-compatible version of NotificationModel for testing
type NotificationModelSQLite struct {
	ID         string `gorm:"primaryKey"`
	ResidentID string `gorm:"index;not null"`
	Channel    string `gorm:"not null"`
	Kind       string `gorm:"not null"`
	Message    string `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (NotificationModelSQLite) TableName() string {
	return "notifications"
}

func setupNotificationTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&NotificationModelSQLite{})
	require.NoError(t, err)

	return db
}

func TestGormNotificationRepository_AppendAndFind(t *testing.T) {
	db := setupNotificationTestDB(t)
	repo := NewGormNotificationRepository(db)
	ctx := context.Background()

	residentID := uuid.New()

	first, err := notification.NewNotification(residentID, notification.ChannelWhatsApp, notification.KindReminder, "Su cuota vence pronto")
	require.NoError(t, err)
	first.CreatedAt = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Append(ctx, first))

	second, err := notification.NewNotification(residentID, notification.ChannelWhatsApp, notification.KindOverdueNotice, "Su cuota está vencida")
	require.NoError(t, err)
	second.CreatedAt = time.Date(2024, 4, 5, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Append(ctx, second))

	other, err := notification.NewNotification(uuid.New(), notification.ChannelWhatsApp, notification.KindReminder, "Otro residente")
	require.NoError(t, err)
	require.NoError(t, repo.Append(ctx, other))

	t.Run("returns the resident's log newest first", func(t *testing.T) {
		found, err := repo.FindByResident(ctx, residentID)
		require.NoError(t, err)
		require.Len(t, found, 2)
		assert.Equal(t, notification.KindOverdueNotice, found[0].Kind)
		assert.Equal(t, notification.KindReminder, found[1].Kind)
	})

	t.Run("returns empty log for unknown resident", func(t *testing.T) {
		found, err := repo.FindByResident(ctx, uuid.New())
		require.NoError(t, err)
		assert.Empty(t, found)
	})
}

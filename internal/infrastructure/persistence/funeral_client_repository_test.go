package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/comunidad/backend/internal/domain/funeral"
	"github.com/comunidad/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// FuneralClientModelSQLite is a SQLite-compatible version of FuneralClientModel for testing
type FuneralClientModelSQLite struct {
	ID         string `gorm:"primaryKey"`
	FirstName  string `gorm:"not null"`
	LastName   string `gorm:"not null"`
	Cedula     string `gorm:"not null;uniqueIndex"`
	Phone      string
	Address    string
	PlanID     string    `gorm:"index;not null"`
	JoinedAt   time.Time `gorm:"not null"`
	CanceledAt *time.Time
	Version    int `gorm:"not null;default:1"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (FuneralClientModelSQLite) TableName() string {
	return "funeral_clients"
}

func setupFuneralClientTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&FuneralClientModelSQLite{})
	require.NoError(t, err)

	return db
}

func mustNewClient(t *testing.T, cedula string, planID uuid.UUID) *funeral.Client {
	t.Helper()
	now := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	c, err := funeral.NewClient("Pedro", "Mendoza", cedula, "+584141112233", "Sector 2", planID, now)
	require.NoError(t, err)
	return c
}

func TestGormFuneralClientRepository_SaveAndFind(t *testing.T) {
	db := setupFuneralClientTestDB(t)
	repo := NewGormFuneralClientRepository(db)
	ctx := context.Background()

	planID := uuid.New()

	t.Run("saves and finds client by cedula", func(t *testing.T) {
		c := mustNewClient(t, "V-44444444", planID)
		require.NoError(t, repo.Save(ctx, c))

		found, err := repo.FindByCedula(ctx, "V-44444444")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, c.ID, found.ID)
		assert.Equal(t, planID, found.PlanID)
	})

	t.Run("returns nil for unknown cedula", func(t *testing.T) {
		found, err := repo.FindByCedula(ctx, "V-99999999")
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}

func TestGormFuneralClientRepository_FindByPlan(t *testing.T) {
	db := setupFuneralClientTestDB(t)
	repo := NewGormFuneralClientRepository(db)
	ctx := context.Background()

	planID := uuid.New()
	require.NoError(t, repo.Save(ctx, mustNewClient(t, "V-50000001", planID)))
	require.NoError(t, repo.Save(ctx, mustNewClient(t, "V-50000002", planID)))
	require.NoError(t, repo.Save(ctx, mustNewClient(t, "V-50000003", uuid.New())))

	found, err := repo.FindByPlan(ctx, planID, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Len(t, found, 2)

	count, err := repo.Count(ctx, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestGormFuneralClientRepository_CanceledFilter(t *testing.T) {
	db := setupFuneralClientTestDB(t)
	repo := NewGormFuneralClientRepository(db)
	ctx := context.Background()

	active := mustNewClient(t, "V-60000001", uuid.New())
	require.NoError(t, repo.Save(ctx, active))

	canceled := mustNewClient(t, "V-60000002", uuid.New())
	require.NoError(t, canceled.Cancel(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, repo.Save(ctx, canceled))

	filter := shared.DefaultFilter()
	filter.Filters["canceled"] = true
	found, err := repo.FindAll(ctx, filter)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, canceled.ID, found[0].ID)

	filter.Filters["canceled"] = false
	found, err = repo.FindAll(ctx, filter)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, active.ID, found[0].ID)
}

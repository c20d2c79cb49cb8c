package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/comunidad/backend/internal/domain/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// UserModelSQLite is a SQLite-compatible version of UserModel for testing
type UserModelSQLite struct {
	ID                string `gorm:"primaryKey"`
	Username          string `gorm:"not null;uniqueIndex"`
	DisplayName       string
	PasswordHash      string `gorm:"not null"`
	Role              string `gorm:"not null"`
	Status            string `gorm:"not null;default:'active'"`
	LastLoginAt       *time.Time
	LastLoginIP       string
	FailedAttempts    int `gorm:"not null;default:0"`
	LockedUntil       *time.Time
	PasswordChangedAt *time.Time
	Version           int `gorm:"not null;default:1"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (UserModelSQLite) TableName() string {
	return "users"
}

func setupUserTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&UserModelSQLite{})
	require.NoError(t, err)

	return db
}

func mustNewUser(t *testing.T, username string, role identity.Role) *identity.User {
	t.Helper()
	u, err := identity.NewUser(username, "Passw0rd!Segura", role)
	require.NoError(t, err)
	return u
}

func TestGormUserRepository_CreateAndFind(t *testing.T) {
	db := setupUserTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	t.Run("creates and finds user by username", func(t *testing.T) {
		u := mustNewUser(t, "admin1", identity.RoleAdmin)
		require.NoError(t, repo.Create(ctx, u))

		found, err := repo.FindByUsername(ctx, "ADMIN1")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, u.ID, found.ID)
		assert.Equal(t, identity.RoleAdmin, found.Role)
	})

	t.Run("returns nil for unknown username", func(t *testing.T) {
		found, err := repo.FindByUsername(ctx, "nadie")
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("exists by username is case-insensitive", func(t *testing.T) {
		exists, err := repo.ExistsByUsername(ctx, "Admin1")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsByUsername(ctx, "otro")
		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestGormUserRepository_FindAll(t *testing.T) {
	db := setupUserTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	admin := mustNewUser(t, "admin1", identity.RoleAdmin)
	require.NoError(t, repo.Create(ctx, admin))

	operator := mustNewUser(t, "operador1", identity.RoleOperator)
	require.NoError(t, operator.SetDisplayName("María Pérez"))
	require.NoError(t, repo.Create(ctx, operator))

	locked := mustNewUser(t, "operador2", identity.RoleOperator)
	locked.Status = identity.UserStatusLocked
	require.NoError(t, repo.Create(ctx, locked))

	t.Run("filters by role with total", func(t *testing.T) {
		role := identity.RoleOperator
		users, total, err := repo.FindAll(ctx, identity.UserFilter{Role: &role, Page: 1, PageSize: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, users, 2)
	})

	t.Run("filters by status", func(t *testing.T) {
		status := identity.UserStatusLocked
		users, total, err := repo.FindAll(ctx, identity.UserFilter{Status: &status, Page: 1, PageSize: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, users, 1)
		assert.Equal(t, "operador2", users[0].Username)
	})

	t.Run("keyword matches display name", func(t *testing.T) {
		users, total, err := repo.FindAll(ctx, identity.UserFilter{Keyword: "maría", Page: 1, PageSize: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, users, 1)
		assert.Equal(t, "operador1", users[0].Username)
	})

	t.Run("paginates while reporting the full total", func(t *testing.T) {
		users, total, err := repo.FindAll(ctx, identity.UserFilter{Page: 1, PageSize: 2})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, users, 2)
	})
}

func TestGormUserRepository_UpdateAndDelete(t *testing.T) {
	db := setupUserTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	t.Run("update persists changed fields", func(t *testing.T) {
		u := mustNewUser(t, "admin1", identity.RoleAdmin)
		require.NoError(t, repo.Create(ctx, u))

		require.NoError(t, u.SetDisplayName("Administrador General"))
		require.NoError(t, repo.Update(ctx, u))

		found, err := repo.FindByID(ctx, u.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "Administrador General", found.DisplayName)
	})

	t.Run("delete removes the user", func(t *testing.T) {
		u := mustNewUser(t, "temporal", identity.RoleOperator)
		require.NoError(t, repo.Create(ctx, u))

		require.NoError(t, repo.Delete(ctx, u.ID))

		found, err := repo.FindByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("count reflects remaining users", func(t *testing.T) {
		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})
}

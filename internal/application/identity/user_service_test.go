package identity

import (
	"context"
	"testing"

	"github.com/comunidad/backend/internal/domain/identity"
	"github.com/comunidad/backend/internal/infrastructure/auth"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newUserService(repo *MockUserRepository, blacklist auth.TokenBlacklist) *UserService {
	return NewUserService(repo, blacklist, zap.NewNop())
}

func TestUserService_Create(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newUserService(repo, auth.NewInMemoryTokenBlacklist())

	repo.On("ExistsByUsername", mock.Anything, "operador1").Return(false, nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*identity.User")).Return(nil)

	dto, err := svc.Create(context.Background(), CreateUserInput{
		Username:    "Operador1",
		Password:    "secreto123",
		DisplayName: "María Pérez",
		Role:        identity.RoleOperator,
	})

	require.NoError(t, err)
	assert.Equal(t, "operador1", dto.Username)
	assert.Equal(t, "María Pérez", dto.DisplayName)
	assert.Equal(t, string(identity.RoleOperator), dto.Role)
	assert.Equal(t, string(identity.UserStatusActive), dto.Status)
	repo.AssertExpectations(t)
}

func TestUserService_Create_DuplicateUsername(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newUserService(repo, auth.NewInMemoryTokenBlacklist())

	repo.On("ExistsByUsername", mock.Anything, "operador1").Return(true, nil)

	// Mixed case must still collide with the stored lowercased name
	_, err := svc.Create(context.Background(), CreateUserInput{
		Username: "Operador1",
		Password: "secreto123",
		Role:     identity.RoleOperator,
	})

	assert.Equal(t, "USERNAME_EXISTS", domainCode(t, err))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUserService_Create_InvalidRole(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newUserService(repo, auth.NewInMemoryTokenBlacklist())

	repo.On("ExistsByUsername", mock.Anything, "operador1").Return(false, nil)

	_, err := svc.Create(context.Background(), CreateUserInput{
		Username: "operador1",
		Password: "secreto123",
		Role:     identity.Role("superuser"),
	})

	assert.Error(t, err)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUserService_Update_RoleChange(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newUserService(repo, auth.NewInMemoryTokenBlacklist())

	user, err := identity.NewUser("operador1", "secreto123", identity.RoleOperator)
	require.NoError(t, err)
	repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	repo.On("Update", mock.Anything, user).Return(nil)

	newRole := identity.RoleAdmin
	dto, err := svc.Update(context.Background(), UpdateUserInput{ID: user.ID, Role: &newRole})

	require.NoError(t, err)
	assert.Equal(t, string(identity.RoleAdmin), dto.Role)
}

func TestUserService_Update_NotFound(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newUserService(repo, auth.NewInMemoryTokenBlacklist())

	id := uuid.New()
	repo.On("FindByID", mock.Anything, id).Return(nil, nil)

	_, err := svc.Update(context.Background(), UpdateUserInput{ID: id})

	assert.Equal(t, "NOT_FOUND", domainCode(t, err))
}

func TestUserService_List_Pagination(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newUserService(repo, auth.NewInMemoryTokenBlacklist())

	u1, err := identity.NewUser("admin", "secreto123", identity.RoleAdmin)
	require.NoError(t, err)
	u2, err := identity.NewUser("operador1", "secreto123", identity.RoleOperator)
	require.NoError(t, err)

	repo.On("FindAll", mock.Anything, mock.MatchedBy(func(f identity.UserFilter) bool {
		return f.Page == 1 && f.PageSize == 20
	})).Return([]*identity.User{u1, u2}, int64(41), nil)

	result, err := svc.List(context.Background(), identity.UserFilter{})

	require.NoError(t, err)
	assert.Len(t, result.Users, 2)
	assert.Equal(t, int64(41), result.Total)
	assert.Equal(t, 3, result.TotalPages)
}

func TestUserService_ResetPassword(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newUserService(repo, auth.NewInMemoryTokenBlacklist())

	user, err := identity.NewUser("operador1", "secreto123", identity.RoleOperator)
	require.NoError(t, err)
	repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	repo.On("Update", mock.Anything, user).Return(nil)

	require.NoError(t, svc.ResetPassword(context.Background(), user.ID, "otraclave77"))
	assert.True(t, user.VerifyPassword("otraclave77"))
}

func TestUserService_Deactivate_RevokesSessions(t *testing.T) {
	repo := new(MockUserRepository)
	blacklist := auth.NewInMemoryTokenBlacklist()
	svc := newUserService(repo, blacklist)

	user, err := identity.NewUser("operador1", "secreto123", identity.RoleOperator)
	require.NoError(t, err)
	repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	repo.On("Update", mock.Anything, user).Return(nil)

	issuedBefore := user.CreatedAt
	require.NoError(t, svc.Deactivate(context.Background(), user.ID))

	assert.False(t, user.IsActive())
	invalidated, err := blacklist.IsUserTokenInvalidated(context.Background(), user.ID.String(), issuedBefore)
	require.NoError(t, err)
	assert.True(t, invalidated)
}

func TestUserService_Delete(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newUserService(repo, auth.NewInMemoryTokenBlacklist())

	user, err := identity.NewUser("operador1", "secreto123", identity.RoleOperator)
	require.NoError(t, err)
	repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	repo.On("Delete", mock.Anything, user.ID).Return(nil)

	require.NoError(t, svc.Delete(context.Background(), user.ID))
	repo.AssertExpectations(t)
}

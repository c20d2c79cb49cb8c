package identity

import (
	"context"
	"strings"
	"time"

	"github.com/comunidad/backend/internal/domain/identity"
	"github.com/comunidad/backend/internal/domain/shared"
	"github.com/comunidad/backend/internal/infrastructure/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserService handles panel account management. Only admins reach these
// operations; the authorization check lives in the HTTP layer.
type UserService struct {
	userRepo  identity.UserRepository
	blacklist auth.TokenBlacklist
	logger    *zap.Logger
}

func NewUserService(userRepo identity.UserRepository, blacklist auth.TokenBlacklist, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo:  userRepo,
		blacklist: blacklist,
		logger:    logger,
	}
}

// load fetches a user or returns the uniform NOT_FOUND error.
func (s *UserService) load(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil || user == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "User not found")
	}
	return user, nil
}

// mutate loads a user, applies fn and persists the result. Domain
// errors from fn pass through untouched.
func (s *UserService) mutate(ctx context.Context, id uuid.UUID, action string, fn func(*identity.User) error) (*identity.User, error) {
	user, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(user); err != nil {
		return nil, err
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("Failed to "+action, zap.Error(err), zap.String("user_id", id.String()))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to "+action)
	}
	return user, nil
}

// Create creates a new user after checking username availability.
// Usernames are stored lowercased, so the availability check runs on
// the normalized form.
func (s *UserService) Create(ctx context.Context, input CreateUserInput) (*UserDTO, error) {
	username := strings.ToLower(strings.TrimSpace(input.Username))
	s.logger.Info("Creating new user", zap.String("username", username))

	exists, err := s.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		s.logger.Error("Failed to check username existence", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check username availability")
	}
	if exists {
		return nil, shared.NewDomainError("USERNAME_EXISTS", "Username already exists")
	}

	user, err := identity.NewUser(input.Username, input.Password, input.Role)
	if err != nil {
		return nil, err
	}
	if input.DisplayName != "" {
		if err := user.SetDisplayName(input.DisplayName); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		s.logger.Error("Failed to create user", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create user")
	}

	s.logger.Info("User created",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)))

	dto := ToUserDTO(user)
	return &dto, nil
}

// Get returns one user by ID.
func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*UserDTO, error) {
	user, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := ToUserDTO(user)
	return &dto, nil
}

// List returns users with pagination.
func (s *UserService) List(ctx context.Context, filter identity.UserFilter) (*UserListResult, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	users, total, err := s.userRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list users", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list users")
	}

	dtos := make([]UserDTO, 0, len(users))
	for _, u := range users {
		dtos = append(dtos, ToUserDTO(u))
	}

	return &UserListResult{
		Users:      dtos,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: int((total + int64(filter.PageSize) - 1) / int64(filter.PageSize)),
	}, nil
}

// Update updates a user's display name and role.
func (s *UserService) Update(ctx context.Context, input UpdateUserInput) (*UserDTO, error) {
	user, err := s.mutate(ctx, input.ID, "update user", func(u *identity.User) error {
		if input.DisplayName != nil {
			if err := u.SetDisplayName(*input.DisplayName); err != nil {
				return err
			}
		}
		if input.Role != nil {
			return u.AssignRole(*input.Role)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	dto := ToUserDTO(user)
	return &dto, nil
}

// ResetPassword sets a new password without the old one (admin action).
func (s *UserService) ResetPassword(ctx context.Context, id uuid.UUID, newPassword string) error {
	_, err := s.mutate(ctx, id, "reset password", func(u *identity.User) error {
		return u.SetPassword(newPassword)
	})
	if err == nil {
		s.logger.Info("User password reset", zap.String("user_id", id.String()))
	}
	return err
}

// Deactivate deactivates a user and revokes every live session.
func (s *UserService) Deactivate(ctx context.Context, id uuid.UUID) error {
	_, err := s.mutate(ctx, id, "deactivate user", (*identity.User).Deactivate)
	if err != nil {
		return err
	}

	// Kill outstanding tokens so the deactivation is immediate
	if err := s.blacklist.AddUserTokensToBlacklist(ctx, id.String(), 168*time.Hour); err != nil {
		s.logger.Error("Failed to revoke sessions of deactivated user", zap.Error(err))
	}

	s.logger.Info("User deactivated", zap.String("user_id", id.String()))
	return nil
}

// Activate re-enables a deactivated or locked user.
func (s *UserService) Activate(ctx context.Context, id uuid.UUID) error {
	_, err := s.mutate(ctx, id, "activate user", (*identity.User).Activate)
	return err
}

// Delete removes a user.
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete user", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete user")
	}
	s.logger.Info("User deleted", zap.String("user_id", id.String()))
	return nil
}
